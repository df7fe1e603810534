package auth

import (
	"fmt"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// GoogleIdentity is the subset of a Google ID token the board relies on.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// GoogleVerifier checks Google ID tokens against a single OAuth client ID.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier returns a verifier that accepts tokens issued for clientID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// Verify validates the signature, audience and expiry of idToken and returns
// the identity it asserts.
func (g *GoogleVerifier) Verify(idToken string) (GoogleIdentity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.clientID}); err != nil {
		return GoogleIdentity{}, fmt.Errorf("auth.GoogleVerifier.Verify: %w", err)
	}
	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return GoogleIdentity{}, fmt.Errorf("auth.GoogleVerifier.Verify: decode: %w", err)
	}
	return GoogleIdentity{
		Subject:       claims.Sub,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
	}, nil
}
