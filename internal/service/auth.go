package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusboard/busboard/internal/auth"
	"github.com/campusboard/busboard/internal/domain"
	"github.com/campusboard/busboard/internal/ingest"
)

// IdentityVerifier checks an identity provider token. *auth.GoogleVerifier
// satisfies it.
type IdentityVerifier interface {
	Verify(idToken string) (auth.GoogleIdentity, error)
}

// SessionIssuer signs session tokens. *auth.TokenIssuer satisfies it.
type SessionIssuer interface {
	Issue(s domain.Session) (string, error)
}

// AuthService exchanges a Google ID token for a board session.
type AuthService struct {
	verifier IdentityVerifier
	issuer   SessionIssuer
	admins   map[string]struct{}
	domains  []string
}

// NewAuthService constructs an AuthService. Addresses in admins receive the
// admin role; everyone else in domains signs in as a student.
func NewAuthService(v IdentityVerifier, i SessionIssuer, admins, domains []string) *AuthService {
	set := make(map[string]struct{}, len(admins))
	for _, a := range admins {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			set[a] = struct{}{}
		}
	}
	return &AuthService{verifier: v, issuer: i, admins: set, domains: domains}
}

// SignInWithGoogle verifies idToken and returns a signed session token.
// Returns domain.ErrUnauthenticated for an invalid token and
// domain.ErrForbidden for an unverified or out-of-domain address.
func (s *AuthService) SignInWithGoogle(_ context.Context, idToken string) (string, domain.Session, error) {
	if strings.TrimSpace(idToken) == "" {
		return "", domain.Session{}, fmt.Errorf("service.AuthService.SignInWithGoogle: missing id token: %w", domain.ErrUnauthenticated)
	}
	id, err := s.verifier.Verify(idToken)
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("service.AuthService.SignInWithGoogle: %v: %w", err, domain.ErrUnauthenticated)
	}

	email := strings.ToLower(strings.TrimSpace(id.Email))
	if !id.EmailVerified || !ingest.EmailInDomains(email, s.domains) {
		return "", domain.Session{}, fmt.Errorf("service.AuthService.SignInWithGoogle: %s: %w", email, domain.ErrForbidden)
	}

	session := domain.Session{
		Subject: id.Subject,
		Email:   email,
		Name:    id.Name,
		Role:    s.roleFor(email),
	}
	token, err := s.issuer.Issue(session)
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("service.AuthService.SignInWithGoogle: %w", err)
	}
	return token, session, nil
}

func (s *AuthService) roleFor(email string) domain.Role {
	if _, ok := s.admins[email]; ok {
		return domain.RoleAdmin
	}
	return domain.RoleStudent
}
