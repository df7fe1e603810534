package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/busboard/internal/auth"
	"github.com/campusboard/busboard/internal/domain"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	want := domain.Session{Subject: "123", Email: "a@scaler.com", Name: "Ann", Role: domain.RoleAdmin}

	token, err := issuer.Issue(want)
	require.NoError(t, err)

	got, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	token, err := auth.NewTokenIssuer("one", time.Hour).Issue(domain.Session{Email: "a@scaler.com"})
	require.NoError(t, err)

	_, err = auth.NewTokenIssuer("two", time.Hour).Parse(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", -time.Minute)
	token, err := issuer.Issue(domain.Session{Email: "a@scaler.com"})
	require.NoError(t, err)

	_, err = issuer.Parse(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.MapClaims{"iss": "busboard", "email": "a@scaler.com", "role": "admin"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.NewTokenIssuer("secret", time.Hour).Parse(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	_, err := auth.NewTokenIssuer("secret", time.Hour).Parse("not-a-token")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
