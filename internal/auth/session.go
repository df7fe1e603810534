// Package auth carries the caller's session through request contexts and
// implements the admin gate, session tokens, and Google ID token checks.
package auth

import (
	"context"
	"fmt"

	"github.com/campusboard/busboard/internal/domain"
)

type ctxKey int

const sessionKey ctxKey = 0

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session stored in ctx, or the zero Session for
// anonymous callers.
func FromContext(ctx context.Context) domain.Session {
	s, _ := ctx.Value(sessionKey).(domain.Session)
	return s
}

// RequireAdmin is the single gate every schedule mutation passes through.
// It returns domain.ErrUnauthenticated when nobody is signed in and
// domain.ErrForbidden when the caller is signed in without the admin role.
func RequireAdmin(ctx context.Context) error {
	s := FromContext(ctx)
	if !s.Authenticated() {
		return fmt.Errorf("auth.RequireAdmin: %w", domain.ErrUnauthenticated)
	}
	if !s.IsAdmin() {
		return fmt.Errorf("auth.RequireAdmin: %s: %w", s.Email, domain.ErrForbidden)
	}
	return nil
}

// RequireSession returns domain.ErrUnauthenticated for anonymous callers.
func RequireSession(ctx context.Context) (domain.Session, error) {
	s := FromContext(ctx)
	if !s.Authenticated() {
		return domain.Session{}, fmt.Errorf("auth.RequireSession: %w", domain.ErrUnauthenticated)
	}
	return s, nil
}
