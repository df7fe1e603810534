package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/campusboard/busboard/internal/auth"
	"github.com/campusboard/busboard/internal/domain"
)

// SessionParser turns a bearer token into a session. *auth.TokenIssuer satisfies it.
type SessionParser interface {
	Parse(token string) (domain.Session, error)
}

// NewSession returns a middleware that resolves the Authorization header into
// a domain.Session stored on the request context. Requests without the header
// continue anonymously; a present but invalid bearer token is rejected with 401.
func NewSession(parser SessionParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				unauthorized(w, "malformed Authorization header")
				return
			}
			session, err := parser.Parse(strings.TrimSpace(token))
			if err != nil {
				unauthorized(w, "session expired or invalid, sign in again")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}

// unauthorized writes the same error envelope the handlers use.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="busboard"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthenticated", "message": message},
	})
}
