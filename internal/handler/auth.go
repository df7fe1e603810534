package handler

import (
	"encoding/json"
	"net/http"

	"github.com/campusboard/busboard/internal/auth"
	"github.com/campusboard/busboard/internal/domain"
)

// GoogleSignInRequest is the body of POST /auth/google.
type GoogleSignInRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// SessionResponse describes the signed-in caller. Token is only set on sign-in.
type SessionResponse struct {
	Token string      `json:"token,omitempty"`
	Email string      `json:"email"`
	Name  string      `json:"name,omitempty"`
	Role  domain.Role `json:"role"`
}

// SignInWithGoogle handles POST /auth/google.
func (s *Server) SignInWithGoogle(w http.ResponseWriter, r *http.Request) {
	var req GoogleSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be JSON with an id_token"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("id_token is required"))
		return
	}

	token, session, err := s.auth.SignInWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.log.InfoContext(r.Context(), "signed in", "email", session.Email, "role", session.Role)
	writeJSON(w, http.StatusOK, SessionResponse{
		Token: token,
		Email: session.Email,
		Name:  session.Name,
		Role:  session.Role,
	})
}

// GetMe handles GET /auth/me.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	session, err := auth.RequireSession(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{Email: session.Email, Name: session.Name, Role: session.Role})
}
