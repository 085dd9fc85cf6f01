// Package http provides HTTP handlers for user authentication and task management.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/atinyakov/TaskTracker/internal/common"
	"go.uber.org/zap"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// SignUp registers a new user and returns its id.
	SignUp(ctx context.Context, username, password string) (string, error)

	// SignIn checks the credentials and returns an access token.
	SignIn(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Log records unexpected failures.
	Log *zap.Logger
}

// CredentialsRequest represents the JSON payload for signup and signin.
type CredentialsRequest struct {
	// Username is the login name, 4 to 20 characters.
	Username string `json:"username"`
	// Password is the plain password, 8 to 32 characters.
	Password string `json:"password"`
}

// SignInResponse is returned on successful signin.
type SignInResponse struct {
	AccessToken string `json:"accessToken"`
}

// SignUp handles POST /auth/signup.
// It answers 201 with an empty body, 400 for invalid input and 409 when the
// username is already taken.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	if _, err := h.AuthService.SignUp(r.Context(), req.Username, req.Password); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// SignIn handles POST /auth/signin.
// It answers 200 with {"accessToken": "..."} or 401 for bad credentials.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	token, err := h.AuthService.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, SignInResponse{AccessToken: token})
}

func decodeCredentials(r *http.Request) (*CredentialsRequest, error) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: invalid request body", common.ErrValidation)
	}
	if err := validateCredentials(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func validateCredentials(req CredentialsRequest) error {
	if n := utf8.RuneCountInString(req.Username); n < 4 || n > 20 {
		return fmt.Errorf("%w: username must be between 4 and 20 characters", common.ErrValidation)
	}
	if n := utf8.RuneCountInString(req.Password); n < 8 || n > 32 {
		return fmt.Errorf("%w: password must be between 8 and 32 characters", common.ErrValidation)
	}
	if !strongPassword(req.Password) {
		return fmt.Errorf("%w: password too weak", common.ErrValidation)
	}
	return nil
}

// strongPassword requires an upper-case letter, a lower-case letter and at
// least one digit or non-word character.
func strongPassword(p string) bool {
	var upper, lower, digitOrSymbol bool
	for _, c := range p {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c), c != '_' && !unicode.IsLetter(c):
			digitOrSymbol = true
		}
	}
	return upper && lower && digitOrSymbol
}
