// Package middleware provides HTTP middlewares for authentication, logging and metrics.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type ctxKey string

const userKey ctxKey = "user"

const bearerPrefix = "Bearer "

// unauthorizedBody is written for every rejected request, whatever the cause.
const unauthorizedBody = `{"statusCode":401,"message":"Unauthorized"}` + "\n"

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// BearerAuth is a middleware that enforces bearer-token authentication.
//
// It expects an "Authorization: Bearer <token>" header. A missing header, any
// other scheme, an empty token or a token the verifier rejects all produce the
// same 401 response, and the next handler is not called.
//
// On success the resolved user id is stored in the request context, so it can
// be used downstream via GetUserIDFromContext.
func BearerAuth(verifier TokenVerifier, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, bearerPrefix)
			if !ok || token == "" {
				log.Debug("missing or malformed authorization header", zap.String("path", r.URL.Path))
				writeUnauthorized(w)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil || userID == "" {
				log.Debug("rejected bearer token", zap.String("path", r.URL.Path), zap.Error(err))
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user ID from the request
// context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(unauthorizedBody))
}
