package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/atinyakov/TaskTracker/internal/common"
	"go.uber.org/zap"
)

// requireJSON rejects requests that carry a body without an
// application/json content type. Bodiless requests pass through.
func requireJSON(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}

			ct, _, _ := strings.Cut(r.Header.Get("Content-Type"), ";")
			if strings.ToLower(strings.TrimSpace(ct)) != "application/json" {
				writeError(w, log, fmt.Errorf("%w: content type must be application/json", common.ErrValidation))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
