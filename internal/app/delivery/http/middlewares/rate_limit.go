package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// LoginRateLimit caps login requests per client address. Per-email throttling
// happens in the session provider.
func (m *Middlewares) LoginRateLimit() func(next http.Handler) http.Handler {
	limit := m.InternalConfig.App.LoginAttemptsPerMinute
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(limit*2, time.Minute)
}
