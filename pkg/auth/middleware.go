package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shelfd/shelfd/pkg/api"
	"github.com/shelfd/shelfd/pkg/observability"
)

// challenge is the WWW-Authenticate value sent with every 401 so Basic-Auth
// clients know to retry with credentials.
const challenge = `Basic realm="Login required"`

// Require creates per-route middleware from an AuthChain and optional
// RateLimiter. Protected handlers are wrapped with it; public routes
// (reads) are simply not wrapped. On success the identity is injected into
// the request context.
func Require(chain *AuthChain, limiter RateLimiter) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			result := chain.Authenticate(r.Context(), r)

			if result.Decision != Yes || result.Identity == nil {
				slog.Warn("authentication failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", result.Err,
				)
				observability.AuthFailuresTotal.Inc()
				writeUnauthenticated(w, result.Err)
				return
			}

			// Validate identity.
			if result.Identity.Subject == "" {
				slog.Error("authenticator returned identity with empty subject")
				writeError(w, api.NewServerError("internal authentication error"), http.StatusInternalServerError)
				return
			}

			slog.Debug("authentication succeeded",
				"subject", result.Identity.Subject,
				"path", r.URL.Path,
			)

			// Rate limiting (if configured).
			if limiter != nil {
				if err := limiter.Allow(r.Context(), result.Identity); err != nil {
					slog.Warn("rate limit exceeded", "subject", result.Identity.Subject)
					observability.RateLimitRejectedTotal.Inc()
					writeError(w, api.NewTooManyRequestsError("rate limit exceeded"), http.StatusTooManyRequests)
					return
				}
			}

			ctx := SetIdentity(r.Context(), result.Identity)
			next(w, r.WithContext(ctx))
		}
	}
}

// writeUnauthenticated writes the 401 response with the Basic challenge.
// Missing credentials and invalid credentials carry distinct messages;
// unknown-username and wrong-password share one.
func writeUnauthenticated(w http.ResponseWriter, err error) {
	message := "Invalid username or password"
	if err == nil || errors.Is(err, ErrUnauthenticated) {
		message = "Authentication required"
	}
	w.Header().Set("WWW-Authenticate", challenge)
	writeError(w, api.NewUnauthenticatedError(message), http.StatusUnauthorized)
}

func writeError(w http.ResponseWriter, apiErr *api.APIError, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: apiErr})
}
