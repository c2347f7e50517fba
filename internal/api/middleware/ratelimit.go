package middleware

import (
	"net/http"

	"github.com/promptnest/promptnest-api/internal/api/shared"
	"golang.org/x/time/rate"
)

// RateLimitMessage is the error text of a rejected request.
const RateLimitMessage = "Too many generation requests, please try again later"

// NewRateLimiter returns middleware that admits requests through a single
// process-wide token bucket refilled at rps tokens per second with room for
// burst. A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				shared.RespondWithError(w, r, http.StatusTooManyRequests, RateLimitMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
