package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds each request with a context deadline and a matching
// TimeoutHandler. Outbound calls further down carry their own shorter
// per-call deadlines.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)

			timeoutHandler := http.TimeoutHandler(
				next,
				timeout,
				`{"success":false,"error":"request timeout"}`,
			)

			timeoutHandler.ServeHTTP(w, r)
		})
	}
}
