package middleware

import (
	"net"
	"net/http"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/infra/limiter"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/api"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
)

// RateLimitMiddleware 以client IP為key做token bucket限流
// 需放在RealIP之後才能拿到真實IP
func RateLimitMiddleware(l limiter.ILimiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := r.RemoteAddr
			if host, _, err := net.SplitHostPort(key); err == nil {
				key = host
			}

			if !l.Allow(r.Context(), key) {
				api.ErrorJSON(w, int(er.TooManyRequestsCode), er.New(er.TooManyRequestsCode, "rate limit exceeded"), er.ErrStrMap[er.TooManyRequestsCode])
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
