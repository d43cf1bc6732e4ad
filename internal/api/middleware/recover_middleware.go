package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/util"
	"github.com/rs/zerolog"
)

func RecoverMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if logger != nil {
						logger.Error().
							Str("request_id", util.GetRequestIDFromContext(r.Context())).
							Str("method", r.Method).
							Str("url", r.URL.String()).
							Interface("panic", err).
							Bytes("stack", debug.Stack()).
							Msg("panic recovered")
					}

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal Server Error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
