package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
)

// DeviceInfoMiddleware 從User-Agent判斷裝置類型 放入context供refresh token記錄
func DeviceInfoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent := strings.ToLower(r.Header.Get("User-Agent"))

		deviceInfo := "desktop"
		if strings.Contains(userAgent, "mobile") {
			deviceInfo = "mobile"
		} else if strings.Contains(userAgent, "tablet") {
			deviceInfo = "tablet"
		}

		ctx := context.WithValue(r.Context(), constants.DeviceInfoKey, deviceInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
