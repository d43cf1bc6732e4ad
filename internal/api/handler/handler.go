package handler

import (
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/api"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/er"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/token"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/util"
)

// writeServiceError service層錯誤統一轉response
// ShopError帶業務碼 其餘一律500
func writeServiceError(w http.ResponseWriter, err error) {
	var shopErr *er.ShopError
	if errors.As(err, &shopErr) {
		api.ErrorJSON(w, int(shopErr.Code), shopErr, er.ErrStrMap[shopErr.Code])
		return
	}
	api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
}

// mustPayload 取出登入者payload 沒有代表middleware漏擋 直接回401
func mustPayload(w http.ResponseWriter, r *http.Request) (*token.Payload, bool) {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		api.ErrorJSON(w, int(er.UnauthenticatedCode), er.New(er.UnauthenticatedCode, "unauthenticated"), er.ErrStrMap[er.UnauthenticatedCode])
		return nil, false
	}
	return payload, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
