package util

import (
	"context"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/constants"
	"github.com/PouyaFakhri/FitLand-BackEnd/internal/pkg/token"
)

// GetTokenPayloadFromContext 取出auth middleware放入的token payload 未登入回nil
func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	payload, ok := ctx.Value(constants.AuthorizationPayloadKey).(*token.Payload)
	if !ok {
		return nil
	}
	return payload
}

// GetRequestIDFromContext 取出request id 沒有則回空字串
func GetRequestIDFromContext(ctx context.Context) string {
	requestID, ok := ctx.Value(constants.RequestIDKey).(string)
	if !ok {
		return ""
	}
	return requestID
}

// GetDeviceInfoFromContext 取出裝置資訊
func GetDeviceInfoFromContext(ctx context.Context) string {
	device, ok := ctx.Value(constants.DeviceInfoKey).(string)
	if !ok {
		return "unknown"
	}
	return device
}
