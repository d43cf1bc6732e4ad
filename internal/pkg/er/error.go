package er

import (
	"errors"
	"fmt"
)

type Code int

const (
	BadRequestCode        Code = 400
	UnauthenticatedCode   Code = 401
	UnauthorizedCode      Code = 403
	NotFoundCode          Code = 404
	ConflictCode          Code = 409
	TooManyRequestsCode   Code = 429
	InvalidArgumentCode   Code = 460
	InsufficientStockCode Code = 462
	InternalErrorCode     Code = 500
)

var ErrStrMap = map[Code]string{
	BadRequestCode:        "bad request",
	UnauthenticatedCode:   "unauthenticated",
	UnauthorizedCode:      "unauthorized",
	NotFoundCode:          "not found",
	ConflictCode:          "conflict",
	TooManyRequestsCode:   "too many requests",
	InvalidArgumentCode:   "invalid argument",
	InsufficientStockCode: "insufficient stock",
	InternalErrorCode:     "internal server error",
}

// ShopError 帶狀態碼的業務錯誤
// handler根據Code決定response status
type ShopError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	err     error
}

func (e *ShopError) Error() string {
	return fmt.Sprintf("code: %d, message: %s", e.Code, e.Message)
}

func (e *ShopError) Unwrap() error {
	return e.err
}

func New(code Code, message string) *ShopError {
	return &ShopError{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *ShopError {
	return &ShopError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap 保留原始錯誤供errors.Is/As使用
func Wrap(code Code, message string, err error) *ShopError {
	return &ShopError{Code: code, Message: message, err: err}
}

// GetCode 取出錯誤碼 非ShopError一律視為500
func GetCode(err error) Code {
	var shopErr *ShopError
	if errors.As(err, &shopErr) {
		return shopErr.Code
	}
	return InternalErrorCode
}
