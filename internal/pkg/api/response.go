package api

import (
	"encoding/json"
	"net/http"
)

// Response 成功回應封裝
type Response struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// ResponseError 錯誤回應封裝
type ResponseError struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PageMeta 分頁資訊
type PageMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func NewPageMeta(page, pageSize int, total int64) *PageMeta {
	totalPages := total / int64(pageSize)
	if total%int64(pageSize) > 0 {
		totalPages++
	}
	return &PageMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

func SuccessJSON(w http.ResponseWriter, data any, meta any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{
		Data: data,
		Meta: meta,
	})
}

// ErrorJSON 業務錯誤碼超出HTTP範圍時以underlyingStatus寫header
func ErrorJSON(w http.ResponseWriter, code int, err error, message string) {
	status := code
	if status < 100 || status > 599 {
		status = http.StatusInternalServerError
	}
	// 自訂業務碼(460, 462)不是標準HTTP status 但仍在合法範圍內可直接使用
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ResponseError{Message: message}
	if err != nil {
		resp.Data = err.Error()
	}
	json.NewEncoder(w).Encode(resp)
}
