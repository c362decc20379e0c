package dto

import "net/http"

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusBadRequest, message, nil)
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

// GenerateReportRequest is the HTTP payload for an on-demand report run.
// Start/End are RFC3339 timestamps; both empty means the configured lookback
// window ending now.
type GenerateReportRequest struct {
	Start     string     `json:"start" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	End       string     `json:"end" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	SkipAI    bool       `json:"skip_ai"`
	UserNotes *UserNotes `json:"user_notes,omitempty"`
}
