package httpError

import "net/http"

// CommonError is the error shape every usecase hands back to the HTTP layer.
type CommonError struct {
	Code         int    `json:"code"`
	CodeStr      string `json:"codeStr"`
	Message      string `json:"message"`
	ResponseCode int    `json:"-"`
}

func (e *CommonError) Error() string {
	return e.Message
}

func NewBadRequest() *CommonError {
	return &CommonError{
		Code:         http.StatusBadRequest,
		CodeStr:      "BAD_REQUEST",
		Message:      "bad request",
		ResponseCode: http.StatusBadRequest,
	}
}

func NewNotFound() *CommonError {
	return &CommonError{
		Code:         http.StatusNotFound,
		CodeStr:      "NOT_FOUND",
		Message:      "resource not found",
		ResponseCode: http.StatusNotFound,
	}
}

// NewForbidden deliberately carries the same generic wording as NewNotFound,
// an unauthorized prober must not learn that the booking exists.
func NewForbidden() *CommonError {
	return &CommonError{
		Code:         http.StatusForbidden,
		CodeStr:      "FORBIDDEN",
		Message:      "resource not found or not accessible",
		ResponseCode: http.StatusForbidden,
	}
}

func NewConflict() *CommonError {
	return &CommonError{
		Code:         http.StatusConflict,
		CodeStr:      "CONFLICT",
		Message:      "conflict",
		ResponseCode: http.StatusConflict,
	}
}

func NewTooManyRequests() *CommonError {
	return &CommonError{
		Code:         http.StatusTooManyRequests,
		CodeStr:      "RATE_LIMITED",
		Message:      "too many requests, please retry later",
		ResponseCode: http.StatusTooManyRequests,
	}
}

func NewInternalServerError() *CommonError {
	return &CommonError{
		Code:         http.StatusInternalServerError,
		CodeStr:      "INTERNAL_SERVER_ERROR",
		Message:      "internal server error",
		ResponseCode: http.StatusInternalServerError,
	}
}
