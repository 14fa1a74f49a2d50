package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"toptop/internal/model"
)

// Error codes returned in the error envelope
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidArgument = string(model.KindInvalidArgument)
	ErrCodeUnauthorized    = string(model.KindUnauthorized)
	ErrCodeNotFound        = string(model.KindNotFound)
	ErrCodeConflict        = string(model.KindConflict)
	ErrCodeInternal        = string(model.KindInternal)
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logrus.Warnf("[HTTP] Failed to encode response: %v", err)
		}
	}
}

// WriteError writes {"error": {"code": "ERROR_CODE", "message": "..."}}
func WriteError(w http.ResponseWriter, status int, code string, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind model.Kind) int {
	switch kind {
	case model.KindUnauthorized:
		return http.StatusUnauthorized
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindConflict:
		return http.StatusConflict
	case model.KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteDomainError translates a service error. Internal errors are logged
// under op and answered with a generic message.
func WriteDomainError(w http.ResponseWriter, op string, err error) {
	kind := model.KindOf(err)
	if kind == model.KindInternal {
		logrus.Errorf("[%s] %+v", op, err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternal, "Internal server error")
		return
	}
	WriteError(w, StatusFor(kind), string(kind), err.Error())
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}
