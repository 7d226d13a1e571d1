package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trade-journal/internal/errors"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Ok writes a 200 envelope.
func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

// Error writes an error envelope with the given status.
func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// Fail maps a journal error onto an HTTP status and writes it.
func Fail(c *gin.Context, err error) {
	Error(c, statusFor(err), err.Error(), nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrTradeNotFound),
		errors.Is(err, errors.ErrStrategyNotFound),
		errors.Is(err, errors.ErrChecklistItem):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrInputValidation),
		errors.Is(err, errors.ErrInvalidOption),
		errors.Is(err, errors.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errors.ErrNotConfirmed):
		return http.StatusPreconditionRequired
	case errors.Is(err, errors.ErrReadOnly):
		return http.StatusForbidden
	case errors.Is(err, errors.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
