package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// StatusFor maps a business error kind to its HTTP status.
func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// FromError writes err as a JSON error body and returns the status used.
// Anything that is not a BusinessError is reported as a 500 without
// leaking its text.
func FromError(c *gin.Context, err error) int {
	var be BusinessError
	if errors.As(err, &be) {
		status := StatusFor(be.Kind)
		Write(c, status, be.Code, be.Error())
		return status
	}

	Internal(c, "internal_error", "Internal server error")
	return http.StatusInternalServerError
}
