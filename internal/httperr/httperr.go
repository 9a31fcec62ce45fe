package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
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

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromBusiness maps a business error onto the HTTP surface. Slot conflicts
// get their own status so the client can tell "pick another time" apart
// from a real failure.
func FromBusiness(c *gin.Context, err error) {
	code, ok := BusinessCode(err)
	if !ok {
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	switch code {
	case "slot_taken":
		Conflict(c, code, "Slot no longer available, please pick another time.")
	case "booking_not_found", "service_not_found", "account_not_found":
		NotFound(c, code, "Resource not found.")
	default:
		BadRequest(c, code, "Request rejected: "+code)
	}
}
