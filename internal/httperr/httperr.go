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
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// WriteError maps a usecase error to its HTTP shape. Business errors keep
// their code and status; everything else becomes a 500.
func WriteError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, be.Status, be.Code, be.Code)
		return
	}
	Write(c, http.StatusInternalServerError, "internal_error", "unexpected error")
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}
