package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id; error bodies
// echo it so a client report can be matched to the server log.
const RequestIDKey = "requestID"

type HTTPError struct {
	Code      string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func newError(c *gin.Context, code, message string) HTTPError {
	return HTTPError{
		Code:      code,
		Message:   message,
		RequestID: c.GetString(RequestIDKey),
	}
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, newError(c, code, message))
}

// Abort writes the error and stops the chain. Middlewares use it.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, newError(c, code, message))
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}
