package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error rendered as {"detail": message}.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"detail"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string, err error) *Error {
	return New(http.StatusBadRequest, message, err)
}

// Internal wraps an unexpected error behind a generic message.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "Internal server error", err)
}

// Detail is the body of every error response.
func Detail(message string) gin.H {
	return gin.H{"detail": message}
}

// ErrorMiddleware renders the last error attached with c.Error as
// {"detail": ...}. Errors that are not *Error become a 500.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *Error
		if !stderrors.As(err, &appErr) {
			appErr = Internal(err)
		}
		c.AbortWithStatusJSON(appErr.Code, Detail(appErr.Message))
	}
}
