package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"hackathon-backend/errs"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrorResponse aborts the request with the status of err's kind. Errors that
// did not come from errs are logged and reported as a bare internal error.
func ErrorResponse(c *gin.Context, err error) {
	status := errs.KindOf(err).Status()
	msg := err.Error()

	var e *errs.Error
	if !errors.As(err, &e) {
		Logger(c).Error("unhandled error", zap.Error(err))
		msg = http.StatusText(http.StatusInternalServerError)
	}

	c.AbortWithStatusJSON(status, errorBody{
		Error:   http.StatusText(status),
		Message: msg,
	})
}

// ParseJSONBody binds the request body into v. Malformed bodies are ErrInvalidBody.
func ParseJSONBody(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		Logger(c).Debug("invalid body", zap.Error(err))
		return errs.ErrInvalidBody
	}

	return nil
}
