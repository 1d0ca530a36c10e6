package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// Error codes of the error body.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInternalError    = "INTERNAL_ERROR"
)

// ErrorBody is the uniform error envelope.
type ErrorBody struct {
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"requestId"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorStatus maps an error to its HTTP status and code. Unknown errors are internal.
func errorStatus(err error) (int, string) {
	switch {
	case model.IsValidation(err):
		return http.StatusBadRequest, CodeValidationFailed
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case model.IsNotFound(err):
		return http.StatusNotFound, CodeNotFound
	case model.IsConflict(err):
		return http.StatusConflict, CodeConflict
	}
	return http.StatusInternalServerError, CodeInternalError
}

// abortWithError writes the error body and stops the handler chain. Internal errors are logged and
// their message hidden.
func abortWithError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		log.WithError(err).
			WithField("request-id", requestID(c)).
			WithField("path", c.FullPath()).
			Error("internal error while serving request")
		message = "internal server error"
	case http.StatusUnauthorized:
		message = "authentication required"
	case http.StatusForbidden:
		message = "insufficient permissions"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorBody{
		Error:     ErrorDetail{Code: code, Message: message},
		RequestID: requestID(c),
	})
}
