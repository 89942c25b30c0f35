package app_error

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type statusError struct {
	error
	status int
}

func (e statusError) Unwrap() error {
	return e.error
}

func (e statusError) HTTPStatus() int {
	return e.status
}

// ValidationError reports an invalid field of a submitted event.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func NotFound(err error) error {
	return statusError{error: err, status: http.StatusNotFound}
}

func Validation(field string, message string) error {
	return statusError{error: ValidationError{Field: field, Message: message}, status: http.StatusUnprocessableEntity}
}

func Unauthenticated(err error) error {
	return statusError{error: err, status: http.StatusUnauthorized}
}

func Forbidden(err error) error {
	return statusError{error: err, status: http.StatusForbidden}
}

// HTTPStatus returns the status attached to err, or 500 for unclassified errors.
func HTTPStatus(err error) int {
	var se interface{ HTTPStatus() int }
	if errors.As(err, &se) {
		return se.HTTPStatus()
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return HTTPStatus(err) == http.StatusNotFound
}

// AsValidation extracts the validation detail from err, if any.
func AsValidation(err error) (ValidationError, bool) {
	var ve ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func WithHTTPStatus(c *gin.Context, err error, status int) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// Abort writes err as JSON using its attached status.
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(HTTPStatus(err), gin.H{"error": err.Error()})
}
