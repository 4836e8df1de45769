// Package apperr holds the error taxonomy shared by the services and its
// mapping onto HTTP responses.
package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/technova/portfolio-api/internal/store"
	"github.com/technova/portfolio-api/pkg/logger"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports caller input that breaks a required-field rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError.
func Invalid(msg string) error { return &ValidationError{Message: msg} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Status maps err onto an HTTP status code.
func Status(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Respond writes the JSON error body for err and aborts the chain.
// Unexpected errors are logged with the request that triggered them and
// never leak their cause to the client.
func Respond(c *gin.Context, err error) {
	status := Status(err)
	switch status {
	case http.StatusBadRequest:
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return
	case http.StatusNotFound:
		c.AbortWithStatusJSON(status, gin.H{"error": "Not found"})
		return
	case http.StatusForbidden:
		c.AbortWithStatusJSON(status, gin.H{"error": "Forbidden: invalid admin key"})
		return
	}
	msg := "internal error"
	if errors.Is(err, store.ErrUnavailable) {
		msg = "storage unavailable"
	}
	logger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
