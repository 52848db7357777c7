package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicescan/internal/domain"
	"invoicescan/internal/parser"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondError sends {"error": msg} with the given status code.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}

// MapError translates intake and upstream errors to an HTTP status and caller-facing message.
func MapError(err error) (status int, msg string) {
	var upErr *parser.UpstreamError
	switch {
	case errors.As(err, &upErr):
		return StatusForKind(upErr.Kind), upErr.Message()
	case errors.Is(err, domain.ErrNoInvoiceImage):
		return http.StatusBadRequest, "No invoice image provided"
	case errors.Is(err, domain.ErrNoSelectedFile):
		return http.StatusBadRequest, "No selected file"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "Unsupported export format; allowed: json, csv, xlsx"
	default:
		return http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}

// StatusForKind maps an upstream error kind to the response status.
func StatusForKind(kind parser.ErrorKind) int {
	switch kind {
	case parser.KindAuthentication:
		return http.StatusUnauthorized
	case parser.KindRateLimit:
		return http.StatusTooManyRequests
	case parser.KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleError maps err and sends the error response.
func HandleError(c *gin.Context, err error) {
	status, msg := MapError(err)
	RespondError(c, status, msg)
}
