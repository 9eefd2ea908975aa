package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	gstdomain "github.com/ledgerline/taxara/internal/gst/domain"
	invoicedomain "github.com/ledgerline/taxara/internal/invoice/domain"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorPayload struct {
	Type    string       `json:"type"`
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return &gstdomain.ValidationError{Field: "request", Message: "invalid request body"}
}

func mapError(err error) (int, errorPayload) {
	var vErr *gstdomain.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  []fieldError{{Field: vErr.Field, Message: vErr.Message}},
		}
	}

	var rErr *invoicedomain.RenderError
	if errors.As(err, &rErr) {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "render_error",
			Message: "document generation failed",
			Errors:  []fieldError{{Field: rErr.Field, Message: rErr.Message}},
		}
	}

	if errors.Is(err, invoicedomain.ErrNotFound) {
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}
