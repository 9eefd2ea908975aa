package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("invoice_not_found")
)

// RenderError means document generation preconditions were unmet. No bytes
// are ever emitted alongside it.
type RenderError struct {
	Field   string
	Message string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error: %s: %s", e.Field, e.Message)
}
