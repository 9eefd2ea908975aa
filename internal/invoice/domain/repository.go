package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Create assigns the next per-fiscal-year sequence and inserts the
	// invoice in one transaction. The invoice's number fields are filled in.
	Create(ctx context.Context, tx *gorm.DB, inv *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Invoice, error)
}
