// Package domain holds the calculation audit trail: every decision trace is
// stored verbatim so a calculation can be replayed for audit purposes.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CalculationAudit is one engine run.
type CalculationAudit struct {
	ID              snowflake.ID   `gorm:"primaryKey"`
	InvoiceID       *snowflake.ID  `gorm:"index"`
	TransactionType string         `gorm:"type:text;not null"`
	PlaceOfSupply   string         `gorm:"type:text;not null"`
	POSSource       string         `gorm:"type:text;not null"`
	RateApplied     string         `gorm:"type:text;not null"`
	IsReverseCharge bool           `gorm:"not null"`
	LogicTrace      datatypes.JSON `gorm:"not null"`
	CalculatedAt    time.Time      `gorm:"not null"`
	CreatedAt       time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (CalculationAudit) TableName() string { return "calculation_audits" }

// ListFilter narrows audit queries.
type ListFilter struct {
	TransactionType string
	Limit           int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *CalculationAudit) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*CalculationAudit, error)
}
