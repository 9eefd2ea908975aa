// Package domain contains persistence models for issued invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	gstdomain "github.com/ledgerline/taxara/internal/gst/domain"
	"gorm.io/datatypes"
)

// Invoice is one issued, numbered invoice. The number is authoritative: it is
// assigned inside the insert transaction under a unique (fiscal_year, sequence)
// index, never taken from the engine's suggestion.
type Invoice struct {
	ID            snowflake.ID   `gorm:"primaryKey"`
	InvoiceNumber string         `gorm:"type:text;not null;uniqueIndex:ux_invoices_number"`
	FiscalYear    int            `gorm:"not null;uniqueIndex:ux_invoices_fy_seq,priority:1"`
	Sequence      int64          `gorm:"not null;uniqueIndex:ux_invoices_fy_seq,priority:2"`
	IssuedOn      time.Time      `gorm:"not null"`
	CustomerName  string         `gorm:"type:text;not null"`
	CustomerGSTIN string         `gorm:"type:text"`
	CustomerAddr  string         `gorm:"type:text"`
	Description   string         `gorm:"type:text;not null"`
	TaxResult     datatypes.JSON `gorm:"not null"`
	CreatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// IssueRequest is the input to issue one invoice: the counterparty, the sold
// lines and the flags the engine needs.
type IssueRequest struct {
	Customer      gstdomain.CustomerDetails
	CustomerName  string
	CustomerAddr  string
	LineItems     []gstdomain.LineItem
	Description   string
	ReverseCharge bool
}

// IssueResponse carries the assigned number with the calculation outcome.
type IssueResponse struct {
	InvoiceID     snowflake.ID        `json:"invoice_id"`
	InvoiceNumber string              `json:"invoice_number"`
	IssuedOn      time.Time           `json:"issued_on"`
	TaxResult     gstdomain.TaxResult `json:"tax_result"`
}
