package repository

import (
	"context"
	"errors"

	"github.com/ledgerline/taxara/internal/gst/domain"
	invoicedomain "github.com/ledgerline/taxara/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() invoicedomain.Repository {
	return &repo{}
}

// Create assigns the next sequence for the invoice's fiscal year and inserts
// the row. Callers run it inside a transaction; the unique index on
// (fiscal_year, sequence) guarantees a collision surfaces as an error instead
// of a duplicated number.
func (r *repo) Create(ctx context.Context, tx *gorm.DB, inv *invoicedomain.Invoice) error {
	var next int64
	err := tx.WithContext(ctx).Raw(
		`SELECT COALESCE(MAX(sequence), 0) + 1
		 FROM invoices
		 WHERE fiscal_year = ?`,
		inv.FiscalYear,
	).Scan(&next).Error
	if err != nil {
		return err
	}

	inv.Sequence = next
	inv.InvoiceNumber = domain.FormatInvoiceNumber(inv.FiscalYear, next)

	return tx.WithContext(ctx).Exec(
		`INSERT INTO invoices (
			id, invoice_number, fiscal_year, sequence, issued_on,
			customer_name, customer_gstin, customer_addr, description,
			tax_result, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.InvoiceNumber,
		inv.FiscalYear,
		inv.Sequence,
		inv.IssuedOn,
		inv.CustomerName,
		inv.CustomerGSTIN,
		inv.CustomerAddr,
		inv.Description,
		inv.TaxResult,
		inv.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*invoicedomain.Invoice, error) {
	var inv invoicedomain.Invoice
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invoicedomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
