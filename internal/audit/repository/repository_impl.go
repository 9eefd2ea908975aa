package repository

import (
	"context"
	"strings"

	"github.com/ledgerline/taxara/internal/audit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.CalculationAudit) error {
	if entry == nil {
		return nil
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO calculation_audits (
			id, invoice_id, transaction_type, place_of_supply, pos_source,
			rate_applied, is_reverse_charge, logic_trace, calculated_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.InvoiceID,
		entry.TransactionType,
		entry.PlaceOfSupply,
		entry.POSSource,
		entry.RateApplied,
		entry.IsReverseCharge,
		entry.LogicTrace,
		entry.CalculatedAt,
		entry.CreatedAt,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.CalculationAudit, error) {
	var entries []*domain.CalculationAudit
	stmt := db.WithContext(ctx).Model(&domain.CalculationAudit{})

	if t := strings.TrimSpace(filter.TransactionType); t != "" {
		stmt = stmt.Where("transaction_type = ?", t)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	if err := stmt.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
