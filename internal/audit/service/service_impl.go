package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgerline/taxara/internal/audit/domain"
	gstdomain "github.com/ledgerline/taxara/internal/gst/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repository domain.Repository
}

// Service persists decision traces. A failed audit write is logged, never
// propagated: audit storage must not block invoice issuance.
type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p ServiceParam) *Service {
	return &Service{db: p.DB, log: p.Log, genID: p.GenID, repo: p.Repository}
}

// Record stores the result's decision trace verbatim.
func (s *Service) Record(ctx context.Context, invoiceID *snowflake.ID, result *gstdomain.TaxResult) {
	trace, err := json.Marshal(result.Meta.LogicTrace)
	if err != nil {
		s.log.Error("marshal logic trace", zap.Error(err))
		return
	}

	entry := &domain.CalculationAudit{
		ID:              s.genID.Generate(),
		InvoiceID:       invoiceID,
		TransactionType: string(result.TransactionType),
		PlaceOfSupply:   result.PlaceOfSupply,
		POSSource:       string(result.Meta.POSSource),
		RateApplied:     result.Meta.RateApplied.String(),
		IsReverseCharge: result.IsReverseCharge,
		LogicTrace:      trace,
		CalculatedAt:    result.Meta.CalculationTimestamp,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, entry); err != nil {
		s.log.Error("insert calculation audit", zap.Error(err))
	}
}

// List returns recent audit entries.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*domain.CalculationAudit, error) {
	return s.repo.List(ctx, s.db, filter)
}
