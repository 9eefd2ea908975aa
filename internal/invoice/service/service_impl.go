package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	auditservice "github.com/ledgerline/taxara/internal/audit/service"
	"github.com/ledgerline/taxara/internal/clock"
	"github.com/ledgerline/taxara/internal/config"
	gstdomain "github.com/ledgerline/taxara/internal/gst/domain"
	gstservice "github.com/ledgerline/taxara/internal/gst/service"
	invoicedomain "github.com/ledgerline/taxara/internal/invoice/domain"
	"github.com/ledgerline/taxara/internal/invoice/render"
	"github.com/ledgerline/taxara/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Config     config.Config
	Clock      clock.Clock
	Calculator *gstservice.Calculator
	Renderer   *render.PDFRenderer
	Repository invoicedomain.Repository
	Audit      *auditservice.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	cfg      config.Config
	clock    clock.Clock
	calc     *gstservice.Calculator
	renderer *render.PDFRenderer
	repo     invoicedomain.Repository
	audit    *auditservice.Service
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log,
		genID:    p.GenID,
		cfg:      p.Config,
		clock:    p.Clock,
		calc:     p.Calculator,
		renderer: p.Renderer,
		repo:     p.Repository,
		audit:    p.Audit,
	}
}

// Issue runs the engine, assigns the authoritative number inside the insert
// transaction and stores the result with its decision trace.
func (s *Service) Issue(ctx context.Context, req invoicedomain.IssueRequest) (*invoicedomain.IssueResponse, error) {
	if req.CustomerName == "" {
		return nil, &gstdomain.ValidationError{Field: "customer_name", Message: "customer name is required"}
	}

	result, err := s.calc.Calculate(req.Customer, req.LineItems, req.ReverseCharge)
	if err != nil {
		return nil, err
	}

	stored, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	issuedOn := s.clock.Now().UTC()
	inv := &invoicedomain.Invoice{
		ID:            s.genID.Generate(),
		FiscalYear:    gstdomain.FiscalYearStart(result.Meta.CalculationTimestamp),
		IssuedOn:      issuedOn,
		CustomerName:  req.CustomerName,
		CustomerGSTIN: req.Customer.GSTIN,
		CustomerAddr:  req.CustomerAddr,
		Description:   req.Description,
		TaxResult:     stored,
		CreatedAt:     time.Now().UTC(),
	}

	create := func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			return s.repo.Create(ctx, tx, inv)
		})
	}
	err = create()
	if db.IsDuplicateKeyErr(err) {
		// Concurrent issuance raced on the same sequence; the unique index
		// caught it, take the next one.
		err = create()
	}
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &inv.ID, result)

	s.log.Info("invoice issued",
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("transaction_type", string(result.TransactionType)),
		zap.String("place_of_supply", result.PlaceOfSupply),
	)

	return &invoicedomain.IssueResponse{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		IssuedOn:      issuedOn,
		TaxResult:     *result,
	}, nil
}

// Document re-renders the stored invoice as a PDF.
func (s *Service) Document(ctx context.Context, id string) ([]byte, error) {
	inv, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	var result gstdomain.TaxResult
	if err := json.Unmarshal(inv.TaxResult, &result); err != nil {
		return nil, err
	}

	return s.renderer.RenderInvoice(render.InvoiceInput{
		InvoiceNumber:   inv.InvoiceNumber,
		Date:            inv.IssuedOn,
		CustomerName:    inv.CustomerName,
		CustomerGSTIN:   inv.CustomerGSTIN,
		CustomerAddress: inv.CustomerAddr,
		Description:     inv.Description,
		Seller:          sellerFromConfig(s.cfg.Seller),
		LogoPath:        s.cfg.LogoPath,
		TaxResult:       &result,
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	return s.repo.FindByID(ctx, s.db, id)
}

func sellerFromConfig(id config.SellerIdentity) render.Seller {
	return render.Seller{
		LegalName:    id.LegalName,
		AddressLine1: id.AddressLine1,
		City:         id.City,
		State:        id.State,
		Pincode:      id.Pincode,
		GSTIN:        id.GSTIN,
		PAN:          id.PAN,
		Email:        id.Email,
		Phone:        id.Phone,
	}
}
