package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	invoicedomain "github.com/ledgerline/taxara/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&invoicedomain.Invoice{}))
	return db
}

func newTestInvoice(t *testing.T, node *snowflake.Node, fiscalYear int) *invoicedomain.Invoice {
	t.Helper()
	return &invoicedomain.Invoice{
		ID:           node.Generate(),
		FiscalYear:   fiscalYear,
		IssuedOn:     time.Date(fiscalYear, time.June, 15, 0, 0, 0, 0, time.UTC),
		CustomerName: "Acme Corp",
		Description:  "SaaS subscription",
		TaxResult:    datatypes.JSON(`{}`),
		CreatedAt:    time.Now().UTC(),
	}
}

func TestCreate_AssignsSequentialNumbers(t *testing.T) {
	db := setupTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := Provide()
	ctx := context.Background()

	first := newTestInvoice(t, node, 2025)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.Create(ctx, tx, first)
	}))
	assert.EqualValues(t, 1, first.Sequence)
	assert.Equal(t, "INV/25-26/0001", first.InvoiceNumber)

	second := newTestInvoice(t, node, 2025)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.Create(ctx, tx, second)
	}))
	assert.EqualValues(t, 2, second.Sequence)
	assert.Equal(t, "INV/25-26/0002", second.InvoiceNumber)
}

func TestCreate_SequenceRestartsPerFiscalYear(t *testing.T) {
	db := setupTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := Provide()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		inv := newTestInvoice(t, node, 2025)
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			return repo.Create(ctx, tx, inv)
		}))
	}

	next := newTestInvoice(t, node, 2026)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.Create(ctx, tx, next)
	}))
	assert.EqualValues(t, 1, next.Sequence)
	assert.Equal(t, "INV/26-27/0001", next.InvoiceNumber)
}

func TestCreate_DuplicateSequenceRejected(t *testing.T) {
	db := setupTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := Provide()
	ctx := context.Background()

	inv := newTestInvoice(t, node, 2025)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.Create(ctx, tx, inv)
	}))

	// Forcing the same (fiscal_year, sequence) must trip the unique index.
	clash := newTestInvoice(t, node, 2025)
	clash.Sequence = inv.Sequence
	clash.InvoiceNumber = "INV/25-26/9999"
	err = db.Exec(
		`INSERT INTO invoices (
			id, invoice_number, fiscal_year, sequence, issued_on,
			customer_name, customer_gstin, customer_addr, description,
			tax_result, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		clash.ID, clash.InvoiceNumber, clash.FiscalYear, clash.Sequence,
		clash.IssuedOn, clash.CustomerName, clash.CustomerGSTIN,
		clash.CustomerAddr, clash.Description, clash.TaxResult, clash.CreatedAt,
	).Error
	assert.Error(t, err)
}

func TestFindByID(t *testing.T) {
	db := setupTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := Provide()
	ctx := context.Background()

	inv := newTestInvoice(t, node, 2025)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.Create(ctx, tx, inv)
	}))

	found, err := repo.FindByID(ctx, db, inv.ID.String())
	require.NoError(t, err)
	assert.Equal(t, inv.InvoiceNumber, found.InvoiceNumber)
	assert.Equal(t, "Acme Corp", found.CustomerName)
}

func TestFindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := Provide()

	_, err := repo.FindByID(context.Background(), db, "123456789")
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}
