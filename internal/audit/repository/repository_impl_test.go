package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/ledgerline/taxara/internal/audit/domain"
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
	require.NoError(t, db.AutoMigrate(&domain.CalculationAudit{}))
	return db
}

func newEntry(node *snowflake.Node, txType string, at time.Time) *domain.CalculationAudit {
	return &domain.CalculationAudit{
		ID:              node.Generate(),
		TransactionType: txType,
		PlaceOfSupply:   "27",
		POSSource:       "GSTIN",
		RateApplied:     "0.18",
		LogicTrace:      datatypes.JSON(`["Customer has GSTIN -> B2B transaction"]`),
		CalculatedAt:    at,
		CreatedAt:       at,
	}
}

func TestInsertAndList(t *testing.T) {
	db := setupTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := Provide()
	ctx := context.Background()

	base := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, db, newEntry(node, "B2B", base)))
	require.NoError(t, repo.Insert(ctx, db, newEntry(node, "EXPORT", base.Add(time.Minute))))
	require.NoError(t, repo.Insert(ctx, db, newEntry(node, "B2B", base.Add(2*time.Minute))))

	entries, err := repo.List(ctx, db, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Newest first.
	assert.Equal(t, "B2B", entries[0].TransactionType)
	assert.Equal(t, "EXPORT", entries[1].TransactionType)
}

func TestList_FiltersByTransactionType(t *testing.T) {
	db := setupTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := Provide()
	ctx := context.Background()

	base := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, db, newEntry(node, "B2B", base)))
	require.NoError(t, repo.Insert(ctx, db, newEntry(node, "EXPORT", base.Add(time.Minute))))

	entries, err := repo.List(ctx, db, domain.ListFilter{TransactionType: "EXPORT"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "EXPORT", entries[0].TransactionType)
}

func TestList_Limit(t *testing.T) {
	db := setupTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := Provide()
	ctx := context.Background()

	base := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, db, newEntry(node, "B2B", base.Add(time.Duration(i)*time.Second))))
	}

	entries, err := repo.List(ctx, db, domain.ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestInsert_NilEntryIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := Provide()

	require.NoError(t, repo.Insert(context.Background(), db, nil))

	entries, err := repo.List(context.Background(), db, domain.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
