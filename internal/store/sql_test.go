package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/hoadon/internal/models"
)

func setupSQLTestDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if migrate {
		if err := db.AutoMigrate(&Record{}); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	return db
}

func TestSQLStore_NoTable(t *testing.T) {
	ctx := context.Background()
	s := NewSQLStore(setupSQLTestDB(t, false))

	invoices, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Empty(t, invoices)

	_, err = s.FindByNumber(ctx, "A-1")
	require.ErrorIs(t, err, ErrEmpty)
}

func TestSQLStore_AppendThenLoadAll(t *testing.T) {
	ctx := context.Background()
	s := NewSQLStore(setupSQLTestDB(t, true))

	require.NoError(t, s.Append(ctx, testInvoice("A-1")))
	inv := testInvoice("A-2")
	inv.TaxRate = models.NumericString("10")
	require.NoError(t, s.Append(ctx, inv))

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, inv, all[1])
}

func TestSQLStore_FindByNumberFirstMatch(t *testing.T) {
	ctx := context.Background()
	s := NewSQLStore(setupSQLTestDB(t, true))

	_, err := s.FindByNumber(ctx, "DUP")
	require.ErrorIs(t, err, ErrNotFound)

	a := testInvoice("DUP")
	b := testInvoice("DUP")
	b.CustomerName = "later"
	require.NoError(t, s.Append(ctx, a))
	require.NoError(t, s.Append(ctx, b))

	got, err := s.FindByNumber(ctx, "DUP")
	require.NoError(t, err)
	require.Equal(t, a, got)
}

func TestSQLStore_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	db := setupSQLTestDB(t, true)
	require.NoError(t, db.Create(&Record{Number: "BAD", Payload: []byte(`["not an invoice"]`)}).Error)
	s := NewSQLStore(db)

	_, err := s.LoadAll(ctx)
	require.ErrorIs(t, err, ErrCorrupt)
	_, err = s.FindByNumber(ctx, "BAD")
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestSQLStore_FindByNumberReportsCorruptLaterRow(t *testing.T) {
	ctx := context.Background()
	db := setupSQLTestDB(t, true)
	s := NewSQLStore(db)

	require.NoError(t, s.Append(ctx, testInvoice("GOOD")))
	require.NoError(t, db.Create(&Record{Number: "BAD", Payload: []byte(`"not an invoice"`)}).Error)

	_, err := s.FindByNumber(ctx, "GOOD")
	require.ErrorIs(t, err, ErrCorrupt)
}
