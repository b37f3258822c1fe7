package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/diewo77/hoadon/internal/models"
)

// Record is one stored invoice row. The payload keeps the submitted document
// verbatim; Number is copied out of it for lookups.
type Record struct {
	ID        uint           `gorm:"primaryKey"`
	Number    string         `gorm:"size:255;index"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
}

// TableName pins the table name independently of the struct name.
func (Record) TableName() string { return "invoice_records" }

var _ Store = (*SQLStore)(nil)

// SQLStore keeps invoices in a database table, one row per append. Row ids
// give the insertion order.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore wraps an open connection. The table is created by db.Migrate.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) LoadAll(ctx context.Context) ([]models.Invoice, error) {
	if !s.db.WithContext(ctx).Migrator().HasTable(&Record{}) {
		return []models.Invoice{}, nil
	}
	var records []Record
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}
	invoices := make([]models.Invoice, 0, len(records))
	for _, rec := range records {
		inv, err := rec.decode()
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (s *SQLStore) Append(ctx context.Context, inv models.Invoice) error {
	payload, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encode invoice: %w", err)
	}
	rec := Record{Number: inv.InvoiceNumber, Payload: datatypes.JSON(payload)}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// FindByNumber scans every row in insertion order, so a corrupt payload
// anywhere in the table is reported even when an earlier row matches.
func (s *SQLStore) FindByNumber(ctx context.Context, number string) (models.Invoice, error) {
	if !s.db.WithContext(ctx).Migrator().HasTable(&Record{}) {
		return models.Invoice{}, ErrEmpty
	}
	invoices, err := s.LoadAll(ctx)
	if err != nil {
		return models.Invoice{}, err
	}
	return first(invoices, number)
}

func (rec Record) decode() (models.Invoice, error) {
	var inv models.Invoice
	if err := json.Unmarshal(rec.Payload, &inv); err != nil {
		return models.Invoice{}, &CorruptError{Source: fmt.Sprintf("%s#%d", rec.TableName(), rec.ID), Err: err}
	}
	return inv, nil
}
