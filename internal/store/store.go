// Package store persists submitted invoices as an append-only collection.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/hoadon/internal/models"
)

// Sentinel errors returned by Store implementations.
var (
	ErrNotFound = errors.New("invoice not found")
	ErrCorrupt  = errors.New("invoice store is corrupt")

	// ErrEmpty means the backing collection has never been created.
	ErrEmpty = fmt.Errorf("no invoices found: %w", ErrNotFound)
)

// CorruptError reports backing content that could not be decoded.
type CorruptError struct {
	Source string
	Err    error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Source, ErrCorrupt, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }

// Store is an ordered collection of invoices. Records are never updated or
// removed, and invoice numbers are not required to be unique.
type Store interface {
	// LoadAll returns every invoice in insertion order, or an empty slice
	// when nothing was ever stored.
	LoadAll(ctx context.Context) ([]models.Invoice, error)
	// Append adds inv at the end of the collection.
	Append(ctx context.Context, inv models.Invoice) error
	// FindByNumber returns the first invoice with the given number.
	FindByNumber(ctx context.Context, number string) (models.Invoice, error)
}

// first scans invoices in order and returns the first match.
func first(invoices []models.Invoice, number string) (models.Invoice, error) {
	for _, inv := range invoices {
		if inv.InvoiceNumber == number {
			return inv, nil
		}
	}
	return models.Invoice{}, fmt.Errorf("invoice %q: %w", number, ErrNotFound)
}
