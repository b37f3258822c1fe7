package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/diewo77/hoadon/internal/metrics"
	"github.com/diewo77/hoadon/internal/models"
	"github.com/diewo77/hoadon/internal/render"
	"github.com/diewo77/hoadon/internal/store"
)

// ErrNoData is returned when an invoice carries no fields at all.
var ErrNoData = errors.New("no data provided")

// Renderer produces a document for an invoice.
type Renderer interface {
	Render(ctx context.Context, inv models.Invoice) (render.Document, error)
}

// InvoiceService ties the record store to the document renderer.
type InvoiceService struct {
	store    store.Store
	renderer Renderer
	log      *zap.Logger
	metrics  *metrics.Metrics
}

func NewInvoiceService(s store.Store, r Renderer, log *zap.Logger, m *metrics.Metrics) *InvoiceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvoiceService{store: s, renderer: r, log: log, metrics: m}
}

// Save appends inv to the store.
func (s *InvoiceService) Save(ctx context.Context, inv models.Invoice) error {
	if inv.Empty() {
		return ErrNoData
	}
	if err := s.store.Append(ctx, inv); err != nil {
		return err
	}
	s.metrics.InvoiceSaved()
	s.log.Info("invoice saved", zap.String("invoice", inv.InvoiceNumber))
	return nil
}

// ExportByNumber renders the first stored invoice whose number matches.
// It returns store.ErrEmpty when nothing has been saved yet and
// store.ErrNotFound when no record matches.
func (s *InvoiceService) ExportByNumber(ctx context.Context, number string) (render.Document, error) {
	inv, err := s.store.FindByNumber(ctx, number)
	if err != nil {
		return render.Document{}, err
	}
	return s.renderer.Render(ctx, inv)
}

// ExportDirect renders inv without storing it.
func (s *InvoiceService) ExportDirect(ctx context.Context, inv models.Invoice) (render.Document, error) {
	if inv.Empty() {
		return render.Document{}, ErrNoData
	}
	return s.renderer.Render(ctx, inv)
}

// List returns every stored invoice in insertion order.
func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	return s.store.LoadAll(ctx)
}
