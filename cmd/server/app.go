package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/hoadon/internal/handlers"
	"github.com/diewo77/hoadon/internal/metrics"
	"github.com/diewo77/hoadon/internal/services"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	invoice *handlers.InvoiceHandler
	metrics *metrics.Metrics
}

// NewApp creates a new application with all routes configured.
func NewApp(svc *services.InvoiceService, m *metrics.Metrics, log *zap.Logger) *App {
	app := &App{
		mux:     http.NewServeMux(),
		invoice: handlers.NewInvoiceHandler(svc, log),
		metrics: m,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	ih := a.invoice

	a.mux.HandleFunc("POST /save_invoice", ih.Save)
	a.mux.HandleFunc("GET /export_pdf/{invoice_number}", ih.ExportPDF)
	a.mux.HandleFunc("POST /export_pdf_direct", ih.ExportDirect)
	a.mux.HandleFunc("GET /invoices", ih.List)

	a.mux.HandleFunc("GET /healthz", handlers.Health)
	a.mux.Handle("GET /metrics", a.metrics.Handler())
}
