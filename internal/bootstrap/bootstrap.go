// Package bootstrap assembles the invoice service from configuration. It is
// shared by the HTTP server and the command line tool.
package bootstrap

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/diewo77/hoadon/internal/config"
	"github.com/diewo77/hoadon/internal/db"
	"github.com/diewo77/hoadon/internal/fonts"
	"github.com/diewo77/hoadon/internal/metrics"
	"github.com/diewo77/hoadon/internal/render"
	"github.com/diewo77/hoadon/internal/services"
)

// InvoiceService resolves fonts, opens the store and prepares the output
// directory. m may be nil.
func InvoiceService(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (*services.InvoiceService, error) {
	st, err := db.OpenStore(cfg.Store, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := os.MkdirAll(cfg.Render.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	set := fonts.Resolve(cfg.Render.Fonts(), log)
	m.ObserveFonts(set)
	log.Info("fonts resolved",
		zap.String("regular", set.RegularFontName()),
		zap.String("bold", set.BoldFontName()))

	r := render.New(set, cfg.Render.OutputDir, log, render.WithMetrics(m))
	return services.NewInvoiceService(st, r, log, m), nil
}
