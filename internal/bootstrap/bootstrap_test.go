package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/diewo77/hoadon/internal/config"
	"github.com/diewo77/hoadon/internal/models"
)

func TestInvoiceService(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Store: config.StoreConfig{Driver: config.DriverFile, DataFile: filepath.Join(dir, "invoices.json")},
		Render: config.RenderConfig{
			OutputDir:   filepath.Join(dir, "out", "pdf"),
			FontDir:     filepath.Join(dir, "fonts"),
			RegularFont: "arial.ttf",
			BoldFont:    "arialbd.ttf",
		},
	}
	svc, err := InvoiceService(cfg, zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("InvoiceService: %v", err)
	}
	if _, err := os.Stat(cfg.Render.OutputDir); err != nil {
		t.Fatalf("output dir not created: %v", err)
	}

	doc, err := svc.ExportDirect(context.Background(), models.Invoice{InvoiceNumber: "B-1"})
	if err != nil {
		t.Fatalf("ExportDirect: %v", err)
	}
	if doc.Path != filepath.Join(cfg.Render.OutputDir, "B-1.pdf") {
		t.Errorf("Path = %q", doc.Path)
	}
}

func TestInvoiceService_BadDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "mongo"}}
	if _, err := InvoiceService(cfg, zap.NewNop(), nil); err == nil {
		t.Fatal("expected error")
	}
}
