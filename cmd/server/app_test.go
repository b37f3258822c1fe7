package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/diewo77/hoadon/internal/bootstrap"
	"github.com/diewo77/hoadon/internal/config"
	"github.com/diewo77/hoadon/internal/metrics"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Store:  config.StoreConfig{Driver: config.DriverSQLite, DSN: filepath.Join(dir, "invoices.db")},
		Render: config.RenderConfig{OutputDir: filepath.Join(dir, "pdf"), FontDir: dir},
	}
	m := metrics.New()
	svc, err := bootstrap.InvoiceService(cfg, zap.NewNop(), m)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	srv := httptest.NewServer(NewApp(svc, m, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func TestApp_SaveExportFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/save_invoice", "application/json",
		strings.NewReader(`{"invoiceNumber":"E2E-1","customerName":"Phạm D","grandTotal":"1,100"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save: expected 200 got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/export_pdf/E2E-1")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatalf("export: status %d, body prefix %q", resp.StatusCode, body[:min(len(body), 8)])
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	for _, want := range []string{
		"hoadon_invoices_saved_total 1",
		"hoadon_documents_rendered_total 1",
		`hoadon_font_fallback{role="regular"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestApp_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/save_invoice")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 got %d", resp.StatusCode)
	}
}

func TestWithLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := withLogging(zap.New(core), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["status"]; got != int64(http.StatusTeapot) {
		t.Errorf("status field = %v", got)
	}
}
