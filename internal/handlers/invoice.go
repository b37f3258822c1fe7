package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/hoadon/httpx"
	"github.com/diewo77/hoadon/internal/models"
	"github.com/diewo77/hoadon/internal/render"
	"github.com/diewo77/hoadon/internal/services"
	"github.com/diewo77/hoadon/internal/store"
	"github.com/diewo77/hoadon/validation"
)

const maxBodyBytes = 1 << 20

const (
	msgNoData   = "No data provided"
	msgNoStore  = "No invoices found"
	msgInternal = "internal_error"
)

var (
	stringFields  = []string{"invoiceNumber", "invoiceDate", "dueDate", "customerName", "customerAddress", "customerPhone", "customerEmail"}
	numericFields = []string{"subtotal", "taxRate", "grandTotal"}
)

type InvoiceHandler struct {
	svc *services.InvoiceService
	log *zap.Logger
}

func NewInvoiceHandler(svc *services.InvoiceService, log *zap.Logger) *InvoiceHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvoiceHandler{svc: svc, log: log}
}

// Save stores the posted invoice and echoes it back.
func (h *InvoiceHandler) Save(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := h.svc.Save(r.Context(), inv); err != nil {
		h.fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "Invoice saved successfully",
		"invoice": inv,
	})
}

// ExportPDF renders a stored invoice and sends it as a download.
func (h *InvoiceHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("invoice_number")
	doc, err := h.svc.ExportByNumber(r.Context(), number)
	switch {
	case errors.Is(err, store.ErrEmpty):
		httpx.JSONError(w, http.StatusNotFound, msgNoStore, nil)
		return
	case errors.Is(err, store.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "Invoice with number "+number+" not found", nil)
		return
	case err != nil:
		h.fail(w, err)
		return
	}
	sendDocument(w, doc)
}

// ExportDirect renders the posted invoice without storing it.
func (h *InvoiceHandler) ExportDirect(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.decode(w, r)
	if !ok {
		return
	}
	doc, err := h.svc.ExportDirect(r.Context(), inv)
	if err != nil {
		h.fail(w, err)
		return
	}
	sendDocument(w, doc)
}

// List returns every stored invoice.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": invoices, "count": len(invoices)})
}

func Health(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func sendDocument(w http.ResponseWriter, doc render.Document) {
	httpx.Attachment(w, doc.Name, "application/pdf", doc.Bytes)
}

func (h *InvoiceHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNoData):
		httpx.JSONError(w, http.StatusBadRequest, msgNoData, nil)
	case errors.Is(err, store.ErrCorrupt):
		h.log.Error("invoice store unreadable", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "invoice_store_corrupt", nil)
	default:
		h.log.Error("request failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, msgInternal, nil)
	}
}

// decode reads an invoice from the request body. It writes the error
// response itself and reports false when the body is unusable.
func (h *InvoiceHandler) decode(w http.ResponseWriter, r *http.Request) (models.Invoice, bool) {
	var inv models.Invoice
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "body_too_large", nil)
			return inv, false
		}
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return inv, false
	}
	if isBlank(body) {
		httpx.JSONError(w, http.StatusBadRequest, msgNoData, nil)
		return inv, false
	}

	fields, ok := validation.Fields(body)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return inv, false
	}
	if len(fields) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, msgNoData, nil)
		return inv, false
	}

	v := make(validation.Violations)
	for _, f := range stringFields {
		validation.String(f, fields, v)
	}
	for _, f := range numericFields {
		validation.Scalar(f, fields, v)
	}
	validation.Array("products", fields, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_invoice", v)
		return inv, false
	}

	if err := json.Unmarshal(body, &inv); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return inv, false
	}
	if inv.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, msgNoData, nil)
		return inv, false
	}
	return inv, true
}

func isBlank(body []byte) bool {
	body = bytes.TrimSpace(body)
	return len(body) == 0 || string(body) == "null"
}
