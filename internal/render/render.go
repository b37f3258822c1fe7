// Package render draws invoices to PDF and stores the result on disk.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/diewo77/hoadon/internal/fonts"
	"github.com/diewo77/hoadon/internal/layout"
	"github.com/diewo77/hoadon/internal/metrics"
	"github.com/diewo77/hoadon/internal/models"
)

// Document is a rendered invoice: the bytes and where they were written.
type Document struct {
	Name  string
	Path  string
	Bytes []byte
}

// Renderer turns invoices into documents. It holds no per-render state and
// may be shared between goroutines.
type Renderer struct {
	fonts     fonts.FontSet
	outDir    string
	newCanvas func() Canvas
	now       func() time.Time
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithCanvas replaces the PDF backend, mostly for tests.
func WithCanvas(fn func() Canvas) Option {
	return func(r *Renderer) { r.newCanvas = fn }
}

// WithClock sets the time source used for timestamp file names.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// WithMetrics counts renders on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Renderer) { r.metrics = m }
}

// New returns a Renderer writing into outDir with the given fonts.
func New(set fonts.FontSet, outDir string, log *zap.Logger, opts ...Option) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		fonts:     set,
		outDir:    outDir,
		newCanvas: func() Canvas { return NewPDFCanvas() },
		now:       time.Now,
		log:       log,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OutDir is the directory documents are written to.
func (r *Renderer) OutDir() string { return r.outDir }

// Render lays out inv, encodes it and writes <stem>.pdf into the output
// directory, replacing any existing file of that name.
func (r *Renderer) Render(ctx context.Context, inv models.Invoice) (Document, error) {
	doc, err := r.render(ctx, inv)
	if err != nil {
		r.metrics.RenderFailed()
		r.log.Error("render failed", zap.String("invoice", inv.InvoiceNumber), zap.Error(err))
		return Document{}, err
	}
	r.metrics.DocumentRendered()
	r.log.Info("document rendered", zap.String("path", doc.Path), zap.Int("bytes", len(doc.Bytes)))
	return doc, nil
}

func (r *Renderer) render(ctx context.Context, inv models.Invoice) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	name := fileName(inv.FileStem(r.now())) + ".pdf"

	canvas := r.newCanvas()
	Replay(layout.Layout(&inv), r.fonts, canvas)
	var buf bytes.Buffer
	if err := canvas.Finish(&buf); err != nil {
		return Document{}, err
	}

	path := filepath.Join(r.outDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Document{}, fmt.Errorf("write %s: %w", path, err)
	}
	return Document{Name: name, Path: path, Bytes: buf.Bytes()}, nil
}

// fileName keeps an invoice number from escaping the output directory.
func fileName(stem string) string {
	return strings.NewReplacer("/", "_", `\`, "_").Replace(stem)
}

// Replay draws ops onto c, resolving font roles through set.
func Replay(ops []layout.DrawOp, set fonts.FontSet, c Canvas) {
	for _, op := range ops {
		switch op.Kind {
		case layout.SetFont:
			c.SetFont(set.Face(op.Role), op.Size)
		case layout.Text:
			c.Text(op.X, op.Y, op.Text)
		case layout.Line:
			c.Line(op.X, op.Y, op.X2, op.Y2)
		}
	}
}
