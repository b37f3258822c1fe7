package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/diewo77/hoadon/internal/fonts"
	"github.com/diewo77/hoadon/internal/layout"
)

// Canvas is a single-page drawing surface using layout coordinates
// (points, origin bottom-left).
type Canvas interface {
	SetFont(face fonts.Face, size float64)
	Text(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
	// Finish writes the encoded document. The canvas must not be used after.
	Finish(w io.Writer) error
}

// PDFCanvas draws onto a one-page US Letter PDF.
type PDFCanvas struct {
	pdf        *gofpdf.Fpdf
	registered map[string]bool
	translate  func(string) string
	unicode    bool
}

// NewPDFCanvas starts a blank Letter page measured in points.
func NewPDFCanvas() *PDFCanvas {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetLineWidth(1)
	pdf.AddPage()
	return &PDFCanvas{
		pdf:        pdf,
		registered: make(map[string]bool),
		translate:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// embeddedFamily avoids gofpdf's alias of "arial" to the core Helvetica font.
func embeddedFamily(face fonts.Face) string {
	return face.Family + "Unicode"
}

func (c *PDFCanvas) SetFont(face fonts.Face, size float64) {
	if !face.Unicode() {
		c.unicode = false
		c.pdf.SetFont(face.Family, face.Style, size)
		return
	}
	family := embeddedFamily(face)
	key := family + "/" + face.Style
	if !c.registered[key] {
		c.pdf.AddUTF8FontFromBytes(family, face.Style, face.Data)
		c.registered[key] = true
	}
	c.unicode = true
	c.pdf.SetFont(family, face.Style, size)
}

func (c *PDFCanvas) Text(x, y float64, s string) {
	if !c.unicode {
		s = c.translate(s)
	}
	c.pdf.Text(x, layout.PageHeight-y, s)
}

func (c *PDFCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, layout.PageHeight-y1, x2, layout.PageHeight-y2)
}

func (c *PDFCanvas) Finish(w io.Writer) error {
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("encode pdf: %w", err)
	}
	return nil
}

// Recorder is a Canvas that keeps a readable log of every call.
type Recorder struct {
	Calls []string
}

func (r *Recorder) SetFont(face fonts.Face, size float64) {
	r.Calls = append(r.Calls, fmt.Sprintf("SetFont(%s, %g)", face.Name(), size))
}

func (r *Recorder) Text(x, y float64, s string) {
	r.Calls = append(r.Calls, fmt.Sprintf("Text(%g, %g, %q)", x, y, s))
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.Calls = append(r.Calls, fmt.Sprintf("Line(%g, %g, %g, %g)", x1, y1, x2, y2))
}

// Finish writes the recorded calls, one per line.
func (r *Recorder) Finish(w io.Writer) error {
	_, err := io.WriteString(w, strings.Join(r.Calls, "\n"))
	return err
}

var (
	_ Canvas = (*PDFCanvas)(nil)
	_ Canvas = (*Recorder)(nil)
)
