// Package fonts decides which concrete fonts back the "regular" and "bold"
// roles used on generated documents.
//
// Invoice labels are Vietnamese and need a TrueType font with full Unicode
// coverage. When that font cannot be loaded the built-in Helvetica family is
// used instead; it only covers Latin-1, so some glyphs degrade, but a
// document is always produced.
package fonts

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
	"golang.org/x/image/font/sfnt"
)

// Role is the logical font slot requested by the layout.
type Role int

const (
	Regular Role = iota
	Bold
)

func (r Role) String() string {
	if r == Bold {
		return "bold"
	}
	return "regular"
}

const (
	// UnicodeFamily names the preferred TrueType family.
	UnicodeFamily = "Arial"
	// FallbackFamily is a built-in PDF core font, always available.
	FallbackFamily = "Helvetica"

	styleRegular = ""
	styleBold    = "B"
)

// Face is a concrete font. Data holds the TrueType file for embedded faces
// and is empty for built-in ones.
type Face struct {
	Family string
	Style  string
	Data   []byte
}

// Name returns the identifier of the face, e.g. "Arial-Bold".
func (f Face) Name() string {
	if f.Style == styleBold {
		return f.Family + "-Bold"
	}
	return f.Family
}

// Unicode reports whether the face is an embedded TrueType font.
func (f Face) Unicode() bool { return len(f.Data) > 0 }

// Config locates the preferred font files.
type Config struct {
	Dir         string
	RegularFile string
	BoldFile    string
}

// DefaultDir returns the system font directory for the current platform.
func DefaultDir() string {
	if win := os.Getenv("WINDIR"); win != "" {
		return filepath.Join(win, "Fonts")
	}
	return "/usr/share/fonts/truetype/msttcorefonts"
}

// DefaultConfig looks for arial.ttf and arialbd.ttf in DefaultDir.
func DefaultConfig() Config {
	return Config{Dir: DefaultDir(), RegularFile: "arial.ttf", BoldFile: "arialbd.ttf"}
}

// FontSet maps both roles to faces. It is built once by Resolve and never
// modified afterwards.
type FontSet struct {
	regular Face
	bold    Face
}

// Fallback returns the built-in Helvetica set.
func Fallback() FontSet {
	return FontSet{
		regular: Face{Family: FallbackFamily, Style: styleRegular},
		bold:    Face{Family: FallbackFamily, Style: styleBold},
	}
}

// Resolve loads the preferred faces described by cfg. Each weight is
// resolved on its own; a weight whose file is missing or invalid falls back
// to Helvetica. Resolve never fails.
func Resolve(cfg Config, log *zap.Logger) FontSet {
	if log == nil {
		log = zap.NewNop()
	}
	return FontSet{
		regular: resolveFontOrFallback(cfg.Dir, cfg.RegularFile, styleRegular, log),
		bold:    resolveFontOrFallback(cfg.Dir, cfg.BoldFile, styleBold, log),
	}
}

func resolveFontOrFallback(dir, file, style string, log *zap.Logger) Face {
	fallback := Face{Family: FallbackFamily, Style: style}
	if file == "" {
		return fallback
	}
	path := filepath.Join(dir, file)
	face, err := loadFace(path, style)
	if err != nil {
		log.Warn("font unavailable, using built-in fallback",
			zap.String("path", path),
			zap.String("fallback", fallback.Name()),
			zap.Error(err))
		return fallback
	}
	log.Debug("font registered", zap.String("path", path), zap.String("face", face.Name()))
	return face
}

func loadFace(path, style string) (Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Face{}, err
	}
	if _, err := sfnt.Parse(data); err != nil {
		return Face{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := checkEmbeddable(data, style); err != nil {
		return Face{}, fmt.Errorf("embed %s: %w", path, err)
	}
	return Face{Family: UnicodeFamily, Style: style, Data: data}, nil
}

var errOutlines = errors.New("only TrueType (glyf) outlines can be embedded")

// checkEmbeddable registers data on a scratch document, the same way the PDF
// canvas will. gofpdf skips fonts it cannot parse without recording an error,
// so selecting the face afterwards is what surfaces the failure.
func checkEmbeddable(data []byte, style string) (err error) {
	if len(data) < 4 {
		return errOutlines
	}
	switch binary.BigEndian.Uint32(data) {
	case 0x00010000, 0x74727565: // TrueType, 'true'
	default:
		return errOutlines
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("font parser: %v", r)
		}
	}()
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.AddUTF8FontFromBytes("check", style, data)
	pdf.SetFont("check", style, 12)
	return pdf.Error()
}

// Face returns the face bound to role.
func (s FontSet) Face(role Role) Face {
	if role == Bold {
		return s.bold
	}
	return s.regular
}

// RegularFontName is the identifier used for regular text.
func (s FontSet) RegularFontName() string { return s.regular.Name() }

// BoldFontName is the identifier used for bold text.
func (s FontSet) BoldFontName() string { return s.bold.Name() }

// UsesFallback reports whether role resolved to the built-in family.
func (s FontSet) UsesFallback(role Role) bool { return !s.Face(role).Unicode() }
