package iconversion

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// referenceSize is the point size used to measure a label before scaling
// it to the available room.
const referenceSize = 100

// Typeface is a parsed font able to produce faces of any size.
type Typeface struct {
	font *opentype.Font
}

// DefaultTypeface returns the embedded Go Bold typeface.
func DefaultTypeface() (*Typeface, error) {
	return ParseTypeface(gobold.TTF)
}

// LoadTypeface reads a TrueType or OpenType font from disk.
func LoadTypeface(path string) (*Typeface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read font file: %w", err)
	}
	return ParseTypeface(data)
}

// ParseTypeface parses raw TrueType or OpenType font data.
func ParseTypeface(data []byte) (*Typeface, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse font: %w", err)
	}
	return &Typeface{font: f}, nil
}

// Face returns a font face of the given point size at 72 DPI.
func (t *Typeface) Face(size float64) (font.Face, error) {
	return opentype.NewFace(t.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// FitFace returns the largest face rendering text on a single line
// inside a w x h box. The size is zero when nothing fits.
func (t *Typeface) FitFace(text string, w, h int) (font.Face, float64, error) {
	if w <= 0 || h <= 0 || text == "" {
		return nil, 0, nil
	}
	ref, err := t.Face(referenceSize)
	if err != nil {
		return nil, 0, err
	}
	defer ref.Close()

	tw, th := measure(ref, text)
	if tw <= 0 || th <= 0 {
		return nil, 0, nil
	}
	size := referenceSize * min(float64(w)/tw, float64(h)/th)

	face, err := t.Face(size)
	if err != nil {
		return nil, 0, err
	}
	return face, size, nil
}

// measure returns the advance width and the line height of text.
func measure(face font.Face, text string) (float64, float64) {
	m := face.Metrics()
	width := font.MeasureString(face, text)
	return float64(width) / 64, float64(m.Ascent+m.Descent) / 64
}
