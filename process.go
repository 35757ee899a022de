package iconversion

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var (
	// ShadeColor is the translucent backdrop painted over the band.
	ShadeColor = color.NRGBA{R: 0, G: 0, B: 0, A: 51}
	// TextColor is the label color.
	TextColor = color.White
)

// Processor : type with processing options
type Processor struct {
	Text    string
	Margins Insets

	BandHeightPercentage     float64
	BandBlurRadiusPercentage float64
	BandBlurSigmaPercentage  float64
	BlurMode                 BlurMode

	Typeface *Typeface

	// Inspect, when set, receives the output of every pipeline stage.
	Inspect func(stage string, img *image.NRGBA)

	// KeepIntermediates makes VersionFile save every stage next to the icon.
	KeepIntermediates bool
}

// NewProcessor builds a processor from validated options and loads its typeface.
func NewProcessor(opts Options) (*Processor, error) {
	var (
		tf  *Typeface
		err error
	)
	if opts.FontPath != "" {
		tf, err = LoadTypeface(opts.FontPath)
	} else {
		tf, err = DefaultTypeface()
	}
	if err != nil {
		return nil, err
	}

	mode := opts.BlurMode
	if mode == "" {
		mode = BlurGaussian
	}

	return &Processor{
		Text:                     opts.Text,
		Margins:                  opts.Margins(),
		BandHeightPercentage:     opts.BandHeightPercentage,
		BandBlurRadiusPercentage: opts.BandBlurRadiusPercentage,
		BandBlurSigmaPercentage:  opts.BandBlurSigmaPercentage,
		BlurMode:                 mode,
		Typeface:                 tf,
		KeepIntermediates:        opts.KeepIntermediates,
	}, nil
}

// Version draws the blurred band and its label over img and returns the
// result as a new image with the same dimensions.
func (p *Processor) Version(img image.Image) (*image.NRGBA, error) {
	return p.version(img, p.Inspect)
}

func (p *Processor) version(img image.Image, inspect func(string, *image.NRGBA)) (*image.NRGBA, error) {
	if p.Typeface == nil {
		return nil, fmt.Errorf("processor has no typeface")
	}
	src := imaging.Clone(img)
	geom := newBandGeometry(src.Bounds(), p)

	pipeline := NewPipeline(
		&bandBlurFilter{geom: geom, mode: p.BlurMode},
		&shadeFilter{geom: geom, color: ShadeColor},
		&labelFilter{geom: geom, text: p.Text, color: TextColor, typeface: p.Typeface},
	)
	pipeline.Inspect = inspect

	return pipeline.Apply(src)
}

// VersionFile versions the icon stored at path in place.
func (p *Processor) VersionFile(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open icon: %w", err)
	}

	inspect := p.Inspect
	var saveErr error
	if p.KeepIntermediates {
		inspect = func(stage string, img *image.NRGBA) {
			if err := imaging.Save(img, suffixPath(path, stage)); err != nil && saveErr == nil {
				saveErr = err
			}
		}
	}

	out, err := p.version(img, inspect)
	if err != nil {
		return err
	}
	if saveErr != nil {
		return fmt.Errorf("unable to save intermediate image: %w", saveErr)
	}
	if err := imaging.Save(out, path); err != nil {
		return fmt.Errorf("unable to save icon: %w", err)
	}
	return nil
}
