package iconversion

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Filter is one step of the band pipeline.
type Filter interface {
	// Name identifies the stage, e.g. when dumping intermediates.
	Name() string
	// Apply returns the filtered image. src must not be modified.
	Apply(src *image.NRGBA) (*image.NRGBA, error)
}

// Pipeline implements a list of filters applied to an image at once.
type Pipeline struct {
	Filters []Filter

	// Inspect, when set, receives the output of every filter.
	Inspect func(stage string, img *image.NRGBA)
}

// NewPipeline creates a pipeline running the given filters in order.
func NewPipeline(filters ...Filter) *Pipeline {
	return &Pipeline{Filters: filters}
}

// Apply runs all the filters, feeding each one the output of the previous.
func (p *Pipeline) Apply(src *image.NRGBA) (*image.NRGBA, error) {
	img := src
	for _, f := range p.Filters {
		out, err := f.Apply(img)
		if err != nil {
			return nil, err
		}
		if p.Inspect != nil {
			p.Inspect(f.Name(), out)
		}
		img = out
	}
	return img, nil
}

// bandBlurFilter blurs the icon and keeps the blurred pixels inside the band only.
type bandBlurFilter struct {
	geom bandGeometry
	mode BlurMode
}

func (f *bandBlurFilter) Name() string { return "blurred" }

func (f *bandBlurFilter) Apply(src *image.NRGBA) (*image.NRGBA, error) {
	dst := imaging.Clone(src)
	if f.geom.band.Empty() {
		return dst, nil
	}
	blurred := f.blur(src)
	draw.DrawMask(dst, f.geom.band, blurred, f.geom.band.Min, bandMask(f.geom), f.geom.band.Min, draw.Src)
	return dst, nil
}

func (f *bandBlurFilter) blur(src *image.NRGBA) *image.NRGBA {
	switch f.mode {
	case BlurBox:
		r := f.geom.boxRadius()
		if r <= 0 {
			return src
		}
		return boxBlur(src, r)
	default:
		sigma := f.geom.gaussianSigma()
		if sigma <= 0 {
			return src
		}
		return imaging.Blur(src, sigma)
	}
}

// boxBlur averages every pixel over a (2r+1) square, run as a horizontal
// then a vertical pass.
func boxBlur(src *image.NRGBA, r int) *image.NRGBA {
	length := 2*r + 1
	row := convolution.NewKernel(length, 1)
	col := convolution.NewKernel(1, length)
	for i := 0; i < length; i++ {
		row.Matrix[i] = 1 / float64(length)
		col.Matrix[i] = 1 / float64(length)
	}
	opts := &convolution.Options{Bias: 0, Wrap: false, KeepAlpha: false}
	h := convolution.Convolve(src, row, opts)
	return imaging.Clone(convolution.Convolve(h, col, opts))
}

// bandMask is opaque over the band and transparent elsewhere.
func bandMask(g bandGeometry) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, g.width, g.height))
	draw.Draw(mask, g.band, image.Opaque, image.Point{}, draw.Src)
	return mask
}

// shadeFilter darkens the band with a translucent black rectangle.
type shadeFilter struct {
	geom  bandGeometry
	color color.NRGBA
}

func (f *shadeFilter) Name() string { return "shaded" }

func (f *shadeFilter) Apply(src *image.NRGBA) (*image.NRGBA, error) {
	if f.geom.band.Empty() {
		return imaging.Clone(src), nil
	}
	ctx := gg.NewContextForImage(src)
	b := f.geom.band
	ctx.DrawRectangle(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()))
	ctx.SetColor(f.color)
	ctx.Fill()
	return imaging.Clone(ctx.Image()), nil
}

// labelFilter writes the text centered inside the band margins.
type labelFilter struct {
	geom     bandGeometry
	text     string
	color    color.Color
	typeface *Typeface
}

func (f *labelFilter) Name() string { return "text" }

func (f *labelFilter) Apply(src *image.NRGBA) (*image.NRGBA, error) {
	box := f.geom.label
	face, _, err := f.typeface.FitFace(f.text, box.Dx(), box.Dy())
	if err != nil {
		return nil, err
	}
	if face == nil {
		return imaging.Clone(src), nil
	}
	defer face.Close()

	ctx := gg.NewContextForImage(src)
	ctx.SetFontFace(face)
	ctx.SetColor(f.color)

	tw, th := measure(face, f.text)
	ascent := float64(face.Metrics().Ascent) / 64
	x := float64(box.Min.X) + (float64(box.Dx())-tw)/2
	y := float64(box.Min.Y) + (float64(box.Dy())-th)/2 + ascent
	ctx.DrawString(f.text, x, y)

	return imaging.Clone(ctx.Image()), nil
}
