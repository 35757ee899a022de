package iconversion

import (
	"image"
	"math"

	"golang.org/x/exp/constraints"
)

// bandGeometry holds the pixel measures of the band for one icon size.
type bandGeometry struct {
	width, height int

	// band is the rectangle covered by the band, flush with the bottom edge.
	band image.Rectangle
	// label is the band minus the text margins.
	label image.Rectangle

	blurRadius float64
	blurSigma  float64
}

func newBandGeometry(bounds image.Rectangle, p *Processor) bandGeometry {
	w, h := bounds.Dx(), bounds.Dy()

	bandHeight := clamp(int(math.Round(float64(h)*p.BandHeightPercentage)), 0, h)
	band := image.Rect(0, h-bandHeight, w, h)

	m := p.Margins
	// Not built with image.Rect: overlapping margins must stay empty
	// instead of being swapped into a valid rectangle.
	label := image.Rectangle{
		Min: image.Pt(
			band.Min.X+int(math.Round(float64(w)*m.Left)),
			band.Min.Y+int(math.Round(float64(bandHeight)*m.Top)),
		),
		Max: image.Pt(
			band.Max.X-int(math.Round(float64(w)*m.Right)),
			band.Max.Y-int(math.Round(float64(bandHeight)*m.Bottom)),
		),
	}

	return bandGeometry{
		width:      w,
		height:     h,
		band:       band,
		label:      label.Intersect(band),
		blurRadius: float64(w) * p.BandBlurRadiusPercentage,
		blurSigma:  float64(w) * p.BandBlurSigmaPercentage,
	}
}

// gaussianSigma returns the sigma of the untruncated Gaussian used in place
// of a Gaussian of blurSigma cut at blurRadius. When the radius is below
// 3σ the sigma becomes radius/3, which is softer than a truncated kernel:
// with radius == sigma the truncated kernel is close to a flat mean, this
// one still peaks at the center. A zero radius keeps the sigma. The result
// never exceeds the largest icon side, past which the blur is a flat mean.
func (g bandGeometry) gaussianSigma() float64 {
	sigma := g.blurSigma
	if g.blurRadius > 0 && g.blurRadius < 3*sigma {
		sigma = g.blurRadius / 3
	}
	return min(sigma, float64(max(g.width, g.height)))
}

// boxRadius is the box blur radius in pixels, capped at the largest icon side.
func (g bandGeometry) boxRadius() int {
	return clamp(int(math.Round(g.blurRadius)), 0, max(g.width, g.height))
}

// clamp restricts v to the [lo, hi] range.
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
