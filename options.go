package iconversion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

const (
	// AppIconSetExt is the directory suffix of an icon asset catalog.
	AppIconSetExt = ".appiconset"

	// MaxBlurSigmaPercentage is the largest accepted blur sigma percentage.
	MaxBlurSigmaPercentage = 65355
)

// BlurMode selects the blur applied to the band.
type BlurMode string

const (
	BlurGaussian BlurMode = "gaussian"
	BlurBox      BlurMode = "box"
)

// String implements the pflag.Value interface.
func (m *BlurMode) String() string {
	if m == nil || *m == "" {
		return string(BlurGaussian)
	}
	return string(*m)
}

// Set implements the pflag.Value interface.
func (m *BlurMode) Set(v string) error {
	mode := BlurMode(strings.ToLower(strings.TrimSpace(v)))
	if !mode.valid() {
		return fmt.Errorf("%w: %q", ErrBlurMode, v)
	}
	*m = mode
	return nil
}

// Type implements the pflag.Value interface.
func (m *BlurMode) Type() string { return "mode" }

func (m BlurMode) valid() bool {
	return m == BlurGaussian || m == BlurBox
}

// Options holds the user facing settings of a versioning run.
// All percentages are fractions: 0.5 means half of the icon dimension.
type Options struct {
	AppIconSetPath string
	Text           string

	// TextMarginsPercentages accepts 1, 2 or 4 values, read the same
	// way as the CSS margin shorthand.
	TextMarginsPercentages []float64

	BandHeightPercentage     float64
	BandBlurRadiusPercentage float64
	BandBlurSigmaPercentage  float64

	// IgnoredIconsRegex excludes every icon whose path matches it.
	IgnoredIconsRegex *regexp.Regexp

	// FontPath points to a TrueType or OpenType file. The embedded
	// Go Bold face is used when empty.
	FontPath string
	BlurMode BlurMode

	// Workers bounds the number of icons processed at once.
	// Zero means one per CPU.
	Workers int

	// KeepIntermediates writes every pipeline stage next to the icon.
	KeepIntermediates bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Text:                     "VERSION",
		TextMarginsPercentages:   []float64{0.06},
		BandHeightPercentage:     0.5,
		BandBlurRadiusPercentage: 0.5,
		BandBlurSigmaPercentage:  0.5,
		BlurMode:                 BlurGaussian,
	}
}

// Validate checks the options and returns the first violation found.
func (o Options) Validate() error {
	if err := validateAppIconSet(o.AppIconSetPath); err != nil {
		return err
	}
	if err := validateMargins(o.TextMarginsPercentages); err != nil {
		return err
	}

	switch {
	case o.BandHeightPercentage < 0:
		return fmt.Errorf("%w: %v", ErrBandHeightBelowZero, o.BandHeightPercentage)
	case o.BandHeightPercentage > 1:
		return fmt.Errorf("%w: %v", ErrBandHeightAboveOne, o.BandHeightPercentage)
	case o.BandBlurRadiusPercentage < 0:
		return fmt.Errorf("%w: %v", ErrBlurRadiusBelowZero, o.BandBlurRadiusPercentage)
	case o.BandBlurSigmaPercentage < 0:
		return fmt.Errorf("%w: %v", ErrBlurSigmaBelowZero, o.BandBlurSigmaPercentage)
	case o.BandBlurSigmaPercentage > MaxBlurSigmaPercentage:
		return fmt.Errorf("%w: %v", ErrBlurSigmaTooLarge, o.BandBlurSigmaPercentage)
	}

	if strings.TrimSpace(o.Text) == "" {
		return ErrEmptyText
	}
	if o.BlurMode != "" && !o.BlurMode.valid() {
		return fmt.Errorf("%w: %q", ErrBlurMode, o.BlurMode)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrWorkers, o.Workers)
	}
	return nil
}

func validateAppIconSet(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrAppIconSetNotFound, path)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrAppIconSetNotDir, path)
	}
	if filepath.Ext(filepath.Clean(path)) != AppIconSetExt {
		return fmt.Errorf("%w: %s", ErrAppIconSetName, path)
	}
	return nil
}

func validateMargins(margins []float64) error {
	switch len(margins) {
	case 1, 2, 4:
	default:
		return fmt.Errorf("%w: got %d", ErrMarginsCount, len(margins))
	}
	for _, m := range margins {
		if m < 0 {
			return fmt.Errorf("%w: %v", ErrMarginBelowZero, m)
		}
		if m > 1 {
			return fmt.Errorf("%w: %v", ErrMarginAboveOne, m)
		}
	}
	return nil
}

// Insets are the label margins, as fractions, on every side of the band.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Margins expands TextMarginsPercentages into insets. A malformed list
// yields zero insets; Validate reports it.
func (o Options) Margins() Insets {
	m := o.TextMarginsPercentages
	switch len(m) {
	case 1:
		return Insets{m[0], m[0], m[0], m[0]}
	case 2:
		return Insets{Top: m[0], Right: m[1], Bottom: m[0], Left: m[1]}
	case 4:
		return Insets{Top: m[0], Right: m[1], Bottom: m[2], Left: m[3]}
	}
	return Insets{}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}
