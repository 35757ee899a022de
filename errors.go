package iconversion

import "errors"

// Sentinel errors returned by Options.Validate.
var (
	ErrAppIconSetNotFound = errors.New("Appiconset not found")
	ErrAppIconSetNotDir   = errors.New("Appiconset is not a directory")
	ErrAppIconSetName     = errors.New("Appiconset does not end with .appiconset")

	ErrMarginsCount    = errors.New("The number of margins is not equal to 1, 2 or 4")
	ErrMarginBelowZero = errors.New("At least one margin percentage is less than 0")
	ErrMarginAboveOne  = errors.New("At least one margin percentage is greater than 1")

	ErrBandHeightBelowZero = errors.New("Band height percentage is less than 0")
	ErrBandHeightAboveOne  = errors.New("Band height percentage is greater than 1")
	ErrBlurRadiusBelowZero = errors.New("Band blur radius percentage is less than 0")
	ErrBlurSigmaBelowZero  = errors.New("Band blur sigma percentage is less than 0")
	ErrBlurSigmaTooLarge   = errors.New("Band blur sigma percentage is greater than 65355")

	ErrEmptyText = errors.New("Text is empty")
	ErrBlurMode  = errors.New("unknown blur mode")
	ErrWorkers   = errors.New("number of workers is less than 0")

	// ErrVersionedPath is returned by Catalog.Run when the versioned copy
	// would overwrite the source catalog.
	ErrVersionedPath = errors.New("versioned path overlaps the appiconset")
)
