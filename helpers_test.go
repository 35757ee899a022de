package iconversion

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// gradientIcon returns an opaque icon with a diagonal color gradient.
func gradientIcon(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

// solidIcon returns an opaque icon filled with c.
func solidIcon(w, h int, c color.NRGBA) *image.NRGBA {
	return imaging.New(w, h, c)
}

// newCatalog creates dir/name holding one PNG per entry of sizes.
func newCatalog(t *testing.T, dir, name string, sizes map[string]int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(path, 0o755))
	for file, size := range sizes {
		require.NoError(t, imaging.Save(gradientIcon(size, size), filepath.Join(path, file)))
	}
	require.NoError(t, os.WriteFile(filepath.Join(path, "Contents.json"), []byte(`{"images":[]}`), 0o644))
	return path
}
