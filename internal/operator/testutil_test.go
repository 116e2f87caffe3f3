package operator

import (
	"image"
	"image/color"
	"testing"

	"github.com/pixelmill/pixelmill/internal/imagetype"
	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// solidImage builds an in-memory handle filled with one color.
func solidImage(w, h int, c color.NRGBA, src imagetype.ImageType) *raster.Image {
	pix := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix.SetNRGBA(x, y, c)
		}
	}
	return &raster.Image{Pix: pix, Meta: raster.Metadata{SourceType: src}}
}

// gradientImage builds a handle whose pixel values encode their own
// coordinates, so placement after a crop or rotation can be verified.
func gradientImage(w, h int, src imagetype.ImageType) *raster.Image {
	pix := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x40, A: 0xff})
		}
	}
	return &raster.Image{Pix: pix, Meta: raster.Metadata{SourceType: src}}
}

func mustParse(t *testing.T, query string) *params.Params {
	t.Helper()
	p, err := params.Parse(query)
	if err != nil {
		t.Fatalf("Parse(%q): %v", query, err)
	}
	return p
}

func nrgbaAt(t *testing.T, pix image.Image, x, y int) color.NRGBA {
	t.Helper()
	return color.NRGBAModel.Convert(pix.At(x, y)).(color.NRGBA)
}

func wantDims(t *testing.T, img *raster.Image, w, h int) {
	t.Helper()
	if img.Width() != w || img.Height() != h {
		t.Fatalf("dimensions = %dx%d, want %dx%d", img.Width(), img.Height(), w, h)
	}
}
