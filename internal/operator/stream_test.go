package operator

import (
	"image"
	"testing"

	"github.com/pixelmill/pixelmill/internal/imagetype"
	"github.com/pixelmill/pixelmill/internal/raster"
)

func TestStreamRebasesWindowedRaster(t *testing.T) {
	// A sub-image keeps its parent's coordinate space; the terminal
	// operator must hand the encoder a zero-based contiguous buffer.
	full := gradientImage(10, 10, imagetype.PNG)
	window := full.Pix.(*image.NRGBA).SubImage(image.Rect(2, 3, 8, 7))
	img := full.WithPix(window)

	out, err := (Stream{}).Apply(img, mustParse(t, ""))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	wantDims(t, out, 6, 4)
	if min := out.Pix.Bounds().Min; min.X != 0 || min.Y != 0 {
		t.Errorf("bounds not rebased: %v", out.Pix.Bounds())
	}
	if got := nrgbaAt(t, out.Pix, 0, 0); got.R != 2 || got.G != 3 {
		t.Errorf("content shifted: origin maps to source (%d, %d), want (2, 3)", got.R, got.G)
	}
}

func TestStreamKeeps16Bit(t *testing.T) {
	pix := image.NewNRGBA64(image.Rect(0, 0, 4, 4))
	img := &raster.Image{Pix: pix, Meta: raster.Metadata{SourceType: imagetype.TIFF}}

	out, err := (Stream{}).Apply(img, mustParse(t, ""))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, ok := out.Pix.(*image.NRGBA64); !ok {
		t.Errorf("16-bit input came back as %T", out.Pix)
	}
}

func TestStreamClearsOrientation(t *testing.T) {
	img := gradientImage(4, 4, imagetype.JPEG)
	img.Meta.Orientation = 6

	out, err := (Stream{}).Apply(img, mustParse(t, ""))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Meta.Orientation != 0 {
		t.Errorf("orientation survived to the encoder: %d", out.Meta.Orientation)
	}
}
