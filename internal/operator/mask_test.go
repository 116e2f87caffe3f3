package operator

import (
	"image"
	"image/color"
	"testing"

	"github.com/pixelmill/pixelmill/internal/imagetype"
	"github.com/pixelmill/pixelmill/internal/raster"
)

func TestMaskCircle(t *testing.T) {
	img := solidImage(16, 16, color.NRGBA{R: 0xff, A: 0xff}, imagetype.PNG)
	out, err := (Mask{}).Apply(img, mustParse(t, "mask=circle"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	wantDims(t, out, 16, 16)

	if px := nrgbaAt(t, out.Pix, 0, 0); px.A != 0 {
		t.Errorf("corner = %+v, want fully transparent", px)
	}
	if px := nrgbaAt(t, out.Pix, 8, 8); px.A != 0xff || px.R != 0xff {
		t.Errorf("center = %+v, want fully opaque content", px)
	}
}

func TestMaskAddsAlphaChannel(t *testing.T) {
	img := &raster.Image{
		Pix:  image.NewYCbCr(image.Rect(0, 0, 16, 16), image.YCbCrSubsampleRatio444),
		Meta: raster.Metadata{SourceType: imagetype.JPEG},
	}
	out, err := (Mask{}).Apply(img, mustParse(t, "mask=ellipse"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !raster.HasAlpha(out.Pix) {
		t.Errorf("mask output must carry alpha, got %T", out.Pix)
	}
	if px := nrgbaAt(t, out.Pix, 0, 0); px.A != 0 {
		t.Errorf("corner = %+v, want transparent", px)
	}
}

func TestMaskBackgroundFlattens(t *testing.T) {
	img := solidImage(16, 16, color.NRGBA{R: 0xff, A: 0xff}, imagetype.JPEG)
	out, err := (Mask{}).Apply(img, mustParse(t, "mask=circle&mbg=0000ff"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if px := nrgbaAt(t, out.Pix, 0, 0); px.B != 0xff || px.A != 0xff {
		t.Errorf("corner = %+v, want opaque mask background", px)
	}
	if px := nrgbaAt(t, out.Pix, 8, 8); px.R != 0xff {
		t.Errorf("center = %+v, want content", px)
	}
}

func TestMaskKeeps16Bit(t *testing.T) {
	img := &raster.Image{
		Pix:  image.NewNRGBA64(image.Rect(0, 0, 16, 16)),
		Meta: raster.Metadata{SourceType: imagetype.TIFF},
	}
	out, err := (Mask{}).Apply(img, mustParse(t, "mask=rounded"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, ok := out.Pix.(*image.NRGBA64); !ok {
		t.Errorf("16-bit input came back as %T", out.Pix)
	}
}

func TestMaskApplicable(t *testing.T) {
	if (Mask{}).Applicable(mustParse(t, "")) {
		t.Errorf("no shape, no mask")
	}
	if !(Mask{}).Applicable(mustParse(t, "mask=circle")) {
		t.Errorf("mask=circle should apply")
	}
}
