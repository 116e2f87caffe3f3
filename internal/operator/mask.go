package operator

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Mask clips the image to a shape, making everything outside it
// transparent (or the mask background color when one is requested).
// The image gains an alpha channel if it has none.
type Mask struct{}

func (Mask) Name() string { return "mask" }

func (Mask) Applicable(p *params.Params) bool { return p.Mask != "" }

func (Mask) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	w, h := img.Width(), img.Height()
	coverage := shapeCoverage(p.Mask, w, h)

	src := raster.EnsureAlpha(img.Pix)
	var pix image.Image
	if raster.Is16Bit(src) {
		pix = maskAlpha16(src, coverage)
	} else {
		pix = maskAlpha8(src, coverage)
	}

	if p.HasMaskBG && p.MaskBackground.A > 0 {
		pix = flatten(pix, p.MaskBackground)
	}
	return img.WithPix(pix), nil
}

// shapeCoverage renders the mask shape into an anti-aliased coverage
// image; the alpha of each pixel is how much of it the shape covers.
func shapeCoverage(shape string, w, h int) *image.RGBA {
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)

	fw, fh := float64(w), float64(h)
	switch shape {
	case "circle":
		r := fw
		if fh < fw {
			r = fh
		}
		dc.DrawCircle(fw/2, fh/2, r/2)
	case "ellipse":
		dc.DrawEllipse(fw/2, fh/2, fw/2, fh/2)
	case "rounded":
		r := fw
		if fh < fw {
			r = fh
		}
		dc.DrawRoundedRectangle(0, 0, fw, fh, r/8)
	}
	dc.Fill()
	return dc.Image().(*image.RGBA)
}

func maskAlpha8(src image.Image, coverage *image.RGBA) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			cov := coverage.RGBAAt(x-bounds.Min.X, y-bounds.Min.Y).A
			px.A = uint8(uint16(px.A) * uint16(cov) / 255)
			dst.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, px)
		}
	}
	return dst
}

func maskAlpha16(src image.Image, coverage *image.RGBA) *image.NRGBA64 {
	bounds := src.Bounds()
	dst := image.NewNRGBA64(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := color.NRGBA64Model.Convert(src.At(x, y)).(color.NRGBA64)
			cov := coverage.RGBAAt(x-bounds.Min.X, y-bounds.Min.Y).A
			px.A = uint16(uint32(px.A) * uint32(cov) / 255)
			dst.SetNRGBA64(x-bounds.Min.X, y-bounds.Min.Y, px)
		}
	}
	return dst
}
