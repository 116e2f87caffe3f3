package operator

import (
	"fmt"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Blur applies a gaussian blur with the requested sigma.
type Blur struct{}

func (Blur) Name() string { return "blur" }

func (Blur) Applicable(p *params.Params) bool { return p.Blur > 0 }

func (Blur) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	return img.WithPix(imaging.Blur(img.Pix, p.Blur)), nil
}

// Sharpen applies an unsharp-style sharpening with the requested sigma.
type Sharpen struct{}

func (Sharpen) Name() string { return "sharpen" }

func (Sharpen) Applicable(p *params.Params) bool { return p.Sharpen > 0 }

func (Sharpen) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	return img.WithPix(imaging.Sharpen(img.Pix, p.Sharpen)), nil
}

// Brightness shifts luminance by the requested percentage (-100..100).
type Brightness struct{}

func (Brightness) Name() string { return "brightness" }

func (Brightness) Applicable(p *params.Params) bool { return p.HasBrightness }

func (Brightness) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	return img.WithPix(adjust.Brightness(img.Pix, p.Brightness/100)), nil
}

// Contrast shifts contrast by the requested percentage (-100..100).
type Contrast struct{}

func (Contrast) Name() string { return "contrast" }

func (Contrast) Applicable(p *params.Params) bool { return p.HasContrast }

func (Contrast) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	return img.WithPix(adjust.Contrast(img.Pix, p.Contrast/100)), nil
}

// Gamma applies gamma correction (1.0..3.0, default 2.2).
type Gamma struct{}

func (Gamma) Name() string { return "gamma" }

func (Gamma) Applicable(p *params.Params) bool { return p.HasGamma }

func (Gamma) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	return img.WithPix(adjust.Gamma(img.Pix, p.Gamma)), nil
}

// Filter applies one of the named whole-image filters.
type Filter struct{}

func (Filter) Name() string { return "filter" }

func (Filter) Applicable(p *params.Params) bool { return p.Filter != "" }

func (Filter) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	switch p.Filter {
	case "greyscale":
		return img.WithPix(effect.Grayscale(img.Pix)), nil
	case "sepia":
		return img.WithPix(effect.Sepia(img.Pix)), nil
	case "negate":
		return img.WithPix(effect.Invert(img.Pix)), nil
	default:
		return nil, fmt.Errorf("unknown filter %q", p.Filter)
	}
}
