package operator

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Background composites the image over the requested background color.
// A fully opaque background removes transparency; a translucent one is
// kept underneath when the output format can carry alpha.
type Background struct{}

func (Background) Name() string { return "background" }

func (Background) Applicable(p *params.Params) bool { return p.HasBackground }

func (Background) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	if !raster.HasAlpha(img.Pix) || p.Background.A == 0 {
		return img, nil
	}
	canvas := imaging.New(img.Width(), img.Height(), p.Background)
	return img.WithPix(imaging.Overlay(canvas, img.Pix, image.Point{}, 1.0)), nil
}
