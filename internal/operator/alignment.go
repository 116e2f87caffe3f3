package operator

import (
	"image/color"

	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Alignment reconciles the handle's channel layout with the output
// format: transparency headed for a format without alpha support is
// flattened onto the background color (white when none was given).
type Alignment struct{}

func (Alignment) Name() string { return "alignment" }

// Applicable is always true; whether there is work depends on the image
// state, which Apply inspects.
func (Alignment) Applicable(*params.Params) bool { return true }

func (Alignment) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	if resolveOutput(img, p).SupportsAlpha() || !raster.HasAlpha(img.Pix) {
		return img, nil
	}
	bg := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if p.HasBackground && p.Background.A == 0xff {
		bg = p.Background
	}
	return img.WithPix(flatten(img.Pix, bg)), nil
}
