package operator

import (
	"github.com/disintegration/imaging"

	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Rotation applies the user-requested rotation (clockwise, multiples of
// 90 validated at parse time) and the flip/flop mirrors.
type Rotation struct{}

func (Rotation) Name() string { return "rotation" }

func (Rotation) Applicable(p *params.Params) bool {
	return p.Rotate != 0 || p.Flip || p.Flop
}

func (Rotation) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	pix := img.Pix
	if p.Flip {
		pix = imaging.FlipV(pix)
	}
	if p.Flop {
		pix = imaging.FlipH(pix)
	}

	// imaging rotates counter-clockwise; the ro parameter is clockwise.
	switch p.Rotate {
	case 90:
		pix = imaging.Rotate270(pix)
	case 180:
		pix = imaging.Rotate180(pix)
	case 270:
		pix = imaging.Rotate90(pix)
	}
	return img.WithPix(pix), nil
}
