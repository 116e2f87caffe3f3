package operator

import (
	"github.com/disintegration/imaging"

	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Orientation rotates and mirrors the pixels so their stored order
// matches the visual order the EXIF orientation tag describes. It must
// run before any operator using pixel coordinates; downstream crops and
// embeds assume a normalized frame.
type Orientation struct{}

func (Orientation) Name() string { return "orientation" }

// Applicable is parameter-independent in the usual sense: the relevant
// "parameter" is the orientation tag probed from the source, so the
// operator always enters Apply and passes through untagged images.
func (Orientation) Applicable(*params.Params) bool { return true }

func (Orientation) Apply(img *raster.Image, _ *params.Params) (*raster.Image, error) {
	if img.Meta.Orientation <= 1 {
		return img, nil
	}

	pix := img.Pix
	switch img.Meta.Orientation {
	case 2:
		pix = imaging.FlipH(pix)
	case 3:
		pix = imaging.Rotate180(pix)
	case 4:
		pix = imaging.FlipV(pix)
	case 5:
		pix = imaging.Transpose(pix)
	case 6:
		pix = imaging.Rotate270(pix) // 90 clockwise
	case 7:
		pix = imaging.Transverse(pix)
	case 8:
		pix = imaging.Rotate90(pix) // 270 clockwise
	}

	out := img.WithPix(pix)
	out.Meta.Orientation = 0 // pixels now match visual order
	return out, nil
}
