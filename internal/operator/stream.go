package operator

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Stream is the terminal operator. It copies the possibly lazily
// windowed raster into one contiguous buffer so the encoder streams
// over compact memory, and clears transient processing metadata.
type Stream struct{}

func (Stream) Name() string { return "stream" }

func (Stream) Applicable(*params.Params) bool { return true }

func (Stream) Apply(img *raster.Image, _ *params.Params) (*raster.Image, error) {
	var pix image.Image
	if raster.Is16Bit(img.Pix) {
		bounds := img.Pix.Bounds()
		dst := image.NewNRGBA64(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(dst, dst.Bounds(), img.Pix, bounds.Min, draw.Src)
		pix = dst
	} else {
		pix = imaging.Clone(img.Pix)
	}

	out := img.WithPix(pix)
	out.Meta.Orientation = 0
	return out, nil
}
