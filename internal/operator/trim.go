package operator

import (
	"errors"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// ErrTrimEmpty means the whole image matched the border color.
var ErrTrimEmpty = errors.New("trim would remove the entire image")

// Trim removes uniform-color borders, comparing against the top-left
// pixel within the requested tolerance. It runs before any
// size-dependent operator because it changes the working dimensions.
type Trim struct{}

func (Trim) Name() string { return "trim" }

func (Trim) Applicable(p *params.Params) bool { return p.HasTrim }

func (Trim) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	bounds := img.Pix.Bounds()
	ref := color.NRGBAModel.Convert(img.Pix.At(bounds.Min.X, bounds.Min.Y)).(color.NRGBA)
	tol := p.TrimTolerance

	content := image.Rectangle{}
	found := false
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if withinTolerance(img.Pix.At(x, y), ref, tol) {
				continue
			}
			pt := image.Rect(x, y, x+1, y+1)
			if !found {
				content = pt
				found = true
			} else {
				content = content.Union(pt)
			}
		}
	}
	if !found {
		return nil, ErrTrimEmpty
	}
	if content == bounds {
		return img, nil
	}
	return img.WithPix(imaging.Crop(img.Pix, content)), nil
}

// withinTolerance compares on the 8-bit scale across all four channels.
func withinTolerance(c color.Color, ref color.NRGBA, tol int) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return absDiff(n.R, ref.R) <= tol &&
		absDiff(n.G, ref.G) <= tol &&
		absDiff(n.B, ref.B) <= tol &&
		absDiff(n.A, ref.A) <= tol
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
