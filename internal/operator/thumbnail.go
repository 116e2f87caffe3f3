package operator

import (
	"fmt"
	"math"

	"github.com/disintegration/imaging"

	"github.com/pixelmill/pixelmill/internal/geometry"
	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Thumbnail scales the image according to the requested dimensions and
// fit strategy. A cover fit deliberately overshoots: it scales until
// both axes cover the box and leaves the anchored trim to the extract
// operator.
type Thumbnail struct{}

func (Thumbnail) Name() string { return "thumbnail" }

func (Thumbnail) Applicable(p *params.Params) bool {
	return p.Width > 0 || p.Height > 0
}

func (Thumbnail) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	srcW, srcH := img.Width(), img.Height()
	tw, th, err := targetSize(p, srcW, srcH)
	if err != nil {
		return nil, err
	}

	var dstW, dstH int
	switch p.Fit {
	case params.FitFill:
		dstW, dstH = tw, th
		if p.WithoutEnlargement && (dstW > srcW || dstH > srcH) {
			return img, nil
		}
	case params.FitCover:
		scale := math.Max(float64(tw)/float64(srcW), float64(th)/float64(srcH))
		dstW, dstH = scaled(srcW, srcH, scale, p.WithoutEnlargement)
	default: // contain, pad
		scale := math.Min(float64(tw)/float64(srcW), float64(th)/float64(srcH))
		dstW, dstH = scaled(srcW, srcH, scale, p.WithoutEnlargement)
	}

	if dstW == srcW && dstH == srcH {
		return img, nil
	}
	return img.WithPix(imaging.Resize(img.Pix, dstW, dstH, imaging.Lanczos)), nil
}

func scaled(srcW, srcH int, scale float64, withoutEnlargement bool) (int, int) {
	if withoutEnlargement && scale > 1 {
		scale = 1
	}
	w := int(math.Round(float64(srcW) * scale))
	h := int(math.Round(float64(srcH) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// targetSize resolves the requested dimensions against the source aspect
// ratio and the device pixel ratio. The final pixel count goes through
// checked arithmetic so an oversized request fails instead of wrapping.
func targetSize(p *params.Params, srcW, srcH int) (int, int, error) {
	w, h := geometry.ScaleDimensions(srcW, srcH, p.Width, p.Height)
	if p.DPR != 1 {
		w = int(math.Round(float64(w) * p.DPR))
		h = int(math.Round(float64(h) * p.DPR))
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if _, overflowed := geometry.CheckedMultiply(int32(w), int32(h)); overflowed {
		return 0, 0, fmt.Errorf("%dx%d target: %w", w, h, geometry.ErrOverflow)
	}
	return w, h, nil
}
