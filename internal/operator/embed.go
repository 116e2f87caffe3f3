package operator

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/pixelmill/pixelmill/internal/geometry"
	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Embed pads a pad-fit image out to the requested canvas, anchored at
// the requested position, painting the remainder with the canvas
// background. With a single requested dimension a pad fit degrades to
// contain and there is nothing to pad.
type Embed struct{}

func (Embed) Name() string { return "embed" }

func (Embed) Applicable(p *params.Params) bool {
	return p.Fit == params.FitPad && p.Width > 0 && p.Height > 0
}

func (Embed) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	w, h := img.Width(), img.Height()
	canvasW, canvasH, err := targetSize(p, w, h)
	if err != nil {
		return nil, err
	}
	if canvasW <= w && canvasH <= h {
		return img, nil
	}

	bg := embedBackground(img, p)
	left, top := geometry.CalculatePosition(canvasW, canvasH, w, h, p.Position)
	canvas := imaging.New(canvasW, canvasH, bg)
	return img.WithPix(imaging.Paste(canvas, img.Pix, image.Pt(left, top))), nil
}

// embedBackground picks cbg over bg, and otherwise transparent when the
// output can carry it, white when it cannot.
func embedBackground(img *raster.Image, p *params.Params) color.NRGBA {
	switch {
	case p.HasCanvasBG:
		return p.CanvasBackground
	case p.HasBackground:
		return p.Background
	case resolveOutput(img, p).SupportsAlpha():
		return color.NRGBA{}
	default:
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
}
