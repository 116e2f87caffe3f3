package operator

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"

	"github.com/pixelmill/pixelmill/internal/geometry"
	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// ErrEmptyCrop means a crop region degenerated to zero area.
var ErrEmptyCrop = errors.New("crop region lies outside the image")

// CropPre narrows the source region before any scaling, so the resize
// never interpolates pixels that are about to be discarded.
type CropPre struct{}

func (CropPre) Name() string { return "crop" }

func (CropPre) Applicable(p *params.Params) bool { return p.HasPreCrop }

func (CropPre) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	w, h := img.Width(), img.Height()

	cw, ch := p.CropWidth, p.CropHeight
	if cw == 0 {
		cw = w - p.CropX
	}
	if ch == 0 {
		ch = h - p.CropY
	}

	region := image.Rect(p.CropX, p.CropY, p.CropX+cw, p.CropY+ch)
	region = region.Intersect(image.Rect(0, 0, w, h))
	if region.Empty() {
		return nil, ErrEmptyCrop
	}
	return img.WithPix(imaging.Crop(img.Pix, region)), nil
}

// CropPost selects the final visible window from the over-scaled
// intermediate a cover-fit resize produces, anchored at the requested
// position.
type CropPost struct{}

func (CropPost) Name() string { return "extract" }

func (CropPost) Applicable(p *params.Params) bool {
	return p.Fit == params.FitCover && p.Width > 0 && p.Height > 0
}

func (CropPost) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	w, h := img.Width(), img.Height()
	tw, th, err := targetSize(p, w, h)
	if err != nil {
		return nil, err
	}
	if tw >= w && th >= h {
		return img, nil
	}
	if tw > w {
		tw = w
	}
	if th > h {
		th = h
	}

	left, top := geometry.CalculatePosition(w, h, tw, th, p.Position)
	region := image.Rect(left, top, left+tw, top+th).Intersect(image.Rect(0, 0, w, h))
	if region.Empty() {
		return nil, ErrEmptyCrop
	}
	return img.WithPix(imaging.Crop(img.Pix, region)), nil
}
