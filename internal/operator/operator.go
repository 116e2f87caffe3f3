// Package operator implements the transformation steps of the pipeline.
// Every operator maps (image, parameters) to a new image and owns no
// state: whether it runs for a given request is decided by its
// applicability predicate over the parsed parameters.
package operator

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/pixelmill/pixelmill/internal/imagetype"
	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Operator is a single parameterized transform step.
type Operator interface {
	Name() string

	// Applicable reports whether the request's parameters give this
	// operator any work. Inapplicable operators are skipped without
	// touching the handle.
	Applicable(p *params.Params) bool

	Apply(img *raster.Image, p *params.Params) (*raster.Image, error)
}

// flatten composites the image over a solid background, discarding
// transparency.
func flatten(pix image.Image, bg color.NRGBA) *image.NRGBA {
	canvas := imaging.New(pix.Bounds().Dx(), pix.Bounds().Dy(), bg)
	return imaging.Overlay(canvas, pix, image.Point{}, 1.0)
}

// resolveOutput maps the requested output onto a concrete format,
// following the source format on auto.
func resolveOutput(img *raster.Image, p *params.Params) imagetype.Output {
	return imagetype.Resolve(p.Output, img.Meta.SourceType)
}
