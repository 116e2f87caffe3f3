// Package pipeline composes the operator set into one fixed total order.
// Requests only vary in which operators are applicable, never in their
// relative order; ordering interactions (orientation before crop math,
// trim before size-dependent operators, alpha handling before encode) are
// settled once here.
package pipeline

import (
	"fmt"

	"github.com/pixelmill/pixelmill/internal/operator"
	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Error reports which operator failed.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("operator %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// DefaultOperators returns the operator set in pipeline order.
func DefaultOperators() []operator.Operator {
	return []operator.Operator{
		operator.Trim{},
		operator.Orientation{},
		operator.Rotation{},
		operator.CropPre{},
		operator.Thumbnail{},
		operator.CropPost{},
		operator.Embed{},
		operator.Background{},
		operator.Blur{},
		operator.Sharpen{},
		operator.Brightness{},
		operator.Contrast{},
		operator.Gamma{},
		operator.Tint{},
		operator.Saturate{},
		operator.Filter{},
		operator.Mask{},
		operator.Alignment{},
		operator.Stream{},
	}
}

// Pipeline threads an image handle through the applicable operators.
type Pipeline struct {
	ops []operator.Operator
}

func New() *Pipeline {
	return &Pipeline{ops: DefaultOperators()}
}

// Operators exposes the configured order, mainly for tests.
func (pl *Pipeline) Operators() []operator.Operator {
	return pl.ops
}

// Run executes the applicable operators in order, replacing the handle
// with each result. The first operator error aborts the run: a failed
// operator usually means an invalid combination that leaves downstream
// behavior undefined.
func (pl *Pipeline) Run(img *raster.Image, p *params.Params) (*raster.Image, error) {
	for _, op := range pl.ops {
		if !op.Applicable(p) {
			continue
		}
		next, err := op.Apply(img, p)
		if err != nil {
			return nil, &Error{Op: op.Name(), Err: err}
		}
		img = next
	}
	return img, nil
}
