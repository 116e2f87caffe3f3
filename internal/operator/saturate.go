package operator

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Saturate scales chroma in the perceptual CIE LCh space: sat=0 fully
// desaturates, sat=1 is identity (and is skipped), sat>1 amplifies.
// Alpha and bit depth pass through untouched.
type Saturate struct{}

func (Saturate) Name() string { return "saturate" }

func (Saturate) Applicable(p *params.Params) bool { return p.Saturation != 1 }

func (Saturate) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	sat := p.Saturation
	pix := mapColors(img.Pix, func(c colorful.Color) colorful.Color {
		h, chroma, l := c.Hcl()
		return colorful.Hcl(h, chroma*sat, l).Clamped()
	})
	return img.WithPix(pix), nil
}
