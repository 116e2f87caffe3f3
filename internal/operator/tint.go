package operator

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// Tint recolors the image with the hue and chroma of the tint color
// while keeping each pixel's perceptual lightness.
type Tint struct{}

func (Tint) Name() string { return "tint" }

func (Tint) Applicable(p *params.Params) bool { return p.HasTint }

func (Tint) Apply(img *raster.Image, p *params.Params) (*raster.Image, error) {
	tint := colorful.Color{
		R: float64(p.Tint.R) / 255,
		G: float64(p.Tint.G) / 255,
		B: float64(p.Tint.B) / 255,
	}
	hue, chroma, _ := tint.Hcl()

	pix := mapColors(img.Pix, func(c colorful.Color) colorful.Color {
		_, _, l := c.Hcl()
		return colorful.Hcl(hue, chroma, l).Clamped()
	})
	return img.WithPix(pix), nil
}
