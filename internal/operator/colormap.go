package operator

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pixelmill/pixelmill/internal/raster"
)

// mapColors applies a per-pixel color mapping in non-premultiplied form,
// preserving alpha and bit depth. 16-bit sources stay 16-bit.
func mapColors(pix image.Image, f func(colorful.Color) colorful.Color) image.Image {
	bounds := pix.Bounds()

	if raster.Is16Bit(pix) {
		dst := image.NewNRGBA64(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				in := color.NRGBA64Model.Convert(pix.At(x, y)).(color.NRGBA64)
				out := f(colorful.Color{
					R: float64(in.R) / 65535,
					G: float64(in.G) / 65535,
					B: float64(in.B) / 65535,
				})
				dst.SetNRGBA64(x-bounds.Min.X, y-bounds.Min.Y, color.NRGBA64{
					R: uint16(out.R*65535 + 0.5),
					G: uint16(out.G*65535 + 0.5),
					B: uint16(out.B*65535 + 0.5),
					A: in.A,
				})
			}
		}
		return dst
	}

	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			in := color.NRGBAModel.Convert(pix.At(x, y)).(color.NRGBA)
			out := f(colorful.Color{
				R: float64(in.R) / 255,
				G: float64(in.G) / 255,
				B: float64(in.B) / 255,
			})
			dst.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.NRGBA{
				R: uint8(out.R*255 + 0.5),
				G: uint8(out.G*255 + 0.5),
				B: uint8(out.B*255 + 0.5),
				A: in.A,
			})
		}
	}
	return dst
}
