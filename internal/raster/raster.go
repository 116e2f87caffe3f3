// Package raster defines the in-memory image handle threaded through the
// pipeline: decoded pixels plus the semantic facts probed from the source
// bytes (orientation, density, animation metadata, profile presence).
package raster

import (
	"image"
	"image/color"

	"github.com/pixelmill/pixelmill/internal/imagetype"
)

// Metadata carries facts derived from the source image. It travels with
// the handle so operators can make decisions (alpha scaling, orientation)
// without re-probing, and so the metadata report describes the input
// rather than any intermediate state.
type Metadata struct {
	SourceType imagetype.ImageType

	// DensityPPI is pixels per inch, zero when the source carries no
	// real resolution metadata.
	DensityPPI int

	ChromaSubsampling string
	Progressive       bool
	PaletteBitDepth   int
	HasProfile        bool

	// Orientation is the EXIF orientation tag, zero when absent.
	Orientation int

	// Animation / multi-page facts.
	Pages      int
	PageHeight int
	Loop       *int
	DelayMS    []int
}

// Image is the handle passed between operators. Each operator consumes
// one handle and produces a new one; pixels are never mutated in place
// across an operator boundary.
type Image struct {
	Pix  image.Image
	Meta Metadata
}

func (im *Image) Width() int  { return im.Pix.Bounds().Dx() }
func (im *Image) Height() int { return im.Pix.Bounds().Dy() }

// WithPix returns a new handle carrying the given pixels and a copy of
// the current metadata.
func (im *Image) WithPix(pix image.Image) *Image {
	return &Image{Pix: pix, Meta: im.Meta}
}

// Is16Bit reports whether pixel values are 16-bit integers.
func Is16Bit(pix image.Image) bool {
	switch pix.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		return true
	default:
		return false
	}
}

// MaxAlpha returns the image alpha maximum for the pixel depth. Alpha
// composition must scale by this so 16-bit images keep full opacity.
func MaxAlpha(pix image.Image) int {
	if Is16Bit(pix) {
		return 65535
	}
	return 255
}

// HasAlpha reports whether the image carries an alpha channel. Paletted
// images count when any palette entry is translucent.
func HasAlpha(pix image.Image) bool {
	switch p := pix.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
		return true
	case *image.Paletted:
		for _, c := range p.Palette {
			if _, _, _, a := c.RGBA(); a < 0xffff {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// EnsureAlpha returns an image with an alpha channel, adding a fully
// opaque one when missing. The pixel depth is preserved.
func EnsureAlpha(pix image.Image) image.Image {
	if HasAlpha(pix) {
		return pix
	}
	bounds := pix.Bounds()
	if Is16Bit(pix) {
		dst := image.NewNRGBA64(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				dst.SetNRGBA64(x-bounds.Min.X, y-bounds.Min.Y,
					color.NRGBA64Model.Convert(pix.At(x, y)).(color.NRGBA64))
			}
		}
		return dst
	}
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y,
				color.NRGBAModel.Convert(pix.At(x, y)).(color.NRGBA))
		}
	}
	return dst
}

// Space names the colorspace interpretation of the pixels.
func Space(pix image.Image) string {
	switch pix.(type) {
	case *image.Gray, *image.Gray16:
		return "b-w"
	case *image.CMYK:
		return "cmyk"
	default:
		return "srgb"
	}
}

// Channels counts the image bands, including alpha.
func Channels(pix image.Image) int {
	switch pix.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.CMYK:
		return 4
	default:
		if HasAlpha(pix) {
			return 4
		}
		return 3
	}
}

// Depth names the band format class of the pixels.
func Depth(pix image.Image) string {
	if Is16Bit(pix) {
		return "ushort"
	}
	return "uchar"
}
