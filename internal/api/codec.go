package api

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"

	_ "golang.org/x/image/webp"

	"github.com/chai2010/webp"
	"golang.org/x/image/tiff"

	"github.com/pixelmill/pixelmill/internal/config"
	"github.com/pixelmill/pixelmill/internal/geometry"
	"github.com/pixelmill/pixelmill/internal/imagetype"
	"github.com/pixelmill/pixelmill/internal/params"
	"github.com/pixelmill/pixelmill/internal/raster"
)

// DecodeError marks source bytes that could not be turned into a handle.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError marks a final handle the output format rejected.
type EncodeError struct {
	Format imagetype.Output
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// decode sniffs the source format, guards against oversized inputs and
// produces the probed image handle.
func decode(data []byte, cfg *config.Config, p *params.Params) (*raster.Image, error) {
	typ := imagetype.Detect(data)
	if typ == imagetype.Unknown {
		return nil, &DecodeError{Reason: "unsupported or invalid image data"}
	}
	if !typ.Decodable() {
		return nil, &DecodeError{Reason: fmt.Sprintf("no decoder available for %s input", typ)}
	}

	dims, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Reason: "corrupt image header", Err: err}
	}
	pixels, overflowed := geometry.CheckedMultiply(int32(dims.Width), int32(dims.Height))
	if overflowed {
		return nil, fmt.Errorf("source %dx%d: %w", dims.Width, dims.Height, geometry.ErrOverflow)
	}
	if cfg.MaxPixels > 0 && int(pixels) > cfg.MaxPixels {
		return nil, &DecodeError{Reason: fmt.Sprintf(
			"source of %dx%d exceeds the %d pixel limit", dims.Width, dims.Height, cfg.MaxPixels)}
	}

	var pix image.Image
	if p.Page > 0 {
		if !typ.SupportsPages() {
			return nil, &DecodeError{Reason: fmt.Sprintf(
				"%s input carries a single page, page %d requested", typ, p.Page)}
		}
		if typ != imagetype.GIF {
			return nil, &DecodeError{Reason: fmt.Sprintf(
				"page selection is not implemented for %s input", typ)}
		}
		pix, err = decodeGIFPage(data, p.Page)
	} else {
		pix, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, &DecodeError{Reason: "decode failed", Err: err}
	}

	return &raster.Image{Pix: pix, Meta: raster.Probe(data, typ)}, nil
}

// decodeGIFPage coalesces animation frames up to the requested page,
// since later frames may only carry the changed region.
func decodeGIFPage(data []byte, page int) (image.Image, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if page >= len(g.Image) {
		return nil, fmt.Errorf("page %d out of range, image has %d pages", page, len(g.Image))
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, g.Config.Width, g.Config.Height))
	for i := 0; i <= page; i++ {
		frame := g.Image[i]
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	}
	return canvas, nil
}

// encode serializes the final handle in the effective output format.
func encode(img *raster.Image, cfg *config.Config, p *params.Params) ([]byte, imagetype.Output, error) {
	out := imagetype.Resolve(p.Output, img.Meta.SourceType)
	quality := p.Quality
	if quality == 0 {
		quality = cfg.DefaultQuality
	}

	var buf bytes.Buffer
	var err error
	switch out {
	case imagetype.OutputJPEG:
		err = jpeg.Encode(&buf, img.Pix, &jpeg.Options{Quality: quality})
	case imagetype.OutputWebP:
		err = webp.Encode(&buf, img.Pix, &webp.Options{Quality: float32(quality)})
	case imagetype.OutputTIFF:
		err = tiff.Encode(&buf, img.Pix, &tiff.Options{Compression: tiff.Deflate})
	case imagetype.OutputGIF:
		err = gif.Encode(&buf, img.Pix, &gif.Options{NumColors: 256})
	default:
		err = png.Encode(&buf, img.Pix)
	}
	if err != nil {
		return nil, out, &EncodeError{Format: out, Err: err}
	}
	return buf.Bytes(), out, nil
}
