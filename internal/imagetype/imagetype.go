// Package imagetype enumerates the image formats the service can read and
// write, and the capability tables used when choosing an encoder.
package imagetype

import "bytes"

// ImageType identifies the format of a source image, inferred from its
// magic bytes the way a loader would report it.
type ImageType int

const (
	Unknown ImageType = iota
	JPEG
	PNG
	WebP
	TIFF
	GIF
	SVG
	PDF
	HEIF
	Magick
)

// Output is the subset of formats the service can produce.
type Output int

const (
	// OutputAuto follows the source format.
	OutputAuto Output = iota
	OutputJPEG
	OutputPNG
	OutputWebP
	OutputTIFF
	OutputGIF
)

func (t ImageType) String() string {
	switch t {
	case JPEG:
		return "jpeg"
	case PNG:
		return "png"
	case WebP:
		return "webp"
	case TIFF:
		return "tiff"
	case GIF:
		return "gif"
	case SVG:
		return "svg"
	case PDF:
		return "pdf"
	case HEIF:
		return "heif"
	case Magick:
		return "magick"
	default:
		return "unknown"
	}
}

func (o Output) String() string {
	switch o {
	case OutputJPEG:
		return "jpeg"
	case OutputPNG:
		return "png"
	case OutputWebP:
		return "webp"
	case OutputTIFF:
		return "tiff"
	case OutputGIF:
		return "gif"
	default:
		return "auto"
	}
}

// Extension reports the file extension used when saving in this format.
func (o Output) Extension() string {
	switch o {
	case OutputJPEG:
		return ".jpg"
	case OutputWebP:
		return ".webp"
	case OutputTIFF:
		return ".tiff"
	case OutputGIF:
		return ".gif"
	default:
		return ".png"
	}
}

// ToOutput maps a source format onto the format used when the request does
// not ask for one. The mapping is total: formats without a direct encoder
// fall back to PNG.
func ToOutput(t ImageType) Output {
	switch t {
	case JPEG:
		return OutputJPEG
	case WebP:
		return OutputWebP
	case TIFF:
		return OutputTIFF
	case GIF:
		return OutputGIF
	default:
		return OutputPNG
	}
}

// Resolve turns a requested output into a concrete one, following the
// source format when the request left it on auto.
func Resolve(o Output, source ImageType) Output {
	if o == OutputAuto {
		return ToOutput(source)
	}
	return o
}

// ParseOutput recognizes the output identifiers accepted on the query
// string. The empty string means auto.
func ParseOutput(s string) (Output, bool) {
	switch s {
	case "":
		return OutputAuto, true
	case "jpg", "jpeg":
		return OutputJPEG, true
	case "png":
		return OutputPNG, true
	case "webp":
		return OutputWebP, true
	case "tiff":
		return OutputTIFF, true
	case "gif":
		return OutputGIF, true
	default:
		return OutputAuto, false
	}
}

// SupportsAlpha reports whether the output format can carry an alpha
// channel. JPEG cannot; anything composited onto transparency must be
// flattened before a JPEG encode.
func (o Output) SupportsAlpha() bool {
	switch o {
	case OutputPNG, OutputWebP, OutputTIFF, OutputGIF:
		return true
	default:
		return false
	}
}

// Decodable reports whether a decoder is registered for the format.
// SVG, PDF and HEIF sources are recognized but cannot be rasterized here.
func (t ImageType) Decodable() bool {
	switch t {
	case JPEG, PNG, WebP, TIFF, GIF:
		return true
	default:
		return false
	}
}

// SupportsPages reports whether the format can hold multiple pages or
// frames.
func (t ImageType) SupportsPages() bool {
	switch t {
	case GIF, TIFF, WebP, PDF, HEIF, Magick:
		return true
	default:
		return false
	}
}

var (
	jpegMagic = []byte{0xff, 0xd8, 0xff}
	pngMagic  = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	gif87a    = []byte("GIF87a")
	gif89a    = []byte("GIF89a")
	riff      = []byte("RIFF")
	webpTag   = []byte("WEBP")
	tiffLE    = []byte{'I', 'I', 0x2a, 0x00}
	tiffBE    = []byte{'M', 'M', 0x00, 0x2a}
	pdfMagic  = []byte("%PDF-")
	ftypBox   = []byte("ftyp")
)

var heifBrands = [][]byte{
	[]byte("heic"), []byte("heix"), []byte("hevc"),
	[]byte("mif1"), []byte("msf1"), []byte("avif"),
}

// Detect sniffs the source format from its leading bytes.
func Detect(data []byte) ImageType {
	switch {
	case bytes.HasPrefix(data, jpegMagic):
		return JPEG
	case bytes.HasPrefix(data, pngMagic):
		return PNG
	case bytes.HasPrefix(data, gif87a) || bytes.HasPrefix(data, gif89a):
		return GIF
	case bytes.HasPrefix(data, riff) && len(data) >= 12 && bytes.Equal(data[8:12], webpTag):
		return WebP
	case bytes.HasPrefix(data, tiffLE) || bytes.HasPrefix(data, tiffBE):
		return TIFF
	case bytes.HasPrefix(data, pdfMagic):
		return PDF
	case len(data) >= 12 && bytes.Equal(data[4:8], ftypBox):
		for _, brand := range heifBrands {
			if bytes.Equal(data[8:12], brand) {
				return HEIF
			}
		}
		return Unknown
	case looksLikeSVG(data):
		return SVG
	default:
		return Unknown
	}
}

// looksLikeSVG checks for an <svg root element within the first kilobyte,
// past any XML declaration, comments or whitespace.
func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("<")) {
		return false
	}
	return bytes.Contains(head, []byte("<svg"))
}
