// Package params parses the flat instruction string of a request
// (for example "w=300&h=200&fit=cover&sat=0.5") into typed, validated
// parameters. Unknown keys are ignored; malformed values are rejected
// here so the pipeline never sees them.
package params

import (
	"fmt"
	"image/color"
	"net/url"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pixelmill/pixelmill/internal/geometry"
	"github.com/pixelmill/pixelmill/internal/imagetype"
)

// Fit selects how requested width/height are applied by the thumbnail
// operator.
type Fit int

const (
	// FitContain scales to fit within the box, preserving aspect ratio.
	FitContain Fit = iota
	// FitCover scales to cover the box, then crops to the exact size.
	FitCover
	// FitFill stretches to the exact size, ignoring aspect ratio.
	FitFill
	// FitPad scales like contain and pads the remainder with a
	// background color.
	FitPad
)

func (f Fit) String() string {
	switch f {
	case FitCover:
		return "cover"
	case FitFill:
		return "fill"
	case FitPad:
		return "pad"
	default:
		return "contain"
	}
}

// Error describes a single malformed or out-of-range parameter.
type Error struct {
	Param  string
	Value  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parameter %q: %s (value %q)", e.Param, e.Reason, e.Value)
}

// Params is the immutable, typed view of one request's instructions.
type Params struct {
	// Raw is the original query string, kept for diagnostics.
	Raw string

	Width              int
	Height             int
	Fit                Fit
	WithoutEnlargement bool
	DPR                float64

	// Pre-resize crop region; HasPreCrop gates the operator.
	HasPreCrop            bool
	CropX, CropY          int
	CropWidth, CropHeight int

	Position geometry.Position

	Rotate int  // multiple of 90, normalized to 0..270
	Flip   bool // mirror vertically
	Flop   bool // mirror horizontally

	HasTrim       bool
	TrimTolerance int

	HasBackground    bool
	Background       color.NRGBA
	HasCanvasBG      bool
	CanvasBackground color.NRGBA

	Blur    float64
	Sharpen float64

	HasBrightness bool
	Brightness    float64 // -100..100
	HasContrast   bool
	Contrast      float64 // -100..100
	HasGamma      bool
	Gamma         float64 // 1.0..3.0

	HasTint bool
	Tint    color.NRGBA

	Saturation float64 // 1 is identity

	Filter string // greyscale, sepia, negate

	Mask           string // circle, ellipse, rounded
	HasMaskBG      bool
	MaskBackground color.NRGBA

	Quality      int
	Output       imagetype.Output
	MetadataOnly bool
	Interlace    bool

	Page int
}

// Parse tokenizes and validates a raw query string.
func Parse(query string) (*Params, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, &Error{Param: "query", Value: query, Reason: "malformed query string"}
	}

	p := &Params{
		Raw:        query,
		DPR:        1,
		Saturation: 1,
	}

	if p.Width, err = intInRange(values, "w", 0, maxDimension); err != nil {
		return nil, err
	}
	if p.Height, err = intInRange(values, "h", 0, maxDimension); err != nil {
		return nil, err
	}

	switch fit := get(values, "fit"); fit {
	case "", "contain", "inside":
		p.Fit = FitContain
	case "cover", "outside":
		p.Fit = FitCover
	case "fill", "stretch":
		p.Fit = FitFill
	case "pad", "contain-bg":
		p.Fit = FitPad
	default:
		return nil, &Error{Param: "fit", Value: fit, Reason: "unknown fit strategy"}
	}

	if p.WithoutEnlargement, err = boolean(values, "we"); err != nil {
		return nil, err
	}
	if has(values, "dpr") {
		if p.DPR, err = floatInRange(values, "dpr", 0.1, 8); err != nil {
			return nil, err
		}
	}

	if has(values, "cx") || has(values, "cy") || has(values, "cw") || has(values, "ch") {
		p.HasPreCrop = true
		if p.CropX, err = intInRange(values, "cx", 0, maxDimension); err != nil {
			return nil, err
		}
		if p.CropY, err = intInRange(values, "cy", 0, maxDimension); err != nil {
			return nil, err
		}
		if p.CropWidth, err = intInRange(values, "cw", 0, maxDimension); err != nil {
			return nil, err
		}
		if p.CropHeight, err = intInRange(values, "ch", 0, maxDimension); err != nil {
			return nil, err
		}
	}

	if pos := get(values, "a"); pos != "" {
		parsed, ok := geometry.ParsePosition(pos)
		if !ok {
			return nil, &Error{Param: "a", Value: pos, Reason: "unknown position"}
		}
		p.Position = parsed
	}

	if has(values, "ro") {
		angle, err := intInRange(values, "ro", 0, 1<<20)
		if err != nil {
			return nil, err
		}
		if angle%90 != 0 {
			return nil, &Error{Param: "ro", Value: get(values, "ro"),
				Reason: "angle must be a non-negative multiple of 90"}
		}
		p.Rotate = angle % 360
	}
	if p.Flip, err = boolean(values, "flip"); err != nil {
		return nil, err
	}
	if p.Flop, err = boolean(values, "flop"); err != nil {
		return nil, err
	}

	if has(values, "trim") {
		p.HasTrim = true
		p.TrimTolerance = defaultTrimTolerance
		if get(values, "trim") != "" {
			if p.TrimTolerance, err = intInRange(values, "trim", 1, 254); err != nil {
				return nil, err
			}
		}
	}

	if has(values, "bg") {
		if p.Background, err = colorValue(values, "bg"); err != nil {
			return nil, err
		}
		p.HasBackground = true
	}
	if has(values, "cbg") {
		if p.CanvasBackground, err = colorValue(values, "cbg"); err != nil {
			return nil, err
		}
		p.HasCanvasBG = true
	}

	if has(values, "blur") {
		if p.Blur, err = floatInRange(values, "blur", 0.3, 1000); err != nil {
			return nil, err
		}
	}
	if has(values, "sharp") {
		if p.Sharpen, err = floatInRange(values, "sharp", 0.3, 1000); err != nil {
			return nil, err
		}
	}
	if has(values, "bri") {
		if p.Brightness, err = floatInRange(values, "bri", -100, 100); err != nil {
			return nil, err
		}
		p.HasBrightness = true
	}
	if has(values, "con") {
		if p.Contrast, err = floatInRange(values, "con", -100, 100); err != nil {
			return nil, err
		}
		p.HasContrast = true
	}
	if has(values, "gam") {
		p.HasGamma = true
		p.Gamma = defaultGamma
		if get(values, "gam") != "" {
			if p.Gamma, err = floatInRange(values, "gam", 1.0, 3.0); err != nil {
				return nil, err
			}
		}
	}

	if has(values, "tint") {
		if p.Tint, err = colorValue(values, "tint"); err != nil {
			return nil, err
		}
		p.HasTint = true
	}

	if has(values, "sat") {
		if p.Saturation, err = floatInRange(values, "sat", 0, 100); err != nil {
			return nil, err
		}
	}

	switch filt := get(values, "filt"); filt {
	case "":
	case "greyscale", "grayscale":
		p.Filter = "greyscale"
	case "sepia", "negate":
		p.Filter = filt
	default:
		return nil, &Error{Param: "filt", Value: filt, Reason: "unknown filter"}
	}

	switch mask := get(values, "mask"); mask {
	case "", "circle", "ellipse", "rounded":
		p.Mask = mask
	default:
		return nil, &Error{Param: "mask", Value: mask, Reason: "unknown mask shape"}
	}
	if has(values, "mbg") {
		if p.MaskBackground, err = colorValue(values, "mbg"); err != nil {
			return nil, err
		}
		p.HasMaskBG = true
	}

	if has(values, "q") {
		if p.Quality, err = intInRange(values, "q", 1, 100); err != nil {
			return nil, err
		}
	}

	if out := get(values, "output"); out == "json" {
		p.MetadataOnly = true
	} else {
		parsed, ok := imagetype.ParseOutput(out)
		if !ok {
			return nil, &Error{Param: "output", Value: out, Reason: "unsupported output format"}
		}
		p.Output = parsed
	}

	if p.Interlace, err = boolean(values, "il"); err != nil {
		return nil, err
	}
	if p.Page, err = intInRange(values, "page", 0, 1<<16); err != nil {
		return nil, err
	}

	return p, nil
}

const (
	maxDimension         = 1 << 15
	defaultTrimTolerance = 10
	defaultGamma         = 2.2
)

func has(values url.Values, key string) bool {
	_, ok := values[key]
	return ok
}

func get(values url.Values, key string) string {
	if vs, ok := values[key]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func intInRange(values url.Values, key string, min, max int) (int, error) {
	raw := get(values, key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &Error{Param: key, Value: raw, Reason: "not an integer"}
	}
	if n < min || n > max {
		return 0, &Error{Param: key, Value: raw,
			Reason: fmt.Sprintf("out of range [%d, %d]", min, max)}
	}
	return n, nil
}

func floatInRange(values url.Values, key string, min, max float64) (float64, error) {
	raw := get(values, key)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &Error{Param: key, Value: raw, Reason: "not a number"}
	}
	if f < min || f > max {
		return 0, &Error{Param: key, Value: raw,
			Reason: fmt.Sprintf("out of range [%g, %g]", min, max)}
	}
	return f, nil
}

// boolean treats a bare key ("flip") and the usual truthy spellings as
// true.
func boolean(values url.Values, key string) (bool, error) {
	if !has(values, key) {
		return false, nil
	}
	switch get(values, key) {
	case "", "1", "true", "yes":
		return true, nil
	case "0", "false", "no":
		return false, nil
	default:
		return false, &Error{Param: key, Value: get(values, key), Reason: "not a boolean"}
	}
}

// colorValue accepts 3-, 6- or 8-digit hex (with or without a leading
// "#"; 8 digits carry alpha first, AARRGGBB) and a few keywords.
func colorValue(values url.Values, key string) (color.NRGBA, error) {
	raw := get(values, key)
	switch raw {
	case "transparent", "":
		return color.NRGBA{}, nil
	case "black":
		return color.NRGBA{A: 0xff}, nil
	case "white":
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nil
	}

	hex := raw
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	alpha := uint8(0xff)
	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[:2], 16, 8)
		if err != nil {
			return color.NRGBA{}, &Error{Param: key, Value: raw, Reason: "invalid hex color"}
		}
		alpha = uint8(a)
		hex = hex[2:]
	}
	if len(hex) != 3 && len(hex) != 6 {
		return color.NRGBA{}, &Error{Param: key, Value: raw, Reason: "invalid hex color"}
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, &Error{Param: key, Value: raw, Reason: "invalid hex color"}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
