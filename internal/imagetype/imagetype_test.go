package imagetype

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want ImageType
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'}, JPEG},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0}, PNG},
		{"gif87a", []byte("GIF87a\x01\x00\x01\x00"), GIF},
		{"gif89a", []byte("GIF89a\x01\x00\x01\x00"), GIF},
		{"webp", []byte("RIFF\x24\x00\x00\x00WEBPVP8 "), WebP},
		{"riff but not webp", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), Unknown},
		{"tiff little endian", []byte{'I', 'I', 0x2a, 0x00, 0, 0, 0, 0}, TIFF},
		{"tiff big endian", []byte{'M', 'M', 0x00, 0x2a, 0, 0, 0, 0}, TIFF},
		{"pdf", []byte("%PDF-1.7\n"), PDF},
		{"heif", []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'h', 'e', 'i', 'c'}, HEIF},
		{"avif", []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'a', 'v', 'i', 'f'}, HEIF},
		{"ftyp with unknown brand", []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2'}, Unknown},
		{"svg", []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"/>`), SVG},
		{"svg with leading whitespace", []byte("\n  <svg></svg>"), SVG},
		{"plain text", []byte("hello world"), Unknown},
		{"empty", nil, Unknown},
		{"truncated jpeg magic", []byte{0xff, 0xd8}, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.data); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToOutputIsTotal(t *testing.T) {
	// Every source format must map to a concrete encoder, never auto.
	sources := []ImageType{Unknown, JPEG, PNG, WebP, TIFF, GIF, SVG, PDF, HEIF, Magick}
	for _, src := range sources {
		if out := ToOutput(src); out == OutputAuto {
			t.Errorf("ToOutput(%v) = auto, want a concrete format", src)
		}
	}
	if ToOutput(JPEG) != OutputJPEG {
		t.Errorf("jpeg source should stay jpeg")
	}
	if ToOutput(SVG) != OutputPNG {
		t.Errorf("svg source should fall back to png")
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve(OutputAuto, GIF); got != OutputGIF {
		t.Errorf("Resolve(auto, gif) = %v, want gif", got)
	}
	if got := Resolve(OutputWebP, JPEG); got != OutputWebP {
		t.Errorf("explicit output must win over the source format")
	}
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		in   string
		want Output
		ok   bool
	}{
		{"", OutputAuto, true},
		{"jpg", OutputJPEG, true},
		{"jpeg", OutputJPEG, true},
		{"png", OutputPNG, true},
		{"webp", OutputWebP, true},
		{"tiff", OutputTIFF, true},
		{"gif", OutputGIF, true},
		{"bmp", OutputAuto, false},
	}
	for _, tt := range tests {
		got, ok := ParseOutput(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseOutput(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSupportsAlpha(t *testing.T) {
	if OutputJPEG.SupportsAlpha() {
		t.Errorf("jpeg must not report alpha support")
	}
	for _, o := range []Output{OutputPNG, OutputWebP, OutputTIFF, OutputGIF} {
		if !o.SupportsAlpha() {
			t.Errorf("%v should support alpha", o)
		}
	}
}

func TestDecodable(t *testing.T) {
	for _, typ := range []ImageType{JPEG, PNG, WebP, TIFF, GIF} {
		if !typ.Decodable() {
			t.Errorf("%v should be decodable", typ)
		}
	}
	for _, typ := range []ImageType{Unknown, SVG, PDF, HEIF, Magick} {
		if typ.Decodable() {
			t.Errorf("%v should not be decodable", typ)
		}
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		out  Output
		want string
	}{
		{OutputJPEG, ".jpg"},
		{OutputPNG, ".png"},
		{OutputWebP, ".webp"},
		{OutputTIFF, ".tiff"},
		{OutputGIF, ".gif"},
		{OutputAuto, ".png"},
	}
	for _, tt := range tests {
		if got := tt.out.Extension(); got != tt.want {
			t.Errorf("%v.Extension() = %q, want %q", tt.out, got, tt.want)
		}
	}
}

func TestSupportsPages(t *testing.T) {
	for _, typ := range []ImageType{GIF, TIFF, WebP, PDF, HEIF, Magick} {
		if !typ.SupportsPages() {
			t.Errorf("%v should support pages", typ)
		}
	}
	for _, typ := range []ImageType{Unknown, JPEG, PNG, SVG} {
		if typ.SupportsPages() {
			t.Errorf("%v should not support pages", typ)
		}
	}
}
