package raster

import (
	"image"
	"strings"
	"testing"

	"github.com/pixelmill/pixelmill/internal/imagetype"
)

func TestReport(t *testing.T) {
	loop := 0
	im := &Image{
		Pix: image.NewNRGBA(image.Rect(0, 0, 320, 240)),
		Meta: Metadata{
			SourceType:  imagetype.GIF,
			Pages:       4,
			PageHeight:  240,
			Loop:        &loop,
			DelayMS:     []int{100, 100, 100, 100},
			Orientation: 0,
		},
	}

	r := im.Report()
	if r.Format != "gif" {
		t.Errorf("Format = %q, want gif", r.Format)
	}
	if r.Width != 320 || r.Height != 240 {
		t.Errorf("dimensions = %dx%d, want 320x240", r.Width, r.Height)
	}
	if !r.HasAlpha {
		t.Errorf("NRGBA pixels should report alpha")
	}
	if r.Loop == nil || *r.Loop != 0 {
		t.Errorf("Loop = %v, want 0", r.Loop)
	}
	if r.Pages != 4 || len(r.Delay) != 4 {
		t.Errorf("animation facts dropped: pages %d, delay %v", r.Pages, r.Delay)
	}
}

func TestReportJSONOptionalFields(t *testing.T) {
	im := &Image{
		Pix:  image.NewYCbCr(image.Rect(0, 0, 10, 10), image.YCbCrSubsampleRatio420),
		Meta: Metadata{SourceType: imagetype.JPEG, ChromaSubsampling: "4:2:0"},
	}

	data, err := im.Report().JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	s := string(data)

	// Animation and palette fields must not appear for a plain JPEG.
	for _, absent := range []string{"pages", "loop", "delay", "paletteBitDepth", "density"} {
		if strings.Contains(s, absent) {
			t.Errorf("report for jpeg contains %q: %s", absent, s)
		}
	}
	// Boolean facts always appear, even when false.
	for _, present := range []string{"isProgressive", "hasProfile", "hasAlpha", "orientation", "chromaSubsampling"} {
		if !strings.Contains(s, present) {
			t.Errorf("report missing %q: %s", present, s)
		}
	}

	parsed, err := ParseReport(data)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	if parsed.ChromaSubsampling != "4:2:0" || parsed.Channels != 3 {
		t.Errorf("round trip lost fields: %+v", parsed)
	}
}
