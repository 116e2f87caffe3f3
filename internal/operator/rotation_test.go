package operator

import (
	"testing"

	"github.com/pixelmill/pixelmill/internal/imagetype"
)

func TestRotationClockwise(t *testing.T) {
	// 4x2 gradient; the original top-left pixel is (R=0, G=0).
	img := gradientImage(4, 2, imagetype.PNG)

	out, err := (Rotation{}).Apply(img, mustParse(t, "ro=90"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	wantDims(t, out, 2, 4)
	// Clockwise 90: source (x, y) lands at (h-1-y, x).
	got := nrgbaAt(t, out.Pix, 1, 0)
	if got.R != 0 || got.G != 0 {
		t.Errorf("source top-left should land top-right, found (%d, %d) there", got.R, got.G)
	}

	out, err = (Rotation{}).Apply(img, mustParse(t, "ro=180"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	wantDims(t, out, 4, 2)
	got = nrgbaAt(t, out.Pix, 3, 1)
	if got.R != 0 || got.G != 0 {
		t.Errorf("source top-left should land bottom-right, found (%d, %d) there", got.R, got.G)
	}

	out, err = (Rotation{}).Apply(img, mustParse(t, "ro=270"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	wantDims(t, out, 2, 4)
	got = nrgbaAt(t, out.Pix, 0, 3)
	if got.R != 0 || got.G != 0 {
		t.Errorf("source top-left should land bottom-left, found (%d, %d) there", got.R, got.G)
	}
}

func TestRotationMirrors(t *testing.T) {
	img := gradientImage(4, 3, imagetype.PNG)

	// flip mirrors top to bottom.
	out, err := (Rotation{}).Apply(img, mustParse(t, "flip"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	wantDims(t, out, 4, 3)
	if got := nrgbaAt(t, out.Pix, 0, 2); got.R != 0 || got.G != 0 {
		t.Errorf("flip: source top-left should land bottom-left, found (%d, %d)", got.R, got.G)
	}

	// flop mirrors left to right.
	out, err = (Rotation{}).Apply(img, mustParse(t, "flop"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := nrgbaAt(t, out.Pix, 3, 0); got.R != 0 || got.G != 0 {
		t.Errorf("flop: source top-left should land top-right, found (%d, %d)", got.R, got.G)
	}
}

func TestRotationApplicable(t *testing.T) {
	if (Rotation{}).Applicable(mustParse(t, "ro=0")) {
		t.Errorf("ro=0 is a no-op")
	}
	if (Rotation{}).Applicable(mustParse(t, "ro=360")) {
		t.Errorf("full turns normalize away at parse time")
	}
	for _, q := range []string{"ro=90", "flip", "flop"} {
		if !(Rotation{}).Applicable(mustParse(t, q)) {
			t.Errorf("%s should rotate", q)
		}
	}
}

func TestOrientationNormalizes(t *testing.T) {
	tests := []struct {
		orientation  int
		wantW, wantH int
		// where the source top-left pixel lands
		atX, atY int
	}{
		{2, 4, 2, 3, 0}, // mirror horizontal
		{3, 4, 2, 3, 1}, // rotate 180
		{4, 4, 2, 0, 1}, // mirror vertical
		{5, 2, 4, 0, 0}, // transpose
		{6, 2, 4, 1, 0}, // rotate 90 cw
		{7, 2, 4, 1, 3}, // transverse
		{8, 2, 4, 0, 3}, // rotate 270 cw
	}

	for _, tt := range tests {
		img := gradientImage(4, 2, imagetype.JPEG)
		img.Meta.Orientation = tt.orientation

		out, err := (Orientation{}).Apply(img, mustParse(t, ""))
		if err != nil {
			t.Fatalf("orientation %d: %v", tt.orientation, err)
		}
		wantDims(t, out, tt.wantW, tt.wantH)
		if got := nrgbaAt(t, out.Pix, tt.atX, tt.atY); got.R != 0 || got.G != 0 {
			t.Errorf("orientation %d: source top-left not at (%d, %d), found (%d, %d)",
				tt.orientation, tt.atX, tt.atY, got.R, got.G)
		}
		if out.Meta.Orientation != 0 {
			t.Errorf("orientation %d: tag not cleared after normalizing", tt.orientation)
		}
	}
}

func TestOrientationUntaggedPassesThrough(t *testing.T) {
	for _, tag := range []int{0, 1} {
		img := gradientImage(4, 2, imagetype.JPEG)
		img.Meta.Orientation = tag
		out, err := (Orientation{}).Apply(img, mustParse(t, ""))
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if out != img {
			t.Errorf("orientation %d should pass through", tag)
		}
	}
}
