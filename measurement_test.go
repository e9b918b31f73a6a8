package slidegen

import (
	"math"
	"testing"
)

func TestUnitConversions(t *testing.T) {
	if Inch(1) != 914400 {
		t.Errorf("Inch(1) = %d", Inch(1))
	}
	if Point(1) != 12700 {
		t.Errorf("Point(1) = %d", Point(1))
	}
	if Centimeter(1) != 360000 {
		t.Errorf("Centimeter(1) = %d", Centimeter(1))
	}
	if Millimeter(10) != Centimeter(1) {
		t.Errorf("Millimeter(10) = %d", Millimeter(10))
	}
	if EMUToInch(914400) != 1 {
		t.Errorf("EMUToInch = %f", EMUToInch(914400))
	}
	if EMUToPoint(12700) != 1 {
		t.Errorf("EMUToPoint = %f", EMUToPoint(12700))
	}
}

func TestPixelsToEMU(t *testing.T) {
	tests := []struct {
		px   int
		dpi  float64
		want int64
	}{
		{1, 96, 9525},
		{96, 96, 914400},
		{72, 72, 914400},
		{150, 300, 457200},
		{96, 0, 914400},
		{96, -1, 914400},
		{0, 96, 0},
	}
	for _, tt := range tests {
		if got := PixelsToEMU(tt.px, tt.dpi); got != tt.want {
			t.Errorf("PixelsToEMU(%d, %v) = %d, want %d", tt.px, tt.dpi, got, tt.want)
		}
	}
	if PixelsToEMUDefault(10) != 95250 {
		t.Errorf("PixelsToEMUDefault(10) = %d", PixelsToEMUDefault(10))
	}
}

func TestPixelsToEMURoundTrip(t *testing.T) {
	unit := PixelsToEMUDefault(1)
	for p := 1; p <= 5000; p++ {
		got := float64(PixelsToEMUDefault(p)) / float64(unit)
		if math.Abs(got-float64(p)) > 1e-9 {
			t.Fatalf("round trip of %d px gave %f", p, got)
		}
	}
}

func TestFitWithinBoundsNoUpscale(t *testing.T) {
	w, h := FitWithinBounds(100, 50, Inch(9), Inch(5), DefaultDPI)
	if w != PixelsToEMUDefault(100) || h != PixelsToEMUDefault(50) {
		t.Errorf("small image was resized: %d x %d", w, h)
	}

	// exactly at the bounds is unchanged too
	w, h = FitWithinBounds(96, 96, Inch(1), Inch(1), DefaultDPI)
	if w != Inch(1) || h != Inch(1) {
		t.Errorf("boundary image was resized: %d x %d", w, h)
	}
}

func TestFitWithinBoundsAspect(t *testing.T) {
	tests := []struct {
		w, h       int
		maxW, maxH int64
	}{
		{1920, 1080, Inch(9), Inch(3.6)},
		{1080, 1920, Inch(9), Inch(3.6)},
		{4000, 3000, Inch(4), Inch(4)},
		{3000, 200, Inch(2), Inch(6)},
		{1234, 987, Inch(1.3), Inch(0.7)},
	}
	for _, tt := range tests {
		w, h := FitWithinBounds(tt.w, tt.h, tt.maxW, tt.maxH, DefaultDPI)
		if w > tt.maxW || h > tt.maxH {
			t.Errorf("%dx%d: result %dx%d exceeds %dx%d", tt.w, tt.h, w, h, tt.maxW, tt.maxH)
		}
		if w != tt.maxW && h != tt.maxH {
			t.Errorf("%dx%d: result %dx%d touches neither bound", tt.w, tt.h, w, h)
		}
		want := float64(tt.w) / float64(tt.h)
		got := float64(w) / float64(h)
		if math.Abs(got-want)/want > 1e-3 {
			t.Errorf("%dx%d: aspect %f, want %f", tt.w, tt.h, got, want)
		}
	}
}

func TestFitWithinBoundsNeverZero(t *testing.T) {
	w, h := FitWithinBounds(100000, 1, Inch(1), Inch(1), DefaultDPI)
	if w <= 0 || h <= 0 {
		t.Errorf("got zero dimension: %d x %d", w, h)
	}
	if w != Inch(1) {
		t.Errorf("width = %d, want %d", w, Inch(1))
	}
}

func TestRect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 100, H: 100}
	b := Rect{X: 100, Y: 0, W: 50, H: 50}
	c := Rect{X: 50, Y: 50, W: 100, H: 100}

	if a.Overlaps(b) {
		t.Error("touching rects must not overlap")
	}
	if !a.Overlaps(c) || !c.Overlaps(a) {
		t.Error("intersecting rects must overlap")
	}
	if a.Overlaps(Rect{X: 10, Y: 10}) {
		t.Error("empty rect must not overlap")
	}
	if !a.Contains(Rect{X: 10, Y: 10, W: 20, H: 20}) || a.Contains(c) {
		t.Error("Contains mismatch")
	}
	in := a.Inset(10)
	if in != (Rect{X: 10, Y: 10, W: 80, H: 80}) {
		t.Errorf("Inset = %+v", in)
	}
	if got := a.Inset(80); got.W != 0 || got.H != 0 {
		t.Errorf("over-inset = %+v", got)
	}
	if got := centerIn(a, 20, 40); got != (Rect{X: 40, Y: 30, W: 20, H: 40}) {
		t.Errorf("centerIn = %+v", got)
	}
}
