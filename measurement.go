package slidegen

import "math"

// EMU (English Metric Units) conversion helpers.
// 1 inch = 914400 EMU, 1 point = 12700 EMU, 1 cm = 360000 EMU.

const (
	emuPerInch       = 914400
	emuPerPoint      = 12700
	emuPerCentimeter = 360000
	emuPerMillimeter = 36000
	// maxEMU is the maximum safe EMU value to prevent overflow.
	maxEMU = math.MaxInt64 / 2

	// DefaultDPI is the screen resolution assumed for pixel sizes.
	DefaultDPI = 96.0
)

// Inch converts inches to EMU. Clamps to safe range.
func Inch(n float64) int64 {
	return clampEMU(n * emuPerInch)
}

// Point converts points to EMU.
func Point(n float64) int64 {
	return clampEMU(n * emuPerPoint)
}

// Centimeter converts centimeters to EMU.
func Centimeter(n float64) int64 {
	return clampEMU(n * emuPerCentimeter)
}

// Millimeter converts millimeters to EMU.
func Millimeter(n float64) int64 {
	return clampEMU(n * emuPerMillimeter)
}

// EMUToInch converts EMU to inches.
func EMUToInch(emu int64) float64 {
	return float64(emu) / emuPerInch
}

// EMUToPoint converts EMU to points.
func EMUToPoint(emu int64) float64 {
	return float64(emu) / emuPerPoint
}

// PixelsToEMU converts a pixel count at the given resolution to EMU.
// A non-positive dpi falls back to DefaultDPI.
func PixelsToEMU(px int, dpi float64) int64 {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return clampEMU(math.Round(float64(px) * emuPerInch / dpi))
}

// PixelsToEMUDefault converts pixels at 96 DPI (9525 EMU per pixel).
func PixelsToEMUDefault(px int) int64 {
	return PixelsToEMU(px, DefaultDPI)
}

// FitWithinBounds converts a source size in pixels to EMU and shrinks it to
// fit maxW x maxH, preserving the aspect ratio. Sizes that already fit are
// returned unscaled. Positive input never yields a zero dimension.
func FitWithinBounds(srcW, srcH int, maxW, maxH int64, dpi float64) (int64, int64) {
	w := PixelsToEMU(srcW, dpi)
	h := PixelsToEMU(srcH, dpi)
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return w, h
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	fw := int64(math.Round(float64(w) * scale))
	fh := int64(math.Round(float64(h) * scale))
	// rounding must not push past the bounds or collapse a side
	fw = min(max(fw, 1), maxW)
	fh = min(max(fh, 1), maxH)
	return fw, fh
}

// clampEMU converts a float64 to int64, clamping to prevent overflow.
func clampEMU(v float64) int64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(v)
}

// Rect is an axis-aligned box in EMU.
type Rect struct {
	X, Y, W, H int64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int64 { return r.Y + r.H }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Overlaps reports whether r and o share any area. Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Inset shrinks the rect by d on every side.
func (r Rect) Inset(d int64) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// centerIn places a w x h box centered inside r.
func centerIn(r Rect, w, h int64) Rect {
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}
