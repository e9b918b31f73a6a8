package slidegen

import (
	"log/slog"
	"time"
)

// SlideSize represents the slide dimensions.
type SlideSize struct {
	CX   int64 // width in EMU (English Metric Units)
	CY   int64 // height in EMU
	Name string
}

// Standard layout constants (in EMU: 1 inch = 914400 EMU).
const (
	SizeScreen4x3   = "screen4x3"
	SizeScreen16x9  = "screen16x9"
	SizeScreen16x10 = "screen16x10"
	SizeA4          = "A4"
	SizeLetter      = "letter"
	SizeCustom      = "custom"

	defaultSlideCX = 9144000 // 10 inches
	defaultSlideCY = 6858000 // 7.5 inches
)

// NewSlideSize creates the default 4:3 size.
func NewSlideSize() SlideSize {
	return SlideSize{CX: defaultSlideCX, CY: defaultSlideCY, Name: SizeScreen4x3}
}

// NamedSlideSize returns a predefined size. Unknown names give the default.
func NamedSlideSize(name string) SlideSize {
	switch name {
	case SizeScreen16x9:
		return SlideSize{CX: 12192000, CY: 6858000, Name: name}
	case SizeScreen16x10:
		return SlideSize{CX: 9144000, CY: 5715000, Name: name}
	case SizeA4:
		return SlideSize{CX: 9906000, CY: 6858000, Name: name}
	case SizeLetter:
		return SlideSize{CX: 9144000, CY: 6858000, Name: name}
	default:
		return NewSlideSize()
	}
}

// CustomSlideSize sets custom dimensions in EMU. Non-positive values fall back
// to the default.
func CustomSlideSize(cx, cy int64) SlideSize {
	if cx <= 0 {
		cx = defaultSlideCX
	}
	if cy <= 0 {
		cy = defaultSlideCY
	}
	if cx == defaultSlideCX && cy == defaultSlideCY {
		return NewSlideSize()
	}
	return SlideSize{CX: cx, CY: cy, Name: SizeCustom}
}

// sldSzTypes holds the dimensions viewers assume for each <p:sldSz> type.
// screen16x9 there means 10 x 5.625 inches, not the 13.33 inch widescreen.
var sldSzTypes = map[string][2]int64{
	SizeScreen4x3:   {9144000, 6858000},
	SizeScreen16x9:  {9144000, 5143500},
	SizeScreen16x10: {9144000, 5715000},
	SizeA4:          {9906000, 6858000},
	SizeLetter:      {9144000, 6858000},
}

// sldSzType returns the type attribute for <p:sldSz>. It is empty unless the
// size matches the dimensions its type stands for.
func (s SlideSize) sldSzType() string {
	if dims, ok := sldSzTypes[s.Name]; ok && dims == [2]int64{s.CX, s.CY} {
		return s.Name
	}
	return ""
}

// Options controls one generation or rewrite call.
type Options struct {
	SlideSize      SlideSize
	DPI            float64
	FallbackWidth  int // pixels used when an image cannot be decoded
	FallbackHeight int
	Logger         *slog.Logger
	Now            func() time.Time
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		SlideSize:      NewSlideSize(),
		DPI:            DefaultDPI,
		FallbackWidth:  800,
		FallbackHeight: 600,
		Logger:         slog.New(slog.DiscardHandler),
		Now:            time.Now,
	}
}

// WithSlideSize sets the slide dimensions.
func WithSlideSize(size SlideSize) Option {
	return func(o *Options) {
		if size.CX > 0 && size.CY > 0 {
			o.SlideSize = size
		}
	}
}

// WithDPI sets the resolution used to convert image pixels to EMU.
func WithDPI(dpi float64) Option {
	return func(o *Options) {
		if dpi > 0 {
			o.DPI = dpi
		}
	}
}

// WithFallbackImageSize sets the pixel size assumed for undecodable images.
func WithFallbackImageSize(w, h int) Option {
	return func(o *Options) {
		if w > 0 && h > 0 {
			o.FallbackWidth, o.FallbackHeight = w, h
		}
	}
}

// WithLogger sets the logger for soft failures and progress.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithClock overrides the time source for document properties.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Stats summarizes one generation or rewrite call.
type Stats struct {
	Slides          int // slides in the output
	Shapes          int // shapes placed by the synthesizer
	ImagesEmbedded  int
	ImagesSkipped   int // missing image files
	ImagesFallback  int // images whose size could not be decoded
	SlidesRemoved   int
	PicturesRemoved int
	BlipsUnresolved int
	TokensReplaced  int
}
