package slidegen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageFormat is the binary format an embedded image part is stored as.
type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatPNG  ImageFormat = "png"
	FormatGIF  ImageFormat = "gif"
	FormatBMP  ImageFormat = "bmp"
	FormatTIFF ImageFormat = "tiff"
)

// ClassifyImageFormat classifies a file by its extension, case-insensitively.
// Unrecognized extensions are treated as JPEG.
func ClassifyImageFormat(path string) ImageFormat {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "png":
		return FormatPNG
	case "gif":
		return FormatGIF
	case "bmp", "dib":
		return FormatBMP
	case "tif", "tiff":
		return FormatTIFF
	default:
		return FormatJPEG
	}
}

// Extension returns the part name extension for the format.
func (f ImageFormat) Extension() string {
	return string(f)
}

// ContentType returns the MIME type registered for the format.
func (f ImageFormat) ContentType() string {
	return "image/" + string(f)
}

// ReadImageDimensions returns the pixel size of the image at path. When the
// file cannot be read or decoded it returns the fallback size and false.
func ReadImageDimensions(path string, fallbackW, fallbackH int) (int, int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallbackW, fallbackH, false
	}
	return imageDimensions(data, fallbackW, fallbackH)
}

func imageDimensions(data []byte, fallbackW, fallbackH int) (int, int, bool) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return fallbackW, fallbackH, false
	}
	return cfg.Width, cfg.Height, true
}

// imageExists reports whether path names a regular file. Any error other than
// non-existence is returned so the caller can treat it as an I/O fault.
func imageExists(path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// sourceImage is an image file loaded for placement. Its bytes become a
// media part only once a layout actually places it.
type sourceImage struct {
	Ref    *ImageRef
	Format ImageFormat
	Data   []byte
	Width  int // pixels
	Height int
	Exact  bool // false when Width/Height are the fallback size
}

// loadImage reads ref from disk. A missing file yields (nil, nil); a file that
// exists but cannot be read is returned as an error.
func loadImage(ref *ImageRef, o Options) (*sourceImage, error) {
	ok, err := imageExists(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image %s: %w", ref.Path, err)
	}
	if !ok {
		return nil, nil
	}
	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", ref.Path, err)
	}
	w, h, exact := imageDimensions(data, o.FallbackWidth, o.FallbackHeight)
	if !exact {
		o.Logger.Warn("image size unreadable, using fallback",
			"path", ref.Path, "width", w, "height", h)
	}
	return &sourceImage{
		Ref:    ref,
		Format: ClassifyImageFormat(ref.Path),
		Data:   data,
		Width:  w,
		Height: h,
		Exact:  exact,
	}, nil
}

// registerImagePart stores img as a new media part related from owner and
// returns the relationship ID for the picture's blip.
func registerImagePart(p *Package, owner *part, img *sourceImage) string {
	name := p.nextMediaName(img.Format.Extension())
	p.setDefault(img.Format.Extension(), img.Format.ContentType())
	p.addPart(name, "", img.Data)
	return p.relate(owner, relTypeImage, name)
}
