package slidegen

import (
	"path/filepath"
	"testing"
)

func TestClassifyImageFormat(t *testing.T) {
	tests := []struct {
		path string
		want ImageFormat
	}{
		{"a.png", FormatPNG},
		{"A.PNG", FormatPNG},
		{"dir/b.gif", FormatGIF},
		{"c.bmp", FormatBMP},
		{"c.dib", FormatBMP},
		{"d.tif", FormatTIFF},
		{"d.TIFF", FormatTIFF},
		{"e.jpg", FormatJPEG},
		{"e.jpeg", FormatJPEG},
		{"f.webp", FormatJPEG},
		{"noext", FormatJPEG},
	}
	for _, tt := range tests {
		if got := ClassifyImageFormat(tt.path); got != tt.want {
			t.Errorf("ClassifyImageFormat(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
	if FormatPNG.ContentType() != "image/png" || FormatJPEG.Extension() != "jpeg" {
		t.Error("format metadata")
	}
}

func TestReadImageDimensions(t *testing.T) {
	dir := t.TempDir()
	w, h, ok := ReadImageDimensions(writePNG(t, dir, "wide.png", 120, 30), 800, 600)
	if !ok || w != 120 || h != 30 {
		t.Errorf("png = %dx%d ok=%v", w, h, ok)
	}

	w, h, ok = ReadImageDimensions(writeFile(t, dir, "junk.png", []byte("junk")), 800, 600)
	if ok || w != 800 || h != 600 {
		t.Errorf("junk = %dx%d ok=%v, want fallback", w, h, ok)
	}

	w, h, ok = ReadImageDimensions(filepath.Join(dir, "absent.png"), 10, 20)
	if ok || w != 10 || h != 20 {
		t.Errorf("absent = %dx%d ok=%v, want fallback", w, h, ok)
	}
}
