// Package contentfile loads presentation content from JSON, YAML or
// markdown-like text files.
package contentfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/VantageDataChat/slidegen"
)

// Format identifies a content file syntax.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// FormatOf picks a format from the file extension. Anything unrecognised is
// read as markdown.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatMarkdown
	}
}

// Document is the serialised form of a presentation.
type Document struct {
	Title  string  `json:"title" yaml:"title"`
	Author string  `json:"author,omitempty" yaml:"author,omitempty"`
	Slides []Slide `json:"slides" yaml:"slides"`
}

type Slide struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Synopsis    string   `json:"synopsis,omitempty" yaml:"synopsis,omitempty"`
	Layout      string   `json:"layout,omitempty" yaml:"layout,omitempty"`
	Bullets     []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
	Images      []Image  `json:"images,omitempty" yaml:"images,omitempty"`
	Background  *Image   `json:"background,omitempty" yaml:"background,omitempty"`
}

type Image struct {
	Path    string `json:"path" yaml:"path"`
	Alt     string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// Load reads path and converts it to presentation content. Relative image
// paths are resolved against the directory of path.
func Load(path string) (*slidegen.PresentationContent, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("content path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	doc, err := Parse(raw, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc.Content(filepath.Dir(path))
}

// Parse decodes raw content in the given format. UTF-16 input with a byte
// order mark is accepted; text is normalised to NFC.
func Parse(raw []byte, format Format) (*Document, error) {
	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(text, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(text, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatMarkdown:
		doc = parseMarkdown(string(text))
	default:
		return nil, fmt.Errorf("unsupported content format %q", format)
	}
	return &doc, nil
}

// decodeText strips a byte order mark, transcodes UTF-16 to UTF-8 and
// applies NFC normalisation.
func decodeText(raw []byte) ([]byte, error) {
	fallback := unicode.UTF8.NewDecoder()
	decoder := unicode.BOMOverride(fallback)
	out, _, err := transform.Bytes(transform.Chain(decoder, norm.NFC), raw)
	if err != nil {
		return nil, fmt.Errorf("decode text: %w", err)
	}
	return out, nil
}

// Content converts the document. baseDir anchors relative image paths.
func (d *Document) Content(baseDir string) (*slidegen.PresentationContent, error) {
	content := &slidegen.PresentationContent{
		Title:  strings.TrimSpace(d.Title),
		Author: strings.TrimSpace(d.Author),
	}
	for i, s := range d.Slides {
		layout, err := slidegen.ParseLayoutVariant(s.Layout)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		slide := content.AddSlide(strings.TrimSpace(s.Title), strings.TrimSpace(s.Description))
		slide.SetSynopsis(strings.TrimSpace(s.Synopsis))
		slide.Layout = layout
		for _, b := range s.Bullets {
			if b = strings.TrimSpace(b); b != "" {
				slide.BulletPoints = append(slide.BulletPoints, b)
			}
		}
		for _, img := range s.Images {
			if strings.TrimSpace(img.Path) == "" {
				return nil, fmt.Errorf("slide %d: image path is required", i+1)
			}
			slide.AddImage(resolvePath(baseDir, img.Path), img.Alt, img.Caption)
		}
		if bg := s.Background; bg != nil && strings.TrimSpace(bg.Path) != "" {
			slide.SetBackgroundImage(&slidegen.ImageRef{
				Path:    resolvePath(baseDir, bg.Path),
				AltText: bg.Alt,
				Caption: bg.Caption,
			})
		}
	}
	return content, nil
}

func resolvePath(baseDir, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}
