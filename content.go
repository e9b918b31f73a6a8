package slidegen

import (
	"fmt"
	"strings"
)

// PresentationContent is the input for one generation call. Slide order is
// presentation order.
type PresentationContent struct {
	Title  string
	Author string
	Slides []*SlideContent
}

// AddSlide appends a slide and returns it.
func (p *PresentationContent) AddSlide(title, description string) *SlideContent {
	s := &SlideContent{Title: title, Description: description}
	p.Slides = append(p.Slides, s)
	return s
}

// SlideContent holds the text and images of one slide.
type SlideContent struct {
	Title string
	// Description is the body text. Synopsis is a legacy name for the same value.
	Description  string
	Images       []*ImageRef
	BulletPoints []string
	Layout       LayoutVariant

	// background is a 1-based index into Images; 0 means none.
	background int
}

// ImageRef points at an image file on disk. Existence is checked at embed time.
type ImageRef struct {
	Path    string
	AltText string
	Caption string
}

// Synopsis returns the body text under its legacy name.
func (s *SlideContent) Synopsis() string { return s.Description }

// SetSynopsis sets the body text under its legacy name. A non-empty
// description is kept.
func (s *SlideContent) SetSynopsis(text string) {
	if s.Description == "" {
		s.Description = text
	}
}

// BodyText returns the text rendered in the body text box.
func (s *SlideContent) BodyText() string {
	return strings.TrimSpace(s.Description)
}

// AddImage appends an image and returns it.
func (s *SlideContent) AddImage(path, altText, caption string) *ImageRef {
	img := &ImageRef{Path: path, AltText: altText, Caption: caption}
	s.Images = append(s.Images, img)
	return img
}

// SetBackgroundImage marks img as the slide's primary image. An image that is
// not yet part of Images (by identity) is appended, so it is rendered once.
func (s *SlideContent) SetBackgroundImage(img *ImageRef) {
	if img == nil {
		s.background = 0
		return
	}
	for i, existing := range s.Images {
		if existing == img {
			s.background = i + 1
			return
		}
	}
	s.Images = append(s.Images, img)
	s.background = len(s.Images)
}

// BackgroundImage returns the primary image, if one was set.
func (s *SlideContent) BackgroundImage() (*ImageRef, bool) {
	if s.background <= 0 || s.background > len(s.Images) {
		return nil, false
	}
	return s.Images[s.background-1], true
}

// EffectiveLayout resolves LayoutAuto: ImageFocused when a background image is
// set, TitleAndContent otherwise.
func (s *SlideContent) EffectiveLayout() LayoutVariant {
	if s.Layout != LayoutAuto {
		return s.Layout
	}
	if _, ok := s.BackgroundImage(); ok {
		return LayoutImageFocused
	}
	return LayoutTitleAndContent
}

// RenderImages returns the images in render order with nil entries and
// duplicate references dropped.
func (s *SlideContent) RenderImages() []*ImageRef {
	seen := make(map[*ImageRef]bool, len(s.Images))
	out := make([]*ImageRef, 0, len(s.Images))
	for _, img := range s.Images {
		if img == nil || seen[img] {
			continue
		}
		seen[img] = true
		out = append(out, img)
	}
	return out
}

// LayoutVariant selects how a slide's shapes are arranged.
type LayoutVariant int

const (
	LayoutAuto LayoutVariant = iota
	LayoutTitle
	LayoutTitleAndContent
	LayoutImageFocused
	LayoutImageGrid
	LayoutSingleImageWithCaption
	LayoutTwoImageComparison
	LayoutProductShowcase
)

var layoutNames = map[LayoutVariant]string{
	LayoutAuto:                   "Auto",
	LayoutTitle:                  "Title",
	LayoutTitleAndContent:        "TitleAndContent",
	LayoutImageFocused:           "ImageFocused",
	LayoutImageGrid:              "ImageGrid",
	LayoutSingleImageWithCaption: "SingleImageWithCaption",
	LayoutTwoImageComparison:     "TwoImageComparison",
	LayoutProductShowcase:        "ProductShowcase",
}

func (l LayoutVariant) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LayoutVariant(%d)", int(l))
}

// ParseLayoutVariant parses a layout name case-insensitively. Spaces, dashes
// and underscores are ignored, so "product-showcase" matches ProductShowcase.
// An empty name yields LayoutAuto.
func ParseLayoutVariant(name string) (LayoutVariant, error) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	if key == "" {
		return LayoutAuto, nil
	}
	for variant, n := range layoutNames {
		if strings.ToLower(n) == key {
			return variant, nil
		}
	}
	return LayoutAuto, fmt.Errorf("unknown layout %q", name)
}
