package slidegen

import (
	"reflect"
	"testing"
)

func TestSlideContentSynopsisAlias(t *testing.T) {
	s := &SlideContent{}
	s.SetSynopsis("from synopsis")
	if s.Description != "from synopsis" || s.Synopsis() != "from synopsis" {
		t.Errorf("synopsis not mapped to description: %q", s.Description)
	}

	s = &SlideContent{Description: "kept"}
	s.SetSynopsis("ignored")
	if s.BodyText() != "kept" {
		t.Errorf("BodyText = %q, want kept", s.BodyText())
	}
}

func TestSetBackgroundImageMergesByIdentity(t *testing.T) {
	s := &SlideContent{}
	a := s.AddImage("a.png", "A", "")
	s.SetBackgroundImage(a)
	if len(s.Images) != 1 {
		t.Fatalf("existing image duplicated: %d images", len(s.Images))
	}
	if bg, ok := s.BackgroundImage(); !ok || bg != a {
		t.Fatal("background image not set")
	}

	// an equal but distinct value is a different image
	b := &ImageRef{Path: "a.png", AltText: "A"}
	s.SetBackgroundImage(b)
	if len(s.Images) != 2 {
		t.Fatalf("new background not appended: %d images", len(s.Images))
	}
	if bg, _ := s.BackgroundImage(); bg != b {
		t.Error("background should be the appended image")
	}

	s.SetBackgroundImage(nil)
	if _, ok := s.BackgroundImage(); ok {
		t.Error("background should be cleared")
	}
}

func TestRenderImagesDropsDuplicates(t *testing.T) {
	a := &ImageRef{Path: "a.png"}
	b := &ImageRef{Path: "b.png"}
	s := &SlideContent{Images: []*ImageRef{a, nil, b, a}}
	got := s.RenderImages()
	if !reflect.DeepEqual(got, []*ImageRef{a, b}) {
		t.Errorf("RenderImages = %v", got)
	}
}

func TestEffectiveLayout(t *testing.T) {
	s := &SlideContent{}
	if s.EffectiveLayout() != LayoutTitleAndContent {
		t.Errorf("plain slide: %v", s.EffectiveLayout())
	}
	s.SetBackgroundImage(&ImageRef{Path: "bg.png"})
	if s.EffectiveLayout() != LayoutImageFocused {
		t.Errorf("background slide: %v", s.EffectiveLayout())
	}
	s.Layout = LayoutProductShowcase
	if s.EffectiveLayout() != LayoutProductShowcase {
		t.Errorf("tagged slide: %v", s.EffectiveLayout())
	}
}

func TestParseLayoutVariant(t *testing.T) {
	tests := []struct {
		in   string
		want LayoutVariant
	}{
		{"", LayoutAuto},
		{"title", LayoutTitle},
		{"TitleAndContent", LayoutTitleAndContent},
		{"product-showcase", LayoutProductShowcase},
		{"Two Image Comparison", LayoutTwoImageComparison},
		{"single_image_with_caption", LayoutSingleImageWithCaption},
		{"IMAGEGRID", LayoutImageGrid},
	}
	for _, tt := range tests {
		got, err := ParseLayoutVariant(tt.in)
		if err != nil {
			t.Errorf("ParseLayoutVariant(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLayoutVariant(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLayoutVariant("collage"); err == nil {
		t.Error("expected error for unknown layout")
	}
	if LayoutVariant(99).String() != "LayoutVariant(99)" {
		t.Errorf("String of unknown variant = %q", LayoutVariant(99).String())
	}
}

func TestValidateContent(t *testing.T) {
	if err := ValidateContent(nil); err == nil {
		t.Error("nil content should fail")
	}
	if err := ValidateContent(&PresentationContent{}); err != ErrNoSlides {
		t.Errorf("empty content: %v", err)
	}
	c := &PresentationContent{}
	c.AddSlide("ok", "")
	if err := ValidateContent(c); err != nil {
		t.Errorf("valid content: %v", err)
	}
	c.Slides = append(c.Slides, nil, &SlideContent{Layout: LayoutVariant(42)})
	if err := ValidateContent(c); err == nil {
		t.Error("nil slide and bad layout should fail")
	}
}
