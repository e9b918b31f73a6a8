package slidegen

import (
	"reflect"
	"testing"
)

func TestProseToBullets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"two sentences", "Fast setup. Low cost.", []string{"Fast setup", "Low cost"}},
		{"capped at four", "A. B. C. D. E. F.", []string{"A", "B", "C", "D"}},
		{"single sentence", "Just one sentence.", nil},
		{"no period", "No punctuation here", nil},
		{"line breaks", "First.\nSecond.", nil},
		{"existing marker", "- Already. A list.", nil},
		{"numbered", "1. First. Second.", nil},
		{"empty", "", nil},
		{"extra dots", "One..  Two. ", []string{"One", "Two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := proseToBullets(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("proseToBullets(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTextParagraphs(t *testing.T) {
	got := textParagraphs("Intro\r\n\n- one\n* two\n3) three\n")
	want := []paragraph{
		{text: "Intro"},
		{text: "one", bullet: true},
		{text: "two", bullet: true},
		{text: "three", bullet: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("textParagraphs = %+v", got)
	}
}

func TestBodyParagraphs(t *testing.T) {
	s := &SlideContent{Description: "Light. Strong. Cheap."}
	if got := bodyParagraphs(s, false); len(got) != 1 || got[0].bullet {
		t.Errorf("without auto bullets: %+v", got)
	}
	if got := bodyParagraphs(s, true); len(got) != 3 || !got[0].bullet {
		t.Errorf("with auto bullets: %+v", got)
	}

	// explicit bullet points take precedence over converted prose
	s.BulletPoints = []string{"- Ships today", " "}
	got := bodyParagraphs(s, true)
	want := []paragraph{
		{text: "Light. Strong. Cheap."},
		{text: "Ships today", bullet: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("with bullet points: %+v", got)
	}
}
