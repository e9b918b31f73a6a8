package contentfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/VantageDataChat/slidegen"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("deck.JSON"))
	assert.Equal(t, FormatYAML, FormatOf("deck.yml"))
	assert.Equal(t, FormatYAML, FormatOf("deck.yaml"))
	assert.Equal(t, FormatMarkdown, FormatOf("deck.md"))
	assert.Equal(t, FormatMarkdown, FormatOf("deck"))
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "deck.yaml", `
title: Quarterly
author: Finance
slides:
  - title: Q4 Results
    description: Revenue grew.
    layout: title-and-content
    bullets: [" up 12% ", ""]
    images:
      - path: chart.png
        alt: Revenue chart
  - title: Hero
    synopsis: Legacy body
    background:
      path: /abs/hero.jpg
`)
	content, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Quarterly", content.Title)
	assert.Equal(t, "Finance", content.Author)
	require.Len(t, content.Slides, 2)

	first := content.Slides[0]
	assert.Equal(t, slidegen.LayoutTitleAndContent, first.Layout)
	assert.Equal(t, []string{"up 12%"}, first.BulletPoints)
	require.Len(t, first.Images, 1)
	assert.Equal(t, filepath.Join(dir, "chart.png"), first.Images[0].Path)
	assert.Equal(t, "Revenue chart", first.Images[0].AltText)

	second := content.Slides[1]
	assert.Equal(t, "Legacy body", second.Description)
	bg, ok := second.BackgroundImage()
	require.True(t, ok)
	assert.Equal(t, "/abs/hero.jpg", bg.Path)
	assert.Equal(t, slidegen.LayoutImageFocused, second.EffectiveLayout())
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "deck.json", `{"title":"T","slides":[{"title":"A","layout":"ImageGrid","images":[{"path":"a.png"},{"path":"b.png"}]}]}`)
	content, err := Load(path)
	require.NoError(t, err)
	require.Len(t, content.Slides, 1)
	assert.Equal(t, slidegen.LayoutImageGrid, content.Slides[0].Layout)
	assert.Len(t, content.Slides[0].Images, 2)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load("")
	require.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeFile(t, dir, "bad.json", `{"slides":`))
	require.ErrorContains(t, err, "decode json")

	_, err = Load(writeFile(t, dir, "layout.yaml", "slides:\n  - title: x\n    layout: sideways\n"))
	require.ErrorContains(t, err, "slide 1")

	_, err = Load(writeFile(t, dir, "noimg.yaml", "slides:\n  - title: x\n    images:\n      - alt: y\n"))
	require.ErrorContains(t, err, "image path is required")
}

func TestParseMarkdown(t *testing.T) {
	doc, err := Parse([]byte(`preamble is ignored
# Launch Plan
<!-- author: Dana -->

## Overview
<!-- layout: product showcase -->
Our widget is light.

It is also cheap.
- fast
* small
![Front view](img/front.png "The front")
![background: Hero shot](img/hero.jpg)

## Closing
Thanks
`), FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, "Launch Plan", doc.Title)
	assert.Equal(t, "Dana", doc.Author)
	require.Len(t, doc.Slides, 2)

	s := doc.Slides[0]
	assert.Equal(t, "Overview", s.Title)
	assert.Equal(t, "product showcase", s.Layout)
	assert.Equal(t, "Our widget is light.\n\nIt is also cheap.", s.Description)
	assert.Equal(t, []string{"fast", "small"}, s.Bullets)
	assert.Equal(t, []Image{{Path: "img/front.png", Alt: "Front view", Caption: "The front"}}, s.Images)
	require.NotNil(t, s.Background)
	assert.Equal(t, "Hero shot", s.Background.Alt)

	assert.Equal(t, Slide{Title: "Closing", Description: "Thanks"}, doc.Slides[1])

	content, err := doc.Content("/deck")
	require.NoError(t, err)
	assert.Equal(t, slidegen.LayoutProductShowcase, content.Slides[0].Layout)
	assert.Equal(t, filepath.Join("/deck", "img/front.png"), content.Slides[0].Images[0].Path)
}

func TestParseUTF16AndNormalisation(t *testing.T) {
	// a combining accent is composed into a single rune
	src := "title: Cafe\u0301\nslides:\n  - title: x\n"
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	raw, err := enc.Bytes([]byte(src))
	require.NoError(t, err)

	doc, err := Parse(raw, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", doc.Title)

	doc, err = Parse(append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"title":"bom"}`)...), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "bom", doc.Title)
}
