package contentfile

import (
	"regexp"
	"strings"
)

var (
	imageLine   = regexp.MustCompile(`^!\[([^\]]*)\]\(\s*([^)\s]+)(?:\s+"([^"]*)")?\s*\)$`)
	commentLine = regexp.MustCompile(`^<!--\s*([a-zA-Z]+)\s*:\s*(.*?)\s*-->$`)
)

// parseMarkdown reads the outline syntax:
//
//	# Deck title
//	<!-- author: Dana -->
//
//	## Slide title
//	<!-- layout: ImageGrid -->
//	Body text, one paragraph per line.
//	- bullet point
//	![alt text](images/chart.png "caption")
//	![background: alt text](images/hero.jpg)
func parseMarkdown(text string) Document {
	var doc Document
	var cur *Slide
	var body []string

	flush := func() {
		if cur == nil {
			return
		}
		cur.Description = strings.TrimSpace(strings.Join(body, "\n"))
		doc.Slides = append(doc.Slides, *cur)
		cur, body = nil, nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		switch {
		case strings.HasPrefix(line, "## "):
			flush()
			cur = &Slide{Title: strings.TrimSpace(line[3:])}
		case strings.HasPrefix(line, "# "):
			if doc.Title == "" {
				doc.Title = strings.TrimSpace(line[2:])
			}
		case commentLine.MatchString(line):
			m := commentLine.FindStringSubmatch(line)
			key, value := strings.ToLower(m[1]), m[2]
			switch {
			case key == "author":
				doc.Author = value
			case key == "layout" && cur != nil:
				cur.Layout = value
			}
		case cur == nil:
			// text before the first slide heading is ignored
		case imageLine.MatchString(line):
			m := imageLine.FindStringSubmatch(line)
			img := Image{Path: m[2], Alt: m[1], Caption: m[3]}
			if alt, ok := cutFold(img.Alt, "background:"); ok {
				img.Alt = strings.TrimSpace(alt)
				cur.Background = &img
				continue
			}
			cur.Images = append(cur.Images, img)
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			cur.Bullets = append(cur.Bullets, strings.TrimSpace(line[2:]))
		default:
			if line != "" || len(body) > 0 {
				body = append(body, line)
			}
		}
	}
	flush()
	return doc
}

func cutFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
