package slidegen

import (
	"strings"
	"unicode"
)

// maxAutoBullets caps how many sentences prose is split into.
const maxAutoBullets = 4

// paragraph is one a:p of a text shape.
type paragraph struct {
	text   string
	bullet bool
}

// bulletMarkers are line prefixes that already mark a list item.
var bulletMarkers = []string{"- ", "* ", "• ", "· ", "– ", "+ "}

func hasBulletMarker(line string) bool {
	line = strings.TrimSpace(line)
	for _, m := range bulletMarkers {
		if strings.HasPrefix(line, m) || line == strings.TrimSpace(m) {
			return true
		}
	}
	return numberedPrefix(line) > 0
}

// numberedPrefix returns the length of a "1." or "2)" list prefix, or 0.
func numberedPrefix(line string) int {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i+1 >= len(line) || (line[i] != '.' && line[i] != ')') || line[i+1] != ' ' {
		return 0
	}
	return i + 2
}

func stripBulletMarker(line string) string {
	line = strings.TrimSpace(line)
	for _, m := range bulletMarkers {
		if rest, ok := strings.CutPrefix(line, m); ok {
			return strings.TrimSpace(rest)
		}
	}
	if n := numberedPrefix(line); n > 0 {
		return strings.TrimSpace(line[n:])
	}
	return line
}

// textParagraphs splits body text into one paragraph per non-blank line.
// Lines carrying a list marker become bullets with the marker removed.
func textParagraphs(text string) []paragraph {
	var out []paragraph
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if hasBulletMarker(line) {
			out = append(out, paragraph{text: stripBulletMarker(line), bullet: true})
			continue
		}
		out = append(out, paragraph{text: strings.TrimSpace(line)})
	}
	return out
}

// proseToBullets splits plain prose into at most four sentences. It returns
// nil when the text already has structure (line breaks or list markers) or
// holds a single sentence.
func proseToBullets(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, "\r\n") || hasBulletMarker(text) {
		return nil
	}
	var sentences []string
	for _, s := range strings.Split(text, ".") {
		s = strings.TrimFunc(s, unicode.IsSpace)
		if s == "" {
			continue
		}
		sentences = append(sentences, s)
		if len(sentences) == maxAutoBullets {
			break
		}
	}
	if len(sentences) <= 1 {
		return nil
	}
	return sentences
}

// bodyParagraphs builds the body text shape content for a slide. Explicit
// bullet points follow the description. With autoBullet set, prose without
// explicit bullet points is converted to a list.
func bodyParagraphs(s *SlideContent, autoBullet bool) []paragraph {
	body := s.BodyText()
	var out []paragraph
	if autoBullet && len(s.BulletPoints) == 0 {
		if sentences := proseToBullets(body); sentences != nil {
			for _, sentence := range sentences {
				out = append(out, paragraph{text: sentence, bullet: true})
			}
			return out
		}
	}
	out = textParagraphs(body)
	for _, bp := range s.BulletPoints {
		if bp = strings.TrimSpace(bp); bp != "" {
			out = append(out, paragraph{text: stripBulletMarker(bp), bullet: true})
		}
	}
	return out
}
