package slidegen

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateContent checks content for problems that make generation
// impossible and returns an error describing all of them, or nil.
// Image files are not checked; missing images are skipped at render time.
func ValidateContent(c *PresentationContent) error {
	if c == nil {
		return errors.New("presentation content is nil")
	}
	if len(c.Slides) == 0 {
		return ErrNoSlides
	}

	var errs []string
	for i, s := range c.Slides {
		prefix := fmt.Sprintf("slide %d", i+1)
		if s == nil {
			errs = append(errs, prefix+": slide is nil")
			continue
		}
		if _, ok := layoutNames[s.Layout]; !ok {
			errs = append(errs, fmt.Sprintf("%s: unknown layout %d", prefix, int(s.Layout)))
		}
		if bg, ok := s.BackgroundImage(); ok && bg == nil {
			errs = append(errs, prefix+": background image is nil")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}
