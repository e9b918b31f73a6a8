package slidegen

import (
	"fmt"
	"strings"
)

// Generate builds a new presentation from content and writes it to
// outputPath. Missing or undecodable images degrade the affected slide
// instead of failing the call. On error no file is left at outputPath.
func Generate(content *PresentationContent, outputPath string, opts ...Option) (*Stats, error) {
	o := buildOptions(opts)
	if err := ValidateContent(content); err != nil {
		return nil, stageErr("validate", err)
	}

	p, err := createPackage(outputPath)
	if err != nil {
		return nil, stageErr("create", err)
	}
	defer p.discard()

	st := &Stats{}
	sk := buildSkeleton(p, content, o)
	for i, s := range content.Slides {
		slide := sk.addSlide(p)
		if err := synthesizeSlide(p, slide, s, o, st); err != nil {
			return nil, stageErr(fmt.Sprintf("slide %d", i+1), err)
		}
	}
	sk.finish(p, o.SlideSize)

	if err := p.commit(); err != nil {
		return nil, stageErr("write", err)
	}
	st.Slides = len(content.Slides)
	o.Logger.Info("presentation generated",
		"path", outputPath,
		"slides", st.Slides,
		"shapes", st.Shapes,
		"images", st.ImagesEmbedded,
		"images_skipped", st.ImagesSkipped)
	return st, nil
}

// synthesizeSlide fills one slide part with the shapes its layout places.
func synthesizeSlide(p *Package, slide *part, s *SlideContent, o Options, st *Stats) error {
	images, err := loadSlideImages(s, o, st)
	if err != nil {
		return err
	}
	in := &layoutInput{
		slide:  s,
		images: images,
		size:   o.SlideSize,
		dpi:    o.DPI,
		log:    o.Logger,
	}
	placements := policyFor(s.EffectiveLayout()).place(in, contentArea(o.SlideSize))

	ids := newShapeIDs()
	var shapes strings.Builder
	for _, pl := range placements {
		id := ids.allocate()
		switch pl.kind {
		case shapePicture:
			relID := registerImagePart(p, slide, pl.image)
			shapes.WriteString(pictureShapeXML(pl, id, relID))
			st.ImagesEmbedded++
		default:
			shapes.WriteString(textShapeXML(pl, id))
		}
		st.Shapes++
	}
	slide.data = slideXML(shapes.String())
	return nil
}

// loadSlideImages loads the slide's images in render order with the
// background image first. Missing files are skipped.
func loadSlideImages(s *SlideContent, o Options, st *Stats) ([]*sourceImage, error) {
	refs := s.RenderImages()
	if bg, ok := s.BackgroundImage(); ok {
		ordered := []*ImageRef{bg}
		for _, ref := range refs {
			if ref != bg {
				ordered = append(ordered, ref)
			}
		}
		refs = ordered
	}

	var out []*sourceImage
	for _, ref := range refs {
		img, err := loadImage(ref, o)
		if err != nil {
			return nil, err
		}
		if img == nil {
			st.ImagesSkipped++
			o.Logger.Warn("image not found, skipping", "path", ref.Path)
			continue
		}
		if !img.Exact {
			st.ImagesFallback++
		}
		out = append(out, img)
	}
	return out, nil
}
