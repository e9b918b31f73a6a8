package slidegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// placeholderTokens maps every supported token spelling to the field it
// stands for.
var placeholderTokens = []struct {
	token string
	field string
}{
	{"{{TITLE}}", "title"},
	{"[TITLE]", "title"},
	{"{{DESCRIPTION}}", "description"},
	{"[DESCRIPTION]", "description"},
	{"{{SYNOPSIS}}", "description"},
	{"[SYNOPSIS]", "description"},
	{"{{AUTHOR}}", "author"},
	{"[AUTHOR]", "author"},
}

// replaceTokens substitutes every placeholder token in text with its value.
// Text around a token is kept.
func replaceTokens(text string, values map[string]string) (string, int) {
	n := 0
	for _, t := range placeholderTokens {
		if c := strings.Count(text, t.token); c > 0 {
			text = strings.ReplaceAll(text, t.token, values[t.field])
			n += c
		}
	}
	return text, n
}

// RewriteTemplate fills the template at templatePath with content and writes
// the result to outputPath. Template slide i receives content slide i;
// template slides without content are removed. outputPath may equal
// templatePath.
func RewriteTemplate(content *PresentationContent, templatePath, outputPath string, opts ...Option) (*Stats, error) {
	o := buildOptions(opts)
	if err := ValidateContent(content); err != nil {
		return nil, stageErr("validate", err)
	}

	p, err := openPackage(templatePath)
	if err != nil {
		return nil, stageErr("open template", err)
	}

	st := &Stats{}
	rw := &templateRewriter{pkg: p, content: content, opts: o, stats: st}
	if err := rw.run(); err != nil {
		return nil, err
	}

	if err := p.attachOutput(outputPath); err != nil {
		return nil, stageErr("create", err)
	}
	defer p.discard()
	if err := p.commit(); err != nil {
		return nil, stageErr("write", err)
	}
	o.Logger.Info("template rewritten",
		"template", templatePath,
		"path", outputPath,
		"slides", st.Slides,
		"slides_removed", st.SlidesRemoved,
		"tokens", st.TokensReplaced)
	return st, nil
}

type templateRewriter struct {
	pkg     *Package
	content *PresentationContent
	opts    Options
	stats   *Stats
}

// slideEntry is one sldId of the presentation's slide list.
type slideEntry struct {
	el    *etree.Element
	relID string
	part  *part
}

func (rw *templateRewriter) run() error {
	pres := rw.pkg.part(presentationPart)
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(pres.data); err != nil {
		return stageErr("open template", fmt.Errorf("%w: %s: %w", ErrInvalidPackage, presentationPart, err))
	}
	if doc.Root() == nil {
		return stageErr("open template", fmt.Errorf("%w: %s is empty", ErrInvalidPackage, presentationPart))
	}

	entries := rw.slideEntries(pres, doc.Root())
	if len(rw.content.Slides) > len(entries) {
		rw.opts.Logger.Warn("template has fewer slides than content, extra slides dropped",
			"template_slides", len(entries), "content_slides", len(rw.content.Slides))
	}

	var removed []slideEntry
	for i, e := range entries {
		if i >= len(rw.content.Slides) || e.part == nil {
			removed = append(removed, e)
			continue
		}
		if err := rw.rewriteSlide(e.part, rw.content.Slides[i]); err != nil {
			return stageErr(fmt.Sprintf("rewrite slide %d", i+1), err)
		}
		rw.stats.Slides++
	}
	rw.removeSlides(pres, doc.Root(), removed)
	if err := rw.dropSlideParts(pres, entries, removed); err != nil {
		return stageErr("rewrite presentation", err)
	}

	data, err := doc.WriteToBytes()
	if err != nil {
		return stageErr("rewrite presentation", err)
	}
	pres.data = data

	for _, name := range rw.pkg.pruneUnreachable() {
		rw.opts.Logger.Debug("removed unreachable part", "part", name)
	}
	if err := rw.updateProperties(); err != nil {
		return stageErr("rewrite properties", err)
	}
	return nil
}

func (rw *templateRewriter) slideEntries(pres *part, root *etree.Element) []slideEntry {
	list := localChild(root, "sldIdLst")
	if list == nil {
		return nil
	}
	var out []slideEntry
	for _, el := range list.ChildElements() {
		if el.Tag != "sldId" {
			continue
		}
		e := slideEntry{el: el}
		if a := relAttr(el, "id"); a != nil {
			e.relID = a.Value
			if pres.rels != nil {
				e.part = rw.pkg.resolve(pres, pres.rels.byID(a.Value))
			}
		}
		if e.part == nil {
			rw.opts.Logger.Warn("slide list entry has no slide part", "rel", e.relID)
		}
		out = append(out, e)
	}
	return out
}

// removeSlides drops both the slide list entry and the presentation
// relationship of every removed slide, along with references to them from
// custom shows and section lists.
func (rw *templateRewriter) removeSlides(pres *part, root *etree.Element, removed []slideEntry) {
	if len(removed) == 0 {
		return
	}
	relIDs := make(map[string]bool, len(removed))
	slideIDs := make(map[string]bool, len(removed))
	for _, e := range removed {
		if parent := e.el.Parent(); parent != nil {
			parent.RemoveChild(e.el)
		}
		relIDs[e.relID] = true
		slideIDs[plainAttr(e.el, "id")] = true
		rw.stats.SlidesRemoved++
	}
	if pres.rels != nil {
		pres.rels.removeWhere(func(r *relationship) bool {
			return r.Type == relTypeSlide && relIDs[r.ID]
		})
	}

	var stale []*etree.Element
	walk(root, func(el *etree.Element) bool {
		switch {
		case el.Tag == "sldIdLst" && el.Parent() == root:
			return false
		case el.Tag == "sld":
			if a := relAttr(el, "id"); a != nil && relIDs[a.Value] {
				stale = append(stale, el)
			}
		case el.Tag == "sldId":
			if slideIDs[plainAttr(el, "id")] {
				stale = append(stale, el)
			}
		}
		return true
	})
	for _, el := range stale {
		el.Parent().RemoveChild(el)
	}
}

// dropSlideParts deletes the parts of removed slides, then every
// relationship other parts still hold to them along with the markup that
// used it. A part still listed by a kept entry stays.
func (rw *templateRewriter) dropSlideParts(pres *part, entries, removed []slideEntry) error {
	dropping := make(map[*etree.Element]bool, len(removed))
	for _, e := range removed {
		dropping[e.el] = true
	}
	kept := make(map[*part]bool, len(entries))
	for _, e := range entries {
		if !dropping[e.el] {
			kept[e.part] = true
		}
	}
	gone := make(map[string]bool, len(removed))
	for _, e := range removed {
		if e.part == nil || kept[e.part] || gone[e.part.name] {
			continue
		}
		gone[e.part.name] = true
		rw.pkg.removePart(e.part.name)
	}
	if len(gone) == 0 {
		return nil
	}

	for _, name := range append([]string(nil), rw.pkg.order...) {
		pt := rw.pkg.parts[name]
		if pt == pres || pt.rels == nil {
			continue
		}
		dropped := make(map[string]bool)
		pt.rels.removeWhere(func(r *relationship) bool {
			if r.external() || !gone[resolveTarget(pt.name, r.Target)] {
				return false
			}
			dropped[r.ID] = true
			return true
		})
		if len(dropped) == 0 || !strings.HasSuffix(name, ".xml") {
			continue
		}
		var n int
		if err := editXML(pt, func(root *etree.Element) {
			n = dropRelReferences(root, dropped)
		}); err != nil {
			return err
		}
		rw.opts.Logger.Debug("dropped links to removed slides", "part", name, "relationships", len(dropped), "references", n)
	}
	return nil
}

func (rw *templateRewriter) rewriteSlide(slide *part, s *SlideContent) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(slide.data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidPackage, slide.name, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("%w: %s is empty", ErrInvalidPackage, slide.name)
	}

	values := map[string]string{
		"title":       s.Title,
		"description": s.BodyText(),
		"author":      rw.content.Author,
	}
	for _, t := range descendants(root, "t") {
		text, n := replaceTokens(t.Text(), values)
		if n > 0 {
			t.SetText(text)
			rw.stats.TokensReplaced += n
		}
	}

	if err := rw.rewritePictures(slide, root, s); err != nil {
		return err
	}
	rw.dropUnusedImageRels(slide, root)

	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", slide.name, err)
	}
	slide.data = data
	return nil
}

// rewritePictures replaces the first picture's image with the slide's primary
// image. With no images, or a primary image missing on disk, the template's
// pictures are removed instead.
func (rw *templateRewriter) rewritePictures(slide *part, root *etree.Element, s *SlideContent) error {
	pics := descendants(root, "pic")
	if len(pics) == 0 {
		return nil
	}

	refs := s.RenderImages()
	if len(refs) == 0 {
		rw.removePictures(slide, pics)
		return nil
	}
	primary := refs[0]
	if bg, ok := s.BackgroundImage(); ok {
		primary = bg
	}

	target := pics[0]
	img, err := loadImage(primary, rw.opts)
	if err != nil {
		return err
	}
	if img == nil {
		rw.stats.ImagesSkipped++
		rw.opts.Logger.Warn("image not found, removing template picture", "part", slide.name, "path", primary.Path)
		rw.removePictures(slide, pics[:1])
		return nil
	}
	if !img.Exact {
		rw.stats.ImagesFallback++
	}

	blips, search := findBlips(target)
	if len(blips) == 0 {
		rw.stats.BlipsUnresolved++
		rw.opts.Logger.Warn("no image reference found in template picture", "part", slide.name)
	} else {
		relID := registerImagePart(rw.pkg, slide, img)
		prefix := relPrefix(root)
		for _, blip := range blips {
			setEmbed(blip, prefix, relID)
		}
		rw.stats.ImagesEmbedded++
		rw.opts.Logger.Debug("template picture replaced", "part", slide.name, "search", search, "blips", len(blips))
	}

	if nv := localChild(target, "nvPicPr"); nv != nil {
		if c := localChild(nv, "cNvPr"); c != nil {
			c.CreateAttr("descr", img.Ref.AltText)
		}
	}
	return nil
}

func (rw *templateRewriter) removePictures(slide *part, pics []*etree.Element) {
	for _, pic := range pics {
		if parent := pic.Parent(); parent != nil {
			parent.RemoveChild(pic)
			rw.stats.PicturesRemoved++
		}
	}
	rw.opts.Logger.Debug("template pictures removed", "part", slide.name, "count", len(pics))
}

// dropUnusedImageRels removes image relationships nothing in the slide
// refers to any more, so replaced media can be pruned.
func (rw *templateRewriter) dropUnusedImageRels(slide *part, root *etree.Element) {
	if slide.rels == nil {
		return
	}
	used := referencedRelIDs(root)
	slide.rels.removeWhere(func(r *relationship) bool {
		return r.Type == relTypeImage && !used[r.ID]
	})
}

// updateProperties keeps docProps in step with the rewritten deck: the slide
// count in app.xml, and title and author in core.xml when content sets them.
func (rw *templateRewriter) updateProperties() error {
	if app := rw.pkg.part(appPropsPart); app != nil {
		if err := editXML(app, func(root *etree.Element) {
			if el := localChild(root, "Slides"); el != nil {
				el.SetText(strconv.Itoa(rw.stats.Slides))
			}
		}); err != nil {
			return err
		}
	}
	core := rw.pkg.part(corePropsPart)
	if core == nil || (rw.content.Title == "" && rw.content.Author == "") {
		return nil
	}
	return editXML(core, func(root *etree.Element) {
		setCoreField(root, "title", rw.content.Title)
		setCoreField(root, "creator", rw.content.Author)
	})
}

func setCoreField(root *etree.Element, local, value string) {
	if value == "" {
		return
	}
	el := localChild(root, local)
	if el == nil {
		el = root.CreateElement("dc:" + local)
	}
	el.SetText(value)
}

func editXML(pt *part, edit func(root *etree.Element)) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(pt.data); err != nil {
		return fmt.Errorf("failed to parse %s: %w", pt.name, err)
	}
	if doc.Root() == nil {
		return fmt.Errorf("%s has no root element", pt.name)
	}
	edit(doc.Root())
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", pt.name, err)
	}
	pt.data = data
	return nil
}
