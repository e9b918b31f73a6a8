package slidegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Deck is a read-only view of a presentation package, in slide order.
type Deck struct {
	SlideSize SlideSize
	Slides    []SlideInfo
	Media     []string // media part names
}

// SlideInfo describes one slide of a Deck.
type SlideInfo struct {
	ID     int // sldId value
	Part   string
	Shapes []ShapeInfo
}

// ShapeInfo describes one top-level shape of a slide.
type ShapeInfo struct {
	ID        int
	Name      string
	Picture   bool
	Bounds    Rect
	Text      string // paragraphs joined by newlines
	AltText   string
	ImagePart string // media part a picture's blip points to
}

// Pictures returns the picture shapes of the slide.
func (s SlideInfo) Pictures() []ShapeInfo {
	var out []ShapeInfo
	for _, sh := range s.Shapes {
		if sh.Picture {
			out = append(out, sh)
		}
	}
	return out
}

// Open reads the package at path and returns its slides.
func Open(path string) (*Deck, error) {
	p, err := openPackage(path)
	if err != nil {
		return nil, err
	}
	return inspect(p)
}

func inspect(p *Package) (*Deck, error) {
	pres := p.part(presentationPart)
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(pres.data); err != nil || doc.Root() == nil {
		return nil, fmt.Errorf("%w: cannot parse %s", ErrInvalidPackage, presentationPart)
	}
	root := doc.Root()

	d := &Deck{SlideSize: NewSlideSize()}
	if sz := localChild(root, "sldSz"); sz != nil {
		cx, _ := strconv.ParseInt(sz.SelectAttrValue("cx", ""), 10, 64)
		cy, _ := strconv.ParseInt(sz.SelectAttrValue("cy", ""), 10, 64)
		d.SlideSize = SlideSize{CX: cx, CY: cy, Name: sz.SelectAttrValue("type", SizeCustom)}
	}

	if list := localChild(root, "sldIdLst"); list != nil {
		for _, el := range list.ChildElements() {
			a := relAttr(el, "id")
			if el.Tag != "sldId" || a == nil || pres.rels == nil {
				continue
			}
			slide := p.resolve(pres, pres.rels.byID(a.Value))
			if slide == nil {
				return nil, fmt.Errorf("%w: slide entry %s has no part", ErrInvalidPackage, a.Value)
			}
			id, _ := strconv.Atoi(plainAttr(el, "id"))
			info, err := inspectSlide(p, slide)
			if err != nil {
				return nil, err
			}
			info.ID = id
			d.Slides = append(d.Slides, info)
		}
	}

	for _, name := range p.order {
		if strings.HasPrefix(name, "ppt/media/") {
			d.Media = append(d.Media, name)
		}
	}
	return d, nil
}

func inspectSlide(p *Package, slide *part) (SlideInfo, error) {
	info := SlideInfo{Part: slide.name}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(slide.data); err != nil || doc.Root() == nil {
		return info, fmt.Errorf("%w: cannot parse %s", ErrInvalidPackage, slide.name)
	}
	tree := firstDescendant(doc.Root(), "spTree")
	if tree == nil {
		return info, fmt.Errorf("%w: %s has no shape tree", ErrInvalidPackage, slide.name)
	}
	for _, el := range tree.ChildElements() {
		if el.Tag != "sp" && el.Tag != "pic" {
			continue
		}
		sh := ShapeInfo{Picture: el.Tag == "pic"}
		if c := firstDescendant(el, "cNvPr"); c != nil {
			sh.ID, _ = strconv.Atoi(c.SelectAttrValue("id", ""))
			sh.Name = c.SelectAttrValue("name", "")
			sh.AltText = c.SelectAttrValue("descr", "")
		}
		sh.Bounds = shapeBounds(el)
		sh.Text = shapeTextOf(el)
		if sh.Picture && slide.rels != nil {
			if blips, _ := findBlips(el); len(blips) > 0 {
				if a := relAttr(blips[0], "embed"); a != nil {
					if target := p.resolve(slide, slide.rels.byID(a.Value)); target != nil {
						sh.ImagePart = target.name
					}
				}
			}
		}
		info.Shapes = append(info.Shapes, sh)
	}
	return info, nil
}

func shapeBounds(el *etree.Element) Rect {
	xfrm := firstDescendant(el, "xfrm")
	if xfrm == nil {
		return Rect{}
	}
	var r Rect
	if off := localChild(xfrm, "off"); off != nil {
		r.X, _ = strconv.ParseInt(off.SelectAttrValue("x", "0"), 10, 64)
		r.Y, _ = strconv.ParseInt(off.SelectAttrValue("y", "0"), 10, 64)
	}
	if ext := localChild(xfrm, "ext"); ext != nil {
		r.W, _ = strconv.ParseInt(ext.SelectAttrValue("cx", "0"), 10, 64)
		r.H, _ = strconv.ParseInt(ext.SelectAttrValue("cy", "0"), 10, 64)
	}
	return r
}

func shapeTextOf(el *etree.Element) string {
	var paras []string
	for _, p := range descendants(el, "p") {
		var b strings.Builder
		for _, t := range descendants(p, "t") {
			b.WriteString(t.Text())
		}
		paras = append(paras, b.String())
	}
	return joinNonEmpty(paras, "\n")
}

// ExtractText returns all text of the deck, one slide per block.
func (d *Deck) ExtractText() string {
	var slides []string
	for _, s := range d.Slides {
		var texts []string
		for _, sh := range s.Shapes {
			texts = append(texts, sh.Text)
		}
		slides = append(slides, joinNonEmpty(texts, "\n"))
	}
	return joinNonEmpty(slides, "\n\n")
}

func joinNonEmpty(parts []string, sep string) string {
	var filtered []string
	for _, p := range parts {
		if p != "" {
			filtered = append(filtered, p)
		}
	}
	return strings.Join(filtered, sep)
}
