package slidegen

import (
	"github.com/beevik/etree"
)

// blipSearch is one way of locating the blip of a picture element. find
// returns nil when the strategy does not apply to the picture.
type blipSearch struct {
	name string
	find func(pic *etree.Element) []*etree.Element
}

// blipSearches are tried in order; the first that finds anything wins.
// Authoring tools nest the blip at different depths, most of them under
// p:blipFill.
var blipSearches = []blipSearch{
	{name: "blipFill", find: func(pic *etree.Element) []*etree.Element {
		if fill := localChild(pic, "blipFill"); fill != nil {
			return asList(localChild(fill, "blip"))
		}
		return nil
	}},
	{name: "direct", find: func(pic *etree.Element) []*etree.Element {
		return asList(localChild(pic, "blip"))
	}},
	{name: "spPr", find: func(pic *etree.Element) []*etree.Element {
		if spPr := localChild(pic, "spPr"); spPr != nil {
			return asList(firstDescendant(spPr, "blip"))
		}
		return nil
	}},
	{name: "subtree", find: func(pic *etree.Element) []*etree.Element {
		return descendants(pic, "blip")
	}},
}

// findBlips returns the blip elements of pic and the name of the search
// that located them.
func findBlips(pic *etree.Element) ([]*etree.Element, string) {
	for _, s := range blipSearches {
		if found := s.find(pic); len(found) > 0 {
			return found, s.name
		}
	}
	return nil, ""
}

func asList(el *etree.Element) []*etree.Element {
	if el == nil {
		return nil
	}
	return []*etree.Element{el}
}

// localChild returns the first direct child with the given local name,
// whatever its namespace prefix.
func localChild(el *etree.Element, local string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.Tag == local {
			return c
		}
	}
	return nil
}

// walk visits el's descendants depth-first in document order. Returning
// false from fn skips the element's children.
func walk(el *etree.Element, fn func(*etree.Element) bool) {
	for _, c := range el.ChildElements() {
		if fn(c) {
			walk(c, fn)
		}
	}
}

func descendants(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	walk(el, func(c *etree.Element) bool {
		if c.Tag == local {
			out = append(out, c)
		}
		return true
	})
	return out
}

func firstDescendant(el *etree.Element, local string) *etree.Element {
	var found *etree.Element
	walk(el, func(c *etree.Element) bool {
		if found != nil {
			return false
		}
		if c.Tag == local {
			found = c
			return false
		}
		return true
	})
	return found
}

// relAttr returns the attribute key in the officeDocument relationships
// namespace, such as r:embed or r:id.
func relAttr(el *etree.Element, key string) *etree.Attr {
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key != key || a.Space == "" {
			continue
		}
		if a.Space == "r" || a.NamespaceURI() == nsOfficeDocRels {
			return a
		}
	}
	return nil
}

// relPrefix returns the prefix bound to the relationships namespace at the
// document root, declaring xmlns:r when there is none.
func relPrefix(root *etree.Element) string {
	for _, a := range root.Attr {
		if a.Space == "xmlns" && a.Value == nsOfficeDocRels {
			return a.Key
		}
	}
	root.CreateAttr("xmlns:r", nsOfficeDocRels)
	return "r"
}

// setEmbed points blip at relID, replacing any existing embed reference.
func setEmbed(blip *etree.Element, prefix, relID string) {
	if a := relAttr(blip, "embed"); a != nil {
		a.Value = relID
		return
	}
	blip.CreateAttr(prefix+":embed", relID)
}

// referencedRelIDs collects every relationship ID used by an attribute in
// the relationships namespace anywhere under root.
func referencedRelIDs(root *etree.Element) map[string]bool {
	ids := make(map[string]bool)
	collect := func(el *etree.Element) {
		for i := range el.Attr {
			a := &el.Attr[i]
			if a.Space != "" && a.Space != "xmlns" && (a.Space == "r" || a.NamespaceURI() == nsOfficeDocRels) {
				ids[a.Value] = true
			}
		}
	}
	collect(root)
	walk(root, func(el *etree.Element) bool {
		collect(el)
		return true
	})
	return ids
}

// plainAttr returns the value of the unprefixed attribute key. Unlike
// SelectAttrValue it never matches a prefixed attribute such as r:id.
func plainAttr(el *etree.Element, key string) string {
	for _, a := range el.Attr {
		if a.Space == "" && a.Key == key {
			return a.Value
		}
	}
	return ""
}

// dropRelReferences removes every relationships-namespace attribute under
// root whose value is in ids. Hyperlink elements that lose their target are
// removed whole. It returns the number of references dropped.
func dropRelReferences(root *etree.Element, ids map[string]bool) int {
	n := 0
	var stale []*etree.Element
	visit := func(el *etree.Element) {
		for i := len(el.Attr) - 1; i >= 0; i-- {
			a := el.Attr[i]
			if a.Space == "" || a.Space == "xmlns" || !ids[a.Value] {
				continue
			}
			if a.Space != "r" && a.NamespaceURI() != nsOfficeDocRels {
				continue
			}
			n++
			if el.Tag == "hlinkClick" || el.Tag == "hlinkMouseOver" {
				stale = append(stale, el)
				return
			}
			el.Attr = append(el.Attr[:i], el.Attr[i+1:]...)
		}
	}
	visit(root)
	walk(root, func(el *etree.Element) bool {
		visit(el)
		return true
	})
	for _, el := range stale {
		if parent := el.Parent(); parent != nil {
			parent.RemoveChild(el)
		}
	}
	return n
}
