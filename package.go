package slidegen

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
)

// part is one named payload inside the package. Names have no leading slash.
type part struct {
	name        string
	contentType string // override content type; empty resolves by extension
	data        []byte
	rels        *relationships
}

type relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

func (r *relationship) external() bool {
	return strings.EqualFold(r.TargetMode, "External")
}

// relationships is the relationship set owned by one part. IDs are unique
// within the set.
type relationships struct {
	items []*relationship
}

// nextID returns rId<max+1> so IDs stay unique after removals.
func (r *relationships) nextID() string {
	maxID := 0
	for _, rel := range r.items {
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}
	return fmt.Sprintf("rId%d", maxID+1)
}

func (r *relationships) add(relType, target string) string {
	id := r.nextID()
	r.items = append(r.items, &relationship{ID: id, Type: relType, Target: target})
	return id
}

func (r *relationships) byID(id string) *relationship {
	for _, rel := range r.items {
		if rel.ID == id {
			return rel
		}
	}
	return nil
}

func (r *relationships) byType(relType string) []*relationship {
	var out []*relationship
	for _, rel := range r.items {
		if rel.Type == relType {
			out = append(out, rel)
		}
	}
	return out
}

func (r *relationships) removeWhere(match func(*relationship) bool) int {
	kept := r.items[:0]
	removed := 0
	for _, rel := range r.items {
		if match(rel) {
			removed++
			continue
		}
		kept = append(kept, rel)
	}
	r.items = kept
	return removed
}

// Package is the zip-archived part graph of one presentation. It is owned by
// a single generation call and is not safe for concurrent use.
type Package struct {
	parts     map[string]*part
	order     []string
	rootRels  *relationships
	defaults  map[string]string // extension -> content type
	mediaSeq  int
	out       *os.File
	outPath   string
	committed bool
}

func newPackage() *Package {
	return &Package{
		parts:    make(map[string]*part),
		rootRels: &relationships{},
		defaults: map[string]string{
			"rels": ctRels,
			"xml":  "application/xml",
		},
	}
}

func (p *Package) part(name string) *part {
	return p.parts[strings.TrimPrefix(name, "/")]
}

// addPart registers a part, replacing any part with the same name.
func (p *Package) addPart(name, contentType string, data []byte) *part {
	name = strings.TrimPrefix(name, "/")
	if existing, ok := p.parts[name]; ok {
		existing.contentType = contentType
		existing.data = data
		return existing
	}
	pt := &part{name: name, contentType: contentType, data: data}
	p.parts[name] = pt
	p.order = append(p.order, name)
	return pt
}

func (p *Package) removePart(name string) {
	name = strings.TrimPrefix(name, "/")
	if _, ok := p.parts[name]; !ok {
		return
	}
	delete(p.parts, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// relsOf returns the relationship set of a part, creating it on first use.
func (p *Package) relsOf(pt *part) *relationships {
	if pt.rels == nil {
		pt.rels = &relationships{}
	}
	return pt.rels
}

// relate adds a relationship from src to the part named target.
func (p *Package) relate(src *part, relType, target string) string {
	return p.relsOf(src).add(relType, relativeTarget(src.name, target))
}

// resolve returns the part a relationship of src points to, or nil.
func (p *Package) resolve(src *part, rel *relationship) *part {
	if rel == nil || rel.external() {
		return nil
	}
	return p.part(resolveTarget(src.name, rel.Target))
}

func (p *Package) setDefault(ext, contentType string) {
	if _, ok := p.defaults[ext]; !ok {
		p.defaults[ext] = contentType
	}
}

// nextMediaName allocates a package-wide unique media part name.
func (p *Package) nextMediaName(ext string) string {
	if p.mediaSeq == 0 {
		for name := range p.parts {
			if n, ok := mediaIndex(name); ok && n > p.mediaSeq {
				p.mediaSeq = n
			}
		}
	}
	for {
		p.mediaSeq++
		name := fmt.Sprintf("ppt/media/image%d.%s", p.mediaSeq, ext)
		if _, taken := p.parts[name]; !taken {
			return name
		}
	}
}

func mediaIndex(name string) (int, bool) {
	base, ok := strings.CutPrefix(name, "ppt/media/image")
	if !ok {
		return 0, false
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	n, err := strconv.Atoi(base)
	return n, err == nil
}

// pruneUnreachable removes ppt/ parts that no relationship chain from the
// package root reaches any more. It returns the removed names.
func (p *Package) pruneUnreachable() []string {
	seen := make(map[string]bool, len(p.parts))
	var queue []string
	for _, rel := range p.rootRels.items {
		if !rel.external() {
			queue = append(queue, resolveTarget("", rel.Target))
		}
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true
		pt := p.parts[name]
		if pt == nil || pt.rels == nil {
			continue
		}
		for _, rel := range pt.rels.items {
			if !rel.external() {
				queue = append(queue, resolveTarget(pt.name, rel.Target))
			}
		}
	}
	var removed []string
	for _, name := range append([]string(nil), p.order...) {
		if strings.HasPrefix(name, "ppt/") && !seen[name] {
			p.removePart(name)
			removed = append(removed, name)
		}
	}
	return removed
}

func (p *Package) contentTypes() xmlContentTypes {
	ct := xmlContentTypes{Xmlns: nsContentTypes}
	exts := make([]string, 0, len(p.defaults))
	for ext := range p.defaults {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		ct.Defaults = append(ct.Defaults, xmlDefault{Extension: ext, ContentType: p.defaults[ext]})
	}
	for _, name := range p.order {
		pt := p.parts[name]
		if pt.contentType == "" {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
		if p.defaults[ext] == pt.contentType {
			continue
		}
		ct.Overrides = append(ct.Overrides, xmlOverride{PartName: "/" + name, ContentType: pt.contentType})
	}
	return ct
}

func (r *relationships) marshal() xmlRelationships {
	out := xmlRelationships{Xmlns: nsRelationships}
	for _, rel := range r.items {
		out.Relationships = append(out.Relationships, xmlRelationship{
			ID:         rel.ID,
			Type:       rel.Type,
			Target:     rel.Target,
			TargetMode: rel.TargetMode,
		})
	}
	return out
}

// relsPathFor returns the relationships part name for a source part.
func relsPathFor(name string) string {
	dir, file := path.Split(name)
	return dir + "_rels/" + file + ".rels"
}

// sourceOfRels is the inverse of relsPathFor. The package root maps to "".
func sourceOfRels(relsName string) (string, bool) {
	if relsName == "_rels/.rels" {
		return "", true
	}
	dir, file := path.Split(relsName)
	if !strings.HasSuffix(dir, "_rels/") || !strings.HasSuffix(file, ".rels") {
		return "", false
	}
	return strings.TrimSuffix(dir, "_rels/") + strings.TrimSuffix(file, ".rels"), true
}

// resolveTarget resolves a relationship target against its source part.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Clean(path.Join(path.Dir(source), target)), "/")
}

// relativeTarget expresses the part name target relative to source.
func relativeTarget(source, target string) string {
	from := strings.Split(path.Dir(source), "/")
	if path.Dir(source) == "." {
		from = nil
	}
	to := strings.Split(target, "/")
	i := 0
	for i < len(from) && i < len(to)-1 && from[i] == to[i] {
		i++
	}
	var b strings.Builder
	for range from[i:] {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(to[i:], "/"))
	return b.String()
}
