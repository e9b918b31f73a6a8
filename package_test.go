package slidegen

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRelationshipTargets(t *testing.T) {
	tests := []struct {
		source, target, rel string
	}{
		{"", "ppt/presentation.xml", "ppt/presentation.xml"},
		{"ppt/presentation.xml", "ppt/slides/slide1.xml", "slides/slide1.xml"},
		{"ppt/slides/slide1.xml", "ppt/media/image1.png", "../media/image1.png"},
		{"ppt/slideLayouts/slideLayout1.xml", "ppt/slideMasters/slideMaster1.xml", "../slideMasters/slideMaster1.xml"},
	}
	for _, tt := range tests {
		if got := relativeTarget(tt.source, tt.target); got != tt.rel {
			t.Errorf("relativeTarget(%q, %q) = %q, want %q", tt.source, tt.target, got, tt.rel)
		}
		if got := resolveTarget(tt.source, tt.rel); got != tt.target {
			t.Errorf("resolveTarget(%q, %q) = %q, want %q", tt.source, tt.rel, got, tt.target)
		}
	}
	if got := resolveTarget("ppt/slides/slide1.xml", "/ppt/media/image2.png"); got != "ppt/media/image2.png" {
		t.Errorf("absolute target resolved to %q", got)
	}
}

func TestRelsPaths(t *testing.T) {
	if got := relsPathFor("ppt/slides/slide3.xml"); got != "ppt/slides/_rels/slide3.xml.rels" {
		t.Errorf("relsPathFor = %q", got)
	}
	for _, name := range []string{"ppt/slides/slide3.xml", "ppt/presentation.xml"} {
		src, ok := sourceOfRels(relsPathFor(name))
		if !ok || src != name {
			t.Errorf("sourceOfRels(relsPathFor(%q)) = %q, %v", name, src, ok)
		}
	}
	if src, ok := sourceOfRels("_rels/.rels"); !ok || src != "" {
		t.Errorf("root rels mapped to %q, %v", src, ok)
	}
	if _, ok := sourceOfRels("ppt/slides/slide1.xml"); ok {
		t.Error("non-rels name accepted")
	}
}

func TestRelationshipIDsStayUnique(t *testing.T) {
	r := &relationships{}
	a := r.add(relTypeImage, "a.png")
	b := r.add(relTypeImage, "b.png")
	if a != "rId1" || b != "rId2" {
		t.Fatalf("ids = %s, %s", a, b)
	}
	r.removeWhere(func(rel *relationship) bool { return rel.ID == "rId1" })
	if c := r.add(relTypeImage, "c.png"); c != "rId3" {
		t.Errorf("id after removal = %s, want rId3", c)
	}
	if len(r.byType(relTypeImage)) != 2 {
		t.Errorf("byType = %d", len(r.byType(relTypeImage)))
	}
}

func TestNextMediaNameSkipsExisting(t *testing.T) {
	p := newPackage()
	p.addPart("ppt/media/image7.jpeg", "", nil)
	if got := p.nextMediaName("png"); got != "ppt/media/image8.png" {
		t.Errorf("nextMediaName = %q", got)
	}
	if got := p.nextMediaName("png"); got != "ppt/media/image9.png" {
		t.Errorf("second nextMediaName = %q", got)
	}
}

func TestPruneUnreachable(t *testing.T) {
	p := newPackage()
	pres := p.addPart(presentationPart, ctPresentation, nil)
	p.rootRels.add(relTypeOfficeDoc, presentationPart)
	keep := p.addPart("ppt/slides/slide1.xml", ctSlide, nil)
	p.relate(pres, relTypeSlide, keep.name)
	p.addPart("ppt/media/image1.png", "", nil)
	p.relate(keep, relTypeImage, "ppt/media/image1.png")
	p.addPart("ppt/slides/slide2.xml", ctSlide, nil)
	p.addPart("ppt/media/image2.png", "", nil)
	p.addPart("docProps/custom.xml", "", nil)

	removed := p.pruneUnreachable()
	if strings.Join(removed, ",") != "ppt/slides/slide2.xml,ppt/media/image2.png" {
		t.Errorf("removed = %v", removed)
	}
	if p.part("ppt/media/image1.png") == nil || p.part("docProps/custom.xml") == nil {
		t.Error("reachable or non-ppt part was pruned")
	}
}

func TestPackageContentTypes(t *testing.T) {
	p := newPackage()
	p.addPart(presentationPart, ctPresentation, nil)
	p.addPart("ppt/media/image1.png", "", nil)
	p.setDefault("png", "image/png")
	p.addPart("docProps/custom.xml", "application/xml", nil)

	ct := p.contentTypes()
	exts := map[string]string{}
	for _, d := range ct.Defaults {
		exts[d.Extension] = d.ContentType
	}
	if exts["png"] != "image/png" || exts["rels"] != ctRels {
		t.Errorf("defaults = %v", exts)
	}
	if len(ct.Overrides) != 1 || ct.Overrides[0].PartName != "/ppt/presentation.xml" {
		t.Errorf("overrides = %+v", ct.Overrides)
	}
}

func TestPackageWriteAndRead(t *testing.T) {
	p := newPackage()
	pres := p.addPart(presentationPart, ctPresentation, []byte("<p:presentation/>"))
	p.rootRels.add(relTypeOfficeDoc, presentationPart)
	p.addPart(themePart, ctTheme, []byte("<a:theme/>"))
	p.relate(pres, relTypeTheme, themePart)

	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip: %v", err)
	}
	if zr.File[0].Name != "[Content_Types].xml" {
		t.Errorf("first entry = %s", zr.File[0].Name)
	}

	back, err := readPackage(zr)
	if err != nil {
		t.Fatalf("readPackage: %v", err)
	}
	bp := back.part(presentationPart)
	if bp == nil || bp.contentType != ctPresentation || string(bp.data) != "<p:presentation/>" {
		t.Fatalf("presentation part not restored: %+v", bp)
	}
	if th := back.resolve(bp, bp.rels.byType(relTypeTheme)[0]); th == nil || th.name != themePart {
		t.Errorf("theme relationship not restored")
	}
	if len(back.rootRels.items) != 1 {
		t.Errorf("root rels = %d", len(back.rootRels.items))
	}
}

func TestReadPackageRejectsNonPresentation(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(`<Types xmlns="` + nsContentTypes + `"/>`))
	zw.Close()

	zr, _ := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if _, err := readPackage(zr); !errors.Is(err, ErrInvalidPackage) {
		t.Errorf("err = %v, want ErrInvalidPackage", err)
	}
}

func TestOpenPackageErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := openPackage(filepath.Join(dir, "missing.pptx")); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("missing file: %v", err)
	}
	bogus := writeFile(t, dir, "bogus.pptx", []byte("not a zip"))
	if _, err := openPackage(bogus); !errors.Is(err, ErrInvalidPackage) {
		t.Errorf("bogus file: %v", err)
	}
}

func TestDiscardRemovesOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.pptx")
	p, err := createPackage(path)
	if err != nil {
		t.Fatalf("createPackage: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output not created: %v", err)
	}
	p.discard()
	p.discard()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output left behind: %v", err)
	}
}
