package slidegen

import (
	"fmt"
	"strings"
)

// Fixed identifiers of the single master/layout chain. Master and layout IDs
// share one number space that must start at 2^31.
const (
	masterID     = 2147483648
	layoutID     = 2147483649
	firstSlideID = 256
)

// skeleton is the part graph every new package starts from.
type skeleton struct {
	pres      *part
	layout    *part
	masterRID string
	slideRIDs []string
}

// buildSkeleton registers the presentation root, document properties and the
// master/layout/theme chain. The presentation part body is written by
// finish once the slide list is known.
func buildSkeleton(p *Package, content *PresentationContent, o Options) *skeleton {
	pres := p.addPart(presentationPart, ctPresentation, nil)
	p.rootRels.add(relTypeOfficeDoc, presentationPart)
	p.addPart(corePropsPart, ctCoreProps, corePropertiesXML(content.Title, content.Author, o.Now()))
	p.rootRels.add(relTypeCoreProps, corePropsPart)
	p.addPart(appPropsPart, ctExtProps, nil)
	p.rootRels.add(relTypeExtProps, appPropsPart)

	theme := p.addPart(themePart, ctTheme, themeXML("Office Theme"))
	master := p.addPart(masterPart, ctSlideMaster, nil)
	layout := p.addPart(layoutPart, ctSlideLayout, slideLayoutXML())

	p.relate(layout, relTypeSlideMaster, master.name)
	layoutRID := p.relate(master, relTypeSlideLayout, layout.name)
	p.relate(master, relTypeTheme, theme.name)
	master.data = slideMasterXML(layoutRID)

	sk := &skeleton{pres: pres, layout: layout}
	sk.masterRID = p.relate(pres, relTypeSlideMaster, master.name)

	p.addPart(presPropsPart, ctPresProps, presPropsXML())
	p.relate(pres, relTypePresProps, presPropsPart)
	p.addPart(viewPropsPart, ctViewProps, viewPropsXML())
	p.relate(pres, relTypeViewProps, viewPropsPart)
	p.relate(pres, relTypeTheme, theme.name)
	p.addPart(tableStylesPart, ctTableStyles, tableStylesXML())
	p.relate(pres, relTypeTableStyles, tableStylesPart)
	return sk
}

// addSlide registers an empty slide part wired to the layout and returns it.
func (sk *skeleton) addSlide(p *Package) *part {
	n := len(sk.slideRIDs) + 1
	slide := p.addPart(fmt.Sprintf("ppt/slides/slide%d.xml", n), ctSlide, nil)
	p.relate(slide, relTypeSlideLayout, sk.layout.name)
	sk.slideRIDs = append(sk.slideRIDs, p.relate(sk.pres, relTypeSlide, slide.name))
	return slide
}

func (sk *skeleton) finish(p *Package, size SlideSize) {
	sk.pres.data = presentationXML(size, sk.masterRID, sk.slideRIDs)
	p.part(appPropsPart).data = appPropertiesXML(len(sk.slideRIDs))
}

// --- Presentation ---

func presentationXML(size SlideSize, masterRID string, slideRIDs []string) []byte {
	var slides strings.Builder
	for i, rid := range slideRIDs {
		fmt.Fprintf(&slides, "\n    <p:sldId id=\"%d\" r:id=\"%s\"/>", firstSlideID+i, rid)
	}

	sizeType := ""
	if t := size.sldSzType(); t != "" {
		sizeType = fmt.Sprintf(` type="%s"`, t)
	}

	return []byte(fmt.Sprintf(xmlDecl+`<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1">
  <p:sldMasterIdLst>
    <p:sldMasterId id="%d" r:id="%s"/>
  </p:sldMasterIdLst>
  <p:sldIdLst>%s
  </p:sldIdLst>
  <p:sldSz cx="%d" cy="%d"%s/>
  <p:notesSz cx="6858000" cy="9144000"/>
  <p:defaultTextStyle>
%s  </p:defaultTextStyle>
</p:presentation>`, nsDrawingML, nsOfficeDocRels, nsPresentationML,
		masterID, masterRID, slides.String(),
		size.CX, size.CY, sizeType,
		levelStylesXML("    ", true, func(int) int { return 1800 }, "tx1")))
}

// levelStylesXML writes a defPPr (when withDefault is set) followed by the
// nine lvlNpPr entries.
func levelStylesXML(indent string, withDefault bool, size func(level int) int, color string) string {
	var b strings.Builder
	if withDefault {
		fmt.Fprintf(&b, "%s<a:defPPr>\n%s  <a:defRPr lang=\"en-US\"/>\n%s</a:defPPr>\n", indent, indent, indent)
	}
	for lvl := 1; lvl <= 9; lvl++ {
		fmt.Fprintf(&b, `%[1]s<a:lvl%[2]dpPr marL="%[3]d" algn="l" defTabSz="914400" rtl="0" eaLnBrk="1" latinLnBrk="0" hangingPunct="1">
%[1]s  <a:defRPr sz="%[4]d" kern="1200">
%[1]s    <a:solidFill><a:schemeClr val="%[5]s"/></a:solidFill>
%[1]s    <a:latin typeface="+mn-lt"/>
%[1]s    <a:ea typeface="+mn-ea"/>
%[1]s    <a:cs typeface="+mn-cs"/>
%[1]s  </a:defRPr>
%[1]s</a:lvl%[2]dpPr>
`, indent, lvl, (lvl-1)*457200, size(lvl), color)
	}
	return b.String()
}

// emptyTreeXML is the group-shape root every shape tree starts with.
const emptyTreeXML = `      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
`

// --- Slide Master ---

func slideMasterXML(layoutRID string) []byte {
	return []byte(fmt.Sprintf(xmlDecl+`<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
    <p:bg>
      <p:bgRef idx="1001">
        <a:schemeClr val="bg1"/>
      </p:bgRef>
    </p:bg>
    <p:spTree>
%s%s%s    </p:spTree>
  </p:cSld>
  <p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
  <p:sldLayoutIdLst>
    <p:sldLayoutId id="%d" r:id="%s"/>
  </p:sldLayoutIdLst>
  <p:txStyles>
    <p:titleStyle>
%s    </p:titleStyle>
    <p:bodyStyle>
%s    </p:bodyStyle>
    <p:otherStyle>
%s    </p:otherStyle>
  </p:txStyles>
</p:sldMaster>`, nsDrawingML, nsOfficeDocRels, nsPresentationML,
		emptyTreeXML,
		placeholderXML(2, "Title Placeholder 1", "title", 0, Rect{X: 457200, Y: 274638, W: 8229600, H: 1143000}),
		placeholderXML(3, "Text Placeholder 2", "body", 1, Rect{X: 457200, Y: 1600200, W: 8229600, H: 4525963}),
		layoutID, layoutRID,
		levelStylesXML("      ", false, func(int) int { return 4400 }, "tx1"),
		levelStylesXML("      ", false, bodyLevelSize, "tx1"),
		levelStylesXML("      ", true, func(int) int { return 1800 }, "tx1")))
}

func bodyLevelSize(level int) int {
	switch level {
	case 1:
		return 3200
	case 2:
		return 2800
	case 3:
		return 2400
	default:
		return 2000
	}
}

func placeholderXML(id int, name, phType string, idx int, r Rect) string {
	idxAttr := ""
	if idx > 0 {
		idxAttr = fmt.Sprintf(` idx="%d"`, idx)
	}
	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr>
            <a:spLocks noGrp="1"/>
          </p:cNvSpPr>
          <p:nvPr>
            <p:ph type="%s"%s/>
          </p:nvPr>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
        </p:spPr>
        <p:txBody>
          <a:bodyPr/>
          <a:lstStyle/>
          <a:p>
            <a:endParaRPr lang="en-US"/>
          </a:p>
        </p:txBody>
      </p:sp>
`, id, xmlEscape(name), phType, idxAttr, r.X, r.Y, r.W, r.H)
}

// --- Slide Layout ---

func slideLayoutXML() []byte {
	return []byte(fmt.Sprintf(xmlDecl+`<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" type="titleOnly" preserve="1">
  <p:cSld name="Title Only">
    <p:spTree>
%s%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sldLayout>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, emptyTreeXML,
		placeholderXML(2, "Title 1", "title", 0, Rect{X: 457200, Y: 274638, W: 8229600, H: 1143000})))
}

// --- Presentation-level property parts ---

func presPropsXML() []byte {
	return []byte(fmt.Sprintf(xmlDecl+`<p:presentationPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"/>`,
		nsDrawingML, nsOfficeDocRels, nsPresentationML))
}

func viewPropsXML() []byte {
	return []byte(fmt.Sprintf(xmlDecl+`<p:viewPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:normalViewPr>
    <p:restoredLeft sz="15620"/>
    <p:restoredTop sz="94660"/>
  </p:normalViewPr>
  <p:gridSpacing cx="76200" cy="76200"/>
</p:viewPr>`, nsDrawingML, nsOfficeDocRels, nsPresentationML))
}

func tableStylesXML() []byte {
	return []byte(fmt.Sprintf(xmlDecl+`<a:tblStyleLst xmlns:a="%s" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`, nsDrawingML))
}
