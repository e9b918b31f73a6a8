package slidegen

import (
	"fmt"
	"strings"
)

// shapeIDs allocates shape IDs within one slide. ID 1 belongs to the
// shape tree root, so the first shape gets 2.
type shapeIDs struct {
	next int
}

func newShapeIDs() *shapeIDs {
	return &shapeIDs{next: 2}
}

func (c *shapeIDs) allocate() int {
	id := c.next
	c.next++
	return id
}

// slideXML wraps rendered shapes in a complete slide part.
func slideXML(shapes string) []byte {
	return []byte(fmt.Sprintf(xmlDecl+`<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
    <p:spTree>
%s%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, emptyTreeXML, shapes))
}

func textShapeXML(pl placement, id int) string {
	var paragraphsXML strings.Builder
	for _, para := range pl.paras {
		paragraphsXML.WriteString(paragraphXML(pl, para))
	}
	if len(pl.paras) == 0 {
		paragraphsXML.WriteString("          <a:p/>\n")
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s %d"/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
          <a:noFill/>
        </p:spPr>
        <p:txBody>
          <a:bodyPr wrap="square" rtlCol="0">
            <a:normAutofit/>
          </a:bodyPr>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, id, xmlEscape(pl.name), id,
		pl.bounds.X, pl.bounds.Y, pl.bounds.W, pl.bounds.H,
		paragraphsXML.String())
}

func paragraphXML(pl placement, para paragraph) string {
	attrs := ""
	if pl.centered {
		attrs = ` algn="ctr"`
	}
	bullet := "\n              <a:buNone/>"
	if para.bullet {
		attrs = ` marL="285750" indent="-285750"` + attrs
		bullet = "\n              <a:buFont typeface=\"Arial\"/>\n              <a:buChar char=\"•\"/>"
	}
	return fmt.Sprintf(`          <a:p>
            <a:pPr%s>%s
            </a:pPr>
%s          </a:p>
`, attrs, bullet, textRunXML(pl, para.text))
}

func textRunXML(pl placement, text string) string {
	attrs := fmt.Sprintf(` lang="en-US" sz="%d" dirty="0"`, pl.fontSize)
	if pl.bold {
		attrs += ` b="1"`
	}
	if pl.italic {
		attrs += ` i="1"`
	}
	return fmt.Sprintf(`            <a:r>
              <a:rPr%s/>
              <a:t>%s</a:t>
            </a:r>
`, attrs, xmlEscape(text))
}

func pictureShapeXML(pl placement, id int, relID string) string {
	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          <p:cNvPr id="%d" name="%s %d" descr="%s"/>
          <p:cNvPicPr>
            <a:picLocks noChangeAspect="1"/>
          </p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="%s"/>
          <a:stretch>
            <a:fillRect/>
          </a:stretch>
        </p:blipFill>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
        </p:spPr>
      </p:pic>
`, id, xmlEscape(pl.name), id, xmlEscape(pl.image.Ref.AltText),
		relID,
		pl.bounds.X, pl.bounds.Y, pl.bounds.W, pl.bounds.H)
}
