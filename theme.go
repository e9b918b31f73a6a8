package slidegen

import (
	"fmt"
	"strings"
)

// ThemeColor is one named entry of a theme color scheme.
type ThemeColor struct {
	Name string
	RGB  string // 6 hex digits
}

// defaultColorScheme lists the twelve colors every theme must define, in
// schema order.
var defaultColorScheme = []ThemeColor{
	{"dk1", "000000"},
	{"lt1", "FFFFFF"},
	{"dk2", "1F497D"},
	{"lt2", "EEECE1"},
	{"accent1", "4F81BD"},
	{"accent2", "C0504D"},
	{"accent3", "9BBB59"},
	{"accent4", "8064A2"},
	{"accent5", "4BACC6"},
	{"accent6", "F79646"},
	{"hlink", "0000FF"},
	{"folHlink", "800080"},
}

func themeXML(name string) []byte {
	var colors strings.Builder
	for _, c := range defaultColorScheme {
		switch c.Name {
		case "dk1":
			colors.WriteString("        <a:dk1><a:sysClr val=\"windowText\" lastClr=\"000000\"/></a:dk1>\n")
		case "lt1":
			colors.WriteString("        <a:lt1><a:sysClr val=\"window\" lastClr=\"FFFFFF\"/></a:lt1>\n")
		default:
			fmt.Fprintf(&colors, "        <a:%s><a:srgbClr val=\"%s\"/></a:%s>\n", c.Name, c.RGB, c.Name)
		}
	}

	return []byte(fmt.Sprintf(xmlDecl+`<a:theme xmlns:a="%s" name="%s">
  <a:themeElements>
    <a:clrScheme name="Office">
%s    </a:clrScheme>
    <a:fontScheme name="Office">
      <a:majorFont>
        <a:latin typeface="Calibri"/>
        <a:ea typeface=""/>
        <a:cs typeface=""/>
      </a:majorFont>
      <a:minorFont>
        <a:latin typeface="Calibri"/>
        <a:ea typeface=""/>
        <a:cs typeface=""/>
      </a:minorFont>
    </a:fontScheme>
    <a:fmtScheme name="Office">
      <a:fillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
%s%s      </a:fillStyleLst>
      <a:lnStyleLst>
%s      </a:lnStyleLst>
      <a:effectStyleLst>
%s      </a:effectStyleLst>
      <a:bgFillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
%s%s      </a:bgFillStyleLst>
    </a:fmtScheme>
  </a:themeElements>
  <a:objectDefaults/>
  <a:extraClrSchemeLst/>
</a:theme>`, nsDrawingML, xmlEscape(name), colors.String(),
		gradFillXML(50000, 35000), gradFillXML(100000, 15000),
		lineStylesXML(),
		effectStylesXML(),
		gradFillXML(40000, 20000), gradFillXML(80000, 30000)))
}

func gradFillXML(tint, shade int) string {
	return fmt.Sprintf(`        <a:gradFill rotWithShape="1">
          <a:gsLst>
            <a:gs pos="0"><a:schemeClr val="phClr"><a:tint val="%d"/><a:satMod val="300000"/></a:schemeClr></a:gs>
            <a:gs pos="100000"><a:schemeClr val="phClr"><a:shade val="%d"/><a:satMod val="350000"/></a:schemeClr></a:gs>
          </a:gsLst>
          <a:lin ang="16200000" scaled="1"/>
        </a:gradFill>
`, tint, shade)
}

func lineStylesXML() string {
	var b strings.Builder
	for _, w := range []int{9525, 25400, 38100} {
		fmt.Fprintf(&b, `        <a:ln w="%d" cap="flat" cmpd="sng" algn="ctr">
          <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
          <a:prstDash val="solid"/>
        </a:ln>
`, w)
	}
	return b.String()
}

func effectStylesXML() string {
	var b strings.Builder
	for range 3 {
		b.WriteString("        <a:effectStyle><a:effectLst/></a:effectStyle>\n")
	}
	return b.String()
}
