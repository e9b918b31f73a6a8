package slidegen

import (
	"log/slog"
)

// Slide geometry in EMU.
var (
	slideMargin     = Inch(0.5)
	titleHeight     = Inch(1)
	blockGap        = Inch(0.2)
	bodyHeight      = Inch(1.5)
	shortBodyHeight = Inch(1)
	minBodyHeight   = Inch(0.5)
	minImageHeight  = Inch(1)
	gridPadding     = Inch(0.2)
	captionHeight   = Inch(0.5)
)

// Font sizes in hundredths of a point.
const (
	titleFontSize    = 3200
	bigTitleFontSize = 4400
	bodyFontSize     = 1800
	captionFontSize  = 1400
)

type shapeKind int

const (
	shapeText shapeKind = iota
	shapePicture
)

// placement is one shape a layout policy decided to put on the slide.
type placement struct {
	kind   shapeKind
	name   string
	bounds Rect

	// text shapes
	paras    []paragraph
	fontSize int
	bold     bool
	italic   bool
	centered bool

	// picture shapes
	image *sourceImage
}

// layoutInput is what a policy sees of one slide.
type layoutInput struct {
	slide  *SlideContent
	images []*sourceImage // loaded images, primary first
	size   SlideSize
	dpi    float64
	log    *slog.Logger
}

// layoutPolicy arranges one slide's shapes inside area, the slide minus its
// margins. Placements are returned in shape tree order.
type layoutPolicy interface {
	place(in *layoutInput, area Rect) []placement
}

var layoutPolicies = map[LayoutVariant]layoutPolicy{
	LayoutTitle:                  titlePolicy{},
	LayoutTitleAndContent:        stackedPolicy{},
	LayoutImageFocused:           focusedPolicy{},
	LayoutImageGrid:              gridPolicy{},
	LayoutSingleImageWithCaption: captionPolicy{},
	LayoutTwoImageComparison:     comparisonPolicy{},
	LayoutProductShowcase:        showcasePolicy{},
}

// policyFor returns the policy of a resolved variant. Unknown variants use
// the stacked title-and-content arrangement.
func policyFor(v LayoutVariant) layoutPolicy {
	if p, ok := layoutPolicies[v]; ok {
		return p
	}
	return stackedPolicy{}
}

// contentArea is the slide rectangle minus the outer margin.
func contentArea(size SlideSize) Rect {
	return Rect{X: 0, Y: 0, W: size.CX, H: size.CY}.Inset(slideMargin)
}

func titlePlacement(s *SlideContent, r Rect, size int, centered bool) placement {
	return placement{
		kind:     shapeText,
		name:     "Title",
		bounds:   r,
		paras:    []paragraph{{text: s.Title}},
		fontSize: size,
		bold:     true,
		centered: centered,
	}
}

func bodyPlacement(paras []paragraph, r Rect) placement {
	return placement{kind: shapeText, name: "Body", bounds: r, paras: paras, fontSize: bodyFontSize}
}

func captionPlacement(text string, r Rect) placement {
	return placement{
		kind:     shapeText,
		name:     "Caption",
		bounds:   r,
		paras:    []paragraph{{text: text}},
		fontSize: captionFontSize,
		italic:   true,
		centered: true,
	}
}

func picturePlacement(img *sourceImage, r Rect) placement {
	return placement{kind: shapePicture, name: "Picture", bounds: r, image: img}
}

// stackText places the title and then the body below it and returns the
// space left underneath. The body shrinks, down to minBodyHeight, so that
// images keep at least minImageHeight when there are any.
func stackText(in *layoutInput, area Rect, bodyH int64) ([]placement, Rect) {
	var out []placement
	y := area.Y
	if in.slide.Title != "" {
		out = append(out, titlePlacement(in.slide, Rect{X: area.X, Y: y, W: area.W, H: titleHeight}, titleFontSize, false))
		y += titleHeight + blockGap
	}
	if paras := bodyParagraphs(in.slide, false); len(paras) > 0 {
		if len(in.images) > 0 {
			if room := area.Bottom() - y - blockGap - minImageHeight; room < bodyH {
				bodyH = max(room, minBodyHeight)
			}
		}
		out = append(out, bodyPlacement(paras, Rect{X: area.X, Y: y, W: area.W, H: bodyH}))
		y += bodyH + blockGap
	}
	return out, Rect{X: area.X, Y: y, W: area.W, H: max(area.Bottom()-y, 0)}
}

// fitTop fits img into box, centered horizontally and aligned to the top.
func fitTop(img *sourceImage, box Rect, dpi float64) Rect {
	w, h := FitWithinBounds(img.Width, img.Height, box.W, box.H, dpi)
	return Rect{X: box.X + (box.W-w)/2, Y: box.Y, W: w, H: h}
}

// fitCenter fits img into box and centers it on both axes.
func fitCenter(img *sourceImage, box Rect, dpi float64) Rect {
	w, h := FitWithinBounds(img.Width, img.Height, box.W, box.H, dpi)
	return centerIn(box, w, h)
}

// gridPlace tiles images into a two-column grid filling box. Each image is
// fitted against its cell minus padding and centered in the cell.
func gridPlace(images []*sourceImage, box Rect, dpi float64) []placement {
	if len(images) == 0 || box.Empty() {
		return nil
	}
	cols := min(len(images), 2)
	rows := (len(images) + cols - 1) / cols
	cellW := box.W / int64(cols)
	cellH := box.H / int64(rows)
	out := make([]placement, 0, len(images))
	for i, img := range images {
		cell := Rect{
			X: box.X + int64(i%cols)*cellW,
			Y: box.Y + int64(i/cols)*cellH,
			W: cellW,
			H: cellH,
		}
		out = append(out, picturePlacement(img, fitCenter(img, cell.Inset(gridPadding/2), dpi)))
	}
	return out
}

// columnPlace stacks images vertically in box, one row per image.
func columnPlace(images []*sourceImage, box Rect, dpi float64) []placement {
	if len(images) == 0 || box.Empty() {
		return nil
	}
	rowH := box.H / int64(len(images))
	out := make([]placement, 0, len(images))
	for i, img := range images {
		cell := Rect{X: box.X, Y: box.Y + int64(i)*rowH, W: box.W, H: rowH}
		out = append(out, picturePlacement(img, fitCenter(img, cell.Inset(gridPadding/2), dpi)))
	}
	return out
}

// imagesBelow places images into the space under the text: one image fills
// the box, several tile into a grid.
func imagesBelow(images []*sourceImage, box Rect, dpi float64) []placement {
	switch len(images) {
	case 0:
		return nil
	case 1:
		return []placement{picturePlacement(images[0], fitTop(images[0], box, dpi))}
	default:
		return gridPlace(images, box, dpi)
	}
}

// keep returns the first n images and logs the ones a policy drops.
func keep(in *layoutInput, n int) []*sourceImage {
	if len(in.images) <= n {
		return in.images
	}
	for _, img := range in.images[n:] {
		in.log.Debug("layout has no room for image", "layout", in.slide.EffectiveLayout().String(), "path", img.Ref.Path)
	}
	return in.images[:n]
}

// captionText is the caption shown for an image, falling back to its alt text.
func captionText(img *sourceImage) string {
	if img.Ref.Caption != "" {
		return img.Ref.Caption
	}
	return img.Ref.AltText
}

// stackedPolicy is the default: title, body, then images below.
type stackedPolicy struct{}

func (stackedPolicy) place(in *layoutInput, area Rect) []placement {
	out, rest := stackText(in, area, bodyHeight)
	return append(out, imagesBelow(in.images, rest, in.dpi)...)
}

// titlePolicy is a section title slide. Without images the title and
// subtitle are centered vertically; with images it stacks like the default
// with a centered title.
type titlePolicy struct{}

func (titlePolicy) place(in *layoutInput, area Rect) []placement {
	if len(in.images) > 0 {
		out, rest := stackText(in, area, shortBodyHeight)
		if len(out) > 0 && out[0].name == "Title" {
			out[0].centered = true
		}
		return append(out, imagesBelow(in.images, rest, in.dpi)...)
	}

	var out []placement
	titleH := Inch(1.25)
	y := area.Y + area.H/3 - titleH/2
	if in.slide.Title != "" {
		out = append(out, titlePlacement(in.slide, Rect{X: area.X, Y: y, W: area.W, H: titleH}, bigTitleFontSize, true))
	}
	if paras := bodyParagraphs(in.slide, false); len(paras) > 0 {
		sub := bodyPlacement(paras, Rect{X: area.X, Y: y + titleH + blockGap, W: area.W, H: shortBodyHeight})
		sub.centered = true
		out = append(out, sub)
	}
	return out
}

// focusedPolicy gives the images as much room as possible: title on top,
// a short body strip along the bottom, images in between.
type focusedPolicy struct{}

func (focusedPolicy) place(in *layoutInput, area Rect) []placement {
	var out []placement
	box := area
	if in.slide.Title != "" {
		out = append(out, titlePlacement(in.slide, Rect{X: area.X, Y: area.Y, W: area.W, H: titleHeight}, titleFontSize, false))
		box.Y += titleHeight + blockGap
		box.H -= titleHeight + blockGap
	}
	var body []placement
	if paras := bodyParagraphs(in.slide, false); len(paras) > 0 {
		strip := Rect{X: area.X, Y: area.Bottom() - shortBodyHeight, W: area.W, H: shortBodyHeight}
		body = append(body, bodyPlacement(paras, strip))
		box.H -= shortBodyHeight + blockGap
	}
	box.H = max(box.H, 0)
	switch len(in.images) {
	case 0:
	case 1:
		out = append(out, picturePlacement(in.images[0], fitCenter(in.images[0], box, in.dpi)))
	default:
		out = append(out, gridPlace(in.images, box, in.dpi)...)
	}
	return append(out, body...)
}

// gridPolicy always tiles the images, even a single one.
type gridPolicy struct{}

func (gridPolicy) place(in *layoutInput, area Rect) []placement {
	out, rest := stackText(in, area, shortBodyHeight)
	return append(out, gridPlace(in.images, rest, in.dpi)...)
}

// captionPolicy shows one large image with a caption box beneath it.
type captionPolicy struct{}

func (captionPolicy) place(in *layoutInput, area Rect) []placement {
	out, rest := stackText(in, area, shortBodyHeight)
	images := keep(in, 1)
	if len(images) == 0 {
		return out
	}
	img := images[0]
	caption := captionText(img)
	box := rest
	if caption != "" {
		box.H = max(box.H-captionHeight-blockGap, 0)
	}
	pic := fitTop(img, box, in.dpi)
	out = append(out, picturePlacement(img, pic))
	if caption != "" {
		out = append(out, captionPlacement(caption, Rect{X: rest.X, Y: pic.Bottom() + blockGap, W: rest.W, H: captionHeight}))
	}
	return out
}

// comparisonPolicy puts two images side by side in equal boxes, each with
// its own caption.
type comparisonPolicy struct{}

func (comparisonPolicy) place(in *layoutInput, area Rect) []placement {
	out, rest := stackText(in, area, shortBodyHeight)
	images := keep(in, 2)
	if len(images) == 0 {
		return out
	}
	boxW := (rest.W - blockGap) / 2
	boxH := max(rest.H-captionHeight-blockGap, 0)
	var captions []placement
	for i, img := range images {
		box := Rect{X: rest.X + int64(i)*(boxW+blockGap), Y: rest.Y, W: boxW, H: boxH}
		out = append(out, picturePlacement(img, fitTop(img, box, in.dpi)))
		if caption := captionText(img); caption != "" {
			captions = append(captions, captionPlacement(caption, Rect{X: box.X, Y: box.Bottom() + blockGap, W: boxW, H: captionHeight}))
		}
	}
	return append(out, captions...)
}

// showcasePolicy is a two-column composition: text on the left 40% of the
// slide, images on the right 55% spanning the full slide height.
type showcasePolicy struct{}

func (showcasePolicy) place(in *layoutInput, area Rect) []placement {
	slideW, slideH := in.size.CX, in.size.CY
	textCol := Rect{X: area.X, Y: area.Y, W: slideW*40/100 - area.X, H: area.H}
	imageCol := Rect{X: slideW * 45 / 100, Y: 0, W: slideW * 55 / 100, H: slideH}

	var out []placement
	y := textCol.Y
	if in.slide.Title != "" {
		out = append(out, titlePlacement(in.slide, Rect{X: textCol.X, Y: y, W: textCol.W, H: titleHeight}, titleFontSize, false))
		y += titleHeight + blockGap
	}
	if paras := bodyParagraphs(in.slide, true); len(paras) > 0 {
		out = append(out, bodyPlacement(paras, Rect{X: textCol.X, Y: y, W: textCol.W, H: max(textCol.Bottom()-y, minBodyHeight)}))
	}

	switch len(in.images) {
	case 0:
	case 1:
		out = append(out, picturePlacement(in.images[0], fitCenter(in.images[0], imageCol, in.dpi)))
	default:
		out = append(out, columnPlace(in.images, imageCol, in.dpi)...)
	}
	return out
}
