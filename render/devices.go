package render

import "github.com/quillcore/pdfcore/model"

// opKind identifies which Device method a recorded Node replays.
type opKind uint8

const (
	opFillPath opKind = iota
	opStrokePath
	opClipPath
	opClipStrokePath
	opFillText
	opStrokeText
	opClipText
	opClipStrokeText
	opIgnoreText
	opFillShade
	opFillImage
	opFillImageMask
	opClipImageMask
	opPopClip
	opBeginMask
	opEndMask
	opBeginGroup
	opEndGroup
	opBeginTile
	opEndTile
	opBeginPage
	opEndPage
)

// Node is one recorded Device call. Arguments are stored by value: a
// struct copy, whose slices (path segments, runes, color components,
// dash array) share their backing arrays with the values passed in.
type Node struct {
	Op           opKind
	Path         Path
	EvenOdd      bool
	CTM          model.Matrix
	Paint        Paint
	Alpha        Fl
	Stroke       StrokeState
	Text         Text
	Shade        *model.ShadingDict
	Image        *model.XObjectImage
	BBox         model.Rectangle
	Luminosity   bool
	ColorSpace   model.ColorSpace
	Isolated     bool
	Knockout     bool
	BlendMode    model.Name
	Area, View   model.Rectangle
	XStep, YStep Fl
	TileID       int
}

// ListDevice records every call issued by an Interpreter into an
// ordered display list, with no interpretation or drawing performed: it
// is the device used to test interpreter determinism (running the same
// content stream twice must produce byte-identical node slices) and as
// a cache that can be replayed against any other Device without
// re-running the interpreter.
type ListDevice struct {
	Nodes    []Node
	nextTile int
}

var _ Device = (*ListDevice)(nil)

func (d *ListDevice) FillPath(path Path, evenOdd bool, ctm model.Matrix, paint Paint, alpha Fl) {
	d.Nodes = append(d.Nodes, Node{Op: opFillPath, Path: path, EvenOdd: evenOdd, CTM: ctm, Paint: paint, Alpha: alpha})
}

func (d *ListDevice) StrokePath(path Path, stroke StrokeState, ctm model.Matrix, paint Paint, alpha Fl) {
	d.Nodes = append(d.Nodes, Node{Op: opStrokePath, Path: path, Stroke: stroke, CTM: ctm, Paint: paint, Alpha: alpha})
}

func (d *ListDevice) ClipPath(path Path, evenOdd bool, ctm model.Matrix) {
	d.Nodes = append(d.Nodes, Node{Op: opClipPath, Path: path, EvenOdd: evenOdd, CTM: ctm})
}

func (d *ListDevice) ClipStrokePath(path Path, stroke StrokeState, ctm model.Matrix) {
	d.Nodes = append(d.Nodes, Node{Op: opClipStrokePath, Path: path, Stroke: stroke, CTM: ctm})
}

func (d *ListDevice) FillText(text Text, ctm model.Matrix, paint Paint, alpha Fl) {
	d.Nodes = append(d.Nodes, Node{Op: opFillText, Text: text, CTM: ctm, Paint: paint, Alpha: alpha})
}

func (d *ListDevice) StrokeText(text Text, stroke StrokeState, ctm model.Matrix, paint Paint, alpha Fl) {
	d.Nodes = append(d.Nodes, Node{Op: opStrokeText, Text: text, Stroke: stroke, CTM: ctm, Paint: paint, Alpha: alpha})
}

func (d *ListDevice) ClipText(text Text, ctm model.Matrix) {
	d.Nodes = append(d.Nodes, Node{Op: opClipText, Text: text, CTM: ctm})
}

func (d *ListDevice) ClipStrokeText(text Text, stroke StrokeState, ctm model.Matrix) {
	d.Nodes = append(d.Nodes, Node{Op: opClipStrokeText, Text: text, Stroke: stroke, CTM: ctm})
}

func (d *ListDevice) IgnoreText(text Text, ctm model.Matrix) {
	d.Nodes = append(d.Nodes, Node{Op: opIgnoreText, Text: text, CTM: ctm})
}

func (d *ListDevice) FillShade(shade *model.ShadingDict, ctm model.Matrix, alpha Fl) {
	d.Nodes = append(d.Nodes, Node{Op: opFillShade, Shade: shade, CTM: ctm, Alpha: alpha})
}

func (d *ListDevice) FillImage(img *model.XObjectImage, ctm model.Matrix, alpha Fl) {
	d.Nodes = append(d.Nodes, Node{Op: opFillImage, Image: img, CTM: ctm, Alpha: alpha})
}

func (d *ListDevice) FillImageMask(img *model.XObjectImage, ctm model.Matrix, paint Paint, alpha Fl) {
	d.Nodes = append(d.Nodes, Node{Op: opFillImageMask, Image: img, CTM: ctm, Paint: paint, Alpha: alpha})
}

func (d *ListDevice) ClipImageMask(img *model.XObjectImage, ctm model.Matrix) {
	d.Nodes = append(d.Nodes, Node{Op: opClipImageMask, Image: img, CTM: ctm})
}

func (d *ListDevice) PopClip() {
	d.Nodes = append(d.Nodes, Node{Op: opPopClip})
}

func (d *ListDevice) BeginMask(bbox model.Rectangle, luminosity bool, cs model.ColorSpace, paint Paint) {
	d.Nodes = append(d.Nodes, Node{Op: opBeginMask, BBox: bbox, Luminosity: luminosity, ColorSpace: cs, Paint: paint})
}

func (d *ListDevice) EndMask() { d.Nodes = append(d.Nodes, Node{Op: opEndMask}) }

func (d *ListDevice) BeginGroup(bbox model.Rectangle, isolated, knockout bool, blendMode model.Name, alpha Fl) {
	d.Nodes = append(d.Nodes, Node{Op: opBeginGroup, BBox: bbox, Isolated: isolated, Knockout: knockout, BlendMode: blendMode, Alpha: alpha})
}

func (d *ListDevice) EndGroup() { d.Nodes = append(d.Nodes, Node{Op: opEndGroup}) }

func (d *ListDevice) BeginTile(area, view model.Rectangle, xstep, ystep Fl, ctm model.Matrix, id int) int {
	if id == 0 {
		d.nextTile++
		id = d.nextTile
	}
	d.Nodes = append(d.Nodes, Node{Op: opBeginTile, Area: area, View: view, XStep: xstep, YStep: ystep, CTM: ctm, TileID: id})
	return id
}

func (d *ListDevice) EndTile() { d.Nodes = append(d.Nodes, Node{Op: opEndTile}) }

func (d *ListDevice) BeginPage(mediaBox model.Rectangle, ctm model.Matrix) {
	d.Nodes = append(d.Nodes, Node{Op: opBeginPage, BBox: mediaBox, CTM: ctm})
}

func (d *ListDevice) EndPage() { d.Nodes = append(d.Nodes, Node{Op: opEndPage}) }

// Replay issues every recorded node against another Device, in order.
// Replaying a list against a different device produces exactly the same
// sequence of calls the original interpreter run produced.
func (d *ListDevice) Replay(dst Device) {
	for _, n := range d.Nodes {
		switch n.Op {
		case opFillPath:
			dst.FillPath(n.Path, n.EvenOdd, n.CTM, n.Paint, n.Alpha)
		case opStrokePath:
			dst.StrokePath(n.Path, n.Stroke, n.CTM, n.Paint, n.Alpha)
		case opClipPath:
			dst.ClipPath(n.Path, n.EvenOdd, n.CTM)
		case opClipStrokePath:
			dst.ClipStrokePath(n.Path, n.Stroke, n.CTM)
		case opFillText:
			dst.FillText(n.Text, n.CTM, n.Paint, n.Alpha)
		case opStrokeText:
			dst.StrokeText(n.Text, n.Stroke, n.CTM, n.Paint, n.Alpha)
		case opClipText:
			dst.ClipText(n.Text, n.CTM)
		case opClipStrokeText:
			dst.ClipStrokeText(n.Text, n.Stroke, n.CTM)
		case opIgnoreText:
			dst.IgnoreText(n.Text, n.CTM)
		case opFillShade:
			dst.FillShade(n.Shade, n.CTM, n.Alpha)
		case opFillImage:
			dst.FillImage(n.Image, n.CTM, n.Alpha)
		case opFillImageMask:
			dst.FillImageMask(n.Image, n.CTM, n.Paint, n.Alpha)
		case opClipImageMask:
			dst.ClipImageMask(n.Image, n.CTM)
		case opPopClip:
			dst.PopClip()
		case opBeginMask:
			dst.BeginMask(n.BBox, n.Luminosity, n.ColorSpace, n.Paint)
		case opEndMask:
			dst.EndMask()
		case opBeginGroup:
			dst.BeginGroup(n.BBox, n.Isolated, n.Knockout, n.BlendMode, n.Alpha)
		case opEndGroup:
			dst.EndGroup()
		case opBeginTile:
			dst.BeginTile(n.Area, n.View, n.XStep, n.YStep, n.CTM, n.TileID)
		case opEndTile:
			dst.EndTile()
		case opBeginPage:
			dst.BeginPage(n.BBox, n.CTM)
		case opEndPage:
			dst.EndPage()
		}
	}
}

// ClipBalance reports the number of clip-introducing calls
// (ClipPath/ClipStrokePath/ClipImageMask/ClipText/ClipStrokeText) minus
// the number of PopClip calls recorded. A well-formed content stream
// always balances to zero once the page is fully interpreted: q/Q
// pairing guarantees every clip pushed while a gstate frame was live is
// popped when that frame is popped.
func (d *ListDevice) ClipBalance() int {
	balance := 0
	for _, n := range d.Nodes {
		switch n.Op {
		case opClipPath, opClipStrokePath, opClipImageMask, opClipText, opClipStrokeText:
			balance++
		case opPopClip:
			balance--
		}
	}
	return balance
}

// BBoxDevice implements Device by ignoring color, paint and text shape
// entirely and accumulating only the union of every transformed
// bounding box it is handed: a cheap way to answer "what area of the
// page did this content touch" without rasterizing anything.
type BBoxDevice struct {
	Bounds model.Rectangle
	hasAny bool
}

var _ Device = (*BBoxDevice)(nil)

func (d *BBoxDevice) union(r model.Rectangle) {
	if !d.hasAny {
		d.Bounds = r
		d.hasAny = true
		return
	}
	if r.Llx < d.Bounds.Llx {
		d.Bounds.Llx = r.Llx
	}
	if r.Lly < d.Bounds.Lly {
		d.Bounds.Lly = r.Lly
	}
	if r.Urx > d.Bounds.Urx {
		d.Bounds.Urx = r.Urx
	}
	if r.Ury > d.Bounds.Ury {
		d.Bounds.Ury = r.Ury
	}
}

func (d *BBoxDevice) pathBounds(path Path, ctm model.Matrix) {
	if r, ok := path.Transform(ctm).Bounds(); ok {
		d.union(r)
	}
}

func (d *BBoxDevice) FillPath(path Path, _ bool, ctm model.Matrix, _ Paint, _ Fl) {
	d.pathBounds(path, ctm)
}
func (d *BBoxDevice) StrokePath(path Path, _ StrokeState, ctm model.Matrix, _ Paint, _ Fl) {
	d.pathBounds(path, ctm)
}
func (d *BBoxDevice) ClipPath(path Path, _ bool, ctm model.Matrix) { d.pathBounds(path, ctm) }
func (d *BBoxDevice) ClipStrokePath(path Path, _ StrokeState, ctm model.Matrix) {
	d.pathBounds(path, ctm)
}
func (d *BBoxDevice) FillText(Text, model.Matrix, Paint, Fl)                {}
func (d *BBoxDevice) StrokeText(Text, StrokeState, model.Matrix, Paint, Fl) {}
func (d *BBoxDevice) ClipText(Text, model.Matrix)                           {}
func (d *BBoxDevice) ClipStrokeText(Text, StrokeState, model.Matrix)        {}
func (d *BBoxDevice) IgnoreText(Text, model.Matrix)                         {}
func (d *BBoxDevice) FillShade(*model.ShadingDict, model.Matrix, Fl)        {}
func (d *BBoxDevice) FillImage(img *model.XObjectImage, ctm model.Matrix, _ Fl) {
	d.union(unitSquare.Transform(ctm).mustBounds())
}
func (d *BBoxDevice) FillImageMask(img *model.XObjectImage, ctm model.Matrix, _ Paint, _ Fl) {
	d.union(unitSquare.Transform(ctm).mustBounds())
}
func (d *BBoxDevice) ClipImageMask(img *model.XObjectImage, ctm model.Matrix) {
	d.union(unitSquare.Transform(ctm).mustBounds())
}
func (d *BBoxDevice) PopClip()                                                 {}
func (d *BBoxDevice) BeginMask(model.Rectangle, bool, model.ColorSpace, Paint) {}
func (d *BBoxDevice) EndMask()                                                 {}
func (d *BBoxDevice) BeginGroup(model.Rectangle, bool, bool, model.Name, Fl)   {}
func (d *BBoxDevice) EndGroup()                                                {}
func (d *BBoxDevice) BeginTile(model.Rectangle, model.Rectangle, Fl, Fl, model.Matrix, int) int {
	return 0
}
func (d *BBoxDevice) EndTile()                                {}
func (d *BBoxDevice) BeginPage(model.Rectangle, model.Matrix) {}
func (d *BBoxDevice) EndPage()                                {}

// unitSquare is the image-space unit square every image xobject fills,
// per 8.9.5.1: the image's own pixel grid maps onto [0,1]x[0,1] and the
// CTM carries it to device space.
var unitSquare = Path{Subpaths: []Subpath{{
	{Op: SegMoveTo, X: 0, Y: 0},
	{Op: SegLineTo, X: 1, Y: 0},
	{Op: SegLineTo, X: 1, Y: 1},
	{Op: SegLineTo, X: 0, Y: 1},
	{Op: SegClose},
}}}

func (p Path) mustBounds() model.Rectangle {
	r, _ := p.Bounds()
	return r
}

// TextDevice implements Device by recording only the glyph runs handed
// to the text-related calls, in the order the interpreter issued them,
// ignoring every path, image and shading call: it is the building block
// a text-extraction or search layer runs on top of (building the actual
// searchable string from these runs, including reading order and layout,
// is outside this core).
type TextDevice struct {
	Runs []Text
}

var _ Device = (*TextDevice)(nil)

func (d *TextDevice) FillPath(Path, bool, model.Matrix, Paint, Fl)          {}
func (d *TextDevice) StrokePath(Path, StrokeState, model.Matrix, Paint, Fl) {}
func (d *TextDevice) ClipPath(Path, bool, model.Matrix)                     {}
func (d *TextDevice) ClipStrokePath(Path, StrokeState, model.Matrix)        {}

func (d *TextDevice) FillText(text Text, _ model.Matrix, _ Paint, _ Fl) {
	d.Runs = append(d.Runs, text)
}
func (d *TextDevice) StrokeText(text Text, _ StrokeState, _ model.Matrix, _ Paint, _ Fl) {
	d.Runs = append(d.Runs, text)
}
func (d *TextDevice) ClipText(text Text, _ model.Matrix) { d.Runs = append(d.Runs, text) }
func (d *TextDevice) ClipStrokeText(text Text, _ StrokeState, _ model.Matrix) {
	d.Runs = append(d.Runs, text)
}
func (d *TextDevice) IgnoreText(Text, model.Matrix) {} // render mode 3: invisible, not part of the extracted text

func (d *TextDevice) FillShade(*model.ShadingDict, model.Matrix, Fl)             {}
func (d *TextDevice) FillImage(*model.XObjectImage, model.Matrix, Fl)            {}
func (d *TextDevice) FillImageMask(*model.XObjectImage, model.Matrix, Paint, Fl) {}
func (d *TextDevice) ClipImageMask(*model.XObjectImage, model.Matrix)            {}
func (d *TextDevice) PopClip()                                                   {}
func (d *TextDevice) BeginMask(model.Rectangle, bool, model.ColorSpace, Paint)   {}
func (d *TextDevice) EndMask()                                                   {}
func (d *TextDevice) BeginGroup(model.Rectangle, bool, bool, model.Name, Fl)     {}
func (d *TextDevice) EndGroup()                                                  {}
func (d *TextDevice) BeginTile(model.Rectangle, model.Rectangle, Fl, Fl, model.Matrix, int) int {
	return 0
}
func (d *TextDevice) EndTile()                                {}
func (d *TextDevice) BeginPage(model.Rectangle, model.Matrix) {}
func (d *TextDevice) EndPage()                                {}

// String concatenates every recorded run's runes in call order. This is
// a minimal join, not a layout-aware text extractor: reading order,
// word breaks and the search overlay belong to a layer above this core.
func (d *TextDevice) String() string {
	var out []rune
	for _, r := range d.Runs {
		out = append(out, r.Runes...)
	}
	return string(out)
}
