// Package render turns a decoded content stream into calls against an
// abstract Device: it owns the graphics-state stack,
// the path builder and the text object described by the content-stream
// operators, and leaves the actual drawing (rasterizing, recording,
// measuring) to whatever Device the caller plugs in.
package render

import (
	"sync/atomic"

	"github.com/quillcore/pdfcore/model"
)

type Fl = model.Fl

// Cookie is polled by long-running operations (content-stream
// interpretation, page rendering) so a caller on another goroutine can
// request cancellation without the interpreter blocking on I/O beyond
// its stream abstraction. All fields are updated with atomic ops and are
// therefore safe to read and write concurrently with a running
// Interpreter.Run.
type Cookie struct {
	abort      int32 // set to 1 to ask the interpreter to stop
	errorCount int32
	incomplete int32
}

// Abort requests that the current run stop as soon as possible. The
// display list produced so far remains valid; the page is marked
// Incomplete.
func (c *Cookie) Abort() {
	if c == nil {
		return
	}
	atomic.StoreInt32(&c.abort, 1)
}

func (c *Cookie) aborted() bool {
	return c != nil && atomic.LoadInt32(&c.abort) != 0
}

// Errors returns the number of operator errors recovered from while this
// cookie was in use; warnings issued without an operator error are not
// counted.
func (c *Cookie) Errors() int {
	if c == nil {
		return 0
	}
	return int(atomic.LoadInt32(&c.errorCount))
}

func (c *Cookie) addError() {
	if c == nil {
		return
	}
	atomic.AddInt32(&c.errorCount, 1)
}

// Incomplete reports whether the run this cookie tracked was aborted
// before reaching the end of the content stream. An abort is the only
// condition that marks a run incomplete.
func (c *Cookie) Incomplete() bool {
	return c != nil && atomic.LoadInt32(&c.incomplete) != 0
}

func (c *Cookie) markIncomplete() {
	if c == nil {
		return
	}
	atomic.StoreInt32(&c.incomplete, 1)
}

// Paint is the resolved color or pattern used to fill or stroke.
// Exactly one of Pattern or Components (interpreted against ColorSpace)
// applies.
type Paint struct {
	ColorSpace model.ColorSpace
	Components []Fl
	Pattern    model.Pattern // non-nil for /P cs scn
}

// StrokeState groups the pen parameters set by w, J, j, M and d.
type StrokeState struct {
	LineWidth  Fl
	LineCap    int // 0 butt, 1 round, 2 square
	LineJoin   int // 0 miter, 1 round, 2 bevel
	MiterLimit Fl
	Dash       model.DashPattern
}

// Segment is one drawing instruction inside a Subpath.
type Segment struct {
	Op             SegmentOp
	X, Y           Fl // endpoint, for MoveTo/LineTo/CurveTo
	X1, Y1, X2, Y2 Fl // control points, for CurveTo
}

type SegmentOp uint8

const (
	SegMoveTo SegmentOp = iota
	SegLineTo
	SegCurveTo
	SegClose
)

// Subpath is a sequence of segments starting with a MoveTo.
type Subpath []Segment

// Path is the path under construction between path-construction
// operators and the next painting operator.
type Path struct {
	Subpaths []Subpath
}

func (p *Path) current() *Subpath {
	if len(p.Subpaths) == 0 {
		p.Subpaths = append(p.Subpaths, nil)
	}
	return &p.Subpaths[len(p.Subpaths)-1]
}

func (p *Path) MoveTo(x, y Fl) {
	p.Subpaths = append(p.Subpaths, Subpath{{Op: SegMoveTo, X: x, Y: y}})
}

func (p *Path) LineTo(x, y Fl) {
	sp := p.current()
	*sp = append(*sp, Segment{Op: SegLineTo, X: x, Y: y})
}

func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 Fl) {
	sp := p.current()
	*sp = append(*sp, Segment{Op: SegCurveTo, X: x3, Y: y3, X1: x1, Y1: y1, X2: x2, Y2: y2})
}

func (p *Path) Rectangle(x, y, w, h Fl) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

func (p *Path) Close() {
	if len(p.Subpaths) == 0 {
		return
	}
	sp := p.current()
	*sp = append(*sp, Segment{Op: SegClose})
}

func (p *Path) Clear() { p.Subpaths = nil }

func (p Path) IsEmpty() bool { return len(p.Subpaths) == 0 }

// Transform returns a copy of p with every point passed through m.
func (p Path) Transform(m model.Matrix) Path {
	out := Path{Subpaths: make([]Subpath, len(p.Subpaths))}
	for i, sp := range p.Subpaths {
		nsp := make(Subpath, len(sp))
		for j, seg := range sp {
			nseg := seg
			nseg.X, nseg.Y = m.Apply(seg.X, seg.Y)
			if seg.Op == SegCurveTo {
				nseg.X1, nseg.Y1 = m.Apply(seg.X1, seg.Y1)
				nseg.X2, nseg.Y2 = m.Apply(seg.X2, seg.Y2)
			}
			nsp[j] = nseg
		}
		out.Subpaths[i] = nsp
	}
	return out
}

// Bounds returns the smallest axis-aligned rectangle enclosing every
// point and control point of p. It returns ok=false for an empty path.
func (p Path) Bounds() (r model.Rectangle, ok bool) {
	first := true
	consider := func(x, y Fl) {
		if first {
			r = model.Rectangle{Llx: x, Lly: y, Urx: x, Ury: y}
			first = false
			return
		}
		if x < r.Llx {
			r.Llx = x
		}
		if x > r.Urx {
			r.Urx = x
		}
		if y < r.Lly {
			r.Lly = y
		}
		if y > r.Ury {
			r.Ury = y
		}
	}
	for _, sp := range p.Subpaths {
		for _, seg := range sp {
			consider(seg.X, seg.Y)
			if seg.Op == SegCurveTo {
				consider(seg.X1, seg.Y1)
				consider(seg.X2, seg.Y2)
			}
		}
	}
	return r, !first
}

// Text is the queued glyph run flushed to the device by a text-showing
// operator or at ET for clipping modes.
type Text struct {
	Font       *model.FontDict
	Size       Fl
	Matrix     model.Matrix // text rendering matrix (Trm) at the first glyph of the run
	RenderMode int
	Runes      []rune
}

// Device is the abstract drawing sink the interpreter drives. All
// arguments are owned by the caller for the duration of the call;
// implementations that need to retain geometry must clone it (a copy of
// a Path or Text value shares its slices with the original).
type Device interface {
	FillPath(path Path, evenOdd bool, ctm model.Matrix, paint Paint, alpha Fl)
	StrokePath(path Path, stroke StrokeState, ctm model.Matrix, paint Paint, alpha Fl)
	ClipPath(path Path, evenOdd bool, ctm model.Matrix)
	ClipStrokePath(path Path, stroke StrokeState, ctm model.Matrix)

	FillText(text Text, ctm model.Matrix, paint Paint, alpha Fl)
	StrokeText(text Text, stroke StrokeState, ctm model.Matrix, paint Paint, alpha Fl)
	ClipText(text Text, ctm model.Matrix)
	ClipStrokeText(text Text, stroke StrokeState, ctm model.Matrix)
	IgnoreText(text Text, ctm model.Matrix)

	FillShade(shade *model.ShadingDict, ctm model.Matrix, alpha Fl)
	FillImage(img *model.XObjectImage, ctm model.Matrix, alpha Fl)
	FillImageMask(img *model.XObjectImage, ctm model.Matrix, paint Paint, alpha Fl)
	ClipImageMask(img *model.XObjectImage, ctm model.Matrix)

	PopClip()

	BeginMask(bbox model.Rectangle, luminosity bool, cs model.ColorSpace, paint Paint)
	EndMask()

	BeginGroup(bbox model.Rectangle, isolated, knockout bool, blendMode model.Name, alpha Fl)
	EndGroup()

	BeginTile(area, view model.Rectangle, xstep, ystep Fl, ctm model.Matrix, id int) int
	EndTile()

	BeginPage(mediaBox model.Rectangle, ctm model.Matrix)
	EndPage()
}
