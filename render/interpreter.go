package render

import (
	"fmt"

	cs "github.com/quillcore/pdfcore/contentstream"
	"github.com/quillcore/pdfcore/model"
)

// maxGStateDepth bounds the q/Q stack: deeper nesting is clamped, the
// interpreter warns at, and ignores, every further q operator until a
// Q brings the depth back under the limit.
const maxGStateDepth = 32

// maxFormDepth bounds recursive Do invocations of Form XObjects, breaking
// a cycle created by a (malformed) form that includes itself.
const maxFormDepth = 16

// clipKind records a deferred W/W* request: PDF intersects the clip
// path with the path painted by the *next* path-painting operator, not
// immediately.
type clipKind uint8

const (
	clipNone clipKind = iota
	clipNonZero
	clipEvenOdd
)

// Interpreter drives a Device from a parsed content stream. It owns the
// whole evaluation state of the content-stream machine: the
// graphics-state stack, the path under construction and the text
// object built up between BT and ET.
type Interpreter struct {
	dev  Device
	warn func(string)

	gs      gstate
	gsStack []gstate

	path        Path
	pendingClip clipKind

	inText bool

	formDepth int
}

// NewInterpreter builds an Interpreter targeting dev. warn receives one
// line per non-fatal recovery (unknown operator, stack underflow,
// malformed operand, missing resource); an error returned by an operator
// inside a BX/EX block is dropped without a warning. warn may be nil to
// discard warnings.
func NewInterpreter(dev Device, warn func(string)) *Interpreter {
	if warn == nil {
		warn = func(string) {}
	}
	return &Interpreter{dev: dev, warn: warn, gs: newGState()}
}

func (ip *Interpreter) warnf(format string, args ...interface{}) {
	ip.warn(fmt.Sprintf(format, args...))
}

// Run interprets ops against resources, with ctm as the initial current
// transformation matrix (typically the page's device-space transform,
// or a Form XObject's matrix composed with its invoker's CTM). cookie
// may be nil; if non-nil it is polled between top-level operators and a
// requested Abort stops the run early, leaving the device with whatever
// was successfully issued so far: partial progress stays valid.
func (ip *Interpreter) Run(ops []cs.Operation, resources model.ResourcesDict, ctm model.Matrix, cookie *Cookie) error {
	ip.gs.ctm = ctm
	ip.runOps(ops, resources, cookie)
	return nil
}

// runOps interprets ops against the current graphics state; it is
// shared by Run and by Form XObject invocation.
func (ip *Interpreter) runOps(ops []cs.Operation, resources model.ResourcesDict, cookie *Cookie) {
	bx := 0 // BX/EX nesting depth; > 0 drops the errors returned by step, unreported
	for _, op := range ops {
		if cookie.aborted() {
			cookie.markIncomplete()
			return
		}
		if err := ip.step(op, resources, cookie, &bx); err != nil {
			if bx > 0 {
				continue
			}
			cookie.addError()
			ip.warnf("content stream: %s", err)
		}
	}
}

// Finish pops every clip still live on the graphics-state stack, so
// that the device sees one PopClip per clip call even when the content
// stream ended with unbalanced q operators. It must be called once,
// after the last Run on a page.
func (ip *Interpreter) Finish() {
	for i := 0; i < ip.gs.clipDepth; i++ {
		ip.dev.PopClip()
	}
	ip.gs.clipDepth = 0
	for len(ip.gsStack) > 0 {
		top := ip.gsStack[len(ip.gsStack)-1]
		ip.gsStack = ip.gsStack[:len(ip.gsStack)-1]
		for i := 0; i < top.clipDepth; i++ {
			ip.dev.PopClip()
		}
	}
}

func (ip *Interpreter) step(op cs.Operation, res model.ResourcesDict, cookie *Cookie, bx *int) error {
	switch o := op.(type) {

	// --- compatibility -------------------------------------------------
	case cs.OpBeginIgnoreUndef:
		*bx++
	case cs.OpEndIgnoreUndef:
		if *bx > 0 {
			*bx--
		}

	// --- path construction ----------------------------------------------
	case cs.OpMoveTo:
		ip.path.MoveTo(o.X, o.Y)
	case cs.OpLineTo:
		ip.path.LineTo(o.X, o.Y)
	case cs.OpCubicTo:
		ip.path.CurveTo(o.X1, o.Y1, o.X2, o.Y2, o.X3, o.Y3)
	case cs.OpCurveTo: // y: second control point == endpoint
		ip.path.CurveTo(o.X1, o.Y1, o.X3, o.Y3, o.X3, o.Y3)
	case cs.OpCurveTo1: // v: first control point == current point
		cur := ip.currentPoint()
		ip.path.CurveTo(cur[0], cur[1], o.X2, o.Y2, o.X3, o.Y3)
	case cs.OpRectangle:
		ip.path.Rectangle(o.X, o.Y, o.W, o.H)
	case cs.OpClosePath:
		ip.path.Close()

	// --- clipping (deferred) --------------------------------------------
	case cs.OpClip:
		ip.pendingClip = clipNonZero
	case cs.OpEOClip:
		ip.pendingClip = clipEvenOdd

	// --- path painting ---------------------------------------------------
	case cs.OpFill:
		ip.paint(true, false, false)
	case cs.OpEOFill:
		ip.paint(true, true, false)
	case cs.OpStroke:
		ip.paint(false, false, true)
	case cs.OpCloseStroke:
		ip.path.Close()
		ip.paint(false, false, true)
	case cs.OpFillStroke:
		ip.paint(true, false, true)
	case cs.OpEOFillStroke:
		ip.paint(true, true, true)
	case cs.OpCloseFillStroke:
		ip.path.Close()
		ip.paint(true, false, true)
	case cs.OpCloseEOFillStroke:
		ip.path.Close()
		ip.paint(true, true, true)
	case cs.OpEndPath:
		ip.paint(false, false, false)

	// --- graphics state ----------------------------------------------------
	case cs.OpSave:
		if len(ip.gsStack) >= maxGStateDepth {
			ip.warnf("q: graphics state stack overflow, clamped at %d", maxGStateDepth)
			return nil
		}
		ip.gsStack = append(ip.gsStack, ip.gs)
		ip.gs = ip.gs.clone()
	case cs.OpRestore:
		if len(ip.gsStack) == 0 {
			return fmt.Errorf("Q: unbalanced graphics state stack")
		}
		for i := 0; i < ip.gs.clipDepth; i++ {
			ip.dev.PopClip()
		}
		ip.gs = ip.gsStack[len(ip.gsStack)-1]
		ip.gsStack = ip.gsStack[:len(ip.gsStack)-1]
	case cs.OpConcat:
		ip.gs.ctm = o.Matrix.Multiply(ip.gs.ctm)
	case cs.OpSetLineWidth:
		ip.gs.stroke.LineWidth = o.W
	case cs.OpSetLineCap:
		ip.gs.stroke.LineCap = int(o.Style)
	case cs.OpSetLineJoin:
		ip.gs.stroke.LineJoin = int(o.Style)
	case cs.OpSetMiterLimit:
		ip.gs.stroke.MiterLimit = o.Limit
	case cs.OpSetDash:
		ip.gs.stroke.Dash = o.Dash
	case cs.OpSetFlat:
		// flatness tolerance has no effect on an abstract Device.
	case cs.OpSetExtGState:
		if err := ip.applyExtGState(res, o.Dict); err != nil {
			return err
		}

	// --- color --------------------------------------------------------------
	case cs.OpSetStrokeColorSpace:
		ip.gs.strokeCS = ip.resolveColorSpace(res, model.Name(o.ColorSpace))
		ip.gs.strokePaint = Paint{ColorSpace: ip.gs.strokeCS, Components: defaultComponents(ip.gs.strokeCS)}
	case cs.OpSetFillColorSpace:
		ip.gs.fillCS = ip.resolveColorSpace(res, model.Name(o.ColorSpace))
		ip.gs.fillPaint = Paint{ColorSpace: ip.gs.fillCS, Components: defaultComponents(ip.gs.fillCS)}
	case cs.OpSetStrokeColor:
		ip.gs.strokePaint = Paint{ColorSpace: ip.gs.strokeCS, Components: o.Color}
	case cs.OpSetFillColor:
		ip.gs.fillPaint = Paint{ColorSpace: ip.gs.fillCS, Components: o.Color}
	case cs.OpSetStrokeColorN:
		ip.gs.strokePaint = ip.resolvePaint(res, ip.gs.strokeCS, o.Color, model.Name(o.Pattern))
	case cs.OpSetFillColorN:
		ip.gs.fillPaint = ip.resolvePaint(res, ip.gs.fillCS, o.Color, model.Name(o.Pattern))
	case cs.OpSetStrokeGray:
		ip.gs.strokeCS = model.ColorSpaceName(model.ColorSpaceGray)
		ip.gs.strokePaint = Paint{ColorSpace: ip.gs.strokeCS, Components: []Fl{o.G}}
	case cs.OpSetFillGray:
		ip.gs.fillCS = model.ColorSpaceName(model.ColorSpaceGray)
		ip.gs.fillPaint = Paint{ColorSpace: ip.gs.fillCS, Components: []Fl{o.G}}
	case cs.OpSetStrokeRGBColor:
		ip.gs.strokeCS = model.ColorSpaceName(model.ColorSpaceRGB)
		ip.gs.strokePaint = Paint{ColorSpace: ip.gs.strokeCS, Components: []Fl{o.R, o.G, o.B}}
	case cs.OpSetFillRGBColor:
		ip.gs.fillCS = model.ColorSpaceName(model.ColorSpaceRGB)
		ip.gs.fillPaint = Paint{ColorSpace: ip.gs.fillCS, Components: []Fl{o.R, o.G, o.B}}
	case cs.OpSetStrokeCMYKColor:
		ip.gs.strokeCS = model.ColorSpaceName(model.ColorSpaceCMYK)
		ip.gs.strokePaint = Paint{ColorSpace: ip.gs.strokeCS, Components: []Fl{o.C, o.M, o.Y, o.K}}
	case cs.OpSetFillCMYKColor:
		ip.gs.fillCS = model.ColorSpaceName(model.ColorSpaceCMYK)
		ip.gs.fillPaint = Paint{ColorSpace: ip.gs.fillCS, Components: []Fl{o.C, o.M, o.Y, o.K}}
	case cs.OpSetRenderingIntent:
		// carried only for completeness; no Device hook consumes it.

	// --- text object -----------------------------------------------------
	case cs.OpBeginText:
		ip.inText = true
		ip.gs.text.matrix = model.Identity
		ip.gs.text.lineMatrix = model.Identity
		ip.gs.text.clipAccum = nil
	case cs.OpEndText:
		ip.flushTextClip()
		ip.inText = false

	// --- text state --------------------------------------------------------
	case cs.OpSetCharSpacing:
		ip.gs.text.charSpace = o.CharSpace
	case cs.OpSetWordSpacing:
		ip.gs.text.wordSpace = o.WordSpace
	case cs.OpSetHorizScaling:
		ip.gs.text.scale = o.Scale / 100
	case cs.OpSetTextLeading:
		ip.gs.text.leading = o.L
	case cs.OpSetFont:
		ip.gs.text.fontName = model.Name(o.Font)
		ip.gs.text.size = o.Size
		if f, ok := res.Font[model.Name(o.Font)]; ok {
			ip.gs.text.font = f
		} else {
			return fmt.Errorf("Tf: unknown font resource %q", o.Font)
		}
	case cs.OpSetTextRender:
		ip.gs.text.renderMode = int(o.Render)
	case cs.OpSetTextRise:
		ip.gs.text.rise = o.Rise

	// --- text positioning --------------------------------------------------
	case cs.OpTextMove:
		ip.textMove(o.X, o.Y)
	case cs.OpTextMoveSet:
		ip.gs.text.leading = -o.Y
		ip.textMove(o.X, o.Y)
	case cs.OpSetTextMatrix:
		ip.gs.text.lineMatrix = o.Matrix
		ip.gs.text.matrix = o.Matrix
	case cs.OpTextNextLine:
		ip.textMove(0, -ip.gs.text.leading)

	// --- text showing --------------------------------------------------------
	case cs.OpShowText:
		ip.showText(o.Text)
	case cs.OpMoveShowText:
		ip.textMove(0, -ip.gs.text.leading)
		ip.showText(o.Text)
	case cs.OpMoveSetShowText:
		ip.gs.text.wordSpace = o.WordSpacing
		ip.gs.text.charSpace = o.CharacterSpacing
		ip.textMove(0, -ip.gs.text.leading)
		ip.showText(o.Text)
	case cs.OpShowSpaceText:
		for _, ts := range o.Texts {
			ip.showText(string(ts.CharCodes))
			if ts.SpaceSubtractedAfter != 0 {
				adv := -Fl(ts.SpaceSubtractedAfter) / 1000 * ip.gs.text.size * ip.gs.text.scale
				ip.gs.text.matrix = model.Matrix{1, 0, 0, 1, adv, 0}.Multiply(ip.gs.text.matrix)
			}
		}

	// --- xobject -------------------------------------------------------------
	case cs.OpXObject:
		if err := ip.doXObject(res, model.Name(o.XObject), cookie); err != nil {
			return fmt.Errorf("Do %s: %w", o.XObject, err)
		}

	// --- inline image ----------------------------------------------------
	case cs.OpBeginImage:
		if err := ip.drawInlineImage(o, res); err != nil {
			return fmt.Errorf("BI: %w", err)
		}

	// --- shading ------------------------------------------------------------
	case cs.OpShFill:
		sh, ok := res.Shading[model.Name(o.Shading)]
		if !ok {
			return fmt.Errorf("sh: unknown shading resource %q", o.Shading)
		}
		ip.dev.FillShade(sh, ip.gs.ctm, ip.gs.fillAlpha)

	// --- marked content (no-op) ---------------------------------------------
	case cs.OpBeginMarkedContent, cs.OpEndMarkedContent, cs.OpMarkPoint:

	// --- glyph metrics, only meaningful inside Type 3 glyph procedures ------
	case cs.OpSetCharWidth, cs.OpSetCacheDevice:

	default:
		return fmt.Errorf("unknown operator %T", op)
	}
	return nil
}

// currentPoint returns the endpoint of the last segment appended to the
// path under construction, or the origin if the path is empty.
func (ip *Interpreter) currentPoint() [2]Fl {
	if len(ip.path.Subpaths) == 0 {
		return [2]Fl{0, 0}
	}
	sp := ip.path.Subpaths[len(ip.path.Subpaths)-1]
	if len(sp) == 0 {
		return [2]Fl{0, 0}
	}
	last := sp[len(sp)-1]
	return [2]Fl{last.X, last.Y}
}

// paint issues the fill and/or stroke calls for the accumulated path,
// then applies any pending clip and always clears the path (every
// path-painting operator, including n, ends the current path).
func (ip *Interpreter) paint(fill, evenOdd, stroke bool) {
	if fill && !ip.path.IsEmpty() {
		ip.dev.FillPath(ip.path, evenOdd, ip.gs.ctm, ip.gs.fillPaint, ip.gs.fillAlpha)
	}
	if stroke && !ip.path.IsEmpty() {
		ip.dev.StrokePath(ip.path, ip.gs.stroke, ip.gs.ctm, ip.gs.strokePaint, ip.gs.strokeAlpha)
	}
	if ip.pendingClip != clipNone {
		ip.dev.ClipPath(ip.path, ip.pendingClip == clipEvenOdd, ip.gs.ctm)
		ip.gs.clipDepth++
		ip.pendingClip = clipNone
	}
	ip.path.Clear()
}

func (ip *Interpreter) textMove(tx, ty Fl) {
	ip.gs.text.lineMatrix = model.Matrix{1, 0, 0, 1, tx, ty}.Multiply(ip.gs.text.lineMatrix)
	ip.gs.text.matrix = ip.gs.text.lineMatrix
}

// trm returns the text rendering matrix: Tfs*Th scaling and rise, times
// Tm, times the CTM (9.4.4).
func (ip *Interpreter) trm() model.Matrix {
	ts := &ip.gs.text
	scaling := model.Matrix{ts.size * ts.scale, 0, 0, ts.size, 0, ts.rise}
	return scaling.Multiply(ts.matrix).Multiply(ip.gs.ctm)
}

func (ip *Interpreter) showText(s string) {
	if ip.gs.text.font == nil {
		ip.warnf("text-showing operator with no font selected")
		return
	}
	ts := &ip.gs.text
	txt := Text{Font: ts.font, Size: ts.size, Matrix: ip.trm(), RenderMode: ts.renderMode, Runes: []rune(s)}

	switch ts.renderMode {
	case 3: // invisible
		ip.dev.IgnoreText(txt, ip.gs.ctm)
	case 7: // clip only, nothing painted
	default:
		fillModes := ts.renderMode == 0 || ts.renderMode == 2 || ts.renderMode == 4 || ts.renderMode == 6
		strokeModes := ts.renderMode == 1 || ts.renderMode == 2 || ts.renderMode == 5 || ts.renderMode == 6
		if fillModes && strokeModes {
			ip.dev.FillText(txt, ip.gs.ctm, ip.gs.fillPaint, ip.gs.fillAlpha)
			ip.dev.StrokeText(txt, ip.gs.stroke, ip.gs.ctm, ip.gs.strokePaint, ip.gs.strokeAlpha)
		} else if fillModes {
			ip.dev.FillText(txt, ip.gs.ctm, ip.gs.fillPaint, ip.gs.fillAlpha)
		} else if strokeModes {
			ip.dev.StrokeText(txt, ip.gs.stroke, ip.gs.ctm, ip.gs.strokePaint, ip.gs.strokeAlpha)
		}
	}
	if ts.renderMode >= 4 {
		ts.clipAccum = append(ts.clipAccum, txt)
	}

	// advance the text matrix: word spacing only applies to the single
	// byte value 32 in a simple (one-byte) encoding, per 9.3.3.
	var advance Fl
	for _, r := range s {
		w := glyphWidth0_1000(ts.font, byte(r)) / 1000 * ts.size
		advance += w + ts.charSpace
		if r == ' ' {
			advance += ts.wordSpace
		}
	}
	advance *= ts.scale
	ts.matrix = model.Matrix{1, 0, 0, 1, advance, 0}.Multiply(ts.matrix)
}

func (ip *Interpreter) flushTextClip() {
	ts := &ip.gs.text
	if len(ts.clipAccum) == 0 {
		return
	}
	for _, txt := range ts.clipAccum {
		switch txt.RenderMode {
		case 4:
			ip.dev.ClipText(txt, ip.gs.ctm)
			ip.gs.clipDepth++
		case 5:
			ip.dev.ClipStrokeText(txt, ip.gs.stroke, ip.gs.ctm)
			ip.gs.clipDepth++
		case 6:
			ip.dev.ClipText(txt, ip.gs.ctm)
			ip.dev.ClipStrokeText(txt, ip.gs.stroke, ip.gs.ctm)
			ip.gs.clipDepth += 2
		case 7:
			ip.dev.ClipText(txt, ip.gs.ctm)
			ip.gs.clipDepth++
		}
	}
	ts.clipAccum = nil
}

func (ip *Interpreter) resolveColorSpace(res model.ResourcesDict, name model.Name) model.ColorSpace {
	switch cs := model.ColorSpaceName(name); cs {
	case model.ColorSpaceGray, model.ColorSpaceRGB, model.ColorSpaceCMYK, model.ColorSpacePattern:
		return cs
	}
	if csp, ok := res.ColorSpace[name]; ok {
		return csp
	}
	ip.warnf("cs/CS: unknown color space resource %q, defaulting to DeviceGray", name)
	return model.ColorSpaceName(model.ColorSpaceGray)
}

func (ip *Interpreter) resolvePaint(res model.ResourcesDict, curCS model.ColorSpace, components []Fl, patternName model.Name) Paint {
	if patternName == "" {
		return Paint{ColorSpace: curCS, Components: components}
	}
	pat, ok := res.Pattern[patternName]
	if !ok {
		ip.warnf("scn/SCN: unknown pattern resource %q", patternName)
		return Paint{ColorSpace: curCS, Components: components}
	}
	return Paint{ColorSpace: curCS, Components: components, Pattern: pat}
}

func defaultComponents(cs model.ColorSpace) []Fl {
	if n, ok := cs.(interface{ NbColorComponents() int }); ok {
		return make([]Fl, n.NbColorComponents())
	}
	return []Fl{0}
}

func (ip *Interpreter) applyExtGState(res model.ResourcesDict, name model.Name) error {
	gs, ok := res.ExtGState[name]
	if !ok {
		return fmt.Errorf("gs: unknown ExtGState resource %q", name)
	}
	if gs.LW != 0 {
		ip.gs.stroke.LineWidth = gs.LW
	}
	if gs.LC != nil {
		ip.gs.stroke.LineCap = int(gs.LC.(model.ObjInt))
	}
	if gs.LJ != nil {
		ip.gs.stroke.LineJoin = int(gs.LJ.(model.ObjInt))
	}
	if gs.ML != 0 {
		ip.gs.stroke.MiterLimit = gs.ML
	}
	if len(gs.D.Array) != 0 {
		ip.gs.stroke.Dash = gs.D.Clone()
	}
	if gs.Font.Font != nil {
		ip.gs.text.font = gs.Font.Font
		ip.gs.text.size = gs.Font.Size
	}
	if len(gs.BM) != 0 {
		ip.gs.blendMode = gs.BM[0]
	}
	if gs.SMask.S != "" {
		ip.gs.softMask = gs.SMask
	}
	if gs.CA != nil {
		ip.gs.strokeAlpha = Fl(gs.CA.(model.ObjFloat))
	}
	if gs.Ca != nil {
		ip.gs.fillAlpha = Fl(gs.Ca.(model.ObjFloat))
	}
	return nil
}
