package render

import "github.com/quillcore/pdfcore/model"

// textState groups the parameters set between BT/ET by Tc, Tw, Tz, TL,
// Tf, Tr, Ts and the positioning operators.
type textState struct {
	charSpace  Fl
	wordSpace  Fl
	scale      Fl // horizontal scaling, Tz, as a fraction (100 -> 1.0)
	leading    Fl
	font       *model.FontDict
	fontName   model.Name
	size       Fl
	renderMode int
	rise       Fl
	lineMatrix model.Matrix // Tlm
	matrix     model.Matrix // Tm, the text matrix combined with Tlm at each glyph
	clipAccum  []Text       // glyphs queued for clipping modes 4..7, flushed at ET
}

// gstate is one frame of the q/Q stack.
type gstate struct {
	ctm model.Matrix

	strokeCS    model.ColorSpace
	fillCS      model.ColorSpace
	strokePaint Paint
	fillPaint   Paint

	stroke StrokeState

	blendMode   model.Name
	strokeAlpha Fl
	fillAlpha   Fl
	softMask    model.SoftMaskDict

	clipDepth int // number of clip-* calls issued while this frame was live, not yet popped

	text textState
}

func newGState() gstate {
	return gstate{
		ctm:         model.Identity,
		strokeCS:    model.ColorSpaceName(model.ColorSpaceGray),
		fillCS:      model.ColorSpaceName(model.ColorSpaceGray),
		strokePaint: Paint{ColorSpace: model.ColorSpaceName(model.ColorSpaceGray), Components: []Fl{0}},
		fillPaint:   Paint{ColorSpace: model.ColorSpaceName(model.ColorSpaceGray), Components: []Fl{0}},
		stroke:      StrokeState{LineWidth: 1, MiterLimit: 10},
		strokeAlpha: 1,
		fillAlpha:   1,
		text:        textState{scale: 1},
	}
}

func (g gstate) clone() gstate {
	out := g
	out.stroke.Dash.Array = append([]Fl(nil), g.stroke.Dash.Array...)
	out.strokePaint.Components = append([]Fl(nil), g.strokePaint.Components...)
	out.fillPaint.Components = append([]Fl(nil), g.fillPaint.Components...)
	out.clipDepth = 0 // each frame tracks only clips introduced while it is current
	out.text.clipAccum = nil
	return out
}
