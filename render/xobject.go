package render

import (
	"fmt"

	cs "github.com/quillcore/pdfcore/contentstream"
	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/parser"
)

// doXObject handles the Do operator: a Form XObject is interpreted
// recursively against its own resources, an Image XObject is handed to
// the device.
func (ip *Interpreter) doXObject(res model.ResourcesDict, name model.Name, cookie *Cookie) error {
	xo, ok := res.XObject[name]
	if !ok {
		return fmt.Errorf("unknown XObject resource %q", name)
	}
	switch xo := xo.(type) {
	case *model.XObjectImage:
		ip.drawImage(xo)
		return nil
	case *model.XObjectTransparencyGroup:
		return ip.runForm(&xo.XObjectForm, res, xo, cookie)
	case *model.XObjectForm:
		return ip.runForm(xo, res, nil, cookie)
	default:
		return fmt.Errorf("unsupported XObject type %T", xo)
	}
}

// runForm interprets a Form XObject: a gstate frame is pushed, the
// form matrix is concatenated, the content is clipped to the form's
// BBox, and the nested content stream runs with the form's resources
// (falling back to the caller's when the form carries none). For a
// transparency group, the device additionally brackets the content
// with BeginGroup/EndGroup.
func (ip *Interpreter) runForm(form *model.XObjectForm, caller model.ResourcesDict, group *model.XObjectTransparencyGroup, cookie *Cookie) error {
	if ip.formDepth >= maxFormDepth {
		return fmt.Errorf("form XObject nesting deeper than %d", maxFormDepth)
	}

	content, err := form.Decoded()
	if err != nil {
		return fmt.Errorf("can't decode form content: %w", err)
	}

	sub := form.Resources
	if resourcesEmpty(sub) {
		sub = caller
	}

	ops, err := parser.ParseContent(content, model.ResourcesColorSpace(sub.ColorSpace))
	if err != nil {
		return fmt.Errorf("invalid form content stream: %w", err)
	}

	// the equivalent of q, scoped to the form invocation
	saved := ip.gs
	savedPath := ip.path
	savedClip := ip.pendingClip
	ip.gs = ip.gs.clone()
	ip.path = Path{}
	ip.pendingClip = clipNone

	if form.Matrix != (model.Matrix{}) && form.Matrix != model.Identity {
		ip.gs.ctm = form.Matrix.Multiply(ip.gs.ctm)
	}

	var bboxPath Path
	bboxPath.Rectangle(form.BBox.Llx, form.BBox.Lly,
		form.BBox.Urx-form.BBox.Llx, form.BBox.Ury-form.BBox.Lly)
	ip.dev.ClipPath(bboxPath, false, ip.gs.ctm)
	ip.gs.clipDepth++

	if group != nil {
		ip.dev.BeginGroup(form.BBox, group.I, group.K, ip.gs.blendMode, ip.gs.fillAlpha)
	}

	ip.formDepth++
	ip.runOps(ops, sub, cookie)
	ip.formDepth--

	if group != nil {
		ip.dev.EndGroup()
	}

	// the equivalent of Q
	for i := 0; i < ip.gs.clipDepth; i++ {
		ip.dev.PopClip()
	}
	ip.gs = saved
	ip.path = savedPath
	ip.pendingClip = savedClip
	return nil
}

func resourcesEmpty(r model.ResourcesDict) bool {
	return len(r.ExtGState) == 0 && len(r.ColorSpace) == 0 && len(r.Shading) == 0 &&
		len(r.Pattern) == 0 && len(r.Font) == 0 && len(r.XObject) == 0 && len(r.Properties) == 0
}

// drawImage hands an image XObject to the device: a stencil mask is
// painted with the current fill paint, a regular image with its own
// samples.
func (ip *Interpreter) drawImage(img *model.XObjectImage) {
	if img.ImageMask {
		ip.dev.FillImageMask(img, ip.gs.ctm, ip.gs.fillPaint, ip.gs.fillAlpha)
	} else {
		ip.dev.FillImage(img, ip.gs.ctm, ip.gs.fillAlpha)
	}
}

// drawInlineImage materializes a BI/ID/EI image as an image XObject
// and draws it like Do would: the only difference between the two
// forms is the abbreviated syntax and the color-space lookup against
// the content stream's resources.
func (ip *Interpreter) drawInlineImage(o cs.OpBeginImage, res model.ResourcesDict) error {
	img := &model.XObjectImage{Image: o.Image}
	if !img.ImageMask {
		colorSpace, err := inlineColorSpace(o.ColorSpace, res)
		if err != nil {
			return err
		}
		img.ColorSpace = colorSpace
	}
	ip.drawImage(img)
	return nil
}

func inlineColorSpace(ics cs.ImageColorSpace, res model.ResourcesDict) (model.ColorSpace, error) {
	switch ics := ics.(type) {
	case cs.ImageColorSpaceName:
		name := model.Name(ics.ColorSpaceName)
		switch ics.ColorSpaceName {
		case model.ColorSpaceGray, model.ColorSpaceRGB, model.ColorSpaceCMYK:
			return ics.ColorSpaceName, nil
		}
		if resolved, ok := res.ColorSpace[name]; ok {
			return resolved, nil
		}
		return nil, fmt.Errorf("unknown inline image color space %q", name)
	case cs.ImageColorSpaceIndexed:
		return ics.ToColorSpace(), nil
	default:
		return nil, fmt.Errorf("missing inline image color space")
	}
}
