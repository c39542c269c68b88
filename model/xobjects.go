package model

import (
	"fmt"
	"strings"
)

// XObject is either *XObjectForm or *XObjectImage (8.8, "External Objects").
// *XObjectTransparencyGroup also satisfies it through its embedded XObjectForm.
type XObject interface {
	Referenceable
	isXObject()
}

func (*XObjectForm) isXObject()  {}
func (*XObjectImage) isXObject() {}

// XObjectForm is a self-contained content stream painted with its own
// coordinate system and resources (8.10).
type XObjectForm struct {
	ContentStream

	BBox      Rectangle
	Matrix    Matrix // optional, default to identity
	Resources ResourcesDict
}

func (f *XObjectForm) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	b.line("<<")
	b.line("/Type /XObject /Subtype /Form")
	b.line("/BBox %s", f.BBox.String())
	if f.Matrix != (Matrix{}) && f.Matrix != Identity {
		b.line("/Matrix %s", f.Matrix.String())
	}
	b.line("/Resources %s", f.Resources.pdfString(pdf, ref))
	writeFilterFields(b, f.Filter)
	b.fmt(">>")
	return b.String(), f.Content
}

func (f *XObjectForm) clone(cache cloneCache) Referenceable {
	if f == nil {
		return f
	}
	out := *f
	out.ContentStream = f.ContentStream.Clone()
	out.Resources = f.Resources.clone(cache)
	return &out
}

// XObjectTransparencyGroup is a Form XObject carrying a /Group entry
// describing it as a transparency group (11.6.6).
type XObjectTransparencyGroup struct {
	XObjectForm

	CS ColorSpace // optional
	I  bool       // isolated
	K  bool       // knockout
}

func (g *XObjectTransparencyGroup) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	b.line("<<")
	b.line("/Type /XObject /Subtype /Form")
	b.line("/BBox %s", g.BBox.String())
	if g.Matrix != (Matrix{}) && g.Matrix != Identity {
		b.line("/Matrix %s", g.Matrix.String())
	}
	b.line("/Resources %s", g.Resources.pdfString(pdf, ref))
	group := newBuffer()
	group.fmt("<</Type /Group /S /Transparency")
	if g.CS != nil {
		group.fmt(" /CS %s", writeColorSpace(g.CS, pdf))
	}
	group.fmt(" /I %v /K %v>>", g.I, g.K)
	b.line("/Group %s", group.String())
	writeFilterFields(b, g.Filter)
	b.fmt(">>")
	return b.String(), g.Content
}

func (g *XObjectTransparencyGroup) clone(cache cloneCache) Referenceable {
	if g == nil {
		return g
	}
	out := *g
	cloned := g.XObjectForm.clone(cache).(*XObjectForm)
	out.XObjectForm = *cloned
	out.CS = cloneColorSpace(g.CS, cache)
	return &out
}

// ImageMask is the value of an Image's Mask entry: either a stencil mask
// (another image, used as a 1-bit mask) or a color-key range.
type ImageMask interface {
	isImageMask()
}

func (MaskColor) isImageMask()     {}
func (*XObjectImage) isImageMask() {}

// MaskColor defines a range, for each color component, of color values
// that shall be masked out (7.6.5).
type MaskColor [][2]int

func (m MaskColor) clone() MaskColor { return append(MaskColor(nil), m...) }

// writeImageFields writes the entries shared by XObjectImage and
// ImageSMask (7.8.5, 11.6.5.3).
func (img Image) writeImageFields(b buffer, pdf pdfWriter) {
	b.line("/Width %d /Height %d", img.Width, img.Height)
	if !img.ImageMask {
		b.line("/ColorSpace %s", writeColorSpace(img.ColorSpace, pdf))
		b.line("/BitsPerComponent %d", img.BitsPerComponent)
	} else {
		b.line("/ImageMask true")
	}
	if img.Intent != "" {
		b.line("/Intent %s", img.Intent)
	}
	switch m := img.Mask.(type) {
	case MaskColor:
		ranges := make([]Range, len(m))
		for i, r := range m {
			ranges[i] = Range{Fl(r[0]), Fl(r[1])}
		}
		b.line("/Mask %s", writeRangeArray(ranges))
	case *XObjectImage:
		if m != nil {
			b.line("/Mask %s", pdf.addItem(m))
		}
	}
	if len(img.Decode) != 0 {
		b.line("/Decode %s", writeRangeArrayF(img.Decode))
	}
	if img.Interpolate {
		b.line("/Interpolate true")
	}
	writeFilterFields(b, img.Filter)
}

// PDFFields returns the image entries as inline text. With `inline`,
// the abbreviated key forms used between BI and ID are emitted (8.9.7,
// Table 93); the color space is not included either way, since inline
// images resolve it against the content stream's resources.
func (img Image) PDFFields(inline bool) string {
	key := func(short, long string) string {
		if inline {
			return short
		}
		return long
	}
	b := newBuffer()
	b.fmt("%s %d %s %d", key("/W", "/Width"), img.Width, key("/H", "/Height"), img.Height)
	if img.ImageMask {
		b.fmt(" %s true", key("/IM", "/ImageMask"))
	} else if img.BitsPerComponent != 0 {
		b.fmt(" %s %d", key("/BPC", "/BitsPerComponent"), img.BitsPerComponent)
	}
	if len(img.Decode) != 0 {
		b.fmt(" %s [", key("/D", "/Decode"))
		for _, r := range img.Decode {
			b.fmt("%s %s ", FmtFloat(r[0]), FmtFloat(r[1]))
		}
		b.fmt("]")
	}
	if img.Interpolate {
		b.fmt(" %s true", key("/I", "/Interpolate"))
	}
	if len(img.Filter) != 0 {
		names := make([]Name, len(img.Filter))
		hasParams := false
		for i, f := range img.Filter {
			names[i] = f.Name
			if len(f.DecodeParms) != 0 {
				hasParams = true
			}
		}
		b.fmt(" %s %s", key("/F", "/Filter"), writeNameArray(names))
		if hasParams {
			b.fmt(" %s [", key("/DP", "/DecodeParms"))
			for _, f := range img.Filter {
				if len(f.DecodeParms) == 0 {
					b.fmt("null ")
					continue
				}
				b.fmt("<<")
				for k, v := range f.DecodeParms {
					b.fmt("/%s %d ", k, v)
				}
				b.fmt(">> ")
			}
			b.fmt("]")
		}
	}
	return b.String()
}

// Image groups the fields common to XObjectImage and ImageSMask.
type Image struct {
	Stream

	Width, Height    int
	ColorSpace       ColorSpace // absent for an ImageMask
	BitsPerComponent uint8
	Intent           Name // optional
	ImageMask        bool
	Mask             ImageMask // optional
	Decode           [][2]Fl   // optional
	Interpolate      bool
}

func (img Image) clone(cache cloneCache) Image {
	out := img
	out.Stream = img.Stream.Clone()
	out.ColorSpace = cloneColorSpace(img.ColorSpace, cache)
	out.Decode = append([][2]Fl(nil), img.Decode...)
	switch m := img.Mask.(type) {
	case MaskColor:
		out.Mask = m.clone()
	case *XObjectImage:
		out.Mask = cache.checkOrClone(m).(*XObjectImage)
	}
	return out
}

// AlternateImage is one entry of an image's Alternates array (8.9.5.4).
type AlternateImage struct {
	Image              *XObjectImage
	DefaultForPrinting bool
}

// XObjectImage is a sampled image XObject (8.9.5).
type XObjectImage struct {
	Image

	SMask       *ImageSMask
	SMaskInData uint8 // optional, for JPX encoded images
	Alternates  []AlternateImage
}

func (img *XObjectImage) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	b.line("<<")
	b.line("/Type /XObject /Subtype /Image")
	img.Image.writeImageFields(b, pdf)
	if img.SMask != nil {
		b.line("/SMask %s", pdf.addItem(img.SMask))
	}
	if img.SMaskInData != 0 {
		b.line("/SMaskInData %d", img.SMaskInData)
	}
	if len(img.Alternates) != 0 {
		parts := make([]string, len(img.Alternates))
		for i, alt := range img.Alternates {
			parts[i] = fmt.Sprintf("<</Image %s /DefaultForPrinting %v>>", pdf.addItem(alt.Image), alt.DefaultForPrinting)
		}
		b.line("/Alternates [%s]", strings.Join(parts, " "))
	}
	b.fmt(">>")
	return b.String(), img.Content
}

func (img *XObjectImage) clone(cache cloneCache) Referenceable {
	if img == nil {
		return img
	}
	out := *img
	out.Image = img.Image.clone(cache)
	if img.SMask != nil {
		out.SMask = cache.checkOrClone(img.SMask).(*ImageSMask)
	}
	out.Alternates = make([]AlternateImage, len(img.Alternates))
	for i, alt := range img.Alternates {
		out.Alternates[i] = alt
		if alt.Image != nil {
			out.Alternates[i].Image = cache.checkOrClone(alt.Image).(*XObjectImage)
		}
	}
	return &out
}

// ImageSMask is a soft-mask image, referenced from an XObjectImage's SMask
// entry; it may not itself carry a soft mask (7.6.5.2).
type ImageSMask struct {
	Image

	Matte []Fl // optional
}

func (s *ImageSMask) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	b.line("<<")
	b.line("/Type /XObject /Subtype /Image")
	s.Image.writeImageFields(b, pdf)
	if len(s.Matte) != 0 {
		b.line("/Matte %s", writeFloatArray(s.Matte))
	}
	b.fmt(">>")
	return b.String(), s.Content
}

func (s *ImageSMask) clone(cache cloneCache) Referenceable {
	if s == nil {
		return s
	}
	out := *s
	out.Image = s.Image.clone(cache)
	out.Matte = append([]Fl(nil), s.Matte...)
	return &out
}
