package render

import (
	"fmt"

	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/parser"
)

// PageAttrs are the inheritable page attributes, materialized by
// walking the page's parent chain (7.7.3.4): the nearest defined value
// wins, CropBox defaults to MediaBox, and MediaBox itself defaults to
// US Letter when no node defines one.
type PageAttrs struct {
	MediaBox  model.Rectangle
	CropBox   model.Rectangle
	Rotate    int // degrees, a multiple of 90
	Resources model.ResourcesDict
}

// ResolvePageAttrs flattens the inherited attributes of page into a
// transient view; neither the page nor its ancestors are modified.
func ResolvePageAttrs(page *model.PageObject) PageAttrs {
	out := PageAttrs{MediaBox: model.Rectangle{Urx: 612, Ury: 792}}

	mediaBox := page.MediaBox
	cropBox := page.CropBox
	rotate := page.Rotate
	resources := page.Resources
	for tree := page.Parent; tree != nil; tree = tree.Parent {
		if mediaBox == nil {
			mediaBox = tree.MediaBox
		}
		if cropBox == nil {
			cropBox = tree.CropBox
		}
		if rotate == nil {
			rotate = tree.Rotate
		}
		if resources == nil {
			resources = tree.Resources
		}
	}

	if mediaBox != nil {
		out.MediaBox = *mediaBox
	}
	out.CropBox = out.MediaBox
	if cropBox != nil {
		out.CropBox = *cropBox
	}
	if rotate != nil {
		out.Rotate = rotate.Degrees()
	}
	if resources != nil {
		out.Resources = *resources
	}
	return out
}

// PageTransform returns the matrix mapping the page's user space into
// device space: scaled to dpi, y-inverted so the device origin is the
// top-left corner, rotated by the page's /Rotate, and translated so
// the rotated box sits at the origin.
func PageTransform(box model.Rectangle, rotate int, dpi Fl) model.Matrix {
	s := dpi / 72
	m := model.Matrix{s, 0, 0, -s, 0, 0}
	switch ((rotate % 360) + 360) % 360 {
	case 90:
		m = m.Multiply(model.Matrix{0, 1, -1, 0, 0, 0})
	case 180:
		m = m.Multiply(model.Matrix{-1, 0, 0, -1, 0, 0})
	case 270:
		m = m.Multiply(model.Matrix{0, -1, 1, 0, 0, 0})
	}

	// translate the transformed box back to the origin
	corners := [4][2]Fl{
		{box.Llx, box.Lly}, {box.Urx, box.Lly},
		{box.Llx, box.Ury}, {box.Urx, box.Ury},
	}
	var minX, minY Fl
	for i, c := range corners {
		x, y := m.Apply(c[0], c[1])
		if i == 0 || x < minX {
			minX = x
		}
		if i == 0 || y < minY {
			minY = y
		}
	}
	m[4] -= minX
	m[5] -= minY
	return m
}

// RenderPage interprets the page's content streams against dev at the
// given resolution. The device is bracketed with BeginPage/EndPage;
// cookie may be nil, or used to abort the run from another goroutine.
// Content-stream errors are recovered per operator (reported through
// warn and the cookie); only failures preventing the run entirely,
// such as an undecodable content stream, are returned.
func RenderPage(page *model.PageObject, dev Device, dpi Fl, warn func(string), cookie *Cookie) error {
	attrs := ResolvePageAttrs(page)
	ctm := PageTransform(attrs.CropBox, attrs.Rotate, dpi)

	var content []byte
	for _, stream := range page.Contents {
		decoded, err := stream.Decoded()
		if err != nil {
			return fmt.Errorf("can't decode page content: %w", err)
		}
		content = append(content, decoded...)
		content = append(content, '\n')
	}

	ops, err := parser.ParseContent(content, model.ResourcesColorSpace(attrs.Resources.ColorSpace))
	if err != nil {
		return fmt.Errorf("invalid page content stream: %w", err)
	}

	ip := NewInterpreter(dev, warn)
	dev.BeginPage(attrs.MediaBox, ctm)
	err = ip.Run(ops, attrs.Resources, ctm, cookie)
	ip.Finish()
	dev.EndPage()
	return err
}
