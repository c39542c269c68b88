package render

import (
	"testing"

	"github.com/quillcore/pdfcore/model"
)

func TestPageTransformLetter(t *testing.T) {
	box := model.Rectangle{Urx: 612, Ury: 792}
	m := PageTransform(box, 0, 72)

	if x, y := m.Apply(0, 792); x != 0 || y != 0 {
		t.Errorf("top-left corner maps to (%v, %v), want (0, 0)", x, y)
	}
	if x, y := m.Apply(612, 0); x != 612 || y != 792 {
		t.Errorf("bottom-right corner maps to (%v, %v), want (612, 792)", x, y)
	}
	// doubling the resolution doubles the device coordinates
	m2 := PageTransform(box, 0, 144)
	if x, y := m2.Apply(612, 0); x != 1224 || y != 1584 {
		t.Errorf("at 144 dpi: got (%v, %v), want (1224, 1584)", x, y)
	}
}

func TestPageTransformRotate(t *testing.T) {
	box := model.Rectangle{Urx: 612, Ury: 792}
	for _, rotate := range []int{0, 90, 180, 270, 360, -90} {
		m := PageTransform(box, rotate, 72)
		// whatever the rotation, the transformed box must sit at the
		// origin with positive extent
		minX, minY := Fl(0), Fl(0)
		maxX, maxY := Fl(0), Fl(0)
		corners := [4][2]Fl{{0, 0}, {612, 0}, {0, 792}, {612, 792}}
		for i, c := range corners {
			x, y := m.Apply(c[0], c[1])
			if i == 0 || x < minX {
				minX = x
			}
			if i == 0 || y < minY {
				minY = y
			}
			if i == 0 || x > maxX {
				maxX = x
			}
			if i == 0 || y > maxY {
				maxY = y
			}
		}
		if minX != 0 || minY != 0 {
			t.Errorf("rotate %d: box starts at (%v, %v), want origin", rotate, minX, minY)
		}
		w, h := maxX-minX, maxY-minY
		swapped := rotate == 90 || rotate == 270 || rotate == -90
		if swapped && (w != 792 || h != 612) {
			t.Errorf("rotate %d: got %vx%v, want 792x612", rotate, w, h)
		}
		if !swapped && (w != 612 || h != 792) {
			t.Errorf("rotate %d: got %vx%v, want 612x792", rotate, w, h)
		}
	}
}

func TestResolvePageAttrsInheritance(t *testing.T) {
	res := testResources()
	rotate := model.NewRotation(90)
	root := &model.PageTree{
		Resources: &res,
		MediaBox:  &model.Rectangle{Urx: 200, Ury: 400},
		Rotate:    &rotate,
	}
	page := &model.PageObject{Parent: root}
	root.Kids = []model.PageNode{page}

	attrs := ResolvePageAttrs(page)
	if attrs.MediaBox != (model.Rectangle{Urx: 200, Ury: 400}) {
		t.Errorf("MediaBox not inherited: %v", attrs.MediaBox)
	}
	if attrs.CropBox != attrs.MediaBox {
		t.Errorf("CropBox should default to MediaBox, got %v", attrs.CropBox)
	}
	if attrs.Rotate != 90 {
		t.Errorf("Rotate not inherited: %d", attrs.Rotate)
	}
	if _, ok := attrs.Resources.Font["F1"]; !ok {
		t.Error("Resources not inherited")
	}

	// page-level values override the inherited ones
	own := model.Rectangle{Urx: 100, Ury: 100}
	page.MediaBox = &own
	if attrs := ResolvePageAttrs(page); attrs.MediaBox != own {
		t.Errorf("page MediaBox should win, got %v", attrs.MediaBox)
	}
}

func TestRenderPage(t *testing.T) {
	res := testResources()
	page := &model.PageObject{
		Resources: &res,
		MediaBox:  &model.Rectangle{Urx: 612, Ury: 792},
		Contents: []model.ContentStream{{Stream: model.Stream{
			Content: []byte("BT /F1 12 Tf 72 720 Td (Hi) Tj ET 10 10 100 50 re f"),
		}}},
	}

	var list ListDevice
	if err := RenderPage(page, &list, 72, nil, nil); err != nil {
		t.Fatal(err)
	}
	if len(list.Nodes) == 0 {
		t.Fatal("no device calls recorded")
	}
	if list.Nodes[0].Op != opBeginPage {
		t.Error("missing BeginPage")
	}
	if list.Nodes[len(list.Nodes)-1].Op != opEndPage {
		t.Error("missing EndPage")
	}
	if got := list.ClipBalance(); got != 0 {
		t.Errorf("unbalanced clips: %d", got)
	}

	// replaying against a text device must surface the shown text
	var text TextDevice
	list.Replay(&text)
	if got := text.String(); got != "Hi" {
		t.Errorf("extracted %q, want %q", got, "Hi")
	}

	// the bbox device sees the filled rectangle in device space:
	// y is flipped, so the rect [10,10,110,60] lands at [10,732,110,782]
	var bbox BBoxDevice
	list.Replay(&bbox)
	want := model.Rectangle{Llx: 10, Lly: 732, Urx: 110, Ury: 782}
	if bbox.Bounds.Llx != want.Llx || bbox.Bounds.Urx != want.Urx {
		t.Errorf("got bounds %v, want %v", bbox.Bounds, want)
	}
}
