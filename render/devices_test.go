package render

import (
	"reflect"
	"testing"

	"github.com/quillcore/pdfcore/model"
)

func rectPath() Path {
	var p Path
	p.Rectangle(0, 0, 10, 20)
	return p
}

func TestListDeviceRecordsInOrder(t *testing.T) {
	var d ListDevice
	d.BeginPage(model.Rectangle{Urx: 612, Ury: 792}, model.Identity)
	d.FillPath(rectPath(), false, model.Identity, Paint{}, 1)
	d.ClipPath(rectPath(), false, model.Identity)
	d.PopClip()
	d.EndPage()

	if len(d.Nodes) != 5 {
		t.Fatalf("expected 5 recorded nodes, got %d", len(d.Nodes))
	}
	wantOps := []opKind{opBeginPage, opFillPath, opClipPath, opPopClip, opEndPage}
	for i, op := range wantOps {
		if d.Nodes[i].Op != op {
			t.Errorf("node %d: got op %d, want %d", i, d.Nodes[i].Op, op)
		}
	}
}

func TestListDeviceDeterministic(t *testing.T) {
	run := func() []Node {
		var d ListDevice
		d.FillPath(rectPath(), true, model.Matrix{2, 0, 0, 2, 0, 0}, Paint{Components: []Fl{1, 0, 0}}, 0.5)
		d.StrokePath(rectPath(), StrokeState{LineWidth: 2}, model.Identity, Paint{}, 1)
		return d.Nodes
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("length differs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Errorf("node %d differs: %#v vs %#v", i, a[i], b[i])
		}
	}
}

func TestListDeviceReplayMatchesOriginal(t *testing.T) {
	var src ListDevice
	src.FillPath(rectPath(), false, model.Identity, Paint{}, 1)
	src.ClipPath(rectPath(), true, model.Identity)
	src.PopClip()

	var dst ListDevice
	src.Replay(&dst)

	if len(dst.Nodes) != len(src.Nodes) {
		t.Fatalf("replay produced %d nodes, want %d", len(dst.Nodes), len(src.Nodes))
	}
	for i := range src.Nodes {
		if !reflect.DeepEqual(src.Nodes[i], dst.Nodes[i]) {
			t.Errorf("node %d: replay diverged from original recording", i)
		}
	}
}

func TestListDeviceClipBalance(t *testing.T) {
	var d ListDevice
	d.ClipPath(rectPath(), false, model.Identity)
	d.ClipStrokePath(rectPath(), StrokeState{}, model.Identity)
	if got := d.ClipBalance(); got != 2 {
		t.Fatalf("expected unbalanced count 2 before popping, got %d", got)
	}
	d.PopClip()
	d.PopClip()
	if got := d.ClipBalance(); got != 0 {
		t.Fatalf("expected balanced clip count 0, got %d", got)
	}
}

func TestBBoxDeviceUnion(t *testing.T) {
	var d BBoxDevice
	d.FillPath(rectPath(), false, model.Identity, Paint{}, 1)
	d.StrokePath(Path{Subpaths: []Subpath{{{Op: SegMoveTo, X: -5, Y: -5}, {Op: SegLineTo, X: 30, Y: 30}}}}, StrokeState{}, model.Identity, Paint{}, 1)

	want := model.Rectangle{Llx: -5, Lly: -5, Urx: 30, Ury: 30}
	if d.Bounds != want {
		t.Fatalf("got bounds %#v, want %#v", d.Bounds, want)
	}
}

func TestTextDeviceCollectsOnlyText(t *testing.T) {
	var d TextDevice
	d.FillPath(rectPath(), false, model.Identity, Paint{}, 1) // ignored
	d.FillText(Text{Runes: []rune("Hi")}, model.Identity, Paint{}, 1)
	d.IgnoreText(Text{Runes: []rune("invisible")}, model.Identity)
	d.ClipText(Text{Runes: []rune(" there")}, model.Identity)

	if got, want := d.String(), "Hi there"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
