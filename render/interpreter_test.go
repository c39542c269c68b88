package render

import (
	"reflect"
	"testing"

	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/parser"
)

func testFont() *model.FontDict {
	widths := make([]int, 95) // 32..126
	for i := range widths {
		widths[i] = 500
	}
	return &model.FontDict{Subtype: model.FontType1{
		BaseFont:  "Helvetica",
		FirstChar: 32,
		LastChar:  126,
		Widths:    widths,
	}}
}

func testResources() model.ResourcesDict {
	res := model.NewResourcesDict()
	res.Font["F1"] = testFont()
	return res
}

func TestInterpreterHelloWorld(t *testing.T) {
	content := "BT /F1 12 Tf 72 720 Td (Hi) Tj ET"
	ops, err := parser.ParseContent([]byte(content), nil)
	if err != nil {
		t.Fatal(err)
	}

	var text TextDevice
	ip := NewInterpreter(&text, nil)
	if err := ip.Run(ops, testResources(), model.Identity, nil); err != nil {
		t.Fatal(err)
	}
	if got := text.String(); got != "Hi" {
		t.Fatalf("extracted %q, want %q", got, "Hi")
	}
	if len(text.Runs) != 1 {
		t.Fatalf("expected a single glyph run, got %d", len(text.Runs))
	}
	run := text.Runs[0]
	if run.Size != 12 {
		t.Errorf("font size: got %v, want 12", run.Size)
	}
	// the run is positioned by Td through the text matrix
	if x, y := run.Matrix[4], run.Matrix[5]; x != 72 || y != 720 {
		t.Errorf("glyph origin: got (%v, %v), want (72, 720)", x, y)
	}
}

func TestInterpreterDeterministic(t *testing.T) {
	content := `q 1 0 0 1 10 10 cm 0 0 100 50 re f
0.5 g 20 20 m 80 20 l 80 60 l h S
BT /F1 10 Tf 5 5 Td (abc) Tj ET Q`

	run := func() []Node {
		ops, err := parser.ParseContent([]byte(content), nil)
		if err != nil {
			t.Fatal(err)
		}
		var list ListDevice
		ip := NewInterpreter(&list, nil)
		if err := ip.Run(ops, testResources(), model.Identity, nil); err != nil {
			t.Fatal(err)
		}
		return list.Nodes
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs of the same content stream diverged")
	}
}

func TestInterpreterClipBalance(t *testing.T) {
	// one clip inside a q/Q pair, one left unbalanced at the end
	content := `q 0 0 100 100 re W n Q
q 10 10 50 50 re W* n 0 0 20 20 re f`

	ops, err := parser.ParseContent([]byte(content), nil)
	if err != nil {
		t.Fatal(err)
	}
	var list ListDevice
	ip := NewInterpreter(&list, nil)
	if err := ip.Run(ops, testResources(), model.Identity, nil); err != nil {
		t.Fatal(err)
	}
	ip.Finish()
	if got := list.ClipBalance(); got != 0 {
		t.Fatalf("clip calls unbalanced after Finish: %d", got)
	}
}

func TestInterpreterRecoversFromMissingResource(t *testing.T) {
	// the font resource is absent: Tf is reported through the warning
	// sink and the cookie, and interpretation continues
	content := "0 0 10 10 re f BT /Missing 12 Tf ET 10 10 10 10 re f"
	ops, err := parser.ParseContent([]byte(content), nil)
	if err != nil {
		t.Fatal(err)
	}
	var warnings []string
	var list ListDevice
	ip := NewInterpreter(&list, func(msg string) { warnings = append(warnings, msg) })
	var cookie Cookie
	if err := ip.Run(ops, model.NewResourcesDict(), model.Identity, &cookie); err != nil {
		t.Fatal(err)
	}
	if len(list.Nodes) != 2 {
		t.Fatalf("expected both rectangles to be painted, got %d nodes", len(list.Nodes))
	}
	if cookie.Errors() == 0 {
		t.Error("expected the missing font to be recorded on the cookie")
	}
	if len(warnings) == 0 {
		t.Error("expected a warning for the missing font")
	}
}

func TestInterpreterAbort(t *testing.T) {
	content := "0 0 10 10 re f 0 0 10 10 re f 0 0 10 10 re f"
	ops, err := parser.ParseContent([]byte(content), nil)
	if err != nil {
		t.Fatal(err)
	}
	var cookie Cookie
	cookie.Abort()
	var list ListDevice
	ip := NewInterpreter(&list, nil)
	if err := ip.Run(ops, testResources(), model.Identity, &cookie); err != nil {
		t.Fatal(err)
	}
	if len(list.Nodes) != 0 {
		t.Fatalf("aborted run still produced %d nodes", len(list.Nodes))
	}
	if !cookie.Incomplete() {
		t.Error("aborted run should be marked incomplete")
	}
}

func TestInterpreterGStateRestore(t *testing.T) {
	content := "q 2 0 0 2 0 0 cm 1 0 0 rg Q 0 0 10 10 re f"
	ops, err := parser.ParseContent([]byte(content), nil)
	if err != nil {
		t.Fatal(err)
	}
	var list ListDevice
	ip := NewInterpreter(&list, nil)
	if err := ip.Run(ops, testResources(), model.Identity, nil); err != nil {
		t.Fatal(err)
	}
	if len(list.Nodes) != 1 {
		t.Fatalf("expected one fill, got %d nodes", len(list.Nodes))
	}
	n := list.Nodes[0]
	if n.CTM != model.Identity {
		t.Errorf("Q did not restore the CTM: %v", n.CTM)
	}
	if cs, ok := n.Paint.ColorSpace.(model.ColorSpaceName); !ok || cs != model.ColorSpaceGray {
		t.Errorf("Q did not restore the fill color space: %v", n.Paint.ColorSpace)
	}
}
