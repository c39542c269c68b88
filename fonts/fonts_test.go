package fonts

import (
	"fmt"
	"testing"

	"github.com/quillcore/pdfcore/fonts/standardfonts"
	"github.com/quillcore/pdfcore/fzctx"
	"github.com/quillcore/pdfcore/model"
)

func TestStandard(t *testing.T) {
	for name, builtin := range standardfonts.Fonts {
		f := builtin.WesternType1Font()
		font, err := BuildFont(&model.FontDict{Subtype: f})
		if err != nil {
			t.Fatalf("%s: %s", name, err)
		}
		fmt.Println(name, font.GetWidth('u', 12))
	}
}

func TestBuildFontCached(t *testing.T) {
	ctx := fzctx.New(1<<20, nil)
	dict := &model.FontDict{Subtype: standardfonts.Fonts["Helvetica"].WesternType1Font()}

	first, err := BuildFontCached(ctx, dict)
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Store.Len() != 1 {
		t.Fatalf("expected one cached font, got %d", ctx.Store.Len())
	}

	second, err := BuildFontCached(ctx, dict)
	if err != nil {
		t.Fatal(err)
	}
	if first.GetWidth('u', 12) != second.GetWidth('u', 12) {
		t.Fatalf("cached font diverged from freshly built one")
	}
	if ctx.Store.Len() != 1 {
		t.Fatalf("expected the second call to reuse the cached entry, got %d items", ctx.Store.Len())
	}

	// a nil Context must behave exactly like BuildFont.
	plain, err := BuildFontCached(nil, dict)
	if err != nil {
		t.Fatal(err)
	}
	if plain.GetWidth('u', 12) != first.GetWidth('u', 12) {
		t.Fatalf("nil-context BuildFontCached diverged from BuildFont")
	}
}
