package render

import "github.com/quillcore/pdfcore/model"

// glyphWidth0_1000 returns the horizontal displacement of the glyph for
// byte code `code`, expressed in thousandths of text space units (glyph
// space), following 9.2.4. Composite (Type0) fonts are only approximated
// through their default width: resolving an individual CID's /W entry
// needs the CMap layer and is out of scope for this shallow resource
// model (see model.FontDict).
func glyphWidth0_1000(f *model.FontDict, code byte) Fl {
	if f == nil {
		return 0
	}
	switch sub := f.Subtype.(type) {
	case model.FontType1:
		return simpleWidth(sub.FirstChar, sub.LastChar, sub.Widths, sub.FontDescriptor.MissingWidth, code)
	case model.FontTrueType:
		return simpleWidth(sub.FirstChar, sub.LastChar, sub.Widths, sub.FontDescriptor.MissingWidth, code)
	case model.FontType3:
		missing := 0
		if sub.FontDescriptor != nil {
			missing = sub.FontDescriptor.MissingWidth
		}
		return simpleWidth(sub.FirstChar, sub.LastChar, sub.Widths, missing, code)
	case model.FontType0:
		dw := sub.DescendantFonts.DW
		if dw == 0 {
			dw = 1000
		}
		return Fl(dw)
	default:
		return 500
	}
}

func simpleWidth(first, last byte, widths []int, missing int, code byte) Fl {
	if code >= first && code <= last {
		idx := int(code) - int(first)
		if idx < len(widths) {
			return Fl(widths[idx])
		}
	}
	if missing != 0 {
		return Fl(missing)
	}
	return 500
}
