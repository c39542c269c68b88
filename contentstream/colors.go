package contentstream

import "image/color"

// colorComponents converts a Go color into the component list the
// color-setting operators expect, choosing the device color space with
// the most direct representation: one component for grays, four for
// CMYK, three otherwise.
func colorComponents(col color.Color) []Fl {
	switch col := col.(type) {
	case color.Gray:
		return []Fl{Fl(col.Y) / 255}
	case color.Gray16:
		return []Fl{Fl(col.Y) / 0xFFFF}
	case color.RGBA:
		return []Fl{Fl(col.R) / Fl(col.A), Fl(col.G) / Fl(col.A), Fl(col.B) / Fl(col.A)}
	case color.RGBA64:
		return []Fl{Fl(col.R) / Fl(col.A), Fl(col.G) / Fl(col.A), Fl(col.B) / Fl(col.A)}
	case color.NRGBA:
		return []Fl{Fl(col.R) / 255, Fl(col.G) / 255, Fl(col.B) / 255}
	case color.NRGBA64:
		return []Fl{Fl(col.R) / 0xFFFF, Fl(col.G) / 0xFFFF, Fl(col.B) / 0xFFFF}
	case color.CMYK:
		return []Fl{Fl(col.C) / 255, Fl(col.M) / 255, Fl(col.Y) / 255, Fl(col.K) / 255}
	default:
		// fall back to the alpha-premultiplied interface method
		r, g, b := colorRGB(col)
		return []Fl{r, g, b}
	}
}

func colorRGB(c color.Color) (r, g, b Fl) {
	if c == nil {
		return 0, 0, 0
	}
	cr, cg, cb, ca := c.RGBA()
	unmultiply := func(ch uint32) Fl {
		if ch > ca {
			return 1
		}
		return Fl(ch) / Fl(ca)
	}
	return unmultiply(cr), unmultiply(cg), unmultiply(cb)
}
