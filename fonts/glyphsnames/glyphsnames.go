// Package glyphsnames resolves PostScript glyph names (as found in a
// font's Differences array) to their Unicode codepoint.
//
// A full Adobe Glyph List has thousands of entries; since glyph
// rasterization itself is out of scope here, only the two
// machine-generated naming conventions and a handful of very common
// named glyphs are covered. Anything else falls back to "not found",
// which callers already handle by skipping the mapping.
package glyphsnames

import "strconv"

// common holds the small subset of the Adobe Glyph List that text
// extraction from real-world documents actually exercises.
var common = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"parenleft": '(', "parenright": ')', "asterisk": '*', "plus": '+',
	"comma": ',', "hyphen": '-', "period": '.', "slash": '/',
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
	"colon": ':', "semicolon": ';', "less": '<', "equal": '=', "greater": '>',
	"question": '?', "at": '@', "bracketleft": '[', "backslash": '\\',
	"bracketright": ']', "asciicircum": '^', "underscore": '_', "grave": '`',
	"braceleft": '{', "bar": '|', "braceright": '}', "asciitilde": '~',
	"quoteleft": '‘', "quoteright": '’', "quotedblleft": '“',
	"quotedblright": '”', "endash": '–', "emdash": '—',
	"bullet": '•', "ellipsis": '…', "fi": 'ﬁ', "fl": 'ﬂ',
	"dieresis": '¨', "copyright": '©', "registered": '®',
	"degree": '°', "Euro": '€', "trademark": '™',
}

// GlyphToRune resolves a glyph name, honoring both the small common
// table above and the "uniXXXX" / "uXXXX[XX]" hex-codepoint naming
// conventions from the Adobe Glyph List specification. ok is false
// when the name could not be resolved.
func GlyphToRune(name string) (r rune, ok bool) {
	if len(name) >= 7 && name[:3] == "uni" {
		if v, err := strconv.ParseUint(name[3:7], 16, 32); err == nil {
			return rune(v), true
		}
	}
	if len(name) >= 5 && len(name) <= 7 && name[0] == 'u' {
		if v, err := strconv.ParseUint(name[1:], 16, 32); err == nil {
			return rune(v), true
		}
	}
	if v, ok := common[name]; ok {
		return v, true
	}
	// strip a dotted variant suffix (e.g. "A.sc" -> "A")
	for i, c := range name {
		if c == '.' {
			return GlyphToRune(name[:i])
		}
	}
	return 0, false
}
