package model

// PDFDocEncoding (PDF 32000-1, Annex D.2) is a single-byte encoding used
// for text strings that are not UTF-16BE. It agrees with Latin-1 on the
// printable ASCII and Latin-1 supplement ranges, and reassigns the two
// blocks that Latin-1 leaves as C0/C1 controls to a set of typographic
// characters (smart quotes, dashes, ligatures, accents...).
var pdfDocByteToRune = [256]rune{
	0x18: '˘', 0x19: 'ˇ', 0x1A: 'ˆ', 0x1B: '˙', 0x1C: '˝', 0x1D: '˛', 0x1E: '˚', 0x1F: '˜',

	0x80: '•', 0x81: '†', 0x82: '‡', 0x83: '…', 0x84: '—', 0x85: '–', 0x86: 'ƒ', 0x87: '⁄',
	0x88: '‹', 0x89: '›', 0x8A: '−', 0x8B: '‰', 0x8C: '„', 0x8D: '“', 0x8E: '”', 0x8F: '‘',
	0x90: '’', 0x91: '‚', 0x92: '™', 0x93: 'ﬁ', 0x94: 'ﬂ', 0x95: 'Ł', 0x96: 'Œ', 0x97: 'Š',
	0x98: 'Ÿ', 0x99: 'Ž', 0x9A: 'ı', 0x9B: 'ł', 0x9C: 'œ', 0x9D: 'š', 0x9E: 'ž',

	0xA0: '€',
}

var pdfDocNames = [256]string{
	0x18: "breve", 0x19: "caron", 0x1A: "circumflex", 0x1B: "dotaccent",
	0x1C: "hungarumlaut", 0x1D: "ogonek", 0x1E: "ring", 0x1F: "tilde",

	0x80: "bullet", 0x81: "dagger", 0x82: "daggerdbl", 0x83: "ellipsis",
	0x84: "emdash", 0x85: "endash", 0x86: "florin", 0x87: "fraction",
	0x88: "guilsinglleft", 0x89: "guilsinglright", 0x8A: "minus", 0x8B: "perthousand",
	0x8C: "quotedblbase", 0x8D: "quotedblleft", 0x8E: "quotedblright", 0x8F: "quoteleft",
	0x90: "quoteright", 0x91: "quotesinglbase", 0x92: "trademark", 0x93: "fi",
	0x94: "fl", 0x95: "Lslash", 0x96: "OE", 0x97: "Scaron",
	0x98: "Ydieresis", 0x99: "Zcaron", 0x9A: "dotlessi", 0x9B: "lslash",
	0x9C: "oe", 0x9D: "scaron", 0x9E: "zcaron",

	0xA0: "Euro",
}

// PdfDocNames gives, for each byte of the PDFDocEncoding, its Adobe glyph
// name for the bytes listed in pdfDocNames, and the decoded character
// itself for the other assigned bytes; it is exposed for simple fonts
// built on top of this encoding.
var PdfDocNames [256]string

// PdfDocRunes is the PDFDocEncoding, mapping each encoded rune to its byte.
var PdfDocRunes map[rune]byte

func init() {
	PdfDocRunes = make(map[rune]byte, 256)
	for b := 0; b < 256; b++ {
		r := pdfDocByteToRune[b]
		if r == 0 && b >= 0x20 && b <= 0x7E { // ASCII block, identity mapping
			r = rune(b)
		} else if r == 0 && b >= 0xA1 { // remainder agrees with Latin-1
			r = rune(b)
		}
		pdfDocByteToRune[b] = r

		name := pdfDocNames[b]
		if name == "" && r != 0 {
			name = string(r)
		}
		PdfDocNames[b] = name

		if r != 0 {
			PdfDocRunes[r] = byte(b)
		}
	}
}

// PdfDocEncodingToString decodes `b`, assumed to be PDFDocEncoded, to the
// equivalent UTF-8 string. Bytes with no assigned meaning are dropped.
func PdfDocEncodingToString(b []byte) string {
	out := make([]rune, 0, len(b))
	for _, by := range b {
		if r := pdfDocByteToRune[by]; r != 0 {
			out = append(out, r)
		}
	}
	return string(out)
}

// stringToPDFDocEncoding attempts to encode `s` using PDFDocEncoding,
// returning ok = false as soon as a rune has no representation, in which
// case callers should fall back to UTF-16BE.
func stringToPDFDocEncoding(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := PdfDocRunes[r]
		if !ok {
			return nil, false
		}
		out = append(out, b)
	}
	return out, true
}
