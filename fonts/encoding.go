package fonts

import (
	"log"

	"github.com/quillcore/pdfcore/fonts/cmaps"
	"github.com/quillcore/pdfcore/fonts/glyphsnames"
	"github.com/quillcore/pdfcore/fonts/simpleencodings"
	"github.com/quillcore/pdfcore/fonts/standardcmaps"
	"github.com/quillcore/pdfcore/model"
)

// Font program introspection (reading glyph tables out of an embedded
// Type1/TrueType/CFF file to recover its builtin encoding) is explicitly
// out of scope for this engine: glyph rendering is handled by an external
// rasterizer. Builtin-encoding lookups below always fall back to the
// standard tables; only the PDF-declared Encoding name and Differences
// array are honored.

// We follow here the logic from poppler, which itself is based on the PDF spec.
// Encodings start with a base encoding, which can come from
// (in order of priority):
//  1. FontDict.Encoding or FontDict.Encoding.BaseEncoding
//     - MacRoman / MacExpert / WinAnsi / Standard
//  2. embedded or external font file
//  3. default:
//     - builtin --> builtin encoding
//     - TrueType --> WinAnsiEncoding
//     - others --> StandardEncoding
//
// and then add a list of differences (if any) from
// FontDict.Encoding.Differences.
func ResolveSimpleEncoding(font model.FontSimple) [256]string {
	enc := font.EncodingValue()
	var baseEnc *simpleencodings.Encoding

	if predefEnc, ok := enc.(model.SimpleEncodingPredefined); ok {
		// the font dict overide the font builtin encoding
		baseEnc = simpleencodings.PredefinedEncodings[predefEnc]
	} else if encDict, ok := enc.(*model.SimpleEncodingDict); ok && encDict.BaseEncoding != "" {
		baseEnc = simpleencodings.PredefinedEncodings[encDict.BaseEncoding]
	} else {
		// use the builtin encoding (only for Type 1 fonts, see
		// builtinType1Encoding: the embedded font file is not read)
		if font, ok := font.(model.FontType1); ok {
			baseEnc = builtinType1Encoding(font.FontDescriptor)
		}
	}

	if baseEnc == nil { // get default base encoding
		switch font.(type) {
		case model.FontTrueType:
			baseEnc = &simpleencodings.WinAnsi
		default:
			baseEnc = &simpleencodings.Standard
		}
	}

	// merge differences into encoding
	if encDict, ok := enc.(*model.SimpleEncodingDict); ok {
		return encDict.Differences.Apply(baseEnc.Names)
	}
	return baseEnc.Names
}

// build the definitive font encoding, expressed in term
// of Unicode codepoint to byte
func resolveCharMapType1(t model.FontType1, userCharMap map[string]rune) map[rune]byte {
	if enc, ok := t.Encoding.(model.SimpleEncodingPredefined); ok {
		// the font dict overide the font builtin encoding
		return simpleencodings.PredefinedEncodings[enc].RuneToByte()
	}
	var (
		base  *simpleencodings.Encoding
		diffs model.Differences
	)

	if enc, ok := t.Encoding.(*model.SimpleEncodingDict); ok { // the font modifies an encoding
		// resolve the base encoding
		if enc.BaseEncoding != "" {
			base = simpleencodings.PredefinedEncodings[enc.BaseEncoding]
		} else { // fall back to the builtin encoding
			base = builtinType1Encoding(t.FontDescriptor)
		}
		diffs = enc.Differences
	} else { // the font use its builtin encoding (or Standard if none is found)
		base = builtinType1Encoding(t.FontDescriptor)
	}

	return applyDifferences(diffs, userCharMap, base)
}

func applyDifferences(diffs model.Differences, userCharMap map[string]rune, baseEnc *simpleencodings.Encoding) map[rune]byte {
	runeMap := baseEnc.NameToRune()
	// add an eventual user name mapping
	for name, r := range userCharMap {
		runeMap[name] = r
	}

	// add the potential difference
	withDiffs := diffs.Apply(baseEnc.Names)

	out := make(map[rune]byte)

	for by, name := range withDiffs {
		if name == "" {
			continue // not encoded
		}
		// resolve the rune from the name: first try with the
		// encoding names
		r := runeMap[name]
		if r == 0 {
			// try a global name registry
			r, _ = glyphsnames.GlyphToRune(name)
		}
		if r == 0 {
			log.Printf("font encoding: the name <%s> has no matching rune\n", name)
		} else {
			out[r] = byte(by)
		}
	}
	return out
}

// builtinType1Encoding returns the font's builtin encoding without
// introspecting its embedded font program: the two named standard
// fonts with a well-known non-Standard encoding are special-cased,
// everything else defaults to StandardEncoding.
func builtinType1Encoding(desc model.FontDescriptor) *simpleencodings.Encoding {
	if desc.FontName == "ZapfDingbats" {
		return &simpleencodings.ZapfDingbats
	} else if desc.FontName == "Symbol" {
		return &simpleencodings.Symbol
	}
	return &simpleencodings.Standard
}

func resolveCharMapTrueType(f model.FontTrueType, userCharMap map[string]rune) map[rune]byte {
	// 9.6.6.3 - when the font has no Encoding entry, or the font descriptor’s Symbolic flag is set
	// (in which case the Encoding entry is ignored)
	// the character mapping is the "identity"
	if (f.FontDescriptor.Flags&model.Symbolic) != 0 || f.Encoding == nil {
		// Without a rasterizer we cannot read the font's own cmap subtable,
		// so the symbolic case assumes a simple byte-identity encoding.
		out := make(map[rune]byte, 256)
		for r := rune(0); r <= 255; r++ {
			out[r] = byte(r)
		}
		return out
	}

	// 9.6.6.3 - if the font has a named Encoding entry of either MacRomanEncoding or WinAnsiEncoding,
	// or if the font descriptor’s Nonsymbolic flag (see Table 123) is set
	if (f.FontDescriptor.Flags&model.Nonsymbolic) != 0 || f.Encoding == model.MacRomanEncoding || f.Encoding == model.WinAnsiEncoding {
		if f.Encoding == model.MacRomanEncoding {
			return simpleencodings.MacRoman.Runes
		} else if f.Encoding == model.WinAnsiEncoding {
			return simpleencodings.WinAnsi.Runes
		} else if dict, ok := f.Encoding.(*model.SimpleEncodingDict); ok {
			var base *simpleencodings.Encoding
			if dict.BaseEncoding != "" {
				base = simpleencodings.PredefinedEncodings[dict.BaseEncoding]
			} else {
				base = &simpleencodings.Standard
			}
			out := applyDifferences(dict.Differences, userCharMap, base)
			// Finally, any undefined entries in the table shall be filled using StandardEncoding.
			for r, bStd := range simpleencodings.Standard.Runes {
				if _, ok := out[r]; !ok { // missing rune
					out[r] = bStd
				}
			}
			return out
		}
	}
	// default value
	return simpleencodings.Standard.Runes
}

func resolveCharMapType3(f model.FontType3, userCharMap map[string]rune) map[rune]byte {
	switch enc := f.Encoding.(type) {
	case model.SimpleEncodingPredefined:
		return simpleencodings.PredefinedEncodings[enc].Runes
	case *model.SimpleEncodingDict:
		base := &simpleencodings.Standard
		if enc.BaseEncoding != "" {
			base = simpleencodings.PredefinedEncodings[enc.BaseEncoding]
		}
		return applyDifferences(enc.Differences, userCharMap, base)
	default: // should not happen according to the spec
		return simpleencodings.Standard.Runes
	}
}

// resolveToUnicode parses the CMap and resolves the chain of UseCMap
// entries, the nearest mapping winning over its bases.
func resolveToUnicode(cmap model.UnicodeCMap) (map[model.CID][]rune, error) {
	content, err := cmap.Decode()
	if err != nil {
		return nil, err
	}
	inner, err := cmaps.ParseUnicodeCMap(content)
	if err != nil {
		return nil, err
	}
	out := inner.ProperLookupTable()

	var used map[model.CID][]rune
	switch use := cmap.UseCMap.(type) {
	case model.UnicodeCMap:
		used, err = resolveToUnicode(use)
		if err != nil {
			return nil, err
		}
	case model.UnicodeCMapBasePredefined:
		predef, ok := standardcmaps.ToUnicodeCMaps[model.ObjName(use)]
		if !ok {
			log.Printf("unknown predefined UnicodeCMap %s", use)
		}
		used = predef.ProperLookupTable()
	}
	// codes undefined here fall back to the base mapping
	for k, v := range used {
		if _, defined := out[k]; !defined {
			out[k] = v
		}
	}
	return out, nil
}

func resolveCharMapType0(ft model.FontType0) {
	// 9.10.2 - Mapping Character Codes to Unicode Values
	//
	// TODO: incomplete upstream (model.CIDSystemInfo has no
	// ToUnicodeCMapName method to resolve the predefined CMap from the
	// CIDSystemInfo); see BUILD_FLAGS.json "unresolved". Call result was
	// already discarded by the caller.
}

// reverseToUnicodeSimple builds the reverse mapping of a simple font:
// multi-rune targets cannot be encoded back and are skipped.
func reverseToUnicodeSimple(m map[model.CID][]rune) map[rune]byte {
	out := make(map[rune]byte, len(m))
	for k, v := range m {
		if len(v) == 1 {
			out[v[0]] = byte(k)
		}
	}
	return out
}

// reverseToUnicode builds the reverse mapping of a composite font.
func reverseToUnicode(m map[model.CID][]rune) map[rune]model.CID {
	out := make(map[rune]model.CID, len(m))
	for k, v := range m {
		if len(v) == 1 {
			out[v[0]] = k
		}
	}
	return out
}
