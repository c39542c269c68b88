package cmaps

import (
	"errors"
	"fmt"
	"io"

	"github.com/quillcore/pdfcore/model"
	tokenizer "github.com/quillcore/pdfcore/reader/parser/tokenizer"
)

// parser reads CMap files, which map character codes either to Unicode
// points (ToUnicode CMaps) or to CIDs, both used in PDF files.
// References:
//
//	https://www.adobe.com/content/dam/acom/en/devnet/acrobat/pdfs/5411.ToUnicode.pdf
//	https://github.com/adobe-type-tools/cmap-resources/releases
type parser struct {
	version string

	// a cmap may contain either CIDs or Unicodes
	unicode UnicodeCMap
	cids    CMap

	tokenizer tokenizer.Tokenizer
}

func newparser(content []byte) *parser {
	return &parser{tokenizer: tokenizer.NewTokenizer(content)}
}

// sectionNext reads the next object of a range section: EOF ends the
// section silently, and the given end operand reports done = true.
func (cmap *parser) sectionNext(endOperand cmapOperand) (o cmapObject, done bool, err error) {
	o, err = cmap.parseObject()
	if err != nil {
		if err == io.EOF {
			return nil, true, nil
		}
		return nil, false, err
	}
	if op, isOperand := o.(cmapOperand); isOperand && op == endOperand {
		return nil, true, nil
	}
	return o, false, nil
}

// parse walks the whole CMap file, dispatching on the operators and
// definition names it encounters; anything else is skipped.
func (cmap *parser) parse() error {
	var prev cmapObject
	for {
		o, err := cmap.parseObject()
		if err != nil {
			return err
		}
		switch t := o.(type) {
		case nil: // EOF
			return nil
		case cmapOperand:
			switch t {
			case "begincodespacerange":
				err = cmap.parseCodespaceRange()
			case "begincidrange":
				err = cmap.parseCIDRange()
			case "beginbfchar":
				err = cmap.parseBfchar()
			case "beginbfrange":
				err = cmap.parseBfrange()
			case "usecmap":
				// the operand applies to the name before it
				name, ok := prev.(model.ObjName)
				if !ok {
					return ErrBadCMap
				}
				cmap.cids.UseCMap = name
				cmap.unicode.UseCMap = name
			case "CIDSystemInfo":
				// some generators leave the leading "/" off CIDSystemInfo
				err = cmap.parseSystemInfo()
			}
		case model.ObjName:
			switch t {
			case "CIDSystemInfo":
				err = cmap.parseSystemInfo()
			case "CMapName":
				err = cmap.parseName()
			case "CMapType":
				err = cmap.parseType()
			case "CMapVersion":
				err = cmap.parseVersion()
			}
		}
		if err != nil {
			return err
		}
		prev = o
	}
}

// parseName reads a /CMapName <name> def sequence.
func (cmap *parser) parseName() error {
	var name model.ObjName
	done := false
	// the bound tolerates a name broken into several tokens (below)
	for i := 0; i < 10 && !done; i++ {
		o, err := cmap.parseObject()
		if err != nil {
			return err
		}
		switch t := o.(type) {
		case cmapOperand:
			if t == "def" {
				done = true
				break
			}
			// Not an error: some files carry spaces in what should be
			// a PostScript name, such as /Adobe-SI-*Courier New-6164-0.
			// The stray operand is glued back onto the name.
			if name != "" {
				name = model.ObjName(fmt.Sprintf("%s %s", name, t))
			}
		case model.ObjName:
			name = t
		}
	}
	if !done {
		return ErrBadCMap
	}
	cmap.cids.Name = name
	return nil
}

// parseType reads a /CMapType <int> def sequence.
func (cmap *parser) parseType() error {
	ctype := 0
	done := false
	for i := 0; i < 3 && !done; i++ {
		o, err := cmap.parseObject()
		if err != nil {
			return err
		}
		switch t := o.(type) {
		case cmapOperand:
			if t != "def" {
				return ErrBadCMap
			}
			done = true
		case int:
			ctype = t
		}
	}
	cmap.cids.Type = ctype
	return nil
}

// parseVersion reads a /CMapVersion <value> def sequence. The version
// itself is unused; consuming it keeps the main loop simple.
func (cmap *parser) parseVersion() error {
	version := ""
	done := false
	for i := 0; i < 3 && !done; i++ {
		o, err := cmap.parseObject()
		if err != nil {
			return err
		}
		switch t := o.(type) {
		case cmapOperand:
			if t != "def" {
				return ErrBadCMap
			}
			done = true
		case int:
			version = fmt.Sprintf("%d", t)
		case float64:
			version = fmt.Sprintf("%f", t)
		case string:
			version = t
		}
	}
	cmap.version = version
	return nil
}

// parseSystemInfo reads a CIDSystemInfo definition, in its dict form
//
//	/CIDSystemInfo 3 dict dup begin
//	  /Registry (Adobe) def
//	  /Ordering (Japan1) def
//	  /Supplement 1 def
//	end def
//
// or as a direct dictionary object.
func (cmap *parser) parseSystemInfo() error {
	inDict := false
	inDef := false
	var name model.ObjName
	done := false
	systemInfo := model.CIDSystemInfo{}

	// 50 is a generous but arbitrary bound against endless loops on
	// badly formed files
	for i := 0; i < 50 && !done; i++ {
		o, err := cmap.parseObject()
		if err != nil {
			return err
		}
		switch t := o.(type) {
		case cmapDict:
			r, ok := t["Registry"].(string)
			if !ok {
				return fmt.Errorf("unexpected type for Registry: %T", t["Registry"])
			}
			systemInfo.Registry = r

			r, ok = t["Ordering"].(string)
			if !ok {
				return fmt.Errorf("unexpected type for Ordering: %T", t["Ordering"])
			}
			systemInfo.Ordering = r

			s, ok := t["Supplement"].(int)
			if !ok {
				return fmt.Errorf("unexpected type for Supplement: %T", t["Supplement"])
			}
			systemInfo.Supplement = s

			done = true
		case cmapOperand:
			switch t {
			case "begin":
				inDict = true
			case "end":
				done = true
			case "def":
				inDef = false
			}
		case model.ObjName:
			if inDict {
				name = t
				inDef = true
			}
		case string:
			if inDef {
				switch name {
				case "Registry":
					systemInfo.Registry = t
				case "Ordering":
					systemInfo.Ordering = t
				}
			}
		case int:
			if inDef && name == "Supplement" {
				systemInfo.Supplement = t
			}
		}
	}
	if !done {
		return ErrBadCMap
	}

	cmap.cids.CIDSystemInfo = systemInfo
	return nil
}

// parseCodespaceRange parses the codespace range section of a CMap:
// pairs of hex strings.
func (cmap *parser) parseCodespaceRange() error {
	for {
		o, done, err := cmap.sectionNext("endcodespacerange")
		if err != nil {
			return err
		}
		if done {
			break
		}
		hexLow, ok := o.(cmapHexString)
		if !ok {
			return errors.New("non-hex codespace low bound")
		}

		o, done, err = cmap.sectionNext("endcodespacerange")
		if err != nil {
			return err
		}
		if done {
			break
		}
		hexHigh, ok := o.(cmapHexString)
		if !ok {
			return errors.New("non-hex codespace high bound")
		}

		cspace, err := newCodespaceFromBytes(hexLow, hexHigh)
		if err != nil {
			return err
		}
		cmap.cids.Codespaces = append(cmap.cids.Codespaces, cspace)
	}

	if len(cmap.cids.Codespaces) == 0 {
		return ErrBadCMap
	}
	return nil
}

// parseCIDRange parses the cid range section of a CMap: triples of
// (low hex, high hex, starting CID).
func (cmap *parser) parseCIDRange() error {
	for {
		o, done, err := cmap.sectionNext("endcidrange")
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		hexStart, ok := o.(cmapHexString)
		if !ok {
			return errors.New("cid interval start must be a hex string")
		}

		o, done, err = cmap.sectionNext("endcidrange")
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		hexEnd, ok := o.(cmapHexString)
		if !ok {
			return errors.New("cid interval end must be a hex string")
		}

		o, done, err = cmap.sectionNext("endcidrange")
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		cidStart, ok := o.(int)
		if !ok {
			return errors.New("cid start value must be a decimal number")
		}
		if cidStart < 0 {
			return errors.New("invalid cid start value")
		}
		if cidStart >= (1 << 16) {
			return fmt.Errorf("%d overflow CID range", cidStart)
		}

		codespace, err := newCodespaceFromBytes(hexStart, hexEnd)
		if err != nil {
			return err
		}
		cmap.cids.CIDs = append(cmap.cids.CIDs, CIDRange{Codespace: codespace, CIDStart: model.CID(cidStart)})
	}
}

// parseBfchar parses a bfchar section: pairs of (source code, target).
func (cmap *parser) parseBfchar() error {
	for {
		o, done, err := cmap.sectionNext("endbfchar")
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		hexCode, ok := o.(cmapHexString)
		if !ok {
			return errors.New("bfchar source must be a hex string")
		}
		code, err := hexToCID(hexCode)
		if err != nil {
			return err
		}

		o, done, err = cmap.sectionNext("endbfchar")
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		var target []rune
		switch v := o.(type) {
		case cmapHexString:
			target, err = hexToRunes(v)
			if err != nil {
				return err
			}
		case model.ObjName:
			// a glyph name target cannot be mapped here
			target = []rune{MissingCodeRune}
		default:
			return ErrBadCMap
		}

		cmap.unicode.Mappings = append(cmap.unicode.Mappings, ToUnicodePair{From: code, Dest: target})
	}
}

// parseBfrange parses a bfrange section: triples
// <srcCodeFrom> <srcCodeTo> <target>, where the target is either the
// first destination of the range, or an explicit list.
func (cmap *parser) parseBfrange() error {
	for {
		o, done, err := cmap.sectionNext("endbfrange")
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		hexFrom, ok := o.(cmapHexString)
		if !ok {
			return errors.New("bfrange low bound must be a hex string")
		}
		srcCodeFrom, err := hexToCID(hexFrom)
		if err != nil {
			return err
		}

		o, done, err = cmap.sectionNext("endbfrange")
		if err != nil {
			return err
		}
		if done {
			return ErrBadCMap // the triple is not complete
		}
		hexTo, ok := o.(cmapHexString)
		if !ok {
			return ErrBadCMap
		}
		srcCodeTo, err := hexToCID(hexTo)
		if err != nil {
			return err
		}

		o, err = cmap.parseObject()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch v := o.(type) {
		case cmapArray:
			if len(v) != int(srcCodeTo-srcCodeFrom)+1 {
				return ErrBadCMap
			}
			arr := ToUnicodeArray{From: srcCodeFrom, To: srcCodeTo, Runes: make([][]rune, len(v))}
			for i, o := range v {
				hexs, ok := o.(cmapHexString)
				if !ok {
					return errors.New("non-hex string in bfrange array")
				}
				arr.Runes[i], err = hexToRunes(hexs)
				if err != nil {
					return err
				}
			}
			cmap.unicode.Mappings = append(cmap.unicode.Mappings, arr)
		case cmapHexString:
			// maps [from, to] onto [dst, dst+to-from];
			// only one-rune strings are supported
			tr := ToUnicodeTranslation{From: srcCodeFrom, To: srcCodeTo, Dest: hexToRune(v)}
			cmap.unicode.Mappings = append(cmap.unicode.Mappings, tr)
		default:
			return ErrBadCMap
		}
	}
}
