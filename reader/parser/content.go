package parser

import (
	"fmt"

	cs "github.com/quillcore/pdfcore/contentstream"
	"github.com/quillcore/pdfcore/model"
)

// ParseContentElement parses one operation and advances.
// ContentStreamMode must have been set, and EOF checked, before
// calling this method. See ParseContent for the usual entry point.
func (pr *Parser) ParseContentElement(res model.ResourcesColorSpace) (cs.Operation, error) {
	for {
		if pr.tokens.IsEOF() {
			return nil, fmt.Errorf("unexpected end of content stream")
		}

		obj, err := pr.ParseObject()
		if err != nil {
			return nil, err
		}
		cmd, isCommand := obj.(Command)
		if !isCommand {
			// an operand: keep it on the stack until its operator shows up
			pr.opsStack = append(pr.opsStack, obj)
			continue
		}

		var op cs.Operation
		if cmd == "BI" {
			// inline images carry binary data the tokenizer cannot
			// split: a dedicated parser takes over
			op, err = pr.parseInlineImage(res)
		} else {
			op, err = parseCommand(string(cmd), pr.opsStack)
			if err != nil {
				err = fmt.Errorf("invalid command %s with args %v: %s", cmd, pr.opsStack, err)
			}
		}
		pr.opsStack = pr.opsStack[:0] // keep the capacity
		return op, err
	}
}

// ParseContent parses a decrypted content stream into its operations.
// The resources' color spaces are needed to interpret inline images.
func ParseContent(content []byte, res model.ResourcesColorSpace) ([]cs.Operation, error) {
	pr := NewParser(content)
	pr.ContentStreamMode = true
	pr.opsStack = make([]Object, 0, 6)

	var out []cs.Operation
	for !pr.tokens.IsEOF() {
		cmd, err := pr.ParseContentElement(res)
		if err != nil {
			return nil, err
		}
		out = append(out, cmd)
	}
	return out, nil
}

// ParseContentResources scans a content stream for the resources it
// uses. Only the names (the keys) of the returned dicts are
// meaningful: every value is empty (nil, or an empty PropertyList for
// Properties), to be filled by a resolver.
func ParseContentResources(content []byte, res model.ResourcesColorSpace) (model.ResourcesDict, error) {
	pr := NewParser(content)
	pr.ContentStreamMode = true
	pr.opsStack = make([]Object, 0, 6)

	out := model.NewResourcesDict()

	recordColorSpace := func(name model.ColorSpaceName) {
		switch name {
		case "", model.ColorSpaceRGB, model.ColorSpaceCMYK, model.ColorSpaceGray, model.ColorSpacePattern,
			"G", "RGB", "CMYK", "I": // device spaces, full or abbreviated, need no resource entry
		default:
			out.ColorSpace[model.ObjName(name)] = nil
		}
	}
	recordProperties := func(props cs.PropertyList) {
		if pn, ok := props.(cs.PropertyListName); ok {
			out.Properties[model.ObjName(pn)] = model.PropertyList{}
		}
	}

	for !pr.tokens.IsEOF() {
		cmd, err := pr.ParseContentElement(res)
		if err != nil {
			return out, err
		}
		switch cmd := cmd.(type) {
		case cs.OpSetFillColorSpace:
			recordColorSpace(cmd.ColorSpace)
		case cs.OpSetStrokeColorSpace:
			recordColorSpace(cmd.ColorSpace)
		case cs.OpSetExtGState:
			out.ExtGState[cmd.Dict] = nil
		case cs.OpXObject:
			out.XObject[cmd.XObject] = nil
		case cs.OpShFill:
			out.Shading[cmd.Shading] = nil
		case cs.OpSetFillColorN:
			if cmd.Pattern != "" {
				out.Pattern[cmd.Pattern] = nil
			}
		case cs.OpSetStrokeColorN:
			if cmd.Pattern != "" {
				out.Pattern[cmd.Pattern] = nil
			}
		case cs.OpSetFont:
			out.Font[cmd.Font] = nil
		case cs.OpBeginMarkedContent:
			recordProperties(cmd.Properties)
		case cs.OpMarkPoint:
			recordProperties(cmd.Properties)
		case cs.OpBeginImage:
			switch c := cmd.ColorSpace.(type) {
			case cs.ImageColorSpaceIndexed:
				recordColorSpace(c.Base)
			case cs.ImageColorSpaceName:
				recordColorSpace(c.ColorSpaceName)
			}
		}
	}
	return out, nil
}
