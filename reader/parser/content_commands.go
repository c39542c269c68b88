package parser

import (
	"errors"
	"fmt"

	cs "github.com/quillcore/pdfcore/contentstream"
	"github.com/quillcore/pdfcore/fonts"
	"github.com/quillcore/pdfcore/model"
)

type Fl = model.Fl

// Operand checking helpers. The interpreter recovers per operator, so
// every malformed operand list is reported as a plain error, never a
// panic.

func assertLength(stack []Object, L int) error {
	if L != len(stack) {
		return fmt.Errorf("expected %d operands, got %d", L, len(stack))
	}
	return nil
}

func assertOneName(stack []Object) (model.ObjName, error) {
	if err := assertLength(stack, 1); err != nil {
		return "", err
	}
	name, ok := stack[0].(Name)
	if !ok {
		return "", fmt.Errorf("expected Name, got %v", stack[0])
	}
	return model.ObjName(name), nil
}

func assertOneString(stack []Object) (string, error) {
	if err := assertLength(stack, 1); err != nil {
		return "", err
	}
	s, ok := model.IsString(stack[0])
	if !ok {
		return "", fmt.Errorf("expected string, got %v", stack[0])
	}
	return s, nil
}

func assertNumber(t Object) (Fl, error) {
	f, ok := model.IsNumber(t)
	if !ok {
		return 0, fmt.Errorf("expected number, got %v", t)
	}
	return f, nil
}

// assertNumbers accepts ints and floats; pass L < 0 not to check the
// length.
func assertNumbers(stack []Object, L int) ([]Fl, error) {
	if err := assertLength(stack, L); L >= 0 && err != nil {
		return nil, err
	}
	if len(stack) == 0 { // preserve nil-ness, useful with reflect.DeepEqual
		return nil, nil
	}
	out := make([]Fl, len(stack))
	var err error
	for i, t := range stack {
		out[i], err = assertNumber(t)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// zeroOperandCommands are the operators taking no operand at all.
var zeroOperandCommands = map[string]cs.Operation{
	"B":   cs.OpFillStroke{},
	"B*":  cs.OpEOFillStroke{},
	"BT":  cs.OpBeginText{},
	"BX":  cs.OpBeginIgnoreUndef{},
	"EMC": cs.OpEndMarkedContent{},
	"ET":  cs.OpEndText{},
	"EX":  cs.OpEndIgnoreUndef{},
	"F":   cs.OpFill{},
	"Q":   cs.OpRestore{},
	"S":   cs.OpStroke{},
	"T*":  cs.OpTextNextLine{},
	"W":   cs.OpClip{},
	"W*":  cs.OpEOClip{},
	"b":   cs.OpCloseFillStroke{},
	"b*":  cs.OpCloseEOFillStroke{},
	"f":   cs.OpFill{},
	"f*":  cs.OpEOFill{},
	"h":   cs.OpClosePath{},
	"n":   cs.OpEndPath{},
	"q":   cs.OpSave{},
	"s":   cs.OpCloseStroke{},
}

// numberCommands are the operators taking a fixed count of numeric
// operands.
var numberCommands = map[string]struct {
	arity int
	build func(nbs []Fl) cs.Operation
}{
	"G":  {1, func(n []Fl) cs.Operation { return cs.OpSetStrokeGray{G: n[0]} }},
	"g":  {1, func(n []Fl) cs.Operation { return cs.OpSetFillGray{G: n[0]} }},
	"J":  {1, func(n []Fl) cs.Operation { return cs.OpSetLineCap{Style: uint8(n[0])} }},
	"j":  {1, func(n []Fl) cs.Operation { return cs.OpSetLineJoin{Style: uint8(n[0])} }},
	"M":  {1, func(n []Fl) cs.Operation { return cs.OpSetMiterLimit{Limit: n[0]} }},
	"TL": {1, func(n []Fl) cs.Operation { return cs.OpSetTextLeading{L: n[0]} }},
	"Tc": {1, func(n []Fl) cs.Operation { return cs.OpSetCharSpacing{CharSpace: n[0]} }},
	"Tr": {1, func(n []Fl) cs.Operation { return cs.OpSetTextRender{Render: n[0]} }},
	"Ts": {1, func(n []Fl) cs.Operation { return cs.OpSetTextRise{Rise: n[0]} }},
	"Tw": {1, func(n []Fl) cs.Operation { return cs.OpSetWordSpacing{WordSpace: n[0]} }},
	"Tz": {1, func(n []Fl) cs.Operation { return cs.OpSetHorizScaling{Scale: n[0]} }},
	"i":  {1, func(n []Fl) cs.Operation { return cs.OpSetFlat{Flatness: n[0]} }},
	"w":  {1, func(n []Fl) cs.Operation { return cs.OpSetLineWidth{W: n[0]} }},

	"TD": {2, func(n []Fl) cs.Operation { return cs.OpTextMoveSet{X: n[0], Y: n[1]} }},
	"Td": {2, func(n []Fl) cs.Operation { return cs.OpTextMove{X: n[0], Y: n[1]} }},
	"d0": {2, func(n []Fl) cs.Operation { return cs.OpSetCharWidth{WX: int(n[0]), WY: int(n[1])} }},
	"l":  {2, func(n []Fl) cs.Operation { return cs.OpLineTo{X: n[0], Y: n[1]} }},
	"m":  {2, func(n []Fl) cs.Operation { return cs.OpMoveTo{X: n[0], Y: n[1]} }},

	"rg": {3, func(n []Fl) cs.Operation { return cs.OpSetFillRGBColor{R: n[0], G: n[1], B: n[2]} }},
	"RG": {3, func(n []Fl) cs.Operation { return cs.OpSetStrokeRGBColor{R: n[0], G: n[1], B: n[2]} }},

	"k":  {4, func(n []Fl) cs.Operation { return cs.OpSetFillCMYKColor{C: n[0], M: n[1], Y: n[2], K: n[3]} }},
	"K":  {4, func(n []Fl) cs.Operation { return cs.OpSetStrokeCMYKColor{C: n[0], M: n[1], Y: n[2], K: n[3]} }},
	"re": {4, func(n []Fl) cs.Operation { return cs.OpRectangle{X: n[0], Y: n[1], W: n[2], H: n[3]} }},
	"v":  {4, func(n []Fl) cs.Operation { return cs.OpCurveTo1{X2: n[0], Y2: n[1], X3: n[2], Y3: n[3]} }},
	"y":  {4, func(n []Fl) cs.Operation { return cs.OpCurveTo{X1: n[0], Y1: n[1], X3: n[2], Y3: n[3]} }},

	"c": {6, func(n []Fl) cs.Operation {
		return cs.OpCubicTo{X1: n[0], Y1: n[1], X2: n[2], Y2: n[3], X3: n[4], Y3: n[5]}
	}},
	"cm": {6, func(n []Fl) cs.Operation {
		var mat model.Matrix
		copy(mat[:], n)
		return cs.OpConcat{Matrix: mat}
	}},
	"Tm": {6, func(n []Fl) cs.Operation {
		var mat model.Matrix
		copy(mat[:], n)
		return cs.OpSetTextMatrix{Matrix: mat}
	}},
	"d1": {6, func(n []Fl) cs.Operation {
		return cs.OpSetCacheDevice{
			WX: int(n[0]), WY: int(n[1]),
			LLX: int(n[2]), LLY: int(n[3]), URX: int(n[4]), URY: int(n[5]),
		}
	}},
}

// nameCommands are the operators taking a single name operand.
var nameCommands = map[string]func(model.ObjName) cs.Operation{
	"BMC": func(n model.ObjName) cs.Operation { return cs.OpBeginMarkedContent{Tag: n} },
	"CS": func(n model.ObjName) cs.Operation {
		return cs.OpSetStrokeColorSpace{ColorSpace: model.ColorSpaceName(n)}
	},
	"cs": func(n model.ObjName) cs.Operation { return cs.OpSetFillColorSpace{ColorSpace: model.ColorSpaceName(n)} },
	"Do": func(n model.ObjName) cs.Operation { return cs.OpXObject{XObject: n} },
	"MP": func(n model.ObjName) cs.Operation { return cs.OpMarkPoint{Tag: n} },
	"gs": func(n model.ObjName) cs.Operation { return cs.OpSetExtGState{Dict: n} },
	"ri": func(n model.ObjName) cs.Operation { return cs.OpSetRenderingIntent{Intent: n} },
	"sh": func(n model.ObjName) cs.Operation { return cs.OpShFill{Shading: n} },
}

// parseCommand builds the operation for `command` from its pending
// operand stack (which does not contain the command itself).
// The inline image operators BI/ID/EI never reach this point: they are
// handled by parseInlineImage.
func parseCommand(command string, stack []Object) (cs.Operation, error) {
	if op, ok := zeroOperandCommands[command]; ok {
		return op, assertLength(stack, 0)
	}
	if spec, ok := numberCommands[command]; ok {
		nbs, err := assertNumbers(stack, spec.arity)
		if err != nil {
			return nil, err
		}
		return spec.build(nbs), nil
	}
	if build, ok := nameCommands[command]; ok {
		name, err := assertOneName(stack)
		if err != nil {
			return nil, err
		}
		return build(name), nil
	}

	switch command {
	case "Tj":
		str, err := assertOneString(stack)
		return cs.OpShowText{Text: str}, err
	case "'":
		str, err := assertOneString(stack)
		return cs.OpMoveShowText{Text: str}, err
	case "\"":
		if err := assertLength(stack, 3); err != nil {
			return nil, err
		}
		fls, err := assertNumbers(stack[:2], 2)
		if err != nil {
			return nil, err
		}
		str, err := assertOneString(stack[2:])
		if err != nil {
			return nil, err
		}
		return cs.OpMoveSetShowText{WordSpacing: fls[0], CharacterSpacing: fls[1], Text: str}, nil
	case "TJ":
		return parseTextSpaces(stack)
	case "Tf":
		if err := assertLength(stack, 2); err != nil {
			return nil, err
		}
		name, err := assertOneName(stack[0:1])
		if err != nil {
			return nil, err
		}
		size, err := assertNumber(stack[1])
		return cs.OpSetFont{Font: name, Size: size}, err
	case "BDC", "DP":
		if err := assertLength(stack, 2); err != nil {
			return nil, err
		}
		name, err := assertOneName(stack[0:1])
		if err != nil {
			return nil, err
		}
		props, err := parsePropertyList(stack[1])
		if command == "BDC" {
			return cs.OpBeginMarkedContent{Tag: name, Properties: props}, err
		}
		return cs.OpMarkPoint{Tag: name, Properties: props}, err
	case "d":
		if err := assertLength(stack, 2); err != nil {
			return nil, err
		}
		arr, ok := stack[0].(Array)
		if !ok {
			return nil, fmt.Errorf("expected array, got %v", stack[0])
		}
		dash, err := assertNumbers(arr, -1)
		if err != nil {
			return nil, err
		}
		phase, err := assertNumber(stack[1])
		return cs.OpSetDash{Dash: model.DashPattern{Array: dash, Phase: phase}}, err
	case "SC":
		nbs, err := assertNumbers(stack, -1)
		return cs.OpSetStrokeColor{Color: nbs}, err
	case "sc":
		nbs, err := assertNumbers(stack, -1)
		return cs.OpSetFillColor{Color: nbs}, err
	case "SCN":
		out, err := parseSCN(stack)
		return cs.OpSetStrokeColorN(out), err
	case "scn":
		return parseSCN(stack)
	default:
		return nil, fmt.Errorf("invalid command name %s", command)
	}
}

// parseSCN handles scn and SCN: N color components, with an optional
// trailing pattern name.
func parseSCN(stack []Object) (cs.OpSetFillColorN, error) {
	if len(stack) == 0 {
		return cs.OpSetFillColorN{}, errors.New("missing operands for scn/SCN")
	}
	var pattern model.ObjName
	if name, ok := stack[len(stack)-1].(Name); ok {
		pattern = model.ObjName(name)
		stack = stack[:len(stack)-1]
	}
	nbs, err := assertNumbers(stack, -1)
	if err != nil {
		return cs.OpSetFillColorN{}, err
	}
	return cs.OpSetFillColorN{Color: nbs, Pattern: pattern}, nil
}

// parsePropertyList accepts the two forms of a marked-content
// property: a name (resolved against the resources) or a direct dict.
func parsePropertyList(p Object) (cs.PropertyList, error) {
	switch p := p.(type) {
	case Name:
		return cs.PropertyListName(p), nil
	case Dict:
		if err := checkPropertyValue(p); err != nil {
			return nil, err
		}
		return cs.PropertyListDict(p), nil
	default:
		return nil, fmt.Errorf("expected name or dictionary, got %v", p)
	}
}

// parseTextSpaces reads a TJ operand, normalizing it: consecutive
// strings are concatenated, consecutive spacings are summed.
func parseTextSpaces(stack []Object) (cs.OpShowSpaceText, error) {
	var out cs.OpShowSpaceText
	if err := assertLength(stack, 1); err != nil {
		return out, err
	}
	args, ok := stack[0].(Array)
	if !ok {
		return out, fmt.Errorf("expected Array in TJ command, got %v", args)
	}
	var (
		current fonts.TextSpaced
		last    uint8 // 0 at the start, 1 for text, 2 for number
	)
	for _, arg := range args {
		if s, ok := model.IsString(arg); ok {
			if last == 2 {
				// the previous chunk is done: flush it
				out.Texts = append(out.Texts, current)
				current = fonts.TextSpaced{CharCodes: []byte(s)}
			} else {
				current.CharCodes = append(current.CharCodes, s...)
			}
			last = 1
		} else if f, ok := model.IsNumber(arg); ok { // floats are accepted
			current.SpaceSubtractedAfter += int(f)
			last = 2
		} else {
			return out, fmt.Errorf("invalid type in TJ array: %v %T", arg, arg)
		}
	}
	if current.CharCodes != nil || current.SpaceSubtractedAfter != 0 {
		out.Texts = append(out.Texts, current)
	}
	return out, nil
}

// checkPropertyValue recursively rejects content not allowed in a
// direct property list: indirect references and streams.
func checkPropertyValue(v Object) error {
	switch v := v.(type) {
	case nil, Command, IndirectRef, model.ObjStream:
		return fmt.Errorf("invalid property value %v (type %T not allowed)", v, v)
	case Array:
		for _, a := range v {
			if err := checkPropertyValue(a); err != nil {
				return err
			}
		}
	case Dict:
		for _, a := range v {
			if err := checkPropertyValue(a); err != nil {
				return err
			}
		}
	}
	return nil
}
