// Package parser maps a stream of tokens to PDF objects, by
// recursive descent.
// It covers chunks of PDF files, such as object definitions or content
// streams; a higher-level reader is needed to handle a whole file,
// since decoding streams requires the xref table (for /Length) and the
// encryption state.
package parser

import (
	"fmt"

	tkn "github.com/benoitkugler/pstokenizer"
	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/parser/filters"
)

// syntaxError builds the typed error used for every malformed-byte
// condition met by the parser, so that the file layer can decide to
// enter repair mode.
func syntaxError(msg string, cause error) error {
	return model.NewSyntaxError("parse: "+msg, cause)
}

type (
	Object        = model.Object
	Name          = model.Name
	Integer       = model.ObjInt
	Float         = model.ObjFloat
	StringLiteral = model.ObjStringLiteral
	HexLiteral    = model.ObjHexLiteral
	Array         = model.ObjArray
	Dict          = model.ObjDict
	Bool          = model.ObjBool
	Command       = model.ObjCommand
	IndirectRef   = model.ObjIndirectRef
)

// Parser reads tokens and builds objects.
type Parser struct {
	tokens *tkn.Tokenizer

	// ContentStreamMode disallows indirect references, and allows
	// operator keywords instead (returned as Command).
	ContentStreamMode bool

	opsStack []Object // pending operands, only used in content streams
}

// NewParser uses a byte slice as input.
func NewParser(data []byte) *Parser {
	return NewParserFromTokenizer(tkn.NewTokenizer(data))
}

// NewParserFromTokenizer use a tokenizer as input.
func NewParserFromTokenizer(tokens *tkn.Tokenizer) *Parser {
	return &Parser{tokens: tokens}
}

// ParseObject tokenizes and parses the input,
// expecting a valid PDF object.
func ParseObject(data []byte) (Object, error) {
	return NewParser(data).ParseObject()
}

// ParseObject reads one of the (potentially) many objects
// in the input data (see NewParser).
func (p *Parser) ParseObject() (Object, error) {
	tk, err := p.tokens.NextToken()
	if err != nil {
		return nil, err
	}

	switch tk.Kind {
	case tkn.EOF:
		return nil, syntaxError("unexpected end of input", nil)
	case tkn.Name:
		return Name(tk.Value), nil
	case tkn.String:
		return StringLiteral(tk.Value), nil
	case tkn.StringHex:
		return HexLiteral(tk.Value), nil
	case tkn.StartArray:
		return p.parseArray()
	case tkn.StartDic:
		// first parse the conforming grammar, which almost always
		// succeeds; the relaxed retry accepts key/value pairs with a
		// missing value before an end of line, seen in the wild
		save := p.tokens.CurrentPosition()
		dict, err := p.parseDict(false)
		if err != nil {
			p.tokens.SetPosition(save)
			dict, err = p.parseDict(true)
		}
		return dict, err
	case tkn.Float:
		f, err := tk.Float()
		if err != nil {
			return nil, syntaxError("invalid number", err)
		}
		return Float(f), nil
	case tkn.Other:
		return p.parseKeyword(tk.Value)
	default:
		// an integer, or the start of an `N G R` indirect reference
		return p.parseNumericOrIndRef(tk)
	}
}

func (p *Parser) parseArray() (Array, error) {
	a := Array{}
	for {
		tk, err := p.tokens.PeekToken()
		if err != nil {
			return nil, err
		}
		switch tk.Kind {
		case tkn.EndArray:
			_, _ = p.tokens.NextToken() // consume it
			return a, nil
		case tkn.EOF:
			return nil, syntaxError("unterminated array", nil)
		default:
			obj, err := p.ParseObject()
			if err != nil {
				return nil, err
			}
			a = append(a, obj)
		}
	}
}

func (p *Parser) parseDict(relaxed bool) (Dict, error) {
	d := Dict{}
	for {
		tk, err := p.tokens.PeekToken()
		if err != nil {
			return nil, err
		}
		switch tk.Kind {
		case tkn.EndDic:
			_, _ = p.tokens.NextToken() // consume it
			return d, nil
		case tkn.EOF:
			return nil, syntaxError("unterminated dictionary", nil)
		case tkn.Name:
			key := tk.Value
			_, _ = p.tokens.NextToken() // consume the key

			var obj Object
			if relaxed && p.tokens.HasEOLBeforeToken() {
				// accept a missing value terminated by EOL as an
				// empty string (some mobile scanner generators)
				obj = StringLiteral("")
			} else if obj, err = p.ParseObject(); err != nil {
				return nil, err
			}

			// a null value is equivalent to omitting the entry (7.3.7)
			if obj == nil || obj == (model.ObjNull{}) {
				continue
			}
			if _, has := d[Name(key)]; has {
				return nil, syntaxError(fmt.Sprintf("duplicate key %s", key), nil)
			}
			d[Name(key)] = obj
		default:
			return nil, syntaxError(fmt.Sprintf("unexpected token %v in dictionary", tk), nil)
		}
	}
}

// parseKeyword classifies the closed set of object keywords; any other
// keyword is an operator, only valid in a content stream.
func (p Parser) parseKeyword(l []byte) (Object, error) {
	switch string(l) {
	case "null":
		return model.ObjNull{}, nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if p.ContentStreamMode {
		return Command(l), nil
	}
	return nil, syntaxError(fmt.Sprintf("unexpected keyword %s outside of a content stream", l), nil)
}

// parseNumericOrIndRef detects the `N G R` pattern by peeking two
// tokens past an integer, collapsing the three tokens into one
// indirect reference when it matches.
func (p *Parser) parseNumericOrIndRef(currentToken tkn.Token) (Object, error) {
	if currentToken.Kind != tkn.Integer {
		return nil, syntaxError(fmt.Sprintf("expected number, got %v", currentToken), nil)
	}
	i, err := currentToken.Int()
	if err != nil {
		return nil, syntaxError("invalid integer", err)
	}

	if p.ContentStreamMode {
		// no indirect reference in a content stream: return early
		return Integer(i), nil
	}

	next, err := p.tokens.PeekToken()
	if err != nil {
		return nil, err
	}
	gen, genErr := next.Int()
	if next.Kind != tkn.Integer || genErr != nil {
		return Integer(i), nil
	}
	if nextNext, _ := p.tokens.PeekPeekToken(); !nextNext.IsOther("R") {
		return Integer(i), nil
	}

	// both following tokens matched: consume them
	_, _ = p.tokens.NextToken()
	_, _ = p.tokens.NextToken()
	return IndirectRef{ObjectNumber: i, GenerationNumber: gen}, nil
}

// ParseObjectDefinition parses an `N G obj <object>` definition.
// If `headerOnly`, it stops after the header and returns a nil object.
func ParseObjectDefinition(line []byte, headerOnly bool) (objectNumber int, generationNumber int, o Object, err error) {
	tokens := tkn.NewTokenizer(line)

	readInt := func(what string) (int, error) {
		tok, err := tokens.NextToken()
		if err != nil {
			return 0, err
		}
		n, err := tok.Int()
		if tok.Kind != tkn.Integer || err != nil {
			return 0, syntaxError(fmt.Sprintf("object definition: can't read the %s", what), nil)
		}
		return n, nil
	}

	objNr, err := readInt("object number")
	if err != nil {
		return 0, 0, nil, err
	}
	genNr, err := readInt("generation number")
	if err != nil {
		return 0, 0, nil, err
	}

	tok, err := tokens.NextToken()
	if err != nil || !tok.IsOther("obj") {
		return 0, 0, nil, syntaxError("object definition: missing obj keyword", err)
	}

	if headerOnly {
		return objNr, genNr, nil, nil
	}
	pr := Parser{tokens: tokens}
	obj, err := pr.ParseObject()
	return objNr, genNr, obj, err
}

// SkipperFromFilter selects the right skipper for a model filter.
// An error is returned if and only if the filter is not supported.
func SkipperFromFilter(fi model.Filter) (filters.Skipper, error) {
	return filters.SkipperFromFilter(string(fi.Name), fi.DecodeParms)
}
