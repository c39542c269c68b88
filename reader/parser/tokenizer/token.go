// Package tokenizer implements the lowest level of processing of PDF and
// PostScript-flavoured data (content streams, CMaps, Type1 charstrings).
// See the higher level reader/parser package for turning tokens into objects.
package tokenizer

// Code ported from the Java PDFTK library - BK 2020

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Kind uint8

const (
	EOF Kind = iota
	Float
	Integer
	String
	StringHex
	Name
	StartArray
	EndArray
	StartDic
	EndDic
	Other // includes commands in content streams and CMaps

	StartProc  // only valid in PostScript files
	EndProc    // idem
	CharString // PS only: binary stream, introduced by an integer and a RD or -| command
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Float:
		return "Float"
	case Integer:
		return "Integer"
	case String:
		return "String"
	case StringHex:
		return "StringHex"
	case Name:
		return "Name"
	case StartArray:
		return "StartArray"
	case EndArray:
		return "EndArray"
	case StartDic:
		return "StartDic"
	case EndDic:
		return "EndDic"
	case Other:
		return "Other"
	case StartProc:
		return "StartProc"
	case EndProc:
		return "EndProc"
	case CharString:
		return "CharString"
	default:
		return "<invalid token>"
	}
}

func isWhitespace(ch byte) bool {
	switch ch {
	case 0, 9, 10, 12, 13, 32:
		return true
	default:
		return false
	}
}

func isEOL(ch byte) bool {
	return ch == 10 || ch == 13
}

// white space + delimiters
func isDelimiter(ch byte) bool {
	switch ch {
	case 40, 41, 60, 62, 91, 93, 123, 125, 47, 37:
		return true
	default:
		return isWhitespace(ch)
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Token represents a basic piece of information.
// `Value` must be interpreted according to `Kind`,
// which is left to parsing packages.
type Token struct {
	Kind  Kind
	Value string // additional value found in the data
}

// Int returns the integer value of the token,
// also accepting float values and truncating them toward zero.
func (t Token) Int() (int, error) {
	f, err := t.Float()
	return int(f), err
}

// Float returns the float value of the token.
func (t Token) Float() (float64, error) {
	return strconv.ParseFloat(t.Value, 64)
}

// IsNumber returns `true` for integers and floats.
func (t Token) IsNumber() bool {
	return t.Kind == Integer || t.Kind == Float
}

// return true for binary stream or inline image data: the tokenizer
// cannot handle these bytes on its own, and a parser must take over.
func (t Token) startsBinary() bool {
	return t.Kind == Other && (t.Value == "stream" || t.Value == "ID")
}

// IsOther returns true if it has `Other` kind, with the given value.
func (t Token) IsOther(value string) bool {
	return t.Kind == Other && t.Value == value
}

// Tokenize consumes all the input, splitting it into tokens.
// When performance matters, prefer the iteration method `NextToken`
// of the Tokenizer type.
func Tokenize(data []byte) ([]Token, error) {
	tk := NewTokenizer(data)
	var out []Token
	t, err := tk.NextToken()
	for ; t.Kind != EOF && err == nil; t, err = tk.NextToken() {
		out = append(out, t)
	}
	return out, err
}

// Tokenizer is a PDF/PostScript tokenizer.
//
// It handles PostScript features used by embedded Type1 fonts and CMaps,
// such as procedures (`{ }`) and binary CharStrings (introduced by an
// integer length and a `RD`/`-|` command).
//
// Comments are skipped transparently.
//
// The tokenizer cannot handle streams and inline image data on its own:
// it stops (by returning an EOF token) when such a keyword is reached.
// Processing may then resume with the `SkipBytes` method.
type Tokenizer struct {
	data []byte

	// indirect references require reading two more tokens,
	// so we keep the two next tokens (and their position) ready.

	pos int // main read position (end of the aaToken)

	currentPos int // end of the current (aToken) token
	nextPos    int // end of the next (aaToken) token

	aToken Token // n+1
	aEOL   bool  // was an end-of-line seen before aToken
	aError error

	aaToken Token // n+2
	aaEOL   bool
	aaError error

	// scratch value set by nextToken, read back by its caller
	tmpEOL bool
}

// NewTokenizer returns a tokenizer reading from `data`.
func NewTokenizer(data []byte) Tokenizer {
	tk := Tokenizer{data: data}
	tk.initiateAt(0)
	return tk
}

// NewTokenizerFromReader drains `r` and returns a tokenizer over its content.
func NewTokenizerFromReader(r io.Reader) Tokenizer {
	data, _ := io.ReadAll(r)
	return NewTokenizer(data)
}

// there are two cases where NextToken() is not sufficient:
// at the start (aToken and aaToken are empty), and after skipping over
// bytes (aToken and aaToken are stale). In these cases, initiateAt forces
// the two next tokenizations (whereas NextToken only does one).
func (tk *Tokenizer) initiateAt(pos int) {
	tk.currentPos = pos
	tk.pos = pos
	tk.aToken, tk.aError = tk.nextToken(Token{})
	tk.aEOL = tk.tmpEOL
	tk.nextPos = tk.pos
	tk.aaToken, tk.aaError = tk.nextToken(tk.aToken)
	tk.aaEOL = tk.tmpEOL
}

// PeekToken reads a token but does not advance the position.
// It returns a cached value, meaning it is a very cheap call.
func (pr Tokenizer) PeekToken() (Token, error) {
	return pr.aToken, pr.aError
}

// PeekPeekToken reads the token after the next but does not advance the
// position. It returns a cached value, meaning it is a very cheap call.
func (pr Tokenizer) PeekPeekToken() (Token, error) {
	return pr.aaToken, pr.aaError
}

// HasEOLBeforeToken reports whether an end-of-line byte (CR or LF) was
// skipped while scanning the whitespace preceding the token that the
// next call to NextToken will return.
func (pr Tokenizer) HasEOLBeforeToken() bool {
	return pr.aEOL
}

// CurrentPosition returns the byte offset of the token that the next
// call to NextToken will return.
func (pr Tokenizer) CurrentPosition() int {
	return pr.currentPos
}

// NextToken reads a token and advances (consuming the token).
// If EOF is reached, no error is returned, but an `EOF` token.
func (pr *Tokenizer) NextToken() (Token, error) {
	tk, err := pr.PeekToken()                     // n+1 to n
	pr.aToken, pr.aError = pr.aaToken, pr.aaError // n+2 to n+1
	pr.aEOL = pr.aaEOL
	pr.currentPos = pr.nextPos // n+1 to n
	pr.nextPos = pr.pos        // n+2 to n

	// the tokenizer can't handle binary streams or inline image data:
	// such data must be handled by a parser, so we stop tokenization
	// when we encounter the keyword introducing it.
	if pr.aaToken.startsBinary() {
		pr.aaToken, pr.aaError = Token{Kind: EOF}, nil
		pr.aaEOL = false
	} else {
		pr.aaToken, pr.aaError = pr.nextToken(pr.aaToken) // read n+3, store as n+2
		pr.aaEOL = pr.tmpEOL
	}
	return tk, err
}

// SkipBytes skips the next `n` bytes and returns them. This method is
// useful to handle streams and inline image data.
func (pr *Tokenizer) SkipBytes(n int) []byte {
	// use currentPos, the position 'expected' by the caller
	target := pr.currentPos + n
	if target > len(pr.data) { // truncate if needed
		target = len(pr.data)
	}
	out := pr.data[pr.currentPos:target]
	pr.initiateAt(target)
	return out
}

// Bytes returns a slice of the input, starting from the current position.
func (pr Tokenizer) Bytes() []byte {
	if pr.currentPos >= len(pr.data) {
		return nil
	}
	return pr.data[pr.currentPos:]
}

// IsHexChar converts a hex character into its value and a success flag
// (see encoding/hex for details).
func IsHexChar(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return c, false
}

// return false if EOF, true if the position moved forward
func (pr *Tokenizer) read() (byte, bool) {
	if pr.pos >= len(pr.data) {
		return 0, false
	}
	ch := pr.data[pr.pos]
	pr.pos++
	return ch, true
}

// reads and advances, mutating `pos`. Sets `pr.tmpEOL`, which the caller
// should read back immediately after the call.
func (pr *Tokenizer) nextToken(previous Token) (Token, error) {
	ch, ok := pr.read()
	hadEOL := false
	for ok && isWhitespace(ch) {
		if isEOL(ch) {
			hadEOL = true
		}
		ch, ok = pr.read()
	}
	pr.tmpEOL = hadEOL
	if !ok {
		return Token{Kind: EOF}, nil
	}

	var outBuf []byte
	switch ch {
	case '[':
		return Token{Kind: StartArray}, nil
	case ']':
		return Token{Kind: EndArray}, nil
	case '{':
		return Token{Kind: StartProc}, nil
	case '}':
		return Token{Kind: EndProc}, nil
	case '/':
		for {
			ch, ok = pr.read()
			if !ok || isDelimiter(ch) {
				break
			}
			outBuf = append(outBuf, ch)
			if ch == '#' {
				h1, _ := pr.read()
				h2, _ := pr.read()
				_, err := hex.Decode([]byte{0}, []byte{h1, h2})
				if err != nil {
					return Token{}, errors.New("corrupted name object")
				}
				outBuf = append(outBuf, h1, h2)
			}
		}
		// the delimiter may be important, dont skip it
		if ok { // we moved, so its safe go back
			pr.pos--
		}
		return Token{Kind: Name, Value: string(outBuf)}, nil
	case '>':
		ch, ok = pr.read()
		if ch != '>' {
			return Token{}, errors.New("'>' not expected")
		}
		return Token{Kind: EndDic}, nil
	case '<':
		v1, ok1 := pr.read()
		if v1 == '<' {
			return Token{Kind: StartDic}, nil
		}
		var (
			v2  byte
			ok2 bool
		)
		for {
			for ok1 && isWhitespace(v1) {
				v1, ok1 = pr.read()
			}
			if v1 == '>' {
				break
			}
			v1, ok1 = IsHexChar(v1)
			if !ok1 {
				return Token{}, fmt.Errorf("invalid hex char %d (%s)", v1, string(rune(v1)))
			}
			v2, ok2 = pr.read()
			for ok2 && isWhitespace(v2) {
				v2, ok2 = pr.read()
			}
			if v2 == '>' {
				ch = v1 << 4
				outBuf = append(outBuf, ch)
				break
			}
			v2, ok2 = IsHexChar(v2)
			if !ok2 {
				return Token{}, fmt.Errorf("invalid hex char %d", v2)
			}
			ch = (v1 << 4) + v2
			outBuf = append(outBuf, ch)
			v1, ok1 = pr.read()
		}
		return Token{Kind: StringHex, Value: string(outBuf)}, nil
	case '%':
		ch, ok = pr.read()
		for ok && ch != '\r' && ch != '\n' {
			ch, ok = pr.read()
		}
		// ignore comments: go to next token, but keep the EOL
		// already seen before the comment started.
		tok, err := pr.nextToken(previous)
		pr.tmpEOL = hadEOL || pr.tmpEOL
		return tok, err
	case '(':
		nesting := 0
		for {
			ch, ok = pr.read()
			if !ok {
				break
			}
			if ch == '(' {
				nesting++
			} else if ch == ')' {
				nesting--
			} else if ch == '\\' {
				lineBreak := false
				ch, ok = pr.read()
				switch ch {
				case 'n':
					ch = '\n'
				case 'r':
					ch = '\r'
				case 't':
					ch = '\t'
				case 'b':
					ch = '\b'
				case 'f':
					ch = '\f'
				case '(', ')', '\\':
				case '\r':
					lineBreak = true
					ch, ok = pr.read()
					if ch != '\n' {
						pr.pos--
					}
				case '\n':
					lineBreak = true
				default:
					if ch < '0' || ch > '7' {
						break
					}
					octal := ch - '0'
					ch, ok = pr.read()
					if ch < '0' || ch > '7' {
						pr.pos--
						ch = octal
						break
					}
					octal = (octal << 3) + ch - '0'
					ch, ok = pr.read()
					if ch < '0' || ch > '7' {
						pr.pos--
						ch = octal
						break
					}
					octal = (octal << 3) + ch - '0'
					ch = octal & 0xff
					break
				}
				if lineBreak {
					continue
				}
				if !ok || ch < 0 {
					break
				}
			} else if ch == '\r' {
				ch, ok = pr.read()
				if !ok {
					break
				}
				if ch != '\n' {
					pr.pos--
					ch = '\n'
				}
			}
			if nesting == -1 {
				break
			}
			outBuf = append(outBuf, ch)
		}
		if !ok {
			return Token{}, errors.New("error reading string: unexpected EOF")
		}
		return Token{Kind: String, Value: string(outBuf)}, nil
	default:
		pr.pos-- // we need the test char
		if token, ok := pr.readNumber(); ok {
			return token, nil
		}
		ch, ok = pr.read() // we went back before parsing a number
		outBuf = append(outBuf, ch)
		ch, ok = pr.read()
		for !isDelimiter(ch) {
			outBuf = append(outBuf, ch)
			ch, ok = pr.read()
		}
		if ok {
			pr.pos--
		}
		cmd := string(outBuf)
		if cmd == "RD" || cmd == "-|" {
			// return the next CharString instead
			if previous.Kind == Integer {
				f, err := previous.Int()
				if err != nil {
					return Token{}, fmt.Errorf("invalid charstring length: %s", err)
				}
				return pr.readCharString(f), nil
			}
			return Token{}, errors.New("expected INTEGER before -| or RD")
		}
		return Token{Kind: Other, Value: cmd}, nil
	}
}

// accept PS syntax (radix and exponents); return false if it is not a number
func (pr *Tokenizer) readNumber() (Token, bool) {
	markedPos := pr.pos

	sb, radix := &strings.Builder{}, &strings.Builder{}
	c, ok := pr.read() // one char is OK
	hasDigit := false
	// optional + or -
	if c == '+' || c == '-' {
		sb.WriteByte(c)
		c, _ = pr.read()
	}

	// optional digits
	for isDigit(c) {
		sb.WriteByte(c)
		c, ok = pr.read()
		hasDigit = true
	}

	// optional .
	if c == '.' {
		sb.WriteByte(c)
		c, ok = pr.read()
	} else if c == '#' {
		// PostScript radix number takes the form base#number
		radix = sb
		sb = &strings.Builder{}
		c, _ = pr.read()
	} else if sb.Len() == 0 || !hasDigit {
		// failure
		pr.pos = markedPos
		return Token{}, false
	} else if c == 'E' || c == 'e' {
		// optional minus
		sb.WriteByte(c)
		c, ok = pr.read()
		if c == '-' {
			sb.WriteByte(c)
			c, ok = pr.read()
		}
	} else {
		// integer
		if ok {
			pr.pos--
		}
		return Token{Value: sb.String(), Kind: Integer}, true
	}

	// required digit, except after the point of a real like "45."
	if isDigit(c) {
		sb.WriteByte(c)
		c, ok = pr.read()
	} else if !hasDigit || !strings.HasSuffix(sb.String(), ".") {
		// failure
		pr.pos = markedPos
		return Token{}, false
	}

	// optional digits
	for isDigit(c) {
		sb.WriteByte(c)
		c, ok = pr.read()
	}

	if ok {
		pr.pos--
	}
	if radix := radix.String(); radix != "" {
		intRadix, _ := strconv.Atoi(radix)
		valInt, _ := strconv.ParseInt(sb.String(), intRadix, 0)
		return Token{Value: strconv.Itoa(int(valInt)), Kind: Integer}, true
	}
	return Token{Value: sb.String(), Kind: Float}, true
}

// reads a binary CharString.
func (pr *Tokenizer) readCharString(length int) Token {
	pr.pos++ // space
	maxL := pr.pos + length
	if maxL >= len(pr.data) {
		maxL = len(pr.data)
	}
	out := Token{Value: string(pr.data[pr.pos:maxL]), Kind: CharString}
	pr.pos += length
	return out
}
