package parser

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/quillcore/pdfcore/contentstream"
	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/parser/filters"
)

var errBIExpressionCorrupt = errors.New("corrupt BI (inline image) expression")

// parseInlineImage reads the abbreviated dict between BI and ID, then
// the binary samples up to EI. It is entered right after the BI
// keyword, with an empty operand stack.
func (pr *Parser) parseInlineImage(res model.ResourcesColorSpace) (contentstream.OpBeginImage, error) {
	var (
		out                   contentstream.OpBeginImage
		filterO, decodeParams Object // parsing is delayed until ID
	)
	if err := assertLength(pr.opsStack, 0); err != nil {
		return out, err
	}
	for {
		obj, err := pr.ParseObject()
		if err != nil {
			return out, err
		}
		if obj == Command("ID") {
			// the characteristics are done; EI is consumed along with
			// the samples
			err = pr.parseImageData(&out, filterO, decodeParams, res)
			return out, err
		}

		// otherwise, a (name, value) pair
		name, ok := obj.(Name)
		if !ok {
			return out, errBIExpressionCorrupt
		}
		value, err := pr.ParseObject()
		if err != nil {
			return out, errBIExpressionCorrupt
		}
		switch name {
		case "Filter", "F":
			filterO = value
		case "DecodeParms", "DP":
			decodeParams = value
		default:
			if err := parseImageField(name, value, &out); err != nil {
				return out, err
			}
		}
	}
}

// parseImageField interprets one entry of the abbreviated image dict,
// accepting both the short and the long key forms (Table 93).
func parseImageField(name Name, value Object, img *contentstream.OpBeginImage) error {
	intValue := func() (int, error) {
		i, ok := value.(Integer)
		if !ok {
			return 0, errBIExpressionCorrupt
		}
		return int(i), nil
	}
	boolValue := func() (bool, error) {
		b, ok := value.(Bool)
		if !ok {
			return false, errBIExpressionCorrupt
		}
		return bool(b), nil
	}

	var err error
	switch name {
	case "BitsPerComponent", "BPC":
		var bpc int
		if bpc, err = intValue(); err == nil {
			img.Image.BitsPerComponent = uint8(bpc)
		}
	case "Width", "W":
		img.Image.Width, err = intValue()
	case "Height", "H":
		img.Image.Height, err = intValue()
	case "ImageMask", "IM":
		img.Image.ImageMask, err = boolValue()
	case "Interpolate", "I":
		img.Image.Interpolate, err = boolValue()
	case "Decode", "D":
		arr, ok := value.(Array)
		if !ok {
			return errBIExpressionCorrupt
		}
		img.Image.Decode, err = processPoints(arr)
	case "Intent":
		in, ok := value.(Name)
		if !ok {
			return errBIExpressionCorrupt
		}
		img.Image.Intent = model.ObjName(in)
	case "ColorSpace", "CS":
		switch value := value.(type) {
		case Name:
			img.ColorSpace = contentstream.ImageColorSpaceName{ColorSpaceName: model.ColorSpaceName(value)}
		case Array:
			img.ColorSpace, err = processIndexedCS(value)
		}
	}
	return err
}

func processPoints(arr Array) ([][2]Fl, error) {
	if len(arr)%2 != 0 {
		return nil, fmt.Errorf("expected even length for array, got %v", arr)
	}
	out := make([][2]Fl, len(arr)/2)
	for i := range out {
		a, err := assertNumber(arr[2*i])
		if err != nil {
			return nil, err
		}
		b, err := assertNumber(arr[2*i+1])
		if err != nil {
			return nil, err
		}
		out[i] = [2]Fl{a, b}
	}
	return out, nil
}

// processIndexedCS reads the restricted [/I base hival <lookup>] form
// allowed for inline images: the base must be a device space and the
// table a byte string.
func processIndexedCS(arr Array) (contentstream.ImageColorSpaceIndexed, error) {
	var out contentstream.ImageColorSpaceIndexed
	if len(arr) != 4 {
		return out, errBIExpressionCorrupt
	}
	base, ok := arr[1].(Name)
	if !ok {
		return out, errBIExpressionCorrupt
	}
	out.Base = model.ColorSpaceName(base)
	hival, ok := arr[2].(Integer)
	if !ok {
		return out, errBIExpressionCorrupt
	}
	out.Hival = uint8(hival)
	switch table := arr[3].(type) {
	case StringLiteral:
		out.Lookup = model.ColorTableBytes(table)
	case HexLiteral:
		out.Lookup = model.ColorTableBytes(table)
	default:
		return out, errBIExpressionCorrupt
	}
	return out, nil
}

var errFiltersCorrupted = errors.New("corrupted filter expression")

// ParseDirectFilters is the same as ParseFilters, but for direct
// objects, as found in inline image parameters and xref stream dicts.
func ParseDirectFilters(filters, decodeParams Object) (model.Filters, error) {
	return ParseFilters(filters, decodeParams, func(o Object) (Object, error) { return o, nil })
}

// ParseFilters processes the given filters and their (optional)
// parameters. `resolver` is called to resolve potential indirect
// objects. An empty list may be returned if the filters are nil.
func ParseFilters(filterO, decodeParams Object, resolver func(Object) (Object, error)) (model.Filters, error) {
	filterO, err := resolver(filterO)
	if err != nil {
		return nil, err
	}
	if filterO == nil {
		return nil, nil
	}

	// normalize the one-filter shorthand
	if filterName, isName := filterO.(Name); isName {
		filterO = Array{filterName}
	}
	ar, ok := filterO.(Array)
	if !ok {
		return nil, errFiltersCorrupted
	}
	out := make(model.Filters, 0, len(ar))
	for _, name := range ar {
		name, err = resolver(name)
		if err != nil {
			return nil, err
		}
		filterName, isName := name.(Name)
		if !isName {
			return nil, errFiltersCorrupted
		}
		out = append(out, model.Filter{Name: model.ObjName(filterName)})
	}
	if len(out) == 0 {
		out = nil // preserve the nil-ness of an empty /Filter entry
	}

	decodeParams, err = resolver(decodeParams)
	if err != nil {
		return nil, err
	}
	switch decodeParams := decodeParams.(type) {
	case Array: // one dict param per filter
		if len(decodeParams) != len(out) {
			return nil, fmt.Errorf("unexpected length for DecodeParms array: %d", len(decodeParams))
		}
		for i, parms := range decodeParams {
			parms, err = resolver(parms)
			if err != nil {
				return nil, err
			}
			out[i].DecodeParms = processOneDecodeParms(parms)
		}
	case Dict: // one filter and one dict param
		if len(out) != 1 {
			return nil, fmt.Errorf("DecodeParms as dict only supported for one filter, got %d", len(out))
		}
		out[0].DecodeParms = processOneDecodeParms(decodeParams)
	case nil: // OK
	default:
		return nil, errFiltersCorrupted
	}

	return out, nil
}

// processOneDecodeParms flattens one parameter dict to integers, with
// booleans stored as 0 or 1; entries of any other type are dropped.
func processOneDecodeParms(parms Object) map[string]int {
	parmsDict, _ := parms.(Dict)
	parmsModel := make(map[string]int)
	for paramName, paramVal := range parmsDict {
		switch val := paramVal.(type) {
		case Bool:
			if val {
				parmsModel[string(paramName)] = 1
			} else {
				parmsModel[string(paramName)] = 0
			}
		case Integer:
			parmsModel[string(paramName)] = int(val)
		case Float:
			parmsModel[string(paramName)] = int(val)
		}
	}
	return parmsModel
}

// parseImageData reads the inline samples, stores them in img, and
// consumes the closing EI keyword. Unfiltered data has a length fully
// determined by the image metrics; filtered data is bounded by the
// first filter's own end-of-data marker.
func (pr *Parser) parseImageData(img *contentstream.OpBeginImage, filterO, decodeParams Object, res model.ResourcesColorSpace) error {
	var err error
	img.Image.Filter, err = ParseDirectFilters(filterO, decodeParams)
	if err != nil {
		return err
	}

	if len(img.Image.Filter) == 0 {
		comps, bits, err := img.Metrics(res)
		if err != nil {
			return err
		}
		n := img.Image.Height * ((img.Image.Width*comps*bits + 7) / 8)
		img.Image.Content = pr.tokens.SkipBytes(n + 1) // with the space after ID
	} else {
		pr.tokens.SkipBytes(1) // the space after ID
		input := pr.tokens.Bytes()

		// only the first filter bounds the data
		fi := img.Image.Filter[0]
		skipper, err := filters.SkipperFromFilter(string(fi.Name), fi.DecodeParms)
		if err != nil {
			return err
		}
		encodedLength, err := skipper.Skip(bytes.NewReader(input))
		if err != nil {
			return fmt.Errorf("can't read compressed inline image data: %s", err)
		}
		// the content is kept in its compressed form
		img.Image.Content = input[0:encodedLength]
		pr.tokens.SkipBytes(encodedLength)
	}

	o, err := pr.ParseObject() // EI
	if err != nil {
		return err
	}
	if o != Command("EI") {
		return fmt.Errorf("expected end of inline image, got %v", o)
	}
	return nil
}
