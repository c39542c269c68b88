package file

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/parser"
)

// objectStream is a parsed object stream: the N sub-objects it
// contains, in prolog order.
type objectStream []parser.Object

// processObjectStream loads (and caches) the object stream with the
// given container number, parsing every sub-object it contains.
// Containers are cached so that resolving each packed object does not
// re-decode the whole stream.
func (ctx *context) processObjectStream(containerNumber int) (objectStream, error) {
	if cached, ok := ctx.xrefTable.objectStreams[containerNumber]; ok {
		return cached, nil
	}

	ref := model.ObjIndirectRef{ObjectNumber: containerNumber}
	entry, ok := ctx.xrefTable.objects[ref]
	if !ok {
		return nil, model.NewSyntaxError(fmt.Sprintf("missing object stream container %d", containerNumber), nil)
	}

	streamHeader, err := ctx.parseStreamDictAt(entry.offset)
	if err != nil {
		return nil, model.NewSyntaxError(fmt.Sprintf("invalid object stream at offset %d", entry.offset), err)
	}
	if _, hasExtends := streamHeader.dict["Extends"]; hasExtends {
		return nil, model.NewGenericError("chained object streams (Extends) are not supported", nil)
	}

	filters, err := parser.ParseFilters(streamHeader.dict["Filter"], streamHeader.dict["DecodeParms"], ctx.resolve)
	if err != nil {
		return nil, model.NewSyntaxError("invalid object stream filters", err)
	}
	length, err := ctx.intEntry(streamHeader.dict, "Length")
	if err != nil {
		return nil, err
	}

	// the container is decrypted as a regular stream, using its own
	// reference; its sub-objects are not encrypted individually
	decoded, err := ctx.decodeStreamContent(ref, filters, streamHeader.contentOffset, length)
	if err != nil {
		return nil, fmt.Errorf("can't decode object stream %d: %w", containerNumber, err)
	}

	offsets, err := ctx.objectStreamOffsets(streamHeader.dict, decoded)
	if err != nil {
		return nil, err
	}

	objects := make(objectStream, len(offsets))
	for i := range objects {
		start, end := offsets[i], len(decoded)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		objects[i], err = parser.ParseObject(decoded[start:end])
		if err != nil {
			return nil, model.NewSyntaxError(fmt.Sprintf("invalid sub-object %d in object stream %d", i, containerNumber), err)
		}
	}

	ctx.xrefTable.objectStreams[containerNumber] = objects
	return objects, nil
}

// objectStreamOffsets reads the prolog of an object stream: the First
// entry gives its length, and its content is N pairs (object number,
// offset relative to First), with offsets in increasing order. The
// returned offsets are absolute into decoded.
func (ctx *context) objectStreamOffsets(dict parser.Dict, decoded []byte) ([]int, error) {
	first, err := ctx.intEntry(dict, "First")
	if err != nil {
		return nil, err
	}
	if first > len(decoded) {
		return nil, model.NewSyntaxError(fmt.Sprintf("out of bounds First entry: %d > %d", first, len(decoded)), nil)
	}

	// the separator should be white space, but some writers use NUL
	prolog := bytes.ReplaceAll(decoded[:first], []byte{0x00}, []byte{0x20})
	pairs := bytes.Fields(prolog)
	if len(pairs)%2 != 0 {
		return nil, model.NewSyntaxError(fmt.Sprintf("odd number of fields (%d) in object stream prolog", len(pairs)), nil)
	}

	offsets := make([]int, len(pairs)/2)
	for i := range offsets {
		offset, err := strconv.Atoi(string(pairs[2*i+1]))
		if err != nil {
			return nil, model.NewSyntaxError(fmt.Sprintf("invalid offset %q in object stream prolog", pairs[2*i+1]), nil)
		}
		offset += first
		if offset > len(decoded) {
			return nil, model.NewSyntaxError(fmt.Sprintf("object offset %d past the container content", offset), nil)
		}
		offsets[i] = offset
	}
	return offsets, nil
}
