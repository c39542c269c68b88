package file

import (
	"bytes"
	"fmt"
	"io/ioutil"

	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/parser"
)

// xRefTable is the main access to the objects of the file. It is
// filled layer by layer, newest xref section first, so that an entry
// already present always wins over the same number found in an older
// section (incremental updates).
type xRefTable struct {
	// object reference -> entry
	objects map[parser.IndirectRef]*xrefEntry

	// object streams are parsed once and cached here, not once per
	// object they contain
	objectStreams map[int]objectStream
}

func newXRefTable() xRefTable {
	return xRefTable{
		objects:       make(map[parser.IndirectRef]*xrefEntry),
		objectStreams: make(map[int]objectStream),
	}
}

// xrefEntry locates one object. It starts as pure location
// information; object is populated at the first resolution.
type xrefEntry struct {
	object parser.Object // nil until resolved

	free   bool // free entries are never resolved
	offset int64

	// an object packed in an object stream has no file offset of its
	// own: it is located by its container and its index within it
	streamObjectNumber int
	streamObjectIndex  int
}

// add records entry for ref unless a newer section already defined
// that number.
func (t xRefTable) add(ref parser.IndirectRef, entry xrefEntry) {
	if _, alreadyDefined := t.objects[ref]; alreadyDefined {
		return
	}
	t.objects[ref] = &entry
}

// processAllObjects resolves every in-use entry of the table, so that
// the returned PDFFile is fully materialized in memory.
func (ctx *context) processAllObjects() error {
	for on, entry := range ctx.xrefTable.objects {
		if entry.free {
			continue
		}
		if _, err := ctx.resolveObjectNumber(on); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *context) resolve(o parser.Object) (parser.Object, error) {
	ref, ok := o.(parser.IndirectRef)
	if !ok {
		return o, nil // direct object
	}
	return ctx.resolveObjectNumber(ref)
}

// resolveObjectNumber loads (and caches) the object designated by
// objRef. Per 7.3.10, a reference to an undefined object is not an
// error: it resolves to null.
func (ctx *context) resolveObjectNumber(objRef model.ObjIndirectRef) (parser.Object, error) {
	entry, ok := ctx.xrefTable.objects[objRef]
	if !ok {
		return model.ObjNull{}, nil
	}
	if entry.object != nil { // already resolved
		return entry.object, nil
	}

	// pre-assign null before recursing, so that reference loops
	// terminate instead of overflowing the stack
	entry.object = model.ObjNull{}

	isCompressedObject := entry.streamObjectNumber != 0
	var err error
	if isCompressedObject {
		entry.object, err = ctx.resolveCompressedObject(entry)
	} else {
		entry.object, err = ctx.parseObjectAt(objRef, entry.offset)
	}
	if err != nil {
		return nil, err
	}

	// objects inside object streams are already covered by the
	// container's encryption: only top-level objects are decrypted
	if ctx.enc != nil && !isCompressedObject {
		entry.object, err = ctx.enc.decryptObject(entry.object, objRef)
	}
	return entry.object, err
}

func (ctx *context) resolveCompressedObject(entry *xrefEntry) (parser.Object, error) {
	container, err := ctx.processObjectStream(entry.streamObjectNumber)
	if err != nil {
		return nil, err
	}
	if entry.streamObjectIndex >= len(container) {
		return nil, model.NewSyntaxError(
			fmt.Sprintf("object index %d out of the container's range %d", entry.streamObjectIndex, len(container)), nil)
	}
	return container[entry.streamObjectIndex], nil
}

// parseObjectAt reads the `N G obj ... endobj` block at offset. If the
// object is a stream, its raw (still encoded, still encrypted) content
// is attached.
func (ctx *context) parseObjectAt(objRef model.ObjIndirectRef, offset int64) (parser.Object, error) {
	tk, err := ctx.tokenizerAt(offset)
	if err != nil {
		return nil, model.NewSyntaxError(fmt.Sprintf("invalid offset %d in xref table", offset), err)
	}

	if _, _, err = parseObjectDeclaration(tk); err != nil {
		return nil, model.NewSyntaxError(fmt.Sprintf("invalid object declaration for %v", objRef), err)
	}

	obj, err := parser.NewParserFromTokenizer(tk).ParseObject()
	if err != nil {
		return nil, model.NewSyntaxError(fmt.Sprintf("invalid content for object %v", objRef), err)
	}

	// a dict followed by the `stream` keyword is a stream object:
	// locate its content without decoding it
	nt, _ := tk.NextToken()
	streamHeader, isDict := obj.(model.ObjDict)
	if !isDict || !nt.IsOther("stream") {
		return obj, nil
	}

	// save the stream position before resolving Length, which may
	// move the tokenizer
	streamPosition := offset + int64(tk.StreamPosition())

	filters, err := parser.ParseFilters(streamHeader["Filter"], streamHeader["DecodeParms"], ctx.resolve)
	if err != nil {
		return nil, model.NewSyntaxError("invalid stream filters", err)
	}
	length, err := ctx.intEntry(streamHeader, "Length")
	if err != nil {
		return nil, err
	}

	content, err := ctx.extractStreamContent(filters, streamPosition, length)
	if err != nil {
		return nil, fmt.Errorf("can't read stream content of %v: %w", objRef, err)
	}
	return model.ObjStream{Args: streamHeader, Content: content}, nil
}

// intEntry resolves dict[key] to an integer, required.
func (ctx *context) intEntry(dict parser.Dict, key model.ObjName) (int, error) {
	resolved, err := ctx.resolve(dict[key])
	if err != nil {
		return 0, model.NewSyntaxError(fmt.Sprintf("invalid %s entry", key), err)
	}
	i, ok := resolved.(parser.Integer)
	if !ok {
		return 0, model.NewSyntaxError(fmt.Sprintf("%s: expected integer, got %T", key, resolved), nil)
	}
	return int(i), nil
}

// --------------------- cross-reference streams ---------------------

// xrefStreamHeader is the decoded form of the entries an xref stream
// dictionary must carry (7.5.8.2).
type xrefStreamHeader struct {
	widths   [3]int   // the W entry: bytes per field
	sections [][2]int // the Index entry: (first, count) pairs
	size     int
	prev     int64 // 0 when there is no previous section
}

func (h xrefStreamHeader) recordSize() int {
	return h.widths[0] + h.widths[1] + h.widths[2]
}

func (h xrefStreamHeader) recordCount() int {
	total := 0
	for _, section := range h.sections {
		total += section[1]
	}
	return total
}

// parseXRefStream decodes the xref stream at offset, registers its
// entries, and returns the offset of the previous section (0 if none).
func (ctx *context) parseXRefStream(offset int64) (int64, error) {
	streamHeader, err := ctx.parseStreamDictAt(offset)
	if err != nil {
		return 0, err
	}

	header, err := parseXRefStreamHeader(streamHeader.dict)
	if err != nil {
		return 0, err
	}

	// an xref stream doubles as the trailer dict of its section
	if err = ctx.trailer.parseTrailerInfo(streamHeader.dict); err != nil {
		return 0, err
	}

	records, err := ctx.xRefStreamContent(streamHeader, header)
	if err != nil {
		return 0, err
	}

	ctx.registerXRefStreamRecords(header, records)

	// the stream itself is deliberately not stored in the table: it is
	// not a document object, and must never be run through decryption
	return header.prev, nil
}

// xRefStreamContent reads and decodes the stream content.
// Per 7.5.8.2 the entries of an xref stream dict are direct objects,
// and the stream is never encrypted, so the decode path is simpler
// than for a general stream object.
func (ctx *context) xRefStreamContent(stream streamDictHeader, header xrefStreamHeader) ([]byte, error) {
	filters, err := parser.ParseDirectFilters(stream.dict["Filter"], stream.dict["DecodeParms"])
	if err != nil {
		return nil, err
	}

	content, err := ctx.extractStreamContent(filters, stream.contentOffset, header.recordCount()*header.recordSize())
	if err != nil {
		return nil, err
	}

	r, err := filters.DecodeReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	decoded, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if expected := header.recordCount() * header.recordSize(); len(decoded) < expected {
		return nil, model.NewSyntaxError(
			fmt.Sprintf("truncated xref stream: %d bytes for %d expected", len(decoded), expected), nil)
	}
	return decoded, nil
}

// registerXRefStreamRecords walks the records and fills the xref
// table. Field types (7.5.8.3): 0 free, 1 in use at offset, 2 packed
// in an object stream. A zero-width type field defaults to 1.
func (ctx *context) registerXRefStreamRecords(header xrefStreamHeader, records []byte) {
	w0, w1, w2 := header.widths[0], header.widths[1], header.widths[2]
	recordSize := header.recordSize()

	record := 0
	for _, section := range header.sections {
		first, count := section[0], section[1]
		for i := 0; i < count; i++ {
			row := records[record*recordSize : (record+1)*recordSize]
			record++

			kind := int64(1)
			if w0 != 0 {
				kind = beInt(row[:w0])
			}
			f2 := beInt(row[w0 : w0+w1])
			f3 := beInt(row[w0+w1 : w0+w1+w2])

			ref := parser.IndirectRef{ObjectNumber: first + i}
			switch kind {
			case 0: // free
				ref.GenerationNumber = int(f3)
				ctx.xrefTable.add(ref, xrefEntry{free: true, offset: f2})
			case 1: // in use
				ref.GenerationNumber = int(f3)
				ctx.xrefTable.add(ref, xrefEntry{offset: f2})
			case 2: // in an object stream; generation is always 0
				ctx.xrefTable.add(ref, xrefEntry{
					streamObjectNumber: int(f2),
					streamObjectIndex:  int(f3),
				})
			}
		}
	}
}

// beInt reads buf as a big-endian integer.
func beInt(buf []byte) (i int64) {
	for _, b := range buf {
		i = i<<8 | int64(b)
	}
	return i
}

func parseXRefStreamHeader(dict parser.Dict) (xrefStreamHeader, error) {
	var out xrefStreamHeader

	out.prev, _ = offsetFromObject(dict["Prev"])

	size, ok := dict["Size"].(parser.Integer)
	if !ok {
		return out, model.NewSyntaxError("xref stream: missing Size entry", nil)
	}
	out.size = int(size)

	w, _ := dict["W"].(parser.Array)
	if len(w) < 3 {
		return out, model.NewSyntaxError("xref stream: expected 3 field widths in W", nil)
	}
	for i := range out.widths {
		width, ok := w[i].(parser.Integer)
		if !ok || width < 0 {
			return out, model.NewSyntaxError("xref stream: invalid field width in W", nil)
		}
		out.widths[i] = int(width)
	}

	// Index is optional and defaults to the whole range
	index, _ := dict["Index"].(parser.Array)
	if len(index) == 0 {
		out.sections = [][2]int{{0, out.size}}
		return out, nil
	}
	for i := 0; i+1 < len(index); i += 2 {
		first, ok1 := index[i].(parser.Integer)
		count, ok2 := index[i+1].(parser.Integer)
		if !ok1 || !ok2 {
			return out, model.NewSyntaxError("xref stream: corrupted Index entry", nil)
		}
		out.sections = append(out.sections, [2]int{int(first), int(count)})
	}
	return out, nil
}
