package file

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	tok "github.com/benoitkugler/pstokenizer"
	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/parser"
)

// freeHeadGeneration is the predefined generation number for the head of the free list.
const freeHeadGeneration = 65535

var errCorruptHeader = errors.New("headerVersion: corrupt pdf stream - no header version available")

// context represents an environment for processing a PDF (or FDF) file.
// It owns the low level xref table, trailer and encryption state; the
// higher level PDFFile/FDFFile are built from it once every object has
// been resolved.
type context struct {
	rs       io.ReadSeeker
	fileSize int64

	Configuration

	// HeaderVersion is the PDF version the source is claiming as per its header.
	HeaderVersion string

	xrefTable xRefTable
	trailer   trailer

	enc *encrypt // non nil for encrypted documents, once authenticated

	// additionalStreams (array of IndirectRef) is not described in the spec,
	// but may be found in the trailer: e.g., Oasis "Open Doc"
	additionalStreams parser.Array
}

func newContext(rs io.ReadSeeker, conf *Configuration) (*context, error) {
	if conf == nil {
		conf = NewDefaultConfiguration()
	}

	rdCtx := &context{
		rs:            rs,
		Configuration: *conf,
		xrefTable:     newXRefTable(),
	}

	fileSize, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	rdCtx.fileSize = fileSize

	return rdCtx, nil
}

// processFile is the internal entry point shared by the PDF and FDF readers;
// it only builds and authenticates the xref table, without resolving objects.
func processFile(rs io.ReadSeeker, conf *Configuration) (*context, error) {
	return processPDFFile(rs, conf)
}

type trailer struct {
	encrypt parser.Object // indirect ref or dict

	root *parser.IndirectRef
	info *parser.IndirectRef // optional
	id   parser.Array        // required in encrypted docs
	size int                 // Object count from PDF trailer dict.
}

// allocate a slice with length `size` and read at `offset` into it
func (ctx *context) readAt(size int, offset int64) ([]byte, error) {
	_, err := ctx.rs.Seek(offset, io.SeekStart)
	if err != nil {
		return nil, err
	}
	p := make([]byte, size)
	_, err = ctx.rs.Read(p)
	return p, err
}

// tokenizerAt returns a tokenizer reading the file starting at `offset`.
func (ctx *context) tokenizerAt(offset int64) (*tok.Tokenizer, error) {
	buf, err := ctx.readAt(int(ctx.fileSize-offset), offset)
	if err != nil {
		return nil, err
	}
	return tok.NewTokenizer(buf), nil
}

// findStringFromFileEnd scans backward from the end of the file (skipping
// the last `skip` bytes) for the first occurrence of `needle`, and returns
// the content of the file following it.
func (ctx *context) findStringFromFileEnd(skip int64, needle string) ([]byte, error) {
	rs := ctx.rs

	var (
		prevBuf, workBuf []byte
		bufSize          int64 = 512
	)
	if ctx.fileSize < bufSize {
		bufSize = ctx.fileSize
	}

	for i := 1; ; i++ {
		seekOffset := -int64(i)*bufSize - skip
		if -seekOffset > ctx.fileSize {
			return nil, fmt.Errorf("findStringFromFileEnd: %q not found", needle)
		}

		_, err := rs.Seek(seekOffset, io.SeekEnd)
		if err != nil {
			return nil, err
		}

		curBuf := make([]byte, bufSize)
		_, err = rs.Read(curBuf)
		if err != nil {
			return nil, err
		}

		workBuf = append(curBuf, prevBuf...)

		if j := bytes.LastIndex(workBuf, []byte(needle)); j != -1 {
			return workBuf[j+len(needle):], nil
		}

		prevBuf = curBuf
	}
}

// Get the file offset of the last XRefSection.
// Go to end of file and search backwards for the first occurrence of startxref {offset} %%EOF
// xref at 114172
func (ctx *context) offsetLastXRefSection(skip int64) (int64, error) {
	rs := ctx.rs

	var (
		prevBuf, workBuf []byte
		bufSize          int64 = 512
		offset           int64
	)

	// guard for very small files
	if ctx.fileSize < bufSize {
		bufSize = ctx.fileSize
	}

	for i := 1; offset == 0; i++ {

		_, err := rs.Seek(-int64(i)*bufSize-skip, io.SeekEnd)
		if err != nil {
			return 0, fmt.Errorf("can't find last xref section: %s", err)
		}

		curBuf := make([]byte, bufSize)

		_, err = rs.Read(curBuf)
		if err != nil {
			return 0, fmt.Errorf("can't read last xref section: %s", err)
		}

		workBuf = append(curBuf, prevBuf...)

		j := bytes.LastIndex(workBuf, []byte("startxref"))
		if j == -1 {
			prevBuf = curBuf
			continue
		}

		p := workBuf[j+len("startxref"):]
		posEOF := bytes.Index(p, []byte("%%EOF"))
		if posEOF == -1 {
			return 0, errors.New("no matching %%EOF for startxref")
		}

		p = p[:posEOF]
		offset, err = strconv.ParseInt(string(bytes.TrimSpace(p)), 10, 64)
		if err != nil || offset >= ctx.fileSize {
			return 0, errors.New("corrupted last xref section")
		}
	}
	return offset, nil
}

// headerVersion reads the first line of the file, looking for `prefix`
// (either "%PDF-" or "%FDF-"), and returns the version following it.
func headerVersion(rs io.ReadSeeker, prefix string) (v string, err error) {
	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	buf := make([]byte, 100)
	if _, err = rs.Read(buf); err != nil {
		return "", err
	}

	s := string(buf)
	i := bytes.Index(buf, []byte(prefix))
	if i == -1 || len(s) < i+len(prefix)+3 {
		return "", errCorruptHeader
	}

	version := s[i+len(prefix) : i+len(prefix)+3]
	return version, nil
}

// Build XRefTable by reading XRef streams or XRef sections.
func (ctx *context) buildXRefTableStartingAt(offset int64) (err error) {
	offs := map[int64]bool{}
	ssCount := 0

	for offset != 0 {
		if offs[offset] {
			offset, err = ctx.offsetLastXRefSection(ctx.fileSize - offset)
			if err != nil {
				return err
			}
			if offs[offset] {
				return nil
			}
		}

		offs[offset] = true

		buf, err := ctx.readAt(int(ctx.fileSize-offset), offset)
		if err != nil {
			return err
		}

		tk := tok.NewTokenizer(buf)

		start, err := tk.PeekToken()
		if err != nil {
			return fmt.Errorf("invalid xref table: %s", err)
		}

		if start.IsOther("xref") { // classic xref section
			_, _ = tk.NextToken() // consume keyword
			offset, ssCount, err = ctx.parseXRefSection(tk, offset, ssCount)
			if err != nil {
				return ctx.bypassXrefSection()
			}
		} else { // xref stream
			offset, err = ctx.parseXRefStream(offset)
			if err != nil {
				// Try fix for corrupt xref section using the repair mode.
				return ctx.bypassXrefSection()
			}
		}
	}

	return nil
}

// Parse xRef section into corresponding number of xRef table entries.
func (ctx *context) parseXRefSection(tk *tok.Tokenizer, sectionOffset int64, ssCount int) (int64, int, error) {
	// Process all sub sections of this xRef section.
	for {
		err := ctx.parseXRefTableSubSection(tk)
		if err != nil {
			return 0, 0, err
		}
		ssCount++

		if next, _ := tk.PeekToken(); next.IsOther("trailer") {
			break
		}
	}
	// consume trailer
	_, _ = tk.NextToken()

	offset, err := ctx.processTrailer(tk)
	return offset, ssCount, err
}

func parseInt(tk *tok.Tokenizer) (int, error) {
	token, err := tk.NextToken()
	if err != nil {
		return 0, err
	}
	return token.Int()
}

// Process xRef table subsection and create corresponding xRef table entries.
func (ctx *context) parseXRefTableSubSection(tk *tok.Tokenizer) error {
	startObjNumber, err := parseInt(tk)
	if err != nil {
		return fmt.Errorf("parseXRefTableSubSection: invalid start object number %s", err)
	}

	objCount, err := parseInt(tk)
	if err != nil {
		return fmt.Errorf("parseXRefTableSubSection: invalid object count %s", err)
	}

	for i := 0; i < objCount; i++ {
		err = ctx.parseXRefTableEntry(tk, startObjNumber+i)
		if err != nil {
			return err
		}
	}

	return nil
}

// Read next subsection entry and generate corresponding xref table entry.
func (ctx *context) parseXRefTableEntry(tk *tok.Tokenizer, objectNumber int) error {
	offsetTk, err := tk.NextToken()
	if err != nil {
		return err
	}
	offset, err := strconv.ParseInt(string(offsetTk.Value), 10, 64)
	if err != nil {
		return fmt.Errorf("parseXRefTableEntry: invalid offset: %s", err)
	}

	generation, err := parseInt(tk)
	if err != nil {
		return fmt.Errorf("parseXRefTableEntry: invalid generation number: %s", err)
	}

	entryType, err := tk.NextToken()
	if err != nil {
		return err
	}
	v := string(entryType.Value)
	if entryType.Kind != tok.Other || (v != "f" && v != "n") {
		return errors.New("parseXRefTableEntry: corrupt xref subsection entry")
	}

	if v == "n" && offset == 0 { // Skip entry for in use object with offset 0
		return nil
	}

	// the newest xref section was read first: add skips object
	// numbers already defined there
	ref := model.ObjIndirectRef{ObjectNumber: objectNumber, GenerationNumber: generation}
	ctx.xrefTable.add(ref, xrefEntry{free: v == "f", offset: offset})
	return nil
}

func (ctx *context) processTrailer(tk *tok.Tokenizer) (int64, error) {
	p := parser.NewParserFromTokenizer(tk)
	o, err := p.ParseObject()
	if err != nil {
		return 0, err
	}

	trailerDict, ok := o.(parser.Dict)
	if !ok {
		return 0, fmt.Errorf("processTrailer: expected dict, got %T", o)
	}

	return ctx.parseTrailerDict(trailerDict)
}

// accept Int or XXX 0 R
func offsetFromObject(o parser.Object) (int64, bool) {
	var offset int64
	switch pref := o.(type) {
	case parser.Integer:
		offset = int64(pref)
	case parser.IndirectRef:
		offset = int64(pref.ObjectNumber)
	default:
		return 0, false
	}
	return offset, true
}

// Parse trailer dict and return any offset of a previous xref section.
// An offset of 0 means no prev entry
func (ctx *context) parseTrailerDict(trailerDict parser.Dict) (int64, error) {
	err := ctx.trailer.parseTrailerInfo(trailerDict)
	if err != nil {
		return 0, err
	}

	if streams, ok := trailerDict["AdditionalStreams"].(parser.Array); ok {
		var arr parser.Array
		for _, v := range streams {
			if _, ok := v.(parser.IndirectRef); ok {
				arr = append(arr, v)
			}
		}
		ctx.additionalStreams = arr
	}

	// Prev entry.
	// The spec is not very clear, since it says:
	// "Present only if the file has more than one cross-reference section; shall be
	// an indirect reference"
	// but in practice it is always found as a direct object.
	// However certain buggy PDF generators generate "/Prev NNN 0 R" instead
	// of "/Prev NNN", maybe to try and follow the spec.
	// We then accept both integer and reference.

	offset, _ := offsetFromObject(trailerDict["Prev"])

	offsetXRefStream, ok := trailerDict["XRefStm"].(parser.Integer)
	if !ok {
		// No cross reference stream: continue to parse previous xref section, if any.
		return offset, nil
	}

	// 1.5 conformant readers process hidden objects contained
	// in XRefStm before continuing to process any previous XRefSection.
	// Previous XRefSection is expected to have free entries for hidden entries.
	// May appear in XRefSections only.
	if err := ctx.parseHybridXRefStream(int64(offsetXRefStream)); err != nil {
		return 0, err
	}

	return offset, nil
}

// '7.5.6 - Incremental Updates' says:
// The added trailer shall contain all the entries except the Prev
// entry (if present) from the previous trailer, whether modified or not.
// We are a bit more liberal, allowing individual field update.
func (current *trailer) parseTrailerInfo(d parser.Dict) error {
	if enc := d["Encrypt"]; enc != nil && current.encrypt == nil {
		current.encrypt = enc
	}

	if current.size == 0 {
		size, ok := d["Size"].(parser.Integer)
		if ok { // Not reliable! Patched after all read in.
			current.size = int(size)
		}
	}

	if current.root == nil {
		if root, ok := d["Root"].(parser.IndirectRef); ok {
			current.root = &root
		}
	}

	if current.info == nil {
		if info, ok := d["Info"].(parser.IndirectRef); ok {
			current.info = &info
		}
	}

	if current.id == nil {
		if id, ok := d["ID"].(parser.Array); ok {
			current.id = id
		} else if current.encrypt != nil {
			return errors.New("parseTrailerInfo: missing entry \"ID\" in encrypted document")
		}
	}

	return nil
}

// Parse an xRefStream for a hybrid PDF file.
func (ctx *context) parseHybridXRefStream(offset int64) error {
	_, err := ctx.parseXRefStream(offset)
	return err
}

type lineReader struct {
	src    *bufio.Reader
	buf    []byte // avoid allocations
	offset int64
}

func newLineReader(f io.Reader) lineReader {
	return lineReader{src: bufio.NewReader(f)}
}

func (l *lineReader) read() (byte, bool) {
	c, err := l.src.ReadByte()
	if err != nil {
		return 0, false
	}
	l.offset++
	return c, true
}

// readLine returns the line and the offset of its first byte in the
// underlying file. The returned slice will be mutated by the next call.
func (l *lineReader) readLine() ([]byte, int64) {
	// consume initial empty lines
	c, ok := l.read()
	for ; c == '\n' || c == '\r'; c, ok = l.read() {
	}
	if !ok {
		return nil, 0
	}
	offset := l.offset - 1
	l.buf = l.buf[:0] // do not re-allocate
	for {
		l.buf = append(l.buf, c)
		c, ok = l.read()
		if !ok || c == '\n' || c == '\r' {
			return l.buf, offset
		}
	}
}

// bypassXrefSection is the repair-mode fallback for corrupt or missing xref
// sections. It populates the xref table by reading every indirect object
// line by line, and works on the assumption of a single xref section -
// meaning no incremental update has been applied.
func (ctx *context) bypassXrefSection() error {
	ctx.xrefTable.add(model.ObjIndirectRef{GenerationNumber: freeHeadGeneration}, xrefEntry{free: true})

	_, err := ctx.rs.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}
	lr := newLineReader(ctx.rs)

	var (
		withinObj  bool
		withinXref bool
		sawTrailer bool
	)
	for {
		line, lineOffset := lr.readLine()
		if len(line) == 0 {
			break
		}
		tk := tok.NewTokenizer(line)
		firstToken, _ := tk.PeekToken()

		if withinObj { // look for "endobj"
			if firstToken.IsOther("endobj") {
				withinObj = false
			}
		} else if withinXref {
			if firstToken.IsOther("trailer") {
				// consume the token and read the rest of the file
				_, _ = tk.NextToken()
				pos := lineOffset + int64(tk.CurrentPosition())
				buf, err := ctx.readAt(int(ctx.fileSize-pos), pos)
				if err != nil {
					return err
				}
				tk = tok.NewTokenizer(buf)
				if _, err = ctx.processTrailer(tk); err != nil {
					return err
				}
				sawTrailer = true
				withinXref = false
			}
			// Ignore all until "trailer".
		} else if firstToken.IsOther("xref") {
			withinXref = true
		} else { // look for an object declaration XXX XX obj
			objNr, generation, err := parseObjectDeclaration(tk)
			if err == nil {
				ref := model.ObjIndirectRef{ObjectNumber: objNr, GenerationNumber: generation}
				ctx.xrefTable.add(ref, xrefEntry{offset: lineOffset})
				withinObj = true
			}
		}
	}

	if !sawTrailer || ctx.trailer.root == nil {
		ctx.recoverTrailerFromObjects()
	}

	if ctx.trailer.root == nil {
		return errors.New("bypassXrefSection: unable to locate a Root entry")
	}

	return nil
}

// recoverTrailerFromObjects scans the recovered objects for a /Type /Catalog
// dict and, if the Info dict is still missing, for a plausible Info dict
// (any dict carrying a Producer or Title entry). This is a last resort used
// when no trailer could be located at all.
func (ctx *context) recoverTrailerFromObjects() {
	for ref, entry := range ctx.xrefTable.objects {
		if entry.free {
			continue
		}

		o, err := ctx.resolveObjectNumber(ref)
		if err != nil {
			continue
		}
		d, ok := o.(model.ObjDict)
		if !ok {
			continue
		}

		if ctx.trailer.root == nil {
			if t, _ := d["Type"].(model.ObjName); t == "Catalog" {
				r := ref
				ctx.trailer.root = &r
			}
		}
		if ctx.trailer.info == nil {
			if _, hasProducer := d["Producer"]; hasProducer {
				r := ref
				ctx.trailer.info = &r
			} else if _, hasTitle := d["Title"]; hasTitle {
				r := ref
				ctx.trailer.info = &r
			}
		}
	}
}

func parseObjectDeclaration(tk *tok.Tokenizer) (objectNumber, generationNumber int, err error) {
	objectNumber, err = parseInt(tk)
	if err != nil {
		return
	}
	generationNumber, err = parseInt(tk)
	if err != nil {
		return
	}
	objTk, err := tk.NextToken()
	if err != nil {
		return
	}
	if !objTk.IsOther("obj") {
		err = fmt.Errorf("parseObjectDeclaration: unexpected token %v", objTk)
	}
	return
}
