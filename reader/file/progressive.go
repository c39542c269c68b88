package file

import (
	"io"

	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/parser"
)

// ProgressiveSource is an io.ReadSeeker backed by a buffer that grows as
// bytes arrive (e.g. over a network connection serving a linearized
// PDF). Reads or seeks past what has been written so far report a
// try-later condition instead of io.EOF, so a caller driving the reader
// can tell "not enough data has arrived yet" apart from "malformed
// file" or "past the real end".
//
// total is the final byte count once known (from a Content-Length
// header or the linearization dictionary's /L entry); -1 means unknown.
// Once total is known and pos reaches it, reads report io.EOF like any
// ordinary stream.
type ProgressiveSource struct {
	buf   []byte
	pos   int64
	total int64
}

// NewProgressiveSource creates a source with no bytes yet. Pass the
// expected final size if known in advance (e.g. from a Content-Length
// header), or -1 if not.
func NewProgressiveSource(total int64) *ProgressiveSource {
	return &ProgressiveSource{total: total}
}

// Feed appends newly-arrived bytes. It never blocks and never fails.
func (p *ProgressiveSource) Feed(chunk []byte) {
	p.buf = append(p.buf, chunk...)
}

// Available reports how many bytes have arrived so far.
func (p *ProgressiveSource) Available() int64 { return int64(len(p.buf)) }

// SetTotal records the final size once learned, switching Read/Seek from
// try-later to ordinary EOF semantics at that boundary.
func (p *ProgressiveSource) SetTotal(total int64) { p.total = total }

func (p *ProgressiveSource) Read(out []byte) (int, error) {
	if p.pos >= int64(len(p.buf)) {
		if p.total >= 0 && p.pos >= p.total {
			return 0, io.EOF
		}
		return 0, model.NewTryLaterError("read past bytes received so far", io.ErrUnexpectedEOF)
	}
	n := copy(out, p.buf[p.pos:])
	p.pos += int64(n)
	return n, nil
}

func (p *ProgressiveSource) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = p.pos + offset
	case io.SeekEnd:
		if p.total < 0 {
			return 0, model.NewTryLaterError("seek from end before total size is known", nil)
		}
		target = p.total + offset
	}
	if target < 0 {
		return 0, model.NewGenericError("negative seek position", nil)
	}
	if target > int64(len(p.buf)) && (p.total < 0 || target < p.total) {
		return 0, model.NewTryLaterError("seek past bytes received so far", nil)
	}
	p.pos = target
	return target, nil
}

// LinearizationParams is the decoded /Linearized dictionary announcing a
// fast-web-view file: the first page's object number, total page count,
// and hint-stream location, read directly from the first object in the
// file (it always sits immediately after the header, before any xref is
// reachable).
type LinearizationParams struct {
	Version      float64 // /Linearized value
	FileLength   int64   // /L
	FirstPageObj int     // /O, object number of the first page's dict
	PageCount    int     // /N
	HintOffset   int64   // /H, [offset length] of the primary hint stream
	HintLength   int64
}

// ReadLinearizationParams attempts to parse the linearization dictionary
// from the start of rs, without touching the xref subsystem at all: the
// whole point of linearization is that a reader can find the first
// page's object number before the startxref-anchored xref table has
// arrived. It issues a single, non-blocking probe read of up to 1024
// bytes: if not one byte has arrived yet, it reports try-later; any
// other shortfall (an incomplete header line, a truncated object) is
// treated as "not decidable yet" and reported as ok=false rather than
// guessed at, since a single probe cannot tell a genuinely malformed
// header from one that is simply still arriving.
func ReadLinearizationParams(rs io.ReadSeeker) (params LinearizationParams, ok bool, err error) {
	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		if model.IsTryLater(err) {
			return params, false, err
		}
		return params, false, nil
	}

	buf := make([]byte, 1024)
	n, err := rs.Read(buf)
	if n == 0 {
		if model.IsTryLater(err) {
			return params, false, err
		}
		return params, false, nil
	}
	buf = buf[:n]

	// Skip the %PDF-d.d header line.
	nl := indexByte(buf, '\n')
	if nl < 0 || nl+1 >= len(buf) {
		return params, false, nil
	}
	rest := buf[nl+1:]

	_, _, obj, perr := parser.ParseObjectDefinition(rest, false)
	if perr != nil {
		return params, false, nil
	}

	dict, isDict := obj.(parser.Dict)
	if !isDict {
		return params, false, nil
	}
	lin, hasLin := dict["Linearized"]
	if !hasLin {
		return params, false, nil
	}

	params.Version, _ = numberValue(lin)
	if l, ok := dict["L"]; ok {
		f, _ := numberValue(l)
		params.FileLength = int64(f)
	}
	if o, ok := dict["O"]; ok {
		f, _ := numberValue(o)
		params.FirstPageObj = int(f)
	}
	if nObj, ok := dict["N"]; ok {
		f, _ := numberValue(nObj)
		params.PageCount = int(f)
	}
	if h, ok := dict["H"]; ok {
		if arr, ok := h.(parser.Array); ok && len(arr) >= 2 {
			off, _ := numberValue(arr[0])
			length, _ := numberValue(arr[1])
			params.HintOffset = int64(off)
			params.HintLength = int64(length)
		}
	}
	return params, true, nil
}

func numberValue(o parser.Object) (float64, bool) {
	switch v := o.(type) {
	case parser.Integer:
		return float64(v), true
	case parser.Float:
		return float64(v), true
	default:
		return 0, false
	}
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}
