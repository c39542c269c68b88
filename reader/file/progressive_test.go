package file

import (
	"io"
	"testing"

	"github.com/quillcore/pdfcore/model"
)

func TestProgressiveSourceTryLaterBeforeBytesArrive(t *testing.T) {
	src := NewProgressiveSource(-1)
	buf := make([]byte, 10)
	_, err := src.Read(buf)
	if !model.IsTryLater(err) {
		t.Fatalf("expected a try-later error before any byte arrives, got %v", err)
	}
}

func TestProgressiveSourceReadsFedBytes(t *testing.T) {
	src := NewProgressiveSource(-1)
	src.Feed([]byte("%PDF-1.7\n"))

	buf := make([]byte, 9)
	n, err := src.Read(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(buf[:n]) != "%PDF-1.7\n" {
		t.Fatalf("got %q", buf[:n])
	}

	// No more bytes yet: next read must try-later, not EOF, since total is unknown.
	_, err = src.Read(buf)
	if !model.IsTryLater(err) {
		t.Fatalf("expected try-later at the end of fed bytes, got %v", err)
	}
}

func TestProgressiveSourceEOFOnceTotalKnownAndReached(t *testing.T) {
	src := NewProgressiveSource(4)
	src.Feed([]byte("abcd"))

	buf := make([]byte, 4)
	n, err := src.Read(buf)
	if err != nil || n != 4 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	_, err = src.Read(buf)
	if err != io.EOF {
		t.Fatalf("expected io.EOF once total is reached, got %v", err)
	}
}

func TestProgressiveSourceSeek(t *testing.T) {
	src := NewProgressiveSource(-1)
	src.Feed([]byte("0123456789"))

	pos, err := src.Seek(5, io.SeekStart)
	if err != nil || pos != 5 {
		t.Fatalf("pos=%d err=%v", pos, err)
	}

	buf := make([]byte, 2)
	n, err := src.Read(buf)
	if err != nil || string(buf[:n]) != "56" {
		t.Fatalf("got %q err=%v", buf[:n], err)
	}

	if _, err := src.Seek(100, io.SeekStart); !model.IsTryLater(err) {
		t.Fatalf("seeking past arrived bytes with unknown total should try-later, got %v", err)
	}
}

func TestReadLinearizationParamsNotLinearized(t *testing.T) {
	src := NewProgressiveSource(-1)
	src.Feed([]byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog >>\nendobj\n"))

	_, ok, err := ReadLinearizationParams(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("a plain catalog object must not be mistaken for a linearization dict")
	}
}

func TestReadLinearizationParamsParsesAnnouncedFields(t *testing.T) {
	src := NewProgressiveSource(-1)
	src.Feed([]byte("%PDF-1.7\n1 0 obj\n<< /Linearized 1 /L 12345 /O 7 /N 3 /H [200 150] >>\nendobj\n"))

	params, ok, err := ReadLinearizationParams(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a linearization dict to be recognized")
	}
	if params.FileLength != 12345 || params.FirstPageObj != 7 || params.PageCount != 3 {
		t.Fatalf("got %#v", params)
	}
	if params.HintOffset != 200 || params.HintLength != 150 {
		t.Fatalf("got hint %d/%d", params.HintOffset, params.HintLength)
	}
}

func TestReadLinearizationParamsTryLaterBeforeAnyByte(t *testing.T) {
	src := NewProgressiveSource(-1)

	_, ok, err := ReadLinearizationParams(src)
	if !model.IsTryLater(err) {
		t.Fatalf("expected try-later when not one byte has arrived yet, got %v", err)
	}
	if ok {
		t.Fatalf("ok must be false alongside a try-later error")
	}
}

func TestReadLinearizationParamsUndecidedOnTruncatedHeader(t *testing.T) {
	src := NewProgressiveSource(-1)
	src.Feed([]byte("%PDF-1.7\n"))

	_, ok, err := ReadLinearizationParams(src)
	if err != nil {
		t.Fatalf("a truncated header is reported via ok=false, not an error: %v", err)
	}
	if ok {
		t.Fatalf("a bare header line with no object yet must not report ok=true")
	}
}
