package reader

import (
	"bytes"
	"testing"

	"github.com/phpdave11/gofpdf"
)

// TestRoundTripGeneratedPDF builds a small PDF in memory with gofpdf -
// a link annotation, a file attachment, two pages - and feeds it back
// through ParsePDFReader, checking that what gofpdf wrote is what comes
// back out the other end.
func TestRoundTripGeneratedPDF(t *testing.T) {
	f := gofpdf.New("P", "mm", "A4", "")
	f.AddPage()
	link := f.AddLink()
	f.SetLink(link, 0, 2)
	f.Link(10, 10, 40, 10, link)

	att := gofpdf.Attachment{
		Filename:    "notes.txt",
		Content:     []byte("generated fixture"),
		Description: "round-trip fixture",
	}
	f.AddAttachmentAnnotation(&att, 10, 30, 40, 10)
	f.AddPage()

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		t.Fatalf("generating fixture PDF: %v", err)
	}

	doc, _, err := ParsePDFReader(bytes.NewReader(buf.Bytes()), Options{})
	if err != nil {
		t.Fatalf("ParsePDFReader: %v", err)
	}

	pages := doc.Catalog.Pages.Flatten()
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}

	first := pages[0]
	if len(first.Annots) == 0 {
		t.Errorf("expected at least one annotation on the first page, got none")
	}
}
