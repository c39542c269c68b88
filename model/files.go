package model

import "time"

type EmbeddedFile struct {
	Name     string
	FileSpec *FileSpec // indirect
}

// FileSpec is a file specification dictionary (7.11.3), usually
// referring to a file embedded in the PDF.
type FileSpec struct {
	UF   string // platform-independent file name
	EF   *EmbeddedFileStream
	Desc string // optional
}

func (f *FileSpec) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	b.line("<</Type/Filespec")
	if f.UF != "" {
		// the F entry is kept for readers predating UF
		b.line("/UF %s /F %s", pdf.EncodeString(f.UF, TextString, ref),
			pdf.EncodeString(f.UF, ByteString, ref))
	}
	if f.EF != nil {
		b.line("/EF <</F %s>>", pdf.addItem(f.EF))
	}
	if f.Desc != "" {
		b.line("/Desc %s", pdf.EncodeString(f.Desc, TextString, ref))
	}
	b.fmt(">>")
	return b.String(), nil
}

func (f *FileSpec) clone(cache cloneCache) Referenceable {
	if f == nil {
		return f
	}
	out := *f
	if f.EF != nil {
		out.EF = cache.checkOrClone(f.EF).(*EmbeddedFileStream)
	}
	return &out
}

// EmbeddedFileParams describe the embedded file content (Table 46).
type EmbeddedFileParams struct {
	Size         int
	CreationDate time.Time
	ModDate      time.Time
	CheckSum     string // written hex encoded
}

func (p EmbeddedFileParams) pdfString(pdf pdfWriter, ref Reference) string {
	b := newBuffer()
	b.fmt("<<")
	if p.Size != 0 {
		b.fmt("/Size %d ", p.Size)
	}
	if !p.CreationDate.IsZero() {
		b.fmt("/CreationDate %s ", pdf.dateString(p.CreationDate, ref))
	}
	if !p.ModDate.IsZero() {
		b.fmt("/ModDate %s ", pdf.dateString(p.ModDate, ref))
	}
	if p.CheckSum != "" {
		b.fmt("/CheckSum %s ", EspaceHexString([]byte(p.CheckSum)))
	}
	b.fmt(">>")
	return b.String()
}

// EmbeddedFileStream is the stream holding an embedded file's bytes.
type EmbeddedFileStream struct {
	ContentStream
	Params EmbeddedFileParams
}

func (e *EmbeddedFileStream) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	b.line("<</Type/EmbeddedFile")
	writeFilterFields(b, e.Filter)
	b.line("/Params %s", e.Params.pdfString(pdf, ref))
	b.fmt(">>")
	return b.String(), e.Content
}

func (e *EmbeddedFileStream) clone(cache cloneCache) Referenceable {
	if e == nil {
		return e
	}
	out := *e
	out.ContentStream = e.ContentStream.Clone()
	return &out
}
