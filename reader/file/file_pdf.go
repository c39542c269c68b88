// Package file implements the byte-level access to a PDF file: header
// and startxref discovery, the xref table in its classic and stream
// forms, object streams, repair mode and encryption setup. Its output
// is the flat object store a higher-level resolver (see package
// reader) turns into typed values.
package file

import (
	"io"
	"os"

	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/parser"
)

// PDFFile is a parsed PDF file: a store of objects (model.Object)
// identified by their object number, plus the document-level entries
// of the trailer.
type PDFFile struct {
	XrefTable

	// HeaderVersion is the PDF version the source claims in its header.
	HeaderVersion string

	// AdditionalStreams may be found in the trailer of files produced
	// by some office suites; they are passed through untouched.
	AdditionalStreams parser.Array

	// Root is the reference of the catalog dictionary.
	Root parser.IndirectRef

	// Info is the optional reference of the information dictionary.
	Info *parser.IndirectRef

	// ID is the file identifier found in the trailer, needed by
	// encryption.
	ID [2]string

	// Encrypt is the encryption dictionary of the trailer, or nil.
	Encrypt *model.Encrypt
}

// IsString returns the string content and true if o is a string
// literal (...) or a hexadecimal literal <...>. The content is
// unescaped (respectively decoded), but is not always UTF-8.
func IsString(o model.Object) (string, bool) {
	switch o := o.(type) {
	case model.ObjStringLiteral:
		return string(o), true
	case model.ObjHexLiteral:
		return string(o), true
	default:
		return "", false
	}
}

// Configuration is the input needed to open a document.
type Configuration struct {
	// Password is tried as the user password, then as the owner one.
	Password string
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{}
}

// ReadFile is the same as Read, but takes a file name as input.
func ReadFile(file string, conf *Configuration) (PDFFile, error) {
	f, err := os.Open(file)
	if err != nil {
		return PDFFile{}, err
	}
	defer f.Close()

	return Read(f, conf)
}

// Read processes a PDF file: the xref table is located and parsed
// (entering repair mode if needed), the document is authenticated
// against conf.Password, and every object is loaded in memory.
func Read(rs io.ReadSeeker, conf *Configuration) (PDFFile, error) {
	ctx, err := processPDFFile(rs, conf)
	if err != nil {
		return PDFFile{}, err
	}

	if err = ctx.processAllObjects(); err != nil {
		return PDFFile{}, err
	}

	if ctx.trailer.root == nil {
		return PDFFile{}, model.NewSyntaxError("missing Root entry", nil)
	}

	out := PDFFile{
		HeaderVersion:     ctx.HeaderVersion,
		Root:              *ctx.trailer.root,
		Info:              ctx.trailer.info,
		AdditionalStreams: ctx.additionalStreams,
		XrefTable:         make(XrefTable, len(ctx.xrefTable.objects)),
	}
	for ref, entry := range ctx.xrefTable.objects {
		if entry.free {
			continue
		}
		out.XrefTable[ref.ObjectNumber] = entry.object
	}

	if ctx.enc != nil {
		out.ID = ctx.enc.ID
		out.Encrypt = &ctx.enc.enc
	}
	return out, nil
}

// processPDFFile builds and authenticates the xref table, without
// resolving objects.
func processPDFFile(rs io.ReadSeeker, conf *Configuration) (*context, error) {
	ctx, err := newContext(rs, conf)
	if err != nil {
		return nil, err
	}

	ctx.HeaderVersion, err = headerVersion(ctx.rs, "%PDF-")
	if err != nil {
		return nil, err
	}

	offset, err := ctx.offsetLastXRefSection(0)
	if err != nil {
		return nil, err
	}
	if err = ctx.buildXRefTableStartingAt(offset); err != nil {
		return nil, err
	}

	if err = ctx.setupEncryption(); err != nil {
		return nil, err
	}
	return ctx, nil
}
