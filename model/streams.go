package model

import "strings"

// Names of the standard stream filters (7.4, "Filters").
const (
	ASCII85   Name = "ASCII85Decode"
	ASCIIHex  Name = "ASCIIHexDecode"
	RunLength Name = "RunLengthDecode"
	LZW       Name = "LZWDecode"
	Flate     Name = "FlateDecode"
	CCITTFax  Name = "CCITTFaxDecode"
	JBIG2     Name = "JBIG2Decode"
	DCT       Name = "DCTDecode"
	JPX       Name = "JPXDecode"
)

// Filter is one entry of a stream's Filter/DecodeParms chain.
type Filter struct {
	Name Name
	// DecodeParms has been resolved to concrete integer values;
	// booleans are stored as 0 (false) or 1 (true).
	DecodeParms map[string]int
}

// Filters is the (possibly empty) chain of filters applied to a stream,
// to be undone in order to recover its decoded content.
type Filters []Filter

func (fs Filters) Clone() Filters {
	if fs == nil {
		return nil
	}
	out := make(Filters, len(fs))
	for i, f := range fs {
		var parms map[string]int
		if f.DecodeParms != nil {
			parms = make(map[string]int, len(f.DecodeParms))
			for k, v := range f.DecodeParms {
				parms[k] = v
			}
		}
		out[i] = Filter{Name: f.Name, DecodeParms: parms}
	}
	return out
}

// Stream associates a (still filter-encoded) byte content with the chain
// of filters needed to decode it.
type Stream struct {
	Filter  Filters
	Content []byte // as found in the PDF file, that is, encoded
}

func (s Stream) Clone() Stream {
	return Stream{Filter: s.Filter.Clone(), Content: append([]byte(nil), s.Content...)}
}

func (s Stream) Length() int { return len(s.Content) }

// ContentStream is a stream whose decoded content is a sequence of
// content-stream operators, as found in a page or a form XObject.
type ContentStream struct {
	Stream
}

func (c ContentStream) Clone() ContentStream {
	return ContentStream{Stream: c.Stream.Clone()}
}

// filterFields returns the /Filter and /DecodeParms entries of a stream,
// as a StreamHeader-compatible field map; nil if the stream is unfiltered.
func filterFields(filters Filters) map[Name]string {
	if len(filters) == 0 {
		return nil
	}
	names := make([]Name, len(filters))
	hasParms := false
	for i, f := range filters {
		names[i] = f.Name
		if len(f.DecodeParms) != 0 {
			hasParms = true
		}
	}
	out := map[Name]string{"Filter": writeNameArray(names)}
	if !hasParms {
		return out
	}
	parms := make([]string, len(filters))
	for i, f := range filters {
		if len(f.DecodeParms) == 0 {
			parms[i] = "null"
			continue
		}
		pb := newBuffer()
		pb.fmt("<<")
		for k, v := range f.DecodeParms {
			pb.fmt("/%s %d ", k, v)
		}
		pb.fmt(">>")
		parms[i] = pb.String()
	}
	out["DecodeParms"] = "[" + strings.Join(parms, " ") + "]"
	return out
}

// writeFilterFields writes the /Filter and /DecodeParms entries of a
// stream, if any, into an in-progress dictionary buffer.
func writeFilterFields(b buffer, filters Filters) {
	fields := filterFields(filters)
	if fields == nil {
		return
	}
	b.line("/Filter %s", fields["Filter"])
	if parms, ok := fields["DecodeParms"]; ok {
		b.line("/DecodeParms %s", parms)
	}
}

// PropertyList is the value of an entry of a resource dictionary's
// /Properties sub-dictionary, referenced by the BDC and DP
// marked-content operators. Its content is application-defined, so it
// is kept as a raw object dictionary.
type PropertyList = ObjDict

// MetadataStream is a stream of XMP metadata, found in property lists
// (and many other dictionaries).
type MetadataStream struct {
	Stream
}

func (m MetadataStream) Clone() Object {
	return MetadataStream{Stream: m.Stream.Clone()}
}

func (m MetadataStream) Write(w PDFWritter, _ Reference) string {
	ref := w.CreateObject()
	header := StreamHeader{Fields: map[Name]string{
		"Type": "/Metadata", "Subtype": "/XML",
	}}
	w.WriteStream(header, m.Content, ref)
	return ref.String()
}
