package model

import (
	"fmt"
	"sort"
)

// FontDict is a PDF font dictionary (9.6, 9.7): its concrete behaviour
// is carried by one of the four Font implementations.
type FontDict struct {
	Subtype   Font
	ToUnicode *UnicodeCMap // optional
}

// pdfContent writes the font dictionary, dispatching to the writer
// appropriate for the font's subtype.
func (f *FontDict) pdfContent(pdf pdfWriter, ref Reference) (string, []byte) {
	b := newBuffer()
	b.line("<<")
	b.line("/Type /Font")
	switch ft := f.Subtype.(type) {
	case FontType0:
		b.line("/Subtype /Type0")
		b.line("/BaseFont %s", ft.BaseFont)
		b.line("/Encoding %s", writeCMapEncoding(ft.Encoding, pdf))
		descRef := pdf.addObject(ft.DescendantFonts.pdfString(pdf, ref))
		b.line("/DescendantFonts [%s]", descRef)
	case FontType1:
		b.line("/Subtype /Type1")
		writeSimpleFontFields(b, ft, pdf, ref)
	case FontTrueType:
		b.line("/Subtype /TrueType")
		writeSimpleFontFields(b, FontType1(ft), pdf, ref)
	case FontType3:
		b.line("/Subtype /Type3")
		ft.pdfFields(b, pdf, ref)
	}
	if f.ToUnicode != nil {
		header := StreamHeader{Fields: filterFields(f.ToUnicode.Filter)}
		if header.Fields == nil {
			header.Fields = map[Name]string{}
		}
		header.Fields["Length"] = fmt.Sprintf("%d", len(f.ToUnicode.Content))
		if use := f.ToUnicode.UseCMap; use != nil {
			if name, ok := use.(UnicodeCMapBasePredefined); ok {
				header.Fields["UseCMap"] = Name(name).String()
			}
		}
		b.line("/ToUnicode %s", pdf.addStream(header, f.ToUnicode.Content))
	}
	b.fmt(">>")
	return b.String(), nil
}

// writeSimpleFontFields writes the entries shared by Type1 and TrueType
// simple fonts (9.6.2, 9.6.3).
func writeSimpleFontFields(b buffer, f FontType1, pdf pdfWriter, ref Reference) {
	b.line("/BaseFont %s", f.BaseFont)
	b.line("/FirstChar %d", f.FirstChar)
	b.line("/LastChar %d", f.LastChar)
	b.line("/Widths %s", writeIntArray(f.Widths))
	descRef := writeFontDescriptor(f.FontDescriptor, pdf)
	b.line("/FontDescriptor %s", descRef)
	if f.Encoding != nil {
		b.line("/Encoding %s", writeSimpleEncoding(f.Encoding, pdf))
	}
}

// pdfFields writes the entries specific to a Type3 font (9.6.5).
func (f FontType3) pdfFields(b buffer, pdf pdfWriter, ref Reference) {
	b.line("/FontBBox %s", f.FontBBox.String())
	b.line("/FontMatrix %s", f.FontMatrix.String())

	names := make([]string, 0, len(f.CharProcs))
	for n := range f.CharProcs {
		names = append(names, string(n))
	}
	sort.Strings(names)
	procs := newBuffer()
	procs.fmt("<<")
	for _, n := range names {
		cs := f.CharProcs[Name(n)]
		csRef := pdf.addStream(cs.contentHeader(), cs.Content)
		procs.fmt("%s %s ", Name(n).String(), csRef)
	}
	procs.fmt(">>")
	b.line("/CharProcs %s", procs.String())

	if f.Encoding != nil {
		b.line("/Encoding %s", writeSimpleEncoding(f.Encoding, pdf))
	}
	b.line("/FirstChar %d", f.FirstChar)
	b.line("/LastChar %d", f.LastChar)
	b.line("/Widths %s", writeIntArray(f.Widths))
	b.line("/Resources %s", f.Resources.pdfString(pdf, ref))
	if f.FontDescriptor != nil {
		b.line("/FontDescriptor %s", writeFontDescriptor(*f.FontDescriptor, pdf))
	}
}

// writeFontDescriptor writes a font descriptor as its own indirect
// object (9.8) and returns its reference.
func writeFontDescriptor(fd FontDescriptor, pdf pdfWriter) Reference {
	b := newBuffer()
	b.line("<<")
	b.line("/Type /FontDescriptor")
	b.line("/FontName %s", fd.FontName)
	b.line("/Flags %d", fd.Flags)
	b.line("/FontBBox %s", fd.FontBBox.String())
	b.line("/ItalicAngle %s", FmtFloat(fd.ItalicAngle))
	b.line("/Ascent %s", FmtFloat(fd.Ascent))
	b.line("/Descent %s", FmtFloat(fd.Descent))
	if fd.Leading != 0 {
		b.line("/Leading %s", FmtFloat(fd.Leading))
	}
	b.line("/CapHeight %s", FmtFloat(fd.CapHeight))
	if fd.XHeight != 0 {
		b.line("/XHeight %s", FmtFloat(fd.XHeight))
	}
	b.line("/StemV %s", FmtFloat(fd.StemV))
	if fd.StemH != 0 {
		b.line("/StemH %s", FmtFloat(fd.StemH))
	}
	if fd.AvgWidth != 0 {
		b.line("/AvgWidth %s", FmtFloat(fd.AvgWidth))
	}
	if fd.MaxWidth != 0 {
		b.line("/MaxWidth %s", FmtFloat(fd.MaxWidth))
	}
	if fd.MissingWidth != 0 {
		b.line("/MissingWidth %d", fd.MissingWidth)
	}
	if fd.FontFile != nil {
		key := Name("FontFile")
		switch fd.FontFile.Subtype {
		case "Type1C", "CIDFontType0C", "OpenType":
			key = "FontFile3"
		case "": // a TrueType program carries no Subtype
			key = "FontFile2"
		}
		b.line("%s %s", key, fd.FontFile.write(pdf))
	}
	if fd.CharSet != "" {
		b.line("/CharSet %s", EscapeByteString([]byte(fd.CharSet)))
	}
	b.fmt(">>")
	return pdf.addObject(b.String())
}

// FontFile is an embedded font program (9.9).
type FontFile struct {
	Stream

	Subtype          Name // for FontFile3
	Length1, Length2 int  // for Type1 and TrueType programs
	Length3          int  // for Type1 programs
}

// write emits the font program as its own stream object.
func (f *FontFile) write(pdf pdfWriter) Reference {
	header := StreamHeader{Fields: filterFields(f.Filter)}
	if header.Fields == nil {
		header.Fields = map[Name]string{}
	}
	if f.Subtype != "" {
		header.Fields["Subtype"] = f.Subtype.String()
	}
	if f.Length1 != 0 {
		header.Fields["Length1"] = fmt.Sprintf("%d", f.Length1)
	}
	if f.Length2 != 0 {
		header.Fields["Length2"] = fmt.Sprintf("%d", f.Length2)
	}
	if f.Length3 != 0 {
		header.Fields["Length3"] = fmt.Sprintf("%d", f.Length3)
	}
	return pdf.addStream(header, f.Content)
}

func (f *FontFile) Clone() *FontFile {
	if f == nil {
		return nil
	}
	out := *f
	out.Stream = f.Stream.Clone()
	return &out
}

// UnicodeCMapBase is the UseCMap entry of a ToUnicode CMap: either
// another embedded CMap stream (UnicodeCMap) or the name of a
// predefined one (UnicodeCMapBasePredefined).
type UnicodeCMapBase interface {
	isUnicodeCMapBase()
}

func (UnicodeCMap) isUnicodeCMapBase()               {}
func (UnicodeCMapBasePredefined) isUnicodeCMapBase() {}

// UnicodeCMapBasePredefined is the name of a predefined CMap.
type UnicodeCMapBasePredefined Name

// UnicodeCMap is an embedded ToUnicode CMap stream, mapping character
// codes to Unicode values (9.10.3).
type UnicodeCMap struct {
	Stream

	UseCMap UnicodeCMapBase // optional
}

// Decode returns the decoded content of the CMap stream.
func (c UnicodeCMap) Decode() ([]byte, error) {
	return c.Stream.Decoded()
}

func (c *UnicodeCMap) Clone() *UnicodeCMap {
	if c == nil {
		return nil
	}
	out := *c
	out.Stream = c.Stream.Clone()
	if use, ok := c.UseCMap.(UnicodeCMap); ok {
		out.UseCMap = *use.Clone()
	}
	return &out
}

// writeSimpleEncoding writes the /Encoding entry of a simple font.
func writeSimpleEncoding(e SimpleEncoding, pdf pdfWriter) string {
	switch e := e.(type) {
	case SimpleEncodingPredefined:
		return Name(e).String()
	case *SimpleEncodingDict:
		if e == nil {
			return ""
		}
		b := newBuffer()
		b.fmt("<<")
		if e.BaseEncoding != "" {
			b.fmt("/BaseEncoding %s ", Name(e.BaseEncoding))
		}
		if len(e.Differences) != 0 {
			b.fmt("/Differences %s", e.Differences.PDFString())
		}
		b.fmt(">>")
		return b.String()
	default:
		return ""
	}
}

// writeCMapEncoding writes the /Encoding entry of a composite font.
func writeCMapEncoding(e CMapEncoding, pdf pdfWriter) string {
	switch e := e.(type) {
	case CMapEncodingPredefined:
		return Name(e).String()
	case CMapEncodingEmbedded:
		fields := filterFields(e.Filter)
		if fields == nil {
			fields = map[Name]string{}
		}
		fields["Type"] = "/CMap"
		fields["CMapName"] = e.CMapName.String()
		fields["CIDSystemInfo"] = writeCIDSystemInfo(e.CIDSystemInfo)
		if e.WMode {
			fields["WMode"] = "1"
		}
		if e.UseCMap != nil {
			fields["UseCMap"] = writeCMapEncoding(e.UseCMap, pdf)
		}
		return pdf.addStream(StreamHeader{Fields: fields}, e.Content).String()
	default:
		return "/Identity-H"
	}
}

func writeCIDSystemInfo(c CIDSystemInfo) string {
	return fmt.Sprintf("<</Registry %s /Ordering %s /Supplement %d>>",
		EscapeByteString([]byte(c.Registry)), EscapeByteString([]byte(c.Ordering)), c.Supplement)
}

// pdfString writes the descendant CIDFontDictionary (9.7.4), used as the
// sole entry of a Type0 font's /DescendantFonts array.
func (c CIDFontDictionary) pdfString(pdf pdfWriter, ref Reference) string {
	b := newBuffer()
	b.line("<<")
	b.line("/Type /Font")
	b.line("/Subtype %s", c.Subtype)
	b.line("/BaseFont %s", c.BaseFont)
	b.line("/CIDSystemInfo %s", writeCIDSystemInfo(c.CIDSystemInfo))
	descRef := writeFontDescriptor(c.FontDescriptor, pdf)
	b.line("/FontDescriptor %s", descRef)
	if c.DW != 0 && c.DW != 1000 {
		b.line("/DW %d", c.DW)
	}
	if c.DW2 != ([2]int{}) {
		b.line("/DW2 %s", writeIntArray(c.DW2[:]))
	}
	if len(c.W) != 0 {
		b.line("/W %s", writeCIDWidths(c.W))
	}
	if len(c.W2) != 0 {
		b.line("/W2 %s", writeCIDVerticalMetrics(c.W2))
	}
	switch m := c.CIDToGIDMap.(type) {
	case CIDToGIDMapStream:
		ref := pdf.addStream(StreamHeader{Fields: filterFieldsOrEmpty(m.Filter)}, m.Content)
		b.line("/CIDToGIDMap %s", ref)
	case CIDToGIDMapIdentity:
		b.line("/CIDToGIDMap /Identity")
	}
	b.fmt(">>")
	return b.String()
}

func filterFieldsOrEmpty(filters Filters) map[Name]string {
	if fields := filterFields(filters); fields != nil {
		return fields
	}
	return map[Name]string{}
}

func writeCIDWidths(ws []CIDWidth) string {
	b := newBuffer()
	b.fmt("[")
	for _, w := range ws {
		switch w := w.(type) {
		case CIDWidthRange:
			b.fmt("%d %d %d ", w.First, w.Last, w.Width)
		case CIDWidthArray:
			b.fmt("%d %s ", w.Start, writeIntArray(w.W))
		}
	}
	b.fmt("]")
	return b.String()
}

func writeCIDVerticalMetrics(ws []CIDVerticalMetric) string {
	b := newBuffer()
	b.fmt("[")
	for _, w := range ws {
		switch w := w.(type) {
		case CIDVerticalMetricRange:
			b.fmt("%d %d %d [%d %d] ", w.First, w.Last, w.Vertical, w.Position[0], w.Position[1])
		case CIDVerticalMetricArray:
			b.fmt("%d [", w.Start)
			for _, v := range w.Verticals {
				b.fmt("%d [%d %d] ", v.Vertical, v.Position[0], v.Position[1])
			}
			b.fmt("] ")
		}
	}
	b.fmt("]")
	return b.String()
}

func (f *FontDict) clone(cache cloneCache) Referenceable {
	if f == nil {
		return f
	}
	out := *f
	out.Subtype = cloneFont(f.Subtype)
	out.ToUnicode = f.ToUnicode.Clone()
	return &out
}

func cloneFont(f Font) Font {
	switch f := f.(type) {
	case FontType0:
		return f.Clone()
	case FontType1:
		return f.Clone()
	case FontTrueType:
		return FontTrueType(FontType1(f).Clone())
	case FontType3:
		return f.Clone()
	default:
		return nil
	}
}

// Font is one of FontType0, FontType1, FontTrueType, FontType3.
type Font interface {
	isFont()
}

func (FontType0) isFont()    {}
func (FontType1) isFont()    {}
func (FontTrueType) isFont() {}
func (FontType3) isFont()    {}

// FontSimple is implemented by the three simple font kinds (Type1,
// TrueType, Type3), which all share an Encoding entry (9.6.6).
type FontSimple interface {
	Font
	EncodingValue() SimpleEncoding
}

func (f FontType1) EncodingValue() SimpleEncoding    { return f.Encoding }
func (f FontTrueType) EncodingValue() SimpleEncoding { return f.Encoding }
func (f FontType3) EncodingValue() SimpleEncoding    { return f.Encoding }

// FontType1 is a simple font referencing a glyph description (9.6.2).
type FontType1 struct {
	BaseFont            Name
	FirstChar, LastChar byte
	Widths              []int // length (LastChar − FirstChar + 1), index i is char FirstChar + i
	FontDescriptor      FontDescriptor
	Encoding            SimpleEncoding // optional
}

func (f FontType1) Clone() FontType1 {
	out := f
	out.Widths = append([]int(nil), f.Widths...)
	out.Encoding = cloneSimpleEncoding(f.Encoding)
	return out
}

// FontTrueType is a simple font using a TrueType font program (9.6.3).
type FontTrueType FontType1

func (f FontTrueType) Clone() FontTrueType { return FontTrueType(FontType1(f).Clone()) }

// FontType3 defines glyphs with content streams, written in glyph space (9.6.5).
type FontType3 struct {
	FontBBox            Rectangle
	FontMatrix          Matrix
	CharProcs           map[Name]ContentStream
	Encoding            SimpleEncoding
	FirstChar, LastChar byte
	Widths              []int           // length (LastChar − FirstChar + 1), index i is char FirstChar + i
	FontDescriptor      *FontDescriptor // optional for Type3 fonts
	Resources           ResourcesDict
}

func (f FontType3) Clone() FontType3 {
	out := f
	out.CharProcs = make(map[Name]ContentStream, len(f.CharProcs))
	for k, v := range f.CharProcs {
		out.CharProcs[k] = v.Clone()
	}
	out.Encoding = cloneSimpleEncoding(f.Encoding)
	out.Widths = append([]int(nil), f.Widths...)
	if f.FontDescriptor != nil {
		fd := *f.FontDescriptor
		out.FontDescriptor = &fd
	}
	out.Resources = f.Resources.clone(cloneCache{})
	return out
}

// FontType0 is a composite font, whose glyphs are selected by CIDs (9.7).
type FontType0 struct {
	BaseFont        Name
	Encoding        CMapEncoding
	DescendantFonts CIDFontDictionary
}

func (f FontType0) Clone() FontType0 {
	out := f
	out.DescendantFonts = f.DescendantFonts.Clone()
	return out
}

type FontFlag uint32

const (
	FixedPitch  FontFlag = 1
	Serif       FontFlag = 1 << 2
	Symbolic    FontFlag = 1 << 3
	Script      FontFlag = 1 << 4
	Nonsymbolic FontFlag = 1 << 6
	Italic      FontFlag = 1 << 7
	AllCap      FontFlag = 1 << 17
	SmallCap    FontFlag = 1 << 18
	ForceBold   FontFlag = 1 << 19
)

// FontDescriptor specifies metrics and other attributes of a simple font
// or a CID font (9.8).
type FontDescriptor struct {
	FontName        Name
	Flags           FontFlag
	FontBBox        Rectangle
	ItalicAngle     Fl
	Ascent, Descent Fl
	Leading         Fl
	CapHeight       Fl
	XHeight         Fl
	StemV, StemH    Fl
	AvgWidth        Fl
	MaxWidth        Fl
	MissingWidth    int
	FontFile        *FontFile // optional, the embedded font program
	CharSet         string    // optional, ASCII or byte string
}

// SimpleEncoding is the Encoding entry of a simple font: either a predefined
// name or a dictionary of differences (9.6.6).
type SimpleEncoding interface {
	isSimpleEncoding()
}

func (SimpleEncodingPredefined) isSimpleEncoding() {}
func (*SimpleEncodingDict) isSimpleEncoding()      {}

// SimpleEncodingPredefined is one of the three standard encoding names.
type SimpleEncodingPredefined Name

const (
	MacRomanEncoding  SimpleEncodingPredefined = "MacRomanEncoding"
	MacExpertEncoding SimpleEncodingPredefined = "MacExpertEncoding"
	WinAnsiEncoding   SimpleEncodingPredefined = "WinAnsiEncoding"
)

// NewSimpleEncodingPredefined returns the predefined encoding matching `s`,
// or nil if `s` does not name one.
func NewSimpleEncodingPredefined(s string) SimpleEncoding {
	switch SimpleEncodingPredefined(s) {
	case MacRomanEncoding, MacExpertEncoding, WinAnsiEncoding:
		return SimpleEncodingPredefined(s)
	default:
		return nil
	}
}

// Differences describes the differences from the encoding specified by BaseEncoding.
// It is written in a PDF file in a more condensed form: an array
//
//	[ code1, name1_1, name1_2, code2, name2_1, name2_2, name2_3 ... ]
type Differences map[byte]Name

// PDFString returns the compacted form of the differences array:
// a run of consecutive codes is introduced by its first code, followed
// by one glyph name per code. Codes are sorted, so the output is
// deterministic.
func (d Differences) PDFString() string {
	codes := make([]int, 0, len(d))
	for c := range d {
		codes = append(codes, int(c))
	}
	sort.Ints(codes)
	b := newBuffer()
	b.fmt("[")
	prev := -2
	for _, c := range codes {
		if c != prev+1 {
			b.fmt(" %d", c)
		}
		b.fmt("%s", d[byte(c)].String())
		prev = c
	}
	b.fmt("]")
	return b.String()
}

func (d Differences) clone() Differences {
	out := make(Differences, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Apply overrides `base` (indexed by character code) with the differences,
// returning a new array.
func (d Differences) Apply(base [256]string) [256]string {
	out := base
	for code, name := range d {
		out[code] = string(name)
	}
	return out
}

// SimpleEncodingDict is the Encoding entry of a simple font, describing
// the deviations from a base encoding (9.6.6).
type SimpleEncodingDict struct {
	BaseEncoding SimpleEncodingPredefined // optional
	Differences  Differences              // optional
}

func cloneSimpleEncoding(e SimpleEncoding) SimpleEncoding {
	switch e := e.(type) {
	case SimpleEncodingPredefined:
		return e
	case *SimpleEncodingDict:
		if e == nil {
			return e
		}
		out := *e
		out.Differences = e.Differences.clone()
		return &out
	default:
		return nil
	}
}

func (e *SimpleEncodingDict) clone(cache cloneCache) Referenceable {
	out := cloneSimpleEncoding(e).(*SimpleEncodingDict)
	return out
}

// CMapEncoding is the Encoding entry of a Type0 font: either the name of a
// predefined CMap, or a stream defining an embedded one (9.7.5.2).
type CMapEncoding interface {
	isCMapEncoding()
}

func (CMapEncodingPredefined) isCMapEncoding() {}
func (CMapEncodingEmbedded) isCMapEncoding()   {}

// CMapEncodingPredefined names one of the predefined CMaps (e.g. Identity-H).
type CMapEncodingPredefined Name

// CMapEncodingEmbedded is an embedded CMap stream.
type CMapEncodingEmbedded struct {
	ContentStream

	CMapName      Name
	CIDSystemInfo CIDSystemInfo
	WMode         bool // optional, default to false (horizontal)
	UseCMap       CMapEncoding
}

// CIDSystemInfo identifies a character collection (9.7.3).
type CIDSystemInfo struct {
	Registry   string
	Ordering   string
	Supplement int
}

// CID is a character identifier, used by composite fonts.
type CID uint16

// CIDFontDictionary is a descendant font of a Type0 font (9.7.4).
type CIDFontDictionary struct {
	Subtype        Name // CIDFontType0 or CIDFontType2
	BaseFont       Name
	CIDSystemInfo  CIDSystemInfo
	FontDescriptor FontDescriptor
	DW             int // optional, default 1000
	DW2            [2]int
	W              []CIDWidth
	W2             []CIDVerticalMetric
	CIDToGIDMap    CIDToGIDMap // optional, only for CIDFontType2
}

func (c CIDFontDictionary) Clone() CIDFontDictionary {
	out := c
	out.W = append([]CIDWidth(nil), c.W...)
	out.W2 = append([]CIDVerticalMetric(nil), c.W2...)
	return out
}

// CIDWidth is either CIDWidthRange or CIDWidthArray.
type CIDWidth interface {
	isCIDWidth()
}

func (CIDWidthRange) isCIDWidth() {}
func (CIDWidthArray) isCIDWidth() {}

// CIDWidthRange sets the same width for every CID in [First, Last].
type CIDWidthRange struct {
	First, Last CID
	Width       int
}

// CIDWidthArray sets individual widths, starting at Start.
type CIDWidthArray struct {
	Start CID
	W     []int
}

// VerticalMetric describes the vertical displacement of a glyph.
type VerticalMetric struct {
	Vertical int
	Position [2]int
}

// CIDVerticalMetric is either CIDVerticalMetricRange or CIDVerticalMetricArray.
type CIDVerticalMetric interface {
	isCIDVerticalMetric()
}

func (CIDVerticalMetricRange) isCIDVerticalMetric() {}
func (CIDVerticalMetricArray) isCIDVerticalMetric() {}

type CIDVerticalMetricRange struct {
	First, Last CID
	VerticalMetric
}

type CIDVerticalMetricArray struct {
	Start     CID
	Verticals []VerticalMetric
}

// CIDToGIDMap maps CIDs to glyph indices, either the identity mapping or
// an embedded stream (9.7.4.3).
type CIDToGIDMap interface {
	isCIDToGIDMap()
}

func (CIDToGIDMapIdentity) isCIDToGIDMap() {}
func (CIDToGIDMapStream) isCIDToGIDMap()   {}

type CIDToGIDMapIdentity struct{}

type CIDToGIDMapStream struct {
	Stream
}
