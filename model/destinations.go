package model

import "fmt"

// Destination is the target of a link annotation, an outline item or a
// GoTo-family action. It is either a named destination (Name or byte
// string, resolved through the catalog's Dests entries) or an explicit
// destination (12.3.2).
type Destination interface {
	// pdfDestination returns the PDF content of the destination.
	// `ref` is the object number of the enclosing indirect object,
	// needed to encrypt byte strings.
	pdfDestination(pdfWriter, Reference) string
	clone(cache cloneCache) Destination
}

// DestinationLocation precises where and how to display a page.
// It is one of DestinationLocationFit, DestinationLocationFitDim,
// DestinationLocationXYZ, DestinationLocationFitR (see Table 151).
type DestinationLocation interface {
	locationElements() string // return the elements of the array
}

// DestinationLocationFit is one of /Fit or /FitB
type DestinationLocationFit Name

func (l DestinationLocationFit) locationElements() string {
	return Name(l).String()
}

// DestinationLocationFitDim is one of /FitH, /FitV, /FitBH, /FitBV.
// The dimension is the left or top coordinate, and may be null.
type DestinationLocationFitDim struct {
	Name Name // one of FitH FitV FitBH FitBV
	Dim  MaybeFloat
}

func (l DestinationLocationFitDim) locationElements() string {
	return l.Name.String() + " " + writeMaybeFloat(l.Dim)
}

// DestinationLocationXYZ positions the given point at the
// top left corner of the window, at the given zoom factor.
// Left and Top may be null, and a Zoom of 0 means "unchanged".
type DestinationLocationXYZ struct {
	Left, Top MaybeFloat
	Zoom      Fl
}

func (l DestinationLocationXYZ) locationElements() string {
	return fmt.Sprintf("/XYZ %s %s %s",
		writeMaybeFloat(l.Left), writeMaybeFloat(l.Top), FmtFloat(l.Zoom))
}

// DestinationLocationFitR fits the given rectangle in the window.
type DestinationLocationFitR struct {
	Left, Bottom, Right, Top Fl
}

func (l DestinationLocationFitR) locationElements() string {
	return fmt.Sprintf("/FitR %s %s %s %s",
		FmtFloat(l.Left), FmtFloat(l.Bottom), FmtFloat(l.Right), FmtFloat(l.Top))
}

// DestinationExplicit is an explicit destination: a page (either in
// the current document or in a remote one) and a location on it.
// It is implemented by DestinationExplicitIntern and
// DestinationExplicitExtern.
type DestinationExplicit interface {
	Destination
	isExplicit()
}

func (DestinationExplicitIntern) isExplicit() {}
func (DestinationExplicitExtern) isExplicit() {}

// DestinationExplicitIntern points to a page of the current document.
type DestinationExplicitIntern struct {
	Page     *PageObject
	Location DestinationLocation // optional
}

func (d DestinationExplicitIntern) pdfDestination(pdf pdfWriter, _ Reference) string {
	loc := "/Fit"
	if d.Location != nil {
		loc = d.Location.locationElements()
	}
	return fmt.Sprintf("[%s %s]", pdf.pages[d.Page], loc)
}

func (d DestinationExplicitIntern) clone(cache cloneCache) Destination {
	out := d
	if d.Page != nil {
		out.Page = cache.pages[d.Page].(*PageObject)
	}
	return out
}

// DestinationExplicitExtern points, by page index, into a remote
// document. It is only meaningful inside a GoToR action.
type DestinationExplicitExtern struct {
	Page     int                 // 0-based page index of the remote document
	Location DestinationLocation // optional
}

func (d DestinationExplicitExtern) pdfDestination(pdfWriter, Reference) string {
	loc := "/Fit"
	if d.Location != nil {
		loc = d.Location.locationElements()
	}
	return fmt.Sprintf("[%d %s]", d.Page, loc)
}

func (d DestinationExplicitExtern) clone(cloneCache) Destination { return d }

// DestinationName is a named destination, to be resolved
// through the Dests entry of the catalog.
type DestinationName Name

func (n DestinationName) pdfDestination(pdfWriter, Reference) string {
	return Name(n).String()
}

func (d DestinationName) clone(cloneCache) Destination { return d }

// DestinationString is a named destination, to be resolved
// through the Dests name tree of the catalog.
type DestinationString string

func (s DestinationString) pdfDestination(pdf pdfWriter, ref Reference) string {
	return pdf.EncodeString(string(s), ByteString, ref)
}

func (d DestinationString) clone(cloneCache) Destination { return d }
