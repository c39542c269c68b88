package model

import (
	"fmt"
	"strings"
)

// Action defines the characteristics and behaviour of an action (12.6).
// The zero value (a nil ActionType) means "no action" and is not
// written to the PDF file.
type Action struct {
	ActionType ActionType
	Next       []Action // optional
}

// pdfString returns the dictionary defining the action.
func (a Action) pdfString(pdf pdfWriter, ref Reference) string {
	next := ""
	if len(a.Next) != 0 {
		chunks := make([]string, len(a.Next))
		for i, n := range a.Next {
			chunks[i] = n.pdfString(pdf, ref)
		}
		next = "/Next [" + strings.Join(chunks, " ") + "]"
	}
	return fmt.Sprintf("<<%s%s>>", a.ActionType.actionParams(pdf, ref), next)
}

func (a Action) clone(cache cloneCache) Action {
	out := a
	if a.ActionType != nil {
		out.ActionType = a.ActionType.clone(cache)
	}
	if a.Next != nil { // preserve reflect.DeepEqual
		out.Next = make([]Action, len(a.Next))
		for i, n := range a.Next {
			out.Next[i] = n.clone(cache)
		}
	}
	return out
}

// ActionType specializes the action behaviour.
type ActionType interface {
	// actionParams returns the fields of the action dictionary,
	// including the /S entry, but without the enclosing << >>.
	actionParams(pdfWriter, Reference) string
	clone(cache cloneCache) ActionType
}

type ActionJavaScript struct {
	JS string // text string, may be found in PDF as stream object
}

func (j ActionJavaScript) actionParams(pdf pdfWriter, ref Reference) string {
	return "/S/JavaScript/JS " + pdf.EncodeString(j.JS, TextString, ref)
}

func (j ActionJavaScript) clone(cloneCache) ActionType { return j }

// ActionURI causes a URI to be resolved (12.6.4.7).
type ActionURI struct {
	URI   string // ASCII string
	IsMap bool   // optional
}

func (uri ActionURI) actionParams(pdf pdfWriter, ref Reference) string {
	out := "/S/URI/URI " + pdf.EncodeString(uri.URI, ByteString, ref)
	if uri.IsMap {
		out += "/IsMap true"
	}
	return out
}

func (uri ActionURI) clone(cloneCache) ActionType { return uri }

// ActionGoTo jumps to a destination in the current document.
type ActionGoTo struct {
	D Destination
}

func (ac ActionGoTo) actionParams(pdf pdfWriter, ref Reference) string {
	return "/S/GoTo/D " + ac.D.pdfDestination(pdf, ref)
}

func (ac ActionGoTo) clone(cache cloneCache) ActionType {
	return ActionGoTo{D: ac.D.clone(cache)}
}

// ActionRemoteGoTo jumps to a destination in another document (GoToR),
// or, when D is nil, launches an application (Launch).
type ActionRemoteGoTo struct {
	D         Destination // nil for a Launch action
	F         *FileSpec
	NewWindow bool
}

func (ac ActionRemoteGoTo) actionParams(pdf pdfWriter, ref Reference) string {
	var out string
	if ac.D == nil {
		out = "/S/Launch"
	} else {
		out = "/S/GoToR/D " + ac.D.pdfDestination(pdf, ref)
	}
	if ac.F != nil {
		out += "/F " + pdf.addItem(ac.F).String()
	}
	if ac.NewWindow {
		out += "/NewWindow true"
	}
	return out
}

func (ac ActionRemoteGoTo) clone(cache cloneCache) ActionType {
	out := ac
	if ac.D != nil {
		out.D = ac.D.clone(cache)
	}
	if ac.F != nil {
		out.F = cache.checkOrClone(ac.F).(*FileSpec)
	}
	return out
}

// ActionEmbeddedGoTo jumps to a destination in a document embedded in
// another one (12.6.4.4).
type ActionEmbeddedGoTo struct {
	D         Destination
	F         *FileSpec       // optional
	T         *EmbeddedTarget // optional, must be present if F is absent
	NewWindow bool
}

func (ac ActionEmbeddedGoTo) actionParams(pdf pdfWriter, ref Reference) string {
	out := "/S/GoToE/D " + ac.D.pdfDestination(pdf, ref)
	if ac.F != nil {
		out += "/F " + pdf.addItem(ac.F).String()
	}
	if ac.T != nil {
		out += "/T " + ac.T.pdfString(pdf, ref)
	}
	if ac.NewWindow {
		out += "/NewWindow true"
	}
	return out
}

func (ac ActionEmbeddedGoTo) clone(cache cloneCache) ActionType {
	out := ac
	if ac.D != nil {
		out.D = ac.D.clone(cache)
	}
	if ac.F != nil {
		out.F = cache.checkOrClone(ac.F).(*FileSpec)
	}
	out.T = ac.T.clone()
	return out
}

// EmbeddedTarget specifies the path to a target document,
// relative to its parent (Table 202).
type EmbeddedTarget struct {
	R Name                // required, P or C
	N string              // optional, byte string
	P EmbeddedTargetDest  // optional
	A EmbeddedTargetAnnot // optional
	T *EmbeddedTarget     // optional
}

func (e *EmbeddedTarget) pdfString(pdf pdfWriter, ref Reference) string {
	if e == nil {
		return "null"
	}
	out := "<</R " + e.R.String()
	if e.N != "" {
		out += "/N " + pdf.EncodeString(e.N, ByteString, ref)
	}
	if e.P != nil {
		out += "/P " + e.P.embeddedTargetDestString(pdf, ref)
	}
	if e.A != nil {
		out += "/A " + e.A.embeddedTargetAnnotString(pdf, ref)
	}
	if e.T != nil {
		out += "/T " + e.T.pdfString(pdf, ref)
	}
	return out + ">>"
}

func (e *EmbeddedTarget) clone() *EmbeddedTarget {
	if e == nil {
		return nil
	}
	out := *e
	out.T = e.T.clone()
	return &out
}

// EmbeddedTargetDest identifies the page of the intermediate document
// holding the embedded-file annotation: either a named destination
// (EmbeddedTargetDestNamed) or a 0-based page index
// (EmbeddedTargetDestPage).
type EmbeddedTargetDest interface {
	embeddedTargetDestString(pdfWriter, Reference) string
}

type EmbeddedTargetDestNamed string

func (n EmbeddedTargetDestNamed) embeddedTargetDestString(pdf pdfWriter, ref Reference) string {
	return pdf.EncodeString(string(n), ByteString, ref)
}

type EmbeddedTargetDestPage int

func (p EmbeddedTargetDestPage) embeddedTargetDestString(pdfWriter, Reference) string {
	return fmt.Sprintf("%d", p)
}

// EmbeddedTargetAnnot identifies the file-attachment annotation on the
// target page: either by its NM entry (EmbeddedTargetAnnotNamed) or by
// its index in the page's Annots array (EmbeddedTargetAnnotIndex).
type EmbeddedTargetAnnot interface {
	embeddedTargetAnnotString(pdfWriter, Reference) string
}

type EmbeddedTargetAnnotNamed string

func (n EmbeddedTargetAnnotNamed) embeddedTargetAnnotString(pdf pdfWriter, ref Reference) string {
	return pdf.EncodeString(string(n), TextString, ref)
}

type EmbeddedTargetAnnotIndex int

func (i EmbeddedTargetAnnotIndex) embeddedTargetAnnotString(pdfWriter, Reference) string {
	return fmt.Sprintf("%d", i)
}

// ActionHide hides or shows annotations (12.6.4.10).
type ActionHide struct {
	T    []ActionHideTarget // required
	Show bool               // written in PDF as H, with H = !Show
}

func (ac ActionHide) actionParams(pdf pdfWriter, ref Reference) string {
	chunks := make([]string, len(ac.T))
	for i, t := range ac.T {
		chunks[i] = t.hideTargetString(pdf, ref)
	}
	out := "/S/Hide/T [" + strings.Join(chunks, " ") + "]"
	if ac.Show {
		out += "/H false"
	}
	return out
}

func (ac ActionHide) clone(cache cloneCache) ActionType {
	out := ac
	if ac.T != nil {
		out.T = make([]ActionHideTarget, len(ac.T))
		for i, t := range ac.T {
			out.T[i] = t.cloneHT(cache)
		}
	}
	return out
}

// ActionHideTarget is either an annotation (*AnnotationDict) or a form
// field, designated by its fully qualified name (HideTargetFormName).
type ActionHideTarget interface {
	hideTargetString(pdfWriter, Reference) string
	cloneHT(cloneCache) ActionHideTarget
}

type HideTargetFormName string

func (n HideTargetFormName) hideTargetString(pdf pdfWriter, ref Reference) string {
	return pdf.EncodeString(string(n), TextString, ref)
}

func (n HideTargetFormName) cloneHT(cloneCache) ActionHideTarget { return n }

func (a *AnnotationDict) hideTargetString(pdf pdfWriter, _ Reference) string {
	return pdf.addItem(a).String()
}

func (a *AnnotationDict) cloneHT(cache cloneCache) ActionHideTarget {
	return cache.checkOrClone(a).(*AnnotationDict)
}

// ActionNamed executes one of the viewer's predefined actions
// (NextPage, PrevPage, FirstPage, LastPage).
type ActionNamed Name

func (ac ActionNamed) actionParams(pdfWriter, Reference) string {
	return "/S/Named/N " + Name(ac).String()
}

func (ac ActionNamed) clone(cloneCache) ActionType { return ac }
