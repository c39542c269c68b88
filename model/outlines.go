package model

import "fmt"

// OutlineNode is either the root Outline or an OutlineItem: items
// point back to their parent through this interface.
type OutlineNode interface {
	isOutlineNode()
}

func (*Outline) isOutlineNode()     {}
func (*OutlineItem) isOutlineNode() {}

// Outline is the root of the document outline hierarchy (12.3.3).
// Its children are chained from First through OutlineItem.Next.
type Outline struct {
	First *OutlineItem
}

// Last returns the last top-level item, or nil for an empty outline.
func (o *Outline) Last() *OutlineItem {
	var last *OutlineItem
	for item := o.First; item != nil; item = item.Next {
		last = item
	}
	return last
}

// Count returns the total number of visible outline items at all levels.
func (o *Outline) Count() int {
	count := 0
	for item := o.First; item != nil; item = item.Next {
		count++
		if item.Open {
			count += item.count()
		}
	}
	return count
}

// Flatten returns the items of the outline, in a depth-first order.
func (o *Outline) Flatten() []*OutlineItem {
	var out []*OutlineItem
	for item := o.First; item != nil; item = item.Next {
		item.flatten(&out)
	}
	return out
}

func (o *Outline) clone(cache cloneCache) *Outline {
	if o == nil {
		return nil
	}
	out := Outline{}
	out.First = o.First.clone(cache, &out)
	return &out
}

// pdfString writes the outline root and all its items; ref is the
// object number pre-allocated for the root.
func (o *Outline) pdfString(pdf pdfWriter, ref Reference) string {
	firstRef := pdf.allocateOutlineItems(o.First)
	for item := o.First; item != nil; item = item.Next {
		item.write(pdf, ref)
	}
	lastRef := pdf.outlines[o.Last()]
	return fmt.Sprintf("<</Type/Outlines/First %s/Last %s/Count %d>>",
		firstRef, lastRef, o.Count())
}

// allocateOutlineItems pre-allocates an object number for every item of
// a sibling chain and its descendants, so that Prev/Next/Parent entries
// can be written in one pass.
func (pdf pdfWriter) allocateOutlineItems(first *OutlineItem) Reference {
	var firstRef Reference
	for item := first; item != nil; item = item.Next {
		ref := pdf.CreateObject()
		pdf.outlines[item] = ref
		if item == first {
			firstRef = ref
		}
		if item.First != nil {
			pdf.allocateOutlineItems(item.First)
		}
	}
	return firstRef
}

// OutlineFlag specifies the style of an outline item's text (Table 153).
type OutlineFlag uint8

const (
	OutlineItalic OutlineFlag = 1
	OutlineBold   OutlineFlag = 1 << 1
)

// OutlineItem is one element of the outline hierarchy. Siblings are
// chained through Next; children hang from First.
type OutlineItem struct {
	Title  string      // required, text string
	Parent OutlineNode // required, the direct parent
	First  *OutlineItem
	Next   *OutlineItem
	Open   bool        // whether the children are shown
	Dest   Destination // optional
	A      Action      // optional, only used if Dest is nil
	C      [3]Fl       // optional, RGB
	F      OutlineFlag // optional
}

// count returns the number of visible descendants.
func (o *OutlineItem) count() int {
	total := 0
	for kid := o.First; kid != nil; kid = kid.Next {
		total++
		if kid.Open {
			total += kid.count()
		}
	}
	return total
}

func (o *OutlineItem) flatten(dst *[]*OutlineItem) {
	*dst = append(*dst, o)
	for kid := o.First; kid != nil; kid = kid.Next {
		kid.flatten(dst)
	}
}

// clone deep-copies the item, its siblings and its children,
// re-anchoring every Parent pointer at parent.
func (o *OutlineItem) clone(cache cloneCache, parent OutlineNode) *OutlineItem {
	if o == nil {
		return nil
	}
	out := *o
	out.Parent = parent
	if o.Dest != nil {
		out.Dest = o.Dest.clone(cache)
	}
	out.A = o.A.clone(cache)
	out.First = o.First.clone(cache, &out)
	out.Next = o.Next.clone(cache, parent)
	return &out
}

// write emits the item and, recursively, its children. Object numbers
// must have been pre-allocated with allocateOutlineItems.
func (o *OutlineItem) write(pdf pdfWriter, parent Reference) {
	ownRef := pdf.outlines[o]
	b := newBuffer()
	b.fmt("<</Title %s/Parent %s", pdf.EncodeString(o.Title, TextString, ownRef), parent)
	if o.First != nil {
		last := o.First
		for ; last.Next != nil; last = last.Next {
		}
		b.fmt("/First %s/Last %s", pdf.outlines[o.First], pdf.outlines[last])
		count := o.count()
		if !o.Open {
			count = -count
		}
		b.fmt("/Count %d", count)
	}
	if o.Next != nil {
		b.fmt("/Next %s", pdf.outlines[o.Next])
	}
	if prev := o.prevSibling(); prev != nil {
		b.fmt("/Prev %s", pdf.outlines[prev])
	}
	if o.Dest != nil {
		b.fmt("/Dest %s", o.Dest.pdfDestination(pdf, ownRef))
	} else if o.A.ActionType != nil {
		b.fmt("/A %s", o.A.pdfString(pdf, ownRef))
	}
	if o.C != ([3]Fl{}) {
		b.fmt("/C [%s %s %s]", FmtFloat(o.C[0]), FmtFloat(o.C[1]), FmtFloat(o.C[2]))
	}
	if o.F != 0 {
		b.fmt("/F %d", o.F)
	}
	b.fmt(">>")
	pdf.WriteObject(b.String(), ownRef)

	for kid := o.First; kid != nil; kid = kid.Next {
		kid.write(pdf, ownRef)
	}
}

// prevSibling returns the item preceding o in its sibling chain,
// walking from the parent's first child.
func (o *OutlineItem) prevSibling() *OutlineItem {
	var first *OutlineItem
	switch p := o.Parent.(type) {
	case *Outline:
		first = p.First
	case *OutlineItem:
		first = p.First
	default:
		return nil
	}
	var prev *OutlineItem
	for item := first; item != nil; item = item.Next {
		if item == o {
			return prev
		}
		prev = item
	}
	return nil
}
