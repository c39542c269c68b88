package model

import "fmt"

// PageNode is either a `PageTree` or a `PageObject`
type PageNode interface {
	isPageNode()
}

func (PageTree) isPageNode()    {}
func (*PageObject) isPageNode() {}

// PageTree describe the page hierarchy
// of a PDF file.
type PageTree struct {
	Parent    *PageTree
	Kids      []PageNode
	Resources *ResourcesDict // if nil, will be inherited from the parent
	MediaBox  *Rectangle     // if nil, will be inherited from the parent
	CropBox   *Rectangle     // if nil, will be inherited from the parent
	Rotate    *Rotation      // if nil, will be inherited from the parent
}

// Count returns the number of Page objects (leaf node)
// in all the descendants of `p` (not only in its direct children)
func (p PageTree) Count() int {
	return len(p.Flatten())
}

// Flatten returns all the leaf of the tree,
// respecting the indexing convention for pages (0-based):
// the page with index i is Flatten()[i].
// Be aware that inherited resource are not resolved
func (p PageTree) Flatten() []*PageObject {
	var out []*PageObject
	for _, kid := range p.Kids {
		switch kid := kid.(type) {
		case *PageTree:
			out = append(out, kid.Flatten()...)
		case *PageObject:
			out = append(out, kid)
		}
	}
	return out
}

// Page returns the leaf page at the given 0-based index without
// flattening the whole tree: at each PageTree node it uses the Count of
// each kid to decide which subtree contains the target index, recursing
// into exactly one child per level. This is the indexed counterpart to
// Flatten, used when only a single page is needed (link resolution,
// on-demand rendering of one page out of a large document).
func (p PageTree) Page(index int) (*PageObject, bool) {
	if index < 0 {
		return nil, false
	}
	for _, kid := range p.Kids {
		switch kid := kid.(type) {
		case *PageTree:
			n := kid.Count()
			if index < n {
				return kid.Page(index)
			}
			index -= n
		case *PageObject:
			if index == 0 {
				return kid, true
			}
			index--
		}
	}
	return nil, false
}

// PageNumberIndex is a reverse map from a *PageObject pointer found
// anywhere in a page tree to its 0-based page index, built once and
// reused for repeated lookups (link annotations, outline destinations,
// structure-tree /Pg entries all resolve through it). Since this
// in-memory model already represents indirect references to a page as a
// plain Go pointer rather than an object number (see the Document
// doc-comment), the index is keyed by pointer identity instead of by
// PDF object number.
type PageNumberIndex map[*PageObject]int

// NewPageNumberIndex flattens tree once and records the index of every
// leaf page, so that later lookups are O(1) instead of walking the tree
// (or, worse, re-flattening it) for every link.
func NewPageNumberIndex(tree PageTree) PageNumberIndex {
	pages := tree.Flatten()
	out := make(PageNumberIndex, len(pages))
	for i, p := range pages {
		out[p] = i
	}
	return out
}

// Lookup returns the page index of p, if p is one of the pages the index
// was built from.
func (idx PageNumberIndex) Lookup(p *PageObject) (int, bool) {
	i, ok := idx[p]
	return i, ok
}

// allocateClones walks the page tree and, for every node not already seen,
// stores a fresh zero-value clone (of the same concrete type) into
// cache.pages. This lets a node that refers to an arbitrary page - such as
// a GoTo action or a structure element's Pg entry - resolve the clone's
// pointer before the tree itself is fully copied.
func (cache cloneCache) allocateClones(node PageNode) {
	switch n := node.(type) {
	case *PageTree:
		if _, ok := cache.pages[n]; ok {
			return
		}
		cache.pages[n] = &PageTree{}
		for _, kid := range n.Kids {
			// see allocateReferences: kids may point to another copy
			// of this node as their Parent
			var parent *PageTree
			switch k := kid.(type) {
			case *PageTree:
				parent = k.Parent
			case *PageObject:
				parent = k.Parent
			}
			if parent != nil {
				if _, seen := cache.pages[parent]; !seen {
					cache.pages[parent] = cache.pages[n]
				}
			}
			cache.allocateClones(kid)
		}
	case *PageObject:
		if _, ok := cache.pages[n]; ok {
			return
		}
		cache.pages[n] = &PageObject{}
	}
}

func (p *PageTree) clone(cache cloneCache) Referenceable {
	if p == nil {
		return p
	}
	out := cache.pages[p].(*PageTree)
	if p.Parent != nil {
		out.Parent = cache.pages[p.Parent].(*PageTree)
	}
	if p.Resources != nil {
		r := p.Resources.clone(cache)
		out.Resources = &r
	}
	out.MediaBox = p.MediaBox
	out.CropBox = p.CropBox
	out.Rotate = p.Rotate
	out.Kids = make([]PageNode, len(p.Kids))
	for i, kid := range p.Kids {
		switch kid := kid.(type) {
		case *PageTree:
			out.Kids[i] = kid.clone(cache).(*PageTree)
		case *PageObject:
			out.Kids[i] = kid.clone(cache).(*PageObject)
		}
	}
	return out
}

func (p *PageObject) clone(cache cloneCache) Referenceable {
	if p == nil {
		return p
	}
	out := cache.pages[p].(*PageObject)
	if p.Parent != nil {
		out.Parent = cache.pages[p.Parent].(*PageTree)
	}
	if p.Resources != nil {
		r := p.Resources.clone(cache)
		out.Resources = &r
	}
	if p.MediaBox != nil {
		v := *p.MediaBox
		out.MediaBox = &v
	}
	if p.CropBox != nil {
		v := *p.CropBox
		out.CropBox = &v
	}
	if p.BleedBox != nil {
		v := *p.BleedBox
		out.BleedBox = &v
	}
	if p.TrimBox != nil {
		v := *p.TrimBox
		out.TrimBox = &v
	}
	if p.ArtBox != nil {
		v := *p.ArtBox
		out.ArtBox = &v
	}
	if p.Rotate != nil {
		v := *p.Rotate
		out.Rotate = &v
	}
	out.Annots = make([]*AnnotationDict, len(p.Annots))
	for i, a := range p.Annots {
		out.Annots[i] = cache.checkOrClone(a).(*AnnotationDict)
	}
	out.Contents = make(Contents, len(p.Contents))
	for i, c := range p.Contents {
		out.Contents[i] = c.Clone()
	}
	out.Tabs = p.Tabs
	return out
}

// allocateReferences walks the page tree and assigns an object number to
// every node, so that a node referring to an arbitrary page - a GoTo
// action, a structure element's Pg entry - can resolve it before the tree
// itself is written.
func (pdf pdfWriter) allocateReferences(node PageNode) {
	if _, ok := pdf.pages[node]; ok {
		return
	}
	pdf.pages[node] = pdf.CreateObject()
	if tree, ok := node.(*PageTree); ok {
		for _, kid := range tree.Kids {
			// the kids may have been built against another copy of this
			// node (the tree root is stored by value in the catalog):
			// register their Parent pointer as an alias
			var parent *PageTree
			switch k := kid.(type) {
			case *PageTree:
				parent = k.Parent
			case *PageObject:
				parent = k.Parent
			}
			if parent != nil {
				if _, seen := pdf.pages[parent]; !seen {
					pdf.pages[parent] = pdf.pages[node]
				}
			}
			pdf.allocateReferences(kid)
		}
	}
}

// writePages writes every node of the page tree, using the references
// pre-allocated by allocateReferences.
func (pdf pdfWriter) writePages(node PageNode) {
	ref := pdf.pages[node]
	switch n := node.(type) {
	case *PageTree:
		pdf.WriteObject(n.pdfString(pdf, ref), ref)
		for _, kid := range n.Kids {
			pdf.writePages(kid)
		}
	case *PageObject:
		pdf.WriteObject(n.pdfString(pdf, ref), ref)
	}
}

// pdfString writes the /Pages node dictionary (7.7.3.2).
func (p *PageTree) pdfString(pdf pdfWriter, ref Reference) string {
	b := newBuffer()
	b.line("<<")
	b.line("/Type /Pages")
	if p.Parent != nil {
		b.line("/Parent %s", pdf.pages[p.Parent])
	}
	refs := make([]Reference, len(p.Kids))
	for i, kid := range p.Kids {
		refs[i] = pdf.pages[kid]
	}
	b.line("/Kids %s", writeRefArray(refs))
	b.line("/Count %d", p.Count())
	if p.Resources != nil {
		b.line("/Resources %s", p.Resources.pdfString(pdf, ref))
	}
	if p.MediaBox != nil {
		b.line("/MediaBox %s", p.MediaBox.String())
	}
	if p.CropBox != nil {
		b.line("/CropBox %s", p.CropBox.String())
	}
	if p.Rotate != nil && *p.Rotate != Unset {
		b.line("/Rotate %d", p.Rotate.Degrees())
	}
	b.fmt(">>")
	return b.String()
}

// pdfString writes the /Page node dictionary (7.7.3.3). Its content
// streams are written as separate indirect stream objects, referenced
// from /Contents.
func (p *PageObject) pdfString(pdf pdfWriter, ref Reference) string {
	b := newBuffer()
	b.line("<<")
	b.line("/Type /Page")
	if p.Parent != nil {
		b.line("/Parent %s", pdf.pages[p.Parent])
	}
	if p.Resources != nil {
		b.line("/Resources %s", p.Resources.pdfString(pdf, ref))
	}
	if p.MediaBox != nil {
		b.line("/MediaBox %s", p.MediaBox.String())
	}
	if p.CropBox != nil {
		b.line("/CropBox %s", p.CropBox.String())
	}
	if p.BleedBox != nil {
		b.line("/BleedBox %s", p.BleedBox.String())
	}
	if p.TrimBox != nil {
		b.line("/TrimBox %s", p.TrimBox.String())
	}
	if p.ArtBox != nil {
		b.line("/ArtBox %s", p.ArtBox.String())
	}
	if p.Rotate != nil && *p.Rotate != Unset {
		b.line("/Rotate %d", p.Rotate.Degrees())
	}
	if len(p.Annots) != 0 {
		refs := make([]Reference, len(p.Annots))
		for i, a := range p.Annots {
			refs[i] = pdf.addItem(a)
		}
		b.line("/Annots %s", writeRefArray(refs))
	}
	if len(p.Contents) != 0 {
		refs := make([]Reference, len(p.Contents))
		for i := range p.Contents {
			refs[i] = pdf.addStream(p.Contents[i].contentHeader(), p.Contents[i].Content)
		}
		if len(refs) == 1 {
			b.line("/Contents %s", refs[0])
		} else {
			b.line("/Contents %s", writeRefArray(refs))
		}
	}
	if p.Tabs != "" {
		b.line("/Tabs %s", p.Tabs)
	}
	b.fmt(">>")
	return b.String()
}

// contentHeader builds the stream header (/Filter, /DecodeParms) for a
// content stream written as its own indirect object.
func (c ContentStream) contentHeader() StreamHeader {
	fields := filterFields(c.Filter)
	if fields == nil {
		fields = map[Name]string{}
	}
	return StreamHeader{Fields: fields}
}

type PageObject struct {
	Parent                    *PageTree
	Resources                 *ResourcesDict // if nil, will be inherited from the parent
	MediaBox                  *Rectangle     // if nil, will be inherited from the parent
	CropBox                   *Rectangle     // if nil, will be inherited. if still nil, default to MediaBox
	BleedBox, TrimBox, ArtBox *Rectangle     // if nil, default to CropBox
	Rotate                    *Rotation      // if nil, will be inherited from the parent. Only multiple of 90 are allowed
	Annots                    []*AnnotationDict
	Contents                  Contents
	Tabs                      Name // optional
}

// Contents is an array of stream (often of length 1)
type Contents []ContentStream

type ResourcesDict struct {
	ExtGState  map[Name]*GraphicState // optionnal
	ColorSpace map[Name]ColorSpace
	Shading    map[Name]*ShadingDict
	Pattern    map[Name]Pattern
	Font       map[Name]*FontDict
	XObject    map[Name]XObject
	Properties map[Name]PropertyList // referenced by BDC/DP marked-content operators
}

// NewResourcesDict returns a ResourcesDict with every map initialized,
// ready to be filled in place (see reader/parser.ParseContentResources).
func NewResourcesDict() ResourcesDict {
	return ResourcesDict{
		ExtGState:  map[Name]*GraphicState{},
		ColorSpace: map[Name]ColorSpace{},
		Shading:    map[Name]*ShadingDict{},
		Pattern:    map[Name]Pattern{},
		Font:       map[Name]*FontDict{},
		XObject:    map[Name]XObject{},
		Properties: map[Name]PropertyList{},
	}
}

// ResourcesColorSpace is the subset of a resource dictionary's /ColorSpace
// entry needed to resolve the color space of an inline image (8.9.5.2).
type ResourcesColorSpace map[Name]ColorSpace

// Resolve looks up `name` as a device color space name first, then as a
// resource name in the /ColorSpace dictionary.
func (r ResourcesColorSpace) Resolve(name ObjName) (ColorSpace, error) {
	switch ColorSpaceName(name) {
	case ColorSpaceGray, ColorSpaceRGB, ColorSpaceCMYK, ColorSpacePattern:
		return ColorSpaceName(name), nil
	}
	if cs, ok := r[Name(name)]; ok {
		return cs, nil
	}
	return nil, fmt.Errorf("unknown color space resource %q", name)
}

// pdfString writes the /Resources dictionary (7.8.3), dispatching each
// entry to the writer appropriate for its kind. `context` is the object
// number of the page or form the resources belong to, used to encrypt any
// string found in a Properties entry.
func (r ResourcesDict) pdfString(pdf pdfWriter, context Reference) string {
	b := newBuffer()
	b.fmt("<<")
	if len(r.ExtGState) != 0 {
		sub := newBuffer()
		sub.fmt("<<")
		for name, gs := range r.ExtGState {
			sub.fmt("%s %s ", name, pdf.addItem(gs))
		}
		sub.fmt(">>")
		b.fmt("/ExtGState %s ", sub.String())
	}
	if len(r.ColorSpace) != 0 {
		sub := newBuffer()
		sub.fmt("<<")
		for name, cs := range r.ColorSpace {
			sub.fmt("%s %s ", name, writeColorSpace(cs, pdf))
		}
		sub.fmt(">>")
		b.fmt("/ColorSpace %s ", sub.String())
	}
	if len(r.Shading) != 0 {
		sub := newBuffer()
		sub.fmt("<<")
		for name, sh := range r.Shading {
			sub.fmt("%s %s ", name, pdf.addItem(sh))
		}
		sub.fmt(">>")
		b.fmt("/Shading %s ", sub.String())
	}
	if len(r.Pattern) != 0 {
		sub := newBuffer()
		sub.fmt("<<")
		for name, p := range r.Pattern {
			sub.fmt("%s %s ", name, pdf.addItem(p))
		}
		sub.fmt(">>")
		b.fmt("/Pattern %s ", sub.String())
	}
	if len(r.Font) != 0 {
		sub := newBuffer()
		sub.fmt("<<")
		for name, f := range r.Font {
			sub.fmt("%s %s ", name, pdf.addItem(f))
		}
		sub.fmt(">>")
		b.fmt("/Font %s ", sub.String())
	}
	if len(r.XObject) != 0 {
		sub := newBuffer()
		sub.fmt("<<")
		for name, xo := range r.XObject {
			sub.fmt("%s %s ", name, pdf.addItem(xo))
		}
		sub.fmt(">>")
		b.fmt("/XObject %s ", sub.String())
	}
	if len(r.Properties) != 0 {
		sub := newBuffer()
		sub.fmt("<<")
		for name, pl := range r.Properties {
			sub.fmt("%s %s ", name, pl.Write(pdf, context))
		}
		sub.fmt(">>")
		b.fmt("/Properties %s ", sub.String())
	}
	b.fmt(">>")
	return b.String()
}

func (r ResourcesDict) clone(cache cloneCache) ResourcesDict {
	var out ResourcesDict
	if r.ExtGState != nil {
		out.ExtGState = make(map[Name]*GraphicState, len(r.ExtGState))
		for k, v := range r.ExtGState {
			out.ExtGState[k] = cache.checkOrClone(v).(*GraphicState)
		}
	}
	if r.ColorSpace != nil {
		out.ColorSpace = make(map[Name]ColorSpace, len(r.ColorSpace))
		for k, v := range r.ColorSpace {
			out.ColorSpace[k] = cloneColorSpace(v, cache)
		}
	}
	if r.Shading != nil {
		out.Shading = make(map[Name]*ShadingDict, len(r.Shading))
		for k, v := range r.Shading {
			out.Shading[k] = cache.checkOrClone(v).(*ShadingDict)
		}
	}
	if r.Pattern != nil {
		out.Pattern = make(map[Name]Pattern, len(r.Pattern))
		for k, v := range r.Pattern {
			out.Pattern[k] = cache.checkOrClone(v).(Pattern)
		}
	}
	if r.Font != nil {
		out.Font = make(map[Name]*FontDict, len(r.Font))
		for k, v := range r.Font {
			out.Font[k] = cache.checkOrClone(v).(*FontDict)
		}
	}
	if r.XObject != nil {
		out.XObject = make(map[Name]XObject, len(r.XObject))
		for k, v := range r.XObject {
			out.XObject[k] = cache.checkOrClone(v).(XObject)
		}
	}
	if r.Properties != nil {
		out.Properties = make(map[Name]PropertyList, len(r.Properties))
		for k, v := range r.Properties {
			out.Properties[k] = v.Clone().(PropertyList)
		}
	}
	return out
}
