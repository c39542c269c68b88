package reader

import (
	"errors"
	"fmt"

	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/file"
)

// catalog resolves the document catalog into its typed form. The page
// tree is resolved first, since destinations, outlines and the name
// dictionary all refer to pages.
func (r resolver) catalog() (model.Catalog, error) {
	var (
		out model.Catalog
		err error
	)
	d, ok := r.resolve(r.file.Root).(model.ObjDict)
	if !ok {
		return out, model.NewSyntaxError(fmt.Sprintf("invalid Catalog: expected dict, got %T", r.resolve(r.file.Root)), nil)
	}

	out.Pages, err = r.processPages(d["Pages"])
	if err != nil {
		return out, err
	}

	out.Dests, err = r.resolveDests(d["Dests"])
	if err != nil {
		return out, err
	}
	out.Names, err = r.processNameDict(d["Names"])
	if err != nil {
		return out, err
	}

	out.PageLayout, _ = r.resolveName(d["PageLayout"])
	out.PageMode, _ = r.resolveName(d["PageMode"])

	if pl := d["PageLabels"]; pl != nil {
		out.PageLabels = new(model.PageLabelsTree)
		if err = r.resolveNumberTree(pl, pageLabelTree{out: out.PageLabels}); err != nil {
			return out, err
		}
	}

	// outlines need the pages; some generators misspell the key
	out.Outlines, err = r.resolveOutline(d["Outlines"])
	if err != nil {
		return out, err
	}
	if out.Outlines == nil {
		out.Outlines, err = r.resolveOutline(d["Outline"])
		if err != nil {
			return out, err
		}
	}

	out.ViewerPreferences, err = r.resolveViewerPreferences(d["ViewerPreferences"])
	if err != nil {
		return out, err
	}

	if uriDict, ok := r.resolve(d["URI"]).(model.ObjDict); ok {
		out.URI, _ = file.IsString(r.resolve(uriDict["Base"]))
	}

	out.OpenAction, err = r.resolveDestinationOrAction(d["OpenAction"])
	if err != nil {
		return out, err
	}

	lang, _ := file.IsString(r.resolve(d["Lang"]))
	out.Lang = DecodeTextString(lang)

	return out, nil
}

// rectangleFromArray accepts the usual [llx lly urx ury] form, or nil
// for anything shorter.
func (r resolver) rectangleFromArray(array model.Object) *model.Rectangle {
	ar, _ := r.resolveArray(array)
	if len(ar) < 4 {
		return nil
	}
	var coords [4]Fl
	for i := range coords {
		coords[i], _ = r.resolveNumber(ar[i])
	}
	return &model.Rectangle{Llx: coords[0], Lly: coords[1], Urx: coords[2], Ury: coords[3]}
}

func (r resolver) matrixFromArray(array model.Object) *model.Matrix {
	ar, _ := r.resolveArray(array)
	if len(ar) != 6 {
		return nil
	}
	var out model.Matrix
	for i := range out {
		out[i], _ = r.resolveNumber(ar[i])
	}
	return &out
}

func (r resolver) resolveAppearanceDict(o model.Object) (*model.AppearanceDict, error) {
	ref, isRef := o.(model.ObjIndirectRef)
	if isRef {
		if cached := r.appearanceDicts[ref]; cached != nil {
			return cached, nil
		}
		o = r.resolve(ref)
	}
	if o == nil {
		return nil, nil
	}
	a, isDict := o.(model.ObjDict)
	if !isDict {
		return nil, errType("AppearanceDict", o)
	}

	var out model.AppearanceDict
	for _, entry := range [...]struct {
		key model.ObjName
		dst *model.AppearanceEntry
	}{
		{"N", &out.N}, {"R", &out.R}, {"D", &out.D},
	} {
		if ap := a[entry.key]; ap != nil {
			resolved, err := r.resolveAppearanceEntry(ap)
			if err != nil {
				return nil, err
			}
			*entry.dst = resolved
		}
	}
	if isRef { // write back to the cache
		r.appearanceDicts[ref] = &out
	}
	return &out, nil
}

// resolveAppearanceEntry handles both forms of an appearance entry: a
// single stream, or a sub-dictionary of per-state streams.
func (r resolver) resolveAppearanceEntry(obj model.Object) (model.AppearanceEntry, error) {
	subDict, isDict := r.resolve(obj).(model.ObjDict)
	if !isDict { // a single stream, stored under the empty state name
		ap, err := r.resolveOneXObjectForm(obj)
		if err != nil {
			return nil, err
		}
		return model.AppearanceEntry{"": ap}, nil
	}
	out := make(model.AppearanceEntry, len(subDict))
	for name, stream := range subDict {
		formObj, err := r.resolveOneXObjectForm(stream)
		if err != nil {
			return nil, err
		}
		out[model.ObjName(name)] = formObj
	}
	return out, nil
}

// resolveOneXObjectForm resolves (and caches) a Form XObject. An error
// is returned if obj is missing or not a stream.
func (r resolver) resolveOneXObjectForm(obj model.Object) (*model.XObjectForm, error) {
	xObjRef, isRef := obj.(model.ObjIndirectRef)
	if out := r.xObjectForms[xObjRef]; isRef && out != nil {
		return out, nil
	}

	// register before resolving the fields: some files carry forms
	// whose resources point back to themselves
	out := new(model.XObjectForm)
	if isRef {
		r.xObjectForms[xObjRef] = out
	}

	if err := r.resolveXFormObjectFields(obj, out); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveXFormObjectFields fills out from obj, without touching the
// form cache.
func (r resolver) resolveXFormObjectFields(obj model.Object, out *model.XObjectForm) error {
	obj = r.resolve(obj)
	cs, ok, err := r.resolveStream(obj)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("missing Form XObject")
	}
	out.ContentStream = model.ContentStream{Stream: cs}

	stream, _ := obj.(model.ObjStream) // resolveStream accepted it
	if rect := r.rectangleFromArray(r.resolve(stream.Args["BBox"])); rect != nil {
		out.BBox = *rect
	}
	if mat := r.matrixFromArray(r.resolve(stream.Args["Matrix"])); mat != nil {
		out.Matrix = *mat
	}
	if res := stream.Args["Resources"]; res != nil {
		out.Resources, err = r.resolveOneResourceDict(res)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) resolveOneXObjectGroup(obj model.Object) (*model.XObjectTransparencyGroup, error) {
	xObjRef, isRef := obj.(model.ObjIndirectRef)
	if out := r.xObjectsGroups[xObjRef]; isRef && out != nil {
		return out, nil
	}

	out := new(model.XObjectTransparencyGroup)
	if isRef { // see resolveOneXObjectForm
		r.xObjectsGroups[xObjRef] = out
	}

	if err := r.resolveXFormObjectFields(obj, &out.XObjectForm); err != nil {
		return nil, err
	}
	// resolveXFormObjectFields accepted obj as a stream
	gDict := r.resolve(obj).(model.ObjStream).Args
	group, _ := r.resolve(gDict["Group"]).(model.ObjDict)
	var err error
	out.CS, err = r.resolveOneColorSpace(group["CS"])
	if err != nil {
		return out, err
	}
	out.I, _ = r.resolveBool(group["I"])
	out.K, _ = r.resolveBool(group["K"])

	return out, nil
}

// resolveOneNamedDest accepts the two shapes a named destination value
// may take: the destination array itself, or a dict with a D entry
// holding it.
func (r resolver) resolveOneNamedDest(dest model.Object) (model.DestinationExplicit, error) {
	dest = r.resolve(dest)
	switch dest := dest.(type) {
	case model.ObjArray:
		return r.resolveExplicitDestination(dest)
	case model.ObjDict:
		D, isArray := r.resolveArray(dest["D"])
		if !isArray {
			return nil, errType("(Dests value).D", dest["D"])
		}
		return r.resolveExplicitDestination(D)
	default:
		return nil, errType("Dests value", dest)
	}
}

func (r resolver) processNameDict(entry model.Object) (model.NameDictionary, error) {
	var out model.NameDictionary

	dict, _ := r.resolve(entry).(model.ObjDict)
	for _, tree := range [...]struct {
		key model.ObjName
		dst nameTree
	}{
		{"Dests", destNameTree{out: &out.Dests}},
		{"EmbeddedFiles", embFileNameTree{out: &out.EmbeddedFiles}},
		{"AP", appearanceNameTree{out: &out.AP}},
		{"Pages", templatesNameTree{out: &out.Pages}},
		{"Templates", templatesNameTree{out: &out.Templates}},
	} {
		if t := dict[tree.key]; t != nil {
			if err := r.resolveNameTree(t, tree.dst); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}

func (r resolver) resolveViewerPreferences(entry model.Object) (*model.ViewerPreferences, error) {
	entry = r.resolve(entry)
	if entry == nil {
		return nil, nil
	}
	dict, ok := entry.(model.ObjDict)
	if !ok {
		return nil, errType("ViewerPreferences", entry)
	}
	var out model.ViewerPreferences
	out.FitWindow, _ = r.resolveBool(dict["FitWindow"])
	out.CenterWindow, _ = r.resolveBool(dict["CenterWindow"])
	if direction, _ := r.resolveName(dict["Direction"]); direction == "R2L" {
		out.DirectionRTL = true
	}
	return &out, nil
}

func (r resolver) resolveOutline(entry model.Object) (*model.Outline, error) {
	entry = r.resolve(entry)
	if entry == nil {
		return nil, nil
	}
	dict, ok := entry.(model.ObjDict)
	if !ok {
		return nil, errType("Outlines", entry)
	}
	var (
		out model.Outline
		err error
	)
	out.First, err = r.resolveOutlineItem(dict["First"], &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resolver) resolveOutlineItem(object model.Object, parent model.OutlineNode) (*model.OutlineItem, error) {
	dict, ok := r.resolve(object).(model.ObjDict)
	if !ok {
		return nil, errType("Outline item", object)
	}
	var (
		out model.OutlineItem
		err error
	)
	title, _ := file.IsString(r.resolve(dict["Title"]))
	out.Title = DecodeTextString(title)
	out.Parent = parent
	if first := dict["First"]; first != nil {
		out.First, err = r.resolveOutlineItem(first, &out)
		if err != nil {
			return nil, err
		}
	}
	if next := dict["Next"]; next != nil {
		out.Next, err = r.resolveOutlineItem(next, parent)
		if err != nil {
			return nil, err
		}
	}
	// a negative count means the children are folded
	if c, _ := r.resolveInt(dict["Count"]); c >= 0 {
		out.Open = true
	}
	if dest := r.resolve(dict["Dest"]); dest != nil {
		out.Dest, err = r.processDestination(dest)
		if err != nil {
			return nil, err
		}
	} else if action, _ := r.resolve(dict["A"]).(model.ObjDict); action != nil {
		out.A, err = r.processAction(action)
		if err != nil {
			return nil, err
		}
	}
	if c, _ := r.resolveArray(dict["C"]); len(c) == 3 {
		for i := range out.C {
			out.C[i], _ = r.resolveNumber(c[i])
		}
	}
	if f, ok := r.resolveInt(dict["F"]); ok {
		out.F = model.OutlineFlag(f)
	}
	return &out, nil
}

// resolveDestinationOrAction handles catalog entries that accept both
// forms: a bare destination array is returned as a GoTo action.
func (r resolver) resolveDestinationOrAction(object model.Object) (model.Action, error) {
	switch object := r.resolve(object).(type) {
	case model.ObjArray:
		dest, err := r.resolveExplicitDestination(object)
		if err != nil {
			return model.Action{}, err
		}
		return model.Action{ActionType: model.ActionGoTo{D: dest}}, nil
	case model.ObjDict:
		return r.processAction(object)
	}
	return model.Action{}, nil
}

// resolveDests reads the PDF 1.1 style /Dests dictionary of the
// catalog (named destinations moved to the name tree in later
// versions, see processNameDict).
func (r resolver) resolveDests(object model.Object) (map[model.ObjName]model.DestinationExplicit, error) {
	dict, _ := r.resolve(object).(model.ObjDict)
	out := make(map[model.ObjName]model.DestinationExplicit, len(dict))
	for name, dest := range dict {
		ar, ok := r.resolveArray(dest)
		if !ok {
			continue
		}
		exp, err := r.resolveExplicitDestination(ar)
		if err != nil {
			return nil, err
		}
		out[model.ObjName(name)] = exp
	}
	return out, nil
}
