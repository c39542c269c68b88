package reader

import (
	"fmt"

	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/file"
)

// The name and number trees of a PDF file share their splitting
// structure but not their leaf types. The resolution is written once,
// against the two small interfaces below, with one adapter per
// concrete tree.

type nameTree interface {
	createKid() nameTree
	appendKid(kid nameTree) // kid is a value previously returned by createKid
	// resolveLeafValueAppend must handle an indirect (or null) value
	resolveLeafValueAppend(r resolver, name string, value model.Object) error
}

// resolveNameTree walks a name tree and fills output. A nil entry
// returns early without error.
func (r resolver) resolveNameTree(entry model.Object, output nameTree) error {
	entry = r.resolve(entry)
	if entry == nil {
		return nil
	}
	dict, isDict := entry.(model.ObjDict)
	if !isDict {
		return errType("Name Tree value", entry)
	}

	if kids, _ := r.resolveArray(dict["Kids"]); kids != nil {
		// intermediate node; a node is not expected to be referenced
		// twice, so the refs are not tracked
		for _, kid := range kids {
			kidModel := output.createKid()
			if err := r.resolveNameTree(kid, kidModel); err != nil {
				return err
			}
			output.appendKid(kidModel)
		}
		return nil
	}

	// leaf node: pairs of (name, value)
	names, _ := r.resolveArray(dict["Names"])
	if len(names)%2 != 0 {
		return fmt.Errorf("expected even length array in name tree, got %s", names)
	}
	for l := 0; l < len(names)/2; l++ {
		name, _ := file.IsString(r.resolve(names[2*l]))
		if err := output.resolveLeafValueAppend(r, name, names[2*l+1]); err != nil {
			return err
		}
	}
	return nil
}

type destNameTree struct {
	out *model.DestTree // target to fill
}

func (d destNameTree) createKid() nameTree {
	return destNameTree{out: new(model.DestTree)}
}

func (d destNameTree) appendKid(kid nameTree) {
	d.out.Kids = append(d.out.Kids, *kid.(destNameTree).out)
}

func (d destNameTree) resolveLeafValueAppend(r resolver, name string, value model.Object) error {
	expDest, err := r.resolveOneNamedDest(value)
	d.out.Names = append(d.out.Names, model.NameToDest{Name: model.DestinationString(name), Destination: expDest})
	return err
}

type embFileNameTree struct {
	out *model.EmbeddedFileTree // target to fill
}

func (d embFileNameTree) createKid() nameTree {
	return embFileNameTree{out: new(model.EmbeddedFileTree)}
}

func (d embFileNameTree) appendKid(kid nameTree) {
	// the model keeps embedded files as a flat list
	*d.out = append(*d.out, *kid.(embFileNameTree).out...)
}

func (d embFileNameTree) resolveLeafValueAppend(r resolver, name string, value model.Object) error {
	fileSpec, err := r.resolveFileSpec(value)
	*d.out = append(*d.out, model.NameToFile{Name: name, FileSpec: fileSpec})
	return err
}

type appearanceNameTree struct {
	out *model.AppearanceTree // target to fill
}

func (d appearanceNameTree) createKid() nameTree {
	return appearanceNameTree{out: new(model.AppearanceTree)}
}

func (d appearanceNameTree) appendKid(kid nameTree) {
	d.out.Kids = append(d.out.Kids, *kid.(appearanceNameTree).out)
}

func (d appearanceNameTree) resolveLeafValueAppend(r resolver, name string, value model.Object) error {
	// some trees carry a key with a null value: simply ignore those
	if value == (model.ObjNull{}) {
		return nil
	}
	form, err := r.resolveOneXObjectForm(value)
	d.out.Names = append(d.out.Names, model.NameToAppearance{Name: name, Appearance: form})
	return err
}

type templatesNameTree struct {
	out *model.TemplateTree // target to fill
}

func (d templatesNameTree) createKid() nameTree {
	return templatesNameTree{out: new(model.TemplateTree)}
}

func (d templatesNameTree) appendKid(kid nameTree) {
	d.out.Kids = append(d.out.Kids, *kid.(templatesNameTree).out)
}

func (d templatesNameTree) resolveLeafValueAppend(r resolver, name string, value model.Object) error {
	// a name may point into the page tree, or to an invisible
	// template page living outside of it
	var page *model.PageObject
	if pageRef, isRef := value.(model.ObjIndirectRef); isRef {
		page = r.pages[pageRef]
	}
	if page == nil {
		page = new(model.PageObject)
		pageDict, _ := r.resolve(value).(model.ObjDict)
		if err := r.resolvePageObject(pageDict, page); err != nil {
			return err
		}
	}
	d.out.Names = append(d.out.Names, model.NameToPage{Name: name, Page: page})
	return nil
}

// number trees

type numberTree interface {
	createKid() numberTree
	appendKid(kid numberTree)
	resolveLeafValueAppend(r resolver, number int, value model.Object) error
}

func (r resolver) resolveNumberTree(entry model.Object, output numberTree) error {
	dict, isDict := r.resolve(entry).(model.ObjDict)
	if !isDict {
		return errType("Number Tree value", entry)
	}

	if kids, _ := r.resolveArray(dict["Kids"]); kids != nil {
		for _, kid := range kids {
			kidModel := output.createKid()
			if err := r.resolveNumberTree(kid, kidModel); err != nil {
				return err
			}
			output.appendKid(kidModel)
		}
		return nil
	}

	nums, _ := r.resolveArray(dict["Nums"])
	if len(nums)%2 != 0 {
		return fmt.Errorf("expected even length array in number tree, got %s", nums)
	}
	for l := 0; l < len(nums)/2; l++ {
		number, _ := r.resolveInt(nums[2*l])
		if err := output.resolveLeafValueAppend(r, number, nums[2*l+1]); err != nil {
			return err
		}
	}
	return nil
}

type pageLabelTree struct {
	out *model.PageLabelsTree // target to fill
}

func (d pageLabelTree) createKid() numberTree {
	return pageLabelTree{out: new(model.PageLabelsTree)}
}

func (d pageLabelTree) appendKid(kid numberTree) {
	d.out.Kids = append(d.out.Kids, *kid.(pageLabelTree).out)
}

func (d pageLabelTree) resolveLeafValueAppend(r resolver, number int, value model.Object) error {
	label, err := r.processPageLabel(value)
	d.out.Nums = append(d.out.Nums, model.NumToPageLabel{Num: number, PageLabel: label})
	return err
}

func (r resolver) processPageLabel(entry model.Object) (model.PageLabel, error) {
	entryDict, isDict := r.resolve(entry).(model.ObjDict)
	if !isDict {
		return model.PageLabel{}, errType("Page Label", entry)
	}
	var out model.PageLabel
	out.S, _ = r.resolveName(entryDict["S"])
	p, _ := file.IsString(r.resolve(entryDict["P"]))
	out.P = DecodeTextString(p)
	out.St = 1 // default value
	if st, ok := r.resolveInt(entryDict["St"]); ok {
		out.St = st
	}
	return out, nil
}
