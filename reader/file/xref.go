package file

import "github.com/quillcore/pdfcore/model"

// XrefTable maps an object number to its resolved object, once the whole
// file has been loaded into memory (see processAllObjects). Free and
// compressed-then-missing entries are simply absent from the map.
type XrefTable map[int]model.Object

// maxResolveDepth guards against malformed files chaining indirect
// references into a cycle.
const maxResolveDepth = 50

// ResolveObject returns the direct object designated by o: if o is an
// indirect reference, the referenced object is looked up (following
// further indirection, up to a limit); otherwise o is returned as is.
// A reference to a missing object resolves to model.ObjNull{}, per 7.3.10.
func (t XrefTable) ResolveObject(o model.Object) model.Object {
	for i := 0; i < maxResolveDepth; i++ {
		ref, ok := o.(model.ObjIndirectRef)
		if !ok {
			return o
		}

		obj, ok := t[ref.ObjectNumber]
		if !ok {
			return model.ObjNull{}
		}
		o = obj
	}
	return model.ObjNull{}
}
