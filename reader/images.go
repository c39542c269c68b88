package reader

import (
	"errors"
	"fmt"

	"github.com/quillcore/pdfcore/model"
)

func (r resolver) resolveXObjects(obj model.Object) (map[model.Name]model.XObject, error) {
	obj = r.resolve(obj)
	if obj == nil {
		return nil, nil
	}
	objDict, isDict := obj.(model.ObjDict)
	if !isDict {
		return nil, errType("XObjects Dict", obj)
	}
	objMap := make(map[model.Name]model.XObject)
	for name, xObject := range objDict {
		xObjectModel, err := r.resolveOneXObject(xObject)
		if err != nil {
			return nil, err
		}
		if xObjectModel == nil { // ignore the name
			continue
		}
		objMap[name] = xObjectModel
	}
	return objMap, nil
}

func (r resolver) resolveOneXObject(obj model.Object) (model.XObject, error) {
	// we have to resolve the object first to find its type
	// then it will be resolved once again in each sub function,
	// keeping track of the reference for caching purposes
	objRes := r.resolve(obj)
	stream, ok := objRes.(model.ObjStream)
	if !ok {
		return nil, errType("XObject", obj)
	}
	name, _ := r.resolveName(stream.Args["Subtype"])
	switch name {
	case "Image":
		return r.resolveOneXObjectImage(obj)
	case "Form":
		return r.resolveOneXObjectForm(obj)
	default:
		return nil, fmt.Errorf("invalid XObject subtype %s", name)
	}
}

// returns an error if img is nil
func (r resolver) resolveOneXObjectImage(img model.Object) (*model.XObjectImage, error) {
	imgRef, isRef := img.(model.ObjIndirectRef)
	if imgModel := r.images[imgRef]; isRef && imgModel != nil {
		return imgModel, nil
	}
	img = r.resolve(img)
	stream, isStream := img.(model.ObjStream)
	if !isStream {
		return nil, errType("Image", img)
	}
	cs, ok, err := r.resolveStream(stream)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("missing stream for image")
	}
	out := model.XObjectImage{Image: model.Image{Stream: cs}}

	if isRef { // register early to tolerate self-referencing alternates/masks
		r.images[imgRef] = &out
	}

	if w, ok := r.resolveInt(stream.Args["Width"]); ok {
		out.Width = w
	}
	if h, ok := r.resolveInt(stream.Args["Height"]); ok {
		out.Height = h
	}
	out.ColorSpace, err = r.resolveOneColorSpace(stream.Args["ColorSpace"])
	if err != nil {
		return nil, err
	}
	if b, ok := r.resolveInt(stream.Args["BitsPerComponent"]); ok {
		out.BitsPerComponent = uint8(b)
	}
	if intent, ok := r.resolveName(stream.Args["Intent"]); ok {
		out.Intent = intent
	}
	if m, ok := r.resolveBool(stream.Args["ImageMask"]); ok {
		out.ImageMask = m
	}
	out.Mask, err = r.resolveImageMask(stream.Args["Mask"])
	if err != nil {
		return nil, err
	}
	decode, _ := r.resolveArray(stream.Args["Decode"])
	if !out.ImageMask {
		out.Decode, err = r.processPoints(decode)
		if err != nil {
			return nil, err
		}
	} else { // special case: [0 1] or [1 0]
		if len(decode) == 2 {
			var ra [2]Fl
			ra[0], _ = r.resolveNumber(decode[0])
			ra[1], _ = r.resolveNumber(decode[1])
			out.Decode = [][2]Fl{ra}
		}
		// else: ignore nil or invalid
	}
	if i, ok := r.resolveBool(stream.Args["Interpolate"]); ok {
		out.Interpolate = i
	}
	alts, _ := r.resolveArray(stream.Args["Alternates"])
	out.Alternates = make([]model.AlternateImage, len(alts))
	for i, alt := range alts {
		alt = r.resolve(alt) // the AlternateImage is itself cheap, don't bother tracking its ref
		altDict, isDict := alt.(model.ObjDict)
		if !isDict {
			return nil, errType("AlternateImage", alt)
		}
		out.Alternates[i].Image, err = r.resolveOneXObjectImage(altDict["Image"])
		if err != nil {
			return nil, err
		}
		if b, ok := r.resolveBool(altDict["DefaultForPrinting"]); ok {
			out.Alternates[i].DefaultForPrinting = b
		}
	}
	if smask := stream.Args["SMask"]; smask != nil {
		out.SMask, err = r.resolveOneImageSMask(smask)
		if err != nil {
			return nil, err
		}
	}
	if s, ok := r.resolveInt(stream.Args["SMaskInData"]); ok {
		out.SMaskInData = uint8(s)
	}
	return &out, nil
}

// resolveOneImageSMask reads the soft-mask image referenced by an image's
// /SMask entry (7.6.5.2); it is always a grayscale image, never itself
// carrying a soft mask.
func (r resolver) resolveOneImageSMask(obj model.Object) (*model.ImageSMask, error) {
	smRef, isRef := obj.(model.ObjIndirectRef)
	if out := r.imageSMasks[smRef]; isRef && out != nil {
		return out, nil
	}
	resolved := r.resolve(obj)
	stream, isStream := resolved.(model.ObjStream)
	if !isStream {
		return nil, errType("SMask", resolved)
	}
	cs, ok, err := r.resolveStream(stream)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("missing stream for SMask")
	}
	out := model.ImageSMask{Image: model.Image{Stream: cs}}
	if isRef {
		r.imageSMasks[smRef] = &out
	}

	if w, ok := r.resolveInt(stream.Args["Width"]); ok {
		out.Width = w
	}
	if h, ok := r.resolveInt(stream.Args["Height"]); ok {
		out.Height = h
	}
	out.ColorSpace, err = r.resolveOneColorSpace(stream.Args["ColorSpace"])
	if err != nil {
		return nil, err
	}
	if b, ok := r.resolveInt(stream.Args["BitsPerComponent"]); ok {
		out.BitsPerComponent = uint8(b)
	}
	decode, _ := r.resolveArray(stream.Args["Decode"])
	out.Decode, err = r.processPoints(decode)
	if err != nil {
		return nil, err
	}
	if i, ok := r.resolveBool(stream.Args["Interpolate"]); ok {
		out.Interpolate = i
	}
	matte, _ := r.resolveArray(stream.Args["Matte"])
	out.Matte = r.processFloatArray(matte)

	return &out, nil
}

// resolveImageMask reads an image's /Mask entry, which is either a color
// key range array or a stencil mask image (7.6.5).
func (r resolver) resolveImageMask(mask model.Object) (model.ImageMask, error) {
	resolved := r.resolve(mask)
	if resolved == nil {
		return nil, nil
	}
	switch resolved.(type) {
	case model.ObjArray:
		ar, _ := resolved.(model.ObjArray)
		out := make(model.MaskColor, 0, len(ar)/2)
		for i := 0; i+1 < len(ar); i += 2 {
			lo, _ := r.resolveInt(ar[i])
			hi, _ := r.resolveInt(ar[i+1])
			out = append(out, [2]int{lo, hi})
		}
		return out, nil
	case model.ObjStream:
		return r.resolveOneXObjectImage(mask)
	default:
		return nil, nil
	}
}
