package reader

import (
	"errors"
	"fmt"

	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/file"
)

// This file resolves the paint-side resources of a content stream:
// color spaces, shadings and patterns. They are deliberately kept
// shallow (decoded parameters, undecoded sample streams): the
// interpreter hands them to the device as-is, and only a rasterizing
// device needs to evaluate them further.

func (r resolver) resolveShading(sh model.Object) (map[model.ObjName]*model.ShadingDict, error) {
	sh = r.resolve(sh)
	if sh == nil {
		return nil, nil
	}
	shDict, isDict := sh.(model.ObjDict)
	if !isDict {
		return nil, errType("Shading", sh)
	}
	out := make(map[model.ObjName]*model.ShadingDict, len(shDict))
	for name, sha := range shDict {
		shModel, err := r.resolveOneShading(sha)
		if err != nil {
			return nil, err
		}
		out[model.ObjName(name)] = shModel
	}
	return out, nil
}

// dictAndStream accepts both shapes a shading or pattern may take: a
// plain dict (types 1-3), or a stream whose dict carries the
// parameters (mesh shadings, tiling patterns).
func (r resolver) dictAndStream(obj model.Object) (model.ObjDict, model.ObjStream, bool) {
	switch o := r.resolve(obj).(type) {
	case model.ObjDict:
		return o, model.ObjStream{}, true
	case model.ObjStream:
		return o.Args, o, true
	default:
		return nil, model.ObjStream{}, false
	}
}

func (r resolver) resolveOneShading(shading model.Object) (*model.ShadingDict, error) {
	shRef, isRef := shading.(model.ObjIndirectRef)
	if sh := r.shadings[shRef]; isRef && sh != nil {
		return sh, nil
	}
	shDict, stream, ok := r.dictAndStream(shading)
	if !ok {
		return nil, errType("Shading", r.resolve(shading))
	}

	var (
		out model.ShadingDict
		err error
	)
	bg, _ := r.resolveArray(shDict["Background"])
	out.Background = r.processFloatArray(bg)
	out.BBox = r.rectangleFromArray(shDict["BBox"])
	out.AntiAlias, _ = r.resolveBool(shDict["AntiAlias"])

	out.ColorSpace, err = r.resolveOneColorSpace(shDict["ColorSpace"])
	if err != nil {
		return nil, err
	}

	st, _ := r.resolveInt(shDict["ShadingType"])
	switch st {
	case 1:
		out.ShadingType, err = r.resolveFunctionSh(shDict)
	case 2:
		out.ShadingType, err = r.resolveAxialSh(shDict)
	case 3:
		out.ShadingType, err = r.resolveRadialSh(shDict)
	case 4:
		out.ShadingType, err = r.resolveFreeFormSh(stream)
	case 5:
		out.ShadingType, err = r.resolveLatticeSh(stream)
	case 6, 7:
		// Coons and tensor-product meshes carry exactly the free-form
		// fields; only the sample layout differs
		var ff model.ShadingFreeForm
		ff, err = r.resolveFreeFormSh(stream)
		if st == 6 {
			out.ShadingType = model.ShadingCoons(ff)
		} else {
			out.ShadingType = model.ShadingTensorProduct(ff)
		}
	default:
		return nil, model.NewSyntaxError(fmt.Sprintf("invalid shading type %d", st), nil)
	}
	if err != nil {
		return nil, err
	}
	if isRef {
		r.shadings[shRef] = &out
	}
	return &out, nil
}

// ----------------------------- color spaces -----------------------------

// resolveOneColorSpace may return nil for a missing entry.
func (r resolver) resolveOneColorSpace(cs model.Object) (model.ColorSpace, error) {
	switch cs := r.resolve(cs).(type) {
	case model.ObjName:
		return model.NewNameColorSpace(string(cs))
	case model.ObjArray:
		return r.resolveArrayCS(cs)
	case nil:
		return nil, nil
	default:
		return nil, errType("Color Space", cs)
	}
}

func (r resolver) resolveArrayCS(ar model.ObjArray) (model.ColorSpace, error) {
	if len(ar) == 0 {
		return nil, model.NewSyntaxError("empty color space array", nil)
	}
	csName, _ := r.resolveName(ar[0])
	switch csName {
	case "CalGray":
		cal, err := r.calParams(csName, ar)
		if err != nil {
			return nil, err
		}
		out := model.ColorSpaceCalGray{WhitePoint: cal.whitePoint, BlackPoint: cal.blackPoint}
		out.Gamma, _ = r.resolveNumber(cal.dict["Gamma"])
		return out, nil
	case "CalRGB":
		cal, err := r.calParams(csName, ar)
		if err != nil {
			return nil, err
		}
		out := model.ColorSpaceCalRGB{WhitePoint: cal.whitePoint, BlackPoint: cal.blackPoint}
		if gamma, _ := r.resolveArray(cal.dict["Gamma"]); len(gamma) == 3 {
			copy(out.Gamma[:], r.processFloatArray(gamma))
		}
		if mat, _ := r.resolveArray(cal.dict["Matrix"]); len(mat) == 9 {
			copy(out.Matrix[:], r.processFloatArray(mat))
		}
		return out, nil
	case "Lab":
		cal, err := r.calParams(csName, ar)
		if err != nil {
			return nil, err
		}
		out := model.ColorSpaceLab{WhitePoint: cal.whitePoint, BlackPoint: cal.blackPoint}
		if ra, _ := r.resolveArray(cal.dict["Range"]); len(ra) == 4 {
			copy(out.Range[:], r.processFloatArray(ra))
		}
		return out, nil
	case "ICCBased":
		return r.resolveICCBased(ar)
	case "Indexed":
		return r.resolveIndexed(ar)
	case "Pattern": // uncolored tiling pattern
		// a one element array is accepted, even if a plain name would
		// be the conforming form
		if len(ar) == 1 {
			return model.ColorSpacePattern, nil
		}
		if len(ar) != 2 {
			return nil, model.NewSyntaxError(fmt.Sprintf("expected 2-element array for Pattern color space, got %v", ar), nil)
		}
		under, err := r.resolveOneColorSpace(ar[1])
		if err != nil {
			return nil, err
		}
		return model.ColorSpaceUncoloredPattern{UnderlyingColorSpace: under}, nil
	case "Separation":
		return r.resolveSeparation(ar)
	case "DeviceN":
		return r.resolveDeviceN(ar)
	default:
		return nil, model.NewSyntaxError(fmt.Sprintf("invalid color space name %s", csName), nil)
	}
}

// calParams reads the parameter dict shared by the three CIE-based
// spaces: a required WhitePoint and an optional BlackPoint. The dict
// itself is returned for the space-specific entries.
type calDictParams struct {
	dict                   model.ObjDict
	whitePoint, blackPoint [3]Fl
}

func (r resolver) calParams(kind model.ObjName, ar model.ObjArray) (calDictParams, error) {
	var out calDictParams
	if len(ar) != 2 {
		return out, model.NewSyntaxError(fmt.Sprintf("expected 2-element array for %s color space, got %v", kind, ar), nil)
	}
	dict, ok := r.resolve(ar[1]).(model.ObjDict)
	if !ok {
		return out, errType(string(kind), r.resolve(ar[1]))
	}
	out.dict = dict

	wp, _ := r.resolveArray(dict["WhitePoint"])
	if len(wp) != 3 {
		return out, model.NewSyntaxError(fmt.Sprintf("expected 3-element WhitePoint in %s, got %v", kind, wp), nil)
	}
	copy(out.whitePoint[:], r.processFloatArray(wp))

	if bp, _ := r.resolveArray(dict["BlackPoint"]); len(bp) == 3 { // optional
		copy(out.blackPoint[:], r.processFloatArray(bp))
	}
	return out, nil
}

func (r resolver) resolveICCBased(ar model.ObjArray) (*model.ColorSpaceICCBased, error) {
	if len(ar) != 2 {
		return nil, model.NewSyntaxError(fmt.Sprintf("expected 2-element array for ICCBased color space, got %v", ar), nil)
	}
	ref, isRef := ar[1].(model.ObjIndirectRef)
	if icc := r.iccs[ref]; isRef && icc != nil {
		return icc, nil
	}
	// the stream should be indirect, but a direct object is accepted
	obj := r.resolve(ar[1])
	common, ok, err := r.resolveStream(ar[1])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("missing ICCBased stream")
	}
	out := model.ColorSpaceICCBased{Stream: common}
	stream, _ := obj.(model.ObjStream) // resolveStream accepted it

	out.N, _ = r.resolveInt(stream.Args["N"])
	out.Alternate, err = r.resolveOneColorSpace(stream.Args["Alternate"])
	if err != nil {
		return nil, err
	}
	ra, _ := r.resolveArray(stream.Args["Range"])
	out.Range, err = r.processPoints(ra)
	if err != nil {
		return nil, err
	}
	if isRef {
		r.iccs[ref] = &out
	}
	return &out, nil
}

func (r resolver) resolveIndexed(ar model.ObjArray) (model.ColorSpaceIndexed, error) {
	var (
		out model.ColorSpaceIndexed
		err error
	)
	if len(ar) != 4 {
		return out, model.NewSyntaxError(fmt.Sprintf("expected 4-element array for Indexed color space, got %v", ar), nil)
	}
	out.Base, err = r.resolveOneColorSpace(ar[1])
	if err != nil {
		return out, err
	}

	hival, _ := r.resolveInt(ar[2])
	out.Hival = uint8(hival)

	// the color table is either a byte string or a stream
	if lookupString, is := file.IsString(r.resolve(ar[3])); is {
		out.Lookup = model.ColorTableBytes(lookupString)
		return out, nil
	}
	lookupRef, isRef := ar[3].(model.ObjIndirectRef)
	cs, ok, err := r.resolveStream(ar[3])
	if err != nil {
		return out, err
	}
	if !ok {
		return out, errors.New("missing color table stream of Indexed color space")
	}
	out.Lookup = (*model.ColorTableStream)(&cs)
	if isRef {
		r.colorTableStreams[lookupRef] = (*model.ColorTableStream)(&cs)
	}
	return out, nil
}

func (r resolver) resolveSeparation(ar model.ObjArray) (model.ColorSpaceSeparation, error) {
	var (
		out model.ColorSpaceSeparation
		err error
	)
	if len(ar) != 4 {
		return out, model.NewSyntaxError(fmt.Sprintf("expected 4-element array for Separation color space, got %v", ar), nil)
	}
	out.Name, _ = r.resolveName(ar[1])
	out.AlternateSpace, err = r.resolveAlternateColorSpace(ar[2])
	if err != nil {
		return out, err
	}
	fn, err := r.resolveFunction(ar[3])
	if err != nil {
		return out, err
	}
	out.TintTransform = *fn
	return out, nil
}

func (r resolver) resolveDeviceN(ar model.ObjArray) (model.ColorSpaceDeviceN, error) {
	var (
		out model.ColorSpaceDeviceN
		err error
	)
	if len(ar) != 4 && len(ar) != 5 {
		return out, model.NewSyntaxError(fmt.Sprintf("expected 4 or 5-element array for DeviceN color space, got %v", ar), nil)
	}
	names, _ := r.resolveArray(ar[1])
	out.Names = make([]model.ObjName, len(names))
	for i, n := range names {
		out.Names[i], _ = r.resolveName(n)
	}
	out.AlternateSpace, err = r.resolveAlternateColorSpace(ar[2])
	if err != nil {
		return out, err
	}
	fn, err := r.resolveFunction(ar[3])
	if err != nil {
		return out, err
	}
	out.TintTransform = *fn
	if len(ar) == 5 { // optional attributes
		out.Attributes, err = r.resolveDeviceNAttributes(ar[4])
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func (r resolver) resolveDeviceNAttributes(obj model.Object) (*model.ColorSpaceDeviceNAttributes, error) {
	dict, ok := r.resolve(obj).(model.ObjDict)
	if !ok {
		return nil, nil // null or invalid values are accepted silently
	}
	var (
		out model.ColorSpaceDeviceNAttributes
		err error
	)
	out.Subtype, _ = r.resolveName(dict["Subtype"])

	colorants, _ := r.resolve(dict["Colorants"]).(model.ObjDict)
	out.Colorants = make(map[model.ObjName]model.ColorSpaceSeparation, len(colorants))
	for name, col := range colorants {
		col, _ := r.resolveArray(col)
		out.Colorants[model.ObjName(name)], err = r.resolveSeparation(col)
		if err != nil {
			return nil, err
		}
	}

	processDict, _ := r.resolve(dict["Process"]).(model.ObjDict)
	out.Process.ColorSpace, err = r.resolveAlternateColorSpace(processDict["ColorSpace"]) // may return nil
	if err != nil {
		return nil, err
	}
	comps, _ := r.resolveArray(processDict["Components"])
	out.Process.Components = make([]model.ObjName, len(comps))
	for i, n := range comps {
		out.Process.Components[i], _ = r.resolveName(n)
	}

	if mix, ok := r.resolve(processDict["MixingHints"]).(model.ObjDict); ok {
		var m model.ColorSpaceDeviceNMixingHints

		sold, _ := r.resolve(mix["Solidities"]).(model.ObjDict)
		m.Solidities = make(map[model.ObjName]Fl, len(sold))
		for i, s := range sold {
			m.Solidities[model.ObjName(i)], _ = r.resolveNumber(s)
		}

		dot, _ := r.resolve(mix["DotGain"]).(model.ObjDict)
		m.DotGain = make(map[model.ObjName]model.FunctionDict, len(dot))
		for i, s := range dot {
			fn, err := r.resolveFunction(s)
			if err != nil {
				return nil, err
			}
			m.DotGain[model.ObjName(i)] = *fn
		}

		printing, _ := r.resolveArray(processDict["PrintingOrder"])
		m.PrintingOrder = make([]model.ObjName, len(printing))
		for i, n := range printing {
			m.PrintingOrder[i], _ = r.resolveName(n)
		}
		out.MixingHints = &m
	}
	return &out, nil
}

// resolveAlternateColorSpace rejects the special color spaces, which
// must not be used as alternates (that would allow cycles).
func (r resolver) resolveAlternateColorSpace(alternate model.Object) (model.ColorSpace, error) {
	if ar, ok := r.resolveArray(alternate); ok && len(ar) >= 1 {
		name, _ := r.resolveName(ar[0])
		switch name {
		case "Pattern", "Indexed", "Separation", "DeviceN":
			return nil, model.NewSyntaxError("alternate space must not be a special color space", nil)
		}
	}
	return r.resolveOneColorSpace(alternate)
}

// ----------------------------- shadings -----------------------------

// resolveFuncOrArray accepts a function (possibly indirect) or an
// array of functions, normalized to a slice. If `expectedN` is > 0,
// the dimension of each function's domain is checked against it.
func (r resolver) resolveFuncOrArray(sh model.Object, expectedN int) ([]model.FunctionDict, error) {
	var out []model.FunctionDict
	if ar, isAr := r.resolveArray(sh); isAr {
		out = make([]model.FunctionDict, len(ar))
		for i, f := range ar {
			fn, err := r.resolveFunction(f)
			if err != nil {
				return nil, err
			}
			out[i] = *fn
		}
	} else {
		fn, err := r.resolveFunction(sh)
		if err != nil {
			return nil, err
		}
		out = []model.FunctionDict{*fn}
	}
	for _, fn := range out {
		if expectedN > 0 && len(fn.Domain) != expectedN {
			return nil, model.NewSyntaxError(fmt.Sprintf("expected %d-argument function, got %v", expectedN, fn), nil)
		}
	}
	return out, nil
}

func (r resolver) resolveFunctionSh(sh model.ObjDict) (model.ShadingFunctionBased, error) {
	var (
		out model.ShadingFunctionBased
		err error
	)
	if domain, _ := r.resolveArray(sh["Domain"]); len(domain) == 4 {
		for i, v := range domain {
			out.Domain[i], _ = r.resolveNumber(v)
		}
	}
	if mat := r.matrixFromArray(sh["Matrix"]); mat != nil {
		out.Matrix = *mat
	}
	out.Function, err = r.resolveFuncOrArray(sh["Function"], 2)
	return out, err
}

func (r resolver) resolveBaseGradient(sh model.ObjDict) (g model.BaseGradient, err error) {
	if domain, _ := r.resolveArray(sh["Domain"]); len(domain) == 2 {
		g.Domain[0], _ = r.resolveNumber(domain[0])
		g.Domain[1], _ = r.resolveNumber(domain[1])
	}
	if extend, _ := r.resolveArray(sh["Extend"]); len(extend) == 2 {
		g.Extend[0], _ = r.resolveBool(extend[0])
		g.Extend[1], _ = r.resolveBool(extend[1])
	}
	g.Function, err = r.resolveFuncOrArray(sh["Function"], 1)
	return g, err
}

// gradientCoords reads the Coords entry, common to axial (4 numbers)
// and radial (6 numbers) shadings.
func (r resolver) gradientCoords(sh model.ObjDict, dst []Fl) error {
	coords, _ := r.resolveArray(sh["Coords"])
	if len(coords) != len(dst) {
		return model.NewSyntaxError(fmt.Sprintf("expected %d gradient coordinates, got %v", len(dst), coords), nil)
	}
	for i, v := range coords {
		dst[i], _ = r.resolveNumber(v)
	}
	return nil
}

func (r resolver) resolveAxialSh(sh model.ObjDict) (model.ShadingAxial, error) {
	g, err := r.resolveBaseGradient(sh)
	if err != nil {
		return model.ShadingAxial{}, err
	}
	out := model.ShadingAxial{BaseGradient: g}
	err = r.gradientCoords(sh, out.Coords[:])
	return out, err
}

func (r resolver) resolveRadialSh(sh model.ObjDict) (model.ShadingRadial, error) {
	g, err := r.resolveBaseGradient(sh)
	if err != nil {
		return model.ShadingRadial{}, err
	}
	out := model.ShadingRadial{BaseGradient: g}
	err = r.gradientCoords(sh, out.Coords[:])
	return out, err
}

func (r resolver) resolveStreamSh(sh model.ObjStream) (model.ShadingStream, error) {
	cs, ok, err := r.resolveStream(sh)
	if err != nil {
		return model.ShadingStream{}, err
	}
	if !ok {
		return model.ShadingStream{}, errors.New("missing Shading stream")
	}
	out := model.ShadingStream{Stream: cs}
	if bi, ok := r.resolveInt(sh.Args["BitsPerCoordinate"]); ok {
		out.BitsPerCoordinate = uint8(bi)
	}
	if bi, ok := r.resolveInt(sh.Args["BitsPerComponent"]); ok {
		out.BitsPerComponent = uint8(bi)
	}

	decode, _ := r.resolveArray(sh.Args["Decode"])
	out.Decode, err = r.processPoints(decode)
	if err != nil {
		return out, err
	}
	if fn := sh.Args["Function"]; fn != nil {
		out.Function, err = r.resolveFuncOrArray(fn, 0)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func (r resolver) resolveFreeFormSh(sh model.ObjStream) (out model.ShadingFreeForm, err error) {
	out.ShadingStream, err = r.resolveStreamSh(sh)
	if err != nil {
		return out, err
	}
	if bi, ok := r.resolveInt(sh.Args["BitsPerFlag"]); ok {
		out.BitsPerFlag = uint8(bi)
	}
	return out, nil
}

func (r resolver) resolveLatticeSh(sh model.ObjStream) (out model.ShadingLattice, err error) {
	out.ShadingStream, err = r.resolveStreamSh(sh)
	if err != nil {
		return out, err
	}
	out.VerticesPerRow, _ = r.resolveInt(sh.Args["VerticesPerRow"])
	return out, nil
}

// ----------------------------- patterns -----------------------------

func (r resolver) resolvePattern(pattern model.Object) (map[model.ObjName]model.Pattern, error) {
	pattern = r.resolve(pattern)
	if pattern == nil {
		return nil, nil
	}
	patternDict, isDict := pattern.(model.ObjDict)
	if !isDict {
		return nil, errType("Pattern", pattern)
	}
	out := make(map[model.ObjName]model.Pattern, len(patternDict))
	for name, pat := range patternDict {
		pattern, err := r.resolveOnePattern(pat)
		if err != nil {
			return nil, err
		}
		out[model.ObjName(name)] = pattern
	}
	return out, nil
}

func (r resolver) resolveOnePattern(pat model.Object) (model.Pattern, error) {
	patRef, isRef := pat.(model.ObjIndirectRef)
	if pattern := r.patterns[patRef]; isRef && pattern != nil {
		return pattern, nil
	}
	patDict, stream, ok := r.dictAndStream(pat)
	if !ok {
		return nil, errType("Pattern", r.resolve(pat))
	}

	var (
		out model.Pattern
		err error
	)
	patType, _ := r.resolveInt(patDict["PatternType"])
	switch patType {
	case 1:
		out, err = r.resolveTilingPattern(stream)
	case 2:
		out, err = r.resolveShadingPattern(patDict)
	default:
		err = model.NewSyntaxError(fmt.Sprintf("unexpected pattern type %d", patType), nil)
	}
	if err != nil {
		return nil, err
	}
	if isRef {
		r.patterns[patRef] = out
	}
	return out, nil
}

// resolveTilingPattern reads a type 1 pattern: a content stream tiled
// over the painted area, with its own resources.
func (r resolver) resolveTilingPattern(pat model.ObjStream) (*model.PatternTiling, error) {
	cs, _, err := r.resolveStream(pat)
	if err != nil {
		return nil, err
	}
	out := model.PatternTiling{ContentStream: model.ContentStream{Stream: cs}}

	if pt, ok := r.resolveInt(pat.Args["PaintType"]); ok {
		out.PaintType = uint8(pt)
	}
	if pt, ok := r.resolveInt(pat.Args["TilingType"]); ok {
		out.TilingType = uint8(pt)
	}
	if rect := r.rectangleFromArray(pat.Args["BBox"]); rect != nil {
		out.BBox = *rect
	}
	out.XStep, _ = r.resolveNumber(pat.Args["XStep"])
	out.YStep, _ = r.resolveNumber(pat.Args["YStep"])
	out.Resources, err = r.resolveOneResourceDict(pat.Args["Resources"])
	if err != nil {
		return nil, err
	}
	if mat := r.matrixFromArray(pat.Args["Matrix"]); mat != nil {
		out.Matrix = *mat
	}
	return &out, nil
}

func (r resolver) resolveShadingPattern(pat model.ObjDict) (*model.PatternShading, error) {
	sh, err := r.resolveOneShading(pat["Shading"])
	if err != nil {
		return nil, err
	}
	out := model.PatternShading{Shading: sh}
	if m := r.matrixFromArray(pat["Matrix"]); m != nil {
		out.Matrix = *m
	}
	out.ExtGState, err = r.resolveOneExtGState(pat["ExtGState"])
	return &out, err
}
