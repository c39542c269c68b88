package reader

import (
	"errors"
	"fmt"

	"github.com/quillcore/pdfcore/fonts/standardfonts"
	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/file"
)

// resolveOneResourceDict resolves (and caches) one /Resources
// dictionary: each sub-dictionary is optional, and a missing one
// simply leaves the corresponding map nil, except Properties, which is
// always a non-nil map.
func (r resolver) resolveOneResourceDict(o model.Object) (model.ResourcesDict, error) {
	ref, isRef := o.(model.ObjIndirectRef)
	if isRef {
		if res, ok := r.resources[ref]; ok {
			return res, nil
		}
		o = r.resolve(ref)
	}
	if o == nil {
		return model.ResourcesDict{}, nil
	}
	resDict, isDict := o.(model.ObjDict)
	if !isDict {
		return model.ResourcesDict{}, errType("Resources Dict", o)
	}

	var (
		out model.ResourcesDict
		err error
	)
	if out.ExtGState, err = r.resolveExtGState(resDict["ExtGState"]); err != nil {
		return out, err
	}
	if out.ColorSpace, err = r.resolveColorSpace(resDict["ColorSpace"]); err != nil {
		return out, err
	}
	if out.Shading, err = r.resolveShading(resDict["Shading"]); err != nil {
		return out, err
	}
	if out.Pattern, err = r.resolvePattern(resDict["Pattern"]); err != nil {
		return out, err
	}
	if out.Font, err = r.resolveFonts(resDict["Font"]); err != nil {
		return out, err
	}
	if out.XObject, err = r.resolveXObjects(resDict["XObject"]); err != nil {
		return out, err
	}
	if out.Properties, err = r.resolveProperties(resDict["Properties"]); err != nil {
		return out, err
	}

	if isRef { // write back to the cache
		r.resources[ref] = out
	}
	return out, nil
}

// ----------------------------- fonts -----------------------------

func (r resolver) resolveFonts(ft model.Object) (map[model.ObjName]*model.FontDict, error) {
	ft = r.resolve(ft)
	if ft == nil {
		return nil, nil
	}
	ftDict, isDict := ft.(model.ObjDict)
	if !isDict {
		return nil, errType("Fonts Dict", ft)
	}
	ftMap := make(map[model.ObjName]*model.FontDict, len(ftDict))
	for name, font := range ftDict {
		fontModel, err := r.resolveOneFont(font)
		if err != nil {
			return nil, err
		}
		if fontModel == nil { // ignore the name
			continue
		}
		ftMap[model.ObjName(name)] = fontModel
	}
	return ftMap, nil
}

func (r resolver) resolveOneFont(font model.Object) (*model.FontDict, error) {
	fontRef, isFontRef := font.(model.ObjIndirectRef)
	if isFontRef {
		if fontModel := r.fonts[fontRef]; fontModel != nil {
			return fontModel, nil
		}
		font = r.resolve(fontRef)
	}
	if font == nil { // ignore the name
		return nil, nil
	}
	fontDict, isDict := font.(model.ObjDict)
	if !isDict {
		return nil, errType("Font", font)
	}

	var (
		fontModel = new(model.FontDict)
		err       error
	)
	subtype, _ := r.resolveName(fontDict["Subtype"])
	switch subtype {
	case "Type0":
		fontModel.Subtype, err = r.resolveFontT0(fontDict)
	case "Type1":
		fontModel.Subtype, err = r.resolveFontT1orTT(fontDict)
	case "TrueType":
		var t1 model.FontType1
		t1, err = r.resolveFontT1orTT(fontDict)
		fontModel.Subtype = model.FontTrueType(t1)
	case "Type3":
		fontModel.Subtype, err = r.resolveFontT3(fontDict)
	default:
		return nil, nil // unsupported font kinds are ignored
	}
	if err != nil {
		return nil, err
	}

	fontModel.ToUnicode, err = r.resolveToUnicode(fontDict["ToUnicode"])
	if err != nil {
		return nil, err
	}
	if isFontRef { // write back to the cache
		r.fonts[fontRef] = fontModel
	}
	return fontModel, nil
}

// parseDiffArray reads a /Differences array: an integer starts a run
// of codes, each following name is assigned to consecutive codes.
func (r resolver) parseDiffArray(ar model.ObjArray) model.Differences {
	var (
		currentCode byte
		out         = make(model.Differences)
	)
	for _, o := range ar {
		switch o := r.resolve(o).(type) {
		case model.ObjInt:
			currentCode = byte(o)
		case model.ObjName:
			out[currentCode] = o
			currentCode++
		}
	}
	return out
}

func (r resolver) resolveEncoding(encoding model.Object) (model.SimpleEncoding, error) {
	if encName, isName := r.resolveName(encoding); isName {
		return model.NewSimpleEncodingPredefined(string(encName)), nil
	}
	// ref or dict, maybe nil
	encRef, isRef := encoding.(model.ObjIndirectRef)
	if isRef {
		encoding = r.resolve(encRef)
	}
	if encoding == nil {
		return nil, nil
	}
	encDict, isDict := encoding.(model.ObjDict)
	if !isDict {
		return nil, errType("Encoding", encoding)
	}
	var encModel model.SimpleEncodingDict
	if name, ok := r.resolveName(encDict["BaseEncoding"]); ok {
		if be := model.NewSimpleEncodingPredefined(string(name)); be != nil {
			encModel.BaseEncoding = be.(model.SimpleEncodingPredefined)
		}
	}
	if diff, ok := r.resolveArray(encDict["Differences"]); ok {
		encModel.Differences = r.parseDiffArray(diff)
	}
	if isRef { // write back encoding to the cache
		r.encodings[encRef] = &encModel
	}
	return &encModel, nil
}

// standardFontNames resolves the effective character names of a
// standard font, starting from its builtin encoding and applying the
// font's Encoding entry over it.
func standardFontNames(standard standardfonts.Metrics, encoding model.SimpleEncoding) [256]string {
	switch enc := encoding.(type) {
	case model.SimpleEncodingPredefined: // validated by resolveEncoding
		return *standardfonts.PredefinedEncodings[enc]
	case *model.SimpleEncodingDict:
		names := standard.Builtin
		if enc.BaseEncoding != "" { // validated by resolveEncoding
			names = *standardfonts.PredefinedEncodings[enc.BaseEncoding]
		}
		return enc.Differences.Apply(names)
	default:
		return standard.Builtin
	}
}

func (r resolver) resolveFontT1orTT(font model.ObjDict) (out model.FontType1, err error) {
	out.BaseFont, _ = r.resolveName(font["BaseFont"])

	out.Encoding, err = r.resolveEncoding(font["Encoding"])
	if err != nil {
		return model.FontType1{}, err
	}

	// the 14 standard fonts may omit the font descriptor and the
	// widths: supply them from the builtin metrics
	if standard, ok := standardfonts.Fonts[string(out.BaseFont)]; ok {
		names := standardFontNames(standard, out.Encoding)
		out.FirstChar, out.Widths = standard.WidthsWithEncoding(names)
		out.FontDescriptor = standard.Descriptor
		return out, nil
	}

	out.FirstChar, out.Widths, err = r.resolveFontMetrics(font)
	if err != nil {
		return out, err
	}
	out.FontDescriptor, err = r.resolveFontDescriptor(font["FontDescriptor"])
	return out, err
}

func (r resolver) resolveFontT3(font model.ObjDict) (out model.FontType3, err error) {
	bbox := r.rectangleFromArray(font["FontBBox"])
	if bbox == nil {
		return out, errors.New("missing FontBBox entry")
	}
	out.FontBBox = *bbox

	matrix := r.matrixFromArray(font["FontMatrix"])
	if matrix == nil {
		return out, errors.New("missing FontMatrix entry")
	}
	out.FontMatrix = *matrix

	charProcs := r.resolve(font["CharProcs"])
	charProcsDict, ok := charProcs.(model.ObjDict)
	if !ok {
		return out, errType("Font.CharProcs", charProcs)
	}
	out.CharProcs = make(map[model.ObjName]model.ContentStream, len(charProcsDict))
	for name, proc := range charProcsDict {
		// glyph procedures are not shared across fonts: no need to
		// track the refs
		cs, ok, err := r.resolveStream(proc)
		if err != nil {
			return out, err
		}
		if !ok {
			r.warn("missing content stream for CharProc %s", name)
			continue
		}
		out.CharProcs[model.ObjName(name)] = model.ContentStream{Stream: cs}
	}

	out.Encoding, err = r.resolveEncoding(font["Encoding"])
	if err != nil {
		return out, err
	}
	out.FirstChar, out.Widths, err = r.resolveFontMetrics(font)
	if err != nil {
		return out, err
	}

	if fd := r.resolve(font["FontDescriptor"]); fd != nil {
		fontD, err := r.resolveFontDescriptor(fd)
		if err != nil {
			return out, err
		}
		out.FontDescriptor = &fontD
	}

	out.Resources, err = r.resolveOneResourceDict(font["Resources"])
	return out, err
}

func (r resolver) resolveToUnicode(obj model.Object) (*model.UnicodeCMap, error) {
	// keep track of the ref to detect self-referencing UseCMap chains
	ref, _ := obj.(model.ObjIndirectRef)
	stream, ok, err := r.resolveStream(obj)
	if err != nil || !ok {
		return nil, err
	}
	dict, _ := r.resolve(obj).(model.ObjStream)
	out := model.UnicodeCMap{Stream: stream}

	use := dict.Args["UseCMap"]
	if kidRef, isRef := use.(model.ObjIndirectRef); isRef && kidRef == ref {
		return &out, nil // invalid loop, ignore the entry
	}
	if name, ok := r.resolveName(use); ok {
		out.UseCMap = model.UnicodeCMapBasePredefined(name)
	} else if u, err := r.resolveToUnicode(use); err != nil {
		return nil, err
	} else if u != nil {
		out.UseCMap = *u
	}
	return &out, nil
}

// resolveFontMetrics reads the FirstChar/LastChar/Widths entries
// shared by TrueType, Type1 and Type3 fonts.
func (r resolver) resolveFontMetrics(font model.ObjDict) (firstChar byte, widths []int, err error) {
	readByteEntry := func(key model.ObjName) (byte, error) {
		v, ok := r.resolveInt(font[key])
		if !ok {
			return 0, nil
		}
		if v > 255 {
			return 0, fmt.Errorf("overflow for %s entry %d", key, v)
		}
		return byte(v), nil
	}
	firstChar, err = readByteEntry("FirstChar")
	if err != nil {
		return 0, nil, err
	}
	lastChar, err := readByteEntry("LastChar")
	if err != nil {
		return 0, nil, err
	}

	wds, _ := r.resolveArray(font["Widths"])
	widths = make([]int, len(wds))
	for i, w := range wds {
		wf, _ := r.resolveNumber(w) // floats are accepted too
		widths[i] = int(wf)
	}
	// beware of byte overflow when LastChar = 255 and FirstChar = 0
	if exp := int(lastChar) - int(firstChar) + 1; widths != nil && exp != len(widths) {
		r.warn("invalid length for font Widths array: expected %d, got %d", exp, len(widths))
	}
	return firstChar, widths, nil
}

func (r resolver) resolveFontDescriptor(entry model.Object) (model.FontDescriptor, error) {
	fd := r.resolve(entry)
	fontDescriptor, isDict := fd.(model.ObjDict)
	if !isDict {
		return model.FontDescriptor{}, errType("FontDescriptor", fd)
	}
	var out model.FontDescriptor
	for _, field := range [...]struct {
		key model.ObjName
		dst *Fl
	}{
		{"Ascent", &out.Ascent}, {"Descent", &out.Descent},
		{"Leading", &out.Leading}, {"CapHeight", &out.CapHeight},
		{"XHeight", &out.XHeight}, {"StemV", &out.StemV},
		{"StemH", &out.StemH}, {"AvgWidth", &out.AvgWidth},
		{"MaxWidth", &out.MaxWidth}, {"ItalicAngle", &out.ItalicAngle},
	} {
		if f, ok := r.resolveNumber(fontDescriptor[field.key]); ok {
			*field.dst = f
		}
	}
	if f, ok := r.resolveNumber(fontDescriptor["MissingWidth"]); ok {
		out.MissingWidth = int(f)
	}
	if fl, ok := r.resolveInt(fontDescriptor["Flags"]); ok && fl >= 0 {
		out.Flags = model.FontFlag(fl)
	}
	out.FontName, _ = r.resolveName(fontDescriptor["FontName"])
	if bbox := r.rectangleFromArray(fontDescriptor["FontBBox"]); bbox != nil {
		out.FontBBox = *bbox
	}

	// the three FontFile variants are distinguished again at write
	// time, by the font program's subtype
	for _, key := range [...]model.ObjName{"FontFile", "FontFile2", "FontFile3"} {
		fontFile := fontDescriptor[key]
		if fontFile == nil {
			continue
		}
		var err error
		if out.FontFile, err = r.processFontFile(fontFile); err != nil {
			return out, err
		}
		break
	}

	if charSet, ok := file.IsString(r.resolve(fontDescriptor["CharSet"])); ok {
		out.CharSet = charSet
	}
	return out, nil
}

func (r resolver) processFontFile(object model.Object) (*model.FontFile, error) {
	cs, ok, err := r.resolveStream(object)
	if err != nil || !ok { // nil, nil on a missing stream
		return nil, err
	}

	stream, _ := r.resolve(object).(model.ObjStream) // resolveStream accepted it
	out := model.FontFile{Stream: cs}
	out.Subtype, _ = r.resolveName(stream.Args["Subtype"])
	out.Length1, _ = r.resolveInt(stream.Args["Length1"])
	out.Length2, _ = r.resolveInt(stream.Args["Length2"])
	out.Length3, _ = r.resolveInt(stream.Args["Length3"])
	return &out, nil
}

// ----------------------------- composite fonts -----------------------------

func (r resolver) resolveCMapEncoding(enc model.Object) (model.CMapEncoding, error) {
	if encName, ok := r.resolveName(enc); ok {
		return model.CMapEncodingPredefined(encName), nil
	}
	// keep the indirect to check for self-reference
	ref, isRef := enc.(model.ObjIndirectRef)

	stream, ok, err := r.resolveStream(enc)
	if err != nil || !ok { // nil, nil on a missing stream
		return nil, err
	}
	encDict, _ := r.resolve(enc).(model.ObjStream)
	cmap := model.CMapEncodingEmbedded{Stream: stream}
	cmap.CMapName, _ = r.resolveName(encDict.Args["CMapName"])
	cmap.CIDSystemInfo, err = r.resolveCIDSystemInfo(encDict.Args["CIDSystemInfo"])
	if err != nil {
		return nil, err
	}
	if wmode, _ := r.resolveInt(encDict.Args["WMode"]); wmode == 1 {
		cmap.WMode = true
	}
	use := encDict.Args["UseCMap"]
	if useRef, useIsRef := use.(model.ObjIndirectRef); isRef && useIsRef && useRef == ref {
		// self reference, ignore the entry
	} else if use != nil {
		cmap.UseCMap, err = r.resolveCMapEncoding(use)
		if err != nil {
			return nil, err
		}
	}
	return cmap, nil
}

func (r resolver) resolveFontT0(font model.ObjDict) (model.FontType0, error) {
	var (
		out model.FontType0
		err error
	)
	out.BaseFont, _ = r.resolveName(font["BaseFont"])

	out.Encoding, err = r.resolveCMapEncoding(font["Encoding"])
	if err != nil {
		return out, err
	}
	if out.Encoding == nil {
		return out, errors.New("encoding is required in Type0 font dictionary")
	}

	desc, _ := r.resolveArray(font["DescendantFonts"])
	if len(desc) != 1 {
		return model.FontType0{}, fmt.Errorf("expected one-element DescendantFonts array, got %s", desc)
	}
	descFont := r.resolve(desc[0])
	descFontDict, isDict := descFont.(model.ObjDict)
	if !isDict {
		return model.FontType0{}, errType("DescendantFonts", descFont)
	}
	out.DescendantFonts, err = r.resolveCIDFontDict(descFontDict)
	return out, err
}

func (r resolver) resolveCIDSystemInfo(object model.Object) (out model.CIDSystemInfo, err error) {
	cidSystem := r.resolve(object)
	cidSystemDict, isDict := cidSystem.(model.ObjDict)
	if !isDict {
		return model.CIDSystemInfo{}, errType("CIDSystemInfo", cidSystem)
	}
	out.Registry, _ = file.IsString(r.resolve(cidSystemDict["Registry"]))
	out.Ordering, _ = file.IsString(r.resolve(cidSystemDict["Ordering"]))
	out.Supplement, _ = r.resolveInt(cidSystemDict["Supplement"])
	return out, nil
}

func (r resolver) resolveCIDFontDict(cid model.ObjDict) (model.CIDFontDictionary, error) {
	var (
		out model.CIDFontDictionary
		err error
	)
	out.Subtype, _ = r.resolveName(cid["Subtype"])
	out.BaseFont, _ = r.resolveName(cid["BaseFont"])

	out.CIDSystemInfo, err = r.resolveCIDSystemInfo(cid["CIDSystemInfo"])
	if err != nil {
		return out, err
	}
	out.FontDescriptor, err = r.resolveFontDescriptor(cid["FontDescriptor"])
	if err != nil {
		return out, err
	}

	out.DW, _ = r.resolveInt(cid["DW"])
	if dw2, _ := r.resolveArray(cid["DW2"]); len(dw2) == 2 {
		out.DW2[0], _ = r.resolveInt(dw2[0])
		out.DW2[1], _ = r.resolveInt(dw2[1])
	}
	out.W = r.processCIDWidths(cid["W"])
	out.W2, err = r.processCIDVerticalMetrics(cid["W2"])
	if err != nil {
		return out, err
	}

	if id, _ := r.resolveName(cid["CIDToGIDMap"]); id == "Identity" {
		out.CIDToGIDMap = model.CIDToGIDMapIdentity{}
	} else {
		stream, ok, err := r.resolveStream(cid["CIDToGIDMap"])
		if err != nil {
			return out, err
		}
		if ok {
			out.CIDToGIDMap = model.CIDToGIDMapStream{Stream: stream}
		}
	}
	return out, nil
}

// processCIDWidths reads the /W array: a `first last width` triple
// sets a range, a `start [w...]` pair sets consecutive widths.
// Trailing invalid elements are dropped, never fatal.
func (r resolver) processCIDWidths(wds model.Object) []model.CIDWidth {
	ar, _ := r.resolveArray(wds)
	var out []model.CIDWidth
	for i := 0; i+1 < len(ar); {
		first, _ := r.resolveInt(ar[i])
		switch next := r.resolve(ar[i+1]).(type) {
		case model.ObjInt:
			if i+2 >= len(ar) {
				return out
			}
			w, _ := r.resolveInt(ar[i+2])
			out = append(out, model.CIDWidthRange{
				First: model.CID(first), Last: model.CID(next),
				Width: w,
			})
			i += 3
		case model.ObjArray:
			cid := model.CIDWidthArray{
				Start: model.CID(first),
				W:     make([]int, len(next)),
			}
			for j, w := range next {
				cid.W[j], _ = r.resolveInt(w)
			}
			out = append(out, cid)
			i += 2
		default:
			return out
		}
	}
	return out
}

// processCIDVerticalMetrics reads the /W2 array, the vertical
// counterpart of /W: ranges take 5 elements, explicit lists pair a
// start CID with metrics grouped 3 by 3.
func (r resolver) processCIDVerticalMetrics(wds model.Object) ([]model.CIDVerticalMetric, error) {
	ar, _ := r.resolveArray(wds)
	var out []model.CIDVerticalMetric
	for i := 0; i < len(ar); {
		first, _ := r.resolveInt(ar[i])
		if i+1 >= len(ar) {
			return out, errors.New("invalid W2 entry")
		}
		switch next := r.resolve(ar[i+1]).(type) {
		case model.ObjInt:
			if i+4 >= len(ar) {
				return out, errors.New("invalid W2 entry")
			}
			w, _ := r.resolveInt(ar[i+2])
			vx, _ := r.resolveInt(ar[i+3])
			vy, _ := r.resolveInt(ar[i+4])
			out = append(out, model.CIDVerticalMetricRange{
				First: model.CID(first), Last: model.CID(next),
				VerticalMetric: model.VerticalMetric{Vertical: w, Position: [2]int{vx, vy}},
			})
			i += 5
		case model.ObjArray:
			if len(next)%3 != 0 {
				return out, errors.New("invalid W2 entry")
			}
			cid := model.CIDVerticalMetricArray{
				Start:     model.CID(first),
				Verticals: make([]model.VerticalMetric, len(next)/3),
			}
			for j := range cid.Verticals {
				cid.Verticals[j].Vertical, _ = r.resolveInt(next[3*j])
				cid.Verticals[j].Position[0], _ = r.resolveInt(next[3*j+1])
				cid.Verticals[j].Position[1], _ = r.resolveInt(next[3*j+2])
			}
			out = append(out, cid)
			i += 2
		default:
			return out, errType("vertical metric", next)
		}
	}
	return out, nil
}

// ----------------------------- graphic states -----------------------------

func (r resolver) resolveExtGState(states model.Object) (map[model.ObjName]*model.GraphicState, error) {
	states = r.resolve(states)
	if states == nil {
		return nil, nil
	}
	statesDict, isDict := states.(model.ObjDict)
	if !isDict {
		return nil, errType("Graphics state Dict", states)
	}
	out := make(map[model.ObjName]*model.GraphicState, len(statesDict))
	for name, state := range statesDict {
		gs, err := r.resolveOneExtGState(state)
		if err != nil {
			return nil, err
		}
		if gs == nil { // ignore the name
			continue
		}
		out[model.ObjName(name)] = gs
	}
	return out, nil
}

func (r resolver) resolveOneExtGState(state model.Object) (*model.GraphicState, error) {
	stateRef, isRef := state.(model.ObjIndirectRef)
	if isRef {
		if gState := r.graphicsStates[stateRef]; gState != nil {
			return gState, nil
		}
		state = r.resolve(stateRef)
	}
	if state == nil {
		return nil, nil
	}
	stateDict, isDict := state.(model.ObjDict)
	if !isDict {
		return nil, errType("ExtGState", state)
	}
	gStateModel, err := r.parseStateDict(stateDict)
	if err != nil {
		return nil, err
	}
	if isRef {
		r.graphicsStates[stateRef] = gStateModel
	}
	return gStateModel, nil
}

func (r resolver) parseStateDict(state model.ObjDict) (*model.GraphicState, error) {
	var out model.GraphicState

	out.LW, _ = r.resolveNumber(state["LW"])
	out.ML, _ = r.resolveNumber(state["ML"])
	out.RI, _ = r.resolveName(state["RI"])
	out.AIS, _ = r.resolveBool(state["AIS"])
	out.SA, _ = r.resolveBool(state["SA"])

	// 0 is a meaningful value for these entries: absence must stay
	// distinguishable, hence the Maybe types
	if lc, ok := r.resolveInt(state["LC"]); ok {
		out.LC = model.ObjInt(lc)
	}
	if lj, ok := r.resolveInt(state["LJ"]); ok {
		out.LJ = model.ObjInt(lj)
	}
	for _, field := range [...]struct {
		key model.ObjName
		dst *model.MaybeFloat
	}{
		{"CA", &out.CA}, {"ca", &out.Ca}, {"SM", &out.SM},
	} {
		if f, ok := r.resolveNumber(state[field.key]); ok {
			*field.dst = model.ObjFloat(f)
		}
	}

	if d, _ := r.resolveArray(state["D"]); len(d) == 2 {
		dash, _ := r.resolveArray(d[0])
		out.D.Array = r.processFloatArray(dash)
		out.D.Phase, _ = r.resolveNumber(d[1])
	}

	if font, _ := r.resolveArray(state["Font"]); len(font) == 2 {
		out.Font.Size, _ = r.resolveNumber(font[1])
		fontModel, err := r.resolveOneFont(font[0])
		if err != nil {
			return nil, err
		}
		out.Font.Font = fontModel
	}

	// BM is a name, or an array of fallback blend modes
	if bm, ok := r.resolveName(state["BM"]); ok {
		out.BM = []model.Name{bm}
	} else if bms, ok := r.resolveArray(state["BM"]); ok {
		out.BM = make([]model.ObjName, len(bms))
		for i, bm := range bms {
			out.BM[i], _ = r.resolveName(bm)
		}
	}

	var err error
	out.SMask, err = r.resolveSoftMaskDict(state["SMask"])
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resolver) resolveSoftMaskDict(obj model.Object) (model.SoftMaskDict, error) {
	var out model.SoftMaskDict
	switch obj := r.resolve(obj).(type) {
	case nil:
		return out, nil
	case model.ObjName:
		if obj != "None" {
			return out, fmt.Errorf("invalid name on SMask entry: %s", obj)
		}
		out.S = "None"
		return out, nil
	case model.ObjDict:
		out.S, _ = r.resolveName(obj["S"])
		gObj := obj["G"]
		var g model.XObjectForm
		if err := r.resolveXFormObjectFields(gObj, &g); err != nil {
			return out, err
		}
		// resolveXFormObjectFields accepted gObj as a stream
		gDict := r.resolve(gObj).(model.ObjStream).Args
		out.G = &model.XObjectTransparencyGroup{XObjectForm: g}
		group, _ := r.resolve(gDict["Group"]).(model.ObjDict)
		var err error
		out.G.CS, err = r.resolveOneColorSpace(group["CS"])
		if err != nil {
			return out, err
		}
		out.G.I, _ = r.resolveBool(group["I"])
		out.G.K, _ = r.resolveBool(group["K"])
		return out, nil
	default:
		return out, errType("SoftMaskDict", obj)
	}
}

// ----------------------------- other resources -----------------------------

func (r resolver) resolveColorSpace(colorSpace model.Object) (model.ResourcesColorSpace, error) {
	colorSpace = r.resolve(colorSpace)
	if colorSpace == nil {
		return nil, nil
	}
	colorSpaceDict, isDict := colorSpace.(model.ObjDict)
	if !isDict {
		return nil, errType("Color space Dict", colorSpace)
	}
	out := make(map[model.ObjName]model.ColorSpace, len(colorSpaceDict))
	for name, cs := range colorSpaceDict {
		resolved, err := r.resolveOneColorSpace(cs)
		if err != nil {
			return nil, err
		}
		if resolved == nil { // ignore the name
			continue
		}
		out[model.ObjName(name)] = resolved
	}
	return out, nil
}

func (r resolver) resolveProperties(obj model.Object) (map[model.ObjName]model.PropertyList, error) {
	dict, _ := r.resolve(obj).(model.ObjDict)
	out := make(map[model.ObjName]model.PropertyList, len(dict))
	for k, v := range dict {
		vDict, _ := r.resolve(v).(model.ObjDict)
		propDict := make(model.ObjDict, len(vDict))
		for pName, pValue := range vDict {
			// Metadata streams are common enough to be typed; every
			// other entry stays an opaque value, only handed back to
			// BDC/DP marked-content operators
			if pName == "Metadata" {
				cs, ok, err := r.resolveStream(pValue)
				if err != nil {
					return nil, fmt.Errorf("invalid Metadata entry: %s", err)
				}
				if ok {
					propDict["Metadata"] = model.MetadataStream{Stream: cs}
					continue
				}
			}
			propDict[pName] = r.resolve(pValue).Clone()
		}
		out[model.ObjName(k)] = propDict
	}
	return out, nil
}
