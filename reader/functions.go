package reader

import (
	"errors"
	"fmt"

	"github.com/quillcore/pdfcore/model"
)

// if not error return a non nil pointer
func (r resolver) resolveFunction(fn model.Object) (*model.FunctionDict, error) {
	fnRef, isRef := fn.(model.ObjIndirectRef)
	if fnM := r.functions[fnRef]; isRef && fnM != nil {
		return fnM, nil
	}
	fn = r.resolve(fn)

	var (
		out      model.FunctionDict
		err      error
		dict     model.ObjDict
		stream   model.ObjStream
		isStream bool
	)
	// fn is either a dict (type 2 and 3) or a content stream (type 0 and 4)
	switch fn := fn.(type) {
	case model.ObjDict:
		dict = fn
	case model.ObjStream:
		dict = fn.Args
		stream = fn
		isStream = true
	default:
		return nil, errType("Function", fn)
	}

	// specialization
	fType, _ := r.resolveInt(dict["FunctionType"])
	switch fType {
	case 0:
		if !isStream {
			return nil, errors.New("expected stream for sampled function")
		}
		out.FunctionType, err = r.processSampledFn(stream)
	case 2:
		out.FunctionType, err = r.processExpInterpolationFn(dict)
	case 3:
		out.FunctionType, err = r.resolveStitchingFn(dict)
	case 4:
		if !isStream {
			return nil, errors.New("expected stream for PostScript calculator function")
		}
		cs, ok, errS := r.resolveStream(stream)
		if errS != nil {
			return nil, errS
		}
		if !ok {
			return nil, errors.New("missing stream for PostScript calculator function")
		}
		out.FunctionType = model.FunctionPostScriptCalculator(cs)
	default:
		return nil, fmt.Errorf("invalid FunctionType %d", fType)
	}
	if err != nil {
		return nil, err
	}

	// common fields
	domain, _ := r.resolveArray(dict["Domain"])
	out.Domain, err = r.processRange(domain)
	if err != nil {
		return nil, err
	}
	rangeAr, _ := r.resolveArray(dict["Range"])
	out.Range, err = r.processRange(rangeAr)
	if err != nil {
		return nil, err
	}

	if isRef {
		r.functions[fnRef] = &out
	}
	return &out, nil
}

func (r resolver) processRange(rangeAr model.ObjArray) ([]model.Range, error) {
	if len(rangeAr)%2 != 0 {
		return nil, fmt.Errorf("expected even length for array, got %v", rangeAr)
	}
	out := make([]model.Range, len(rangeAr)/2)
	for i := range out {
		a, _ := r.resolveNumber(rangeAr[2*i])
		b, _ := r.resolveNumber(rangeAr[2*i+1])
		if a > b {
			return nil, fmt.Errorf("invalid range %v > %v", a, b)
		}
		out[i] = model.Range{a, b}
	}
	return out, nil
}

func (r resolver) processExpInterpolationFn(fn model.ObjDict) (model.FunctionExpInterpolation, error) {
	C0, _ := r.resolveArray(fn["C0"])
	C1, _ := r.resolveArray(fn["C1"])
	if len(C0) != len(C1) {
		return model.FunctionExpInterpolation{}, errors.New("array length must be equal for C0 and C1")
	}
	var out model.FunctionExpInterpolation
	out.C0 = r.processFloatArray(C0)
	out.C1 = r.processFloatArray(C1)
	if n, ok := r.resolveInt(fn["N"]); ok {
		out.N = n
	}
	return out, nil
}

func (r resolver) resolveStitchingFn(fn model.ObjDict) (model.FunctionStitching, error) {
	fns, _ := r.resolveArray(fn["Functions"])
	K := len(fns)
	var out model.FunctionStitching
	out.Functions = make([]model.FunctionDict, K)
	for i, f := range fns {
		fnDict, err := r.resolveFunction(f)
		if err != nil {
			return out, err
		}
		out.Functions[i] = *fnDict
	}

	bounds, _ := r.resolveArray(fn["Bounds"])
	if len(bounds) != K-1 {
		return out, fmt.Errorf("expected k-1 elements array for Bounds, got %v", bounds)
	}
	out.Bounds = r.processFloatArray(bounds)

	encode, _ := r.resolveArray(fn["Encode"])
	if len(encode) != 2*K {
		return out, fmt.Errorf("expected 2 x k elements array for Encode, got %v", encode)
	}
	out.Encode = make([][2]Fl, K)
	for i := range out.Encode {
		out.Encode[i][0], _ = r.resolveNumber(encode[2*i])
		out.Encode[i][1], _ = r.resolveNumber(encode[2*i+1])
	}
	return out, nil
}

func (r resolver) processSampledFn(stream model.ObjStream) (model.FunctionSampled, error) {
	cs, ok, err := r.resolveStream(stream)
	if err != nil {
		return model.FunctionSampled{}, err
	}
	if !ok {
		return model.FunctionSampled{}, errors.New("missing stream for Sampled function")
	}
	out := model.FunctionSampled{Stream: cs}

	size, _ := r.resolveArray(stream.Args["Size"])
	m := len(size)
	out.Size = make([]int, m)
	for i, s := range size {
		out.Size[i], _ = r.resolveInt(s)
	}
	if bs, ok := r.resolveInt(stream.Args["BitsPerSample"]); ok {
		out.BitsPerSample = uint8(bs)
	}
	if o, ok := r.resolveInt(stream.Args["Order"]); ok {
		out.Order = uint8(o)
	}
	encode, _ := r.resolveArray(stream.Args["Encode"])
	if len(encode) != 2*m {
		return out, fmt.Errorf("expected 2 x m elements array for Encode, got %v", encode)
	}
	out.Encode = make([][2]Fl, m)
	for i := range out.Encode {
		out.Encode[i][0], _ = r.resolveNumber(encode[2*i])
		out.Encode[i][1], _ = r.resolveNumber(encode[2*i+1])
	}
	decode, _ := r.resolveArray(stream.Args["Decode"])
	ranges, err := r.processRange(decode)
	out.Decode = rangesToPairs(ranges)

	return out, err
}

func rangesToPairs(rs []model.Range) [][2]Fl {
	out := make([][2]Fl, len(rs))
	for i, rg := range rs {
		out[i] = [2]Fl(rg)
	}
	return out
}
