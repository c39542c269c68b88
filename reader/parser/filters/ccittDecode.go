package filters

import (
	"errors"
	"io"
	"io/ioutil"

	"golang.org/x/image/ccitt"
)

// CCITTParams are the decode parameters of a CCITTFaxDecode filter
// (Table 11), resolved to concrete values.
type CCITTParams struct {
	K                int  // < 0 for Group 4, >= 0 for Group 3
	Columns          int  // width in pixels, default 1728
	Rows             int  // 0 when the height is not announced
	BlackIs1         bool // 1 bits mean black, default false
	EncodedByteAlign bool // each row starts on a byte boundary
}

// reader builds the x/image decoder for these parameters, reading the
// encoded bytes from src.
func (p CCITTParams) reader(src io.Reader) io.Reader {
	subFormat := ccitt.Group3
	if p.K < 0 {
		subFormat = ccitt.Group4
	}
	height := p.Rows
	if height <= 0 {
		// the filter announces no height: decode until the data runs
		// out (see decode)
		height = 1 << 20
	}
	opts := &ccitt.Options{Invert: !p.BlackIs1, Align: p.EncodedByteAlign}
	return ccitt.NewReader(src, ccitt.MSB, subFormat, p.Columns, height, opts)
}

// decode returns the decoded rows. When the filter does not announce
// its height, the data running out before the (then unbounded) row
// count is reached is the expected termination, not an error.
func (p CCITTParams) decode(src io.Reader) ([]byte, error) {
	out, err := ioutil.ReadAll(p.reader(src))
	if err != nil && p.Rows <= 0 && errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}
	return out, err
}

// CCITTParamsFromDict interprets the DecodeParms of a CCITTFaxDecode
// filter, applying the defaults of Table 11.
func CCITTParamsFromDict(parms map[string]int) CCITTParams {
	out := CCITTParams{
		K:                parms["K"],
		Columns:          parms["Columns"],
		Rows:             parms["Rows"],
		BlackIs1:         parms["BlackIs1"] == 1,
		EncodedByteAlign: parms["EncodedByteAlign"] == 1,
	}
	if out.Columns == 0 {
		out.Columns = 1728
	}
	return out
}

type SkipperCCITT struct {
	Params CCITTParams
}

// Skip implements Skipper for a CCITT filter: the encoded length is
// the number of bytes the decoder consumed producing the announced
// rows.
func (f SkipperCCITT) Skip(encoded io.Reader) (int, error) {
	r := newCountReader(encoded)
	_, err := f.Params.decode(r)
	return r.totalRead, err
}
