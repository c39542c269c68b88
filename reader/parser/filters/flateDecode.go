package filters

import (
	"compress/zlib"
	"io"
	"io/ioutil"
)

type SkipperFlate struct{}

// Skip implements Skipper for a Flate filter: the zlib framing knows
// its own end, so the encoded length is simply the number of bytes the
// decompressor consumed.
func (f SkipperFlate) Skip(encoded io.Reader) (int, error) {
	r := newCountReader(encoded)
	rc, err := zlib.NewReader(r)
	if err != nil {
		return 0, err
	}
	if _, err = ioutil.ReadAll(rc); err != nil {
		return 0, err
	}
	return r.totalRead, rc.Close()
}
