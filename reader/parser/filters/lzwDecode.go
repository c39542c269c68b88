package filters

import (
	"io"
	"io/ioutil"

	"github.com/hhrutter/lzw"
)

type SkipperLZW struct {
	EarlyChange bool // written in PDF as an integer, default 1 (true)
}

// Skip implements Skipper for an LZWDecode filter, relying on the
// decoder stopping at the EOD code.
func (f SkipperLZW) Skip(encoded io.Reader) (int, error) {
	r := newCountReader(encoded)
	rc := lzw.NewReader(r, f.EarlyChange)
	if _, err := ioutil.ReadAll(rc); err != nil {
		return 0, err
	}
	return r.totalRead, rc.Close()
}
