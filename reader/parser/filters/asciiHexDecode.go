package filters

import (
	"io"
	"io/ioutil"
)

type SkipperAsciiHex struct{}

const eodHexDecode = '>'

// Skip implements Skipper for an ASCIIHexDecode filter, reading up to
// (and including) the > marker.
func (f SkipperAsciiHex) Skip(encoded io.Reader) (int, error) {
	origin := newCountReader(encoded)
	r := newReacher(origin, []byte{eodHexDecode})
	_, err := ioutil.ReadAll(r)
	return origin.totalRead, err
}
