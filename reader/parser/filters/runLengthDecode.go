package filters

import (
	"errors"
	"io"
)

type SkipperRunLength struct{}

const eodRunLength = 0x80

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return errors.New("missing EOD marker in encoded stream")
	}
	return err
}

// Skip implements Skipper for a RunLengthDecode filter, walking the
// run structure without materializing the decoded bytes. EOF before
// the EOD marker is an error: runs never span it.
func (f SkipperRunLength) Skip(encoded io.Reader) (int, error) {
	r := newCountReader(encoded)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, unexpectedEOF(err)
		}
		switch {
		case b == eodRunLength:
			return r.totalRead, nil
		case b < 0x80: // b+1 literal bytes follow
			for j := 0; j <= int(b); j++ {
				if _, err := r.ReadByte(); err != nil {
					return 0, unexpectedEOF(err)
				}
			}
		default: // one byte, repeated 257-b times
			if _, err := r.ReadByte(); err != nil {
				return 0, unexpectedEOF(err)
			}
		}
	}
}
