package filters

import (
	"errors"
	"io"
)

type SkipperDCT struct{}

// JPEG markers needed to walk the segment structure.
const (
	markerSOI = 0xd8
	markerEOI = 0xd9
	markerSOS = 0xda
	markerTEM = 0x01
)

var errInvalidJPEG = errors.New("invalid JPEG data in DCT encoded stream")

// Skip implements Skipper for a DCTDecode filter: the segment
// structure of the JPEG payload is walked until the EOI marker, so
// that 0xFFD9 sequences hidden in segment payloads are not mistaken
// for the end of the image.
func (f SkipperDCT) Skip(encoded io.Reader) (int, error) {
	r := newCountReader(encoded)

	b0, err := r.ReadByte()
	if err != nil {
		return 0, unexpectedEOF(err)
	}
	b1, err := r.ReadByte()
	if err != nil {
		return 0, unexpectedEOF(err)
	}
	if b0 != 0xff || b1 != markerSOI {
		return 0, errInvalidJPEG
	}

	inScan := false
	for {
		c, err := r.ReadByte()
		if err != nil {
			return 0, unexpectedEOF(err)
		}
		if c != 0xff {
			if inScan { // entropy-coded byte
				continue
			}
			return 0, errInvalidJPEG
		}

		marker, err := r.ReadByte()
		if err != nil {
			return 0, unexpectedEOF(err)
		}
		switch {
		case marker == 0xff: // fill byte, re-read
			continue
		case marker == 0x00: // stuffed 0xFF in entropy data
			if !inScan {
				return 0, errInvalidJPEG
			}
		case marker == markerEOI:
			return r.totalRead, nil
		case marker >= 0xd0 && marker <= 0xd7: // restart, no payload
		case marker == markerTEM:
		default:
			l1, err := r.ReadByte()
			if err != nil {
				return 0, unexpectedEOF(err)
			}
			l2, err := r.ReadByte()
			if err != nil {
				return 0, unexpectedEOF(err)
			}
			length := int(l1)<<8 | int(l2)
			if length < 2 {
				return 0, errInvalidJPEG
			}
			for i := 0; i < length-2; i++ {
				if _, err := r.ReadByte(); err != nil {
					return 0, unexpectedEOF(err)
				}
			}
			inScan = marker == markerSOS
		}
	}
}
