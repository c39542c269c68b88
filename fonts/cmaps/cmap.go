// Package cmaps implements a CMap parser, covering both ToUnicode and
// CID CMaps.
package cmaps

import (
	"errors"
	"fmt"
	"sort"

	"github.com/quillcore/pdfcore/model"
)

const (
	// maxCodeLen is the maximum number of bytes per character code.
	maxCodeLen = 4

	// MissingCodeRune replaces runes that can't be decoded: '�'.
	MissingCodeRune = '�'
)

// CharCode is a compact representation of 1 to 4 bytes,
// as found in PDF content streams.
type CharCode int32

// Append adds 1 to 4 bytes to `bs`, in big-endian order.
func (c CharCode) Append(bs *[]byte) {
	switch {
	case c < 1<<8:
		*bs = append(*bs, byte(c))
	case c < 1<<16:
		*bs = append(*bs, byte(c>>8), byte(c))
	case c < 1<<24:
		*bs = append(*bs, byte(c>>16), byte(c>>8), byte(c))
	default:
		*bs = append(*bs, byte(c>>24), byte(c>>16), byte(c>>8), byte(c))
	}
}

// CMap maps character codes to CIDs.
// It is either predefined, or embedded in a PDF file as a stream.
type CMap struct {
	Name          model.Name
	CIDSystemInfo model.CIDSystemInfo
	Type          int
	Codespaces    []Codespace
	CIDs          []CIDRange

	UseCMap model.Name

	simple *bool // cached value of Simple
}

// Codespace represents a single codespace range used in the CMap.
type Codespace struct {
	NumBytes  int      // how many bytes should be read to match this code (between 1 and 4)
	Low, High CharCode // compact version of [4]byte
}

// newCodespaceFromBytes converts a pair of hex bounds into a
// Codespace; invalid ranges are rejected with an error.
// The byte count of the codes is given by the hex literals themselves:
// <00> and <0000> declare different codespaces even though the bounds
// compare equal.
func newCodespaceFromBytes(low, high []byte) (Codespace, error) {
	if len(low) != len(high) {
		return Codespace{}, errors.New("unequal number of bytes in range")
	}
	if L := len(low); L > maxCodeLen {
		return Codespace{}, fmt.Errorf("unsupported number of bytes: %d", L)
	}
	lowR := hexToCharCode(low)
	highR := hexToCharCode(high)
	if highR < lowR {
		return Codespace{}, errors.New("invalid character code range")
	}
	return Codespace{Low: lowR, High: highR, NumBytes: len(low)}, nil
}

// CIDRange associates an increasing range of CIDs to the character
// codes from Low to High.
type CIDRange struct {
	Codespace
	CIDStart model.CID // CID of the first character code in the range
}

// Simple returns true if only one-byte character codes are encoded.
// The value is cached, so Codespaces must not be mutated after the
// call.
func (cm *CMap) Simple() bool {
	if cm.simple != nil {
		return *cm.simple
	}
	simple := true
	for _, space := range cm.Codespaces {
		if space.NumBytes > 1 {
			simple = false
			break
		}
	}
	cm.simple = &simple
	return simple
}

// CharCodeToCID accumulates all the CID ranges into one map.
func (cm CMap) CharCodeToCID() map[CharCode]model.CID {
	out := map[CharCode]model.CID{}
	for _, v := range cm.CIDs {
		for index := CharCode(0); index <= v.High-v.Low; index++ {
			out[v.Low+index] = v.CIDStart + model.CID(index)
		}
	}
	return out
}

// BytesToCharcodes attempts to convert the entire byte array `data` to
// a list of character codes, matched against the codespaces. A partial
// list is returned (with false) when a prefix cannot be matched.
func (cmap *CMap) BytesToCharcodes(data []byte) ([]CharCode, bool) {
	var charcodes []CharCode
	if cmap.Simple() {
		for _, b := range data {
			charcodes = append(charcodes, CharCode(b))
		}
		return charcodes, true
	}
	for i := 0; i < len(data); {
		code, n, matched := cmap.matchCode(data[i:])
		if !matched {
			return charcodes, false
		}
		charcodes = append(charcodes, code)
		i += n
	}
	return charcodes, true
}

// matchCode attempts to match a prefix of `data` with a character code
// of one of the codespaces, shortest code first.
func (cmap CMap) matchCode(data []byte) (code CharCode, n int, matched bool) {
	for j := 0; j < maxCodeLen && j < len(data); j++ {
		code = code<<8 | CharCode(data[j])
		n++
		if cmap.inCodespace(code, j+1) {
			return code, n, true
		}
	}
	// no codespace matched the data: a serious problem
	return 0, 0, false
}

// inCodespace returns true if `code` is in one of the `numBytes` byte
// codespaces.
func (cmap CMap) inCodespace(code CharCode, numBytes int) bool {
	for _, cs := range cmap.Codespaces {
		if cs.Low <= code && code <= cs.High && numBytes == cs.NumBytes {
			return true
		}
	}
	return false
}

// ParseUnicodeCMap parses the cmap `data` and returns the resulting
// mapping. See 9.10.3 - ToUnicode CMaps.
func ParseUnicodeCMap(data []byte) (UnicodeCMap, error) {
	cmap := newparser(data)
	if err := cmap.parse(); err != nil {
		return UnicodeCMap{}, err
	}
	cmap.sortCodespaces()
	return cmap.unicode, nil
}

// ParseCIDCMap parses the in-memory cmap `data` and returns the
// resulting CMap. See 9.7.5.3 - Embedded CMap Files.
func ParseCIDCMap(data []byte) (CMap, error) {
	cmap := newparser(data)
	if err := cmap.parse(); err != nil {
		return CMap{}, err
	}
	if len(cmap.cids.Codespaces) == 0 {
		if cmap.cids.UseCMap != "" {
			return cmap.cids, nil
		}
		return CMap{}, fmt.Errorf("%w: no codespaces", ErrBadCMap)
	}

	cmap.sortCodespaces()
	return cmap.cids, nil
}

// sortCodespaces orders the codespaces by ascending lower bound.
func (cmap *parser) sortCodespaces() {
	sort.Slice(cmap.cids.Codespaces, func(i, j int) bool {
		return cmap.cids.Codespaces[i].Low < cmap.cids.Codespaces[j].Low
	})
}
