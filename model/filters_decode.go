package model

import (
	"bytes"
	"compress/zlib"
	"encoding/ascii85"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/hhrutter/lzw"
	"golang.org/x/image/ccitt"
)

// DecodeReader chains the decoders for each filter in `fs`, in order,
// and returns a reader producing the fully decoded stream content.
// DCTDecode, JPXDecode and JBIG2Decode are left untouched: their payload
// is an opaque image format handed to an external decoder (see
// model.Image), not a byte stream to be inlined in a content stream.
func (fs Filters) DecodeReader(r io.Reader) (io.Reader, error) {
	for _, f := range fs {
		var err error
		r, err = f.decodeReader(r)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %s", f.Name, err)
		}
	}
	return r, nil
}

// Decoded returns the content of the stream with its whole filter
// chain undone.
func (s Stream) Decoded() ([]byte, error) {
	r, err := s.Filter.DecodeReader(bytes.NewReader(s.Content))
	if err != nil {
		return nil, err
	}
	return ioutil.ReadAll(r)
}

func (f Filter) decodeReader(src io.Reader) (io.Reader, error) {
	switch f.Name {
	case Flate:
		return flateDecode(f.DecodeParms, src)
	case LZW:
		return lzwDecode(f.DecodeParms, src)
	case ASCII85:
		return ascii85Decode(src)
	case ASCIIHex:
		return asciiHexDecode(src)
	case RunLength:
		return runLengthDecode(src)
	case CCITTFax:
		return ccittDecode(f.DecodeParms, src)
	case DCT, JPX, JBIG2, "Crypt":
		// opaque payload, or already handled by the encryption layer
		return src, nil
	default:
		return src, nil
	}
}

func flateDecode(parms map[string]int, src io.Reader) (io.Reader, error) {
	rc, err := zlib.NewReader(src)
	if err != nil {
		return nil, err
	}
	decoded, err := ioutil.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	if err := rc.Close(); err != nil {
		return nil, err
	}
	return predictorDecode(parms, decoded)
}

func lzwDecode(parms map[string]int, src io.Reader) (io.Reader, error) {
	earlyChange := true
	if v, ok := parms["EarlyChange"]; ok {
		earlyChange = v != 0
	}
	rc := lzw.NewReader(src, earlyChange)
	decoded, err := ioutil.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	if err := rc.Close(); err != nil {
		return nil, err
	}
	return predictorDecode(parms, decoded)
}

func ascii85Decode(src io.Reader) (io.Reader, error) {
	content, err := ioutil.ReadAll(src)
	if err != nil {
		return nil, err
	}
	// discard a trailing EOD marker, if present; encoding/ascii85 does
	// not expect it
	content = bytes.TrimSpace(content)
	content = bytes.TrimSuffix(content, []byte("~>"))

	out := make([]byte, 4*len(content)) // one input byte ('z') may decode to four
	n, _, err := ascii85.Decode(out, content, true)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(out[:n]), nil
}

func asciiHexDecode(src io.Reader) (io.Reader, error) {
	content, err := ioutil.ReadAll(src)
	if err != nil {
		return nil, err
	}
	content = bytes.TrimSuffix(bytes.TrimSpace(content), []byte(">"))

	var out bytes.Buffer
	var hi byte
	haveHi := false
	for _, c := range content {
		var v byte
		switch {
		case c >= '0' && c <= '9':
			v = c - '0'
		case c >= 'a' && c <= 'f':
			v = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v = c - 'A' + 10
		default: // whitespace, ignored
			continue
		}
		if !haveHi {
			hi, haveHi = v, true
			continue
		}
		out.WriteByte(hi<<4 | v)
		haveHi = false
	}
	if haveHi { // odd number of digits: trailing 0 is implied
		out.WriteByte(hi << 4)
	}
	return &out, nil
}

func runLengthDecode(src io.Reader) (io.Reader, error) {
	br, ok := src.(io.ByteReader)
	if !ok {
		br = newByteReader(src)
	}
	var out bytes.Buffer
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if b == 0x80 { // EOD
			break
		}
		if b < 0x80 {
			n := int(b) + 1
			for i := 0; i < n; i++ {
				c, err := br.ReadByte()
				if err != nil {
					return nil, err
				}
				out.WriteByte(c)
			}
		} else {
			n := 257 - int(b)
			c, err := br.ReadByte()
			if err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				out.WriteByte(c)
			}
		}
	}
	return &out, nil
}

type byteReader struct{ r io.Reader }

func newByteReader(r io.Reader) *byteReader { return &byteReader{r: r} }

func (b *byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(b.r, buf[:])
	return buf[0], err
}

func ccittDecode(parms map[string]int, src io.Reader) (io.Reader, error) {
	k := parms["K"]
	subFormat := ccitt.Group3
	if k < 0 {
		subFormat = ccitt.Group4
	}
	columns := parms["Columns"]
	if columns == 0 {
		columns = 1728
	}
	rows := parms["Rows"]
	height := rows
	if height <= 0 {
		height = 1 << 20 // no height announced: bounded by the data instead
	}
	opts := &ccitt.Options{
		Invert: parms["BlackIs1"] != 1,
		Align:  parms["EncodedByteAlign"] == 1,
	}
	decoded, err := ioutil.ReadAll(ccitt.NewReader(src, ccitt.MSB, subFormat, columns, height, opts))
	if err != nil && rows <= 0 && err == io.ErrUnexpectedEOF {
		// without a Rows entry the data running out is the expected end
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(decoded), nil
}

// predictorDecode reverses the PNG or TIFF predictor applied before
// compression, as described in Table 8 (7.4.4.4) of the PDF reference.
func predictorDecode(parms map[string]int, decoded []byte) (io.Reader, error) {
	predictor := parms["Predictor"]
	if predictor == 0 {
		predictor = 1
	}
	if predictor == 1 { // no prediction
		return bytes.NewReader(decoded), nil
	}

	colors := parms["Colors"]
	if colors == 0 {
		colors = 1
	}
	bpc := parms["BitsPerComponent"]
	if bpc == 0 {
		bpc = 8
	}
	columns := parms["Columns"]
	if columns == 0 {
		columns = 1
	}

	bytesPerPixel := (bpc*colors + 7) / 8
	rowSize := bpc * colors * columns / 8
	if predictor != 2 {
		rowSize++ // PNG rows are prefixed by a filter-type byte
	}

	r := bytes.NewReader(decoded)
	cr := make([]byte, rowSize)
	pr := make([]byte, rowSize)
	var out []byte

	for {
		_, err := io.ReadFull(r, cr)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, err
		}

		row, err := applyPredictorRow(pr, cr, predictor, colors, bytesPerPixel)
		if err != nil {
			return nil, err
		}
		out = append(out, row...)

		pr, cr = cr, pr
	}

	return bytes.NewReader(out), nil
}

func applyPredictorRow(pr, cr []byte, predictor, colors, bytesPerPixel int) ([]byte, error) {
	if predictor == 2 { // TIFF
		for i := colors; i < len(cr); i++ {
			cr[i] += cr[i-colors]
		}
		return cr, nil
	}

	// PNG predictors: first byte of the row selects the filter used
	cdat := cr[1:]
	pdat := pr[1:]
	switch filterType := cr[0]; filterType {
	case 0: // none
	case 1: // sub
		for i := bytesPerPixel; i < len(cdat); i++ {
			cdat[i] += cdat[i-bytesPerPixel]
		}
	case 2: // up
		for i, p := range pdat {
			cdat[i] += p
		}
	case 3: // average
		for i := 0; i < bytesPerPixel; i++ {
			cdat[i] += pdat[i] / 2
		}
		for i := bytesPerPixel; i < len(cdat); i++ {
			cdat[i] += byte((int(cdat[i-bytesPerPixel]) + int(pdat[i])) / 2)
		}
	case 4: // paeth
		pngPaeth(cdat, pdat, bytesPerPixel)
	default:
		return nil, fmt.Errorf("unsupported PNG predictor filter type %d", filterType)
	}
	return cdat, nil
}

func pngPaeth(cdat, pdat []byte, bytesPerPixel int) {
	paeth := func(a, b, c int32) int32 {
		p := a + b - c
		pa, pb, pc := absInt32(p-a), absInt32(p-b), absInt32(p-c)
		switch {
		case pa <= pb && pa <= pc:
			return a
		case pb <= pc:
			return b
		default:
			return c
		}
	}
	for i := 0; i < bytesPerPixel; i++ {
		var a, c int32
		for j := i; j < len(cdat); j += bytesPerPixel {
			b := int32(pdat[j])
			cdat[j] = byte((int32(cdat[j]) + paeth(a, b, c)) & 0xff)
			a = int32(cdat[j])
			c = b
		}
	}
}

func absInt32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
