package filters

import (
	"bufio"
	"io"
)

// countReader records how many bytes have been read from the
// underlying reader, which is exactly the encoded length skippers must
// report.
type countReader struct {
	src       io.Reader
	totalRead int
}

func newCountReader(src io.Reader) *countReader {
	return &countReader{src: src}
}

func (c *countReader) Read(p []byte) (int, error) {
	n, err := c.src.Read(p)
	c.totalRead += n
	return n, err
}

// ReadByte reads one byte at a time, so that a decoder layered on top
// never consumes more input than it actually needs.
func (c *countReader) ReadByte() (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(c.src, buf[:])
	if err != nil {
		return 0, err
	}
	c.totalRead++
	return buf[0], nil
}

// reacher reads from src until the delimiter has been consumed
// (inclusive), then reports EOF. Reaching the end of src before the
// delimiter is an error, since the EOD marker is mandatory.
type reacher struct {
	src     io.ByteReader
	delim   []byte
	matched int
	done    bool
}

func newReacher(src io.Reader, delim []byte) *reacher {
	br, ok := src.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(src)
	}
	return &reacher{src: br, delim: delim}
}

func (r *reacher) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	for i := range p {
		c, err := r.src.ReadByte()
		if err != nil {
			return i, unexpectedEOF(err)
		}
		p[i] = c
		if c == r.delim[r.matched] {
			r.matched++
			if r.matched == len(r.delim) {
				r.done = true
				return i + 1, io.EOF
			}
		} else if c == r.delim[0] {
			r.matched = 1
		} else {
			r.matched = 0
		}
	}
	return len(p), nil
}

var _ io.Reader = (*reacher)(nil)
