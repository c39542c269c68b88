package model

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FmtFloat returns a PDF compatible float representation of `f`.
func FmtFloat(f Fl) string {
	// avoid representing 0 as -0
	if f == 0 {
		return "0"
	}
	// round with 5 digits of precision
	n := math.Pow10(5)
	rounded := math.Round(float64(f)*n) / n
	return strconv.FormatFloat(rounded, 'f', -1, 32)
}

func writeMaybeFloat(f MaybeFloat) string {
	if f == nil {
		return "null"
	}
	return FmtFloat(Fl(f.(ObjFloat)))
}

// writeArray joins the elements of a slice, formatted by one, into a
// PDF array.
func writeArray(length int, one func(i int) string) string {
	chunks := make([]string, length)
	for i := range chunks {
		chunks[i] = one(i)
	}
	return "[" + strings.Join(chunks, " ") + "]"
}

func writeIntArray(as []int) string {
	return writeArray(len(as), func(i int) string { return strconv.Itoa(as[i]) })
}

func writeFloatArray(as []Fl) string {
	return writeArray(len(as), func(i int) string { return FmtFloat(as[i]) })
}

func writeRefArray(as []Reference) string {
	return writeArray(len(as), func(i int) string { return as[i].String() })
}

func writePointArray(rs [][2]Fl) string {
	return writeArray(len(rs), func(i int) string {
		return FmtFloat(rs[i][0]) + " " + FmtFloat(rs[i][1])
	})
}

func writeRangeArray(rs []Range) string {
	return writeArray(len(rs), func(i int) string {
		return FmtFloat(rs[i][0]) + " " + FmtFloat(rs[i][1])
	})
}

func writeNameArray(rs []Name) string {
	return writeArray(len(rs), func(i int) string { return rs[i].String() })
}

func writeStringsArray(ar []string, pdf PDFWritter, mode PDFStringEncoding, context Reference) string {
	return writeArray(len(ar), func(i int) string {
		return pdf.EncodeString(ar[i], mode, context)
	})
}

// DateTimeString returns a valid PDF string representation of `t`.
// Note that the string is not encoded (nor encrypted).
func DateTimeString(t time.Time) string {
	_, tz := t.Zone()
	tzm := tz / 60
	sign := "+"
	if tzm < 0 {
		sign = "-"
		tzm = -tzm
	}
	return fmt.Sprintf("D:%d%02d%02d%02d%02d%02d%s%02d'%02d'",
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(),
		sign, tzm/60, tzm%60)
}

func (pdf pdfWriter) dateString(t time.Time, context Reference) string {
	return pdf.EncodeString(DateTimeString(t), TextString, context)
}

// buffer shortens the writing of formatted PDF dictionary content.
type buffer struct {
	*bytes.Buffer
}

func newBuffer() buffer {
	return buffer{Buffer: &bytes.Buffer{}}
}

func (b buffer) fmt(format string, arg ...interface{}) {
	fmt.Fprintf(b.Buffer, format, arg...)
}

// line adds a formatted line.
func (b buffer) line(format string, arg ...interface{}) {
	b.fmt(format, arg...)
	b.WriteByte('\n')
}
