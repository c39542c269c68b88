package reader

import (
	"strconv"
	"strings"
	"time"
)

// DateTime parses a PDF date string (7.9.4 Dates), tolerating the common
// deviations seen in the wild: a missing `D:` prefix and trailing garbage
// after an otherwise well-formed timezone suffix.
func DateTime(s string) (time.Time, bool) {
	return dateTime(s, true)
}

// dateTime parses a PDF date string.
//
//	D:YYYYMMDDHHmmSSOHH'mm'
//
// every field after the year is optional, and the timezone suffix is one
// of `Z`, `+HH'mm'` or `-HH'mm'`, with the minutes and the closing quote
// themselves optional. In strict mode (`relaxed == false`) the `D:`
// prefix is mandatory and no trailing bytes are accepted; in relaxed
// mode both are tolerated.
func dateTime(s string, relaxed bool) (time.Time, bool) {
	if strings.HasPrefix(s, "D:") {
		s = s[2:]
	} else if !relaxed {
		return time.Time{}, false
	}

	readField := func(n, def, max int) (int, bool) {
		if len(s) == 0 {
			return def, true
		}
		if len(s) < n {
			return 0, false
		}
		v, err := strconv.Atoi(s[:n])
		if err != nil || v > max {
			return 0, false
		}
		s = s[n:]
		return v, true
	}

	if len(s) < 4 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return time.Time{}, false
	}
	s = s[4:]

	month, ok := readField(2, 1, 12)
	if !ok || month < 1 {
		return time.Time{}, false
	}
	day, ok := readField(2, 1, 31)
	if !ok || day < 1 {
		return time.Time{}, false
	}
	hour, ok := readField(2, 0, 23)
	if !ok {
		return time.Time{}, false
	}
	minute, ok := readField(2, 0, 59)
	if !ok {
		return time.Time{}, false
	}
	second, ok := readField(2, 0, 59)
	if !ok {
		return time.Time{}, false
	}

	loc := time.UTC
	if s != "" {
		switch s[0] {
		case 'Z':
			s = s[1:]
			if s != "" {
				_, rest, ok := parseTZOffset(s)
				if !ok {
					if !relaxed {
						return time.Time{}, false
					}
					s = "" // tolerate trailing garbage after Z
				} else {
					s = rest
				}
			}
		case '+', '-':
			sign := 1
			if s[0] == '-' {
				sign = -1
			}
			offset, rest, ok := parseTZOffset(s[1:])
			if !ok {
				return time.Time{}, false
			}
			s = rest
			loc = time.FixedZone("", sign*offset)
		default:
			return time.Time{}, false
		}
	}

	if s != "" && !relaxed {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), true
}

// parseTZOffset reads "HH['mm['|']]" (minutes and the trailing quote are
// optional) and returns the offset in seconds plus the unconsumed input.
func parseTZOffset(s string) (int, string, bool) {
	if len(s) < 2 {
		return 0, s, false
	}
	hh, err := strconv.Atoi(s[:2])
	if err != nil || hh > 23 {
		return 0, s, false
	}
	s = s[2:]

	mm := 0
	if strings.HasPrefix(s, "'") {
		s = s[1:]
		if len(s) < 2 {
			return 0, s, false
		}
		m, err := strconv.Atoi(s[:2])
		if err != nil || m > 59 {
			return 0, s, false
		}
		mm = m
		s = s[2:]
		if strings.HasPrefix(s, "'") {
			s = s[1:]
		}
	}
	return hh*3600 + mm*60, s, true
}
