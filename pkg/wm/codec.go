package wm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// QueryParam is the query string parameter that carries the encoded window list.
const QueryParam = "windows"

const (
	recordSep = "|"
	fieldSep  = ":"

	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// idEscaper escapes the characters that would split a shifted id.
var (
	idEscaper   = strings.NewReplacer("%", "%25", ":", "%3A", "|", "%7C")
	idUnescaper = strings.NewReplacer("%25", "%", "%3A", ":", "%7C", "|")
)

// ErrBadRecord is returned by Normalize for records that cannot be encoded.
var ErrBadRecord = errors.New("bad window record")

// Normalize prepares hand-written records for Encode. Every record needs a
// unique non-empty id; a zero size becomes DefaultSize.
func Normalize(windows []Window) error {
	seen := make(map[string]bool, len(windows))
	for i := range windows {
		id := windows[i].ID
		if id == "" {
			return fmt.Errorf("%w: record %d has no id", ErrBadRecord, i)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %q", ErrBadRecord, id)
		}
		seen[id] = true
		if windows[i].Size == (Size{}) {
			windows[i].Size = DefaultSize
		}
	}
	return nil
}

// Encode serializes windows in list order as
// id:x:y:width:height:open:minimized records joined by "|".
// The id is passed through Shift.
func Encode(windows []Window) string {
	var b strings.Builder
	for i, w := range windows {
		if i > 0 {
			b.WriteString(recordSep)
		}
		b.WriteString(idEscaper.Replace(Shift(w.ID)))
		for _, n := range []int{w.Pos.X, w.Pos.Y, w.Size.Width, w.Size.Height} {
			b.WriteString(fieldSep)
			b.WriteString(strconv.Itoa(n))
		}
		b.WriteString(fieldSep)
		b.WriteString(encodeBool(w.Open))
		b.WriteString(fieldSep)
		b.WriteString(encodeBool(w.Minimized))
	}
	return b.String()
}

// Decode parses a string produced by Encode. Empty or malformed input yields
// an empty list. Missing or non-numeric sizes fall back to DefaultSize;
// duplicate ids keep their first record.
func Decode(s string) []Window {
	if s == "" {
		return []Window{}
	}
	parts := strings.Split(s, recordSep)
	out := make([]Window, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		w, ok := decodeRecord(part)
		if !ok {
			return []Window{}
		}
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		out = append(out, w)
	}
	return out
}

func decodeRecord(part string) (Window, bool) {
	fields := strings.Split(part, fieldSep)
	if len(fields) < 3 || len(fields) > 7 || fields[0] == "" {
		return Window{}, false
	}
	if !validEscapes(fields[0]) {
		return Window{}, false
	}
	x, errX := strconv.Atoi(fields[1])
	y, errY := strconv.Atoi(fields[2])
	if errX != nil || errY != nil {
		return Window{}, false
	}

	field := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	return Window{
		ID:  Unshift(idUnescaper.Replace(fields[0])),
		Pos: Point{X: x, Y: y},
		Size: Size{
			Width:  decodeDimension(field(3), DefaultSize.Width),
			Height: decodeDimension(field(4), DefaultSize.Height),
		},
		Open:      field(5) == "1",
		Minimized: field(6) == "1",
	}, true
}

// decodeDimension treats zero like a missing value, as the page always did.
func decodeDimension(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return fallback
	}
	return n
}

func validEscapes(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if i+3 > len(s) {
			return false
		}
		switch s[i : i+3] {
		case "%25", "%3A", "%7C":
			i += 2
		default:
			return false
		}
	}
	return true
}

func encodeBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Shift moves every code point of s up by one. It is an obfuscation step,
// not a security measure. The surrogate range is skipped and the last code
// point wraps to zero so that Unshift(Shift(s)) == s for any s; bytes that
// are not valid UTF-8 are copied unchanged.
func Shift(s string) string {
	return mapRunes(s, func(r rune) rune {
		switch r {
		case utf8.MaxRune:
			return 0
		case surrogateMin - 1:
			return surrogateMax + 1
		default:
			return r + 1
		}
	})
}

// Unshift reverses Shift.
func Unshift(s string) string {
	return mapRunes(s, func(r rune) rune {
		switch r {
		case 0:
			return utf8.MaxRune
		case surrogateMax + 1:
			return surrogateMin - 1
		default:
			return r - 1
		}
	})
}

func mapRunes(s string, fn func(rune) rune) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		b.WriteRune(fn(r))
		i += size
	}
	return b.String()
}
