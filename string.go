package serman

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// wideLE transcodes the 16-bit string form. BOMs are neither written nor consumed.
var wideLE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// String is a length-prefixed string. A positive i32 prefix counts 8-bit
// units, a negative one counts 16-bit units; both include a zero terminator.
// Zero means the empty string with no payload.
type String string

var _ Wire[String] = String("")

func (String) Decode(r *Reader) (String, error) {
	var s string
	r.ReadString(&s)
	return String(s), r.Err()
}

func (s String) Encode(w *Writer) error {
	w.WriteString(string(s))
	return w.Err()
}

// ReadString reads an i32 length prefix followed by the string payload.
func (r *Reader) ReadString(dest *string) {
	var n int32
	r.ReadInt32(&n)
	if r.err != nil {
		return
	}
	r.ReadStringPayload(n, dest)
}

// ReadStringPayload reads a string body whose prefix n was read elsewhere.
// The result stops at the first zero unit, but all units the prefix
// declares are consumed. 8-bit payloads are decoded lossily; 16-bit
// payloads must be valid UTF-16.
func (r *Reader) ReadStringPayload(n int32, dest *string) {
	if r.err != nil {
		return
	}

	if n < 0 {
		raw := r.readN("read string", 2*(-int64(n)))
		if r.err != nil {
			return
		}
		for i := 0; i+1 < len(raw); i += 2 {
			if raw[i] == 0 && raw[i+1] == 0 {
				raw = raw[:i]
				break
			}
		}
		if err := checkUTF16(raw); err != nil {
			r.invalid("read string", err)
			return
		}
		s, err := wideLE.NewDecoder().Bytes(raw)
		if err != nil {
			r.invalid("read string", err)
			return
		}
		*dest = string(s)
		return
	}

	raw := r.readN("read string", int64(n))
	if r.err != nil {
		return
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	*dest = lossyUTF8(raw)
}

// WriteString writes s in the compact 8-bit form when it is pure ASCII and
// in the 16-bit form otherwise.
func (w *Writer) WriteString(s string) {
	if w.err != nil {
		return
	}

	switch {
	case s == "":
		w.WriteInt32(0)

	case isASCII(s):
		if len(s) >= math.MaxInt32 {
			w.setError(fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s)))
			return
		}
		w.WriteInt32(int32(len(s) + 1))
		w.writeString("write string", s)
		w.WriteUint8(0)

	default:
		raw, err := wideLE.NewEncoder().Bytes([]byte(s))
		if err != nil {
			w.setError(err)
			return
		}
		units := len(raw) / 2
		if units >= math.MaxInt32 {
			w.setError(fmt.Errorf("%w: %d units", ErrStringTooLong, units))
			return
		}
		w.WriteInt32(-int32(units + 1))
		w.write("write string", raw)
		w.WriteUint16(0)
	}
}

func (w *Writer) writeString(op string, s string) {
	if w.err != nil || s == "" {
		return
	}
	n, err := w.w.WriteString(s)
	if n < 0 || n > len(s) {
		w.fail(op, ErrInvalidWrite)
		return
	}
	w.count += int64(n)
	if err == nil && n < len(s) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.fail(op, err)
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// checkUTF16 rejects unpaired surrogates in little-endian code units.
func checkUTF16(raw []byte) error {
	units := len(raw) / 2
	for i := 0; i < units; i++ {
		u := getInt[uint16](raw[2*i : 2*i+2])
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+1 < units {
				next := getInt[uint16](raw[2*i+2 : 2*i+4])
				if next >= 0xDC00 && next < 0xE000 {
					i++
					continue
				}
			}
			return &UTF16Error{Index: i, Unit: u}
		case u >= 0xDC00 && u < 0xE000:
			return &UTF16Error{Index: i, Unit: u}
		}
	}
	return nil
}

// lossyUTF8 replaces each maximal invalid subsequence with one U+FFFD.
func lossyUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b) + 2)
	for len(b) > 0 {
		c, size := utf8.DecodeRune(b)
		if c != utf8.RuneError || size > 1 {
			sb.Write(b[:size])
			b = b[size:]
			continue
		}
		sb.WriteRune(utf8.RuneError)
		b = b[maximalSubpart(b):]
	}
	return sb.String()
}

// maximalSubpart returns the length of the invalid sequence starting at b[0]:
// the lead byte plus any continuation bytes that could still have been valid.
func maximalSubpart(b []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var need int
	switch lead := b[0]; {
	case lead >= 0xC2 && lead <= 0xDF:
		need = 1
	case lead == 0xE0:
		need, lo = 2, 0xA0
	case lead == 0xED:
		need, hi = 2, 0x9F
	case lead >= 0xE1 && lead <= 0xEF:
		need = 2
	case lead == 0xF0:
		need, lo = 3, 0x90
	case lead == 0xF4:
		need, hi = 3, 0x8F
	case lead >= 0xF1 && lead <= 0xF3:
		need = 3
	default:
		return 1
	}
	i := 1
	for ; i <= need && i < len(b); i++ {
		if b[i] < lo || b[i] > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return i
}
