package serman

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNilIO indicates that NewReader/NewWriter was called with an nil interface
	ErrNilIO = errors.New("serman: NewReader/NewWriter called with a nil io.Reader/io.Writer")

	// ErrInvalidUTF16 indicates a wide string payload holding an unpaired surrogate.
	ErrInvalidUTF16 = errors.New("serman: invalid utf-16 in wide string")

	// ErrStringTooLong indicates a string whose unit count plus terminator does not fit the i32 prefix.
	ErrStringTooLong = errors.New("serman: string too long for i32 length prefix")

	// ErrSeqTooLong indicates a sequence whose length does not fit the u32 count.
	ErrSeqTooLong = errors.New("serman: sequence too long for u32 count")

	// ErrArrayLength indicates a fixed array value whose length differs from its declared size.
	ErrArrayLength = errors.New("serman: array length does not match its size")

	// ErrNegativeCount indicates a negative externally supplied element count.
	ErrNegativeCount = errors.New("serman: negative element count")

	// ErrInvalidWrite indicates that an io.Writer returned an invalid (negative) count from Write.
	ErrInvalidWrite = errors.New("serman: writer returned invalid count from Write")

	// ErrTrailingData is returned by Unmarshal when bytes remain after the value.
	ErrTrailingData = errors.New("serman: trailing data found after decoding")
)

// IOError reports a failure of the underlying byte stream. It is the only
// failure primitive codecs produce.
type IOError struct {
	Op  string // operation, e.g. "read u32"
	Err error  // underlying stream error
}

func (e *IOError) Error() string { return "serman: " + e.Op + ": " + e.Err.Error() }
func (e *IOError) Unwrap() error { return e.Err }

// UTF16Error reports a wide string payload that is not valid UTF-16.
type UTF16Error struct {
	Index int    // offset of the offending code unit
	Unit  uint16 // the offending code unit
}

func (e *UTF16Error) Error() string {
	return fmt.Sprintf("%v: unpaired surrogate 0x%04x at unit %d", ErrInvalidUTF16, e.Unit, e.Index)
}

func (e *UTF16Error) Unwrap() error { return ErrInvalidUTF16 }

// ErrorFunc converts a stream failure into the caller's error type.
// Installing one on a Reader also makes validity failures surface as
// *UTF16Error instead of being folded into an *IOError.
type ErrorFunc func(*IOError) error

// ErrorFuncOf adapts a constructor of a concrete error type E. A nil E,
// including a typed nil pointer, leaves the *IOError in place.
func ErrorFuncOf[E error](from func(*IOError) E) ErrorFunc {
	return func(err *IOError) error {
		e := from(err)
		if isNil(e) {
			return nil
		}
		return e
	}
}

func isNil(e error) bool {
	v := reflect.ValueOf(e)
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
