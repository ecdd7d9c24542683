package serman

import "fmt"

// Len names an array size at the type level. Callers declare one empty
// type per size:
//
//	type four struct{}
//
//	func (four) Len() int { return 4 }
type Len interface {
	Len() int
}

// Array is a fixed-size array of N.Len() elements with no prefix. The size
// is part of the type, so arrays nest inside Seq and Array like any other
// element.
type Array[T Wire[T], N Len] []T

type len0 struct{}

func (len0) Len() int { return 0 }

var _ Wire[Array[U32, len0]] = Array[U32, len0](nil)

// Decode reads N.Len() elements into a new array. The first element failure
// is returned as is.
func (Array[T, N]) Decode(r *Reader) (Array[T, N], error) {
	var n N
	out := make(Array[T, N], n.Len())
	if err := readInto[T](r, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Encode writes every element with no length prefix. A value whose length
// differs from N.Len() is rejected before anything is written.
func (a Array[T, N]) Encode(w *Writer) error {
	var n N
	if len(a) != n.Len() {
		w.setError(fmt.Errorf("%w: have %d elements, want %d", ErrArrayLength, len(a), n.Len()))
		return w.Err()
	}
	return writeElems[T](w, a)
}

// readInto decodes exactly len(dst) elements in place. Byte elements are
// read in a single call.
func readInto[T Wire[T]](r *Reader, dst []T) error {
	if b, ok := any(dst).([]U8); ok {
		buf := make([]byte, len(b))
		r.ReadBytesTo(buf)
		if r.err == nil {
			for i, c := range buf {
				b[i] = U8(c)
			}
		}
		return r.Err()
	}

	var elem T
	for i := range dst {
		v, err := elem.Decode(r)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return r.Err()
}

// writeElems writes items back to back. Byte elements are written in a single call.
func writeElems[T Encodable](w *Writer, items []T) error {
	if b, ok := any(items).([]U8); ok {
		buf := make([]byte, len(b))
		for i, c := range b {
			buf[i] = byte(c)
		}
		w.WriteBytes(buf)
		return w.Err()
	}

	for _, item := range items {
		if err := item.Encode(w); err != nil {
			return err
		}
	}
	return w.Err()
}
