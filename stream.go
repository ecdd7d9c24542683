package serman

import (
	"bytes"
	"fmt"
	"io"
)

// Decode reads a T from r. A *Reader is used as is; any other io.Reader is
// wrapped for the duration of the call.
func Decode[T Decodable[T]](r io.Reader) (T, error) {
	var zero T
	rd, err := NewReader(r)
	if err != nil {
		return zero, err
	}
	return zero.Decode(rd)
}

// DecodeCtx reads a T whose shape depends on ctx, e.g.
//
//	items, err := DecodeCtx[Seq[U32]](r, 3)
func DecodeCtx[T DecodableCtx[T, C], C any](r io.Reader, ctx C) (T, error) {
	var zero T
	rd, err := NewReader(r)
	if err != nil {
		return zero, err
	}
	return zero.DecodeCtx(rd, ctx)
}

// DecodeArray fills dst, typically a fixed Go array passed as arr[:].
func DecodeArray[T Wire[T]](r io.Reader, dst []T) error {
	rd, err := NewReader(r)
	if err != nil {
		return err
	}
	return readInto(rd, dst)
}

// Encode writes v to w.
func Encode[T Encodable](w io.Writer, v T) error {
	wr, err := NewWriter(w)
	if err != nil {
		return err
	}
	if err := v.Encode(wr); err != nil {
		return err
	}
	return wr.Err()
}

// EncodeNoLength writes items back to back without the u32 count, for
// readers that know the count out of band (see DecodeCtx).
func EncodeNoLength[T Encodable](w io.Writer, items []T) error {
	wr, err := NewWriter(w)
	if err != nil {
		return err
	}
	return writeElems(wr, items)
}

// Marshal returns the encoding of v in a new slice.
func Marshal[T Encodable](v T) ([]byte, error) {
	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bytesBufPool.Put(buf)

	if err := Encode(buf, v); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// MarshalTo encodes v into p without allocating. It never writes past
// len(p), even when p has spare capacity, and fails with io.ErrShortWrite
// when p is too small.
func MarshalTo[T Encodable](v T, p []byte) (int, error) {
	w := NewBytesWriter(p[:len(p):len(p)])
	err := Encode(w, v)
	return w.Len(), err
}

// Unmarshal decodes a T from data, which must hold exactly one value.
func Unmarshal[T Decodable[T]](data []byte) (T, error) {
	r := NewBytesReader(data)
	v, err := Decode[T](r)
	if err != nil {
		return v, err
	}
	if rest := r.Available(); rest > 0 {
		return v, fmt.Errorf("%w: %d bytes", ErrTrailingData, rest)
	}
	return v, nil
}
