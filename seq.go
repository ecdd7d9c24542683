package serman

import (
	"fmt"
	"math"
)

// maxPreallocElems caps the capacity reserved for a count read off the wire.
const maxPreallocElems = 1024

// Seq is a dynamically sized sequence, prefixed by its u32 element count.
type Seq[T Wire[T]] []T

var (
	_ Wire[Seq[U32]]              = Seq[U32](nil)
	_ DecodableCtx[Seq[U32], int] = Seq[U32](nil)
)

// Decode reads the u32 count and then that many elements.
func (Seq[T]) Decode(r *Reader) (Seq[T], error) {
	var n uint32
	r.ReadUint32(&n)
	if err := r.Err(); err != nil {
		return nil, err
	}
	count := int(n)
	if count < 0 {
		return nil, fmt.Errorf("%w: %d elements", ErrSeqTooLong, n)
	}
	return readSeq[T](r, count)
}

// DecodeCtx reads exactly n elements; no count is read from the stream.
func (Seq[T]) DecodeCtx(r *Reader, n int) (Seq[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}
	return readSeq[T](r, n)
}

// Encode writes the u32 count followed by every element.
func (s Seq[T]) Encode(w *Writer) error {
	if uint64(len(s)) > math.MaxUint32 {
		w.setError(fmt.Errorf("%w: %d elements", ErrSeqTooLong, len(s)))
		return w.Err()
	}
	w.WriteUint32(uint32(len(s)))
	if err := w.Err(); err != nil {
		return err
	}
	return writeElems[T](w, s)
}

func readSeq[T Wire[T]](r *Reader, n int) (Seq[T], error) {
	var elem T
	if _, ok := any(elem).(U8); ok {
		buf := r.readN("read bytes", int64(n))
		if err := r.Err(); err != nil {
			return nil, err
		}
		out := make([]U8, len(buf))
		for i, c := range buf {
			out[i] = U8(c)
		}
		return any(Seq[U8](out)).(Seq[T]), nil
	}
	return ReadSlice(r, n, elem.Decode)
}

// ReadSlice reads n values with f, stopping at the first failure. The
// capacity reserved up front is bounded, so a bogus count fails when the
// stream runs dry rather than at allocation.
func ReadSlice[T any](r *Reader, n int, f func(*Reader) (T, error)) ([]T, error) {
	items := make([]T, 0, min(n, maxPreallocElems))
	for i := 0; i < n; i++ {
		v, err := f(r)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}
