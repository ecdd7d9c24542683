// Package serman implements the little-endian binary layout used by legacy
// game-engine files and packets: fixed-width integers, 32-bit booleans,
// sign-selected 8/16-bit strings, fixed arrays and u32-counted sequences.
package serman

// Decodable is implemented by wire types that can build a fresh value of T
// from a stream. The receiver is only a template: its type selects the
// decoder.
type Decodable[T any] interface {
	// Decode reads one T from r.
	Decode(r *Reader) (T, error)
}

// Encodable is implemented by wire types that can write themselves to a stream.
type Encodable interface {
	// Encode writes the value to w without mutating it.
	Encode(w *Writer) error
}

// DecodableCtx is a decoder that needs an extra caller-supplied value, such
// as an element count fixed by the surrounding protocol.
type DecodableCtx[T, C any] interface {
	DecodeCtx(r *Reader, ctx C) (T, error)
}

// Wire aggregates both directions. Containers require it of their elements.
type Wire[T any] interface {
	Decodable[T]
	Encodable
}
