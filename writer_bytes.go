package serman

import "io"

// BytesWriter is an io.Writer that writes to a pre-allocated byte slice.
// It will not grow the slice's capacity. If a write exceeds the available space,
// it writes as much as it can and returns io.ErrShortWrite.
type BytesWriter struct {
	B []byte // destination slice
	N int    // current write position
}

// NewBytesWriter creates a new BytesWriter.
func NewBytesWriter(p []byte) *BytesWriter {
	return &BytesWriter{B: p[:cap(p)]}
}

// Write implements the io.Writer interface.
func (w *BytesWriter) Write(p []byte) (int, error) {
	n := copy(w.B[w.N:], p)
	w.N += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// WriteString implements the io.StringWriter interface for efficiency.
func (w *BytesWriter) WriteString(s string) (int, error) {
	n := copy(w.B[w.N:], s)
	w.N += n
	if n < len(s) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// WriteByte implements the io.ByteWriter interface for efficiency.
func (w *BytesWriter) WriteByte(c byte) error {
	if w.N >= len(w.B) {
		return io.ErrShortWrite
	}
	w.B[w.N] = c
	w.N++
	return nil
}

// Reset allows the underlying byte slice to be reused.
func (w *BytesWriter) Reset() { w.N = 0 }

// Len returns the number of bytes written.
func (w *BytesWriter) Len() int { return w.N }

// Available returns the number of bytes available for writing.
func (w *BytesWriter) Available() int { return len(w.B) - w.N }

// Bytes returns a slice view of the written data.
func (w *BytesWriter) Bytes() []byte { return w.B[:w.N] }
