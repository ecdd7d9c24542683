package serman

import (
	"encoding/binary"
	"io"

	"golang.org/x/exp/constraints"
)

// Writer encodes little-endian wire values to an io.Writer.
// It does no buffering of its own and tracks the first error that occurs.
// After an error, all subsequent write operations become no-ops.
type Writer struct {
	w     byteWriter
	count int64 // total bytes written
	err   error // first error encountered. Subsequent writes become no-ops.
	conv  ErrorFunc
}

// NewWriter wraps w. If w is already a *Writer it is returned as is.
func NewWriter(w io.Writer) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}
	if wr, ok := w.(*Writer); ok {
		return wr, nil
	}
	return &Writer{w: asByteWriter(w)}, nil
}

// WithErrorFunc installs the conversion applied to stream failures and
// returns the writer for chaining.
func (w *Writer) WithErrorFunc(f ErrorFunc) *Writer {
	w.conv = f
	return w
}

// Write implements the io.Writer interface.
func (w *Writer) Write(buf []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n := w.write("write", buf)
	return n, w.err
}

// WriteByte implements the io.ByteWriter interface.
func (w *Writer) WriteByte(v byte) error {
	if w.err != nil {
		return w.err
	}
	if err := w.w.WriteByte(v); err != nil {
		w.fail("write u8", err)
		return w.err
	}
	w.count++
	return nil
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

// Flush flushes the underlying writer when it buffers (e.g. *bufio.Writer).
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if f, ok := w.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			w.fail("flush", err)
		}
	}
	return w.err
}

// Result flushes the underlying writer and returns the final count and error state.
func (w *Writer) Result() (int64, error) {
	w.Flush()
	return w.count, w.err
}

// fail records the first stream failure, converted by the ErrorFunc if any.
func (w *Writer) fail(op string, err error) {
	if w.err != nil {
		return
	}
	ioErr := &IOError{Op: op, Err: err}
	if w.conv != nil {
		if converted := w.conv(ioErr); converted != nil {
			w.err = converted
			return
		}
	}
	w.err = ioErr
}

// setError latches a non-I/O error as is.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *Writer) write(op string, p []byte) int {
	if w.err != nil || len(p) == 0 {
		return 0
	}
	n, err := w.w.Write(p)
	if n < 0 || n > len(p) {
		w.fail(op, ErrInvalidWrite)
		return 0
	}
	w.count += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.fail(op, err)
	}
	return n
}

// WriteBytes writes a byte slice with no length prefix.
func (w *Writer) WriteBytes(buf []byte) {
	w.write("write bytes", buf)
}

// --- Primitive Write Operations ---

// putInt encodes v little-endian into b, which holds exactly T's width.
func putInt[T constraints.Integer](b []byte, v T) {
	switch len(b) {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	default:
		binary.LittleEndian.PutUint64(b, uint64(v))
	}
}

func writeInt[T constraints.Integer](w *Writer, op string, size int, v T) {
	if w.err != nil {
		return
	}
	var buf [8]byte
	putInt(buf[:size], v)
	w.write(op, buf[:size])
}

// WriteBool writes a 32-bit boolean, 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	var u uint32
	if v {
		u = 1
	}
	writeInt(w, "write bool", 4, u)
}

func (w *Writer) WriteUint8(v uint8) { _ = w.WriteByte(v) }
func (w *Writer) WriteInt8(v int8)   { _ = w.WriteByte(uint8(v)) }

func (w *Writer) WriteUint16(v uint16) { writeInt(w, "write u16", 2, v) }
func (w *Writer) WriteInt16(v int16)   { writeInt(w, "write i16", 2, v) }
func (w *Writer) WriteUint32(v uint32) { writeInt(w, "write u32", 4, v) }
func (w *Writer) WriteInt32(v int32)   { writeInt(w, "write i32", 4, v) }
func (w *Writer) WriteUint64(v uint64) { writeInt(w, "write u64", 8, v) }
func (w *Writer) WriteInt64(v int64)   { writeInt(w, "write i64", 8, v) }
