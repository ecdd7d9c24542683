package serman

import (
	"bytes"
	"encoding/binary"
	"io"

	"golang.org/x/exp/constraints"
)

// maxPrealloc bounds the buffer allocated up front for a length read off the
// wire. Larger payloads grow as data actually arrives.
const maxPrealloc = 64 << 10

// Reader decodes little-endian wire values from an io.Reader.
// It never reads ahead of the value being decoded, tracks the number of
// bytes consumed and latches the first error. Subsequent reads become no-ops.
type Reader struct {
	r     byteReader
	count int64 // total bytes read
	err   error // first error encountered.
	conv  ErrorFunc
}

// NewReader wraps r. If r is already a *Reader it is returned as is, so
// nested decoders share its count and error state.
func NewReader(r io.Reader) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	if rd, ok := r.(*Reader); ok {
		return rd, nil
	}
	return &Reader{r: asByteReader(r)}, nil
}

// WithErrorFunc installs the conversion applied to stream failures and
// returns the reader for chaining.
func (r *Reader) WithErrorFunc(f ErrorFunc) *Reader {
	r.conv = f
	return r
}

// Read implements the io.Reader interface. A clean io.EOF is passed
// through without being latched.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.r.Read(p)
	r.count += int64(n)
	if err != nil && err != io.EOF {
		r.fail("read", err)
		return n, r.err
	}
	return n, err
}

// ReadByte reads a single byte. Unlike a plain io.ByteReader it reports a
// missing byte as io.ErrUnexpectedEOF, since a byte is always part of a value.
func (r *Reader) ReadByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.fail("read u8", eof(err))
		return 0, r.err
	}
	r.count++
	return b, nil
}

func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }

// Result returns the total bytes read and the final error state.
func (r *Reader) Result() (int64, error) {
	return r.count, r.err
}

// fail records a stream failure; this is the only place it is converted
// into the caller's error type.
func (r *Reader) fail(op string, err error) {
	if r.err != nil {
		return
	}
	ioErr := &IOError{Op: op, Err: err}
	if r.conv != nil {
		if converted := r.conv(ioErr); converted != nil {
			r.err = converted
			return
		}
	}
	r.err = ioErr
}

// invalid records a validity failure. Without an ErrorFunc callers only
// expect I/O-shaped errors, so it is folded into one.
func (r *Reader) invalid(op string, err error) {
	if r.err != nil {
		return
	}
	if r.conv == nil {
		r.err = &IOError{Op: op, Err: err}
		return
	}
	r.err = err
}

func eof(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// readFull fills p or latches an error.
func (r *Reader) readFull(op string, p []byte) bool {
	if r.err != nil {
		return false
	}
	n, err := io.ReadFull(r.r, p)
	r.count += int64(n)
	if err != nil {
		r.fail(op, eof(err))
		return false
	}
	return true
}

// readN reads exactly n bytes into a new slice.
func (r *Reader) readN(op string, n int64) []byte {
	if r.err != nil {
		return nil
	}
	if n <= maxPrealloc {
		buf := make([]byte, n)
		if !r.readFull(op, buf) {
			return nil
		}
		return buf
	}
	var buf bytes.Buffer
	read, err := io.CopyN(&buf, r.r, n)
	r.count += read
	if err != nil {
		r.fail(op, eof(err))
		return nil
	}
	return buf.Bytes()
}

// ReadBytes reads n bytes and returns a new byte slice.
func (r *Reader) ReadBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	return r.readN("read bytes", int64(n))
}

// ReadBytesTo fills dest in a single read.
func (r *Reader) ReadBytesTo(dest []byte) {
	r.readFull("read bytes", dest)
}

// --- Primitive Read Operations ---

// getInt decodes a little-endian integer from b, which holds exactly T's width.
func getInt[T constraints.Integer](b []byte) T {
	switch len(b) {
	case 1:
		return T(b[0])
	case 2:
		return T(binary.LittleEndian.Uint16(b))
	case 4:
		return T(binary.LittleEndian.Uint32(b))
	default:
		return T(binary.LittleEndian.Uint64(b))
	}
}

func readInt[T constraints.Integer](r *Reader, op string, size int, dest *T) {
	var buf [8]byte
	if r.readFull(op, buf[:size]) {
		*dest = getInt[T](buf[:size])
	}
}

// ReadBool reads a 32-bit boolean; any nonzero value is true.
func (r *Reader) ReadBool(dest *bool) {
	var v uint32
	readInt(r, "read bool", 4, &v)
	if r.err == nil {
		*dest = v != 0
	}
}

func (r *Reader) ReadUint8(dest *uint8) {
	b, err := r.ReadByte()
	if err == nil {
		*dest = b
	}
}

func (r *Reader) ReadInt8(dest *int8) {
	b, err := r.ReadByte()
	if err == nil {
		*dest = int8(b)
	}
}

func (r *Reader) ReadUint16(dest *uint16) { readInt(r, "read u16", 2, dest) }
func (r *Reader) ReadInt16(dest *int16)   { readInt(r, "read i16", 2, dest) }
func (r *Reader) ReadUint32(dest *uint32) { readInt(r, "read u32", 4, dest) }
func (r *Reader) ReadInt32(dest *int32)   { readInt(r, "read i32", 4, dest) }
func (r *Reader) ReadUint64(dest *uint64) { readInt(r, "read u64", 8, dest) }
func (r *Reader) ReadInt64(dest *int64)   { readInt(r, "read i64", 8, dest) }
