package serman

import "io"

type (
	byteReader interface {
		io.Reader
		io.ByteReader
	}
	byteWriter interface {
		io.Writer
		io.ByteWriter
		io.StringWriter
	}
	flusher interface {
		Flush() error
	}

	readerAdapter struct {
		io.Reader
		b [1]byte
	}
	writerAdapter struct {
		io.Writer
		b [1]byte
	}
)

// asByteReader returns r itself when it already reads single bytes
// (bytes.Reader, bytes.Buffer, bufio.Reader, BytesReader).
func asByteReader(r io.Reader) byteReader {
	if br, ok := r.(byteReader); ok {
		return br
	}
	return &readerAdapter{Reader: r}
}

func asByteWriter(w io.Writer) byteWriter {
	if bw, ok := w.(byteWriter); ok {
		return bw
	}
	return &writerAdapter{Writer: w}
}

// ReadByte reads exactly one byte without any read-ahead.
func (a *readerAdapter) ReadByte() (byte, error) {
	if _, err := io.ReadFull(a.Reader, a.b[:]); err != nil {
		return 0, err
	}
	return a.b[0], nil
}

func (a *writerAdapter) WriteByte(c byte) error {
	a.b[0] = c
	n, err := a.Writer.Write(a.b[:])
	if err == nil && n != 1 {
		return io.ErrShortWrite
	}
	return err
}

func (a *writerAdapter) WriteString(s string) (int, error) {
	return a.Writer.Write([]byte(s))
}
