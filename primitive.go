package serman

// Primitive wire types. Each reads and writes its natural width in
// little-endian order; Bool occupies a full u32.
type (
	Bool bool
	U8   uint8
	I8   int8
	U16  uint16
	I16  int16
	U32  uint32
	I32  int32
	U64  uint64
	I64  int64
)

var (
	_ Wire[Bool] = Bool(false)
	_ Wire[U8]   = U8(0)
	_ Wire[I8]   = I8(0)
	_ Wire[U16]  = U16(0)
	_ Wire[I16]  = I16(0)
	_ Wire[U32]  = U32(0)
	_ Wire[I32]  = I32(0)
	_ Wire[U64]  = U64(0)
	_ Wire[I64]  = I64(0)
)

func (Bool) Decode(r *Reader) (Bool, error) {
	var v bool
	r.ReadBool(&v)
	return Bool(v), r.Err()
}

func (v Bool) Encode(w *Writer) error {
	w.WriteBool(bool(v))
	return w.Err()
}

func (U8) Decode(r *Reader) (U8, error) {
	var v uint8
	r.ReadUint8(&v)
	return U8(v), r.Err()
}

func (v U8) Encode(w *Writer) error {
	w.WriteUint8(uint8(v))
	return w.Err()
}

func (I8) Decode(r *Reader) (I8, error) {
	var v int8
	r.ReadInt8(&v)
	return I8(v), r.Err()
}

func (v I8) Encode(w *Writer) error {
	w.WriteInt8(int8(v))
	return w.Err()
}

func (U16) Decode(r *Reader) (U16, error) {
	var v uint16
	r.ReadUint16(&v)
	return U16(v), r.Err()
}

func (v U16) Encode(w *Writer) error {
	w.WriteUint16(uint16(v))
	return w.Err()
}

func (I16) Decode(r *Reader) (I16, error) {
	var v int16
	r.ReadInt16(&v)
	return I16(v), r.Err()
}

func (v I16) Encode(w *Writer) error {
	w.WriteInt16(int16(v))
	return w.Err()
}

func (U32) Decode(r *Reader) (U32, error) {
	var v uint32
	r.ReadUint32(&v)
	return U32(v), r.Err()
}

func (v U32) Encode(w *Writer) error {
	w.WriteUint32(uint32(v))
	return w.Err()
}

func (I32) Decode(r *Reader) (I32, error) {
	var v int32
	r.ReadInt32(&v)
	return I32(v), r.Err()
}

func (v I32) Encode(w *Writer) error {
	w.WriteInt32(int32(v))
	return w.Err()
}

func (U64) Decode(r *Reader) (U64, error) {
	var v uint64
	r.ReadUint64(&v)
	return U64(v), r.Err()
}

func (v U64) Encode(w *Writer) error {
	w.WriteUint64(uint64(v))
	return w.Err()
}

func (I64) Decode(r *Reader) (I64, error) {
	var v int64
	r.ReadInt64(&v)
	return I64(v), r.Err()
}

func (v I64) Encode(w *Writer) error {
	w.WriteInt64(int64(v))
	return w.Err()
}
