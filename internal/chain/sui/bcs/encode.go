// Package bcs provides minimal BCS (Binary Canonical Serialization) encoding
// for Sui transaction data. Only the shapes needed to build and sign
// programmable transactions are implemented.
package bcs

import (
	"bytes"
	"encoding/binary"
)

// Marshaler is implemented by types that can write themselves as BCS.
type Marshaler interface {
	MarshalBCS(e *Encoder)
}

// Marshal encodes v to BCS bytes.
func Marshal(v Marshaler) []byte {
	e := NewEncoder()
	v.MarshalBCS(e)
	return e.Bytes()
}

// Encoder accumulates BCS output.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded output.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of bytes written.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// U8 writes a single byte.
func (e *Encoder) U8(v uint8) {
	e.buf.WriteByte(v)
}

// Bool writes 0x01 for true and 0x00 for false.
func (e *Encoder) Bool(v bool) {
	if v {
		e.U8(1)
		return
	}
	e.U8(0)
}

// U16 writes a little-endian uint16.
func (e *Encoder) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

// U32 writes a little-endian uint32.
func (e *Encoder) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

// U64 writes a little-endian uint64.
func (e *Encoder) U64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

// ULEB128 writes v as an unsigned LEB128 varint. Sequence lengths and
// enum variant indexes use this form.
func (e *Encoder) ULEB128(v uint64) {
	e.buf.Write(AppendULEB128(nil, v))
}

// Length writes a sequence length prefix.
func (e *Encoder) Length(n int) {
	e.ULEB128(uint64(n)) //nolint:gosec // G115: lengths are non-negative
}

// Variant writes an enum variant index.
func (e *Encoder) Variant(index int) {
	e.Length(index)
}

// Fixed writes b with no length prefix, for fixed-size arrays such as addresses.
func (e *Encoder) Fixed(b []byte) {
	e.buf.Write(b)
}

// ByteVector writes b as a length-prefixed byte vector.
func (e *Encoder) ByteVector(b []byte) {
	e.Length(len(b))
	e.buf.Write(b)
}

// String writes s as a length-prefixed UTF-8 byte vector.
func (e *Encoder) String(s string) {
	e.ByteVector([]byte(s))
}

// OptionNone writes an empty option.
func (e *Encoder) OptionNone() {
	e.U8(0)
}

// OptionSome writes the option tag for a present value. The caller writes
// the value next.
func (e *Encoder) OptionSome() {
	e.U8(1)
}

// Sequence writes a length prefix followed by each item.
func Sequence[T Marshaler](e *Encoder, items []T) {
	e.Length(len(items))
	for _, item := range items {
		item.MarshalBCS(e)
	}
}

// AppendULEB128 appends the ULEB128 encoding of v to dst.
func AppendULEB128(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// U64Bytes returns the BCS encoding of a single uint64.
func U64Bytes(v uint64) []byte {
	e := NewEncoder()
	e.U64(v)
	return e.Bytes()
}
