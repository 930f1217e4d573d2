package bcs

import "errors"

// ErrShortBuffer is returned when input ends before a value is complete.
var ErrShortBuffer = errors.New("bcs: unexpected end of input")

// ErrOverflow is returned when a ULEB128 value does not fit in 64 bits.
var ErrOverflow = errors.New("bcs: uleb128 overflow")

// ReadULEB128 decodes an unsigned LEB128 value from the start of b and
// returns it with the number of bytes consumed.
func ReadULEB128(b []byte) (uint64, int, error) {
	var v uint64
	for i := 0; i < len(b); i++ {
		if i == 10 {
			return 0, 0, ErrOverflow
		}
		c := b[i]
		if i == 9 && c > 1 {
			return 0, 0, ErrOverflow
		}
		v |= uint64(c&0x7f) << (7 * i)
		if c < 0x80 {
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrShortBuffer
}
