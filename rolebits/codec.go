package rolebits

import (
	"encoding/binary"
	"errors"
)

// ErrInvalidMaskEncoding is returned by DecodeMask for payloads that are not
// exactly four bytes.
var ErrInvalidMaskEncoding = errors.New("invalid mask encoding")

// EncodeMask serializes a mask as 4 bytes big-endian for durable storage.
func EncodeMask(m Mask) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(m))
	return buf
}

// DecodeMask deserializes a mask produced by [EncodeMask].
func DecodeMask(data []byte) (Mask, error) {
	if len(data) != 4 {
		return 0, ErrInvalidMaskEncoding
	}
	return Mask(binary.BigEndian.Uint32(data)), nil
}
