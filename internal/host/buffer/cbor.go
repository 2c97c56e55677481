package buffer

import (
	"github.com/Cyclone1070/hostos/internal/codec"
)

// MarshalCBOR encodes the buffer as a CBOR byte string. An empty buffer
// encodes as an empty byte string, never as null.
func (b Buffer) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(b.Bytes())
}

// UnmarshalCBOR decodes a CBOR byte string. A CBOR null yields an empty
// buffer.
func (b *Buffer) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := codec.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.data = clone(raw)
	return nil
}
