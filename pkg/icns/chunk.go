package icns

import (
	"encoding/binary"
	"fmt"
	"math"

	icnserrors "github.com/provide-io/icns-go/pkg/icns/errors"
)

// chunkHeaderSize is the OSType tag plus the big-endian length field.
// The length field counts itself and the tag.
const chunkHeaderSize = 8

// Chunk is one TLV entry in the container: a 4-byte type tag, a big-endian
// uint32 length that includes the 8-byte header, and the payload.
type Chunk struct {
	Type    Type
	Payload []byte
}

// NewChunk wraps a payload for a type code. Fails with ErrPayloadTooLarge
// when the chunk length would not fit the 32-bit length field.
func NewChunk(code Type, payload []byte) (Chunk, error) {
	if uint64(len(payload))+chunkHeaderSize > math.MaxUint32 {
		return Chunk{}, fmt.Errorf("%w: %q payload of %d bytes",
			icnserrors.ErrPayloadTooLarge, string(code), len(payload))
	}
	return Chunk{Type: code, Payload: payload}, nil
}

// Len returns the chunk length as written on the wire: header + payload.
func (c Chunk) Len() uint32 {
	return uint32(chunkHeaderSize + len(c.Payload))
}

// Encode serializes the chunk.
func (c Chunk) Encode() []byte {
	buf := make([]byte, c.Len())
	tag := c.Type.OSType()
	copy(buf[0:4], tag[:])
	binary.BigEndian.PutUint32(buf[4:8], c.Len())
	copy(buf[8:], c.Payload)
	return buf
}

// parseChunk reads one chunk from the front of data, returning it and the
// remainder. Used by the assembler's own tests to walk emitted containers;
// full ICNS reading is deliberately not part of this package's surface.
func parseChunk(data []byte) (Chunk, []byte, error) {
	if len(data) < chunkHeaderSize {
		return Chunk{}, nil, fmt.Errorf("truncated chunk header: %d bytes", len(data))
	}
	length := binary.BigEndian.Uint32(data[4:8])
	if length < chunkHeaderSize || uint64(length) > uint64(len(data)) {
		return Chunk{}, nil, fmt.Errorf("chunk length %d exceeds remaining %d bytes", length, len(data))
	}
	return Chunk{
		Type:    Type(data[0:4]),
		Payload: data[chunkHeaderSize:length],
	}, data[length:], nil
}
