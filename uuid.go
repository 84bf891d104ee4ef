package parquet

import (
	"bytes"

	"github.com/google/uuid"
)

// uuidCodec implements ValueCodec[uuid.UUID] for leaves of the UUID logical
// type (schema.UUIDLogical): the physical encoding is a 16-byte
// FixedLenByteArray holding the UUID's raw bytes.
type uuidCodec struct{}

// UUIDCodec returns the value codec for UUID-logical-type leaves, so
// ColumnChunkWriter[uuid.UUID]/ColumnChunkReader[uuid.UUID] can be
// instantiated directly against uuid.UUID values instead of raw [16]byte.
func UUIDCodec() ValueCodec[uuid.UUID] { return uuidCodec{} }

func (uuidCodec) EncodePlain(dst []byte, values []uuid.UUID) ([]byte, error) {
	for _, v := range values {
		dst = append(dst, v[:]...)
	}
	return dst, nil
}

func (uuidCodec) DecodePlain(dst []uuid.UUID, src []byte, numValues int) ([]uuid.UUID, error) {
	if len(src) != numValues*16 {
		return nil, malformedf(int64(len(src)), "uuid value stream has %d bytes, want %d for %d values", len(src), numValues*16, numValues)
	}
	for i := 0; i < numValues; i++ {
		var u uuid.UUID
		copy(u[:], src[i*16:(i+1)*16])
		dst = append(dst, u)
	}
	return dst, nil
}

func (uuidCodec) Compare(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) }
func (uuidCodec) IsNaN(uuid.UUID) bool       { return false }
