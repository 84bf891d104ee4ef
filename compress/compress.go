// Package compress provides the generic APIs implemented by parquet
// compression codecs.
//
// The Dremel core treats compression purely as a byte-in/byte-out codec: it
// concatenates a page's level streams and value stream into one
// uncompressed body and, if a codec is configured, hands that body to
// Encode/Decode as a whole. Nothing upstream of this package knows the
// codec's internals.
//
// https://github.com/apache/parquet-format/blob/master/Compression.md
package compress

import (
	"github.com/segmentio/parquet-core/format"
)

// Codec is implemented by the compress sub-packages. Implementations must be
// safe to use concurrently from multiple goroutines.
type Codec interface {
	// String returns a human-readable name for the codec.
	String() string

	// CompressionCodec returns the code of the codec in the parquet format.
	CompressionCodec() format.CompressionCodec

	// Encode appends the compressed form of src to dst and returns the
	// extended slice.
	Encode(dst, src []byte) ([]byte, error)

	// Decode appends the decompressed form of src to dst and returns the
	// extended slice.
	Decode(dst, src []byte) ([]byte, error)
}
