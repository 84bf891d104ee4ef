// Package encoding provides the generic errors shared by the level and value
// codec implementations in its sub-packages (encoding/rle, encoding/plain).
//
// Unlike the streaming Encoder/Decoder abstraction used elsewhere in the
// parquet ecosystem, the codecs in this module operate directly on byte
// slices: a page's uncompressed body is small enough (bounded by the
// configured page size) that there is no benefit to an io.Reader/io.Writer
// indirection, and working on slices keeps the Dremel core free of the
// sync.Pool bookkeeping a streaming encoder would otherwise need.
package encoding

import "errors"

var (
	// ErrTruncated is returned when a decoder reaches the end of its input
	// before producing the number of values it was asked for.
	ErrTruncated = errors.New("encoding: truncated input")

	// ErrInvalidVarint is returned when a run header's varint is not
	// terminated within the bytes available.
	ErrInvalidVarint = errors.New("encoding: invalid varint")

	// ErrInvalidUTF8 is returned when a byte array tagged as a UTF-8 string
	// contains an invalid encoding.
	ErrInvalidUTF8 = errors.New("encoding: invalid UTF-8")
)
