// Package snappy implements the SNAPPY parquet compression codec.
//
// Parquet requires the raw snappy block format rather than the framed
// stream format, so Encode/Decode call snappy.Encode/snappy.Decode directly
// instead of going through a streaming reader/writer.
package snappy

import (
	"github.com/golang/snappy"
	"github.com/segmentio/parquet-core/format"
)

type Codec struct{}

func (c *Codec) String() string { return "SNAPPY" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Snappy }

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	n := len(dst)
	dst = append(dst, make([]byte, snappy.MaxEncodedLen(len(src)))...)
	encoded := snappy.Encode(dst[n:], src)
	return dst[:n+len(encoded)], nil
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return dst, err
	}
	i := len(dst)
	dst = append(dst, make([]byte, n)...)
	decoded, err := snappy.Decode(dst[i:], src)
	if err != nil {
		return dst, err
	}
	return dst[:i+len(decoded)], nil
}
