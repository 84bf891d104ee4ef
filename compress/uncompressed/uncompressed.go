// Package uncompressed implements the UNCOMPRESSED parquet codec: Encode and
// Decode are both identity functions, kept as a Codec so that the column
// chunk writer never has to special-case "no compression configured".
package uncompressed

import "github.com/segmentio/parquet-core/format"

type Codec struct{}

func (c *Codec) String() string { return "UNCOMPRESSED" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Uncompressed }

func (c *Codec) Encode(dst, src []byte) ([]byte, error) { return append(dst, src...), nil }

func (c *Codec) Decode(dst, src []byte) ([]byte, error) { return append(dst, src...), nil }
