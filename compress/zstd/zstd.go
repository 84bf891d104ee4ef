// Package zstd implements the ZSTD parquet compression codec using
// klauspost/compress's pure Go implementation.
package zstd

import (
	"github.com/klauspost/compress/zstd"
	"github.com/segmentio/parquet-core/format"
)

const DefaultLevel = int(zstd.SpeedDefault)

type Codec struct {
	// Level selects the compression/speed trade-off, one of the
	// zstd.EncoderLevel values (zstd.SpeedDefault if zero).
	Level int
}

func (c *Codec) String() string { return "ZSTD" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Zstd }

func (c *Codec) level() zstd.EncoderLevel {
	if c.Level == 0 {
		return zstd.SpeedDefault
	}
	return zstd.EncoderLevel(c.Level)
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(c.level()))
	if err != nil {
		return dst, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, dst), nil
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return dst, err
	}
	defer dec.Close()
	return dec.DecodeAll(src, dst)
}
