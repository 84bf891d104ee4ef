// Package lz4 implements the LZ4_RAW parquet compression codec.
package lz4

import (
	"github.com/pierrec/lz4/v4"
	"github.com/segmentio/parquet-core/format"
)

type Level = lz4.CompressionLevel

const (
	Fast   = lz4.Fast
	Level1 = lz4.Level1
	Level2 = lz4.Level2
	Level3 = lz4.Level3
	Level4 = lz4.Level4
	Level5 = lz4.Level5
	Level6 = lz4.Level6
	Level7 = lz4.Level7
	Level8 = lz4.Level8
	Level9 = lz4.Level9
)

const DefaultLevel = Fast

type Codec struct {
	Level Level
}

func (c *Codec) String() string { return "LZ4_RAW" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Lz4Raw }

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	compressor := lz4.CompressorHC{Level: c.Level}
	n := len(dst)
	limit := lz4.CompressBlockBound(len(src))
	dst = append(dst, make([]byte, limit)...)
	size, err := compressor.CompressBlock(src, dst[n:])
	if err != nil {
		return dst[:n], err
	}
	return dst[:n+size], nil
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	n := len(dst)
	size := 4 * len(src)
	if size == 0 {
		size = 64
	}
	var lastErr error
	for attempt := 0; attempt < 16; attempt++ {
		dst = append(dst[:n], make([]byte, size)...)
		written, err := lz4.UncompressBlock(src, dst[n:])
		if err == nil {
			return dst[:n+written], nil
		}
		lastErr = err
		size *= 2
	}
	return dst[:n], lastErr
}
