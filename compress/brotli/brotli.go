// Package brotli implements the BROTLI parquet compression codec.
package brotli

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/segmentio/parquet-core/format"
)

const (
	DefaultQuality = 0
	DefaultLGWin   = 0
)

type Codec struct {
	// Quality controls the compression-speed vs compression-density
	// trade-off. The higher the quality, the slower the compression. Range
	// is 0 to 11.
	Quality int
	// LGWin is the base 2 logarithm of the sliding window size. Range is 10
	// to 24; 0 selects a window automatically based on Quality.
	LGWin int
}

func (c *Codec) String() string { return "BROTLI" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Brotli }

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	w := brotli.NewWriterOptions(buf, brotli.WriterOptions{
		Quality: c.Quality,
		LGWin:   c.LGWin,
	})
	if _, err := w.Write(src); err != nil {
		return dst, err
	}
	if err := w.Close(); err != nil {
		return dst, err
	}
	return buf.Bytes(), nil
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(src))
	buf := bytes.NewBuffer(dst)
	if _, err := buf.ReadFrom(r); err != nil && err != io.EOF {
		return dst, err
	}
	return buf.Bytes(), nil
}
