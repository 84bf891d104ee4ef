package parquet

import (
	"github.com/segmentio/parquet-core/compress"
	"github.com/segmentio/parquet-core/compress/brotli"
	"github.com/segmentio/parquet-core/compress/gzip"
	"github.com/segmentio/parquet-core/compress/lz4"
	"github.com/segmentio/parquet-core/compress/snappy"
	"github.com/segmentio/parquet-core/compress/uncompressed"
	"github.com/segmentio/parquet-core/compress/zstd"
	"github.com/segmentio/parquet-core/format"
)

var (
	// Uncompressed represents the absence of block compression.
	Uncompressed uncompressed.Codec

	// Snappy is the SNAPPY parquet compression codec.
	Snappy snappy.Codec

	// Gzip is the GZIP parquet compression codec.
	Gzip = gzip.Codec{Level: gzip.DefaultCompression}

	// Brotli is the BROTLI parquet compression codec.
	Brotli = brotli.Codec{Quality: brotli.DefaultQuality, LGWin: brotli.DefaultLGWin}

	// Zstd is the ZSTD parquet compression codec.
	Zstd = zstd.Codec{Level: zstd.DefaultLevel}

	// Lz4Raw is the LZ4_RAW parquet compression codec.
	Lz4Raw = lz4.Codec{Level: lz4.DefaultLevel}

	// compressionCodecs is indexed by the codec's code in the parquet format,
	// mirroring the page codec's injected byte-in/byte-out interface.
	compressionCodecs = [...]compress.Codec{
		format.Uncompressed: &Uncompressed,
		format.Snappy:       &Snappy,
		format.Gzip:         &Gzip,
		format.Brotli:       &Brotli,
		format.Zstd:         &Zstd,
		format.Lz4Raw:       &Lz4Raw,
	}
)

// LookupCompressionCodec returns the Codec registered for the given parquet
// compression code, or an error if the code is not one this core supports.
func LookupCompressionCodec(codec format.CompressionCodec) (compress.Codec, error) {
	if codec >= 0 && int(codec) < len(compressionCodecs) {
		if c := compressionCodecs[codec]; c != nil {
			return c, nil
		}
	}
	return nil, notSupportedf("compression codec %d", codec)
}
