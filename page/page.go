// Package page implements the data/dictionary page codec: assembling and
// parsing a data page's body as `[rep-level stream][def-level stream]
// [values]`, with optional whole-body block compression, and the
// dictionary page's simpler values-only body.
package page

import (
	"fmt"

	"github.com/segmentio/parquet-core/compress"
	"github.com/segmentio/parquet-core/encoding/rle"
	"github.com/segmentio/parquet-core/format"
)

// Header carries the page metadata fields this core consumes/produces,
// independent of how the Thrift layer frames them on the wire.
type Header struct {
	Type              format.PageType
	UncompressedSize  int
	CompressedSize    int
	NumValues         int
	ValueEncoding     format.Encoding
	Statistics        *format.Statistics
}

// WriteDataPage assembles a data page body and compresses it as a single
// blob when codec is non-nil. repLevels/defLevels are ignored (and may be
// nil) when the corresponding max level is 0.
func WriteDataPage(repLevels, defLevels []uint32, maxRep, maxDef uint32, values []byte, valueEncoding format.Encoding, numValues int, codec compress.Codec) ([]byte, Header, error) {
	var body []byte
	if maxRep > 0 {
		body = rle.EncodeLevelStream(body, repLevels, maxRep)
	}
	if maxDef > 0 {
		body = rle.EncodeLevelStream(body, defLevels, maxDef)
	}
	body = append(body, values...)

	header := Header{
		Type:             format.DataPage,
		UncompressedSize: len(body),
		NumValues:        numValues,
		ValueEncoding:    valueEncoding,
	}

	out := body
	if codec != nil {
		compressed, err := codec.Encode(nil, body)
		if err != nil {
			return nil, Header{}, fmt.Errorf("page: compressing data page: %w", err)
		}
		out = compressed
	}
	header.CompressedSize = len(out)
	return out, header, nil
}

// ReadDataPage reverses WriteDataPage: decompresses the page (if codec is
// non-nil), then peels off the rep-level stream (iff maxRep>0), the
// def-level stream (iff maxDef>0), and returns the remaining bytes as the
// still-encoded values region.
func ReadDataPage(compressed []byte, header Header, maxRep, maxDef uint32, codec compress.Codec) (repLevels, defLevels []uint32, values []byte, err error) {
	body := compressed
	if codec != nil {
		body, err = codec.Decode(nil, compressed)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("page: decompressing data page: %w", err)
		}
	}
	if header.UncompressedSize != 0 && len(body) != header.UncompressedSize {
		return nil, nil, nil, fmt.Errorf("page: header declares %d uncompressed bytes but decompression produced %d", header.UncompressedSize, len(body))
	}

	rest := body
	if maxRep > 0 {
		repLevels, rest, err = rle.DecodeLevelStream(rest, maxRep, header.NumValues)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("page: decoding repetition levels: %w", err)
		}
	} else {
		repLevels = make([]uint32, header.NumValues)
	}

	if maxDef > 0 {
		defLevels, rest, err = rle.DecodeLevelStream(rest, maxDef, header.NumValues)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("page: decoding definition levels: %w", err)
		}
	} else {
		defLevels = make([]uint32, header.NumValues)
	}

	return repLevels, defLevels, rest, nil
}

// WriteDictionaryPage assembles a dictionary page: PLAIN-encoded unique
// values with no level streams, optionally compressed.
func WriteDictionaryPage(values []byte, numValues int, codec compress.Codec) ([]byte, Header, error) {
	header := Header{
		Type:             format.DictionaryPage,
		UncompressedSize: len(values),
		NumValues:        numValues,
		ValueEncoding:    format.Plain,
	}
	out := values
	if codec != nil {
		compressed, err := codec.Encode(nil, values)
		if err != nil {
			return nil, Header{}, fmt.Errorf("page: compressing dictionary page: %w", err)
		}
		out = compressed
	}
	header.CompressedSize = len(out)
	return out, header, nil
}

// ReadDictionaryPage decompresses (if codec is non-nil) and returns a
// dictionary page's raw PLAIN-encoded value bytes.
func ReadDictionaryPage(compressed []byte, header Header, codec compress.Codec) ([]byte, error) {
	if codec == nil {
		return compressed, nil
	}
	values, err := codec.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("page: decompressing dictionary page: %w", err)
	}
	if header.UncompressedSize != 0 && len(values) != header.UncompressedSize {
		return nil, fmt.Errorf("page: header declares %d uncompressed bytes but decompression produced %d", header.UncompressedSize, len(values))
	}
	return values, nil
}
