package rle

import (
	"encoding/binary"
	"fmt"

	"github.com/segmentio/parquet-core/encoding"
)

// EncodeLevelStream appends a framed level stream ("[4-byte LE length][hybrid
// RLE/bit-packed body]") to dst and returns the extended slice.
// It is a no-op when maxLevel == 0, since such a stream carries no
// information and is omitted from the page body entirely.
func EncodeLevelStream(dst []byte, values []uint32, maxLevel uint32) []byte {
	if maxLevel == 0 {
		return dst
	}
	width := BitWidth(maxLevel)
	lengthOffset := len(dst)
	dst = append(dst, 0, 0, 0, 0)
	dst = Encode(dst, values, width)
	binary.LittleEndian.PutUint32(dst[lengthOffset:], uint32(len(dst)-lengthOffset-4))
	return dst
}

// DecodeLevelStream reads a framed level stream from the front of src,
// returning the decoded levels and the remaining bytes of src. It is a
// no-op returning numValues zeros when maxLevel == 0.
func DecodeLevelStream(src []byte, maxLevel uint32, numValues int) (levels []uint32, rest []byte, err error) {
	if maxLevel == 0 {
		levels = make([]uint32, numValues)
		return levels, src, nil
	}
	if len(src) < 4 {
		return nil, src, fmt.Errorf("%w: level stream length prefix truncated", encoding.ErrTruncated)
	}
	length := binary.LittleEndian.Uint32(src)
	src = src[4:]
	if uint64(length) > uint64(len(src)) {
		return nil, src, fmt.Errorf("%w: level stream body declares %d bytes but only %d remain", encoding.ErrTruncated, length, len(src))
	}
	body := src[:length]
	rest = src[length:]

	width := BitWidth(maxLevel)
	levels, err = Decode(make([]uint32, 0, numValues), body, width, numValues, maxLevel)
	if err != nil {
		return nil, rest, err
	}
	return levels, rest, nil
}
