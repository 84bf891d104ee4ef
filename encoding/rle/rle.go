// Package rle implements the hybrid RLE/bit-packed framing used to store
// definition levels, repetition levels, and dictionary indices.
//
// A body is a concatenation of runs, each introduced by an unsigned varint
// header: "(count<<1)|0" for an RLE run of count repeated values followed by
// the packed value in ceil(width/8) little-endian bytes, or "(groups<<1)|1"
// for groups of 8 bit-packed values followed by groups*width bytes, values
// packed LSB-first within each byte. Framing a body inside a page (the
// 4-byte length prefix) is the page codec's concern, not this package's; Encode
// and Decode here only ever see/produce the run body itself.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#run-length-encoding--bit-packing-hybrid-rle--3
package rle

import (
	"encoding/binary"
	"fmt"

	"github.com/segmentio/parquet-core/encoding"
)

// minRepeat is the run length at which the encoder switches from bit-packed
// groups to an RLE run.
const minRepeat = 8

// BitWidth returns the number of bits needed to represent any level up to
// and including maxLevel. It is 0 iff maxLevel == 0, the only case in which
// a level stream is omitted entirely.
func BitWidth(maxLevel uint32) uint {
	if maxLevel == 0 {
		return 0
	}
	width := uint(1)
	for (uint64(1) << width) <= uint64(maxLevel) {
		width++
	}
	return width
}

func byteWidth(width uint) int { return int((width + 7) / 8) }

// Encode appends the hybrid RLE/bit-packed encoding of values to dst and
// returns the extended slice. width must equal BitWidth of the stream's
// declared maximum level; every value in values must be <= the bit mask
// implied by width (the caller, which already validated def/rep levels
// against max_def/max_rep, is responsible for that invariant).
func Encode(dst []byte, values []uint32, width uint) []byte {
	if width == 0 || len(values) == 0 {
		return dst
	}

	i := 0
	for i < len(values) {
		j := i + 1
		for j < len(values) && values[j] == values[i] {
			j++
		}
		runLength := j - i

		if runLength >= minRepeat {
			dst = appendUvarint(dst, uint64(runLength)<<1)
			dst = appendPackedValue(dst, values[i], width)
			i = j
			continue
		}

		// Accumulate a bit-packed region up to the next run long enough to
		// be worth switching to RLE for, then widen it to whole 8-value
		// groups (or to the end of the input) so the zero padding of its last
		// group is never read back as values.
		k := i
		for k < len(values) {
			m := k + 1
			for m < len(values) && values[m] == values[k] {
				m++
			}
			if m-k >= minRepeat {
				break
			}
			k = m
		}
		if k < len(values) && (k-i)%8 != 0 {
			k = i + (k-i+7)/8*8
			if k > len(values) {
				k = len(values)
			}
		}

		region := values[i:k]
		groups := (len(region) + 7) / 8
		dst = appendUvarint(dst, uint64(groups)<<1|1)
		dst = packBits(dst, region, width, groups*8)
		i = k
	}

	return dst
}

// Decode reads exactly numValues values encoded by Encode from src, using
// the same width, and appends them to dst. Fewer or more than numValues
// values available in src is a fatal decode error, as is a run extending
// past the end of src or a decoded value exceeding maxLevel.
func Decode(dst []uint32, src []byte, width uint, numValues int, maxLevel uint32) ([]uint32, error) {
	if width == 0 {
		for i := 0; i < numValues; i++ {
			dst = append(dst, 0)
		}
		return dst, nil
	}

	remaining := numValues
	offset := 0

	for remaining > 0 {
		if offset >= len(src) {
			return dst, fmt.Errorf("%w: need %d more level(s), input exhausted", encoding.ErrTruncated, remaining)
		}

		header, n := binary.Uvarint(src[offset:])
		if n <= 0 {
			return dst, encoding.ErrInvalidVarint
		}
		offset += n

		count := header >> 1
		if header&1 == 0 {
			// RLE run.
			bw := byteWidth(width)
			if offset+bw > len(src) {
				return dst, fmt.Errorf("%w: RLE run header declares a value past the end of the body", encoding.ErrTruncated)
			}
			value := readPackedValue(src[offset:offset+bw], width)
			offset += bw
			if value > maxLevel {
				return dst, fmt.Errorf("level %d exceeds maximum %d", value, maxLevel)
			}
			if count > uint64(remaining) {
				return dst, fmt.Errorf("RLE run of %d values exceeds the %d still expected", count, remaining)
			}
			n := int(count)
			for i := 0; i < n; i++ {
				dst = append(dst, value)
			}
			remaining -= n
		} else {
			// Bit-packed run of count groups of 8 values.
			groups := int(count)
			n := groups * 8
			if n-remaining >= 8 {
				return dst, fmt.Errorf("bit-packed run of %d groups exceeds the %d values still expected", groups, remaining)
			}
			byteLen := groups * int(width)
			if offset+byteLen > len(src) {
				return dst, fmt.Errorf("%w: bit-packed run of %d groups extends past the end of the body", encoding.ErrTruncated, groups)
			}
			values, err := unpackBits(src[offset:offset+byteLen], width, n)
			if err != nil {
				return dst, err
			}
			offset += byteLen
			take := n
			if take > remaining {
				take = remaining
			}
			for i := 0; i < take; i++ {
				if values[i] > maxLevel {
					return dst, fmt.Errorf("level %d exceeds maximum %d", values[i], maxLevel)
				}
				dst = append(dst, values[i])
			}
			remaining -= take
		}
	}

	if offset != len(src) {
		return dst, fmt.Errorf("%d byte(s) left over after %d values", len(src)-offset, numValues)
	}
	return dst, nil
}

func appendUvarint(dst []byte, v uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return append(dst, buf[:n]...)
}

func appendPackedValue(dst []byte, value uint32, width uint) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	return append(dst, buf[:byteWidth(width)]...)
}

func readPackedValue(data []byte, width uint) uint32 {
	var buf [4]byte
	copy(buf[:], data)
	return binary.LittleEndian.Uint32(buf[:])
}

// packBits packs count values (region padded with zeros if shorter than
// count) at width bits each, LSB-first within each byte, appending to dst.
func packBits(dst []byte, region []uint32, width uint, count int) []byte {
	var acc uint64
	var nbits uint
	mask := uint64(1)<<width - 1

	emit := func(i int) {
		var v uint64
		if i < len(region) {
			v = uint64(region[i]) & mask
		}
		acc |= v << nbits
		nbits += width
		for nbits >= 8 {
			dst = append(dst, byte(acc))
			acc >>= 8
			nbits -= 8
		}
	}
	for i := 0; i < count; i++ {
		emit(i)
	}
	if nbits > 0 {
		dst = append(dst, byte(acc))
	}
	return dst
}

func unpackBits(data []byte, width uint, count int) ([]uint32, error) {
	values := make([]uint32, 0, count)
	mask := uint64(1)<<width - 1

	var acc uint64
	var nbits uint
	bi := 0

	for i := 0; i < count; i++ {
		for nbits < width {
			if bi >= len(data) {
				return nil, fmt.Errorf("%w: bit-packed value truncated", encoding.ErrTruncated)
			}
			acc |= uint64(data[bi]) << nbits
			bi++
			nbits += 8
		}
		values = append(values, uint32(acc&mask))
		acc >>= width
		nbits -= width
	}

	return values, nil
}
