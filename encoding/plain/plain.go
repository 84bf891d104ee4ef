// Package plain implements the PLAIN value encoding: fixed-width
// little-endian encodings for the numeric physical types, a
// length-prefixed framing for BYTE_ARRAY, and raw fixed-size bytes with no
// prefix for FIXED_LEN_BYTE_ARRAY.
//
// Every function here operates on a flat, non-null slice of values — the
// caller (column chunk writer/reader) is responsible for peeling definition
// and repetition levels off first and only ever handing this package the
// present, non-null values for a page.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#plain-plain--0
package plain

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/segmentio/parquet-core/encoding"
)

// EncodeBoolean packs src LSB-first, 8 values per byte, per the PLAIN spec
// for BOOLEAN (distinct from the level codec's bit-packing, which groups by
// 8 values per run rather than flattening an entire page into one packed
// region).
func EncodeBoolean(dst []byte, src []bool) []byte {
	n := (len(src) + 7) / 8
	offset := len(dst)
	dst = append(dst, make([]byte, n)...)
	for i, v := range src {
		if v {
			dst[offset+i/8] |= 1 << uint(i%8)
		}
	}
	return dst
}

func DecodeBoolean(dst []bool, src []byte, numValues int) ([]bool, error) {
	if len(src) < (numValues+7)/8 {
		return nil, fmt.Errorf("%w: boolean page declares %d values but only %d bytes remain", encoding.ErrTruncated, numValues, len(src))
	}
	for i := 0; i < numValues; i++ {
		dst = append(dst, src[i/8]&(1<<uint(i%8)) != 0)
	}
	return dst, nil
}

func EncodeInt32(dst []byte, src []int32) []byte {
	offset := len(dst)
	dst = append(dst, make([]byte, 4*len(src))...)
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[offset+4*i:], uint32(v))
	}
	return dst
}

func DecodeInt32(dst []int32, src []byte, numValues int) ([]int32, error) {
	if len(src) < 4*numValues {
		return nil, fmt.Errorf("%w: int32 page declares %d values but only %d bytes remain", encoding.ErrTruncated, numValues, len(src))
	}
	for i := 0; i < numValues; i++ {
		dst = append(dst, int32(binary.LittleEndian.Uint32(src[4*i:])))
	}
	return dst, nil
}

func EncodeInt64(dst []byte, src []int64) []byte {
	offset := len(dst)
	dst = append(dst, make([]byte, 8*len(src))...)
	for i, v := range src {
		binary.LittleEndian.PutUint64(dst[offset+8*i:], uint64(v))
	}
	return dst
}

func DecodeInt64(dst []int64, src []byte, numValues int) ([]int64, error) {
	if len(src) < 8*numValues {
		return nil, fmt.Errorf("%w: int64 page declares %d values but only %d bytes remain", encoding.ErrTruncated, numValues, len(src))
	}
	for i := 0; i < numValues; i++ {
		dst = append(dst, int64(binary.LittleEndian.Uint64(src[8*i:])))
	}
	return dst, nil
}

// EncodeInt96 encodes the legacy 12-byte INT96 physical type, kept only for
// reading older files; nothing in this module writes it.
func EncodeInt96(dst []byte, src [][12]byte) []byte {
	for _, v := range src {
		dst = append(dst, v[:]...)
	}
	return dst
}

func DecodeInt96(dst [][12]byte, src []byte, numValues int) ([][12]byte, error) {
	if len(src) < 12*numValues {
		return nil, fmt.Errorf("%w: int96 page declares %d values but only %d bytes remain", encoding.ErrTruncated, numValues, len(src))
	}
	for i := 0; i < numValues; i++ {
		var v [12]byte
		copy(v[:], src[12*i:12*i+12])
		dst = append(dst, v)
	}
	return dst, nil
}

func EncodeFloat(dst []byte, src []float32) []byte {
	offset := len(dst)
	dst = append(dst, make([]byte, 4*len(src))...)
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[offset+4*i:], math.Float32bits(v))
	}
	return dst
}

func DecodeFloat(dst []float32, src []byte, numValues int) ([]float32, error) {
	if len(src) < 4*numValues {
		return nil, fmt.Errorf("%w: float page declares %d values but only %d bytes remain", encoding.ErrTruncated, numValues, len(src))
	}
	for i := 0; i < numValues; i++ {
		dst = append(dst, math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:])))
	}
	return dst, nil
}

func EncodeDouble(dst []byte, src []float64) []byte {
	offset := len(dst)
	dst = append(dst, make([]byte, 8*len(src))...)
	for i, v := range src {
		binary.LittleEndian.PutUint64(dst[offset+8*i:], math.Float64bits(v))
	}
	return dst
}

func DecodeDouble(dst []float64, src []byte, numValues int) ([]float64, error) {
	if len(src) < 8*numValues {
		return nil, fmt.Errorf("%w: double page declares %d values but only %d bytes remain", encoding.ErrTruncated, numValues, len(src))
	}
	for i := 0; i < numValues; i++ {
		dst = append(dst, math.Float64frombits(binary.LittleEndian.Uint64(src[8*i:])))
	}
	return dst, nil
}

// EncodeByteArray appends each value as a 4-byte little-endian length prefix
// followed by its raw bytes. isUTF8 requests validation that every value is
// well-formed UTF-8, the requirement for string-tagged columns.
func EncodeByteArray(dst []byte, src [][]byte, isUTF8 bool) ([]byte, error) {
	for _, v := range src {
		if isUTF8 && !utf8.Valid(v) {
			return nil, fmt.Errorf("%w: value %q is not valid UTF-8", encoding.ErrInvalidUTF8, v)
		}
		var length [4]byte
		binary.LittleEndian.PutUint32(length[:], uint32(len(v)))
		dst = append(dst, length[:]...)
		dst = append(dst, v...)
	}
	return dst, nil
}

// DecodeByteArray reads numValues length-prefixed byte arrays from src,
// appending views into src (no copy) to dst.
func DecodeByteArray(dst [][]byte, src []byte, numValues int, isUTF8 bool) ([][]byte, error) {
	offset := 0
	for i := 0; i < numValues; i++ {
		if offset+4 > len(src) {
			return nil, fmt.Errorf("%w: byte array %d/%d missing its length prefix", encoding.ErrTruncated, i, numValues)
		}
		length := binary.LittleEndian.Uint32(src[offset:])
		offset += 4
		if uint64(offset)+uint64(length) > uint64(len(src)) {
			return nil, fmt.Errorf("%w: byte array %d/%d declares %d bytes but only %d remain", encoding.ErrTruncated, i, numValues, length, len(src)-offset)
		}
		v := src[offset : offset+int(length)]
		offset += int(length)
		if isUTF8 && !utf8.Valid(v) {
			return nil, fmt.Errorf("%w: value %q is not valid UTF-8", encoding.ErrInvalidUTF8, v)
		}
		dst = append(dst, v)
	}
	return dst, nil
}

// EncodeFixedLenByteArray appends each value's raw bytes with no length
// prefix; every value must already have the declared type length.
func EncodeFixedLenByteArray(dst []byte, src [][]byte, size int) ([]byte, error) {
	for i, v := range src {
		if len(v) != size {
			return nil, fmt.Errorf("fixed-length byte array %d has length %d, want %d", i, len(v), size)
		}
		dst = append(dst, v...)
	}
	return dst, nil
}

func DecodeFixedLenByteArray(dst [][]byte, src []byte, numValues, size int) ([][]byte, error) {
	if len(src) < size*numValues {
		return nil, fmt.Errorf("%w: fixed-length byte array page declares %d values of size %d but only %d bytes remain", encoding.ErrTruncated, numValues, size, len(src))
	}
	for i := 0; i < numValues; i++ {
		dst = append(dst, src[size*i:size*(i+1)])
	}
	return dst, nil
}
