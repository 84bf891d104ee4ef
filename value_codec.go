package parquet

import (
	"bytes"
	"math"

	"github.com/segmentio/parquet-core/encoding/plain"
)

// ValueCodec is the per-physical-type trait that parameterizes the generic
// column chunk writer and reader, collapsing what would otherwise be a class
// hierarchy of per-type column readers/writers into one generic
// implementation parameterized by a value codec trait. It wraps the
// physical type's PLAIN batch encode/decode and supplies the comparator and
// NaN predicate statistics accumulation needs.
type ValueCodec[T any] interface {
	EncodePlain(dst []byte, values []T) ([]byte, error)
	DecodePlain(dst []T, src []byte, numValues int) ([]T, error)
	Compare(a, b T) int
	IsNaN(v T) bool
}

// BoolCodec returns the value codec for BOOLEAN leaves.
func BoolCodec() ValueCodec[bool] { return boolCodec{} }

// Int32Codec returns the value codec for INT32 leaves.
func Int32Codec() ValueCodec[int32] { return int32Codec{} }

// Int64Codec returns the value codec for INT64 leaves.
func Int64Codec() ValueCodec[int64] { return int64Codec{} }

// Float32Codec returns the value codec for FLOAT leaves.
func Float32Codec() ValueCodec[float32] { return float32Codec{} }

// Float64Codec returns the value codec for DOUBLE leaves.
func Float64Codec() ValueCodec[float64] { return float64Codec{} }

// ByteArrayCodec returns the value codec for BYTE_ARRAY leaves. isUTF8
// enables UTF-8 validation for leaves tagged with the STRING logical type.
func ByteArrayCodec(isUTF8 bool) ValueCodec[[]byte] { return byteArrayCodec{isUTF8: isUTF8} }

// FixedLenByteArrayCodec returns the value codec for FIXED_LEN_BYTE_ARRAY
// leaves of the given size.
func FixedLenByteArrayCodec(size int) ValueCodec[[]byte] { return fixedLenByteArrayCodec{size: size} }

type boolCodec struct{}

func (boolCodec) EncodePlain(dst []byte, v []bool) ([]byte, error) { return plain.EncodeBoolean(dst, v), nil }
func (boolCodec) DecodePlain(dst []bool, src []byte, n int) ([]bool, error) {
	return plain.DecodeBoolean(dst, src, n)
}
func (boolCodec) Compare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}
func (boolCodec) IsNaN(bool) bool { return false }

type int32Codec struct{}

func (int32Codec) EncodePlain(dst []byte, v []int32) ([]byte, error) { return plain.EncodeInt32(dst, v), nil }
func (int32Codec) DecodePlain(dst []int32, src []byte, n int) ([]int32, error) {
	return plain.DecodeInt32(dst, src, n)
}
func (int32Codec) Compare(a, b int32) int { return compareOrdered(a, b) }
func (int32Codec) IsNaN(int32) bool       { return false }

type int64Codec struct{}

func (int64Codec) EncodePlain(dst []byte, v []int64) ([]byte, error) { return plain.EncodeInt64(dst, v), nil }
func (int64Codec) DecodePlain(dst []int64, src []byte, n int) ([]int64, error) {
	return plain.DecodeInt64(dst, src, n)
}
func (int64Codec) Compare(a, b int64) int { return compareOrdered(a, b) }
func (int64Codec) IsNaN(int64) bool       { return false }

type float32Codec struct{}

func (float32Codec) EncodePlain(dst []byte, v []float32) ([]byte, error) { return plain.EncodeFloat(dst, v), nil }
func (float32Codec) DecodePlain(dst []float32, src []byte, n int) ([]float32, error) {
	return plain.DecodeFloat(dst, src, n)
}
func (float32Codec) Compare(a, b float32) int { return compareOrdered(a, b) }
func (float32Codec) IsNaN(v float32) bool     { return math.IsNaN(float64(v)) }

type float64Codec struct{}

func (float64Codec) EncodePlain(dst []byte, v []float64) ([]byte, error) { return plain.EncodeDouble(dst, v), nil }
func (float64Codec) DecodePlain(dst []float64, src []byte, n int) ([]float64, error) {
	return plain.DecodeDouble(dst, src, n)
}
func (float64Codec) Compare(a, b float64) int { return compareOrdered(a, b) }
func (float64Codec) IsNaN(v float64) bool     { return math.IsNaN(v) }

// byteArrayCodec handles both ByteArray and (when tagged string) UTF-8
// validated ByteArray leaves.
type byteArrayCodec struct {
	isUTF8 bool
}

func (c byteArrayCodec) EncodePlain(dst []byte, v [][]byte) ([]byte, error) {
	return plain.EncodeByteArray(dst, v, c.isUTF8)
}
func (c byteArrayCodec) DecodePlain(dst [][]byte, src []byte, n int) ([][]byte, error) {
	return plain.DecodeByteArray(dst, src, n, c.isUTF8)
}
func (byteArrayCodec) Compare(a, b []byte) int { return bytes.Compare(a, b) }
func (byteArrayCodec) IsNaN([]byte) bool       { return false }

type fixedLenByteArrayCodec struct {
	size int
}

func (c fixedLenByteArrayCodec) EncodePlain(dst []byte, v [][]byte) ([]byte, error) {
	return plain.EncodeFixedLenByteArray(dst, v, c.size)
}
func (c fixedLenByteArrayCodec) DecodePlain(dst [][]byte, src []byte, n int) ([][]byte, error) {
	return plain.DecodeFixedLenByteArray(dst, src, n, c.size)
}
func (fixedLenByteArrayCodec) Compare(a, b []byte) int { return bytes.Compare(a, b) }
func (fixedLenByteArrayCodec) IsNaN([]byte) bool       { return false }

func compareOrdered[T int32 | int64 | float32 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
