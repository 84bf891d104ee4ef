package plain_test

import (
	"testing"

	"github.com/segmentio/parquet-core/encoding/plain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooleanRoundTrip(t *testing.T) {
	values := []bool{true, false, false, true, true, true, false, true, true, false, false}
	buf := plain.EncodeBoolean(nil, values)
	decoded, err := plain.DecodeBoolean(nil, buf, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestInt32RoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 1 << 30, -(1 << 30)}
	buf := plain.EncodeInt32(nil, values)
	decoded, err := plain.DecodeInt32(nil, buf, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestInt64RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 1 << 40, -(1 << 40)}
	buf := plain.EncodeInt64(nil, values)
	decoded, err := plain.DecodeInt64(nil, buf, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestFloatRoundTrip(t *testing.T) {
	values := []float32{0, 1.5, -1.5, 3.14159}
	buf := plain.EncodeFloat(nil, values)
	decoded, err := plain.DecodeFloat(nil, buf, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestDoubleRoundTrip(t *testing.T) {
	values := []float64{0, 1.5, -1.5, 3.14159265358979}
	buf := plain.EncodeDouble(nil, values)
	decoded, err := plain.DecodeDouble(nil, buf, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestByteArrayRoundTrip(t *testing.T) {
	values := [][]byte{[]byte("hello"), []byte(""), []byte("world!"), []byte("x")}
	buf, err := plain.EncodeByteArray(nil, values, false)
	require.NoError(t, err)
	decoded, err := plain.DecodeByteArray(nil, buf, len(values), false)
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestByteArrayUTF8Validation(t *testing.T) {
	invalid := [][]byte{{0xff, 0xfe, 0xfd}}
	_, err := plain.EncodeByteArray(nil, invalid, true)
	require.Error(t, err)

	valid := [][]byte{[]byte("héllo wörld")}
	buf, err := plain.EncodeByteArray(nil, valid, true)
	require.NoError(t, err)
	_, err = plain.DecodeByteArray(nil, buf, len(valid), true)
	require.NoError(t, err)
}

func TestByteArrayDecodeRejectsCorruptUTF8(t *testing.T) {
	buf, err := plain.EncodeByteArray(nil, [][]byte{{0xff, 0xfe}}, false)
	require.NoError(t, err)
	_, err = plain.DecodeByteArray(nil, buf, 1, true)
	require.Error(t, err)
}

func TestFixedLenByteArrayRoundTrip(t *testing.T) {
	values := [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}
	buf, err := plain.EncodeFixedLenByteArray(nil, values, 4)
	require.NoError(t, err)
	decoded, err := plain.DecodeFixedLenByteArray(nil, buf, len(values), 4)
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestFixedLenByteArrayRejectsWrongSize(t *testing.T) {
	_, err := plain.EncodeFixedLenByteArray(nil, [][]byte{{1, 2, 3}}, 4)
	require.Error(t, err)
}

func TestDecodeTruncated(t *testing.T) {
	_, err := plain.DecodeInt32(nil, []byte{1, 2, 3}, 1)
	require.Error(t, err)

	_, err = plain.DecodeByteArray(nil, []byte{5, 0, 0, 0, 'a', 'b'}, 1, false)
	require.Error(t, err)
}
