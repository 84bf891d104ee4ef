package rle_test

import (
	"testing"

	"github.com/segmentio/parquet-core/encoding/rle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitWidth(t *testing.T) {
	assert.Equal(t, uint(0), rle.BitWidth(0))
	assert.Equal(t, uint(1), rle.BitWidth(1))
	assert.Equal(t, uint(2), rle.BitWidth(2))
	assert.Equal(t, uint(2), rle.BitWidth(3))
	assert.Equal(t, uint(3), rle.BitWidth(4))
	assert.Equal(t, uint(8), rle.BitWidth(255))
	assert.Equal(t, uint(9), rle.BitWidth(256))
}

func roundTrip(t *testing.T, values []uint32, maxLevel uint32) {
	t.Helper()
	width := rle.BitWidth(maxLevel)
	body := rle.Encode(nil, values, width)
	decoded, err := rle.Decode(nil, body, width, len(values), maxLevel)
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestRoundTripAllRLE(t *testing.T) {
	values := make([]uint32, 100)
	for i := range values {
		values[i] = 1
	}
	roundTrip(t, values, 1)
}

func TestRoundTripAllBitPacked(t *testing.T) {
	values := []uint32{0, 1, 2, 0, 1, 2, 0, 1, 2, 0}
	roundTrip(t, values, 2)
}

func TestRoundTripExactlyEightEquals(t *testing.T) {
	// The minimum run length boundary: exactly 8 equal elements should
	// still round-trip whether the encoder picks RLE or bit-packing for it.
	values := make([]uint32, 8)
	for i := range values {
		values[i] = 3
	}
	roundTrip(t, values, 3)
}

func TestRoundTripMixed(t *testing.T) {
	values := []uint32{5, 5, 5, 5, 5, 5, 5, 5, 5, 1, 2, 3, 1, 2, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	roundTrip(t, values, 5)
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil, 3)
}

func TestRoundTripZeroWidth(t *testing.T) {
	// maxLevel == 0 means the level stream carries no information.
	roundTrip(t, []uint32{0, 0, 0}, 0)
}

func TestDecodeRejectsLevelAboveMax(t *testing.T) {
	body := rle.Encode(nil, []uint32{0, 1, 2, 3}, rle.BitWidth(3))
	_, err := rle.Decode(nil, body, rle.BitWidth(3), 4, 2)
	require.Error(t, err)
}

func TestDecodeRejectsTruncatedBody(t *testing.T) {
	body := rle.Encode(nil, []uint32{1, 1, 1, 1, 1, 1, 1, 1}, 1)
	_, err := rle.Decode(nil, body[:len(body)-1], 1, 8, 1)
	require.Error(t, err)
}

func TestLevelStreamRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 1, 0, 2, 2, 2, 2, 2, 2, 2, 2, 2}
	buf := rle.EncodeLevelStream(nil, values, 2)
	decoded, rest, err := rle.DecodeLevelStream(buf, 2, len(values))
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, values, decoded)
}

func TestLevelStreamZeroMaxLevel(t *testing.T) {
	buf := rle.EncodeLevelStream(nil, []uint32{0, 0, 0}, 0)
	assert.Empty(t, buf)
	decoded, rest, err := rle.DecodeLevelStream(buf, 0, 3)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, []uint32{0, 0, 0}, decoded)
}

func TestIndexStreamRoundTrip(t *testing.T) {
	indices := []uint32{0, 1, 2, 3, 4, 0, 1, 2, 3, 4}
	buf := rle.EncodeIndexStream(nil, indices, 4)
	decoded, err := rle.DecodeIndexStream(buf, len(indices), 4)
	require.NoError(t, err)
	assert.Equal(t, indices, decoded)
}

func TestLongRunNearBoundary(t *testing.T) {
	// Adversarial test for the source's documented limitation with very
	// long RLE runs: a run of ten thousand must still round-trip cleanly.
	values := make([]uint32, 10000)
	for i := range values {
		values[i] = 7
	}
	roundTrip(t, values, 7)
}
