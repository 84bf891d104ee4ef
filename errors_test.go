package parquet_test

import (
	"testing"

	parquet "github.com/segmentio/parquet-core"
	"github.com/segmentio/parquet-core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeErrorCarriesOffset covers a malformed-input path that surfaces a
// *DecodeError with the byte offset at which the problem was found, not just
// a bare sentinel.
func TestDecodeErrorCarriesOffset(t *testing.T) {
	_, err := parquet.UUIDCodec().DecodePlain(nil, make([]byte, 17), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, parquet.ErrMalformed)

	var decErr *parquet.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.EqualValues(t, 17, decErr.Offset)
	assert.Contains(t, decErr.Error(), "at offset 17")
}

// TestDecodeErrorSchemaContractCarriesPosition covers write_batch's bad-level
// rejection surfacing the offending batch position.
func TestDecodeErrorSchemaContractCarriesPosition(t *testing.T) {
	leaf := flatLeaf(t, schema.Optional, schema.Int32)
	w, err := parquet.NewColumnChunkWriter[int32](leaf, parquet.Int32Codec(), parquet.DefaultColumnProperties())
	require.NoError(t, err)

	err = w.WriteBatch([]int32{1, 2}, []uint32{leaf.Levels.MaxDef, leaf.Levels.MaxDef + 1}, []uint32{0, 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, parquet.ErrSchemaContract)

	var decErr *parquet.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.EqualValues(t, 1, decErr.Offset)
}
