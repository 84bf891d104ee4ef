package parquet_test

import (
	"testing"

	"github.com/google/uuid"
	parquet "github.com/segmentio/parquet-core"
	"github.com/segmentio/parquet-core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUUIDRoundTrip covers a required UUID-logical leaf written and read
// back through the fixed-len-byte-array physical encoding.
func TestUUIDRoundTrip(t *testing.T) {
	leaf := flatLeaf(t, schema.Required, schema.FixedByteArray)
	leaf.TypeLength = 16

	w, err := parquet.NewColumnChunkWriter[uuid.UUID](leaf, parquet.UUIDCodec(), parquet.DefaultColumnProperties())
	require.NoError(t, err)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	def := make([]uint32, len(ids))
	rep := make([]uint32, len(ids))
	for i := range def {
		def[i] = leaf.Levels.MaxDef
	}
	require.NoError(t, w.WriteBatch(ids, def, rep))

	pages, _, err := w.Finalize()
	require.NoError(t, err)

	r, err := parquet.NewColumnChunkReader[uuid.UUID](leaf, parquet.UUIDCodec(), parquet.DefaultColumnProperties(), pages)
	require.NoError(t, err)
	got, gotDef, gotRep, err := r.ReadAllLevels()
	require.NoError(t, err)
	assert.Equal(t, ids, got)
	assert.Equal(t, def, gotDef)
	assert.Equal(t, rep, gotRep)
}
