package parquet_test

import (
	"fmt"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/mitchellh/copystructure"
	parquet "github.com/segmentio/parquet-core"
	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dumpByteRows renders one value per line for a readable diff on mismatch.
func dumpByteRows(rows [][]byte) string {
	var s string
	for _, r := range rows {
		s += fmt.Sprintf("%s\n", r)
	}
	return s
}

// assertByteRowsEqual diffs two dumps with gotextdiff when they disagree,
// so a mismatched row is easy to spot among fifty.
func assertByteRowsEqual(t *testing.T, want, got [][]byte) {
	t.Helper()
	wantDump, gotDump := dumpByteRows(want), dumpByteRows(got)
	if wantDump == gotDump {
		return
	}
	edits := myers.ComputeEdits(span.URIFromPath("want.txt"), wantDump, gotDump)
	diff := fmt.Sprint(gotextdiff.ToUnified("want.txt", "got.txt", wantDump, edits))
	t.Errorf("row mismatch:\n%s", diff)
}

func flatLeaf(t *testing.T, repetition schema.Repetition, physical schema.PhysicalType) schema.Leaf {
	t.Helper()
	s, err := schema.Build(schema.NodeSpec{
		Repetition: schema.RepetitionNone,
		Physical:   schema.Group,
		Children: []schema.NodeSpec{
			{Name: "v", Repetition: repetition, Physical: physical},
		},
	})
	require.NoError(t, err)
	leaves := s.Leaves()
	require.Len(t, leaves, 1)
	return leaves[0]
}

// TestColumnChunkRoundTripPlain covers a required int32 leaf with no
// dictionary in play: one value per row, every page PLAIN-encoded.
func TestColumnChunkRoundTripPlain(t *testing.T) {
	leaf := flatLeaf(t, schema.Required, schema.Int32)
	props := parquet.DefaultColumnProperties()
	props.DictionaryEnabled = false

	w, err := parquet.NewColumnChunkWriter[int32](leaf, parquet.Int32Codec(), props)
	require.NoError(t, err)

	values := make([]int32, 100)
	def := make([]uint32, 100)
	rep := make([]uint32, 100)
	for i := range values {
		values[i] = int32(i)
		def[i] = leaf.Levels.MaxDef
	}
	require.NoError(t, w.WriteBatch(values, def, rep))
	assert.EqualValues(t, 100, w.RowsWritten())

	pages, meta, err := w.Finalize()
	require.NoError(t, err)
	require.NotEmpty(t, pages)
	assert.EqualValues(t, 100, meta.NumValues)
	assert.Nil(t, meta.DictionaryPageOffset)

	r, err := parquet.NewColumnChunkReader[int32](leaf, parquet.Int32Codec(), props, pages)
	require.NoError(t, err)
	gotValues, gotDef, gotRep, err := r.ReadAllLevels()
	require.NoError(t, err)
	assert.Equal(t, values, gotValues)
	assert.Equal(t, def, gotDef)
	assert.Equal(t, rep, gotRep)
}

// TestColumnChunkDictionaryRoundTrip covers the dictionary scenario: 50 rows
// drawn from five distinct string values, a page size small enough to force
// several flushes, and a reader that must recover the original values
// purely from the dictionary and its index streams.
func TestColumnChunkDictionaryRoundTrip(t *testing.T) {
	leaf := flatLeaf(t, schema.Required, schema.ByteArray)
	props := parquet.DefaultColumnProperties()
	props.DataPageSize = 48 // small enough to force multiple flushes across 50 rows

	distinct := [][]byte{
		[]byte("alpha"), []byte("bravo"), []byte("charlie"), []byte("delta"), []byte("echo"),
	}

	w, err := parquet.NewColumnChunkWriter[[]byte](leaf, parquet.ByteArrayCodec(false), props)
	require.NoError(t, err)

	const numRows = 50
	values := make([][]byte, numRows)
	def := make([]uint32, numRows)
	rep := make([]uint32, numRows)
	for i := range values {
		values[i] = distinct[i%len(distinct)]
		def[i] = leaf.Levels.MaxDef
	}

	// Feed the batch in small slices so the page-size check runs after every
	// batch and pages are flushed mid-stream, not only at Finalize.
	const chunk = 7
	for i := 0; i < numRows; i += chunk {
		end := i + chunk
		if end > numRows {
			end = numRows
		}
		require.NoError(t, w.WriteBatch(values[i:end], def[i:end], rep[i:end]))
	}

	pages, meta, err := w.Finalize()
	require.NoError(t, err)
	require.Greater(t, len(pages), 1, "expected multiple pages given the small page size target")
	require.NotNil(t, meta.DictionaryPageOffset)
	assert.Equal(t, format.DictionaryPage, pages[0].Header.Type)

	for _, p := range pages[1:] {
		assert.Equal(t, format.DataPage, p.Header.Type)
	}

	r, err := parquet.NewColumnChunkReader[[]byte](leaf, parquet.ByteArrayCodec(false), props, pages)
	require.NoError(t, err)
	gotValues, gotDef, gotRep, err := r.ReadAllLevels()
	require.NoError(t, err)
	require.Len(t, gotValues, numRows)
	assertByteRowsEqual(t, values, gotValues)
	assert.Equal(t, def, gotDef)
	assert.Equal(t, rep, gotRep)
}

// TestColumnChunkWriteBatchRejectsBadLevels exercises the schema-contract
// validation on write_batch: a def level above max_def must be rejected
// before anything is buffered.
func TestColumnChunkWriteBatchRejectsBadLevels(t *testing.T) {
	leaf := flatLeaf(t, schema.Optional, schema.Int32)
	w, err := parquet.NewColumnChunkWriter[int32](leaf, parquet.Int32Codec(), parquet.DefaultColumnProperties())
	require.NoError(t, err)

	err = w.WriteBatch([]int32{1}, []uint32{leaf.Levels.MaxDef + 1}, []uint32{0})
	require.Error(t, err)
	assert.ErrorIs(t, err, parquet.ErrSchemaContract)
}

// TestColumnChunkWriteBatchRejectsValueCountMismatch exercises the
// non-null-count-vs-values-length validation.
func TestColumnChunkWriteBatchRejectsValueCountMismatch(t *testing.T) {
	leaf := flatLeaf(t, schema.Optional, schema.Int32)
	w, err := parquet.NewColumnChunkWriter[int32](leaf, parquet.Int32Codec(), parquet.DefaultColumnProperties())
	require.NoError(t, err)

	err = w.WriteBatch([]int32{1, 2}, []uint32{leaf.Levels.MaxDef}, []uint32{0})
	require.Error(t, err)
	assert.ErrorIs(t, err, parquet.ErrSchemaContract)
}

// TestColumnChunkWriteBatchDoesNotMutateInput deep-copies the caller's
// slices before write_batch and checks they come back unchanged: the writer
// only reads its inputs and never mutates them.
func TestColumnChunkWriteBatchDoesNotMutateInput(t *testing.T) {
	leaf := flatLeaf(t, schema.Required, schema.Int32)
	w, err := parquet.NewColumnChunkWriter[int32](leaf, parquet.Int32Codec(), parquet.DefaultColumnProperties())
	require.NoError(t, err)

	values := []int32{1, 2, 3, 4, 5}
	def := []uint32{0, 0, 0, 0, 0}
	rep := []uint32{0, 0, 0, 0, 0}

	wantValues := copystructure.Must(copystructure.Copy(values)).([]int32)
	wantDef := copystructure.Must(copystructure.Copy(def)).([]uint32)
	wantRep := copystructure.Must(copystructure.Copy(rep)).([]uint32)

	require.NoError(t, w.WriteBatch(values, def, rep))
	assert.Equal(t, wantValues, values)
	assert.Equal(t, wantDef, def)
	assert.Equal(t, wantRep, rep)
}

// TestColumnChunkWriteAfterFinalize exercises the closed-chunk guard.
func TestColumnChunkWriteAfterFinalize(t *testing.T) {
	leaf := flatLeaf(t, schema.Required, schema.Int32)
	w, err := parquet.NewColumnChunkWriter[int32](leaf, parquet.Int32Codec(), parquet.DefaultColumnProperties())
	require.NoError(t, err)

	_, _, err = w.Finalize()
	require.NoError(t, err)

	err = w.WriteBatch([]int32{1}, []uint32{leaf.Levels.MaxDef}, []uint32{0})
	assert.ErrorIs(t, err, parquet.ErrClosed)

	_, _, err = w.Finalize()
	assert.ErrorIs(t, err, parquet.ErrClosed)
}
