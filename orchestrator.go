package parquet

import (
	"fmt"

	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/schema"
)

// ChunkWriter is the narrow, non-generic facet of ColumnChunkWriter[T] that
// the row-group orchestrator needs: its row count and its finalize result.
// Declaring it separately lets RowGroupWriter hold writers for leaves of
// different physical types in one map without reflection.
type ChunkWriter interface {
	RowsWritten() int64
	Finalize() ([]PageRecord, format.ColumnMetaData, error)
}

// RowGroupWriter coordinates one row group's leaf column chunk writers. It
// owns no encoding logic of its own; its job is a single contract: every
// leaf in a row group must report the same number of top-level rows by the
// time the row group is finalized.
type RowGroupWriter struct {
	schema *schema.Schema
	leaves map[int]ChunkWriter
}

// NewRowGroupWriter returns an orchestrator for the leaves of s. Callers
// build each leaf's ColumnChunkWriter[T] themselves (they know the leaf's
// Go value type) and Register it here.
func NewRowGroupWriter(s *schema.Schema) *RowGroupWriter {
	return &RowGroupWriter{schema: s, leaves: make(map[int]ChunkWriter)}
}

// Register attaches a leaf's column chunk writer to the row group.
func (g *RowGroupWriter) Register(leafNodeIndex int, w ChunkWriter) {
	g.leaves[leafNodeIndex] = w
}

// Finalize finalizes every registered leaf. It returns ErrSchemaContract if
// a leaf is unregistered or if sibling leaves disagree on row count:
// row-count mismatches between sibling leaves in the same row group are
// detected on row-group finalize.
func (g *RowGroupWriter) Finalize() (format.RowGroup, map[int][]PageRecord, error) {
	leaves := g.schema.Leaves()
	pages := make(map[int][]PageRecord, len(leaves))
	columns := make([]format.ColumnChunk, 0, len(leaves))

	rowCount := int64(-1)
	var totalBytes int64

	for _, leaf := range leaves {
		w, ok := g.leaves[leaf.NodeIndex]
		if !ok {
			return format.RowGroup{}, nil, fmt.Errorf("%w: no writer registered for leaf %q", ErrSchemaContract, joinPath(leaf.Path))
		}

		rows := w.RowsWritten()
		switch {
		case rowCount == -1:
			rowCount = rows
		case rows != rowCount:
			return format.RowGroup{}, nil, fmt.Errorf("%w: leaf %q wrote %d rows, expected %d like its siblings", ErrSchemaContract, joinPath(leaf.Path), rows, rowCount)
		}

		leafPages, meta, err := w.Finalize()
		if err != nil {
			return format.RowGroup{}, nil, fmt.Errorf("finalize leaf %q: %w", joinPath(leaf.Path), err)
		}
		pages[leaf.NodeIndex] = leafPages
		totalBytes += meta.TotalCompressedSize
		columns = append(columns, format.ColumnChunk{MetaData: meta})
	}
	if rowCount == -1 {
		rowCount = 0
	}

	return format.RowGroup{Columns: columns, TotalByteSize: totalBytes, NumRows: rowCount}, pages, nil
}

// ChunkReader is the narrow, non-generic facet the row-group orchestrator
// needs from a leaf reader to advance it in lock-step with its siblings.
// advance takes a row count, not a position count: a leaf with MaxRep > 0
// can emit any number of positions (0, 1, or many) per row, so only a
// row-counted contract keeps sibling leaves aligned on the same rows.
type ChunkReader interface {
	advance(maxRows int) (int, error)
}

// LeafReader adapts a typed ColumnChunkReader[T] to ChunkReader for
// RowGroupReader, caching the most recently read batch so the caller (who
// holds the typed *LeafReader[T] it registered) can retrieve it by type
// after each RowGroupReader.Advance call.
//
// ColumnChunkReader.ReadBatch bounds its result by position count, not row
// count, so advance loops it, growing the request each time, until it has
// seen maxRows+1 row starts (rep==0) or the leaf is exhausted. Positions
// belonging to rows past the maxRows-th are buffered in pending* rather than
// handed to the caller, and are prepended the next time advance is called.
type LeafReader[T any] struct {
	r *ColumnChunkReader[T]

	pendingValues []T
	pendingDef    []uint32
	pendingRep    []uint32

	LastValues []T
	LastDef    []uint32
	LastRep    []uint32
}

// NewLeafReader wraps r for registration with a RowGroupReader.
func NewLeafReader[T any](r *ColumnChunkReader[T]) *LeafReader[T] {
	return &LeafReader[T]{r: r}
}

func (l *LeafReader[T]) advance(maxRows int) (int, error) {
	values := append([]T(nil), l.pendingValues...)
	def := append([]uint32(nil), l.pendingDef...)
	rep := append([]uint32(nil), l.pendingRep...)
	l.pendingValues, l.pendingDef, l.pendingRep = nil, nil, nil

	rowStarts := 0
	for _, rr := range rep {
		if rr == 0 {
			rowStarts++
		}
	}

	for chunk := maxRows; rowStarts <= maxRows; chunk *= 2 {
		if chunk < 1 {
			chunk = 1
		}
		v, d, r, err := l.r.ReadBatch(chunk)
		if err != nil {
			return 0, err
		}
		if len(d) == 0 {
			break // leaf exhausted
		}
		values = append(values, v...)
		def = append(def, d...)
		rep = append(rep, r...)
		for _, rr := range r {
			if rr == 0 {
				rowStarts++
			}
		}
		if len(d) < chunk {
			break // leaf exhausted mid-chunk
		}
	}

	splitPos, rows := len(def), rowStarts
	if rowStarts > maxRows {
		rows, splitPos = maxRows, 0
		seen := 0
		for i, rr := range rep {
			if rr == 0 {
				seen++
				if seen == maxRows+1 {
					splitPos = i
					break
				}
			}
		}
	}

	splitVal := 0
	for _, d := range def[:splitPos] {
		if d == l.r.leaf.Levels.MaxDef {
			splitVal++
		}
	}

	l.LastValues = append([]T(nil), values[:splitVal]...)
	l.LastDef = append([]uint32(nil), def[:splitPos]...)
	l.LastRep = append([]uint32(nil), rep[:splitPos]...)
	l.pendingValues = append([]T(nil), values[splitVal:]...)
	l.pendingDef = append([]uint32(nil), def[splitPos:]...)
	l.pendingRep = append([]uint32(nil), rep[splitPos:]...)

	return rows, nil
}

// RowGroupReader coordinates lock-step advancement across a row group's leaf
// readers: the k-th read_batch on any leaf returns levels/values for the
// same span of rows. Composite reconstruction across leaves of different
// types is left to the caller: it inspects each registered *LeafReader[T]'s
// cached Last* fields after Advance, since a generic orchestrator cannot
// assemble heterogeneous Go types without reflection.
type RowGroupReader struct {
	schema *schema.Schema
	leaves map[int]ChunkReader
}

// NewRowGroupReader returns an orchestrator for the leaves of s.
func NewRowGroupReader(s *schema.Schema) *RowGroupReader {
	return &RowGroupReader{schema: s, leaves: make(map[int]ChunkReader)}
}

// Register attaches a leaf's reader to the row group.
func (g *RowGroupReader) Register(leafNodeIndex int, r ChunkReader) {
	g.leaves[leafNodeIndex] = r
}

// Advance reads up to maxRows top-level rows from every registered leaf in
// lock-step. It returns the number of rows actually advanced, which is the
// minimum across leaves (0 once every leaf is exhausted).
func (g *RowGroupReader) Advance(maxRows int) (int, error) {
	leaves := g.schema.Leaves()
	advanced := -1
	for _, leaf := range leaves {
		r, ok := g.leaves[leaf.NodeIndex]
		if !ok {
			return 0, fmt.Errorf("%w: no reader registered for leaf %q", ErrSchemaContract, joinPath(leaf.Path))
		}
		n, err := r.advance(maxRows)
		if err != nil {
			return 0, fmt.Errorf("read leaf %q: %w", joinPath(leaf.Path), err)
		}
		if advanced == -1 || n < advanced {
			advanced = n
		}
	}
	if advanced == -1 {
		return 0, nil
	}
	return advanced, nil
}
