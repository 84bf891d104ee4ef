package parquet

import (
	"fmt"

	"github.com/segmentio/parquet-core/compress"
	"github.com/segmentio/parquet-core/encoding/rle"
	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/internal/bits"
	"github.com/segmentio/parquet-core/page"
	"github.com/segmentio/parquet-core/schema"
)

type chunkState int

const (
	chunkEmpty chunkState = iota
	chunkOpen
	chunkFinalized
)

// PageRecord is one page's header metadata paired with its (possibly
// compressed) body bytes, the unit the column chunk writer/reader exchange.
// Interleaving headers and bodies into a single positioned byte stream is a
// Thrift/file-framing concern this core does not implement: container
// framing is out of scope.
type PageRecord struct {
	Header page.Header
	Body   []byte
}

// ColumnChunkWriter drives the page codec for one leaf: batches values into
// pages while maintaining dictionary state and running statistics. It is
// generic over the leaf's value codec trait, collapsing what would
// otherwise be a per-type column writer hierarchy into one implementation.
type ColumnChunkWriter[T any] struct {
	leaf  schema.Leaf
	props ColumnProperties
	codec ValueCodec[T]
	cmp   compress.Codec

	state chunkState

	repBuf        []uint32
	defBuf        []uint32
	posValueBytes []int // per-position encoded byte length; 0 for null positions

	dict           *Dictionary[T]
	dictFellBack   bool
	pendingIndices []uint32
	pendingValues  []T // only populated once !dict-active (disabled or fell back)

	hasStats  bool
	statsMin  T
	statsMax  T
	nullCount int64

	pages        []PageRecord
	encodings    map[format.Encoding]bool
	totalUComp   int64
	totalComp    int64
	totalVals    int64
	topLevelRows int64
	dictUsed     bool
}

// RowsWritten returns the number of top-level records (rep==0 positions)
// written so far, the quantity the row-group orchestrator compares across
// sibling leaves at finalize time.
func (w *ColumnChunkWriter[T]) RowsWritten() int64 { return w.topLevelRows }

// NewColumnChunkWriter opens a writer for one leaf.
func NewColumnChunkWriter[T any](leaf schema.Leaf, codec ValueCodec[T], props ColumnProperties) (*ColumnChunkWriter[T], error) {
	cmp, err := LookupCompressionCodec(props.Compression)
	if err != nil {
		return nil, err
	}
	w := &ColumnChunkWriter[T]{
		leaf:      leaf,
		props:     props,
		codec:     codec,
		cmp:       cmp,
		encodings: make(map[format.Encoding]bool),
	}
	if props.DictionaryEnabled {
		w.dict = NewDictionary[T](codec)
	}
	return w, nil
}

// WriteBatch appends one aligned batch of (non-null values, def levels, rep
// levels) to the writer's buffers, flushing completed pages as the
// configured page-size target is reached.
func (w *ColumnChunkWriter[T]) WriteBatch(values []T, defLevels, repLevels []uint32) error {
	if w.state == chunkFinalized {
		return ErrClosed
	}
	if len(defLevels) != len(repLevels) {
		return fmt.Errorf("%w: def/rep length mismatch: %d vs %d", ErrSchemaContract, len(defLevels), len(repLevels))
	}
	wantValues := 0
	for i, d := range defLevels {
		if d > w.leaf.Levels.MaxDef {
			return schemaContractf(int64(i), "def level %d exceeds max_def %d", d, w.leaf.Levels.MaxDef)
		}
		if d == w.leaf.Levels.MaxDef {
			wantValues++
		}
	}
	if wantValues != len(values) {
		return fmt.Errorf("%w: batch carries %d values but %d positions are non-null", ErrSchemaContract, len(values), wantValues)
	}
	w.state = chunkOpen

	w.repBuf = append(w.repBuf, repLevels...)
	w.defBuf = append(w.defBuf, defLevels...)

	for _, r := range repLevels {
		if r == 0 {
			w.topLevelRows++
		}
	}

	vi := 0
	for _, d := range defLevels {
		if d != w.leaf.Levels.MaxDef {
			w.posValueBytes = append(w.posValueBytes, 0)
			if w.props.StatisticsEnabled {
				w.nullCount++
			}
			continue
		}
		v := values[vi]
		vi++
		if err := w.observe(v); err != nil {
			return err
		}
		if w.dictActive() {
			idx, err := w.dict.Insert(v)
			if err != nil {
				return err
			}
			w.pendingIndices = append(w.pendingIndices, uint32(idx))
			w.posValueBytes = append(w.posValueBytes, bits.ByteCount(uint(rle.BitWidth(maxDictIndex(w.dict.Len())))))
			if int64(w.dict.ByteSize()) > int64(w.props.DictionaryPageSizeLimit) {
				w.dictFellBack = true
				// Positions still buffered as indices move to the PLAIN
				// buffer, so the next page carries them as values.
				for _, idx := range w.pendingIndices {
					w.pendingValues = append(w.pendingValues, w.dict.Value(int32(idx)))
				}
				w.pendingIndices = nil
			}
		} else {
			w.pendingValues = append(w.pendingValues, v)
			encoded, err := w.codec.EncodePlain(nil, []T{v})
			if err != nil {
				return err
			}
			w.posValueBytes = append(w.posValueBytes, len(encoded))
		}
	}

	return w.flushWhileOverTarget()
}

func (w *ColumnChunkWriter[T]) dictActive() bool {
	return w.dict != nil && !w.dictFellBack
}

func (w *ColumnChunkWriter[T]) observe(v T) error {
	if !w.props.StatisticsEnabled {
		return nil
	}
	if w.codec.IsNaN(v) {
		return nil
	}
	if !w.hasStats {
		w.statsMin, w.statsMax = v, v
		w.hasStats = true
		return nil
	}
	if w.codec.Compare(v, w.statsMin) < 0 {
		w.statsMin = v
	}
	if w.codec.Compare(v, w.statsMax) > 0 {
		w.statsMax = v
	}
	return nil
}

func (w *ColumnChunkWriter[T]) estimatedSize() int64 {
	n := uint(len(w.defBuf))
	var size int64
	if w.leaf.Levels.MaxDef > 0 {
		size += int64(bits.ByteCount(uint(rle.BitWidth(w.leaf.Levels.MaxDef)) * n))
	}
	if w.leaf.Levels.MaxRep > 0 {
		size += int64(bits.ByteCount(uint(rle.BitWidth(w.leaf.Levels.MaxRep)) * n))
	}
	for _, b := range w.posValueBytes {
		size += int64(b)
	}
	return size
}

// findFlushBoundary returns the largest index i (a record start, i.e.
// repBuf[i]==0) such that flushing [0,i) keeps the page at or under target,
// or 0 if even the first buffered record does not fit: the largest such
// index at or below the target size.
func (w *ColumnChunkWriter[T]) findFlushBoundary(target int64) int {
	n := len(w.defBuf)
	defWidth := rle.BitWidth(w.leaf.Levels.MaxDef)
	repWidth := rle.BitWidth(w.leaf.Levels.MaxRep)
	var valueBytes int64
	best := 0
	for i := 0; i < n; i++ {
		if i > 0 && w.repBuf[i] == 0 {
			levelBytes := int64(0)
			if w.leaf.Levels.MaxDef > 0 {
				levelBytes += int64(bits.ByteCount(uint(defWidth) * uint(i)))
			}
			if w.leaf.Levels.MaxRep > 0 {
				levelBytes += int64(bits.ByteCount(uint(repWidth) * uint(i)))
			}
			if levelBytes+valueBytes <= target {
				best = i
			} else if best > 0 {
				break
			}
		}
		valueBytes += int64(w.posValueBytes[i])
	}
	return best
}

func (w *ColumnChunkWriter[T]) flushWhileOverTarget() error {
	target := int64(w.props.DataPageSize)
	for w.estimatedSize() >= target {
		boundary := w.findFlushBoundary(target)
		if boundary == 0 {
			break
		}
		if err := w.flushPage(boundary); err != nil {
			return err
		}
	}
	return nil
}

func (w *ColumnChunkWriter[T]) flushPage(boundary int) error {
	nonNull := 0
	for _, d := range w.defBuf[:boundary] {
		if d == w.leaf.Levels.MaxDef {
			nonNull++
		}
	}

	var valueBytes []byte
	var enc format.Encoding
	var err error
	if w.dictActive() {
		valueBytes = rle.EncodeIndexStream(nil, w.pendingIndices[:nonNull], maxDictIndex(w.dict.Len()))
		enc = format.RLEDictionary
		w.dictUsed = true
	} else {
		valueBytes, err = w.codec.EncodePlain(nil, w.pendingValues[:nonNull])
		if err != nil {
			return err
		}
		enc = format.Plain
	}

	body, header, err := page.WriteDataPage(w.repBuf[:boundary], w.defBuf[:boundary], w.leaf.Levels.MaxRep, w.leaf.Levels.MaxDef, valueBytes, enc, boundary, w.cmp)
	if err != nil {
		return err
	}

	w.pages = append(w.pages, PageRecord{Header: header, Body: body})
	w.encodings[enc] = true
	w.totalUComp += int64(header.UncompressedSize)
	w.totalComp += int64(header.CompressedSize)
	w.totalVals += int64(boundary)

	w.repBuf = w.repBuf[boundary:]
	w.defBuf = w.defBuf[boundary:]
	w.posValueBytes = w.posValueBytes[boundary:]
	if w.dictActive() {
		w.pendingIndices = w.pendingIndices[nonNull:]
	} else {
		w.pendingValues = w.pendingValues[nonNull:]
	}
	return nil
}

// Finalize flushes any buffered tail data, assembles the dictionary page (if
// used) ahead of the data pages, and returns the finished chunk's pages
// plus its metadata. The dictionary page is assembled here, after
// the dictionary has stopped growing, rather than at the first flush:
// dictionary indices are stable once assigned, so data pages already
// flushed mid-chunk remain valid regardless of how much the dictionary
// grows afterward.
func (w *ColumnChunkWriter[T]) Finalize() ([]PageRecord, format.ColumnMetaData, error) {
	if w.state == chunkFinalized {
		return nil, format.ColumnMetaData{}, ErrClosed
	}
	if len(w.defBuf) > 0 {
		if err := w.flushPage(len(w.defBuf)); err != nil {
			return nil, format.ColumnMetaData{}, err
		}
	}
	w.state = chunkFinalized

	pages := w.pages
	var dictionaryPageOffset *int64
	if w.dictUsed && w.dict.Len() > 0 {
		dictValues, err := w.dict.Page()
		if err != nil {
			return nil, format.ColumnMetaData{}, err
		}
		body, header, err := page.WriteDictionaryPage(dictValues, w.dict.Len(), w.cmp)
		if err != nil {
			return nil, format.ColumnMetaData{}, err
		}
		pages = append([]PageRecord{{Header: header, Body: body}}, pages...)
		offset := int64(0)
		dictionaryPageOffset = &offset
		w.totalUComp += int64(header.UncompressedSize)
		w.totalComp += int64(header.CompressedSize)
	}

	var stats *format.Statistics
	if w.props.StatisticsEnabled {
		nullCount := w.nullCount
		stats = &format.Statistics{NullCount: &nullCount}
		if w.hasStats {
			minBytes, err := w.codec.EncodePlain(nil, []T{w.statsMin})
			if err != nil {
				return nil, format.ColumnMetaData{}, err
			}
			maxBytes, err := w.codec.EncodePlain(nil, []T{w.statsMax})
			if err != nil {
				return nil, format.ColumnMetaData{}, err
			}
			stats.Min, stats.MinValue = minBytes, minBytes
			stats.Max, stats.MaxValue = maxBytes, maxBytes
		}
	}

	var encodings []format.Encoding
	for e := range w.encodings {
		encodings = append(encodings, e)
	}

	dataPageOffset := int64(0)
	if dictionaryPageOffset != nil {
		dataPageOffset = int64(pages[0].Header.CompressedSize)
	}

	meta := format.ColumnMetaData{
		Type:                  physicalToFormatType(w.leaf.Physical),
		Encodings:             encodings,
		PathInSchema:          w.leaf.Path,
		Codec:                 w.cmp.CompressionCodec(),
		NumValues:             w.totalVals,
		TotalUncompressedSize: w.totalUComp,
		TotalCompressedSize:   w.totalComp,
		DataPageOffset:        dataPageOffset,
		DictionaryPageOffset:  dictionaryPageOffset,
		Statistics:            stats,
	}
	return pages, meta, nil
}

// maxDictIndex returns the highest valid dictionary index for a dictionary
// holding n entries, or 0 when n==0 (an index stream can still frame a
// 1-bit-wide, all-zero body for an as-yet-empty dictionary).
func maxDictIndex(n int) uint32 {
	if n == 0 {
		return 0
	}
	return uint32(n - 1)
}

// physicalToFormatType maps the schema package's leaf physical type to the
// wire-format's Type enumeration; the two are not numerically aligned
// because schema.PhysicalType also reserves a Group marker for non-leaves.
func physicalToFormatType(p schema.PhysicalType) format.Type {
	switch p {
	case schema.Bool:
		return format.Boolean
	case schema.Int32:
		return format.Int32
	case schema.Int64:
		return format.Int64
	case schema.Float32:
		return format.Float
	case schema.Float64:
		return format.Double
	case schema.ByteArray:
		return format.ByteArray
	case schema.FixedByteArray:
		return format.FixedLenByteArray
	default:
		return format.Boolean
	}
}
