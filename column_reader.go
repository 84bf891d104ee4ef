package parquet

import (
	"math"

	"github.com/segmentio/parquet-core/compress"
	"github.com/segmentio/parquet-core/dremel"
	"github.com/segmentio/parquet-core/encoding/rle"
	"github.com/segmentio/parquet-core/format"
	"github.com/segmentio/parquet-core/page"
	"github.com/segmentio/parquet-core/schema"
)

// ColumnChunkReader lazily decodes one leaf's pages, caching at most one
// decoded data page at a time and the dictionary (if present) for the whole
// chunk: readers keep at most one decoded page materialized per leaf at a
// time.
type ColumnChunkReader[T any] struct {
	leaf  schema.Leaf
	codec ValueCodec[T]
	cmp   compress.Codec

	dataPages []PageRecord
	nextPage  int
	dict      *Dictionary[T]

	curDef    []uint32
	curRep    []uint32
	curValues []T
	curPos    int
	curValPos int
}

// NewColumnChunkReader opens a reader over pages (as produced by
// ColumnChunkWriter.Finalize): the leading dictionary page, if present, is
// decoded and cached immediately.
func NewColumnChunkReader[T any](leaf schema.Leaf, codec ValueCodec[T], props ColumnProperties, pages []PageRecord) (*ColumnChunkReader[T], error) {
	cmp, err := LookupCompressionCodec(props.Compression)
	if err != nil {
		return nil, err
	}
	r := &ColumnChunkReader[T]{leaf: leaf, codec: codec, cmp: cmp}

	if len(pages) > 0 && pages[0].Header.Type == format.DictionaryPage {
		values, err := page.ReadDictionaryPage(pages[0].Body, pages[0].Header, cmp)
		if err != nil {
			return nil, err
		}
		dict := NewDictionary[T](codec)
		decoded, err := codec.DecodePlain(nil, values, pages[0].Header.NumValues)
		if err != nil {
			return nil, err
		}
		for _, v := range decoded {
			if _, err := dict.Insert(v); err != nil {
				return nil, err
			}
		}
		r.dict = dict
		pages = pages[1:]
	}

	r.dataPages = pages
	return r, nil
}

func (r *ColumnChunkReader[T]) loadNextPage() (bool, error) {
	if r.nextPage >= len(r.dataPages) {
		return false, nil
	}
	rec := r.dataPages[r.nextPage]
	r.nextPage++

	if rec.Header.Type == format.IndexPage {
		return r.loadNextPage()
	}
	if rec.Header.Type != format.DataPage {
		return false, notSupportedf("unsupported page type %d in data page position", rec.Header.Type)
	}

	rep, def, values, err := page.ReadDataPage(rec.Body, rec.Header, r.leaf.Levels.MaxRep, r.leaf.Levels.MaxDef, r.cmp)
	if err != nil {
		return false, err
	}

	nonNull := 0
	for _, d := range def {
		if d == r.leaf.Levels.MaxDef {
			nonNull++
		}
	}

	var decoded []T
	switch rec.Header.ValueEncoding {
	case format.Plain:
		decoded, err = r.codec.DecodePlain(nil, values, nonNull)
	case format.RLEDictionary, format.PlainDictionary:
		if r.dict == nil {
			return false, malformedf(int64(r.nextPage-1), "dictionary-encoded page with no dictionary page preceding it")
		}
		var indices []uint32
		indices, err = rle.DecodeIndexStream(values, nonNull, maxDictIndex(r.dict.Len()))
		if err == nil {
			decoded = r.dict.Lookup(indices, make([]T, 0, nonNull))
		}
	default:
		return false, notSupportedf("unsupported value encoding %d", rec.Header.ValueEncoding)
	}
	if err != nil {
		return false, err
	}

	r.curDef, r.curRep, r.curValues = def, rep, decoded
	r.curPos, r.curValPos = 0, 0
	return true, nil
}

// ReadBatch produces up to max logical positions: the non-null values in
// that span, and the aligned def/rep levels for every position.
func (r *ColumnChunkReader[T]) ReadBatch(max int) (values []T, defLevels, repLevels []uint32, err error) {
	for len(defLevels) < max {
		if r.curPos >= len(r.curDef) {
			ok, err := r.loadNextPage()
			if err != nil {
				return nil, nil, nil, err
			}
			if !ok {
				break
			}
		}
		take := max - len(defLevels)
		if avail := len(r.curDef) - r.curPos; take > avail {
			take = avail
		}
		defLevels = append(defLevels, r.curDef[r.curPos:r.curPos+take]...)
		repLevels = append(repLevels, r.curRep[r.curPos:r.curPos+take]...)
		for _, d := range r.curDef[r.curPos : r.curPos+take] {
			if d == r.leaf.Levels.MaxDef {
				values = append(values, r.curValues[r.curValPos])
				r.curValPos++
			}
		}
		r.curPos += take
	}
	return values, defLevels, repLevels, nil
}

// ReadAllLevels reads every remaining position in the chunk.
func (r *ColumnChunkReader[T]) ReadAllLevels() (values []T, defLevels, repLevels []uint32, err error) {
	return r.ReadBatch(math.MaxInt32)
}

// ReadAllNested reads every remaining position and reconstructs the logical
// value model via the array reconstructor.
func (r *ColumnChunkReader[T]) ReadAllNested() ([]dremel.Nested[T], error) {
	values, defLevels, repLevels, err := r.ReadAllLevels()
	if err != nil {
		return nil, err
	}
	return dremel.Reconstruct(defLevels, repLevels, values, r.leaf.Steps, r.leaf.Levels.MaxDef)
}
