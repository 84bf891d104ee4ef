package parquet

import (
	"math"

	"github.com/segmentio/parquet-core/internal/bits"
)

// Dictionary implements the dictionary writer policy: unique values tracked
// in insertion order and assigned indices 0, 1, 2, …. It is generic over
// the value codec trait so one implementation serves every physical type.
//
// Deduplication keys off the value's own PLAIN encoding rather than a
// type-specific comparable key, which lets Dictionary stay generic over
// types like ByteArray that are not comparable in Go.
type Dictionary[T any] struct {
	codec    ValueCodec[T]
	values   []T
	index    map[string]int32
	byteSize int64
}

// NewDictionary constructs an empty dictionary for the given value codec.
func NewDictionary[T any](codec ValueCodec[T]) *Dictionary[T] {
	return &Dictionary[T]{codec: codec, index: make(map[string]int32)}
}

// Len returns the number of unique values recorded.
func (d *Dictionary[T]) Len() int { return len(d.values) }

// ByteSize estimates the dictionary page's PLAIN-encoded size, the quantity
// the dictionary-page-size-limit budget is measured against.
func (d *Dictionary[T]) ByteSize() int64 { return d.byteSize }

// Insert records v if not already present and returns its index.
func (d *Dictionary[T]) Insert(v T) (int32, error) {
	encoded, err := d.codec.EncodePlain(nil, []T{v})
	if err != nil {
		return 0, err
	}
	key := bits.BytesToString(encoded)
	if idx, ok := d.index[key]; ok {
		return idx, nil
	}
	if len(d.values) >= math.MaxInt32 {
		return 0, resourceLimitf(int64(len(d.values)), "dictionary index overflows int32")
	}
	idx := int32(len(d.values))
	d.values = append(d.values, v)
	d.index[key] = idx
	d.byteSize += int64(len(encoded))
	return idx, nil
}

// Value returns the dictionary entry at index i.
func (d *Dictionary[T]) Value(i int32) T { return d.values[i] }

// Lookup appends the values referenced by indices to dst, in order.
func (d *Dictionary[T]) Lookup(indices []uint32, dst []T) []T {
	for _, i := range indices {
		dst = append(dst, d.values[i])
	}
	return dst
}

// Page PLAIN-encodes every value in insertion order, the dictionary page
// body ("unique values PLAIN-encoded with no level stream").
func (d *Dictionary[T]) Page() ([]byte, error) {
	return d.codec.EncodePlain(nil, d.values)
}

// Reset clears the dictionary back to empty.
func (d *Dictionary[T]) Reset() {
	d.values = d.values[:0]
	for k := range d.index {
		delete(d.index, k)
	}
	d.byteSize = 0
}
