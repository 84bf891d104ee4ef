package rle

import "fmt"

// EncodeIndexStream appends a dictionary index stream ("one byte giving the
// bit-width followed by an RLE/bit-packed body") to dst.
// maxIndex is the highest index currently present in the dictionary; width
// is computed the same way as a level's bit-width, over the index range
// instead of a level range.
func EncodeIndexStream(dst []byte, indices []uint32, maxIndex uint32) []byte {
	width := BitWidth(maxIndex)
	if width == 0 {
		width = 1 // a one-entry dictionary still needs a width to spell its index 0.
	}
	dst = append(dst, byte(width))
	return Encode(dst, indices, width)
}

// DecodeIndexStream reads a dictionary index stream from the front of src,
// returning the decoded indices. numValues is the number of non-null
// positions in the page.
func DecodeIndexStream(src []byte, numValues int, maxIndex uint32) ([]uint32, error) {
	if len(src) < 1 {
		return nil, fmt.Errorf("dictionary index stream missing its bit-width byte")
	}
	width := uint(src[0])
	if width == 0 {
		return make([]uint32, numValues), nil
	}
	return Decode(make([]uint32, 0, numValues), src[1:], width, numValues, maxIndex)
}
