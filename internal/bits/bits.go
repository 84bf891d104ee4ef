// Package bits provides the small set of bit/byte-width helpers the value
// and dictionary codecs need that are not already covered by encoding/rle's
// level bit-width logic.
package bits

import "unsafe"

// ByteCount returns the number of bytes needed to hold the given number of
// bits, rounding up.
func ByteCount(bitCount uint) int {
	return int((bitCount + 7) / 8)
}

// BytesToString reinterprets data as a string without copying, for use as a
// map key when deduplicating byte-array dictionary entries. The caller must
// not mutate data afterward.
func BytesToString(data []byte) string {
	return *(*string)(unsafe.Pointer(&data))
}
