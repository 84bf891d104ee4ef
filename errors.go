package parquet

import (
	"errors"
	"fmt"
)

// Error kind sentinels. The column chunk writer/reader, dictionary and
// row-group checks in this package wrap one of these with errors.Is-compatible
// %w so callers can classify a failure without parsing its message. Errors
// from the encoding, page and dremel packages are passed through as those
// packages produce them and do not wrap these sentinels.
var (
	// ErrMalformed is returned for malformed-input conditions: a bad varint,
	// a level value out of range, a level-stream length that runs past the
	// declared body, a truncated values region, invalid UTF-8 in a string
	// leaf, a page header that disagrees with its body size, or a
	// dictionary-encoded page with no dictionary page before it. An
	// unsupported encoding or page type is ErrNotSupported instead.
	ErrMalformed = errors.New("malformed parquet input")

	// ErrSchemaContract is returned when a def/rep level, or a sequence of
	// them, violates the contract implied by a leaf's LevelInfo: def > max_def
	// or rep > max_rep, a continuation pair with def < repeated_ancestor_def,
	// level-stream lengths that disagree, a value count that is not fully
	// consumed, or mismatched row counts across leaves at finalize.
	ErrSchemaContract = errors.New("parquet schema contract violation")

	// ErrResourceLimit is returned when a resource bound is exceeded: an
	// offset overflowing int32, a values-read count exceeding its declared
	// upper bound, or similar.
	ErrResourceLimit = errors.New("parquet resource limit exceeded")

	// ErrNotSupported is returned for inputs that are well-formed but use a
	// feature this core does not implement (DataPage V2, an encoding outside
	// PLAIN/PLAIN_DICTIONARY/RLE/RLE_DICTIONARY/RLE, 64-bit list offsets).
	ErrNotSupported = errors.New("parquet feature not supported")

	// ErrClosed is returned by a column chunk writer or reader once it has
	// been finalized/closed and is used again.
	ErrClosed = errors.New("parquet column chunk already finalized")
)

// DecodeError annotates a sentinel error kind with a short human-readable
// reason and the offset or index at which the offending data was found.
type DecodeError struct {
	Kind   error
	Reason string
	Offset int64
}

func (e *DecodeError) Error() string {
	if e.Offset != 0 {
		return fmt.Sprintf("%s: %s (at offset %d)", e.Kind, e.Reason, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Kind }

func malformedf(offset int64, format string, args ...any) error {
	return &DecodeError{Kind: ErrMalformed, Reason: fmt.Sprintf(format, args...), Offset: offset}
}

func schemaContractf(offset int64, format string, args ...any) error {
	return &DecodeError{Kind: ErrSchemaContract, Reason: fmt.Sprintf(format, args...), Offset: offset}
}

func resourceLimitf(offset int64, format string, args ...any) error {
	return &DecodeError{Kind: ErrResourceLimit, Reason: fmt.Sprintf(format, args...), Offset: offset}
}

func notSupportedf(format string, args ...any) error {
	return &DecodeError{Kind: ErrNotSupported, Reason: fmt.Sprintf(format, args...)}
}
