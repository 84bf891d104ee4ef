// Package dremel implements the level computer (write path) and array
// reconstructor (read path) of the Dremel shredding algorithm: the
// translation between a logical tree of optional/repeated values for one
// leaf path and the flat, per-leaf (value, definition level, repetition
// level) streams Parquet stores on disk.
package dremel

import "fmt"

// Kind tags the variant held by a Nested value.
type Kind int

const (
	// ValueKind holds a present scalar.
	ValueKind Kind = iota
	// NullKind marks an absent list, struct, or element: "not present".
	NullKind
	// EmptyKind marks a list that is present but holds zero elements.
	EmptyKind
	// ListKind holds zero or more child Nested values.
	ListKind
)

// Nested is the tagged tree used in place of deeply nested, runtime-cast
// erased containers: `Value(T) | Null | Empty | List([Nested<T>])`. One
// Nested[T] value represents everything a single
// leaf path needs to describe for one top-level record: every Repeated
// ancestor contributes one List layer, and a trailing run of Optional
// ancestors (including the leaf's own optionality) collapses into one
// terminal Value/Null layer.
type Nested[T any] struct {
	Kind  Kind
	Value T
	Items []Nested[T]
}

// Val wraps a present scalar.
func Val[T any](v T) Nested[T] { return Nested[T]{Kind: ValueKind, Value: v} }

// Null builds an absent list/element/struct.
func Null[T any]() Nested[T] { return Nested[T]{Kind: NullKind} }

// Empty builds a present-but-empty list.
func Empty[T any]() Nested[T] { return Nested[T]{Kind: EmptyKind} }

// List builds a present list with the given items.
func List[T any](items ...Nested[T]) Nested[T] {
	return Nested[T]{Kind: ListKind, Items: items}
}

func (n Nested[T]) String() string {
	switch n.Kind {
	case ValueKind:
		return fmt.Sprintf("Value(%v)", n.Value)
	case NullKind:
		return "Null"
	case EmptyKind:
		return "Empty"
	case ListKind:
		return fmt.Sprintf("List%v", n.Items)
	default:
		return fmt.Sprintf("Nested(kind=%d)", n.Kind)
	}
}
