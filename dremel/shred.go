package dremel

import (
	"fmt"

	"github.com/segmentio/parquet-core/schema"
)

// Levels is the flat, aligned output of shredding one or more records for a
// single leaf: a value stream holding only the non-null positions, and a
// def/rep level per logical position.
type Levels[T any] struct {
	Values []T
	Def    []uint32
	Rep    []uint32
}

func (l *Levels[T]) emit(value *T, def, rep uint32) {
	l.Def = append(l.Def, def)
	l.Rep = append(l.Rep, rep)
	if value != nil {
		l.Values = append(l.Values, *value)
	}
}

// Shred appends the flat levels for one top-level record to out, following
// an inductive construction generalized to arbitrary nesting depth via the
// leaf's Steps (one Nested layer per Step, outermost first).
func Shred[T any](out *Levels[T], record Nested[T], steps []schema.Step) error {
	return shredStep(out, record, steps, 0)
}

func shredStep[T any](out *Levels[T], v Nested[T], steps []schema.Step, rep uint32) error {
	if len(steps) == 0 {
		return fmt.Errorf("dremel: leaf has no steps to shred against")
	}
	step := steps[0]
	rest := steps[1:]

	if !step.Repeated {
		switch v.Kind {
		case ValueKind:
			val := v.Value
			out.emit(&val, step.MaxDef, rep)
			return nil
		case NullKind:
			out.emit(nil, step.MinDef, rep)
			return nil
		default:
			return fmt.Errorf("dremel: scalar step cannot hold kind %d", v.Kind)
		}
	}

	switch v.Kind {
	case NullKind:
		nullDef := uint32(0)
		if step.MinDef > 0 {
			nullDef = step.MinDef - 1
		}
		out.emit(nil, nullDef, rep)
		return nil
	case EmptyKind:
		out.emit(nil, step.MinDef, rep)
		return nil
	case ListKind:
		if len(v.Items) == 0 {
			out.emit(nil, step.MinDef, rep)
			return nil
		}
		itemRep := rep
		for i, item := range v.Items {
			if i > 0 {
				itemRep = step.Rep
			}
			if err := shredStep(out, item, rest, itemRep); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("dremel: repeated step cannot hold kind %d", v.Kind)
	}
}
