package dremel

import (
	"fmt"
	"math"

	"github.com/segmentio/parquet-core/schema"
)

type frameState int

const (
	uninitialized frameState = iota
	nullState
	emptyState
	populatedState
)

type frame[T any] struct {
	state frameState
	items []Nested[T]
}

// Reconstruct rebuilds the sequence of top-level logical records for a leaf
// from its aligned (def, rep, non-null values) streams. It unifies what
// would otherwise be separate single-level and multi-level reconstructor
// flavors into one general algorithm parameterized by the leaf's repeated
// Steps, since the recursive per-depth state machine generalizes to any
// nesting depth without a specialized fast path for the common max_rep<=1
// case.
func Reconstruct[T any](defs, reps []uint32, values []T, steps []schema.Step, maxDef uint32) ([]Nested[T], error) {
	if len(defs) != len(reps) {
		return nil, fmt.Errorf("dremel: def/rep length mismatch: %d vs %d", len(defs), len(reps))
	}

	var repeatedSteps []schema.Step
	for _, st := range steps {
		if st.Repeated {
			repeatedSteps = append(repeatedSteps, st)
		}
	}
	D := len(repeatedSteps)

	if D == 0 {
		return reconstructFlat(defs, values, maxDef)
	}

	frames := make([]frame[T], D)
	var records []Nested[T]
	valueIdx := 0

	closeFrom := func(k int) {
		for i := D - 1; i >= k; i-- {
			f := frames[i]
			var result Nested[T]
			switch f.state {
			case nullState:
				result = Null[T]()
			case emptyState:
				result = Empty[T]()
			case populatedState:
				result = List(f.items...)
			default:
				frames[i] = frame[T]{}
				continue
			}
			if i == 0 {
				records = append(records, result)
			} else {
				frames[i-1].items = append(frames[i-1].items, result)
			}
			frames[i] = frame[T]{}
		}
	}

	for i := range defs {
		def, rep := defs[i], reps[i]
		if def > maxDef {
			return nil, fmt.Errorf("dremel: def %d exceeds max_def %d at position %d", def, maxDef, i)
		}
		if rep > uint32(D) {
			return nil, fmt.Errorf("dremel: rep %d exceeds max_rep %d at position %d", rep, D, i)
		}

		if i != 0 && rep < uint32(D) {
			closeFrom(int(rep))
		}

		stop := false
		for k := int(rep); k < D && !stop; k++ {
			threshold := repeatedSteps[k].MinDef
			switch {
			case def < threshold:
				frames[k].state = nullState
				stop = true
			case def == threshold:
				frames[k].state = emptyState
			default:
				frames[k].state = populatedState
			}
		}

		lastThreshold := repeatedSteps[D-1].MinDef
		switch {
		case def == maxDef:
			if valueIdx >= len(values) {
				return nil, fmt.Errorf("dremel: value stream exhausted at position %d", i)
			}
			frames[D-1].items = append(frames[D-1].items, Val(values[valueIdx]))
			valueIdx++
		case def > lastThreshold:
			frames[D-1].items = append(frames[D-1].items, Null[T]())
		}
	}

	closeFrom(0)

	if valueIdx != len(values) {
		return nil, fmt.Errorf("dremel: %d value(s) left unconsumed after reconstruction", len(values)-valueIdx)
	}

	return records, nil
}

func reconstructFlat[T any](defs []uint32, values []T, maxDef uint32) ([]Nested[T], error) {
	records := make([]Nested[T], 0, len(defs))
	valueIdx := 0
	for i, def := range defs {
		if def > maxDef {
			return nil, fmt.Errorf("dremel: def %d exceeds max_def %d at position %d", def, maxDef, i)
		}
		if def == maxDef {
			if valueIdx >= len(values) {
				return nil, fmt.Errorf("dremel: value stream exhausted at position %d", i)
			}
			records = append(records, Val(values[valueIdx]))
			valueIdx++
		} else {
			records = append(records, Null[T]())
		}
	}
	if valueIdx != len(values) {
		return nil, fmt.Errorf("dremel: %d value(s) left unconsumed after reconstruction", len(values)-valueIdx)
	}
	return records, nil
}

// ListInfo is the offsets/validity projection produced by
// DefRepLevelsToListInfo and DefRepLevelsToBitmap.
type ListInfo struct {
	Offsets    []int32 // nil when projecting a struct validity bitmap
	ValidBits  []bool
	ValuesRead int
	NullCount  int
}

// DefRepLevelsToListInfo projects (def, rep) pairs at one nesting level into
// list offsets and a validity bitmap, the representation used by
// columnar/arrow-like materialization. valuesReadUpperBound, if non-zero,
// bounds ValuesRead as a defense against malformed input.
func DefRepLevelsToListInfo(defs, reps []uint32, info schema.LevelInfo, valuesReadUpperBound int) (*ListInfo, error) {
	if len(defs) != len(reps) {
		return nil, fmt.Errorf("dremel: def/rep length mismatch: %d vs %d", len(defs), len(reps))
	}

	result := &ListInfo{Offsets: []int32{0}}

	for i := range defs {
		def, rep := defs[i], reps[i]

		if rep > info.MaxRep {
			continue // belongs to a nested child; not this level's concern.
		}

		if rep == info.MaxRep {
			if def < info.RepeatedAncestorDef {
				continue // continuation of a null/empty ancestor list.
			}
			last := len(result.Offsets) - 1
			if result.Offsets[last] == math.MaxInt32 {
				return nil, fmt.Errorf("dremel: list offset overflow past INT32_MAX at position %d", i)
			}
			result.Offsets[last]++
			continue
		}

		// rep < info.MaxRep: starts a new list at this level.
		prev := result.Offsets[len(result.Offsets)-1]
		next := prev
		if def > info.RepeatedAncestorDef {
			if prev == math.MaxInt32 {
				return nil, fmt.Errorf("dremel: list offset overflow past INT32_MAX at position %d", i)
			}
			next = prev + 1
		}
		result.Offsets = append(result.Offsets, next)
		result.ValidBits = append(result.ValidBits, def >= info.RepeatedAncestorDef)
		result.ValuesRead++
		if def < info.RepeatedAncestorDef {
			result.NullCount++
		}
		if valuesReadUpperBound > 0 && result.ValuesRead > valuesReadUpperBound {
			return nil, fmt.Errorf("dremel: values_read exceeded upper bound %d", valuesReadUpperBound)
		}
	}

	return result, nil
}

// DefRepLevelsToBitmap projects a struct's validity bitmap from a
// representative repeated descendant's levels. structLevels is the struct's
// own LevelInfo; its components are incremented by one to match the
// descendant-level convention DefRepLevelsToListInfo expects before
// delegating.
func DefRepLevelsToBitmap(defs, reps []uint32, structLevels schema.LevelInfo) (*ListInfo, error) {
	adjusted := schema.LevelInfo{
		MaxDef:              structLevels.MaxDef + 1,
		MaxRep:              structLevels.MaxRep + 1,
		RepeatedAncestorDef: structLevels.RepeatedAncestorDef + 1,
	}
	info, err := DefRepLevelsToListInfo(defs, reps, adjusted, 0)
	if err != nil {
		return nil, err
	}
	info.Offsets = nil
	return info, nil
}
