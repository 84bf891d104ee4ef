package schema

// Step describes one "layer" of the logical nested value model (the
// dremel package's Nested[T]) that a leaf's ancestor chain contributes. Runs
// of consecutive
// Required/Optional ancestors collapse into a single step, since a single
// leaf's flat levels cannot distinguish which of several optional ancestors
// was absent — only how far presence reached. A Repeated ancestor always
// starts its own step, since it additionally introduces a repetition level
// and a distinct "present but empty" state.
type Step struct {
	Repeated bool
	// MinDef is the definition level reached by this step's own ancestors
	// alone. For a Repeated step it is the value recorded for a present but
	// empty list (a null list records MinDef-1); for a trailing non-repeated
	// step it is the value recorded for a null field/struct.
	MinDef uint32
	// MaxDef is the definition level reached once this step itself is
	// confirmed present (a non-empty list, or a present scalar/field).
	MaxDef uint32
	// Rep is the repetition level emitted for continuations at this depth;
	// meaningful only when Repeated.
	Rep uint32
}

// Leaf is a primitive node's descriptor as seen by the column chunk writer
// and reader: its path from the root, physical type, and precomputed level
// metadata.
type Leaf struct {
	NodeIndex  int
	Path       []string
	Physical   PhysicalType
	TypeLength int
	Levels     LevelInfo
	IsString   bool // ByteArray tagged with the UTF-8 logical annotation
	// Steps is the ordered (outermost-first) decomposition of the leaf's
	// ancestor chain into Nested<T> layers, used by the level computer and
	// array reconstructor.
	Steps []Step
}

// Leaves returns every leaf node in the schema, in depth-first, left-to-right
// order — the order the level computer and orchestrator iterate leaves in.
func (s *Schema) Leaves() []Leaf {
	var leaves []Leaf
	var walk func(index int)
	walk = func(index int) {
		node := &s.Nodes[index]
		if node.IsLeaf() {
			leaves = append(leaves, Leaf{
				NodeIndex:  index,
				Path:       s.Path(index),
				Physical:   node.Physical,
				TypeLength: node.TypeLength,
				Levels:     s.Levels[index],
				IsString:   node.Physical == ByteArray && node.Logical == StringLogical,
				Steps:      s.leafSteps(index),
			})
			return
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(s.Root)
	return leaves
}

// leafSteps walks the root-to-leaf ancestor chain (inclusive of the leaf
// itself) and groups it into Steps.
func (s *Schema) leafSteps(leafIndex int) []Step {
	var chain []int
	for i := leafIndex; i != -1; i = s.Nodes[i].Parent {
		chain = append([]int{i}, chain...)
	}

	var steps []Step
	var def, rep uint32
	pendingMin := uint32(0)

	for _, idx := range chain {
		switch s.Nodes[idx].Repetition {
		case Required, RepetitionNone:
			// No contribution, no step boundary.
		case Optional:
			def++
		case Repeated:
			steps = append(steps, Step{Repeated: true, MinDef: def, MaxDef: def + 1, Rep: rep + 1})
			def++
			rep++
			pendingMin = def
		}
	}

	// A trailing non-repeated step is always present, even when it carries
	// no extra nullability of its own (MinDef == MaxDef, a required scalar
	// directly following the last repeated ancestor, or a wholly required
	// leaf with no repeated ancestor at all): the level computer and
	// reconstructor both rely on there being exactly one terminal step to
	// decide the scalar's own presence.
	steps = append(steps, Step{Repeated: false, MinDef: pendingMin, MaxDef: def})

	return steps
}

// LeafByPath returns the leaf matching the given root-to-leaf path.
func (s *Schema) LeafByPath(path []string) (Leaf, bool) {
	for _, leaf := range s.Leaves() {
		if pathEqual(leaf.Path, path) {
			return leaf, true
		}
	}
	return Leaf{}, false
}

func pathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
