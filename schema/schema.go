// Package schema models the logical tree of optional/repeated records that
// the Dremel core shreds into, and reassembles from, per-leaf columnar
// streams. Nodes live in a flat slice addressed by index rather than as a
// pointer-linked tree: this keeps the tree value-typed (copyable, easy to
// project into read-only slices) and resolves the "parent backlink" problem
// without cyclic ownership.
package schema

import "fmt"

// Repetition is a node's repetition type. The root node (and only the root)
// carries RepetitionNone.
type Repetition int

const (
	RepetitionNone Repetition = iota
	Required
	Optional
	Repeated
)

func (r Repetition) String() string {
	switch r {
	case RepetitionNone:
		return "NONE"
	case Required:
		return "REQUIRED"
	case Optional:
		return "OPTIONAL"
	case Repeated:
		return "REPEATED"
	default:
		return fmt.Sprintf("Repetition(%d)", int(r))
	}
}

// PhysicalType is the enumerated set of leaf value encodings.
type PhysicalType int

const (
	Group PhysicalType = iota // non-leaf marker; only valid on group nodes
	Bool
	Int32
	Int64
	Float32
	Float64
	ByteArray
	FixedByteArray
)

func (t PhysicalType) String() string {
	switch t {
	case Group:
		return "GROUP"
	case Bool:
		return "BOOL"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Float32:
		return "FLOAT"
	case Float64:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return fmt.Sprintf("PhysicalType(%d)", int(t))
	}
}

// LogicalType is a passive annotation layered over a physical type or group,
// giving it a richer client-facing meaning. Structs carry LogicalNone.
type LogicalType int

const (
	LogicalNone LogicalType = iota
	ListLogical
	MapLogical
	StringLogical
	UUIDLogical
	EnumLogical
)

// Node is one entry in a flat schema tree. Leaves have Physical != Group and
// no Children; groups have Physical == Group and one or more Children.
type Node struct {
	Name       string
	Repetition Repetition
	Logical    LogicalType
	Physical   PhysicalType
	TypeLength int // meaningful only when Physical == FixedByteArray
	Parent     int // index into Schema.Nodes, -1 for the root
	Children   []int
}

func (n *Node) IsLeaf() bool { return n.Physical != Group }

// LevelInfo is the per-node `(max_def, max_rep, repeated_ancestor_def)`
// triple, computed once from the node's position in the tree. It is
// meaningful for any node, not only leaves: the orchestrator needs a
// struct's own LevelInfo to select and drive its validity projector.
type LevelInfo struct {
	MaxDef              uint32
	MaxRep              uint32
	RepeatedAncestorDef uint32
}

// Schema is a flat, indexed schema tree together with the precomputed level
// metadata for every node.
type Schema struct {
	Nodes  []Node
	Levels []LevelInfo
	Root   int
}

// Build assembles a Schema from a root node description and computes every
// node's LevelInfo in one top-down pass. The root itself must carry
// RepetitionNone.
func Build(root NodeSpec) (*Schema, error) {
	if root.Repetition != RepetitionNone {
		return nil, fmt.Errorf("schema root must have RepetitionNone, got %s", root.Repetition)
	}
	s := &Schema{Root: 0}
	if err := s.addNode(root, -1, LevelInfo{}); err != nil {
		return nil, err
	}
	return s, nil
}

// NodeSpec is the convenient literal form used to describe a schema before
// it is flattened and level-annotated by Build.
type NodeSpec struct {
	Name       string
	Repetition Repetition
	Logical    LogicalType
	Physical   PhysicalType // Group for non-leaves
	TypeLength int
	Children   []NodeSpec
}

func (s *Schema) addNode(spec NodeSpec, parent int, parentLevels LevelInfo) error {
	if spec.Physical == Group && len(spec.Children) == 0 {
		return fmt.Errorf("group node %q has no children", spec.Name)
	}
	if spec.Physical != Group && len(spec.Children) != 0 {
		return fmt.Errorf("leaf node %q must not have children", spec.Name)
	}

	levels := parentLevels
	switch spec.Repetition {
	case Optional:
		levels.MaxDef++
	case Repeated:
		// The threshold at which this repeated ancestor is "present with
		// zero elements" is the def level reachable through its own
		// ancestors alone, before this node's contribution is added: that
		// contribution instead marks "at least one element present".
		levels.RepeatedAncestorDef = levels.MaxDef
		levels.MaxDef++
		levels.MaxRep++
	}

	index := len(s.Nodes)
	s.Nodes = append(s.Nodes, Node{
		Name:       spec.Name,
		Repetition: spec.Repetition,
		Logical:    spec.Logical,
		Physical:   spec.Physical,
		TypeLength: spec.TypeLength,
		Parent:     parent,
	})
	s.Levels = append(s.Levels, levels)

	for _, child := range spec.Children {
		childIndex := len(s.Nodes)
		s.Nodes[index].Children = append(s.Nodes[index].Children, childIndex)
		if err := s.addNode(child, index, levels); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the root-to-node sequence of names for the given node index.
func (s *Schema) Path(index int) []string {
	var path []string
	for index != -1 && index != s.Root {
		path = append([]string{s.Nodes[index].Name}, path...)
		index = s.Nodes[index].Parent
	}
	return path
}
