package ir

import "github.com/rsheeter/iconimation/geom"

// Node is a child of a Group: either another Group or a Shape. It is a
// closed sum type (spec §9's tagged-variant guidance in place of runtime
// polymorphism), matching the teacher's Table-interface-plus-concrete-
// struct pattern.
type Node interface {
	isNode()
}

// Scale is a (x%, y%) scale pair, 100 meaning "unscaled" (spec §3).
type Scale struct {
	X, Y float64
}

// DefaultScale is the identity scale (100%, 100%).
var DefaultScale = Scale{X: 100, Y: 100}

// Color is an RGB fill color with components in 0..1 (spec §4.8 point 2).
type Color struct {
	R, G, B float64
}

// Group is a scene-graph tree node: a child list, a transform anchor
// (Center), an optional fill color, and three keyframed transforms
// (spec §3). Rotation and uniform scale always pivot around Center.
type Group struct {
	Children  []Node
	Center    geom.Point
	Fill      *Color
	Translate Keyframed[geom.Point]
	Scale     Keyframed[Scale]
	Rotate    Keyframed[float64]
}

func (*Group) isNode() {}

// NewGroup constructs a Group at the given anchor with default (identity)
// transforms, all at frame 0.
func NewGroup(center geom.Point) *Group {
	return &Group{
		Center:    center,
		Translate: MustKeyframed(Keyframe[geom.Point]{Frame: 0, Value: geom.Point{}}),
		Scale:     MustKeyframed(Keyframe[Scale]{Frame: 0, Value: DefaultScale}),
		Rotate:    MustKeyframed(Keyframe[float64]{Frame: 0, Value: 0}),
	}
}

// IsLeaf reports whether every child of g is a Shape (spec §4.6's
// "leaf groups" iteration target for per-group transform assignment in
// parts mode).
func (g *Group) IsLeaf() bool {
	if len(g.Children) == 0 {
		return false
	}
	for _, c := range g.Children {
		if _, ok := c.(*Shape); !ok {
			return false
		}
	}
	return true
}

// LeafGroups returns every descendant Group (including g itself) whose
// children are all Shapes, in depth-first order.
func (g *Group) LeafGroups() []*Group {
	var leaves []*Group
	var walk func(*Group)
	walk = func(n *Group) {
		if n.IsLeaf() {
			leaves = append(leaves, n)
			return
		}
		for _, c := range n.Children {
			if child, ok := c.(*Group); ok {
				walk(child)
			}
		}
	}
	walk(g)
	return leaves
}

// Shape is a leaf node wrapping a keyframed bezier path (spec §3). If its
// series has more than one keyframe, all keyframes must be interpolation-
// compatible (identical path-operation-kind sequence); lowering enforces
// this and fails with ErrIncompatiblePaths otherwise.
type Shape struct {
	Path Keyframed[geom.Path]
}

func (*Shape) isNode() {}

// ErrIncompatiblePaths is returned by lowering when a Shape's keyframes do
// not share an identical path-operation-kind sequence (spec §3/§7/§8
// property 6).
var ErrIncompatiblePaths = incompatiblePathsError{}

type incompatiblePathsError struct{}

func (incompatiblePathsError) Error() string {
	return "ir: shape keyframes are not interpolation-compatible"
}

// CheckCompatible validates that every keyframe of s.Path shares the first
// keyframe's path-operation-kind sequence, returning ErrIncompatiblePaths
// if not.
func (s *Shape) CheckCompatible() error {
	if len(s.Path.Keys) < 2 {
		return nil
	}
	first := s.Path.Keys[0].Value
	for _, k := range s.Path.Keys[1:] {
		if !first.CompatibleWith(k.Value) {
			return ErrIncompatiblePaths
		}
	}
	return nil
}
