// Package geom provides the bezier path and affine-transform primitives
// shared by font outline extraction, part grouping and scene lowering.
//
// It favors the teacher's plain-struct style over parallel verb/point
// arrays: a Path is a flat ordered slice of Op values, each carrying its
// own operands.
package geom

import (
	"fmt"
	"math"
)

// Point is a 2-D coordinate in font units or scene pixels, depending on
// context.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Lerp linearly interpolates between p and q at t in [0,1].
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// OpKind identifies the kind of a path operation.
type OpKind uint8

const (
	MoveTo OpKind = iota
	LineTo
	QuadTo
	CurveTo
	ClosePath
)

// String returns a short mnemonic for the op kind, used in diagnostics.
func (k OpKind) String() string {
	switch k {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case QuadTo:
		return "QuadTo"
	case CurveTo:
		return "CurveTo"
	case ClosePath:
		return "ClosePath"
	default:
		return "Unknown"
	}
}

// Op is one path operation. Operand usage by kind:
//   - MoveTo, LineTo: P1 is the destination point.
//   - QuadTo: P1 is the control point, P2 is the destination.
//   - CurveTo: P1, P2 are control points, P3 is the destination.
//   - ClosePath: no operands.
type Op struct {
	Kind OpKind
	P1   Point
	P2   Point
	P3   Point
}

// End returns the on-curve destination point of op, or the zero point for
// ClosePath.
func (op Op) End() Point {
	switch op.Kind {
	case MoveTo, LineTo:
		return op.P1
	case QuadTo:
		return op.P2
	case CurveTo:
		return op.P3
	default:
		return Point{}
	}
}

// Path is an ordered sequence of path operations over 2-D points.
type Path struct {
	Ops []Op
}

// MoveTo appends a MoveTo operation.
func (p *Path) MoveTo(to Point) { p.Ops = append(p.Ops, Op{Kind: MoveTo, P1: to}) }

// LineTo appends a LineTo operation.
func (p *Path) LineTo(to Point) { p.Ops = append(p.Ops, Op{Kind: LineTo, P1: to}) }

// QuadTo appends a quadratic-bezier operation.
func (p *Path) QuadTo(ctrl, to Point) { p.Ops = append(p.Ops, Op{Kind: QuadTo, P1: ctrl, P2: to}) }

// CurveTo appends a cubic-bezier operation.
func (p *Path) CurveTo(c0, c1, to Point) {
	p.Ops = append(p.Ops, Op{Kind: CurveTo, P1: c0, P2: c1, P3: to})
}

// Close appends a ClosePath operation.
func (p *Path) Close() { p.Ops = append(p.Ops, Op{Kind: ClosePath}) }

// OpKinds returns the sequence of operation kinds, used for
// interpolation-compatibility checks.
func (p Path) OpKinds() []OpKind {
	kinds := make([]OpKind, len(p.Ops))
	for i, op := range p.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}

// CompatibleWith reports whether p and q have identical op-kind sequences,
// in order — the interpolation-compatibility test of spec §8 property 6.
func (p Path) CompatibleWith(q Path) bool {
	if len(p.Ops) != len(q.Ops) {
		return false
	}
	for i, op := range p.Ops {
		if op.Kind != q.Ops[i].Kind {
			return false
		}
	}
	return true
}

// Subpath is a maximal slice of a Path beginning with a MoveTo and
// containing no further MoveTo until its end.
type Subpath struct {
	Ops []Op
}

// Subpaths splits p into its maximal MoveTo-delimited subpaths.
func (p Path) Subpaths() []Subpath {
	var subs []Subpath
	var cur []Op
	for _, op := range p.Ops {
		if op.Kind == MoveTo && len(cur) > 0 {
			subs = append(subs, Subpath{Ops: cur})
			cur = nil
		}
		cur = append(cur, op)
	}
	if len(cur) > 0 {
		subs = append(subs, Subpath{Ops: cur})
	}
	return subs
}

// Anchor returns the subpath's initial MoveTo point.
func (s Subpath) Anchor() Point {
	if len(s.Ops) == 0 {
		return Point{}
	}
	return s.Ops[0].P1
}

// BoundingBox describes an axis-aligned bounding rectangle.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Empty reports whether the box has zero or negative area.
func (b BoundingBox) Empty() bool {
	return b.MaxX <= b.MinX || b.MaxY <= b.MinY
}

// Area returns the box's area (zero for an empty box).
func (b BoundingBox) Area() float64 {
	if b.Empty() {
		return 0
	}
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY)
}

// Center returns the box's centroid.
func (b BoundingBox) Center() Point {
	return Point{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

// Contains reports whether b fully contains o.
func (b BoundingBox) Contains(o BoundingBox) bool {
	return o.MinX >= b.MinX && o.MinY >= b.MinY && o.MaxX <= b.MaxX && o.MaxY <= b.MaxY
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// flattenPoints returns the on-curve and control points visited by a
// subpath, coarse enough for bounding-box and winding purposes. Curves
// contribute their control points too, which over-estimates extrema
// slightly but never under-estimates — acceptable for a bounding box.
func flattenPoints(ops []Op) []Point {
	pts := make([]Point, 0, len(ops)*2)
	for _, op := range ops {
		switch op.Kind {
		case MoveTo, LineTo:
			pts = append(pts, op.P1)
		case QuadTo:
			pts = append(pts, op.P1, op.P2)
		case CurveTo:
			pts = append(pts, op.P1, op.P2, op.P3)
		}
	}
	return pts
}

// BoundingBox computes the subpath's (over-approximated) bounding box.
func (s Subpath) BoundingBox() BoundingBox {
	pts := flattenPoints(s.Ops)
	if len(pts) == 0 {
		return BoundingBox{}
	}
	box := BoundingBox{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		box.MinX = math.Min(box.MinX, p.X)
		box.MinY = math.Min(box.MinY, p.Y)
		box.MaxX = math.Max(box.MaxX, p.X)
		box.MaxY = math.Max(box.MaxY, p.Y)
	}
	return box
}

// BoundingBox computes the union of all subpath bounding boxes in p.
func (p Path) BoundingBox() BoundingBox {
	var box BoundingBox
	first := true
	for _, s := range p.Subpaths() {
		b := s.BoundingBox()
		if first {
			box = b
			first = false
			continue
		}
		box = box.Union(b)
	}
	return box
}

// SignedArea computes the subpath's signed area via the shoelace formula
// over its on-curve vertices (MoveTo/LineTo points, and curve endpoints).
// Positive area is counter-clockwise in a y-up frame.
func (s Subpath) SignedArea() float64 {
	var pts []Point
	for _, op := range s.Ops {
		switch op.Kind {
		case MoveTo, LineTo:
			pts = append(pts, op.P1)
		case QuadTo:
			pts = append(pts, op.P2)
		case CurveTo:
			pts = append(pts, op.P3)
		}
	}
	if len(pts) < 3 {
		return 0
	}
	area := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area / 2
}

// WindingAt sums the signed crossing number of s around point pt (nonzero
// fill rule), treating curve segments as their chord for the crossing
// test — an approximation adequate for the shallow curves typical of icon
// glyphs.
func (s Subpath) WindingAt(pt Point) int {
	pts := flattenOnCurve(s.Ops)
	if len(pts) < 2 {
		return 0
	}
	winding := 0
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		if a.Y <= pt.Y {
			if b.Y > pt.Y && isLeft(a, b, pt) > 0 {
				winding++
			}
		} else {
			if b.Y <= pt.Y && isLeft(a, b, pt) < 0 {
				winding--
			}
		}
	}
	return winding
}

func isLeft(a, b, pt Point) float64 {
	return (b.X-a.X)*(pt.Y-a.Y) - (pt.X-a.X)*(b.Y-a.Y)
}

// flattenOnCurve returns only the on-curve vertices of a subpath, in
// order, closing it implicitly back to the anchor.
func flattenOnCurve(ops []Op) []Point {
	var pts []Point
	for _, op := range ops {
		switch op.Kind {
		case MoveTo, LineTo:
			pts = append(pts, op.P1)
		case QuadTo:
			pts = append(pts, op.P2)
		case CurveTo:
			pts = append(pts, op.P3)
		}
	}
	return pts
}

// ContainsPoint reports whether pt is strictly contained in subpath s,
// tested via the nonzero winding rule on its on-curve polygon. Used as the
// fallback probe containment check in part grouping.
func (s Subpath) ContainsPoint(pt Point) bool {
	return s.WindingAt(pt) != 0
}

// Transform applies affine a to every point operand of op and returns the
// transformed op.
func (op Op) Transform(a Affine) Op {
	out := op
	switch op.Kind {
	case MoveTo, LineTo:
		out.P1 = a.Apply(op.P1)
	case QuadTo:
		out.P1 = a.Apply(op.P1)
		out.P2 = a.Apply(op.P2)
	case CurveTo:
		out.P1 = a.Apply(op.P1)
		out.P2 = a.Apply(op.P2)
		out.P3 = a.Apply(op.P3)
	}
	return out
}

// Transform applies affine a to every op in p and returns a new Path.
func (p Path) Transform(a Affine) Path {
	out := Path{Ops: make([]Op, len(p.Ops))}
	for i, op := range p.Ops {
		out.Ops[i] = op.Transform(a)
	}
	return out
}

// Affine is a 2-D affine transform x' = a*x + b*y + e, y' = c*x + d*y + f.
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine { return Affine{A: 1, D: 1} }

// Translate returns a pure translation transform.
func Translate(dx, dy float64) Affine { return Affine{A: 1, D: 1, E: dx, F: dy} }

// Scale returns a pure (possibly nonuniform) scale transform about the
// origin.
func Scale(sx, sy float64) Affine { return Affine{A: sx, D: sy} }

// Apply transforms point p by a.
func (a Affine) Apply(p Point) Point {
	return Point{
		X: a.A*p.X + a.B*p.Y + a.E,
		Y: a.C*p.X + a.D*p.Y + a.F,
	}
}

// Then returns the affine equivalent to applying a first, then b:
// a.Then(b).Apply(p) == b.Apply(a.Apply(p)).
func (a Affine) Then(b Affine) Affine {
	return Affine{
		A: b.A*a.A + b.B*a.C,
		B: b.A*a.B + b.B*a.D,
		C: b.C*a.A + b.D*a.C,
		D: b.C*a.B + b.D*a.D,
		E: b.A*a.E + b.B*a.F + b.E,
		F: b.C*a.E + b.D*a.F + b.F,
	}
}

// Determinant returns a*d - b*c.
func (a Affine) Determinant() float64 {
	return a.A*a.D - a.B*a.C
}

// DrawBox is the font's em-square rectangle [0,0]..[upem,upem] (y-up), or
// the equal-sized y-down scene rectangle the core maps it to.
type DrawBox struct {
	Width, Height float64
}

// SrcToDest builds the font→scene affine described by spec §4.2: translate
// the source drawbox to the origin, negate Y, scale nonuniformly to the
// destination drawbox size, then translate to the destination origin. The
// result always has strictly negative determinant (spec §8 property 2).
func SrcToDest(src, dest DrawBox) (Affine, error) {
	if src.Width <= 0 || src.Height <= 0 {
		return Affine{}, fmt.Errorf("geom: degenerate source drawbox %v", src)
	}
	sx := dest.Width / src.Width
	sy := dest.Height / src.Height
	// Translate src origin to (0,0), negate Y, scale, translate to dest origin.
	xform := Translate(0, 0).
		Then(Affine{A: 1, D: -1}).
		Then(Scale(sx, sy)).
		Then(Translate(0, dest.Height))
	if xform.Determinant() >= 0 {
		return Affine{}, fmt.Errorf("geom: font->scene transform has non-negative determinant %g", xform.Determinant())
	}
	return xform, nil
}
