package lottie

import (
	"math"
	"sort"

	"github.com/rsheeter/iconimation/geom"
	"github.com/rsheeter/iconimation/ir"
	"github.com/rsheeter/iconimation/spring"
	"github.com/rsheeter/iconimation/spring2cubic"
)

// Lower produces a Lottie Document from anim (spec §4.8, C8): one layer
// containing one root group item mirroring anim.Root.
func Lower(anim *ir.IRAnimation) (*Document, error) {
	root, err := lowerGroup(anim.Root, anim.FrameRate)
	if err != nil {
		return nil, err
	}
	return &Document{
		IP:     0,
		OP:     anim.Frames,
		FR:     anim.FrameRate,
		W:      anim.Width,
		H:      anim.Height,
		Layers: []Layer{{Shapes: []Item{root}}},
	}, nil
}

// lowerGroup lowers one ir.Group to a Lottie "gr" item (spec §4.8's
// per-Group steps 1-4): children first, then a fill item (defaultFillColor
// when g.Fill is unset), then a transform item anchored at the group's
// center.
func lowerGroup(g *ir.Group, frameRate float64) (Item, error) {
	item := Item{Type: "gr"}
	for _, child := range g.Children {
		switch c := child.(type) {
		case *ir.Group:
			sub, err := lowerGroup(c, frameRate)
			if err != nil {
				return Item{}, err
			}
			item.Items = append(item.Items, sub)
		case *ir.Shape:
			shapeItems, err := lowerShape(c)
			if err != nil {
				return Item{}, err
			}
			item.Items = append(item.Items, shapeItems...)
		}
	}
	fill := defaultFillColor
	if g.Fill != nil {
		fill = Color{R: g.Fill.R, G: g.Fill.G, B: g.Fill.B}
	}
	item.Items = append(item.Items, Item{Type: "fl", Color: &fill})
	transform, err := lowerTransform(g, frameRate)
	if err != nil {
		return Item{}, err
	}
	item.Items = append(item.Items, transform)
	return item, nil
}

// lowerTransform builds the "tr" item for g: anchor and position both equal
// g.Center (spec §4.8 point 3), and animated/static rotate, scale and
// translate properties.
func lowerTransform(g *ir.Group, frameRate float64) (Item, error) {
	rotation, err := lowerFloat(g.Rotate, spring.Rotation, frameRate)
	if err != nil {
		return Item{}, err
	}
	scale, err := lowerVec2(g.Scale, func(s ir.Scale) (float64, float64) { return s.X, s.Y }, spring.Scale, frameRate)
	if err != nil {
		return Item{}, err
	}
	translate, err := lowerVec2(g.Translate, func(p geom.Point) (float64, float64) { return p.X, p.Y }, spring.Position, frameRate)
	if err != nil {
		return Item{}, err
	}
	anchor := g.Center
	return Item{
		Type:      "tr",
		Anchor:    &anchor,
		Position:  &anchor,
		Rotation:  rotation,
		Scale:     scale,
		Translate: translate,
	}, nil
}

// lowerShape lowers one ir.Shape to one or more Lottie "sh" items (spec
// §4.8's per-Shape rules): one item per subpath when static, or a single
// item with an animated vertex series when animated.
func lowerShape(s *ir.Shape) ([]Item, error) {
	if err := s.CheckCompatible(); err != nil {
		return nil, err
	}

	if s.Path.Single() {
		var items []Item
		for _, sub := range s.Path.First().Subpaths() {
			items = append(items, Item{
				Type: "sh",
				Path: &AnimatableShape{Static: true, Value: []ShapeValue{subpathToShapeValue(sub)}},
			})
		}
		return items, nil
	}

	// Shape morphs are not scalar-spring-able (spec §9's capability-set
	// design note): every keyframe keeps the default ease regardless of
	// any spring tag on s.Path.
	keys := s.Path.Keys
	kfs := make([]ShapeKeyframe, len(keys))
	for i, key := range keys {
		var vals []ShapeValue
		for _, sub := range key.Value.Subpaths() {
			vals = append(vals, subpathToShapeValue(sub))
		}
		kfs[i] = ShapeKeyframe{T: key.Frame, Value: vals, Ease: defaultEase}
	}
	return []Item{{Type: "sh", Path: &AnimatableShape{Keyframes: kfs}}}, nil
}

// floatKeyframes lowers a Keyframed[float64] series to a FloatKeyframe
// list, expanding each consecutive pair via spring2cubic when k carries a
// spring tag (spec §4.8 point 3).
func floatKeyframes(k ir.Keyframed[float64], kind spring.ValueKind, frameRate float64) ([]FloatKeyframe, error) {
	keys := k.Keys
	out := []FloatKeyframe{{T: keys[0].Frame, Value: keys[0].Value, Ease: defaultEase}}
	for i := 0; i < len(keys)-1; i++ {
		if k.SpringPreset == nil {
			out = append(out, FloatKeyframe{T: keys[i+1].Frame, Value: keys[i+1].Value, Ease: defaultEase})
			continue
		}
		segment, err := expandScalarSpring(keys[i], keys[i+1], *k.SpringPreset, kind, frameRate)
		if err != nil {
			return nil, err
		}
		out = append(out, segment...)
	}
	return out, nil
}

// expandScalarSpring expands the transition prev->next via the named
// spring preset into a sequence of FloatKeyframes, one per cubic produced
// by spring2cubic.HandTuned (spec §4.5/§4.8 point 3).
func expandScalarSpring(prev, next ir.Keyframe[float64], preset spring.Preset, kind spring.ValueKind, frameRate float64) ([]FloatKeyframe, error) {
	s, ok := spring.ByPreset(preset)
	if !ok {
		return nil, spring2cubic.ErrUnrecognizedSpring
	}
	av := spring.NewAnimatedValue(prev.Value, next.Value, kind)
	cubics, err := spring2cubic.HandTuned(preset, s, av, frameRate)
	if err != nil {
		return nil, err
	}
	out := make([]FloatKeyframe, len(cubics))
	for i, c := range cubics {
		out[i] = FloatKeyframe{T: prev.Frame + c.P3.X, Value: c.P3.Y, Ease: normalizeCubic(c)}
	}
	return out, nil
}

// normalizeCubic maps c onto the unit square via translate+nonuniform-scale
// (spec §4.8 point 4), returning its control points as an Ease.
func normalizeCubic(c spring2cubic.Cubic) Ease {
	dx := c.P3.X - c.P0.X
	dy := c.P3.Y - c.P0.Y
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	out := geom.Point{X: (c.P1.X - c.P0.X) / dx, Y: (c.P1.Y - c.P0.Y) / dy}
	in := geom.Point{X: (c.P2.X - c.P0.X) / dx, Y: (c.P2.Y - c.P0.Y) / dy}
	return Ease{In: in, Out: out}
}

// lowerFloat lowers k to an AnimatableFloat, static if k carries a single
// keyframe.
func lowerFloat(k ir.Keyframed[float64], kind spring.ValueKind, frameRate float64) (*AnimatableFloat, error) {
	if k.Single() {
		return &AnimatableFloat{Static: true, Value: k.First()}, nil
	}
	kfs, err := floatKeyframes(k, kind, frameRate)
	if err != nil {
		return nil, err
	}
	return &AnimatableFloat{Keyframes: kfs}, nil
}

// lowerVec2 lowers a 2-D keyframed series (ir.Scale or geom.Point) to an
// AnimatableVec2 by expanding its X and Y components as independent scalar
// series (spec §9's per-dimension capability-set design), then merging
// them onto a shared time grid.
func lowerVec2[T any](k ir.Keyframed[T], components func(T) (float64, float64), kind spring.ValueKind, frameRate float64) (*AnimatableVec2, error) {
	if k.Single() {
		x, y := components(k.First())
		return &AnimatableVec2{Static: true, Value: [2]float64{x, y}}, nil
	}

	xKeys := make([]ir.Keyframe[float64], len(k.Keys))
	yKeys := make([]ir.Keyframe[float64], len(k.Keys))
	for i, key := range k.Keys {
		x, y := components(key.Value)
		xKeys[i] = ir.Keyframe[float64]{Frame: key.Frame, Value: x}
		yKeys[i] = ir.Keyframe[float64]{Frame: key.Frame, Value: y}
	}
	xSeries := ir.Keyframed[float64]{Keys: xKeys, SpringPreset: k.SpringPreset}
	ySeries := ir.Keyframed[float64]{Keys: yKeys, SpringPreset: k.SpringPreset}

	xKfs, err := floatKeyframes(xSeries, kind, frameRate)
	if err != nil {
		return nil, err
	}
	yKfs, err := floatKeyframes(ySeries, kind, frameRate)
	if err != nil {
		return nil, err
	}
	return &AnimatableVec2{Keyframes: zipVec2(xKfs, yKfs)}, nil
}

// zipVec2 merges two independently-expanded scalar keyframe lists onto the
// union of their time positions, linearly interpolating either channel at
// times where only the other channel has a keyframe.
func zipVec2(xKfs, yKfs []FloatKeyframe) []Vec2Keyframe {
	seen := map[float64]bool{}
	var times []float64
	for _, k := range xKfs {
		if !seen[k.T] {
			seen[k.T] = true
			times = append(times, k.T)
		}
	}
	for _, k := range yKfs {
		if !seen[k.T] {
			seen[k.T] = true
			times = append(times, k.T)
		}
	}
	sort.Float64s(times)

	out := make([]Vec2Keyframe, len(times))
	for i, t := range times {
		out[i] = Vec2Keyframe{
			T:     t,
			Value: [2]float64{valueAtTime(xKfs, t), valueAtTime(yKfs, t)},
			Ease:  easeAtTime(xKfs, t),
		}
	}
	return out
}

func valueAtTime(kfs []FloatKeyframe, t float64) float64 {
	for _, k := range kfs {
		if k.T == t {
			return k.Value
		}
	}
	for i := 1; i < len(kfs); i++ {
		if kfs[i-1].T <= t && t <= kfs[i].T {
			span := kfs[i].T - kfs[i-1].T
			if span == 0 {
				return kfs[i-1].Value
			}
			frac := (t - kfs[i-1].T) / span
			return kfs[i-1].Value + (kfs[i].Value-kfs[i-1].Value)*frac
		}
	}
	if len(kfs) > 0 {
		return kfs[len(kfs)-1].Value
	}
	return 0
}

func easeAtTime(kfs []FloatKeyframe, t float64) Ease {
	for _, k := range kfs {
		if k.T == t {
			return k.Ease
		}
	}
	return defaultEase
}

// subpathToShapeValue encodes sub as a Lottie ShapeValue (spec §4.8's
// vertex/tangent encoding): on-curve vertices with relative in/out control
// handles, a closed flag, and a winding direction.
func subpathToShapeValue(sub geom.Subpath) ShapeValue {
	var verts, outs, ins []geom.Point
	closed := false
	var cur geom.Point

	for _, op := range sub.Ops {
		switch op.Kind {
		case geom.MoveTo:
			cur = op.P1
			verts = append(verts, cur)
			outs = append(outs, geom.Point{})
			ins = append(ins, geom.Point{})
		case geom.LineTo:
			to := op.P1
			verts = append(verts, to)
			outs = append(outs, geom.Point{})
			ins = append(ins, geom.Point{})
			cur = to
		case geom.QuadTo:
			c0 := cur.Scale(1.0 / 3).Add(op.P1.Scale(2.0 / 3))
			c1 := op.P1.Scale(2.0 / 3).Add(op.P2.Scale(1.0 / 3))
			outs[len(outs)-1] = c0.Sub(cur)
			to := op.P2
			verts = append(verts, to)
			ins = append(ins, c1.Sub(to))
			outs = append(outs, geom.Point{})
			cur = to
		case geom.CurveTo:
			outs[len(outs)-1] = op.P1.Sub(cur)
			to := op.P3
			verts = append(verts, to)
			ins = append(ins, op.P2.Sub(to))
			outs = append(outs, geom.Point{})
			cur = to
		case geom.ClosePath:
			closed = true
		}
	}

	if closed && len(verts) > 1 && pointsApproxEqual(verts[len(verts)-1], verts[0]) {
		last := len(verts) - 1
		ins[0] = ins[last]
		verts = verts[:last]
		ins = ins[:last]
		outs = outs[:last]
	}

	direction := 1.0
	if sub.SignedArea() < 0 {
		direction = 3.0
	}

	return ShapeValue{
		Closed:     closed,
		Direction:  direction,
		Vertices:   toPairs(verts),
		InTangent:  toPairs(ins),
		OutTangent: toPairs(outs),
	}
}

func toPairs(pts []geom.Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

func pointsApproxEqual(a, b geom.Point) bool {
	const eps = 1e-6
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}
