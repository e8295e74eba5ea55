package ir

import (
	"github.com/rsheeter/iconimation/geom"
	"github.com/rsheeter/iconimation/parts"
	"github.com/rsheeter/iconimation/spring"
)

// DefaultFrameRate is the frame rate used when a command does not override
// it (spec §6).
const DefaultFrameRate = 60.0

// DefaultDuration is the default total frame count — one second at
// DefaultFrameRate (spec §6).
const DefaultDuration = 60.0

// IRAnimation is the top-level intermediate scene graph container: pixel
// dimensions (equal to the font's upem), total frame count, frame rate,
// the root Group, and the font→scene affine used to build it (spec §3).
type IRAnimation struct {
	Width, Height int
	Frames        float64
	FrameRate     float64
	Root          *Group
	FontToScene   geom.Affine
}

// NewIRAnimation builds the initial scene graph: a root group centered in
// the scene, default transforms, and a single Shape child holding the
// extracted glyph path (spec §4.6's construction step). shape must already
// be in scene coordinates (transformed via fontToScene by the caller, C2).
func NewIRAnimation(upem int, frames float64, fontToScene geom.Affine, shape Keyframed[geom.Path]) *IRAnimation {
	root := NewGroup(geom.Point{X: float64(upem) / 2, Y: float64(upem) / 2})
	root.Children = []Node{&Shape{Path: shape}}
	return &IRAnimation{
		Width:       upem,
		Height:      upem,
		Frames:      frames,
		FrameRate:   DefaultFrameRate,
		Root:        root,
		FontToScene: fontToScene,
	}
}

// MotionKind identifies which motion (spec §4.6 table) a Motion applies.
type MotionKind uint8

// Motion kinds, per spec §3's AnimationPlan variant and §4.6's table.
const (
	MotionNone MotionKind = iota
	MotionTwirlWhole
	MotionTwirlParts
	MotionPulseWhole
	MotionPulseParts
	MotionRotateDegrees
	MotionScaleFromTo
)

// Motion describes the motion to apply to an IRAnimation's root group
// (spec §3's AnimationPlan, restricted to the fields C6's ApplyMotion
// needs — icon resolution and variation fields live in package command).
type Motion struct {
	Kind          MotionKind
	RotateDegrees float64 // MotionRotateDegrees
	ScaleFrom     float64 // MotionScaleFromTo
	ScaleTo       float64 // MotionScaleFromTo
	SpringPreset  *spring.Preset
}

// partOffsetUnit is the per-group time-base offset unit used by
// MotionTwirlParts/MotionPulseParts: group i's curve is shifted by
// i*partOffsetUnit*anim.Frames (spec §4.6 table; pinned to the literal
// index*0.2*frames offset demonstrated by spec §8 scenario S2, which
// offsets a 60-frame pulse's keyframes by exactly index*12 — see
// DESIGN.md for why this is preferred over the "(i+2)" reading floated in
// spec §9's Open Questions).
const partOffsetUnit = 0.2

// palette is the rotating fill-color set assigned to grouped parts by
// index (spec §4.3 step 5), a small Material-style set since the spec
// does not pin exact values.
var palette = []Color{
	{R: 0.26, G: 0.52, B: 0.96}, // blue
	{R: 0.92, G: 0.26, B: 0.21}, // red
	{R: 0.98, G: 0.74, B: 0.02}, // amber
	{R: 0.20, G: 0.66, B: 0.33}, // green
	{R: 0.40, G: 0.23, B: 0.72}, // purple
}

// ApplyMotion mutates anim's root group (and, for parts motions, replaces
// its child list with grouped subgroups) to realize m, per spec §4.6's
// table.
func ApplyMotion(anim *IRAnimation, m Motion) error {
	frames := anim.Frames
	switch m.Kind {
	case MotionNone:
		return nil
	case MotionTwirlWhole:
		return setRotate(anim.Root, twirlCurve(0, frames), m.SpringPreset)
	case MotionPulseWhole:
		return setScale(anim.Root, pulseCurve(0, frames), m.SpringPreset)
	case MotionRotateDegrees:
		return setRotate(anim.Root, rotateCurve(0, frames, m.RotateDegrees), m.SpringPreset)
	case MotionScaleFromTo:
		return setScale(anim.Root, scaleFromToCurve(frames, m.ScaleFrom, m.ScaleTo), m.SpringPreset)
	case MotionTwirlParts:
		groups, err := groupInto(anim.Root)
		if err != nil {
			return err
		}
		for i, g := range groups {
			offset := float64(i) * partOffsetUnit * frames
			if err := setRotate(g, twirlCurve(offset, frames), m.SpringPreset); err != nil {
				return err
			}
		}
		return nil
	case MotionPulseParts:
		groups, err := groupInto(anim.Root)
		if err != nil {
			return err
		}
		for i, g := range groups {
			offset := float64(i) * partOffsetUnit * frames
			if err := setScale(g, pulseCurve(offset, frames), m.SpringPreset); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

func twirlCurve(offset, frames float64) Keyframed[float64] {
	return MustKeyframed(
		Keyframe[float64]{Frame: offset + 0, Value: 0},
		Keyframe[float64]{Frame: offset + 0.4*frames, Value: 360},
	)
}

func rotateCurve(offset, frames, degrees float64) Keyframed[float64] {
	return MustKeyframed(
		Keyframe[float64]{Frame: offset + 0, Value: 0},
		Keyframe[float64]{Frame: offset + 0.4*frames, Value: degrees},
	)
}

func pulseCurve(offset, frames float64) Keyframed[Scale] {
	return MustKeyframed(
		Keyframe[Scale]{Frame: offset + 0, Value: Scale{X: 100, Y: 100}},
		Keyframe[Scale]{Frame: offset + 0.2*frames, Value: Scale{X: 150, Y: 150}},
		Keyframe[Scale]{Frame: offset + 0.4*frames, Value: Scale{X: 100, Y: 100}},
	)
}

func scaleFromToCurve(frames, a, b float64) Keyframed[Scale] {
	return MustKeyframed(
		Keyframe[Scale]{Frame: 0, Value: Scale{X: a, Y: a}},
		Keyframe[Scale]{Frame: frames, Value: Scale{X: b, Y: b}},
	)
}

func setRotate(g *Group, k Keyframed[float64], preset *spring.Preset) error {
	if preset != nil {
		k = k.WithSpring(*preset)
	}
	g.Rotate = k
	return nil
}

func setScale(g *Group, k Keyframed[Scale], preset *spring.Preset) error {
	if preset != nil {
		k = k.WithSpring(*preset)
	}
	g.Scale = k
	return nil
}

// groupInto replaces root's flat Shape child list with grouped subgroups
// via package parts's fill-winding analysis (spec §4.3/§4.6), operating on
// the root Shape's earliest keyframe, and returns root's leaf groups. If
// root holds no single Shape child (already grouped, or empty), or parts
// finds no groups, root is left unchanged and its existing leaf groups are
// returned: the descendant groups when already grouped, root itself when
// parts finds no groups, and none when root is empty.
func groupInto(root *Group) ([]*Group, error) {
	if len(root.Children) == 1 {
		if shape, ok := root.Children[0].(*Shape); ok {
			groups := parts.Group(shape.Path.First())
			if len(groups) > 0 {
				newChildren := make([]Node, len(groups))
				for gi, g := range groups {
					sub := NewGroup(g.BBox.Center())
					childShape := &Shape{Path: subpathKeyframed(shape.Path, g.SubpathIndices)}
					sub.Children = []Node{childShape}
					color := palette[gi%len(palette)]
					sub.Fill = &color
					newChildren[gi] = sub
				}
				root.Children = newChildren
			}
		}
	}
	return root.LeafGroups(), nil
}

// subpathKeyframed rebuilds a Keyframed[geom.Path] series restricted to a
// subset of subpaths (by index into each keyframe's own Subpaths()),
// preserving every keyframe and its spring tag.
func subpathKeyframed(full Keyframed[geom.Path], indices []int) Keyframed[geom.Path] {
	keys := make([]Keyframe[geom.Path], len(full.Keys))
	for ki, key := range full.Keys {
		var out geom.Path
		keySubs := key.Value.Subpaths()
		for _, idx := range indices {
			if idx < len(keySubs) {
				out.Ops = append(out.Ops, keySubs[idx].Ops...)
			}
		}
		keys[ki] = Keyframe[geom.Path]{Frame: key.Frame, Value: out}
	}
	out := Keyframed[geom.Path]{Keys: keys, SpringPreset: full.SpringPreset}
	return out
}
