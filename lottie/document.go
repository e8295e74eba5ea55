// Package lottie lowers an ir.IRAnimation into a Lottie (Bodymovin) JSON
// document (spec §4.8, C8).
package lottie

import "github.com/rsheeter/iconimation/geom"

// Document is the top-level Lottie document (spec §6's Bodymovin subset:
// ip, op, fr, w, h, layers).
type Document struct {
	IP     float64 `json:"ip"`
	OP     float64 `json:"op"`
	FR     float64 `json:"fr"`
	W      int     `json:"w"`
	H      int     `json:"h"`
	Layers []Layer `json:"layers"`
}

// Layer is a single Lottie shape layer holding one root group item.
type Layer struct {
	Shapes []Item `json:"shapes"`
}

// Item is a Lottie shape-list entry: a group ("gr"), a shape path ("sh"),
// a fill ("fl"), or a transform ("tr"). Only the fields relevant to Type
// are populated; the rest are left zero and omitted from JSON.
type Item struct {
	Type string `json:"ty"`

	// "gr"
	Items []Item `json:"it,omitempty"`

	// "sh"
	Path *AnimatableShape `json:"path,omitempty"`

	// "fl"
	Color *Color `json:"color,omitempty"`

	// "tr"
	Anchor    *geom.Point      `json:"anchor,omitempty"`
	Position  *geom.Point      `json:"position,omitempty"`
	Scale     *AnimatableVec2  `json:"scale,omitempty"`
	Rotation  *AnimatableFloat `json:"rotation,omitempty"`
	Translate *AnimatableVec2  `json:"translate,omitempty"`
}

// Color is a static RGB fill color, components in 0..1 (spec §4.8 point 2).
type Color struct {
	R, G, B float64
}

// defaultFillColor is used for a group's fill item when its ir.Group
// carries no explicit Fill (spec §4.8 point 4 requires every group to emit
// a Fill item unconditionally; black matches Material icon fonts' usual
// single-color convention, same default avd.Lower uses).
var defaultFillColor = Color{R: 0, G: 0, B: 0}

// Ease is a 2-D cubic bezier ease handle pair, matching spec §4.8 point 4's
// `{in, out}` shape. Both In and Out are expressed in the unit square.
type Ease struct {
	In  geom.Point `json:"in"`
	Out geom.Point `json:"out"`
}

// defaultEase is spec §4.8 point 4's default animated-keyframe ease.
var defaultEase = Ease{In: geom.Point{X: 0.6, Y: 1.0}, Out: geom.Point{X: 0.4, Y: 0.0}}

// AnimatableFloat is a scalar Lottie property: either a static value or an
// animated keyframe list.
type AnimatableFloat struct {
	Static    bool            `json:"static"`
	Value     float64         `json:"value,omitempty"`
	Keyframes []FloatKeyframe `json:"keyframes,omitempty"`
}

// FloatKeyframe is one keyframe of an AnimatableFloat.
type FloatKeyframe struct {
	T     float64 `json:"t"`
	Value float64 `json:"v"`
	Ease  Ease    `json:"ease"`
}

// AnimatableVec2 is a 2-D vector Lottie property (scale percent pair or
// translate vector): either static or animated.
type AnimatableVec2 struct {
	Static    bool           `json:"static"`
	Value     [2]float64     `json:"value,omitempty"`
	Keyframes []Vec2Keyframe `json:"keyframes,omitempty"`
}

// Vec2Keyframe is one keyframe of an AnimatableVec2.
type Vec2Keyframe struct {
	T     float64    `json:"t"`
	Value [2]float64 `json:"v"`
	Ease  Ease       `json:"ease"`
}

// AnimatableShape is a Lottie shape-path property: either a single static
// ShapeValue per subpath, or one animated ShapeValue series whose vertex
// sets change at each keyframe (spec §4.8's Shape-lowering rules).
type AnimatableShape struct {
	Static    bool            `json:"static"`
	Value     []ShapeValue    `json:"value,omitempty"`
	Keyframes []ShapeKeyframe `json:"keyframes,omitempty"`
}

// ShapeKeyframe is one keyframe of an animated shape path: the full vertex
// set for every subpath at that instant.
type ShapeKeyframe struct {
	T     float64      `json:"t"`
	Value []ShapeValue `json:"v"`
	Ease  Ease         `json:"ease"`
}

// ShapeValue is one Lottie subpath (spec §4.8's ShapeValue encoding):
// on-curve vertices, relative incoming/outgoing control handles, closed
// flag, and winding direction (1.0 or 3.0 by signed-area sign).
type ShapeValue struct {
	Closed    bool         `json:"closed"`
	Direction float64      `json:"direction"`
	Vertices  [][2]float64 `json:"v"`
	InTangent [][2]float64 `json:"i"`
	OutTangent [][2]float64 `json:"o"`
}
