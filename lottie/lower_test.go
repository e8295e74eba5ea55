package lottie

import (
	"testing"

	"github.com/rsheeter/iconimation/geom"
	"github.com/rsheeter/iconimation/ir"
	"github.com/rsheeter/iconimation/spring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 float64) geom.Path {
	var p geom.Path
	p.MoveTo(geom.Point{X: x0, Y: y0})
	p.LineTo(geom.Point{X: x1, Y: y0})
	p.LineTo(geom.Point{X: x1, Y: y1})
	p.LineTo(geom.Point{X: x0, Y: y1})
	p.Close()
	return p
}

func TestLowerTwirlWhole(t *testing.T) {
	shape := ir.MustKeyframed(ir.Keyframe[geom.Path]{Frame: 0, Value: square(0, 0, 24, 24)})
	anim := ir.NewIRAnimation(24, 60, geom.Identity(), shape)
	require.NoError(t, ir.ApplyMotion(anim, ir.Motion{Kind: ir.MotionTwirlWhole}))

	doc, err := Lower(anim)
	require.NoError(t, err)
	assert.Equal(t, 0.0, doc.IP)
	assert.Equal(t, 60.0, doc.OP)
	require.Len(t, doc.Layers, 1)
	require.Len(t, doc.Layers[0].Shapes, 1)

	root := doc.Layers[0].Shapes[0]
	assert.Equal(t, "gr", root.Type)

	var transform *Item
	for i := range root.Items {
		if root.Items[i].Type == "tr" {
			transform = &root.Items[i]
		}
	}
	require.NotNil(t, transform)
	require.NotNil(t, transform.Rotation)
	require.False(t, transform.Rotation.Static)
	require.Len(t, transform.Rotation.Keyframes, 2)
	assert.Equal(t, 0.0, transform.Rotation.Keyframes[0].T)
	assert.Equal(t, 24.0, transform.Rotation.Keyframes[1].T)
	assert.Equal(t, 360.0, transform.Rotation.Keyframes[1].Value)
}

func TestLowerStaticShapeOneItemPerSubpath(t *testing.T) {
	var twoSquares geom.Path
	twoSquares.Ops = append(twoSquares.Ops, square(0, 0, 10, 10).Ops...)
	twoSquares.Ops = append(twoSquares.Ops, square(20, 20, 21, 21).Ops...)

	shape := &ir.Shape{Path: ir.MustKeyframed(ir.Keyframe[geom.Path]{Frame: 0, Value: twoSquares})}
	items, err := lowerShape(shape)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "sh", item.Type)
		require.True(t, item.Path.Static)
		require.Len(t, item.Path.Value, 1)
		assert.True(t, item.Path.Value[0].Closed)
	}
}

func TestLowerIncompatibleShapesFails(t *testing.T) {
	var quad geom.Path
	quad.MoveTo(geom.Point{})
	quad.QuadTo(geom.Point{X: 1}, geom.Point{X: 2})

	shape := &ir.Shape{Path: ir.MustKeyframed(
		ir.Keyframe[geom.Path]{Frame: 0, Value: square(0, 0, 1, 1)},
		ir.Keyframe[geom.Path]{Frame: 60, Value: quad},
	)}
	_, err := lowerShape(shape)
	assert.ErrorIs(t, err, ir.ErrIncompatiblePaths)
}

// TestLowerGroupDefaultsFillWhenUnset covers spec.md §8 Testable Property
// 7: every "gr" item's last two items are Fill, Transform, in that order,
// even for a plain (non-parts) group that never had its Fill set.
func TestLowerGroupDefaultsFillWhenUnset(t *testing.T) {
	g := ir.NewGroup(geom.Point{X: 12, Y: 12})
	g.Children = []ir.Node{&ir.Shape{Path: ir.MustKeyframed(ir.Keyframe[geom.Path]{Frame: 0, Value: square(0, 0, 1, 1)})}}
	require.Nil(t, g.Fill)

	item, err := lowerGroup(g, 60)
	require.NoError(t, err)
	require.Len(t, item.Items, 3) // shape, fill, transform
	fill := item.Items[1]
	transform := item.Items[2]
	assert.Equal(t, "fl", fill.Type)
	require.NotNil(t, fill.Color)
	assert.Equal(t, defaultFillColor, *fill.Color)
	assert.Equal(t, "tr", transform.Type)
}

func TestLowerScaleWithSpring(t *testing.T) {
	preset := spring.PresetStandard
	k := ir.MustKeyframed(
		ir.Keyframe[ir.Scale]{Frame: 0, Value: ir.Scale{X: 100, Y: 100}},
		ir.Keyframe[ir.Scale]{Frame: 30, Value: ir.Scale{X: 150, Y: 150}},
	).WithSpring(preset)

	g := ir.NewGroup(geom.Point{X: 12, Y: 12})
	g.Scale = k
	g.Children = []ir.Node{&ir.Shape{Path: ir.MustKeyframed(ir.Keyframe[geom.Path]{Frame: 0, Value: square(0, 0, 1, 1)})}}

	item, err := lowerGroup(g, 60)
	require.NoError(t, err)

	var transform *Item
	for i := range item.Items {
		if item.Items[i].Type == "tr" {
			transform = &item.Items[i]
		}
	}
	require.NotNil(t, transform)
	require.False(t, transform.Scale.Static)
	// Start key plus one key per cubic; the standard template is a single cubic.
	assert.Len(t, transform.Scale.Keyframes, 2)
	assert.Equal(t, 100.0, transform.Scale.Keyframes[0].Value[0])
}
