package ir

import (
	"testing"

	"github.com/rsheeter/iconimation/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyframedSortsAndValidates(t *testing.T) {
	k, err := NewKeyframed(
		Keyframe[float64]{Frame: 10, Value: 1},
		Keyframe[float64]{Frame: 0, Value: 0},
	)
	require.NoError(t, err)
	assert.Equal(t, 0.0, k.Keys[0].Frame)
	assert.Equal(t, 10.0, k.Keys[1].Frame)

	_, err = NewKeyframed[float64]()
	assert.ErrorIs(t, err, ErrEmptyKeyframes)

	_, err = NewKeyframed(
		Keyframe[float64]{Frame: 0, Value: 1},
		Keyframe[float64]{Frame: 0, Value: 2},
	)
	assert.ErrorIs(t, err, ErrDuplicateFrame)
}

func square(x0, y0, x1, y1 float64) geom.Path {
	var p geom.Path
	p.MoveTo(geom.Point{X: x0, Y: y0})
	p.LineTo(geom.Point{X: x1, Y: y0})
	p.LineTo(geom.Point{X: x1, Y: y1})
	p.LineTo(geom.Point{X: x0, Y: y1})
	p.Close()
	return p
}

func TestApplyMotionTwirlWhole(t *testing.T) {
	shape := MustKeyframed(Keyframe[geom.Path]{Frame: 0, Value: square(0, 0, 24, 24)})
	anim := NewIRAnimation(24, 60, geom.Identity(), shape)

	require.NoError(t, ApplyMotion(anim, Motion{Kind: MotionTwirlWhole}))
	require.Len(t, anim.Root.Rotate.Keys, 2)
	assert.Equal(t, 0.0, anim.Root.Rotate.Keys[0].Frame)
	assert.Equal(t, 0.0, anim.Root.Rotate.Keys[0].Value)
	assert.Equal(t, 24.0, anim.Root.Rotate.Keys[1].Frame)
	assert.Equal(t, 360.0, anim.Root.Rotate.Keys[1].Value)
}

func TestApplyMotionPulseParts(t *testing.T) {
	var twoSquares geom.Path
	twoSquares.Ops = append(twoSquares.Ops, square(0, 0, 100, 100).Ops...)
	twoSquares.Ops = append(twoSquares.Ops, square(200, 200, 210, 210).Ops...)

	shape := MustKeyframed(Keyframe[geom.Path]{Frame: 0, Value: twoSquares})
	anim := NewIRAnimation(300, 60, geom.Identity(), shape)

	require.NoError(t, ApplyMotion(anim, Motion{Kind: MotionPulseParts}))
	require.Len(t, anim.Root.Children, 2)

	g0 := anim.Root.Children[0].(*Group)
	g1 := anim.Root.Children[1].(*Group)
	require.Len(t, g0.Scale.Keys, 3)
	require.Len(t, g1.Scale.Keys, 3)

	assert.Equal(t, []float64{0, 12, 24}, frames(g0.Scale))
	assert.Equal(t, []float64{12, 24, 36}, frames(g1.Scale))
}

func frames(k Keyframed[Scale]) []float64 {
	out := make([]float64, len(k.Keys))
	for i, kf := range k.Keys {
		out[i] = kf.Frame
	}
	return out
}

func TestShapeCheckCompatible(t *testing.T) {
	s := &Shape{Path: MustKeyframed(
		Keyframe[geom.Path]{Frame: 0, Value: square(0, 0, 1, 1)},
		Keyframe[geom.Path]{Frame: 60, Value: square(0, 0, 2, 2)},
	)}
	assert.NoError(t, s.CheckCompatible())

	var quad geom.Path
	quad.MoveTo(geom.Point{})
	quad.QuadTo(geom.Point{X: 1}, geom.Point{X: 2})
	s2 := &Shape{Path: MustKeyframed(
		Keyframe[geom.Path]{Frame: 0, Value: square(0, 0, 1, 1)},
		Keyframe[geom.Path]{Frame: 60, Value: quad},
	)}
	assert.ErrorIs(t, s2.CheckCompatible(), ErrIncompatiblePaths)
}
