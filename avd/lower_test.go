package avd

import (
	"encoding/xml"
	"testing"

	"github.com/rsheeter/iconimation/geom"
	"github.com/rsheeter/iconimation/ir"
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

func TestLowerEmitsViewportAndPath(t *testing.T) {
	shape := ir.MustKeyframed(ir.Keyframe[geom.Path]{Frame: 0, Value: square(0, 0, 24, 24)})
	anim := ir.NewIRAnimation(24, 60, geom.Identity(), shape)

	doc, err := Lower(anim)
	require.NoError(t, err)
	require.Len(t, doc.DrawableAttrs, 1)
	vector := doc.DrawableAttrs[0].Vector
	assert.Equal(t, 24.0, vector.ViewportWidth)
	assert.Equal(t, 24.0, vector.ViewportHeight)
	require.Len(t, vector.Groups, 1)
	require.Len(t, vector.Groups[0].Paths, 1)
	assert.Contains(t, vector.Groups[0].Paths[0].Data, "M0,0")
	assert.Contains(t, vector.Groups[0].Paths[0].Data, "Z")
}

func TestLowerSucceedsOnIncompatiblePaths(t *testing.T) {
	// Scenario S5: AVD only ever lowers the initial keyframe, so a shape
	// whose keyframes are NOT interpolation-compatible (which would fail
	// Lottie lowering with ErrIncompatiblePaths) still lowers fine here.
	var quad geom.Path
	quad.MoveTo(geom.Point{})
	quad.QuadTo(geom.Point{X: 1}, geom.Point{X: 2})

	shape := ir.MustKeyframed(
		ir.Keyframe[geom.Path]{Frame: 0, Value: square(0, 0, 1, 1)},
		ir.Keyframe[geom.Path]{Frame: 60, Value: quad},
	)
	anim := ir.NewIRAnimation(24, 60, geom.Identity(), shape)

	doc, err := Lower(anim)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.DrawableAttrs[0].Vector.Groups[0].Paths[0].Data)
}

func TestLowerConcatenatesSiblingPaths(t *testing.T) {
	root := ir.NewGroup(geom.Point{X: 12, Y: 12})
	color := ir.Color{R: 1, G: 0, B: 0}
	root.Fill = &color
	root.Children = []ir.Node{
		&ir.Shape{Path: ir.MustKeyframed(ir.Keyframe[geom.Path]{Frame: 0, Value: square(0, 0, 1, 1)})},
		&ir.Shape{Path: ir.MustKeyframed(ir.Keyframe[geom.Path]{Frame: 0, Value: square(2, 2, 3, 3)})},
	}
	anim := &ir.IRAnimation{Width: 24, Height: 24, Frames: 60, FrameRate: 60, Root: root, FontToScene: geom.Identity()}

	doc, err := Lower(anim)
	require.NoError(t, err)
	paths := doc.DrawableAttrs[0].Vector.Groups[0].Paths
	require.Len(t, paths, 1)
	assert.Equal(t, "#FFFF0000", paths[0].FillColor)
}

func TestDocumentMarshalsToXML(t *testing.T) {
	shape := ir.MustKeyframed(ir.Keyframe[geom.Path]{Frame: 0, Value: square(0, 0, 24, 24)})
	anim := ir.NewIRAnimation(24, 60, geom.Identity(), shape)
	doc, err := Lower(anim)
	require.NoError(t, err)

	out, err := xml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "animated-vector")
	assert.Contains(t, string(out), "aapt:attr")
}
