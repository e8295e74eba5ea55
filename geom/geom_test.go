package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSrcToDestNegativeDeterminant(t *testing.T) {
	for _, upem := range []float64{1, 24, 1000, 2048} {
		box := DrawBox{Width: upem, Height: upem}
		xform, err := SrcToDest(box, box)
		require.NoError(t, err)
		assert.Less(t, xform.Determinant(), 0.0)
	}
}

func TestSrcToDestMapsCorners(t *testing.T) {
	src := DrawBox{Width: 1000, Height: 1000}
	dest := DrawBox{Width: 24, Height: 24}
	xform, err := SrcToDest(src, dest)
	require.NoError(t, err)

	origin := xform.Apply(Point{X: 0, Y: 0})
	assert.InDelta(t, 0, origin.X, 1e-9)
	assert.InDelta(t, 24, origin.Y, 1e-9)

	top := xform.Apply(Point{X: 1000, Y: 1000})
	assert.InDelta(t, 24, top.X, 1e-9)
	assert.InDelta(t, 0, top.Y, 1e-9)
}

func TestPathCompatibility(t *testing.T) {
	var a, b Path
	a.MoveTo(Point{})
	a.LineTo(Point{X: 1})
	a.Close()

	b.MoveTo(Point{X: 5})
	b.LineTo(Point{X: 6})
	b.Close()

	assert.True(t, a.CompatibleWith(b))

	var c Path
	c.MoveTo(Point{})
	c.QuadTo(Point{X: 1}, Point{X: 2})
	assert.False(t, a.CompatibleWith(c))
}

func TestSubpathWindingSquare(t *testing.T) {
	var p Path
	p.MoveTo(Point{0, 0})
	p.LineTo(Point{10, 0})
	p.LineTo(Point{10, 10})
	p.LineTo(Point{0, 10})
	p.Close()

	subs := p.Subpaths()
	require.Len(t, subs, 1)
	assert.NotZero(t, subs[0].WindingAt(Point{5, 5}))
	assert.Zero(t, subs[0].WindingAt(Point{50, 50}))
}

func TestBoundingBoxContains(t *testing.T) {
	outer := BoundingBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	inner := BoundingBox{MinX: 2, MinY: 2, MaxX: 4, MaxY: 4}
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
}
