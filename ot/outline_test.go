package ot

import (
	"testing"

	"github.com/rsheeter/iconimation/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTriangleGlyf constructs a minimal single-contour 'glyf' entry for a
// right triangle at (0,0)-(10,0)-(10,10), entirely on-curve.
func buildTriangleGlyf() []byte {
	data := []byte{
		0x00, 0x01, // numberOfContours = 1
		0, 0, 0, 0, 0, 0, 0, 0, // bbox, unused by decodeSimpleGlyph
		0x00, 0x02, // endPtsOfContours[0] = 2
		0x00, 0x00, // instructionLength = 0
		0x31, 0x33, 0x35, // flags
		0x0A, // x delta for point 1 (+10)
		0x0A, // y delta for point 2 (+10)
	}
	return data
}

func TestDecodeSimpleGlyphTriangle(t *testing.T) {
	data := buildTriangleGlyf()
	numContours := int(int16(u16(data)))
	path, err := decodeSimpleGlyph(data, numContours)
	require.NoError(t, err)
	require.Len(t, path.Ops, 4)

	assert.Equal(t, geom.MoveTo, path.Ops[0].Kind)
	assert.Equal(t, geom.Point{X: 0, Y: 0}, path.Ops[0].P1)
	assert.Equal(t, geom.LineTo, path.Ops[1].Kind)
	assert.Equal(t, geom.Point{X: 10, Y: 0}, path.Ops[1].P1)
	assert.Equal(t, geom.LineTo, path.Ops[2].Kind)
	assert.Equal(t, geom.Point{X: 10, Y: 10}, path.Ops[2].P1)
	assert.Equal(t, geom.ClosePath, path.Ops[3].Kind)
}

// buildQuadCurveGlyf constructs a single contour with one off-curve control
// point between two on-curve anchors: (0,10) -curve-> (10,0) via (10,10).
func buildQuadCurveGlyf() []byte {
	return []byte{
		0x00, 0x01, // numberOfContours = 1
		0, 0, 0, 0, 0, 0, 0, 0, // bbox, unused
		0x00, 0x02, // endPtsOfContours[0] = 2
		0x00, 0x00, // instructionLength = 0
		0x35, 0x32, 0x15, // flags
		0x0A,       // x delta for point 1 (+10)
		0x0A, 0x0A, // y deltas for points 0 and 2
	}
}

func TestDecodeSimpleGlyphQuadCurve(t *testing.T) {
	data := buildQuadCurveGlyf()
	path, err := decodeSimpleGlyph(data, 1)
	require.NoError(t, err)
	require.Len(t, path.Ops, 3)

	assert.Equal(t, geom.MoveTo, path.Ops[0].Kind)
	assert.Equal(t, geom.Point{X: 0, Y: 10}, path.Ops[0].P1)
	assert.Equal(t, geom.QuadTo, path.Ops[1].Kind)
	assert.Equal(t, geom.Point{X: 10, Y: 10}, path.Ops[1].P1)
	assert.Equal(t, geom.Point{X: 10, Y: 0}, path.Ops[1].P2)
	assert.Equal(t, geom.ClosePath, path.Ops[2].Kind)
}

func TestDecodeSimpleGlyphEmptyContourCount(t *testing.T) {
	data := []byte{0x00, 0x00, 0, 0, 0, 0, 0, 0, 0, 0}
	path, err := decodeSimpleGlyph(data, 0)
	require.NoError(t, err)
	assert.Empty(t, path.Ops)
}
