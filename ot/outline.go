package ot

import (
	"fmt"

	"github.com/rsheeter/iconimation/geom"
)

// ErrNoOutline is returned when a glyph index has no renderable outline
// (commonly glyph 0, the "missing character" box, or an out-of-range gid).
var ErrNoOutline = fmt.Errorf("glyph has no outline")

const compositeMaxDepth = 8

// GlyphPath decodes a glyph's contours from 'glyf'/'loca'/'head' into a
// geom.Path in font design units (the font's native upem-scaled coordinate
// space — callers apply geom.SrcToDest to map into drawing space).
//
// Kept as a method on Font rather than a field on CMapTable/HeadTable/etc.:
// outline.go decodes contours lazily, on demand, from Table("glyf").Binary()
// together with loca/head, mirroring the comment already left by parseTable's
// dispatch switch for the 'glyf' case.
func (otf *Font) GlyphPath(gid GlyphIndex) (geom.Path, error) {
	return otf.glyphPath(gid, 0)
}

func (otf *Font) glyphPath(gid GlyphIndex, depth int) (geom.Path, error) {
	if depth > compositeMaxDepth {
		return geom.Path{}, errFontFormat("composite glyph exceeds maximum nesting depth")
	}
	data, numContours, err := otf.rawGlyphData(gid)
	if err != nil {
		return geom.Path{}, err
	}
	if numContours >= 0 {
		return decodeSimpleGlyph(data, int(numContours))
	}
	return otf.decodeCompositeGlyph(data, depth)
}

// rawGlyphData returns gid's raw 'glyf' entry and its numberOfContours field
// (negative for a composite glyph), or ErrNoOutline if the glyph is empty.
func (otf *Font) rawGlyphData(gid GlyphIndex) ([]byte, int16, error) {
	locaTbl := otf.Table(T("loca"))
	glyfTbl := otf.Table(T("glyf"))
	if locaTbl == nil || glyfTbl == nil {
		return nil, 0, errFontFormat("font has no glyf/loca tables")
	}
	loca := locaTbl.Self().AsLoca()
	if loca == nil {
		return nil, 0, errFontFormat("font loca table not parsed")
	}
	start := loca.IndexToLocation(gid)
	end := loca.IndexToLocation(gid + 1)
	if end <= start {
		return nil, 0, ErrNoOutline
	}
	glyf := glyfTbl.Binary()
	if int(end) > len(glyf) {
		return nil, 0, errBufferBounds
	}
	data := glyf[start:end]
	if len(data) < 10 {
		return nil, 0, ErrNoOutline
	}
	return data, int16(u16(data)), nil
}

// --- simple glyph decoding --------------------------------------------------

func decodeSimpleGlyph(data []byte, numContours int) (geom.Path, error) {
	endPts, flags, xs32, ys32, err := decodeSimpleGlyphPoints(data, numContours)
	if err != nil {
		return geom.Path{}, err
	}
	xs := make([]float64, len(xs32))
	ys := make([]float64, len(ys32))
	for i := range xs32 {
		xs[i] = float64(xs32[i])
		ys[i] = float64(ys32[i])
	}
	var path geom.Path
	start := 0
	for _, endPt := range endPts {
		contourPath(&path, flags[start:endPt+1], xs[start:endPt+1], ys[start:endPt+1])
		start = endPt + 1
	}
	return path, nil
}

// decodeSimpleGlyphPoints decodes a simple glyph's raw TrueType point data
// (flags plus absolute x/y coordinates per contour) without building a
// geom.Path, so variation.go can perturb point positions before outlining.
func decodeSimpleGlyphPoints(data []byte, numContours int) (endPts []int, flags []byte, xs, ys []int32, err error) {
	off := 10
	endPts = make([]int, numContours)
	for i := 0; i < numContours; i++ {
		if off+2 > len(data) {
			return nil, nil, nil, nil, errBufferBounds
		}
		endPts[i] = int(u16(data[off:]))
		off += 2
	}
	if numContours == 0 {
		return endPts, nil, nil, nil, nil
	}
	numPoints := endPts[numContours-1] + 1
	if off+2 > len(data) {
		return nil, nil, nil, nil, errBufferBounds
	}
	instrLen := int(u16(data[off:]))
	off += 2 + instrLen

	flags = make([]byte, numPoints)
	for i := 0; i < numPoints; {
		if off >= len(data) {
			return nil, nil, nil, nil, errBufferBounds
		}
		f := data[off]
		off++
		flags[i] = f
		i++
		if f&0x08 != 0 { // REPEAT_FLAG
			if off >= len(data) {
				return nil, nil, nil, nil, errBufferBounds
			}
			repeat := int(data[off])
			off++
			for r := 0; r < repeat && i < numPoints; r++ {
				flags[i] = f
				i++
			}
		}
	}

	xs = make([]int32, numPoints)
	x := int32(0)
	for i := 0; i < numPoints; i++ {
		f := flags[i]
		switch {
		case f&0x02 != 0: // X_SHORT_VECTOR
			if off >= len(data) {
				return nil, nil, nil, nil, errBufferBounds
			}
			dx := int32(data[off])
			off++
			if f&0x10 == 0 { // negative
				dx = -dx
			}
			x += dx
		case f&0x10 != 0: // X_IS_SAME
			// no change
		default:
			if off+2 > len(data) {
				return nil, nil, nil, nil, errBufferBounds
			}
			x += int32(int16(u16(data[off:])))
			off += 2
		}
		xs[i] = x
	}

	ys = make([]int32, numPoints)
	y := int32(0)
	for i := 0; i < numPoints; i++ {
		f := flags[i]
		switch {
		case f&0x04 != 0: // Y_SHORT_VECTOR
			if off >= len(data) {
				return nil, nil, nil, nil, errBufferBounds
			}
			dy := int32(data[off])
			off++
			if f&0x20 == 0 {
				dy = -dy
			}
			y += dy
		case f&0x20 != 0: // Y_IS_SAME
		default:
			if off+2 > len(data) {
				return nil, nil, nil, nil, errBufferBounds
			}
			y += int32(int16(u16(data[off:])))
			off += 2
		}
		ys[i] = y
	}

	return endPts, flags, xs, ys, nil
}

// contourPath appends one closed contour to path, converting TrueType
// on/off-curve point runs into geom QuadTo segments. Consecutive off-curve
// points imply an on-curve point at their midpoint, per the TrueType spec.
func contourPath(path *geom.Path, flags []byte, xs, ys []float64) {
	n := len(flags)
	if n == 0 {
		return
	}
	pt := func(i int) geom.Point {
		i = ((i % n) + n) % n
		return geom.Point{X: float64(xs[i]), Y: float64(ys[i])}
	}
	onCurve := func(i int) bool {
		i = ((i % n) + n) % n
		return flags[i]&0x01 != 0
	}

	// Normalize into a start point plus an ordered list of the remaining
	// point indices still to be walked, so that the remaining list never
	// itself needs special-casing for where it wraps back to the start.
	var startPt geom.Point
	var remaining []int
	switch {
	case onCurve(0):
		startPt = pt(0)
		for k := 1; k < n; k++ {
			remaining = append(remaining, k)
		}
	case onCurve(n - 1):
		startPt = pt(n - 1)
		for k := 0; k < n-1; k++ {
			remaining = append(remaining, k)
		}
	default:
		startPt = pt(0).Lerp(pt(n-1), 0.5)
		for k := 0; k < n; k++ {
			remaining = append(remaining, k)
		}
	}
	path.MoveTo(startPt)

	for j := 0; j < len(remaining); j++ {
		idx := remaining[j]
		cur := pt(idx)
		if onCurve(idx) {
			path.LineTo(cur)
			continue
		}
		var next geom.Point
		if j+1 < len(remaining) && onCurve(remaining[j+1]) {
			next = pt(remaining[j+1])
			j++
		} else if j+1 < len(remaining) {
			next = cur.Lerp(pt(remaining[j+1]), 0.5)
		} else {
			next = startPt // wraps back to the contour's start point
		}
		path.QuadTo(cur, next)
	}
	path.Close()
}

// --- composite glyph decoding ------------------------------------------------

const (
	compArgsAreWords   = 0x0001
	compArgsAreXY      = 0x0002
	compWeHaveScale    = 0x0008
	compMoreComponents = 0x0020
	compWeHaveXYScale  = 0x0040
	compWeHave2x2      = 0x0080
)

func (otf *Font) decodeCompositeGlyph(data []byte, depth int) (geom.Path, error) {
	var out geom.Path
	off := 10
	for {
		if off+4 > len(data) {
			return geom.Path{}, errBufferBounds
		}
		flags := u16(data[off:])
		childGid := GlyphIndex(u16(data[off+2:]))
		off += 4

		var dx, dy float64
		if flags&compArgsAreWords != 0 {
			if off+4 > len(data) {
				return geom.Path{}, errBufferBounds
			}
			if flags&compArgsAreXY != 0 {
				dx = float64(int16(u16(data[off:])))
				dy = float64(int16(u16(data[off+2:])))
			}
			off += 4
		} else {
			if off+2 > len(data) {
				return geom.Path{}, errBufferBounds
			}
			if flags&compArgsAreXY != 0 {
				dx = float64(int8(data[off]))
				dy = float64(int8(data[off+1]))
			}
			off += 2
		}

		xform := geom.Translate(dx, dy)
		switch {
		case flags&compWeHave2x2 != 0:
			if off+8 > len(data) {
				return geom.Path{}, errBufferBounds
			}
			a := f2dot14(u16(data[off:]))
			b := f2dot14(u16(data[off+2:]))
			c := f2dot14(u16(data[off+4:]))
			d := f2dot14(u16(data[off+6:]))
			off += 8
			xform = geom.Affine{A: a, B: b, C: c, D: d}.Then(geom.Translate(dx, dy))
		case flags&compWeHaveXYScale != 0:
			if off+4 > len(data) {
				return geom.Path{}, errBufferBounds
			}
			sx := f2dot14(u16(data[off:]))
			sy := f2dot14(u16(data[off+2:]))
			off += 4
			xform = geom.Scale(sx, sy).Then(geom.Translate(dx, dy))
		case flags&compWeHaveScale != 0:
			if off+2 > len(data) {
				return geom.Path{}, errBufferBounds
			}
			s := f2dot14(u16(data[off:]))
			off += 2
			xform = geom.Scale(s, s).Then(geom.Translate(dx, dy))
		}

		child, err := otf.glyphPath(childGid, depth+1)
		if err != nil && err != ErrNoOutline {
			return geom.Path{}, err
		}
		out.Ops = append(out.Ops, child.Transform(xform).Ops...)

		if flags&compMoreComponents == 0 {
			break
		}
	}
	return out, nil
}

func f2dot14(raw uint16) float64 {
	return float64(int16(raw)) / 16384.0
}
