package ot

import "github.com/rsheeter/iconimation/geom"

// DesignLocation is a point in a variable font's design space, given as a
// normalized coordinate (conventionally -1..1, 0 at default) per axis tag.
//
// This is deliberately simpler than a full fvar/avar resolution: it assumes
// the caller already normalized user-space coordinates (e.g. "FILL=1") into
// this space. No avar remapping is applied.
type DesignLocation map[Tag]float64

// VariationAxis describes one axis of a variable font's design space.
type VariationAxis struct {
	Tag     Tag
	Min     float64
	Default float64
	Max     float64
}

// FVarTable holds the variable-font axis list ('fvar').
type FVarTable struct {
	tableBase
	Axes []VariationAxis
}

func newFVarTable(tag Tag, b binarySegm, offset, size uint32) *FVarTable {
	t := &FVarTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

func parseFVar(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	t := newFVarTable(tag, b, offset, size)
	if len(b) < 16 {
		return t, errBufferBounds
	}
	axesArrayOffset := int(u16(b[4:]))
	axisCount := int(u16(b[8:]))
	axisSize := int(u16(b[10:]))
	if axisSize < 20 {
		return t, errFontFormat("fvar: axis record too small")
	}
	for i := 0; i < axisCount; i++ {
		rec := axesArrayOffset + i*axisSize
		if rec+20 > len(b) {
			ec.addError(tag, "VariationAxisRecord", "buffer bounds", SeverityMajor, offset)
			break
		}
		t.Axes = append(t.Axes, VariationAxis{
			Tag:     Tag(u32(b[rec:])),
			Min:     fixed16Dot16(u32(b[rec+4:])),
			Default: fixed16Dot16(u32(b[rec+8:])),
			Max:     fixed16Dot16(u32(b[rec+12:])),
		})
	}
	return t, nil
}

func fixed16Dot16(raw uint32) float64 {
	return float64(int32(raw)) / 65536.0
}

// AsFVar returns this table as an 'fvar' table, or nil.
func (tself TableSelf) AsFVar() *FVarTable {
	if f, ok := safeSelf(tself).(*FVarTable); ok {
		return f
	}
	return nil
}

// --- gvar: glyph variation data ---------------------------------------------

// GVarTable holds per-glyph tuple-variation data ('gvar'), enough to apply a
// single design-space location to a simple glyph's on-curve/off-curve point
// positions. Composite glyphs are not re-targeted by variation here; they
// are returned at their default positions (see ot/outline.go).
type GVarTable struct {
	tableBase
	axisCount      int
	sharedTuples   [][]float64
	glyphDataStart int
	glyphOffsets   []uint32 // glyphCount+1 offsets, relative to glyphDataStart
}

func newGVarTable(tag Tag, b binarySegm, offset, size uint32) *GVarTable {
	t := &GVarTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

func parseGVar(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	t := newGVarTable(tag, b, offset, size)
	if len(b) < 20 {
		return t, errBufferBounds
	}
	t.axisCount = int(u16(b[4:]))
	sharedTupleCount := int(u16(b[6:]))
	sharedTuplesOffset := int(u32(b[8:]))
	glyphCount := int(u16(b[12:]))
	flags := u16(b[14:])
	t.glyphDataStart = int(u32(b[16:]))

	longOffsets := flags&0x1 != 0
	offsetsStart := 20
	t.glyphOffsets = make([]uint32, glyphCount+1)
	for i := 0; i <= glyphCount; i++ {
		if longOffsets {
			at := offsetsStart + i*4
			if at+4 > len(b) {
				return t, errBufferBounds
			}
			t.glyphOffsets[i] = u32(b[at:])
		} else {
			at := offsetsStart + i*2
			if at+2 > len(b) {
				return t, errBufferBounds
			}
			t.glyphOffsets[i] = uint32(u16(b[at:])) * 2
		}
	}

	for i := 0; i < sharedTupleCount; i++ {
		rec := sharedTuplesOffset + i*t.axisCount*2
		if rec+t.axisCount*2 > len(b) {
			ec.addError(tag, "SharedTuples", "buffer bounds", SeverityMajor, offset)
			break
		}
		tuple := make([]float64, t.axisCount)
		for a := 0; a < t.axisCount; a++ {
			tuple[a] = f2dot14(u16(b[rec+a*2:]))
		}
		t.sharedTuples = append(t.sharedTuples, tuple)
	}
	return t, nil
}

// AsGVar returns this table as a 'gvar' table, or nil.
func (tself TableSelf) AsGVar() *GVarTable {
	if g, ok := safeSelf(tself).(*GVarTable); ok {
		return g
	}
	return nil
}

const (
	tupleEmbeddedPeak   = 0x8000
	tupleIntermediate   = 0x4000
	tuplePrivatePoints  = 0x2000
	tupleIndexMask      = 0x0FFF
	tvhSharedPointNums  = 0x8000
	tvhTupleCountMask   = 0x0FFF
)

// glyphTupleVariation holds one decoded tuple-variation-header plus the
// point numbers and deltas it applies, ready to be scaled and summed.
type glyphTupleVariation struct {
	peak       []float64
	start, end []float64 // nil if no intermediate region (derived from peak)
	points     []int     // nil means "applies to every point"
	deltaX     []int16
	deltaY     []int16
}

// applyTo computes the scalar factor for loc and, if positive, adds scaled
// deltas into xs/ys (indexed by glyph point number; deltas for point numbers
// past the end of xs, such as the four phantom points, are dropped).
func (tv glyphTupleVariation) applyTo(loc DesignLocation, axes []VariationAxis, xs, ys []float64) {
	scalar := tv.scalarFor(loc, axes)
	if scalar <= 0 {
		return
	}
	apply := func(pointNum int, dx, dy int16) {
		if pointNum < 0 || pointNum >= len(xs) {
			return
		}
		xs[pointNum] += float64(dx) * scalar
		ys[pointNum] += float64(dy) * scalar
	}
	if tv.points == nil {
		for i := range xs {
			if i < len(tv.deltaX) {
				apply(i, tv.deltaX[i], tv.deltaY[i])
			}
		}
		return
	}
	for i, pn := range tv.points {
		if i < len(tv.deltaX) {
			apply(pn, tv.deltaX[i], tv.deltaY[i])
		}
	}
}

func (tv glyphTupleVariation) scalarFor(loc DesignLocation, axes []VariationAxis) float64 {
	scalar := 1.0
	for a, axis := range axes {
		if a >= len(tv.peak) {
			break
		}
		peak := tv.peak[a]
		if peak == 0 {
			continue
		}
		v := loc[axis.Tag]
		start, end := minF(peak, 0), maxF(peak, 0)
		if tv.start != nil && a < len(tv.start) {
			start, end = tv.start[a], tv.end[a]
		}
		switch {
		case v == peak:
			continue
		case v < start || v > end:
			return 0
		case v < peak:
			if peak == start {
				return 0
			}
			scalar *= (v - start) / (peak - start)
		default:
			if end == peak {
				return 0
			}
			scalar *= (end - v) / (end - peak)
		}
	}
	return scalar
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// glyphVariations decodes the tuple-variation list for gid, if present.
func (g *GVarTable) glyphVariations(gid GlyphIndex, numPoints int) ([]glyphTupleVariation, error) {
	i := int(gid)
	if g == nil || i+1 >= len(g.glyphOffsets) {
		return nil, nil
	}
	from := g.glyphDataStart + int(g.glyphOffsets[i])
	to := g.glyphDataStart + int(g.glyphOffsets[i+1])
	if to <= from {
		return nil, nil
	}
	if to > len(g.data) {
		return nil, errBufferBounds
	}
	b := g.data[from:to]
	if len(b) < 4 {
		return nil, errBufferBounds
	}
	tupleCountField := u16(b)
	hasSharedPoints := tupleCountField&tvhSharedPointNums != 0
	tupleCount := int(tupleCountField & tvhTupleCountMask)
	dataOffset := int(u16(b[2:]))

	type header struct {
		size        int
		embedPeak   bool
		intermed    bool
		privPoints  bool
		sharedIndex int
	}
	headers := make([]header, 0, tupleCount)
	hoff := 4
	axisCount := g.axisCount
	peakTuples := make([][]float64, tupleCount)
	startTuples := make([][]float64, tupleCount)
	endTuples := make([][]float64, tupleCount)
	for t := 0; t < tupleCount; t++ {
		if hoff+4 > len(b) {
			return nil, errBufferBounds
		}
		size := int(u16(b[hoff:]))
		idx := u16(b[hoff+2:])
		hoff += 4
		h := header{
			size:        size,
			embedPeak:   idx&tupleEmbeddedPeak != 0,
			intermed:    idx&tupleIntermediate != 0,
			privPoints:  idx&tuplePrivatePoints != 0,
			sharedIndex: int(idx & tupleIndexMask),
		}
		if h.embedPeak {
			if hoff+axisCount*2 > len(b) {
				return nil, errBufferBounds
			}
			peak := make([]float64, axisCount)
			for a := 0; a < axisCount; a++ {
				peak[a] = f2dot14(u16(b[hoff+a*2:]))
			}
			peakTuples[t] = peak
			hoff += axisCount * 2
		} else if h.sharedIndex < len(g.sharedTuples) {
			peakTuples[t] = g.sharedTuples[h.sharedIndex]
		}
		if h.intermed {
			if hoff+axisCount*4 > len(b) {
				return nil, errBufferBounds
			}
			start := make([]float64, axisCount)
			end := make([]float64, axisCount)
			for a := 0; a < axisCount; a++ {
				start[a] = f2dot14(u16(b[hoff+a*2:]))
			}
			hoff += axisCount * 2
			for a := 0; a < axisCount; a++ {
				end[a] = f2dot14(u16(b[hoff+a*2:]))
			}
			hoff += axisCount * 2
			startTuples[t] = start
			endTuples[t] = end
		}
		headers = append(headers, h)
	}

	serial := b[dataOffset:]
	pos := 0
	var sharedPoints []int
	if hasSharedPoints {
		pts, n, err := readPackedPointNumbers(serial, 0)
		if err != nil {
			return nil, err
		}
		sharedPoints = pts
		pos = n
	}

	out := make([]glyphTupleVariation, 0, tupleCount)
	for t := 0; t < tupleCount; t++ {
		h := headers[t]
		points := sharedPoints
		if h.privPoints {
			pts, n, err := readPackedPointNumbers(serial, pos)
			if err != nil {
				return nil, err
			}
			points = pts
			pos = n
		}
		count := numPoints
		if points != nil {
			count = len(points)
		}
		dxs, n, err := readPackedDeltas(serial, pos, count)
		if err != nil {
			return nil, err
		}
		pos = n
		dys, n, err := readPackedDeltas(serial, pos, count)
		if err != nil {
			return nil, err
		}
		pos = n
		out = append(out, glyphTupleVariation{
			peak:   peakTuples[t],
			start:  startTuples[t],
			end:    endTuples[t],
			points: points,
			deltaX: dxs,
			deltaY: dys,
		})
	}
	return out, nil
}

// readPackedPointNumbers decodes a gvar packed point-number list starting at
// off. A nil result with no error means "applies to every point in the glyph".
func readPackedPointNumbers(b []byte, off int) ([]int, int, error) {
	if off >= len(b) {
		return nil, off, errBufferBounds
	}
	count := int(b[off])
	off++
	if count&0x80 != 0 {
		if off >= len(b) {
			return nil, off, errBufferBounds
		}
		count = (count&0x7f)<<8 | int(b[off])
		off++
	}
	if count == 0 {
		return nil, off, nil
	}
	points := make([]int, 0, count)
	prev := 0
	for len(points) < count {
		if off >= len(b) {
			return nil, off, errBufferBounds
		}
		ctl := b[off]
		off++
		run := int(ctl&0x7f) + 1
		words := ctl&0x80 != 0
		for r := 0; r < run && len(points) < count; r++ {
			var delta int
			if words {
				if off+2 > len(b) {
					return nil, off, errBufferBounds
				}
				delta = int(u16(b[off:]))
				off += 2
			} else {
				if off >= len(b) {
					return nil, off, errBufferBounds
				}
				delta = int(b[off])
				off++
			}
			prev += delta
			points = append(points, prev)
		}
	}
	return points, off, nil
}

// readPackedDeltas decodes exactly count gvar packed deltas starting at off.
func readPackedDeltas(b []byte, off, count int) ([]int16, int, error) {
	deltas := make([]int16, 0, count)
	for len(deltas) < count {
		if off >= len(b) {
			return nil, off, errBufferBounds
		}
		ctl := b[off]
		off++
		run := int(ctl&0x3f) + 1
		switch {
		case ctl&0x80 != 0: // DELTAS_ARE_ZERO
			for r := 0; r < run && len(deltas) < count; r++ {
				deltas = append(deltas, 0)
			}
		case ctl&0x40 != 0: // DELTAS_ARE_WORDS
			for r := 0; r < run && len(deltas) < count; r++ {
				if off+2 > len(b) {
					return nil, off, errBufferBounds
				}
				deltas = append(deltas, int16(u16(b[off:])))
				off += 2
			}
		default:
			for r := 0; r < run && len(deltas) < count; r++ {
				if off >= len(b) {
					return nil, off, errBufferBounds
				}
				deltas = append(deltas, int16(int8(b[off])))
				off++
			}
		}
	}
	return deltas, off, nil
}

// VariatedGlyphPath resolves gid's outline at loc by decoding its default
// simple-glyph points, applying every matching gvar tuple variation's scaled
// deltas, then rebuilding contour path segments. Composite glyphs and glyphs
// without gvar data fall back to GlyphPath's default (un-variated) outline;
// so does a font carrying no 'gvar' table at all.
func (otf *Font) VariatedGlyphPath(gid GlyphIndex, loc DesignLocation) (geom.Path, error) {
	if len(loc) == 0 {
		return otf.GlyphPath(gid)
	}
	gvarTbl := otf.Table(T("gvar"))
	if gvarTbl == nil {
		return otf.GlyphPath(gid)
	}
	gvar := gvarTbl.Self().AsGVar()
	if gvar == nil {
		return otf.GlyphPath(gid)
	}
	fvarTbl := otf.Table(T("fvar"))
	if fvarTbl == nil {
		return otf.GlyphPath(gid)
	}
	fvar := fvarTbl.Self().AsFVar()
	if fvar == nil || len(fvar.Axes) == 0 {
		return otf.GlyphPath(gid)
	}

	data, numContours, err := otf.rawGlyphData(gid)
	if err != nil {
		return geom.Path{}, err
	}
	if numContours < 0 {
		// Composite glyphs are not re-targeted by variation; see doc comment.
		return otf.GlyphPath(gid)
	}

	endPts, flags, xs32, ys32, err := decodeSimpleGlyphPoints(data, int(numContours))
	if err != nil {
		return geom.Path{}, err
	}
	xs := make([]float64, len(xs32))
	ys := make([]float64, len(ys32))
	for i := range xs32 {
		xs[i] = float64(xs32[i])
		ys[i] = float64(ys32[i])
	}

	// Tuples without explicit point numbers carry a delta for every glyph
	// point plus the four phantom points.
	variations, err := gvar.glyphVariations(gid, len(xs)+4)
	if err != nil {
		return geom.Path{}, err
	}
	for _, tv := range variations {
		tv.applyTo(loc, fvar.Axes, xs, ys)
	}

	var path geom.Path
	start := 0
	for _, endPt := range endPts {
		contourPath(&path, flags[start:endPt+1], xs[start:endPt+1], ys[start:endPt+1])
		start = endPt + 1
	}
	return path, nil
}
