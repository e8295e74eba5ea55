package ot

import "fmt"

// CMapTable maps character codepoints to glyph indices ('cmap').
//
// Only the single widest-coverage subtable selected by parseCMap is kept;
// this package has no use for simultaneous platform-specific cmaps.
type CMapTable struct {
	tableBase
	GlyphIndexMap GlyphIndexMap
	NumGlyphs     int
}

func newCMapTable(tag Tag, b binarySegm, offset, size uint32) *CMapTable {
	t := &CMapTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// GlyphIndexMap resolves Unicode codepoints to glyph indices and back.
type GlyphIndexMap interface {
	Lookup(codepoint rune) GlyphIndex
	ReverseLookup(gid GlyphIndex) rune
}

// platformEncodingWidth ranks a (platform, encoding) pair by how much of
// Unicode it is expected to cover, so that of several cmap subtables a
// font offers, the widest-coverage supported one wins.
func platformEncodingWidth(platformId, encodingId uint16) int {
	switch {
	case platformId == 0 && encodingId == 4: // Unicode full repertoire
		return 4
	case platformId == 3 && encodingId == 10: // Windows, Unicode full repertoire
		return 4
	case platformId == 0 && encodingId == 3: // Unicode BMP
		return 2
	case platformId == 3 && encodingId == 1: // Windows, Unicode BMP
		return 2
	default:
		return 0
	}
}

// supportedCmapFormat reports whether this package can decode a subtable of
// the given format for the given platform/encoding pair.
func supportedCmapFormat(format, platformId, encodingId uint16) bool {
	switch format {
	case 4, 12:
		return platformEncodingWidth(platformId, encodingId) > 0
	default:
		return false
	}
}

// makeGlyphIndex parses the cmap subtable selected by enc into a
// GlyphIndexMap.
func makeGlyphIndex(b binarySegm, enc encodingRecord, tag Tag, offset uint32, ec *errorCollector) (GlyphIndexMap, error) {
	sub := enc.link.Jump().Bytes()
	switch enc.format {
	case 4:
		gim, err := parseCmapFormat4(sub)
		if err != nil {
			ec.addError(tag, "Format4", err.Error(), SeverityCritical, offset)
			return nil, err
		}
		return gim, nil
	case 12:
		gim, err := parseCmapFormat12(sub)
		if err != nil {
			ec.addError(tag, "Format12", err.Error(), SeverityCritical, offset)
			return nil, err
		}
		return gim, nil
	default:
		return nil, errFontFormat(fmt.Sprintf("unsupported cmap subtable format %d", enc.format))
	}
}

// --- cmap format 4: Unicode BMP segment mapping -----------------------------

// format4GlyphIndex is a cmap format 4 subtable ("segment mapping to delta
// values"), kept as raw bytes plus precomputed array offsets rather than
// decoded into slices — the subtable is read-only and the teacher's binary
// primitives favor direct byte access over allocation.
type format4GlyphIndex struct {
	raw           []byte
	segCount      int
	endCodeOff    int
	startCodeOff  int
	idDeltaOff    int
	idRangeOffOff int
	numGlyphs     int
}

func parseCmapFormat4(b []byte) (format4GlyphIndex, error) {
	if len(b) < 14 {
		return format4GlyphIndex{}, errBufferBounds
	}
	segCountX2 := int(u16(b[6:]))
	if segCountX2 <= 0 || segCountX2%2 != 0 {
		return format4GlyphIndex{}, errFontFormat("cmap format 4: invalid segCountX2")
	}
	endCodeOff := 14
	startCodeOff := endCodeOff + segCountX2 + 2 // +2 skips reservedPad
	idDeltaOff := startCodeOff + segCountX2
	idRangeOffOff := idDeltaOff + segCountX2
	need := idRangeOffOff + segCountX2
	if len(b) < need {
		return format4GlyphIndex{}, errBufferBounds
	}
	return format4GlyphIndex{
		raw:           b,
		segCount:      segCountX2 / 2,
		endCodeOff:    endCodeOff,
		startCodeOff:  startCodeOff,
		idDeltaOff:    idDeltaOff,
		idRangeOffOff: idRangeOffOff,
	}, nil
}

// Lookup implements GlyphIndexMap.
func (f format4GlyphIndex) Lookup(codepoint rune) GlyphIndex {
	if codepoint < 0 || codepoint > 0xFFFF {
		return 0
	}
	c := uint16(codepoint)
	for i := 0; i < f.segCount; i++ {
		end := u16(f.raw[f.endCodeOff+2*i:])
		if c > end {
			continue
		}
		start := u16(f.raw[f.startCodeOff+2*i:])
		if c < start {
			return 0
		}
		delta := int16(u16(f.raw[f.idDeltaOff+2*i:]))
		rangeOff := u16(f.raw[f.idRangeOffOff+2*i:])
		if rangeOff == 0 {
			return GlyphIndex(uint16(int32(c) + int32(delta)))
		}
		addr := f.idRangeOffOff + 2*i + int(rangeOff) + 2*int(c-start)
		if addr+2 > len(f.raw) {
			return 0
		}
		gid := u16(f.raw[addr:])
		if gid == 0 {
			return 0
		}
		return GlyphIndex(uint16(int32(gid) + int32(delta)))
	}
	return 0
}

// ReverseLookup implements GlyphIndexMap. As documented by
// otquery.CodePointForGlyph, this is an inefficient linear scan of the BMP —
// acceptable since it is only ever used for diagnostics, not the hot path.
func (f format4GlyphIndex) ReverseLookup(gid GlyphIndex) rune {
	for cp := 0; cp <= 0xFFFF; cp++ {
		if f.Lookup(rune(cp)) == gid {
			return rune(cp)
		}
	}
	return 0
}

// --- cmap format 12: Unicode full-repertoire segmented coverage ------------

// format12GlyphIndex is a cmap format 12 subtable ("segmented coverage"),
// one sorted run of (startCharCode, endCharCode, startGlyphID) groups.
type format12GlyphIndex struct {
	raw       []byte
	nGroups   int
	groupsOff int
	numGlyphs int
}

func parseCmapFormat12(b []byte) (format12GlyphIndex, error) {
	if len(b) < 16 {
		return format12GlyphIndex{}, errBufferBounds
	}
	nGroups := int(u32(b[12:]))
	groupsOff := 16
	need := groupsOff + nGroups*12
	if nGroups < 0 || len(b) < need {
		return format12GlyphIndex{}, errBufferBounds
	}
	return format12GlyphIndex{raw: b, nGroups: nGroups, groupsOff: groupsOff}, nil
}

// Lookup implements GlyphIndexMap via binary search over the sorted groups.
func (f format12GlyphIndex) Lookup(codepoint rune) GlyphIndex {
	if codepoint < 0 {
		return 0
	}
	cp := uint32(codepoint)
	lo, hi := 0, f.nGroups-1
	for lo <= hi {
		mid := (lo + hi) / 2
		rec := f.raw[f.groupsOff+mid*12:]
		start := u32(rec)
		end := u32(rec[4:])
		switch {
		case cp < start:
			hi = mid - 1
		case cp > end:
			lo = mid + 1
		default:
			startGlyph := u32(rec[8:])
			return GlyphIndex(startGlyph + (cp - start))
		}
	}
	return 0
}

// ReverseLookup implements GlyphIndexMap via a linear scan of groups.
func (f format12GlyphIndex) ReverseLookup(gid GlyphIndex) rune {
	g := uint32(gid)
	for i := 0; i < f.nGroups; i++ {
		rec := f.raw[f.groupsOff+i*12:]
		start := u32(rec)
		end := u32(rec[4:])
		startGlyph := u32(rec[8:])
		count := end - start
		if g >= startGlyph && g <= startGlyph+count {
			return rune(start + (g - startGlyph))
		}
	}
	return 0
}
