package ot

import "errors"

// Errors returned by glyph- and ligature-resolution.
var (
	// ErrUnmappedCodepoint is returned when a codepoint has no entry in the
	// font's cmap.
	ErrUnmappedCodepoint = errors.New("codepoint not mapped by font's cmap")
	// ErrUnmappedChar is returned when a rune has no entry in the font's cmap.
	ErrUnmappedChar = errors.New("character not mapped by font's cmap")
	// ErrNoLigature is returned when no GSUB ligature-substitution lookup
	// produces a ligature for a given glyph sequence.
	ErrNoLigature = errors.New("no GSUB ligature lookup matches glyph sequence")
)

// GlyphForCodepoint resolves a Unicode codepoint to a glyph index via the
// font's cmap table.
func (otf *Font) GlyphForCodepoint(cp rune) (GlyphIndex, error) {
	if otf == nil || otf.CMap == nil || otf.CMap.GlyphIndexMap == nil {
		return 0, ErrUnmappedCodepoint
	}
	gid := otf.CMap.GlyphIndexMap.Lookup(cp)
	if gid == 0 {
		return 0, ErrUnmappedCodepoint
	}
	return gid, nil
}

// GlyphForChar resolves a single character to a glyph index. It is
// equivalent to GlyphForCodepoint, but reports ErrUnmappedChar instead.
func (otf *Font) GlyphForChar(c rune) (GlyphIndex, error) {
	gid, err := otf.GlyphForCodepoint(c)
	if err != nil {
		return 0, ErrUnmappedChar
	}
	return gid, nil
}

// ResolveLigature walks the font's GSUB lookup list for a ligature
// substitution matching glyphs exactly: glyphs[0] must be covered by the
// lookup's coverage table, and glyphs[1:] must equal, component-for-
// component, one of the ligature rules recorded for that coverage index.
//
// Lookups of type GSubLookupTypeExtensionSubs are followed to their
// resolved subtable before being tested, since 32-bit GSUB offsets are
// commonly wrapped in an extension lookup by font builders.
func (otf *Font) ResolveLigature(glyphs []GlyphIndex) (GlyphIndex, error) {
	if otf == nil || len(glyphs) < 2 {
		return 0, ErrNoLigature
	}
	gsub := otf.Layout.GSub
	if gsub == nil {
		return 0, ErrNoLigature
	}
	graph := gsub.LookupGraph()
	if graph == nil {
		return 0, ErrNoLigature
	}
	for _, table := range graph.Range() {
		if table == nil {
			continue
		}
		for _, node := range table.Range() {
			lig := ligatureNode(node)
			if lig == nil || lig.GSub == nil || lig.GSub.LigatureFmt1 == nil {
				continue
			}
			idx, ok := node.Coverage.Match(glyphs[0])
			if !ok || idx >= len(lig.GSub.LigatureFmt1.LigatureSets) {
				continue
			}
			for _, rule := range lig.GSub.LigatureFmt1.LigatureSets[idx] {
				if componentsMatch(rule.Components, glyphs[1:]) {
					return rule.Ligature, nil
				}
			}
		}
	}
	return 0, ErrNoLigature
}

// ligatureNode returns the LookupNode whose GSub payload should be tested
// for a ligature rule set: node itself if it is a direct ligature lookup,
// or the resolved target of an extension lookup that wraps one.
func ligatureNode(node *LookupNode) *LookupNode {
	if node == nil {
		return nil
	}
	switch node.LookupType {
	case GSubLookupTypeLigature:
		return node
	case GSubLookupTypeExtensionSubs:
		if node.GSub == nil || node.GSub.ExtensionFmt1 == nil {
			return nil
		}
		resolved := node.GSub.ExtensionFmt1.Resolved
		if resolved != nil && resolved.LookupType == GSubLookupTypeLigature {
			return resolved
		}
	}
	return nil
}

func componentsMatch(components []GlyphIndex, rest []GlyphIndex) bool {
	if len(components) != len(rest) {
		return false
	}
	for i, g := range components {
		if g != rest[i] {
			return false
		}
	}
	return true
}
