package command

import (
	"strconv"
	"strings"

	"github.com/rsheeter/iconimation/geom"
	"github.com/rsheeter/iconimation/ir"
	"github.com/rsheeter/iconimation/ot"
)

// GlyphShape names a glyph to animate and, optionally, a second designspace
// location to morph towards (spec §3/§4.1's C1+C2 data model). Resolve
// builds one from a Plan's icon name and font.
type GlyphShape struct {
	Font  *ot.Font
	Glyph ot.GlyphIndex
	From  ot.DesignLocation
	To    ot.DesignLocation // nil unless a distinct "vary" end location applies
}

// resolveIcon resolves an icon name to a glyph index (spec §4.1, C1):
// "0x..." names a Unicode codepoint directly; anything else is treated as a
// ligature name, each character mapped to a glyph via cmap and the
// sequence resolved through GSUB ligature substitution, regardless of how
// many characters the name has.
func resolveIcon(font *ot.Font, name string) (ot.GlyphIndex, error) {
	if strings.HasPrefix(name, "0x") || strings.HasPrefix(name, "0X") {
		cp, err := strconv.ParseUint(name[2:], 16, 32)
		if err != nil {
			return 0, ErrUnrecognizedCommand
		}
		return font.GlyphForCodepoint(rune(cp))
	}

	runes := []rune(name)
	glyphs := make([]ot.GlyphIndex, 0, len(runes))
	for _, r := range runes {
		gid, err := font.GlyphForChar(r)
		if err != nil {
			return 0, err
		}
		glyphs = append(glyphs, gid)
	}
	return font.ResolveLigature(glyphs)
}

// resolveShape builds a GlyphShape for plan's icon name and variation
// clause against font (spec §4.1/§4.2, C1+C2's resolution half).
func resolveShape(font *ot.Font, plan *Plan) (*GlyphShape, error) {
	gid, err := resolveIcon(font, plan.IconName)
	if err != nil {
		return nil, err
	}
	shape := &GlyphShape{Font: font, Glyph: gid, From: plan.VaryFrom}
	if len(plan.VaryTo) > 0 && !locationsEqual(plan.VaryFrom, plan.VaryTo) {
		shape.To = plan.VaryTo
	}
	// Validate the glyph actually has an outline at the base location now,
	// rather than failing deep inside extraction.
	if _, err := outlineAt(font, gid, shape.From); err != nil {
		return nil, err
	}
	return shape, nil
}

func locationsEqual(a, b ot.DesignLocation) bool {
	if len(a) != len(b) {
		return false
	}
	for tag, v := range a {
		if bv, ok := b[tag]; !ok || bv != v {
			return false
		}
	}
	return true
}

func outlineAt(font *ot.Font, gid ot.GlyphIndex, loc ot.DesignLocation) (geom.Path, error) {
	if len(loc) == 0 {
		return font.GlyphPath(gid)
	}
	return font.VariatedGlyphPath(gid, loc)
}

// extract builds the scene-coordinate keyframed path for shape, and the
// font→scene affine used to build it (spec §4.2, C2). The returned series
// has one keyframe if shape.To is nil, or two (at frame 0 and lastFrame)
// otherwise.
func extract(shape *GlyphShape, destSize float64, lastFrame float64) (ir.Keyframed[geom.Path], geom.Affine, error) {
	upem := float64(shape.Font.UnitsPerEm())
	xform, err := geom.SrcToDest(geom.DrawBox{Width: upem, Height: upem}, geom.DrawBox{Width: destSize, Height: destSize})
	if err != nil {
		return ir.Keyframed[geom.Path]{}, geom.Affine{}, err
	}

	startPath, err := outlineAt(shape.Font, shape.Glyph, shape.From)
	if err != nil {
		return ir.Keyframed[geom.Path]{}, geom.Affine{}, err
	}
	startPath = startPath.Transform(xform)

	if shape.To == nil {
		k, err := ir.NewKeyframed(ir.Keyframe[geom.Path]{Frame: 0, Value: startPath})
		return k, xform, err
	}

	endPath, err := outlineAt(shape.Font, shape.Glyph, shape.To)
	if err != nil {
		return ir.Keyframed[geom.Path]{}, geom.Affine{}, err
	}
	endPath = endPath.Transform(xform)

	k, err := ir.NewKeyframed(
		ir.Keyframe[geom.Path]{Frame: 0, Value: startPath},
		ir.Keyframe[geom.Path]{Frame: lastFrame, Value: endPath},
	)
	return k, xform, err
}
