// Command otquery-icon prints font and icon-glyph diagnostics for a
// variable icon font: table inventory, family/variation metadata, and, for
// a given icon name, its resolved glyph index, outline shape, and bounding
// box at a single design-space location (--at). It is a read-only companion
// to cmd/iconimation, adapted from ot-tools' "font" command.
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/thatisuday/commando"

	"github.com/rsheeter/iconimation/geom"
	"github.com/rsheeter/iconimation/ot"
	"github.com/rsheeter/iconimation/otquery"
)

func main() {
	commando.
		SetExecutableName("otquery-icon").
		SetVersion("v0.0.1").
		SetDescription("CLI for introspecting variable icon fonts and resolving icon glyphs.")

	commando.
		Register("font").
		SetDescription("Print diagnostics for an OpenType font: tables, names, variation axes.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("errors,e", "print parse errors and warnings", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.
		Register("icon").
		SetDescription("Resolve an icon name to a glyph and print its outline at a design location.").
		SetShortDescription("resolve icon glyph").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("name", `icon name: a ligature name (e.g. "settings") or a "0x"-prefixed hex codepoint (e.g. "0xE8B8")`, "").
		AddFlag("at,a", "design location, e.g. wght:700,FILL:1", commando.String, "-").
		SetAction(runIconCommand)

	commando.Parse(nil)
}

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	otf := mustLoadFont(fontPath)

	fmt.Printf("Path: %s\n", fontPath)
	family, subfamily := otquery.FamilyName(otf)
	if family != "" {
		fmt.Printf("Family: %s\n", family)
	}
	if subfamily != "" {
		fmt.Printf("Subfamily: %s\n", subfamily)
	}

	metrics := otquery.FontMetrics(otf)
	fmt.Printf("UnitsPerEm: %d\n", metrics.UnitsPerEm)

	tags := otf.TableTags()
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
	fmt.Printf("Tables (%d):", len(tags))
	for _, tag := range tags {
		fmt.Printf(" %s", tag.String())
	}
	fmt.Println()

	printAxes(otf)

	errs := otf.Errors()
	warns := otf.Warnings()
	crit := otf.CriticalErrors()
	fmt.Printf("Issues: errors=%d warnings=%d critical=%d\n", len(errs), len(warns), len(crit))

	showIssues, err := flags["errors"].GetBool()
	if err != nil {
		fatalf("invalid --errors flag: %v", err)
	}
	if showIssues {
		for _, e := range errs {
			fmt.Printf("error: %s\n", e.Error())
		}
		for _, w := range warns {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}

// printAxes lists the font's fvar variation axes, if any.
func printAxes(otf *ot.Font) {
	table := otf.Table(ot.T("fvar"))
	if table == nil {
		fmt.Println("Axes: none (static font)")
		return
	}
	fvar := table.Self().AsFVar()
	if fvar == nil || len(fvar.Axes) == 0 {
		fmt.Println("Axes: none (static font)")
		return
	}
	fmt.Printf("Axes (%d):\n", len(fvar.Axes))
	for _, axis := range fvar.Axes {
		fmt.Printf("  %s  min=%g default=%g max=%g\n", axis.Tag.String(), axis.Min, axis.Default, axis.Max)
	}
}

func runIconCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	name := strings.TrimSpace(args["name"].Value)
	if name == "" {
		fatalf("icon name is required")
	}
	otf := mustLoadFont(fontPath)

	gid, err := resolveIconName(otf, name)
	if err != nil {
		fatalf("resolve %q: %v", name, err)
	}
	fmt.Printf("Icon: %s\n", name)
	fmt.Printf("Glyph index: %d\n", gid)

	loc, err := parseLocation(flags["at"])
	if err != nil {
		fatalf("invalid --at flag: %v", err)
	}

	path, err := outlineAt(otf, gid, loc)
	if err != nil {
		fatalf("outline: %v", err)
	}
	printOutline(path)
}

func outlineAt(otf *ot.Font, gid ot.GlyphIndex, loc ot.DesignLocation) (geom.Path, error) {
	if len(loc) == 0 {
		return otf.GlyphPath(gid)
	}
	return otf.VariatedGlyphPath(gid, loc)
}

func printOutline(path geom.Path) {
	subpaths := path.Subpaths()
	fmt.Printf("Subpaths: %d\n", len(subpaths))
	bbox := path.BoundingBox()
	fmt.Printf("BoundingBox: [%g %g]-[%g %g]\n", bbox.MinX, bbox.MinY, bbox.MaxX, bbox.MaxY)
	for i, sub := range subpaths {
		area := sub.SignedArea()
		winding := "outer"
		if area < 0 {
			winding = "inner"
		}
		fmt.Printf("  subpath %d: %d ops, area=%g (%s)\n", i, len(sub.Ops), area, winding)
	}
}

// resolveIconName resolves an icon name to a glyph index: "0x..." names a
// Unicode codepoint directly, otherwise each character is mapped via cmap
// and the sequence is resolved through GSUB ligature substitution,
// regardless of how many characters the name has.
func resolveIconName(otf *ot.Font, name string) (ot.GlyphIndex, error) {
	if strings.HasPrefix(name, "0x") || strings.HasPrefix(name, "0X") {
		cp, err := strconv.ParseUint(name[2:], 16, 32)
		if err != nil {
			return 0, err
		}
		return otf.GlyphForCodepoint(rune(cp))
	}
	runes := []rune(name)
	glyphs := make([]ot.GlyphIndex, 0, len(runes))
	for _, r := range runes {
		gid, err := otf.GlyphForChar(r)
		if err != nil {
			return 0, err
		}
		glyphs = append(glyphs, gid)
	}
	return otf.ResolveLigature(glyphs)
}

// parseLocation parses a "TAG:NUM,TAG:NUM" design-location flag value, or
// returns nil for "-" (the default, meaning the font's default location).
func parseLocation(flag commando.FlagValue) (ot.DesignLocation, error) {
	raw, err := flag.GetString()
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-" {
		return nil, nil
	}
	loc := ot.DesignLocation{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed location clause %q", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed value in %q: %w", part, err)
		}
		loc[ot.T(strings.TrimSpace(kv[0]))] = v
	}
	return loc, nil
}

func mustLoadFont(path string) *ot.Font {
	b, err := os.ReadFile(path)
	if err != nil {
		fatalf("cannot read font %s: %v", path, err)
	}
	otf, err := ot.Parse(b)
	if err != nil {
		fatalf("cannot parse font %s: %v", path, err)
	}
	return otf
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "otquery-icon: "+format+"\n", args...)
	os.Exit(1)
}
