// Package parts implements the fill-winding part-grouping algorithm of
// spec §4.3: splitting a glyph's subpaths into perceptual "parts," each a
// filled region plus the cutouts made in it, using the nonzero fill rule.
package parts

import (
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"github.com/rsheeter/iconimation/geom"
)

// tracer writes to trace with key 'iconimation.parts'
func tracer() tracing.Trace {
	return tracing.Select("iconimation.parts")
}

// probeOffsets is the ±0.001 perturbation spec §4.3/§9 prescribes for
// finding a probe point strictly inside a subpath when its MoveTo anchor
// lies exactly on the boundary (the common case).
var probeOffsets = []geom.Point{
	{X: 0, Y: 0},
	{X: 0.001, Y: 0.001},
	{X: 0.001, Y: -0.001},
	{X: -0.001, Y: 0.001},
	{X: -0.001, Y: -0.001},
}

// Group is one perceptual part: the indices (into the source Path's
// Subpaths()) of the subpaths assigned to it, and the aggregate bounding
// box of all its members, used by callers to compute a transform anchor.
type Group struct {
	SubpathIndices []int
	BBox           geom.BoundingBox
}

// Group clusters path's subpaths into perceptual parts per spec §4.3:
// each filled subpath (nonzero winding sum of all subpaths at a point
// strictly interior to it) starts a new group; each unfilled subpath joins
// the first (smallest-area) group whose initiating filled subpath's
// bounding box fully contains it. A subpath with no interior probe point is
// treated as unfilled, with a diagnostic; an unfilled subpath that no group
// contains is dropped, with a diagnostic.
//
// Operates on a single geom.Path — callers pass the earliest keyframe's
// geometry, since interpolation-compatible keyframes share subpath
// structure (spec §4.3 step 1).
func Group(path geom.Path) []Group {
	subs := path.Subpaths()
	if len(subs) == 0 {
		return nil
	}

	filled := make([]bool, len(subs))
	for i, s := range subs {
		if s.SignedArea() == 0 {
			filled[i] = false
			continue
		}
		probe, ok := findProbe(s)
		if !ok {
			tracer().Infof("parts: subpath %d has no interior probe point after perturbation, treating as unfilled", i)
			continue
		}
		winding := 0
		for _, other := range subs {
			winding += other.WindingAt(probe)
		}
		filled[i] = winding != 0
	}

	order := make([]int, len(subs))
	for i := range order {
		order[i] = i
	}
	bboxes := make([]geom.BoundingBox, len(subs))
	for i, s := range subs {
		bboxes[i] = s.BoundingBox()
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if filled[ia] != filled[ib] {
			return filled[ia] // filled first
		}
		return bboxes[ia].Area() < bboxes[ib].Area()
	})

	var groups []Group
	for _, i := range order {
		if !filled[i] {
			continue
		}
		groups = append(groups, Group{SubpathIndices: []int{i}, BBox: bboxes[i]})
	}

	for _, i := range order {
		if filled[i] {
			continue
		}
		box := bboxes[i]
		placed := false
		for g := range groups {
			if groups[g].BBox.Contains(box) {
				groups[g].SubpathIndices = append(groups[g].SubpathIndices, i)
				placed = true
				break
			}
		}
		if !placed {
			tracer().Infof("parts: unfilled subpath %d has no containing group, dropping", i)
		}
	}

	return groups
}

// findProbe returns a point guaranteed strictly interior to subpath s:
// its MoveTo anchor if already interior, else the anchor perturbed by
// ±0.001 in x and y (spec §4.3/§9). ok is false if no candidate lands
// inside s.
func findProbe(s geom.Subpath) (geom.Point, bool) {
	anchor := s.Anchor()
	for _, d := range probeOffsets {
		p := geom.Point{X: anchor.X + d.X, Y: anchor.Y + d.Y}
		if s.ContainsPoint(p) {
			return p, true
		}
	}
	return geom.Point{}, false
}
