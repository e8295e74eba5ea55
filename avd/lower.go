package avd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rsheeter/iconimation/geom"
	"github.com/rsheeter/iconimation/ir"
)

// defaultFillColor is used for a group's concatenated path when the group
// carries no explicit Fill (spec §4.9 is silent on this case; black
// matches Material icon fonts' usual single-color convention).
const defaultFillColor = "#FF000000"

// Lower produces an AnimatedVector from anim (spec §4.9, C9): a <vector>
// sized to anim's dimensions at a 24dp display size, containing one
// top-level group mirroring anim.Root. Animated states are not emitted in
// this version — every transform and path uses its earliest keyframe's
// value.
//
// TODO: emit <target>/<aapt:attr name="android:animation"> entries once a
// PropertyValuesHolder-style keyframe encoding is designed for AVD's
// objectAnimator XML format.
func Lower(anim *ir.IRAnimation) (*AnimatedVector, error) {
	root := lowerGroup(anim.Root)
	vector := Vector{
		XMLNSAndroid:   "http://schemas.android.com/apk/res/android",
		Width:          "24dp",
		Height:         "24dp",
		ViewportWidth:  float64(anim.Width),
		ViewportHeight: float64(anim.Height),
		Groups:         []Group{root},
	}
	return &AnimatedVector{
		XMLNSAndroid: "http://schemas.android.com/apk/res/android",
		XMLNSAapt:    "http://schemas.android.com/aapt",
		DrawableAttrs: []Attr{
			{Name: "android:drawable", Vector: vector},
		},
	}, nil
}

// lowerGroup lowers g to an AVD <group>, recursing into child groups and
// concatenating every direct Shape child's initial-frame path into one
// <path> element (spec §4.9: AVD paths don't punch holes within a group
// the way Lottie subpaths do, so siblings are merged rather than nested).
func lowerGroup(g *ir.Group) Group {
	out := Group{PivotX: g.Center.X, PivotY: g.Center.Y}

	rotation := g.Rotate.First()
	out.Rotation = rotation

	scale := g.Scale.First()
	out.ScaleX = scale.X / 100
	out.ScaleY = scale.Y / 100

	translate := g.Translate.First()
	out.TransX = translate.X
	out.TransY = translate.Y

	var pathDatas []string
	for _, child := range g.Children {
		switch c := child.(type) {
		case *ir.Group:
			out.Groups = append(out.Groups, lowerGroup(c))
		case *ir.Shape:
			pathDatas = append(pathDatas, pathDataString(c.Path.First()))
		}
	}
	if len(pathDatas) > 0 {
		fill := defaultFillColor
		if g.Fill != nil {
			fill = colorToHex(*g.Fill)
		}
		out.Paths = []Path{{Data: strings.Join(pathDatas, " "), FillColor: fill}}
	}
	return out
}

// pathDataString serializes path as SVG path ("d" attribute) data, one
// M...Z run per subpath (spec §4.9).
func pathDataString(path geom.Path) string {
	var sb strings.Builder
	for _, sub := range path.Subpaths() {
		for _, op := range sub.Ops {
			switch op.Kind {
			case geom.MoveTo:
				fmt.Fprintf(&sb, "M%s ", fmtPoint(op.P1))
			case geom.LineTo:
				fmt.Fprintf(&sb, "L%s ", fmtPoint(op.P1))
			case geom.QuadTo:
				fmt.Fprintf(&sb, "Q%s %s ", fmtPoint(op.P1), fmtPoint(op.P2))
			case geom.CurveTo:
				fmt.Fprintf(&sb, "C%s %s %s ", fmtPoint(op.P1), fmtPoint(op.P2), fmtPoint(op.P3))
			case geom.ClosePath:
				sb.WriteString("Z ")
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

func fmtPoint(p geom.Point) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
}

// colorToHex encodes c as an opaque "#AARRGGBB" AVD color string.
func colorToHex(c ir.Color) string {
	r := clamp255(c.R)
	g := clamp255(c.G)
	b := clamp255(c.B)
	return fmt.Sprintf("#FF%02X%02X%02X", r, g, b)
}

func clamp255(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int(v*255 + 0.5)
}
