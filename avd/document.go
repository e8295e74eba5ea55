// Package avd lowers an ir.IRAnimation into Android Vector Drawable XML
// (spec §4.9, C9).
package avd

import "encoding/xml"

// AnimatedVector is the root <animated-vector> element wrapping a Vector
// and, per spec §4.9, no animated <target> states in this version.
type AnimatedVector struct {
	XMLName       xml.Name `xml:"animated-vector"`
	XMLNSAndroid  string   `xml:"xmlns:android,attr"`
	XMLNSAapt     string   `xml:"xmlns:aapt,attr"`
	DrawableAttrs []Attr   `xml:"aapt:attr"`
}

// Attr is an <aapt:attr name="android:drawable"> wrapper holding the
// nested <vector> element (the AVD convention for embedding a static
// vector inside an animated-vector without a separate drawable resource).
type Attr struct {
	Name   string `xml:"name,attr"`
	Vector Vector `xml:"vector"`
}

// Vector is the <vector> element: viewport/size and a tree of groups and
// paths (spec §4.9).
type Vector struct {
	XMLNSAndroid     string  `xml:"xmlns:android,attr,omitempty"`
	Width            string  `xml:"android:width,attr"`
	Height           string  `xml:"android:height,attr"`
	ViewportWidth    float64 `xml:"android:viewportWidth,attr"`
	ViewportHeight   float64 `xml:"android:viewportHeight,attr"`
	Groups           []Group `xml:"group"`
}

// Group is a <group> element: a transform pivoted at its center, a child
// list of nested groups, and concatenated paths (spec §4.9's "adjacent
// path elements within one group are concatenated" rule).
type Group struct {
	PivotX   float64 `xml:"android:pivotX,attr"`
	PivotY   float64 `xml:"android:pivotY,attr"`
	Rotation float64 `xml:"android:rotation,attr,omitempty"`
	ScaleX   float64 `xml:"android:scaleX,attr,omitempty"`
	ScaleY   float64 `xml:"android:scaleY,attr,omitempty"`
	TransX   float64 `xml:"android:translateX,attr,omitempty"`
	TransY   float64 `xml:"android:translateY,attr,omitempty"`
	Groups   []Group `xml:"group"`
	Paths    []Path  `xml:"path"`
}

// Path is a <path> element: SVG path data and a solid fill color.
type Path struct {
	Data      string `xml:"android:pathData,attr"`
	FillColor string `xml:"android:fillColor,attr"`
}
