// Package spring2cubic converts a spring trajectory (package spring) into
// one or more cubic bezier easing segments (spec §4.5), either via
// hand-tuned per-preset templates or by fitting a generic bezier curve to
// a simulated trajectory.
package spring2cubic

import (
	"errors"
	"math"

	"github.com/rsheeter/iconimation/geom"
	"github.com/rsheeter/iconimation/spring"
)

// ErrUnrecognizedSpring is returned by HandTuned for any spring preset
// without a hand-written template (spec §4.5/§7).
var ErrUnrecognizedSpring = errors.New("spring2cubic: no hand-tuned template for this spring preset")

// Cubic is a cubic bezier segment over (frame, value) space: P0 and P3 are
// the endpoints, P1 and P2 the control points.
type Cubic struct {
	P0, P1, P2, P3 geom.Point
}

// handTunedTemplates stores, for each preset with a hand-written curve, a
// sequence of cubics on the canonical domain x=frame in [0, last P3.X],
// y=value in [0,100] (spec §6's cubic-template table).
var handTunedTemplates = map[spring.Preset][]Cubic{
	spring.PresetStandard: {
		{P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: 13, Y: 100}, P2: geom.Point{X: 0, Y: 100}, P3: geom.Point{X: 43, Y: 100}},
	},
	spring.PresetSmoothNonSpatial: {
		{P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: 13, Y: 100}, P2: geom.Point{X: 0, Y: 100}, P3: geom.Point{X: 43, Y: 100}},
	},
	spring.PresetSmoothSpatial: {
		{P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: 20, Y: 100}, P2: geom.Point{X: 0, Y: 100}, P3: geom.Point{X: 61, Y: 100}},
	},
	spring.PresetExpressiveSpatial: {
		{P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: 5, Y: 15}, P2: geom.Point{X: 3, Y: 101.54}, P3: geom.Point{X: 15.5, Y: 101.54}},
		{P0: geom.Point{X: 15.5, Y: 101.54}, P1: geom.Point{X: 21, Y: 101.54}, P2: geom.Point{X: 21, Y: 99}, P3: geom.Point{X: 42, Y: 100}},
	},
	spring.PresetExpressiveNonSpatial: {
		{P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: 13, Y: 100}, P2: geom.Point{X: 0, Y: 100}, P3: geom.Point{X: 43, Y: 100}},
	},
}

// EquilibriumFrame runs s to equilibrium at frameRate frames per second
// starting from av, returning the frame number at which equilibrium was
// reached. It fails with spring.ErrRanTooLong beyond spring.TimeLimit
// seconds of simulated time (spec §4.5).
func EquilibriumFrame(s spring.Spring, av spring.AnimatedValue, frameRate float64) (int, error) {
	samples, err := s.SimulateToEquilibrium(av, frameRate)
	if err != nil {
		return 0, err
	}
	return len(samples) - 1, nil
}

// HandTuned produces the cubic sequence for preset's hand-written template,
// scaled in X to the simulated equilibrium frame and in Y/translated to
// match av's actual start and end values (spec §4.5).
func HandTuned(preset spring.Preset, s spring.Spring, av spring.AnimatedValue, frameRate float64) ([]Cubic, error) {
	template, ok := handTunedTemplates[preset]
	if !ok {
		return nil, ErrUnrecognizedSpring
	}
	equilibriumFrame, err := EquilibriumFrame(s, av, frameRate)
	if err != nil {
		return nil, err
	}

	lastX := template[len(template)-1].P3.X
	sx := float64(equilibriumFrame) / lastX
	sy := (av.FinalValue - av.Value) / 100.0
	dy := av.Value

	scaled := make([]Cubic, len(template))
	xform := func(p geom.Point) geom.Point {
		return geom.Point{X: p.X * sx, Y: p.Y*sy + dy}
	}
	for i, c := range template {
		scaled[i] = Cubic{P0: xform(c.P0), P1: xform(c.P1), P2: xform(c.P2), P3: xform(c.P3)}
	}
	return scaled, nil
}

// --- curve fitting alternative ----------------------------------------------

// fitTolerance is the maximum allowed deviation (in value units) between
// the fitted cubic and the actual spring trajectory, per spec §4.5.
const fitTolerance = 0.1

// tangentFrameOffset is the central-difference step (in frames) used to
// estimate the trajectory's tangent at a sample point.
const tangentFrameOffset = 0.05

// trajectory exposes a simulated spring run as a continuous function of
// frame, for fitting and tangent estimation.
type trajectory struct {
	spring    spring.Spring
	samples   []spring.AnimatedValue
	frameRate float64
	lastFrame float64
}

func newTrajectory(s spring.Spring, av spring.AnimatedValue, frameRate float64) (*trajectory, error) {
	samples, err := s.SimulateToEquilibrium(av, frameRate)
	if err != nil {
		return nil, err
	}
	return &trajectory{spring: s, samples: samples, frameRate: frameRate, lastFrame: float64(len(samples) - 1)}, nil
}

// valueAt returns the trajectory's value at an arbitrary (possibly
// fractional, possibly out-of-range) frame, clamping to the endpoints and
// otherwise re-running the spring update from the preceding integer
// sample — matching the reference fitter's frame_value behavior.
func (tr *trajectory) valueAt(frame float64) float64 {
	if frame <= 0 {
		return tr.samples[0].Value
	}
	if frame >= tr.lastFrame {
		return tr.samples[len(tr.samples)-1].Value
	}
	before := math.Floor(frame)
	if math.Abs(frame-before) < 1e-3 {
		return tr.samples[int(before)].Value
	}
	prev := tr.samples[int(before)]
	return tr.spring.Update(frame/tr.frameRate, prev).Value
}

// pointAndTangent returns the (frame, value) point and an approximate
// tangent vector at parametric position t in [0,1] along the trajectory,
// via central differences (spec §4.5).
func (tr *trajectory) pointAndTangent(t float64) (geom.Point, geom.Point) {
	frame := t * tr.lastFrame
	prevFrame := frame - tangentFrameOffset
	nextFrame := frame + tangentFrameOffset
	prev := geom.Point{X: prevFrame, Y: tr.valueAt(prevFrame)}
	curr := geom.Point{X: frame, Y: tr.valueAt(frame)}
	next := geom.Point{X: nextFrame, Y: tr.valueAt(nextFrame)}
	tangent := curr.Sub(prev).Add(next.Sub(curr)).Scale(0.5)
	return curr, tangent
}

// Fit produces a cubic-bezier approximation of s's trajectory from av to
// equilibrium, recursively subdividing until every segment is within
// fitTolerance of the simulated values (spec §4.5's curve-fitting
// alternative to the hand-tuned templates). Spring trajectories have no
// cusps, so no cusp-breaking is needed (spec §4.5).
func Fit(s spring.Spring, av spring.AnimatedValue, frameRate float64) ([]Cubic, error) {
	tr, err := newTrajectory(s, av, frameRate)
	if err != nil {
		return nil, err
	}
	if tr.lastFrame <= 0 {
		p, _ := tr.pointAndTangent(0)
		return []Cubic{{P0: p, P1: p, P2: p, P3: p}}, nil
	}
	return fitRange(tr, 0, 1, 0), nil
}

const maxFitDepth = 12

func fitRange(tr *trajectory, t0, t1 float64, depth int) []Cubic {
	p0, tan0 := tr.pointAndTangent(t0)
	p3, tan3 := tr.pointAndTangent(t1)
	chord := p3.X - p0.X

	handle := chord / 3
	p1 := p0.Add(unit(tan0).Scale(handle))
	p2 := p3.Sub(unit(tan3).Scale(handle))
	cubic := Cubic{P0: p0, P1: p1, P2: p2, P3: p3}

	if depth >= maxFitDepth || fitError(tr, cubic, t0, t1) <= fitTolerance {
		return []Cubic{cubic}
	}
	mid := (t0 + t1) / 2
	left := fitRange(tr, t0, mid, depth+1)
	right := fitRange(tr, mid, t1, depth+1)
	return append(left, right...)
}

// fitError samples the cubic and the real trajectory at several interior
// points and returns the largest absolute value-axis deviation.
func fitError(tr *trajectory, c Cubic, t0, t1 float64) float64 {
	const samples = 6
	maxErr := 0.0
	for i := 1; i < samples; i++ {
		u := float64(i) / float64(samples)
		t := t0 + (t1-t0)*u
		actual, _ := tr.pointAndTangent(t)
		fitted := evalCubic(c, u)
		if d := math.Abs(fitted.Y - actual.Y); d > maxErr {
			maxErr = d
		}
	}
	return maxErr
}

func evalCubic(c Cubic, u float64) geom.Point {
	mu := 1 - u
	x := mu*mu*mu*c.P0.X + 3*mu*mu*u*c.P1.X + 3*mu*u*u*c.P2.X + u*u*u*c.P3.X
	y := mu*mu*mu*c.P0.Y + 3*mu*mu*u*c.P1.Y + 3*mu*u*u*c.P2.Y + u*u*u*c.P3.Y
	return geom.Point{X: x, Y: y}
}

func unit(v geom.Point) geom.Point {
	length := math.Hypot(v.X, v.Y)
	if length == 0 {
		return geom.Point{}
	}
	return geom.Point{X: v.X / length, Y: v.Y / length}
}
