// Package spring simulates a parametric damped harmonic oscillator, the
// model spec §4.4 uses to produce natural-feeling motion between two
// keyframe values. It mirrors Android's SpringForce/DynamicAnimation
// implementation, which iconimation's spring presets were themselves
// ported from.
package spring

import (
	"errors"
	"math"
)

// ErrInvalidDamping is returned by New when damping is negative.
var ErrInvalidDamping = errors.New("spring: damping ratio must be >= 0")

// ErrRanTooLong is returned when a spring simulation fails to reach
// equilibrium within the 5-second real-time cap (spec §4.4/§7).
var ErrRanTooLong = errors.New("spring: simulation did not reach equilibrium within the time cap")

// TimeLimit is the hard cap, in seconds, on how long a spring simulation may
// run while searching for equilibrium (spec §5 cancellation surface).
const TimeLimit = 5.0

// regime identifies which closed-form solution a Spring was constructed
// with, chosen from the damping ratio at construction time.
type regime uint8

const (
	regimeOverdamped regime = iota
	regimeCritical
	regimeUnderdamped
)

// Spring is a closed-form damped harmonic oscillator. Zero value is not
// meaningful; construct with New or one of the named presets.
type Spring struct {
	regime regime

	// Overdamped
	gammaPlus, gammaMinus float64
	// CriticallyDamped
	naturalFreq float64
	// Underdamped
	damping, dampedFreq float64
}

// New constructs a Spring from a damping ratio (zeta >= 0) and stiffness
// (k). The regime (overdamped/critically damped/underdamped) is chosen from
// zeta relative to 1, per spec §3's Spring data model.
func New(damping, stiffness float64) (Spring, error) {
	if damping < 0 {
		return Spring{}, ErrInvalidDamping
	}
	naturalFreq := math.Sqrt(stiffness)
	switch {
	case damping > 1:
		disc := naturalFreq * math.Sqrt(damping*damping-1)
		return Spring{
			regime:     regimeOverdamped,
			gammaPlus:  -damping*naturalFreq + disc,
			gammaMinus: -damping*naturalFreq - disc,
		}, nil
	case damping < 1:
		return Spring{
			regime:      regimeUnderdamped,
			damping:     damping,
			naturalFreq: naturalFreq,
			dampedFreq:  naturalFreq * math.Sqrt(1-damping*damping),
		}, nil
	default:
		return Spring{regime: regimeCritical, naturalFreq: naturalFreq}, nil
	}
}

// Preset is the name of one of the five well-known spring presets exposed
// by spec §6.
type Preset string

// Named spring presets, with (damping ratio, stiffness) per spec §6.
const (
	PresetStandard              Preset = "standard"
	PresetSmoothSpatial         Preset = "smooth-spatial"
	PresetSmoothNonSpatial      Preset = "smooth-non-spatial"
	PresetExpressiveSpatial     Preset = "expressive-spatial"
	PresetExpressiveNonSpatial  Preset = "expressive-non-spatial"
)

// presetConstants holds the (damping, stiffness) pair for each named preset.
var presetConstants = map[Preset][2]float64{
	PresetStandard:             {1.0, 380},
	PresetSmoothSpatial:        {1.0, 190},
	PresetSmoothNonSpatial:     {1.0, 380},
	PresetExpressiveSpatial:    {0.8, 380},
	PresetExpressiveNonSpatial: {1.0, 380},
}

// ByPreset constructs the Spring named by preset. ok is false for an
// unrecognized preset name (spec §7's ErrUnrecognizedSpring case).
func ByPreset(preset Preset) (Spring, bool) {
	c, ok := presetConstants[preset]
	if !ok {
		return Spring{}, false
	}
	s, err := New(c[0], c[1])
	if err != nil {
		return Spring{}, false
	}
	return s, true
}

// ParsePreset validates a spring-name token from command text against the
// five known presets, returning ok=false for anything else.
func ParsePreset(name string) (Preset, bool) {
	p := Preset(name)
	_, ok := presetConstants[p]
	return p, ok
}

// Update advances the spring simulation from last to time, per the
// closed-form update rules of spec §4.4.
func (s Spring) Update(time float64, last AnimatedValue) AnimatedValue {
	dt := time - last.Time
	x := last.Value - last.FinalValue
	v := last.Velocity

	var value, velocity float64
	switch s.regime {
	case regimeOverdamped:
		gp, gm := s.gammaPlus, s.gammaMinus
		a := x - (gm*x-v)/(gm-gp)
		b := (gm*x - v) / (gm - gp)
		value = a*math.Exp(gm*dt) + b*math.Exp(gp*dt)
		velocity = a*gm*math.Exp(gm*dt) + b*gp*math.Exp(gp*dt)
	case regimeCritical:
		w0 := s.naturalFreq
		a := x
		b := v + w0*x
		e := math.Exp(-w0 * dt)
		value = (a + b*dt) * e
		velocity = (a+b*dt)*e*(-w0) + b*e
	default: // regimeUnderdamped
		zeta, w0, wd := s.damping, s.naturalFreq, s.dampedFreq
		c := x
		sinCoeff := (zeta*w0*x + v) / wd
		e := math.Exp(-zeta * w0 * dt)
		cosT := math.Cos(wd * dt)
		sinT := math.Sin(wd * dt)
		value = e * (c*cosT + sinCoeff*sinT)
		velocity = value*(-w0*zeta) + e*(-wd*c*sinT+wd*sinCoeff*cosT)
	}

	return AnimatedValue{
		Value:      value + last.FinalValue,
		Velocity:   velocity,
		FinalValue: last.FinalValue,
		Time:       time,
		Kind:       last.Kind,
	}
}

// SimulateToEquilibrium advances the spring at frameRate frames per second,
// starting at av, until IsAtEquilibrium reports true, returning the samples
// produced: av itself, then one sample per frame, so samples[k] is the state
// at time k/frameRate. It fails with ErrRanTooLong if equilibrium is not
// reached within TimeLimit seconds of simulated time.
func (s Spring) SimulateToEquilibrium(av AnimatedValue, frameRate float64) ([]AnimatedValue, error) {
	samples := []AnimatedValue{av}
	current := av
	frame := 1
	for !current.IsAtEquilibrium() {
		time := float64(frame) / frameRate
		if time > TimeLimit {
			return samples, ErrRanTooLong
		}
		current = s.Update(time, current)
		samples = append(samples, current)
		frame++
	}
	return samples, nil
}

// ValueKind determines which equilibrium thresholds apply to an
// AnimatedValue, per spec §4.4's threshold table.
type ValueKind struct {
	kind      valueKindTag
	threshold float64 // only meaningful for Custom
}

type valueKindTag uint8

const (
	valueKindPosition valueKindTag = iota
	valueKindRotation
	valueKindScale
	valueKindCustom
)

// Position, Rotation and Scale are the three built-in value kinds; Custom
// constructs a kind with an arbitrary base value threshold.
var (
	Position = ValueKind{kind: valueKindPosition}
	Rotation = ValueKind{kind: valueKindRotation}
	Scale    = ValueKind{kind: valueKindScale}
)

// Custom constructs a ValueKind with an arbitrary base value threshold
// (before the 0.75 multiplier applied uniformly to all kinds).
func Custom(threshold float64) ValueKind {
	return ValueKind{kind: valueKindCustom, threshold: threshold}
}

// thresholdMultiplier matches Android's THRESHOLD_MULTIPLIER.
const thresholdMultiplier = 0.75

// velocityThresholdMultiplier matches Android's constant used to derive a
// velocity threshold from a value threshold: if it takes >= 1 frame to
// move the value threshold amount, the velocity is considered settled.
const velocityThresholdMultiplier = 1000.0 / 16.0

func (k ValueKind) thresholds() (value, velocity float64) {
	base := 0.0
	switch k.kind {
	case valueKindPosition:
		base = 0.01
	case valueKindRotation:
		base = 0.1
	case valueKindScale:
		base = 1.0 / 500.0
	case valueKindCustom:
		base = k.threshold
	}
	value = base * thresholdMultiplier
	velocity = value * velocityThresholdMultiplier
	return value, velocity
}

// AnimatedValue is a spring simulation's state: current value, velocity,
// equilibrium target, simulated time, and the value kind governing when it
// is considered at rest (spec §3).
type AnimatedValue struct {
	Value      float64
	Velocity   float64
	FinalValue float64
	Time       float64
	Kind       ValueKind
}

// NewAnimatedValue constructs the initial state of a spring animation from
// "from" to "to" at rest (zero velocity, time zero).
func NewAnimatedValue(from, to float64, kind ValueKind) AnimatedValue {
	return AnimatedValue{Value: from, FinalValue: to, Kind: kind}
}

// IsAtEquilibrium reports whether the animated value's velocity and
// distance from its final value have both settled below the value kind's
// thresholds (spec §4.4).
func (av AnimatedValue) IsAtEquilibrium() bool {
	valueThreshold, velocityThreshold := av.Kind.thresholds()
	return math.Abs(av.Velocity) < velocityThreshold && math.Abs(av.Value-av.FinalValue) < valueThreshold
}
