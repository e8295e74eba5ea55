// Package ir implements the intermediate scene graph (C6): a keyframed,
// y-down, frame-indexed tree of groups and shapes with translate/scale/
// rotate keyframes per group (spec §3, §4.6).
package ir

import (
	"errors"
	"sort"

	"github.com/rsheeter/iconimation/spring"
)

// ErrEmptyKeyframes is returned by NewKeyframed for an empty key list
// (spec §3/§7).
var ErrEmptyKeyframes = errors.New("ir: keyframed series must have at least one keyframe")

// ErrDuplicateFrame is returned by NewKeyframed when two keys share a
// frame number (spec §3/§7).
var ErrDuplicateFrame = errors.New("ir: keyframed series has duplicate frame")

// Keyframe is one (frame, value) sample of a Keyframed series.
type Keyframe[T any] struct {
	Frame float64
	Value T
}

// Keyframed is a non-empty, frame-ordered series of keyframes, optionally
// tagged with a spring preset for spring-to-cubic expansion at lowering
// time (spec §3).
type Keyframed[T any] struct {
	Keys         []Keyframe[T]
	SpringPreset *spring.Preset
}

// NewKeyframed constructs a Keyframed series from keys, sorted by frame.
// It fails if keys is empty or if any two keys share a frame (spec §3's
// "frames are strictly increasing after construction" invariant).
func NewKeyframed[T any](keys ...Keyframe[T]) (Keyframed[T], error) {
	if len(keys) == 0 {
		return Keyframed[T]{}, ErrEmptyKeyframes
	}
	sorted := append([]Keyframe[T](nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Frame == sorted[i-1].Frame {
			return Keyframed[T]{}, ErrDuplicateFrame
		}
	}
	return Keyframed[T]{Keys: sorted}, nil
}

// MustKeyframed is NewKeyframed but panics on error; used for constants and
// fixed-shape motion curves whose keys are known ascending and unique by
// construction.
func MustKeyframed[T any](keys ...Keyframe[T]) Keyframed[T] {
	k, err := NewKeyframed(keys...)
	if err != nil {
		panic(err)
	}
	return k
}

// WithSpring returns a copy of k tagged with preset, for spring-to-cubic
// expansion at lowering time.
func (k Keyframed[T]) WithSpring(preset spring.Preset) Keyframed[T] {
	k.SpringPreset = &preset
	return k
}

// Single reports whether k carries exactly one keyframe (spec §4.8's
// static-vs-animated lowering distinction).
func (k Keyframed[T]) Single() bool { return len(k.Keys) == 1 }

// First returns k's earliest keyframe value.
func (k Keyframed[T]) First() T { return k.Keys[0].Value }

// Last returns k's latest keyframe value.
func (k Keyframed[T]) Last() T { return k.Keys[len(k.Keys)-1].Value }
