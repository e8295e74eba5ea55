package spring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressiveSpatialReachesEquilibriumAndOvershoots(t *testing.T) {
	s, ok := ByPreset(PresetExpressiveSpatial)
	require.True(t, ok)

	av := NewAnimatedValue(0, 100, Scale)
	var samples []AnimatedValue
	for frame := 0; frame < 300; frame++ {
		time := float64(frame) / 60.0
		av = s.Update(time, av)
		samples = append(samples, av)
		if av.IsAtEquilibrium() {
			break
		}
	}

	assert.Less(t, len(samples), 50, "should settle well within the time cap")

	max := samples[0].Value
	for _, sample := range samples {
		if sample.Value > max {
			max = sample.Value
		}
	}
	assert.Greater(t, max, 100.0, "expressive-spatial should overshoot its target")

	last := samples[len(samples)-1]
	assert.InDelta(t, 100.0, last.Value, 0.001)
}

func TestAllPresetsReachEquilibrium(t *testing.T) {
	for _, preset := range []Preset{
		PresetStandard, PresetSmoothSpatial, PresetSmoothNonSpatial,
		PresetExpressiveSpatial, PresetExpressiveNonSpatial,
	} {
		s, ok := ByPreset(preset)
		require.True(t, ok, preset)
		av := NewAnimatedValue(0, 1_000_000, Position)
		_, err := s.SimulateToEquilibrium(av, 60)
		assert.NoError(t, err, "preset %s should settle within the time cap", preset)
	}
}

func TestByPresetUnrecognized(t *testing.T) {
	_, ok := ByPreset("fancy")
	assert.False(t, ok)
}

func TestNewInvalidDamping(t *testing.T) {
	_, err := New(-1, 100)
	assert.ErrorIs(t, err, ErrInvalidDamping)
}

func TestIsAtEquilibriumImmediate(t *testing.T) {
	av := NewAnimatedValue(5, 5, Rotation)
	assert.True(t, av.IsAtEquilibrium())
}
