package spring2cubic

import (
	"testing"

	"github.com/rsheeter/iconimation/spring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandTunedScalesToRange(t *testing.T) {
	s, ok := spring.ByPreset(spring.PresetExpressiveSpatial)
	require.True(t, ok)
	av := spring.NewAnimatedValue(10, 370, spring.Rotation)

	cubics, err := HandTuned(spring.PresetExpressiveSpatial, s, av, 60)
	require.NoError(t, err)
	require.Len(t, cubics, 2)

	assert.InDelta(t, 10, cubics[0].P0.Y, 1e-9)
	assert.InDelta(t, 370, cubics[len(cubics)-1].P3.Y, 1e-9)
	assert.InDelta(t, 0, cubics[0].P0.X, 1e-9)
	assert.Greater(t, cubics[len(cubics)-1].P3.X, cubics[0].P0.X)
}

func TestHandTunedUnrecognizedSpring(t *testing.T) {
	s, _ := spring.New(1, 100)
	av := spring.NewAnimatedValue(0, 1, spring.Scale)
	_, err := HandTuned("fancy", s, av, 60)
	assert.ErrorIs(t, err, ErrUnrecognizedSpring)
}

func TestFitProducesMonotoneFrames(t *testing.T) {
	s, ok := spring.ByPreset(spring.PresetStandard)
	require.True(t, ok)
	av := spring.NewAnimatedValue(0, 100, spring.Scale)

	cubics, err := Fit(s, av, 60)
	require.NoError(t, err)
	require.NotEmpty(t, cubics)

	assert.InDelta(t, 0, cubics[0].P0.X, 1e-6)
	for i := 1; i < len(cubics); i++ {
		assert.GreaterOrEqual(t, cubics[i].P0.X, cubics[i-1].P3.X-1e-6)
	}
}
