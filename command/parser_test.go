package command

import (
	"testing"

	"github.com/rsheeter/iconimation/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTwirlWhole(t *testing.T) {
	p, err := Parse("Animate settings: twirl-whole")
	require.NoError(t, err)
	assert.Equal(t, "settings", p.IconName)
	assert.Equal(t, ir.MotionTwirlWhole, p.Motion.Kind)
}

func TestParsePulseParts(t *testing.T) {
	p, err := Parse("Animate check_circle: pulse")
	require.NoError(t, err)
	assert.Equal(t, ir.MotionPulseParts, p.Motion.Kind)
}

func TestParseRotateWithSpring(t *testing.T) {
	p, err := Parse("Animate settings: rotate 360 degrees using expressive-spatial")
	require.NoError(t, err)
	assert.Equal(t, ir.MotionRotateDegrees, p.Motion.Kind)
	assert.Equal(t, 360.0, p.Motion.RotateDegrees)
	require.NotNil(t, p.Motion.SpringPreset)
	assert.EqualValues(t, "expressive-spatial", *p.Motion.SpringPreset)
}

func TestParseScaleFromTo(t *testing.T) {
	p, err := Parse("Animate home: scale 0 to 100")
	require.NoError(t, err)
	assert.Equal(t, ir.MotionScaleFromTo, p.Motion.Kind)
	assert.Equal(t, 0.0, p.Motion.ScaleFrom)
	assert.Equal(t, 100.0, p.Motion.ScaleTo)
}

func TestParseCodepointWithVariation(t *testing.T) {
	p, err := Parse("Animate 0xE5CA: none vary FILL:0 to FILL:1")
	require.NoError(t, err)
	assert.Equal(t, "0xE5CA", p.IconName)
	assert.Equal(t, ir.MotionNone, p.Motion.Kind)
	assert.Len(t, p.VaryFrom, 1)
	assert.Len(t, p.VaryTo, 1)
}

func TestParseUnrecognizedSpring(t *testing.T) {
	_, err := Parse("Animate x: rotate 90 degrees using fancy")
	assert.ErrorIs(t, err, ErrUnrecognizedSpring)
}

func TestParseUnrecognizedCommand(t *testing.T) {
	_, err := Parse("not a command at all")
	assert.ErrorIs(t, err, ErrUnrecognizedCommand)
}

func TestParseInvalidTag(t *testing.T) {
	_, err := Parse("Animate x: none vary TOOLONG:0 to TOOLONG:1")
	assert.ErrorIs(t, err, ErrInvalidTag)
}

func TestParseMultiAxisLocation(t *testing.T) {
	p, err := Parse("Animate x: none vary wght:400,FILL:0 to wght:700,FILL:1")
	require.NoError(t, err)
	assert.Len(t, p.VaryFrom, 2)
	assert.Len(t, p.VaryTo, 2)
}
