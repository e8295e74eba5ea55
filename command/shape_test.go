package command

import (
	"testing"

	"github.com/rsheeter/iconimation/ot"
	"github.com/stretchr/testify/assert"
)

func TestLocationsEqual(t *testing.T) {
	a := ot.DesignLocation{ot.T("FILL"): 0}
	b := ot.DesignLocation{ot.T("FILL"): 0}
	c := ot.DesignLocation{ot.T("FILL"): 1}
	assert.True(t, locationsEqual(a, b))
	assert.False(t, locationsEqual(a, c))
	assert.False(t, locationsEqual(a, ot.DesignLocation{}))
}
