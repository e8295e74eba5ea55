package iconimation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileFailsOnInvalidFont(t *testing.T) {
	_, err := Compile([]byte("not a font"), "Animate settings: twirl-whole", CompileOptions{Formats: FormatLottie})
	assert.Error(t, err)
}

func TestCompileFailsOnNilFontBeforeCommandParsing(t *testing.T) {
	// Even a valid-looking command fails fast on font parsing before
	// command parsing would otherwise be reached; this exercises the
	// dispatcher's early-return-on-error wiring without needing a real
	// font binary (none is available in this environment per SPEC_FULL.md).
	_, err := Compile(nil, "not a command", CompileOptions{Formats: FormatLottie | FormatAVD})
	assert.Error(t, err)
}
