// Package iconimation is the animation compiler's orchestrator (C10): it
// turns one glyph of a variable icon font plus a textual motion command
// into a Lottie JSON document and/or an Android Vector Drawable XML
// document.
package iconimation

import (
	"encoding/json"
	"encoding/xml"

	"github.com/npillmayer/schuko/tracing"

	"github.com/rsheeter/iconimation/avd"
	"github.com/rsheeter/iconimation/command"
	"github.com/rsheeter/iconimation/lottie"
	"github.com/rsheeter/iconimation/ot"
)

// tracer writes to trace with key 'iconimation'
func tracer() tracing.Trace {
	return tracing.Select("iconimation")
}

// Format selects which output document(s) Compile produces.
type Format uint8

const (
	FormatLottie Format = 1 << iota
	FormatAVD
)

// CompileOptions configures Compile.
type CompileOptions struct {
	// Formats selects which of Result.Lottie/Result.AVD are populated.
	Formats Format
	// Frames overrides the animation's total frame count; zero uses
	// ir.DefaultDuration.
	Frames float64
}

// Result holds Compile's output documents, each nil unless requested by
// CompileOptions.Formats.
type Result struct {
	Lottie []byte
	AVD    []byte
}

// Compile parses commandText (spec §6's grammar), resolves it against
// fontBytes, and lowers the resulting animation to the formats requested
// by opts (spec §4.10, C10). This is a thin dispatcher: all of the actual
// work is command.Build plus lottie.Lower/avd.Lower.
func Compile(fontBytes []byte, commandText string, opts CompileOptions) (Result, error) {
	font, err := ot.Parse(fontBytes)
	if err != nil {
		return Result{}, err
	}

	anim, err := command.Build(font, commandText, opts.Frames)
	if err != nil {
		return Result{}, err
	}

	var result Result
	if opts.Formats&FormatLottie != 0 {
		doc, err := lottie.Lower(anim)
		if err != nil {
			return Result{}, err
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return Result{}, err
		}
		result.Lottie = out
		tracer().Infof("compiled Lottie document (%d bytes)", len(out))
	}
	if opts.Formats&FormatAVD != 0 {
		doc, err := avd.Lower(anim)
		if err != nil {
			return Result{}, err
		}
		out, err := xml.Marshal(doc)
		if err != nil {
			return Result{}, err
		}
		result.AVD = out
		tracer().Infof("compiled AVD document (%d bytes)", len(out))
	}
	return result, nil
}
