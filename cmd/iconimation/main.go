// Command iconimation compiles a textual motion command against a
// variable icon font into a Lottie JSON document and/or an Android Vector
// Drawable XML document (spec §4.10, C10). It can run once against a
// single command, or drop into an interactive REPL, adapted from the
// otcli table-browser REPL.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/rsheeter/iconimation"
)

// tracer traces with key 'iconimation.cli'
func tracer() tracing.Trace {
	return tracing.Select("iconimation.cli")
}

func main() {
	initDisplay()

	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.iconimation.cli": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Println("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	fontPath := flag.String("font", "", "Variable icon font to load")
	cmdText := flag.String("cmd", "", `Animation command, e.g. "Animate settings: twirl-whole"`)
	outLottie := flag.String("lottie", "", "Write Lottie JSON to this path")
	outAVD := flag.String("avd", "", "Write AVD XML to this path")
	frames := flag.Float64("frames", 0, "Total frame count (0 = default)")
	flag.Parse()

	if *fontPath == "" {
		tracer().Errorf("a -font is required")
		os.Exit(2)
	}
	fontBytes, err := os.ReadFile(*fontPath)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}

	if *cmdText != "" {
		if err := runOnce(fontBytes, *cmdText, *outLottie, *outAVD, *frames); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
		return
	}

	repl, err := readline.New("iconimation > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to iconimation. Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line == "" {
			continue
		}
		if err := runOnce(fontBytes, line, *outLottie, *outAVD, *frames); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	pterm.Info.Println("Good bye!")
}

func runOnce(fontBytes []byte, cmdText, outLottie, outAVD string, frames float64) error {
	var formats iconimation.Format
	if outLottie != "" {
		formats |= iconimation.FormatLottie
	}
	if outAVD != "" {
		formats |= iconimation.FormatAVD
	}
	if formats == 0 {
		formats = iconimation.FormatLottie
	}

	result, err := iconimation.Compile(fontBytes, cmdText, iconimation.CompileOptions{Formats: formats, Frames: frames})
	if err != nil {
		return err
	}
	if result.Lottie != nil {
		if outLottie != "" {
			if err := os.WriteFile(outLottie, result.Lottie, 0o644); err != nil {
				return err
			}
			pterm.Info.Printf("wrote %s\n", outLottie)
		} else {
			fmt.Println(string(result.Lottie))
		}
	}
	if result.AVD != nil {
		if outAVD != "" {
			if err := os.WriteFile(outAVD, result.AVD, 0o644); err != nil {
				return err
			}
			pterm.Info.Printf("wrote %s\n", outAVD)
		} else {
			fmt.Println(string(result.AVD))
		}
	}
	return nil
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
