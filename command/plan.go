package command

import (
	"github.com/rsheeter/iconimation/ir"
	"github.com/rsheeter/iconimation/ot"
	"github.com/rsheeter/iconimation/spring"
)

// Plan is the parsed form of a command string (spec §3's AnimationPlan):
// which icon to animate, which motion and spring to apply, and an optional
// variable-font location pair to interpolate across (spec §6's "vary"
// clause). It holds no font reference — Resolve binds it to one.
type Plan struct {
	IconName string
	Motion   ir.Motion
	VaryFrom ot.DesignLocation
	VaryTo   ot.DesignLocation // nil unless a "vary" clause was present
}

// Parse parses command text per spec §6's grammar into a Plan.
func Parse(text string) (*Plan, error) {
	return parseCommand(text)
}
