package command

import (
	"github.com/rsheeter/iconimation/ir"
	"github.com/rsheeter/iconimation/ot"
)

// Resolve runs C1 (icon resolution), C2 (outline extraction), C6 (IR
// construction and motion application) against font, per spec §4.7's
// description of the planner's output: a complete IRAnimation ready for
// lowering. frames, if zero, defaults to ir.DefaultDuration.
func (p *Plan) Resolve(font *ot.Font, frames float64) (*ir.IRAnimation, error) {
	if frames <= 0 {
		frames = ir.DefaultDuration
	}

	shape, err := resolveShape(font, p)
	if err != nil {
		return nil, err
	}

	upem := float64(font.UnitsPerEm())
	path, xform, err := extract(shape, upem, frames)
	if err != nil {
		return nil, err
	}

	anim := ir.NewIRAnimation(int(upem), frames, xform, path)
	if err := ir.ApplyMotion(anim, p.Motion); err != nil {
		return nil, err
	}
	return anim, nil
}

// Build parses text and resolves it against font in one step (spec §4.7's
// end-to-end "parse → plan → IR" entry point, used by C10).
func Build(font *ot.Font, text string, frames float64) (*ir.IRAnimation, error) {
	plan, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return plan.Resolve(font, frames)
}
