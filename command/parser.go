package command

import (
	"strconv"
	"strings"

	"github.com/rsheeter/iconimation/ir"
	"github.com/rsheeter/iconimation/ot"
	"github.com/rsheeter/iconimation/spring"
)

// parseCommand implements spec §6's grammar:
//
//	command   := "Animate" IDENT ":" motion? spring? variation?
//	motion    := "rotate" INT "degrees"
//	           | "scale" INT "to" INT
//	           | "pulse" | "pulse-whole" | "twirl" | "twirl-whole" | "none"
//	spring    := "using" SPRING_NAME
//	variation := "vary" LOC "to" LOC
//	LOC       := TAG ":" NUM ("," TAG ":" NUM)*
func parseCommand(text string) (*Plan, error) {
	ts := &tokenStream{tokens: tokenize(text)}
	if !ts.expect("Animate") {
		return nil, ErrUnrecognizedCommand
	}
	name, ok := ts.next()
	if !ok {
		return nil, ErrUnrecognizedCommand
	}
	if !ts.expect(":") {
		return nil, ErrUnrecognizedCommand
	}

	plan := &Plan{IconName: name}

	if tok, ok := ts.peek(); ok {
		lower := strings.ToLower(tok)
		_, isKeyword := motionKeywords[lower]
		if isKeyword || lower == "rotate" || lower == "scale" {
			m, err := parseMotion(ts)
			if err != nil {
				return nil, err
			}
			plan.Motion = m
		}
	}

	if ts.expect("using") {
		tok, ok := ts.next()
		if !ok {
			return nil, ErrUnrecognizedCommand
		}
		preset, ok := spring.ParsePreset(strings.ToLower(tok))
		if !ok {
			return nil, ErrUnrecognizedSpring
		}
		plan.Motion.SpringPreset = &preset
	}

	if ts.expect("vary") {
		from, err := parseLocation(ts)
		if err != nil {
			return nil, err
		}
		if !ts.expect("to") {
			return nil, ErrInvalidLocation
		}
		to, err := parseLocation(ts)
		if err != nil {
			return nil, err
		}
		plan.VaryFrom = from
		plan.VaryTo = to
	}

	if _, ok := ts.peek(); ok {
		return nil, ErrUnrecognizedCommand
	}
	return plan, nil
}

// motionKeywords are the motion tokens with no further arguments.
var motionKeywords = map[string]ir.MotionKind{
	"pulse":       ir.MotionPulseParts,
	"pulse-whole": ir.MotionPulseWhole,
	"twirl":       ir.MotionTwirlParts,
	"twirl-whole": ir.MotionTwirlWhole,
	"none":        ir.MotionNone,
}

func parseMotion(ts *tokenStream) (ir.Motion, error) {
	tok, ok := ts.next()
	if !ok {
		return ir.Motion{}, ErrUnrecognizedCommand
	}
	lower := strings.ToLower(tok)

	if kind, isKeyword := motionKeywords[lower]; isKeyword {
		return ir.Motion{Kind: kind}, nil
	}

	switch lower {
	case "rotate":
		degTok, ok := ts.next()
		if !ok {
			return ir.Motion{}, ErrUnrecognizedCommand
		}
		degrees, err := strconv.ParseFloat(degTok, 64)
		if err != nil {
			return ir.Motion{}, ErrUnrecognizedCommand
		}
		if !ts.expect("degrees") {
			return ir.Motion{}, ErrUnrecognizedCommand
		}
		return ir.Motion{Kind: ir.MotionRotateDegrees, RotateDegrees: degrees}, nil
	case "scale":
		fromTok, ok := ts.next()
		if !ok {
			return ir.Motion{}, ErrUnrecognizedCommand
		}
		from, err := strconv.ParseFloat(fromTok, 64)
		if err != nil {
			return ir.Motion{}, ErrUnrecognizedCommand
		}
		if !ts.expect("to") {
			return ir.Motion{}, ErrUnrecognizedCommand
		}
		toTok, ok := ts.next()
		if !ok {
			return ir.Motion{}, ErrUnrecognizedCommand
		}
		to, err := strconv.ParseFloat(toTok, 64)
		if err != nil {
			return ir.Motion{}, ErrUnrecognizedCommand
		}
		return ir.Motion{Kind: ir.MotionScaleFromTo, ScaleFrom: from, ScaleTo: to}, nil
	}
	return ir.Motion{}, ErrUnrecognizedCommand
}

// parseLocation parses a LOC production: TAG ":" NUM ("," TAG ":" NUM)*.
func parseLocation(ts *tokenStream) (ot.DesignLocation, error) {
	loc := ot.DesignLocation{}
	for {
		tagTok, ok := ts.next()
		if !ok {
			return nil, ErrInvalidLocation
		}
		if !tagPattern.MatchString(tagTok) {
			return nil, ErrInvalidTag
		}
		if !ts.expect(":") {
			return nil, ErrInvalidLocation
		}
		valTok, ok := ts.next()
		if !ok {
			return nil, ErrInvalidLocation
		}
		val, err := strconv.ParseFloat(valTok, 64)
		if err != nil {
			return nil, ErrInvalidFloat
		}
		loc[ot.T(tagTok)] = val

		if !ts.expect(",") {
			break
		}
	}
	return loc, nil
}
