package command

import "errors"

// Parse and plan-construction errors (spec §7's "Parse errors" category).
var (
	// ErrUnrecognizedCommand is returned for text that does not match the
	// "Animate IDENT : ..." grammar (spec §6).
	ErrUnrecognizedCommand = errors.New("command: text does not match the Animate grammar")
	// ErrInvalidTag is returned for a LOC entry whose axis tag is not a
	// 4-character token: a letter followed by three letters, digits or
	// spaces (spec §6's TAG production).
	ErrInvalidTag = errors.New("command: invalid axis tag")
	// ErrInvalidFloat is returned when a LOC entry's numeric value fails
	// to parse.
	ErrInvalidFloat = errors.New("command: invalid axis value")
	// ErrInvalidLocation is returned for a malformed LOC production.
	ErrInvalidLocation = errors.New("command: invalid designspace location")
	// ErrUnrecognizedSpring is returned when a "using SPRING_NAME" clause
	// names something other than the five known presets (spec §6).
	ErrUnrecognizedSpring = errors.New("command: unrecognized spring preset name")
)
