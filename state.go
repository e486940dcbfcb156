// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jfrag

import "go4.org/mem"

// State is the type of a parse state in the object grammar.
type State byte

// Constants defining the valid State values.
const (
	Start            State = iota // before the root "{"
	ExpectKeyOrEnd                // awaiting a key's open quote or "}"
	InKey                         // inside a key string
	ExpectColon                   // awaiting ":"
	ExpectValue                   // awaiting the start of a value
	InValue                       // inside a string value
	ExpectCommaOrEnd              // awaiting "," or "}"

	numStates // sentinel; must be last
)

var stateStr = [numStates]string{
	Start:            "start",
	ExpectKeyOrEnd:   "expect-key-or-end",
	InKey:            "in-key",
	ExpectColon:      "expect-colon",
	ExpectValue:      "expect-value",
	InValue:          "in-value",
	ExpectCommaOrEnd: "expect-comma-or-end",
}

func (s State) String() string {
	if int(s) >= len(stateStr) {
		return "invalid state"
	}
	return stateStr[s]
}

// accept gives the set of bytes accepted in each state under strict syntax
// checking. InKey and InValue are absent: inside a string every byte is
// either content or the closing quote, so nothing can be rejected.
var accept = [numStates]mem.RO{
	Start:            mem.S(`{`),
	ExpectKeyOrEnd:   mem.S(`"}`),
	ExpectColon:      mem.S(`:`),
	ExpectValue:      mem.S(`"{`),
	ExpectCommaOrEnd: mem.S(`,}`),
}

// accepts reports whether b is accepted in state s under strict syntax
// checking, and returns the accepted set for diagnostics. States with an
// empty set accept every byte.
func (s State) accepts(b byte) (bool, mem.RO) {
	set := accept[s]
	if set.Len() == 0 {
		return true, set
	}
	for i := 0; i < set.Len(); i++ {
		if set.At(i) == b {
			return true, set
		}
	}
	return false, set
}

// isSpace reports whether b is insignificant whitespace outside strings.
func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
