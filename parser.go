// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jfrag

import (
	"bytes"
	"fmt"

	"github.com/creachadair/jfrag/ast"
	"go4.org/mem"
)

// A Parser incrementally parses the string/object subset of JSON from input
// delivered in fragments of arbitrary size. The zero value is not ready for
// use; call New.
//
// A Parser is not safe for concurrent use. A caller feeding it from
// multiple goroutines must serialize all Consume, Write, and Snapshot calls.
type Parser struct {
	root  *ast.Object   // the root object; allocated at construction, never replaced
	stack []*ast.Object // open objects below the root, innermost last
	state State

	key    bytes.Buffer // scratch for the key currently being scanned
	cur    *ast.String  // append target while state == InValue
	closed bool         // the root object's closing brace was consumed
	strict bool

	pos       int // byte offset of the next input byte, 0-based
	line, col int // line and column of the next input byte, 0-based
}

// New constructs an empty Parser in lenient mode.
func New() *Parser { return &Parser{root: new(ast.Object)} }

// Strict configures the parser to reject (true) or ignore (false) input
// bytes not accepted by the current parse state. The default is false:
// unexpected bytes are skipped without effect, which lets truncated or
// malformed streams yield whatever did parse.
func (p *Parser) Strict(ok bool) { p.strict = ok }

// Consume processes each byte of fragment in order, updating the parse
// state and the value tree. Fragments may be of any length, including
// empty; state persists across calls, so a token may span any number of
// fragments and multi-byte UTF-8 sequences may be split at any boundary.
//
// In lenient mode Consume always returns nil. In strict mode it returns a
// *SyntaxError for the first unacceptable byte and consumes nothing further
// from fragment; mutations from earlier bytes of the fragment remain
// applied.
func (p *Parser) Consume(fragment string) error {
	for i := 0; i < len(fragment); i++ {
		if err := p.consume(fragment[i]); err != nil {
			return err
		}
	}
	return nil
}

// Write implements io.Writer, feeding data to the parser as one fragment.
// In strict mode a rejected byte reports the number of bytes applied before
// it along with the *SyntaxError.
func (p *Parser) Write(data []byte) (int, error) {
	for i, b := range data {
		if err := p.consume(b); err != nil {
			return i, err
		}
	}
	return len(data), nil
}

// Snapshot translates the current parse tree into native nested maps and
// strings. It does not mutate parser state and is safe to call after any
// Consume, including between bytes of an incomplete token. The result is a
// copy: later Consume calls never modify a snapshot already returned.
//
// A member whose value type is not yet known (its key has been scanned but
// no value has started) is absent from the snapshot.
func (p *Parser) Snapshot() map[string]any { return p.root.Map() }

// Root returns the root of the live value tree. Unlike Snapshot the result
// is not a copy: subsequent Consume calls mutate it in place. The root is
// allocated when the parser is constructed and is never replaced.
func (p *Parser) Root() *ast.Object { return p.root }

// State reports the current state of the parse machine.
func (p *Parser) State() State { return p.state }

// Complete reports whether the root object's closing brace has been
// consumed. Once complete, further lenient input has no effect.
func (p *Parser) Complete() bool { return p.closed }

// Depth reports the number of objects currently open, including the root
// once its opening brace has been consumed.
func (p *Parser) Depth() int {
	if p.state == Start || p.closed {
		return 0
	}
	return len(p.stack) + 1
}

// Parse constructs a lenient parser, consumes all of input, and returns the
// resulting snapshot. Lenient parsing cannot fail.
func Parse(input string) map[string]any {
	p := New()
	p.Consume(input) // cannot fail in lenient mode
	return p.Snapshot()
}

// ParseStrict constructs a strict parser, consumes all of input, and
// returns the resulting snapshot. In case of error the input up to the
// rejected byte has still been parsed, but no snapshot is returned.
func ParseStrict(input string) (map[string]any, error) {
	p := New()
	p.Strict(true)
	if err := p.Consume(input); err != nil {
		return nil, err
	}
	return p.Snapshot(), nil
}

// consume processes a single input byte.
func (p *Parser) consume(b byte) error {
	if isSpace(b) && p.state != InKey && p.state != InValue {
		p.advance(b)
		return nil
	}
	if p.strict {
		if ok, want := p.state.accepts(b); !ok {
			return p.syntaxError(b, want)
		}
	}
	p.process(b)
	p.advance(b)
	return nil
}

// process dispatches b through the transition table. Bytes that match no
// transition for the current state are ignored without effect.
// Precondition: b is not insignificant whitespace.
func (p *Parser) process(b byte) {
	if p.closed {
		return // inert tail: the root object has already closed
	}
	switch p.state {
	case Start:
		if b == '{' {
			p.state = ExpectKeyOrEnd
		}

	case ExpectKeyOrEnd:
		switch b {
		case '"':
			p.key.Reset()
			p.state = InKey
		case '}':
			p.pop()
			p.state = ExpectCommaOrEnd
		}

	case InKey:
		if b == '"' {
			p.state = ExpectColon
		} else {
			p.key.WriteByte(b)
		}

	case ExpectColon:
		if b == ':' {
			p.state = ExpectValue
		}

	case ExpectValue:
		// The member becomes visible only here, when its value's type is
		// known: as an empty string at the opening quote, or as an empty
		// object at the opening brace.
		switch b {
		case '"':
			s := new(ast.String)
			p.top().Set(p.key.String(), s)
			p.cur = s
			p.state = InValue
		case '{':
			o := new(ast.Object)
			p.top().Set(p.key.String(), o)
			p.stack = append(p.stack, o)
			p.state = ExpectKeyOrEnd
		}

	case InValue:
		if b == '"' {
			p.cur = nil
			p.state = ExpectCommaOrEnd
		} else {
			p.cur.Append(b)
		}

	case ExpectCommaOrEnd:
		switch b {
		case ',':
			p.state = ExpectKeyOrEnd
		case '}':
			p.pop()
		}
	}
}

// top returns the innermost open object, or the root if none is open.
func (p *Parser) top() *ast.Object {
	if n := len(p.stack); n > 0 {
		return p.stack[n-1]
	}
	return p.root
}

// pop closes the innermost open object. Closing with an empty stack closes
// the root itself, after which all further lenient input is inert.
func (p *Parser) pop() {
	if n := len(p.stack); n > 0 {
		p.stack = p.stack[:n-1]
	} else {
		p.closed = true
	}
}

// advance updates the input location past b.
func (p *Parser) advance(b byte) {
	p.pos++
	if b == '\n' {
		p.line++
		p.col = 0
	} else {
		p.col++
	}
}

func (p *Parser) syntaxError(b byte, want mem.RO) error {
	return &SyntaxError{
		Location: LineCol{Line: p.line + 1, Column: p.col},
		Offset:   p.pos,
		State:    p.state,
		Char:     b,
		Want:     want.StringCopy(),
	}
}

// SyntaxError is the concrete type of errors reported by a strict-mode
// parser. The byte that triggered the error was not applied; feeding more
// input after a SyntaxError is permitted but its results are unspecified.
type SyntaxError struct {
	Location LineCol // line and column of the rejected byte
	Offset   int     // byte offset of the rejected byte, 0-based
	State    State   // machine state at the point of rejection
	Char     byte    // the rejected byte
	Want     string  // the set of bytes accepted in State
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: got %q, want one of %q in state %s", e.Location, e.Char, e.Want, e.State)
}
