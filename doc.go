// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jfrag implements an incremental parser for a restricted subset of
// JSON: objects nested to arbitrary depth whose keys and values are strings.
//
// The parser is built for input that arrives in fragments of arbitrary size,
// down to a single byte, and for callers that need to observe the structure
// parsed so far before the input is complete -- for example, rendering a
// structured response live while it is still being generated.
//
// # Feeding
//
// Construct a Parser and deliver input to its Consume method in as many
// pieces as the source provides. Parse state persists across calls, so a
// key, value, or nested object may be split at any byte boundary:
//
//	p := jfrag.New()
//	p.Consume(`{"name": "Ada`)
//	p.Consume(`ms", "role": {`)
//
// A Parser is also an io.Writer, so it can terminate a streaming pipeline:
//
//	io.Copy(p, stream)
//
// # Snapshots
//
// At any point, including mid-token, Snapshot returns the structure parsed
// so far as nested map[string]any values:
//
//	p.Snapshot() // map[string]any{"name": "Adams", "role": map[string]any{}}
//
// A member appears in the snapshot as soon as its value's type is known: an
// object is visible (empty) from its opening brace, a string from its
// opening quote, growing as content arrives. A key whose value has not
// started yet is absent entirely. Snapshots are copies; later Consume calls
// never mutate a snapshot already returned.
//
// For insertion-ordered access to the same structure, Root exposes the live
// [ast.Object] tree.
//
// # Strict mode
//
// By default the parser is lenient: any byte that does not match a
// transition for the current state is ignored, which makes truncated or
// lightly malformed streams yield everything that did parse. With
// Strict(true), an unexpected byte stops the current Consume call with a
// *SyntaxError reporting the byte, the set of accepted characters, and the
// input location.
//
// The grammar is deliberately small: no arrays, numbers, booleans, null, or
// escape sequences. A backslash inside a string is ordinary content, and a
// string value therefore cannot contain a double quotation mark.
package jfrag
