// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ast defines the value tree built up by an incremental parse: a
// closed family of two variants, string leaves and object containers.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/creachadair/jfrag/internal/escape"
	"go4.org/mem"
)

// A Value is a JSON value in the string/object subset. The only concrete
// types are *String and *Object.
type Value interface {
	// JSON renders the value as JSON source text. Members of an object are
	// rendered in insertion order, so the output is deterministic.
	JSON() string

	isValue()
}

// A String is a string value. Its content is an append-only buffer: the
// parser extends it while the value is still streaming in, and leaves it
// alone thereafter.
type String struct {
	text []byte
}

// NewString constructs a String with the given initial content.
func NewString(s string) *String { return &String{text: []byte(s)} }

func (*String) isValue() {}

// Append appends b to the content of s.
func (s *String) Append(b byte) { s.text = append(s.text, b) }

// Len reports the length of the content of s in bytes.
func (s *String) Len() int { return len(s.text) }

// Value returns a copy of the content of s.
func (s *String) Value() string { return string(s.text) }

// JSON renders s as a quoted JSON string.
func (s *String) JSON() string { return string(escape.Quote(mem.B(s.text))) }

func (s *String) String() string { return fmt.Sprintf("String(%q)", s.text) }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// JSON renders m as a JSON object member, "key":value.
func (m *Member) JSON() string {
	k := string(escape.Quote(mem.S(m.Key)))
	v := m.Value.JSON()
	buf := make([]byte, len(k)+len(v)+1)
	n := copy(buf, k)
	buf[n] = ':'
	copy(buf[n+1:], v)
	return string(buf)
}

func (m *Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// An Object is a collection of key-value members in insertion order. An
// Object exclusively owns the values of its members.
type Object struct {
	Members []*Member
}

func (*Object) isValue() {}

// Len reports the number of members of o.
func (o *Object) Len() int { return len(o.Members) }

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	if i := o.Index(key); i >= 0 {
		return o.Members[i]
	}
	return nil
}

// Index returns the index of the first member of o with the given key, or -1.
func (o *Object) Index(key string) int {
	for i, m := range o.Members {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// Set sets the value of key in o to v. If key is already present its value
// is replaced in place, keeping the member's original position; otherwise a
// new member is appended. The grammar does not specify duplicate keys, so a
// caller feeding one sees last-write-wins.
func (o *Object) Set(key string, v Value) {
	if i := o.Index(key); i >= 0 {
		o.Members[i].Value = v
		return
	}
	o.Members = append(o.Members, &Member{Key: key, Value: v})
}

// Map translates o into native nested maps and strings. The result shares
// no storage with o; later mutation of the tree does not affect it.
func (o *Object) Map() map[string]any {
	out := make(map[string]any, len(o.Members))
	for _, m := range o.Members {
		switch v := m.Value.(type) {
		case *String:
			out[m.Key] = v.Value()
		case *Object:
			out[m.Key] = v.Map()
		}
	}
	return out
}

// JSON renders o as a JSON object in insertion order.
func (o *Object) JSON() string {
	if len(o.Members) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	sb.WriteString(o.Members[0].JSON())
	for _, m := range o.Members[1:] {
		sb.WriteByte(',')
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.Members)) }

// ToValue converts a string or a map[string]any with string or nested-map
// values into a Value. Members converted from a map are ordered by key,
// since a Go map has no insertion order to preserve. It panics if v or any
// nested value does not have one of those types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case string:
		return NewString(t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := new(Object)
		for _, key := range keys {
			out.Members = append(out.Members, &Member{Key: key, Value: ToValue(t[key])})
		}
		return out
	default:
		panic(fmt.Sprintf("invalid value of type %T", v))
	}
}

// Path traverses a sequence of nested object keys starting from v, and
// returns the value reached. It reports an error if a non-terminal value on
// the path is not an object, or if a key is not present.
func Path(v Value, keys ...string) (Value, error) {
	for _, key := range keys {
		obj, ok := v.(*Object)
		if !ok {
			return nil, fmt.Errorf("cannot traverse %v with key %q", v, key)
		}
		m := obj.Find(key)
		if m == nil {
			return nil, fmt.Errorf("key %q not found", key)
		}
		v = m.Value
	}
	return v, nil
}
