// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"testing"

	"github.com/creachadair/jfrag/ast"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestObject(t *testing.T) {
	o := new(ast.Object)
	if o.Len() != 0 {
		t.Errorf("Len of empty object: got %d, want 0", o.Len())
	}
	if m := o.Find("a"); m != nil {
		t.Errorf("Find in empty object: got %v, want nil", m)
	}

	o.Set("b", ast.NewString("2"))
	o.Set("a", ast.NewString("1"))
	o.Set("c", new(ast.Object))

	if got, want := o.Len(), 3; got != want {
		t.Errorf("Len: got %d, want %d", got, want)
	}
	if got := o.Index("a"); got != 1 {
		t.Errorf(`Index "a": got %d, want 1`, got)
	}
	if got := o.Index("nonesuch"); got != -1 {
		t.Errorf(`Index "nonesuch": got %d, want -1`, got)
	}
	m := o.Find("b")
	if m == nil {
		t.Fatal(`Find "b": got nil`)
	}
	if s, ok := m.Value.(*ast.String); !ok || s.Value() != "2" {
		t.Errorf(`Find "b": got %v, want String("2")`, m.Value)
	}

	// Overwriting keeps the member's original position.
	o.Set("b", ast.NewString("22"))
	if got, want := o.JSON(), `{"b":"22","a":"1","c":{}}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
}

func TestString(t *testing.T) {
	s := ast.NewString("ab")
	s.Append('c')
	if got, want := s.Value(), "abc"; got != want {
		t.Errorf("Value: got %q, want %q", got, want)
	}
	if got, want := s.Len(), 3; got != want {
		t.Errorf("Len: got %d, want %d", got, want)
	}

	// The value returned earlier must not see later appends.
	before := s.Value()
	s.Append('d')
	if before != "abc" {
		t.Errorf("Earlier value changed: got %q, want %q", before, "abc")
	}
}

func TestMap(t *testing.T) {
	o := new(ast.Object)
	o.Set("name", ast.NewString("Ada"))
	inner := new(ast.Object)
	inner.Set("title", ast.NewString("Engineer"))
	o.Set("job", inner)
	o.Set("empty", new(ast.Object))

	want := map[string]any{
		"name":  "Ada",
		"job":   map[string]any{"title": "Engineer"},
		"empty": map[string]any{},
	}
	got := o.Map()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Map: (-want, +got)\n%s", diff)
	}

	// The translation is a copy; later mutation must not leak into it.
	inner.Set("title", ast.NewString("Manager"))
	o.Set("name", ast.NewString("Grace"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Map changed by later mutation: (-want, +got)\n%s", diff)
	}
}

func TestJSON(t *testing.T) {
	tests := []struct {
		value ast.Value
		want  string
	}{
		{new(ast.Object), `{}`},
		{ast.NewString(""), `""`},
		{ast.NewString("plain"), `"plain"`},

		// Content the grammar admits verbatim must be re-escaped on output.
		{ast.NewString(`back\slash`), `"back\\slash"`},
		{ast.NewString("tab\there"), `"tab\there"`},
		{ast.NewString("ctl\x01"), `"ctl\u0001"`},
		{ast.NewString("héllo ☃"), `"héllo ☃"`},

		// The U+2028/U+2029 separators are escaped; other non-ASCII
		// content is not.
		{ast.NewString("a\u2028b\u2029c"), `"a\u2028b\u2029c"`},

		// Bytes that are not valid UTF-8 pass through as written.
		{ast.NewString("raw\xffbyte"), "\"raw\xffbyte\""},
	}
	for _, test := range tests {
		if got := test.value.JSON(); got != test.want {
			t.Errorf("JSON of %v: got %#q, want %#q", test.value, got, test.want)
		}
	}
}

func TestToValue(t *testing.T) {
	in := map[string]any{
		"b": "2",
		"a": map[string]any{
			"y": "why",
			"x": "ex",
		},
	}
	v := ast.ToValue(in)
	o, ok := v.(*ast.Object)
	if !ok {
		t.Fatalf("ToValue: got %T, want *ast.Object", v)
	}
	if diff := cmp.Diff(in, o.Map()); diff != "" {
		t.Errorf("Round trip: (-want, +got)\n%s", diff)
	}

	// Map input has no insertion order; members come out sorted by key.
	if got, want := o.JSON(), `{"a":{"x":"ex","y":"why"},"b":"2"}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}

	t.Run("Invalid", func(t *testing.T) {
		mtest.MustPanic(t, func() { ast.ToValue(25) })
		mtest.MustPanic(t, func() { ast.ToValue(nil) })
		mtest.MustPanic(t, func() { ast.ToValue([]string{"no", "arrays"}) })
		mtest.MustPanic(t, func() { ast.ToValue(map[string]any{"k": true}) })
	})
}

func TestPath(t *testing.T) {
	v := ast.ToValue(map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": "deep"},
		},
		"top": "level",
	})

	tests := []struct {
		name string
		keys []string
		want string // value JSON, "" for error
	}{
		{"NilPath", nil, `{"a":{"b":{"c":"deep"}},"top":"level"}`},
		{"Top", []string{"top"}, `"level"`},
		{"Deep", []string{"a", "b", "c"}, `"deep"`},
		{"Mid", []string{"a", "b"}, `{"c":"deep"}`},
		{"Missing", []string{"a", "nonesuch"}, ""},
		{"ThroughString", []string{"top", "deeper"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ast.Path(v, tc.keys...)
			if tc.want == "" {
				if err == nil {
					t.Fatalf("Path %q: got %v, want error", tc.keys, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Path %q: unexpected error: %v", tc.keys, err)
			}
			if js := got.JSON(); js != tc.want {
				t.Errorf("Path %q: got %#q, want %#q", tc.keys, js, tc.want)
			}
		})
	}
}
