// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape encodes raw string content as JSON string literals.
//
// It exists for the output side only: the input grammar treats backslash as
// ordinary content and performs no escape decoding, but content rendered
// back out as JSON must still escape quotes, backslashes, and control
// characters to be valid source text.
package escape

import "go4.org/mem"

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src as a JSON string literal, including the surrounding
// quotation marks. Content outside the ASCII range is copied through as
// written, except the U+2028 and U+2029 separators, which are escaped;
// bytes that are not valid UTF-8 pass through unmodified.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		if r < ' ' {
			if e := controlEsc[r]; e != 0 {
				buf = append(buf, '\\', e)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			}
			src = src.SliceFrom(n)
			continue
		}

		switch r {
		case '"', '\\':
			buf = append(buf, '\\', byte(r))
		case '\u2028': // line separator
			buf = append(buf, `\u2028`...)
		case '\u2029': // paragraph separator
			buf = append(buf, `\u2029`...)
		default:
			// Copying the input bytes preserves invalid UTF-8 exactly,
			// where re-encoding the rune would smuggle in U+FFFD.
			for i := 0; i < n; i++ {
				buf = append(buf, src.At(i))
			}
		}
		src = src.SliceFrom(n)
	}
	return append(buf, '"')
}
