package regex

import "strings"

// Flags is the parsed form of a flag string such as "gim".
type Flags struct {
	Global     bool // g: report every match
	IgnoreCase bool // i
	Multiline  bool // m: ^ and $ match at line boundaries
	DotAll     bool // s: . matches newlines
	Unicode    bool // u (or v)
	Sticky     bool // y: matches must start exactly at the scan cursor
	Indices    bool // d: accepted, has no effect on results

	// Unknown holds flag characters that were not recognized. They are
	// ignored for matching.
	Unknown string

	raw string
}

// ParseFlags parses a flag string. Duplicate flags are tolerated and
// unrecognized characters are collected in Unknown.
func ParseFlags(s string) Flags {
	f := Flags{raw: s}
	var unknown strings.Builder
	for _, r := range s {
		switch r {
		case 'g':
			f.Global = true
		case 'i':
			f.IgnoreCase = true
		case 'm':
			f.Multiline = true
		case 's':
			f.DotAll = true
		case 'u', 'v':
			f.Unicode = true
		case 'y':
			f.Sticky = true
		case 'd':
			f.Indices = true
		default:
			if !strings.ContainsRune(unknown.String(), r) {
				unknown.WriteRune(r)
			}
		}
	}
	f.Unknown = unknown.String()
	return f
}

// String returns the flag string the flags were parsed from, or a canonical
// one for flags built in code.
func (f Flags) String() string {
	if f.raw != "" {
		return f.raw
	}
	var b strings.Builder
	for _, flag := range []struct {
		set bool
		c   byte
	}{
		{f.Indices, 'd'},
		{f.Global, 'g'},
		{f.IgnoreCase, 'i'},
		{f.Multiline, 'm'},
		{f.DotAll, 's'},
		{f.Unicode, 'u'},
		{f.Sticky, 'y'},
	} {
		if flag.set {
			b.WriteByte(flag.c)
		}
	}
	return b.String()
}

// Key returns a canonical form of the flags that affect compilation. Two flag
// strings with the same Key compile to equivalent patterns.
func (f Flags) Key() string {
	var b strings.Builder
	if f.IgnoreCase {
		b.WriteByte('i')
	}
	if f.Multiline {
		b.WriteByte('m')
	}
	if f.DotAll {
		b.WriteByte('s')
	}
	if f.Unicode {
		b.WriteByte('u')
	}
	return b.String()
}
