package regex

import (
	"strconv"
	"strings"
)

// Replace substitutes replacement for the matches of source in subject.
// With the g flag every match is replaced, otherwise only the first.
func (r *Resolver) Replace(source string, flags Flags, subject, replacement string) (string, error) {
	compiled, err := r.Compile(source, flags)
	if err != nil {
		return "", err
	}
	matches, err := r.ResolveCompiled(compiled, flags, subject)
	if err != nil {
		return "", err
	}
	return ApplyReplacement(subject, matches, compiled.Groups(), replacement), nil
}

// ApplyReplacement rebuilds subject with each match replaced by the expanded
// template. The template understands $$, $&, $`, $', $n, $nn and $<name>.
func ApplyReplacement(subject string, matches []MatchRecord, groups []GroupInfo, template string) string {
	runes := []rune(subject)
	var out strings.Builder
	prev := 0
	for _, m := range matches {
		out.WriteString(string(runes[prev:m.Start]))
		out.WriteString(expand(template, runes, m, groups))
		prev = m.End
	}
	out.WriteString(string(runes[prev:]))
	return out.String()
}

func expand(template string, subject []rune, m MatchRecord, groups []GroupInfo) string {
	byNumber := m.Captures
	if byNumber == nil {
		// Records built outside the resolver only carry placed groups.
		byNumber = make(map[int]string, len(m.Groups))
		for _, g := range m.Groups {
			byNumber[g.Number] = g.Text
		}
	}
	byName := make(map[string]string)
	declared := make(map[int]bool, len(groups))
	hasNames := false
	for _, g := range groups {
		declared[g.Number] = true
		if g.Name != "" {
			byName[g.Name] = byNumber[g.Number]
			hasNames = true
		}
	}

	var out strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '$' || i+1 >= len(template) {
			out.WriteByte(c)
			continue
		}
		next := template[i+1]
		switch {
		case next == '$':
			out.WriteByte('$')
			i++
		case next == '&':
			out.WriteString(m.Text)
			i++
		case next == '`':
			out.WriteString(string(subject[:m.Start]))
			i++
		case next == '\'':
			out.WriteString(string(subject[m.End:]))
			i++
		case next >= '0' && next <= '9':
			n, width := groupReference(template[i+1:], declared)
			if width == 0 {
				out.WriteByte('$')
				continue
			}
			out.WriteString(byNumber[n])
			i += width
		case next == '<' && hasNames:
			end := strings.IndexByte(template[i+2:], '>')
			if end < 0 {
				out.WriteByte('$')
				continue
			}
			out.WriteString(byName[template[i+2:i+2+end]])
			i += end + 2
		default:
			out.WriteByte('$')
		}
	}
	return out.String()
}

// groupReference reads a one or two digit group number from s, preferring
// the two digit form when that group exists. A width of zero means s does
// not start with a valid reference.
func groupReference(s string, declared map[int]bool) (int, int) {
	if len(s) >= 2 && s[1] >= '0' && s[1] <= '9' {
		if n, _ := strconv.Atoi(s[:2]); n > 0 && declared[n] {
			return n, 2
		}
	}
	if n := int(s[0] - '0'); n > 0 && declared[n] {
		return n, 1
	}
	return 0, 0
}
