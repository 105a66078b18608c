package highlight

import (
	"sort"
	"sync"

	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/regex"
)

// Renderer builds MarkedText for subjects. The zero value is not usable;
// create one with NewRenderer.
type Renderer struct {
	mu      sync.RWMutex
	palette Palette
}

// NewRenderer creates a renderer that assigns slots from palette.
func NewRenderer(palette Palette) *Renderer {
	return &Renderer{palette: palette}
}

// Palette returns the renderer's palette.
func (r *Renderer) Palette() Palette {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.palette
}

// SetPalette replaces the palette. Spans rendered earlier keep their slots;
// render again to reassign them.
func (r *Renderer) SetPalette(p Palette) {
	r.mu.Lock()
	r.palette = p
	r.mu.Unlock()
}

// Render tiles subject with plain spans and one or more highlight spans per
// match. Concatenating the span texts always reproduces subject. An empty
// subject renders no spans; a subject with no matches renders one plain span.
func (r *Renderer) Render(subject string, matches []regex.MatchRecord) MarkedText {
	runes := []rune(subject)
	if len(runes) == 0 {
		return nil
	}

	palette := r.Palette()
	var out MarkedText
	pos := 0
	for _, m := range matches {
		if m.Start < pos || m.End > len(runes) || m.Start > m.End {
			log.Warn(log.CatRender, "skipping out of order match", "index", m.Index, "start", m.Start, "pos", pos)
			continue
		}
		if m.Start > pos {
			out = append(out, plain(runes, pos, m.Start))
		}
		out = append(out, renderMatch(palette, runes, m)...)
		pos = m.End
	}
	if pos < len(runes) {
		out = append(out, plain(runes, pos, len(runes)))
	}
	return out
}

// renderMatch partitions one match range. Groups are visited by start
// offset, ties by group number. Each group is clipped to the part of the
// match not yet emitted, so nested or overlapping groups never double-cover
// text; a group that is fully covered already contributes no span.
func renderMatch(palette Palette, runes []rune, m regex.MatchRecord) MarkedText {
	tooltip := Tooltip(m)
	span := func(start, end int, g *regex.GroupRecord) Span {
		s := Span{
			Kind:       HighlightSpan,
			Text:       string(runes[start:end]),
			Start:      start,
			End:        end,
			MatchIndex: m.Index,
			Slot:       FullMatchSlot,
			Tooltip:    tooltip,
		}
		if g != nil {
			s.Group = g.Number
			s.GroupName = g.Name
			s.Slot = palette.Slot(g.Number)
		}
		return s
	}

	if m.Empty() {
		return MarkedText{span(m.Start, m.End, nil)}
	}

	groups := make([]regex.GroupRecord, len(m.Groups))
	copy(groups, m.Groups)
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Start != groups[j].Start {
			return groups[i].Start < groups[j].Start
		}
		return groups[i].Number < groups[j].Number
	})

	var out MarkedText
	cursor := m.Start
	for i := range groups {
		g := &groups[i]
		start := max(g.Start, cursor)
		end := min(g.End, m.End)
		if end <= start {
			continue
		}
		if start > cursor {
			out = append(out, span(cursor, start, nil))
		}
		out = append(out, span(start, end, g))
		cursor = end
	}
	if cursor < m.End {
		out = append(out, span(cursor, m.End, nil))
	}
	return out
}
