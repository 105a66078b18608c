package backdrop

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// tabWidth matches the tab expansion lipgloss applies when the backdrop
// viewport renders its content.
const tabWidth = 4

// Surface is the editable layer of the subject editor: a text buffer, a
// caret and a vertical scroll offset. Its text is never drawn; only the
// caret is composited on top of the backdrop.
//
// The caret is addressed by line and rune column; Caret converts it to the
// rune offset used by match records.
type Surface struct {
	lines   [][]rune
	row     int
	col     int
	yOffset int
	width   int
	height  int
}

// NewSurface returns an empty surface.
func NewSurface() Surface {
	return Surface{lines: [][]rune{nil}, width: 1, height: 1}
}

// Value returns the buffer text.
func (s Surface) Value() string {
	parts := make([]string, len(s.lines))
	for i, l := range s.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// SetValue replaces the buffer, keeping the caret and scroll offset in range.
func (s *Surface) SetValue(v string) {
	v = strings.ReplaceAll(v, "\r\n", "\n")
	split := strings.Split(v, "\n")
	s.lines = make([][]rune, len(split))
	for i, l := range split {
		s.lines[i] = []rune(l)
	}
	s.row = min(s.row, len(s.lines)-1)
	s.col = min(s.col, len(s.lines[s.row]))
	s.SetYOffset(s.yOffset)
}

// SetSize sets the visible area.
func (s *Surface) SetSize(width, height int) {
	s.width = max(width, 1)
	s.height = max(height, 1)
	s.SetYOffset(s.yOffset)
}

// LineCount returns the number of lines in the buffer.
func (s Surface) LineCount() int {
	return len(s.lines)
}

// YOffset returns the index of the first visible line.
func (s Surface) YOffset() int {
	return s.yOffset
}

// SetYOffset scrolls to n, clamped so the last line stays at the bottom.
func (s *Surface) SetYOffset(n int) {
	s.yOffset = max(0, min(n, s.maxYOffset()))
}

// ScrollBy scrolls by delta lines without moving the caret.
func (s *Surface) ScrollBy(delta int) {
	s.SetYOffset(s.yOffset + delta)
}

func (s Surface) maxYOffset() int {
	return max(0, len(s.lines)-s.height)
}

// Caret returns the caret as a rune offset into Value.
func (s Surface) Caret() int {
	offset := 0
	for i := 0; i < s.row; i++ {
		offset += len(s.lines[i]) + 1
	}
	return offset + s.col
}

// CaretPos returns the caret line and rune column.
func (s Surface) CaretPos() (row, col int) {
	return s.row, s.col
}

// SetCaret moves the caret to rune offset pos, clamped to the buffer, and
// scrolls it into view.
func (s *Surface) SetCaret(pos int) {
	pos = max(pos, 0)
	for i, l := range s.lines {
		if pos <= len(l) || i == len(s.lines)-1 {
			s.row, s.col = i, min(pos, len(l))
			break
		}
		pos -= len(l) + 1
	}
	s.scrollToCaret()
}

// CaretCell returns the caret's screen cell relative to the surface origin.
func (s Surface) CaretCell() (x, y int) {
	return columnWidth(s.lines[s.row][:s.col]), s.row - s.yOffset
}

// MoveTo places the caret at screen cell (x, y) relative to the surface
// origin, snapping to the nearest grapheme boundary.
func (s *Surface) MoveTo(x, y int) {
	s.row = max(0, min(y+s.yOffset, len(s.lines)-1))
	s.col = columnAt(s.lines[s.row], x)
	s.scrollToCaret()
}

// Update handles editing and caret keys.
func (s Surface) Update(msg tea.Msg) (Surface, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	line := s.lines[s.row]
	switch km.Type {
	case tea.KeyLeft:
		if s.col > 0 {
			s.col = prevBoundary(line, s.col)
		} else if s.row > 0 {
			s.row--
			s.col = len(s.lines[s.row])
		}
	case tea.KeyRight:
		if s.col < len(line) {
			s.col = nextBoundary(line, s.col)
		} else if s.row < len(s.lines)-1 {
			s.row++
			s.col = 0
		}
	case tea.KeyUp:
		if s.row > 0 {
			s.moveVertical(-1)
		}
	case tea.KeyDown:
		if s.row < len(s.lines)-1 {
			s.moveVertical(1)
		}
	case tea.KeyHome, tea.KeyCtrlA:
		s.col = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		s.col = len(line)
	case tea.KeyCtrlHome:
		s.row, s.col = 0, 0
	case tea.KeyCtrlEnd:
		s.row = len(s.lines) - 1
		s.col = len(s.lines[s.row])
	case tea.KeyEnter:
		s.insert("\n")
	case tea.KeyTab:
		s.insert("\t")
	case tea.KeySpace:
		s.insert(" ")
	case tea.KeyRunes:
		s.insert(string(km.Runes))
	case tea.KeyBackspace:
		s.backspace()
	case tea.KeyDelete:
		s.deleteForward()
	default:
		return s, nil
	}
	s.scrollToCaret()
	return s, nil
}

func (s *Surface) moveVertical(delta int) {
	x := columnWidth(s.lines[s.row][:s.col])
	s.row += delta
	s.col = columnAt(s.lines[s.row], x)
}

func (s *Surface) insert(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	line := s.lines[s.row]
	head := append([]rune(nil), line[:s.col]...)
	tail := append([]rune(nil), line[s.col:]...)

	parts := strings.Split(text, "\n")
	newLines := make([][]rune, len(parts))
	for i, p := range parts {
		newLines[i] = []rune(p)
	}
	last := len(newLines) - 1
	newLines[0] = append(head, newLines[0]...)
	caretCol := len(newLines[last])
	newLines[last] = append(newLines[last], tail...)

	lines := make([][]rune, 0, len(s.lines)+last)
	lines = append(lines, s.lines[:s.row]...)
	lines = append(lines, newLines...)
	lines = append(lines, s.lines[s.row+1:]...)
	s.lines = lines
	s.row += last
	s.col = caretCol
}

func (s *Surface) backspace() {
	if s.col > 0 {
		line := s.lines[s.row]
		from := prevBoundary(line, s.col)
		s.lines[s.row] = append(line[:from:from], line[s.col:]...)
		s.col = from
		return
	}
	if s.row == 0 {
		return
	}
	prev := s.lines[s.row-1]
	s.col = len(prev)
	s.lines[s.row-1] = append(prev[:len(prev):len(prev)], s.lines[s.row]...)
	s.lines = append(s.lines[:s.row], s.lines[s.row+1:]...)
	s.row--
}

func (s *Surface) deleteForward() {
	line := s.lines[s.row]
	if s.col < len(line) {
		to := nextBoundary(line, s.col)
		s.lines[s.row] = append(line[:s.col:s.col], line[to:]...)
		return
	}
	if s.row == len(s.lines)-1 {
		return
	}
	s.lines[s.row] = append(line[:len(line):len(line)], s.lines[s.row+1]...)
	s.lines = append(s.lines[:s.row+1], s.lines[s.row+2:]...)
}

func (s *Surface) scrollToCaret() {
	if s.row < s.yOffset {
		s.yOffset = s.row
	} else if s.row >= s.yOffset+s.height {
		s.yOffset = s.row - s.height + 1
	}
	s.SetYOffset(s.yOffset)
}

// caretWidth returns the display width of the grapheme under the caret, at
// least one cell.
func (s Surface) caretWidth() int {
	line := s.lines[s.row]
	if s.col >= len(line) {
		return 1
	}
	return max(columnWidth(line[s.col:nextBoundary(line, s.col)]), 1)
}

// graphemeStarts returns the rune offsets where each grapheme cluster of
// line begins, plus len(line).
func graphemeStarts(line []rune) []int {
	starts := make([]int, 0, len(line)+1)
	g := uniseg.NewGraphemes(string(line))
	pos := 0
	for g.Next() {
		starts = append(starts, pos)
		pos += len(g.Runes())
	}
	return append(starts, pos)
}

func prevBoundary(line []rune, col int) int {
	starts := graphemeStarts(line)
	for i := len(starts) - 1; i >= 0; i-- {
		if starts[i] < col {
			return starts[i]
		}
	}
	return 0
}

func nextBoundary(line []rune, col int) int {
	for _, st := range graphemeStarts(line) {
		if st > col {
			return st
		}
	}
	return len(line)
}

// columnWidth returns the display width of runes, expanding tabs.
func columnWidth(runes []rune) int {
	w := 0
	for _, r := range runes {
		if r == '\t' {
			w += tabWidth
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

// columnAt returns the grapheme boundary in line closest to display column x
// without passing it.
func columnAt(line []rune, x int) int {
	starts := graphemeStarts(line)
	best := 0
	for _, st := range starts {
		if columnWidth(line[:st]) > x {
			break
		}
		best = st
	}
	return best
}
