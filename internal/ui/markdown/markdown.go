// Package markdown renders the cheat sheet and other help text with glamour.
package markdown

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

type rendererKey struct {
	width int
	style string
}

var (
	mu        sync.Mutex
	renderers = map[rendererKey]*glamour.TermRenderer{}
)

// Render renders source wrapped to width using a glamour standard style
// ("dark", "light" or "notty", empty means dark). Document margins are
// removed so the output sits flush inside an overlay. Renderers are kept
// per width and style since the help overlay redraws on every frame.
func Render(source string, width int, style string) (string, error) {
	r, err := renderer(width, style)
	if err != nil {
		return "", err
	}
	mu.Lock()
	defer mu.Unlock()
	return r.Render(source)
}

func renderer(width int, style string) (*glamour.TermRenderer, error) {
	if style == "" {
		style = glamourstyles.DarkStyle
	}
	key := rendererKey{width: width, style: style}

	mu.Lock()
	defer mu.Unlock()
	if r, ok := renderers[key]; ok {
		return r, nil
	}

	base, ok := glamourstyles.DefaultStyles[style]
	if !ok {
		return nil, fmt.Errorf("unknown markdown style %q", style)
	}
	cfg := *base
	var flush uint
	cfg.Document.Margin = &flush
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(cfg),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[key] = r
	return r, nil
}
