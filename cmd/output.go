package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/rexy/internal/ui/styles"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
	outputANSI  = "ansi"
)

func validateOutput(format string, allowed ...string) error {
	if !slices.Contains(allowed, format) {
		return fmt.Errorf("invalid --output %q (valid: %v)", format, allowed)
	}
	return nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// defaultOutput picks ansi for terminals and table otherwise.
func defaultOutput(w io.Writer) string {
	if isTerminal(w) {
		return outputANSI
	}
	return outputTable
}

// forceColor makes lipgloss emit color even when stdout is not a terminal,
// unless the environment disables it.
func forceColor() {
	profile := termenv.EnvColorProfile()
	if profile == termenv.Ascii && os.Getenv("NO_COLOR") == "" {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// newTable builds the plain bordered table used by the listing commands.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)).
		Headers(headers...)
}
