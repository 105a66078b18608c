// Package config provides configuration types and defaults for rexy.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/regex"
	"github.com/zjrosen/rexy/internal/tracing"
	"github.com/zjrosen/rexy/internal/ui/styles"
)

// Config holds all configuration options for rexy.
type Config struct {
	Regex     RegexConfig     `mapstructure:"regex"`
	Highlight HighlightConfig `mapstructure:"highlight"`
	UI        UIConfig        `mapstructure:"ui"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Library   LibraryConfig   `mapstructure:"library"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Tracing   tracing.Config  `mapstructure:"tracing"`
}

// RegexConfig controls how patterns are compiled and executed.
type RegexConfig struct {
	// Dialect selects the pattern syntax: "ecmascript" (default), "dotnet" or "re2".
	Dialect string `mapstructure:"dialect"`

	// DefaultFlags are applied when no flags are given, e.g. "g".
	DefaultFlags string `mapstructure:"default_flags"`

	// Timeout bounds one evaluation, including every engine call.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Engine builds the pattern engine described by the config.
func (r RegexConfig) Engine() (*regex.Regexp2Engine, error) {
	dialect, err := regex.ParseDialect(r.Dialect)
	if err != nil {
		return nil, fmt.Errorf("regex.%w", err)
	}
	return regex.NewRegexp2Engine(dialect, r.timeout()), nil
}

// Budget returns the evaluation budget, defaulting when unset.
func (r RegexConfig) Budget() time.Duration {
	return r.timeout()
}

func (r RegexConfig) timeout() time.Duration {
	if r.Timeout <= 0 {
		return regex.DefaultBudget
	}
	return r.Timeout
}

// HighlightConfig holds match coloring options.
type HighlightConfig struct {
	// Palette lists hex colors for capture groups. Entry 0 colors whole
	// matches outside any group; group n uses entry n % len(palette).
	// Empty uses the theme's match.slot.* colors.
	Palette []string `mapstructure:"palette"`
}

// BuildPalette parses the configured palette.
func (h HighlightConfig) BuildPalette() (highlight.Palette, error) {
	return highlight.ParsePalette(h.Palette)
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	// Debounce delays re-evaluation while typing.
	Debounce       time.Duration `mapstructure:"debounce"`
	ShowMatchTable bool          `mapstructure:"show_match_table"`
	ShowStatusBar  bool          `mapstructure:"show_status_bar"`
	MarkdownStyle  string        `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     match:
	//       text: "#FFFFFF"
	// Or quoted dot notation:
	//   colors:
	//     "match.slot.1": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// Styles converts the theme to the form the styles package applies.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Colors: t.FlattenedColors()}
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// LibraryConfig locates the saved-pattern database.
type LibraryConfig struct {
	// DBPath is the SQLite file. Default: ~/.config/rexy/library.db
	DBPath string `mapstructure:"db_path"`
}

// WatchConfig controls subject file watching.
type WatchConfig struct {
	// Debounce coalesces bursts of file writes into one reload.
	Debounce time.Duration `mapstructure:"debounce"`
}

// DefaultConfigDir returns ~/.config/rexy, or "" if the home directory is
// unavailable.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rexy")
}

// DefaultLibraryPath returns the default saved-pattern database path.
func DefaultLibraryPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "library.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	traces := tracing.DefaultConfig()
	traces.FilePath = DefaultTracesFilePath()

	return Config{
		Regex: RegexConfig{
			Dialect:      string(regex.DialectECMAScript),
			DefaultFlags: "g",
			Timeout:      regex.DefaultBudget,
		},
		UI: UIConfig{
			Debounce:       75 * time.Millisecond,
			ShowMatchTable: true,
			ShowStatusBar:  true,
			MarkdownStyle:  "dark",
		},
		Library: LibraryConfig{
			DBPath: DefaultLibraryPath(),
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
		Tracing: traces,
	}
}

// Validate checks every section and returns the first problem found.
func (c Config) Validate() error {
	if err := ValidateRegex(c.Regex); err != nil {
		return err
	}
	if err := ValidateHighlight(c.Highlight); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := ValidateWatch(c.Watch); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateRegex checks the regex section.
func ValidateRegex(r RegexConfig) error {
	if _, err := regex.ParseDialect(r.Dialect); err != nil {
		return fmt.Errorf("regex.%w", err)
	}
	if r.Timeout < 0 {
		return fmt.Errorf("regex.timeout must not be negative, got %s", r.Timeout)
	}
	if unknown := regex.ParseFlags(r.DefaultFlags).Unknown; unknown != "" {
		return fmt.Errorf("regex.default_flags has unknown flags %q", unknown)
	}
	return nil
}

// ValidateHighlight checks the highlight section.
func ValidateHighlight(h HighlightConfig) error {
	if _, err := h.BuildPalette(); err != nil {
		return fmt.Errorf("highlight.%w", err)
	}
	return nil
}

// ValidateUI checks the ui section.
func ValidateUI(ui UIConfig) error {
	if ui.Debounce < 0 {
		return fmt.Errorf("ui.debounce must not be negative, got %s", ui.Debounce)
	}
	switch ui.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
	return nil
}

// ValidateTheme checks the preset name and every color override.
func ValidateTheme(t ThemeConfig) error {
	if t.Preset != "" {
		if _, ok := styles.Presets[t.Preset]; !ok && t.Preset != "default" {
			return fmt.Errorf("theme.preset %q is not one of %v", t.Preset, styles.PresetNames())
		}
	}
	valid := make(map[styles.ColorToken]bool)
	for _, token := range styles.AllTokens() {
		valid[token] = true
	}
	for key, value := range t.FlattenedColors() {
		if !valid[styles.ColorToken(key)] {
			return fmt.Errorf("theme.colors: unknown color token %q", key)
		}
		if !styles.IsValidHexColor(value) {
			return fmt.Errorf("theme.colors.%s: invalid hex color %q", key, value)
		}
	}
	return nil
}

// ValidateWatch checks the watch section.
func ValidateWatch(w WatchConfig) error {
	if w.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", w.Debounce)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" {
		switch t.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
		}
	}

	if t.Enabled {
		if t.Exporter == "file" && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# rexy configuration

# Pattern compilation and execution
regex:
  dialect: ecmascript   # ecmascript (default), dotnet, or re2
  default_flags: g      # flags used when none are given: g i m s u y d v
  timeout: 250ms        # evaluation budget; slower patterns are reported as too expensive

# Capture group colors. Entry 0 colors match text outside any group,
# group n uses entry n % len(palette). Leave empty to use the theme.
highlight:
  # palette:
  #   - "#FFD866"
  #   - "#78DCE8"
  #   - "#A9DC76"

# UI settings
ui:
  debounce: 75ms          # delay before re-evaluating while typing
  show_match_table: true  # list matches and groups under the subject
  show_status_bar: true
  # markdown_style: dark  # cheat sheet style: "dark" (default) or "light"

# Theme configuration
theme:
  # Use a preset (run 'rexy themes' to see available presets):
  # preset: catppuccin-mocha
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   match.slot.1: "#FF5555"
  #   regex.group: "#BD93F9"

# Saved pattern library
library:
  # db_path: ~/.config/rexy/library.db

# Subject file watching (rexy --file PATH --watch)
watch:
  debounce: 100ms

# Tracing of evaluation cycles
# tracing:
#   enabled: false                # default: false
#   exporter: file                # none, file, stdout, otlp
#   file_path: ~/.config/rexy/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
