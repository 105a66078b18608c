package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rexy/internal/config"
	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/regex"
)

func TestMain(m *testing.M) {
	log.InitWriter(io.Discard)
	os.Exit(m.Run())
}

// resetFlags restores every flag to its default so state from one Execute
// does not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs rexy with a private home directory and config file.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("REXY_DEBUG", "")

	configPath := filepath.Join(home, "config.yaml")
	yaml := "regex:\n  default_flags: g\nlibrary:\n  db_path: " + filepath.Join(home, "library.db") + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0o600))

	return executeWithConfig(t, configPath, stdin, args...)
}

func executeWithConfig(t *testing.T, configPath, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	cfg = config.Config{}
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMatch_JSON(t *testing.T) {
	out, err := execute(t, "12-34 56-78", "match", `(\d+)-(\d+)`, "--output", "json")
	require.NoError(t, err)

	var report matchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, "g", report.Flags, "default flags come from the config")
	require.Len(t, report.Matches, 2)
	require.Nil(t, report.Error)

	second := report.Matches[1]
	require.Equal(t, "56-78", second.Text)
	require.Len(t, second.Groups, 2)
	require.Equal(t, 6, second.Groups[0].Start)
	require.Equal(t, 8, second.Groups[0].End)
	require.Equal(t, 9, second.Groups[1].Start)
	require.Equal(t, 11, second.Groups[1].End)
}

func TestMatch_ExplicitFlagsOverrideDefault(t *testing.T) {
	out, err := execute(t, "12-34 56-78", "match", `\d+`, "--flags", "", "--output", "json")
	require.NoError(t, err)

	var report matchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Matches, 1)
}

func TestMatch_Table(t *testing.T) {
	out, err := execute(t, "2024-01", "match", `(?<year>\d{4})-(\d{2})`, "--output", "table")
	require.NoError(t, err)

	require.Contains(t, out, "[0,7)")
	require.Contains(t, out, "$1 year")
	require.Contains(t, out, "$2")
	require.Contains(t, out, "2024")
}

func TestMatch_YAML(t *testing.T) {
	out, err := execute(t, "a1 b22", "match", `\d+`, "--output", "yaml")
	require.NoError(t, err)

	require.Contains(t, out, "flags: g")
	require.Contains(t, out, "matches:")
	require.Contains(t, out, "text: \"22\"")
}

func TestMatch_InvalidPattern(t *testing.T) {
	out, err := execute(t, "ab", "match", "a(b", "--output", "json")
	require.Error(t, err)
	require.True(t, regex.IsInvalidSyntax(err))

	var report matchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Empty(t, report.Matches)
	require.NotNil(t, report.Error)
}

func TestMatch_InvalidOutput(t *testing.T) {
	_, err := execute(t, "x", "match", "x", "--output", "xml")
	require.ErrorContains(t, err, "invalid --output")
}

func TestMatch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subject.txt")
	require.NoError(t, os.WriteFile(path, []byte("one two three"), 0o600))

	out, err := execute(t, "", "match", `\w+`, "--file", path, "--output", "json")
	require.NoError(t, err)

	var report matchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Matches, 3)
}

func TestTokens_JSON(t *testing.T) {
	out, err := execute(t, "", "tokens", `(a)+`, "--output", "json")
	require.NoError(t, err)

	var tokens []struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tokens))

	var text strings.Builder
	for _, tok := range tokens {
		text.WriteString(tok.Text)
	}
	require.Equal(t, "(a)+", text.String(), "tokens cover the whole pattern")
}

func TestTokens_Table(t *testing.T) {
	out, err := execute(t, "", "tokens", `\d`)
	require.NoError(t, err)
	require.Contains(t, out, "Kind")
	require.Contains(t, out, "[0,2)")
}

func TestReplace(t *testing.T) {
	out, err := execute(t, "2024-01 2025-12", "replace", `(\d{4})-(\d{2})`, "$2/$1")
	require.NoError(t, err)
	require.Equal(t, "01/2024 12/2025", out)
}

func TestReplace_Diff(t *testing.T) {
	out, err := execute(t, "red fish", "replace", "red", "blue", "--diff")
	require.NoError(t, err)
	require.Contains(t, out, "blue")
	require.Contains(t, out, "fish")
}

func TestReplace_InvalidPattern(t *testing.T) {
	_, err := execute(t, "x", "replace", "(", "y")
	require.True(t, regex.IsInvalidSyntax(err))
}

func TestCodegen(t *testing.T) {
	out, err := execute(t, "", "codegen", `(?<user>\w+)@(?<host>\w+)`, "--package", "scan", "--func", "FindEmails")
	require.NoError(t, err)

	require.Contains(t, out, "package scan")
	require.Contains(t, out, "github.com/dlclark/regexp2")
	require.Contains(t, out, "func FindEmails(")
	require.NotContains(t, out, "func main()")
}

func TestCodegen_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match_gen.go")
	_, err := execute(t, "", "codegen", `\d+`, "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "package main")
}

func TestLibrary_RoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	configPath := filepath.Join(home, "config.yaml")
	yaml := "library:\n  db_path: " + filepath.Join(home, "library.db") + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0o600))

	out, err := executeWithConfig(t, configPath, "", "library", "save", "iso-date",
		"--pattern", `(\d{4})-(\d{2})`, "--description", "year and month")
	require.NoError(t, err)
	require.Contains(t, out, "Saved iso-date")

	_, err = executeWithConfig(t, configPath, "", "library", "save", "iso-date", "--pattern", "x")
	require.Error(t, err, "saving over a name needs --force")

	out, err = executeWithConfig(t, configPath, "", "library", "list")
	require.NoError(t, err)
	require.Contains(t, out, "iso-date")

	out, err = executeWithConfig(t, configPath, "", "library", "show", "iso-date", "--output", "json")
	require.NoError(t, err)
	var view entryView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Equal(t, `(\d{4})-(\d{2})`, view.Pattern)
	require.Equal(t, "g", view.Flags)
	require.Equal(t, "year and month", view.Description)

	out, err = executeWithConfig(t, configPath, "", "library", "delete", "iso-date")
	require.NoError(t, err)
	require.Contains(t, out, "Deleted iso-date")

	_, err = executeWithConfig(t, configPath, "", "library", "show", "iso-date")
	require.Error(t, err)
}

func TestLibrary_SaveRejectsInvalidPattern(t *testing.T) {
	_, err := execute(t, "", "library", "save", "broken", "--pattern", "a(b")
	require.True(t, regex.IsInvalidSyntax(err))
}

func TestThemes_List(t *testing.T) {
	out, err := execute(t, "", "themes")
	require.NoError(t, err)
	require.Contains(t, out, "dracula")
	require.Contains(t, out, "> ")
}

func TestThemes_Select(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	configPath := filepath.Join(home, "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(configPath))

	_, err := executeWithConfig(t, configPath, "", "themes", "nord")
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "preset: nord")

	_, err = executeWithConfig(t, configPath, "", "themes", "nope")
	require.ErrorContains(t, err, "unknown theme preset")
}

func TestReadSubject_Stdin(t *testing.T) {
	got, err := readSubject("-", strings.NewReader("from stdin"))
	require.NoError(t, err)
	require.Equal(t, "from stdin", got)

	_, err = readSubject(filepath.Join(t.TempDir(), "missing"), nil)
	require.ErrorContains(t, err, "reading subject")
}
