package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rexy/internal/regex"
	"github.com/zjrosen/rexy/internal/tester"
	"github.com/zjrosen/rexy/internal/ui/styles"
)

var (
	matchFlags  string
	matchFile   string
	matchOutput string
)

var matchCmd = &cobra.Command{
	Use:   "match PATTERN",
	Short: "Print the matches of a pattern",
	Long: `Evaluate PATTERN against a test string and print every match with its
capture groups.

The test string is read from --file, or from stdin when --file is omitted
or "-". Output defaults to highlighted text on a terminal and to a table
otherwise.

Examples:
  echo "2024-01 2025-12" | rexy match '(?<year>\d{4})-(\d{2})'
  rexy match -f gi 'error' --file app.log --output json
  rexy match '\w+' --file notes.txt --output yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVarP(&matchFlags, "flags", "f", "", "pattern flags (default: regex.default_flags)")
	matchCmd.Flags().StringVar(&matchFile, "file", "-", "file to match against, - for stdin")
	matchCmd.Flags().StringVarP(&matchOutput, "output", "o", "", "output format: table, json, yaml or ansi")
}

// matchReport is the json and yaml form of a match run.
type matchReport struct {
	Pattern string              `json:"pattern" yaml:"pattern"`
	Flags   string              `json:"flags" yaml:"flags"`
	Groups  []regex.GroupInfo   `json:"groups" yaml:"groups"`
	Matches []regex.MatchRecord `json:"matches" yaml:"matches"`
	Error   *regex.PatternError `json:"error,omitempty" yaml:"error,omitempty"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	format := matchOutput
	if format == "" {
		format = defaultOutput(out)
	}
	if err := validateOutput(format, outputTable, outputJSON, outputYAML, outputANSI); err != nil {
		return err
	}

	subject, err := readSubject(matchFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	ev, shutdown, err := newEvaluator()
	if err != nil {
		return err
	}
	defer shutdown()

	snap := ev.Evaluate(context.Background(), tester.Input{
		Pattern: args[0],
		Flags:   resolveFlags(cmd, "flags", matchFlags),
		Subject: subject,
	})

	switch format {
	case outputJSON, outputYAML:
		report := matchReport{
			Pattern: snap.Input.Pattern,
			Flags:   snap.Flags.String(),
			Groups:  orEmpty(snap.Groups),
			Matches: orEmpty(snap.Matches),
			Error:   snap.PatternError(),
		}
		if format == outputJSON {
			err = writeJSON(out, report)
		} else {
			err = writeYAML(out, report)
		}
		if err != nil {
			return err
		}
	case outputANSI:
		forceColor()
		if err := printANSI(out, ev.Renderer().RenderANSI(snap.Subject, nil), snap); err != nil {
			return err
		}
	default:
		if err := printMatchTable(out, snap); err != nil {
			return err
		}
	}

	if pe := snap.PatternError(); pe != nil {
		return pe
	}
	return nil
}

func printANSI(w io.Writer, rendered string, snap tester.Snapshot) error {
	if snap.Err != nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, rendered); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, styles.HintStyle.Render(styles.Pluralize(len(snap.Matches), "match", "matches")))
	return err
}

func printMatchTable(w io.Writer, snap tester.Snapshot) error {
	if snap.Err != nil {
		return nil
	}
	t := newTable("#", "Range", "Group", "Text")
	for _, m := range snap.Matches {
		t.Row(strconv.Itoa(m.Index+1), styles.FormatRange(m.Start, m.End), "$&", styles.VisibleText(m.Text))
		for _, g := range m.Groups {
			label := "$" + strconv.Itoa(g.Number)
			if g.Name != "" {
				label += " " + g.Name
			}
			t.Row("", styles.FormatRange(g.Start, g.End), label, styles.VisibleText(g.Text))
		}
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func orEmpty[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
