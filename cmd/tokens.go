package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/regex"
	"github.com/zjrosen/rexy/internal/ui/styles"
)

var tokensOutput string

var tokensCmd = &cobra.Command{
	Use:   "tokens PATTERN",
	Short: "Show how a pattern is tokenized for highlighting",
	Long: `Split PATTERN into the tokens used for syntax highlighting. Tokenizing
never fails: unrecognized text is reported as literal tokens.

Examples:
  rexy tokens '(\d+)-(?<name>\w+)'
  rexy tokens '[a-z]{2,}?' --output json | jq '.[].kind'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateOutput(tokensOutput, outputTable, outputJSON); err != nil {
			return err
		}
		tokens := regex.Tokenize(args[0])
		out := cmd.OutOrStdout()

		if tokensOutput == outputJSON {
			return writeJSON(out, orEmpty(tokens))
		}

		if isTerminal(out) {
			if _, err := fmt.Fprintln(out, highlight.RenderPatternANSI(highlight.HighlightPattern(args[0]))); err != nil {
				return err
			}
		}
		t := newTable("Kind", "Range", "Text")
		for _, tok := range tokens {
			t.Row(tok.Kind.String(), styles.FormatRange(tok.Start, tok.End), styles.VisibleText(tok.Text))
		}
		_, err := fmt.Fprintln(out, t.Render())
		return err
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensOutput, "output", "o", outputTable, "output format: table or json")
}
