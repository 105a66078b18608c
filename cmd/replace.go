package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/tester"
)

var (
	replaceFlags string
	replaceFile  string
	replaceDiff  bool
)

var replaceCmd = &cobra.Command{
	Use:   "replace PATTERN REPLACEMENT",
	Short: "Substitute the matches of a pattern",
	Long: `Replace the matches of PATTERN in a test string with REPLACEMENT and print
the result. Without the g flag only the first match is replaced.

The replacement understands $$, $&, $` + "`" + `, $', $1..$99 and $<name>.

Examples:
  echo "2024-01" | rexy replace '(\d{4})-(\d{2})' '$2/$1'
  rexy replace -f gi 'colou?r' 'hue' --file essay.txt --diff`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := readSubject(replaceFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		ev, shutdown, err := newEvaluator()
		if err != nil {
			return err
		}
		defer shutdown()

		replacement := args[1]
		snap := ev.Evaluate(context.Background(), tester.Input{
			Pattern:     args[0],
			Flags:       resolveFlags(cmd, "flags", replaceFlags),
			Subject:     subject,
			Replacement: &replacement,
		})
		if pe := snap.PatternError(); pe != nil {
			return pe
		}

		out := cmd.OutOrStdout()
		if replaceDiff {
			forceColor()
			_, err = fmt.Fprintln(out, highlight.RenderDiffANSI(highlight.DiffWords(subject, snap.Replaced)))
			return err
		}
		_, err = fmt.Fprint(out, snap.Replaced)
		return err
	},
}

func init() {
	rootCmd.AddCommand(replaceCmd)

	replaceCmd.Flags().StringVarP(&replaceFlags, "flags", "f", "", "pattern flags (default: regex.default_flags)")
	replaceCmd.Flags().StringVar(&replaceFile, "file", "-", "file to rewrite, - for stdin")
	replaceCmd.Flags().BoolVar(&replaceDiff, "diff", false, "show a word diff instead of the result")
}
