package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rexy/internal/library"
	"github.com/zjrosen/rexy/internal/regex"
	"github.com/zjrosen/rexy/internal/ui/styles"
)

var (
	libSavePattern     string
	libSaveFlags       string
	libSaveSubjectFile string
	libSaveReplacement string
	libSaveDescription string
	libSaveForce       bool

	libListQuery  string
	libListLimit  int
	libListOutput string

	libShowOutput string
)

var libraryCmd = &cobra.Command{
	Use:     "library",
	Aliases: []string{"lib"},
	Short:   "Manage saved patterns",
	Long: `Save, list, show and delete patterns in the pattern library.

The library is a SQLite database at library.db_path
(default: ~/.config/rexy/library.db).`,
}

var librarySaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save a pattern",
	Long: `Save a pattern under NAME. Saving over an existing name fails unless
--force is given.

Examples:
  rexy library save iso-date --pattern '(?<year>\d{4})-(?<month>\d{2})' --flags g
  rexy library save email --pattern '\S+@\S+' --subject-file samples.txt --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if libSavePattern == "" {
			return fmt.Errorf("--pattern is required")
		}
		req := library.SaveRequest{
			Name:        args[0],
			Pattern:     libSavePattern,
			Flags:       resolveFlags(cmd, "flags", libSaveFlags),
			Description: libSaveDescription,
			Overwrite:   libSaveForce,
		}
		if libSaveSubjectFile != "" {
			subject, err := readSubject(libSaveSubjectFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			req.Subject = subject
		}
		if cmd.Flags().Changed("replacement") {
			req.Replacement = &libSaveReplacement
		}

		// Refuse patterns that would not compile.
		engine, err := cfg.Regex.Engine()
		if err != nil {
			return err
		}
		if _, err := engine.Compile(req.Pattern, regex.ParseFlags(req.Flags)); err != nil {
			return err
		}

		svc, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		entry, err := svc.Save(context.Background(), req)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", entry.Name(), entry.GUID())
		return err
	},
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved patterns",
	Long: `List saved patterns ordered by name.

Examples:
  rexy library list
  rexy library list --query date --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := validateOutput(libListOutput, outputTable, outputJSON, outputYAML); err != nil {
			return err
		}
		svc, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		entries, err := svc.List(context.Background(), library.ListFilter{Query: libListQuery, Limit: libListLimit})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch libListOutput {
		case outputJSON:
			return writeJSON(out, toEntryViews(entries))
		case outputYAML:
			return writeYAML(out, toEntryViews(entries))
		}

		if len(entries) == 0 {
			_, err = fmt.Fprintln(out, "No saved patterns")
			return err
		}
		t := newTable("Name", "Pattern", "Flags", "Updated")
		for _, e := range entries {
			t.Row(e.Name(), styles.TruncateString(e.Pattern(), 48), e.Flags(), e.UpdatedAt().Local().Format(time.DateTime))
		}
		_, err = fmt.Fprintln(out, t.Render())
		return err
	},
}

var libraryShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a saved pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateOutput(libShowOutput, outputTable, outputJSON, outputYAML); err != nil {
			return err
		}
		svc, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		entry, err := svc.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		view := newEntryView(entry)

		out := cmd.OutOrStdout()
		switch libShowOutput {
		case outputJSON:
			return writeJSON(out, view)
		case outputYAML:
			return writeYAML(out, view)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Name:        %s\n", view.Name)
		fmt.Fprintf(&b, "GUID:        %s\n", view.GUID)
		fmt.Fprintf(&b, "Pattern:     %s\n", view.Pattern)
		fmt.Fprintf(&b, "Flags:       %s\n", view.Flags)
		if view.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", view.Description)
		}
		if view.Replacement != nil {
			fmt.Fprintf(&b, "Replacement: %s\n", *view.Replacement)
		}
		fmt.Fprintf(&b, "Updated:     %s\n", view.UpdatedAt.Local().Format(time.DateTime))
		if view.Subject != "" {
			fmt.Fprintf(&b, "Subject:\n%s\n", view.Subject)
		}
		_, err = fmt.Fprint(out, b.String())
		return err
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:     "delete NAME",
	Aliases: []string{"rm"},
	Short:   "Delete a saved pattern",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		if err := svc.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return err
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(librarySaveCmd, libraryListCmd, libraryShowCmd, libraryDeleteCmd)

	librarySaveCmd.Flags().StringVarP(&libSavePattern, "pattern", "p", "", "pattern to save (required)")
	librarySaveCmd.Flags().StringVarP(&libSaveFlags, "flags", "f", "", "pattern flags (default: regex.default_flags)")
	librarySaveCmd.Flags().StringVar(&libSaveSubjectFile, "subject-file", "", "file with a sample test string, - for stdin")
	librarySaveCmd.Flags().StringVar(&libSaveReplacement, "replacement", "", "replacement template")
	librarySaveCmd.Flags().StringVar(&libSaveDescription, "description", "", "short description")
	librarySaveCmd.Flags().BoolVar(&libSaveForce, "force", false, "overwrite an existing pattern with the same name")

	libraryListCmd.Flags().StringVarP(&libListQuery, "query", "q", "", "only names or descriptions containing this text")
	libraryListCmd.Flags().IntVarP(&libListLimit, "limit", "n", 0, "maximum number of entries (0 = all)")
	libraryListCmd.Flags().StringVarP(&libListOutput, "output", "o", outputTable, "output format: table, json or yaml")

	libraryShowCmd.Flags().StringVarP(&libShowOutput, "output", "o", outputTable, "output format: table, json or yaml")
}

// entryView is the json and yaml form of a library entry.
type entryView struct {
	GUID        string    `json:"guid" yaml:"guid"`
	Name        string    `json:"name" yaml:"name"`
	Pattern     string    `json:"pattern" yaml:"pattern"`
	Flags       string    `json:"flags" yaml:"flags"`
	Subject     string    `json:"subject,omitempty" yaml:"subject,omitempty"`
	Replacement *string   `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

func newEntryView(e *library.Entry) entryView {
	return entryView{
		GUID:        e.GUID(),
		Name:        e.Name(),
		Pattern:     e.Pattern(),
		Flags:       e.Flags(),
		Subject:     e.Subject(),
		Replacement: e.Replacement(),
		Description: e.Description(),
		CreatedAt:   e.CreatedAt(),
		UpdatedAt:   e.UpdatedAt(),
	}
}

func toEntryViews(entries []*library.Entry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, newEntryView(e))
	}
	return views
}
