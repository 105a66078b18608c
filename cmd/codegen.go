package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rexy/internal/codegen"
	"github.com/zjrosen/rexy/internal/regex"
)

var (
	codegenFlags   string
	codegenPackage string
	codegenFunc    string
	codegenOut     string
)

var codegenCmd = &cobra.Command{
	Use:   "codegen PATTERN",
	Short: "Generate Go code for a pattern",
	Long: `Generate a Go file that compiles PATTERN with github.com/dlclark/regexp2
and exposes a match function returning every match with its groups.

In package main a runnable main function that reads stdin is added.

Examples:
  rexy codegen '(?<user>\w+)@(?<host>[\w.]+)' > main.go
  rexy codegen -f gi 'error: (.*)' --package logscan --func FindErrors -o errors_gen.go`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dialect, err := regex.ParseDialect(cfg.Regex.Dialect)
		if err != nil {
			return fmt.Errorf("regex.%w", err)
		}
		src, err := codegen.New(codegen.Config{
			Pattern: args[0],
			Flags:   regex.ParseFlags(resolveFlags(cmd, "flags", codegenFlags)),
			Dialect: dialect,
			Package: codegenPackage,
			Func:    codegenFunc,
		}).Generate()
		if err != nil {
			return err
		}

		if codegenOut == "" || codegenOut == "-" {
			_, err = cmd.OutOrStdout().Write(src)
			return err
		}
		if err := os.WriteFile(codegenOut, src, 0o644); err != nil { //nolint:gosec // G306: generated source is not secret
			return fmt.Errorf("writing %s: %w", codegenOut, err)
		}
		_, err = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", codegenOut)
		return err
	},
}

func init() {
	rootCmd.AddCommand(codegenCmd)

	codegenCmd.Flags().StringVarP(&codegenFlags, "flags", "f", "", "pattern flags (default: regex.default_flags)")
	codegenCmd.Flags().StringVar(&codegenPackage, "package", "main", "package name of the generated file")
	codegenCmd.Flags().StringVar(&codegenFunc, "func", "Match", "name of the generated match function")
	codegenCmd.Flags().StringVarP(&codegenOut, "out", "o", "", "write to a file instead of stdout")
}
