package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/rpc"
)

var serveLogStderr bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve regex requests as JSON-RPC over stdio",
	Long: `Run a JSON-RPC 2.0 server on stdin/stdout using Content-Length framing,
the same transport an LSP server uses. Editors and other tools can use it to
tokenize patterns, resolve matches, render highlights and preview
replacements.

Methods: regex.tokenize, regex.resolve, regex.render, regex.replace.

Examples:
  rexy serve
  rexy serve --log-stderr`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if serveLogStderr {
			log.InitWriter(cmd.ErrOrStderr())
		} else {
			cleanup, err := initLogging("rexy-serve")
			if err != nil {
				return err
			}
			defer cleanup()
		}

		ev, shutdown, err := newEvaluator()
		if err != nil {
			return err
		}
		defer shutdown()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return rpc.NewServer(ev).Serve(ctx, stdio{in: cmd.InOrStdin(), out: cmd.OutOrStdout()})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveLogStderr, "log-stderr", false, "write logs to stderr")
}

// stdio joins the command's input and output into one stream.
type stdio struct {
	in  io.Reader
	out io.Writer
}

func (s stdio) Read(p []byte) (int, error)  { return s.in.Read(p) }
func (s stdio) Write(p []byte) (int, error) { return s.out.Write(p) }

func (s stdio) Close() error {
	if c, ok := s.in.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
