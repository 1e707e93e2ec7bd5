package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/moviesearch/internal/version"
)

const (
	cmdStart  = "start"
	cmdInitDB = "init_db"
)

// actions are the command implementations, swappable in tests.
type actions struct {
	start  func(ctx context.Context) error
	initDB func(ctx context.Context, out io.Writer) error
}

func newRootCmd(a actions) *cobra.Command {
	return &cobra.Command{
		Use:   "moviesearch {start|init_db}",
		Short: "Movie search web application",
		Long: "moviesearch serves a movie search form backed by TF-IDF and embedding retrieval.\n\n" +
			"  start    serve HTTP on the configured address (default 0.0.0.0:8000)\n" +
			"  init_db  create the movies, users and comments tables if absent",
		Version:   version.String(),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{cmdStart, cmdInitDB},
		RunE: func(cmd *cobra.Command, args []string) error {
			// arguments are valid past this point; runtime errors should not print usage
			cmd.SilenceUsage = true
			switch args[0] {
			case cmdStart:
				return a.start(cmd.Context())
			default:
				return a.initDB(cmd.Context(), cmd.OutOrStdout())
			}
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(actions{start: runStart, initDB: runInitDB}).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
