// Package cli implements the resumectl command line.
package cli

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const app = "resumectl"

// Actual version can be specified in build command.
var version = "unknown"

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           app,
		Short:         "resumectl parses resumes into structured records and scores them against job skills",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output on stderr")

	logger := func() *slog.Logger {
		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	root.AddCommand(newParseCmd(logger), newMatchCmd(logger), newVersionCmd())
	return root
}

// Execute executes the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s version: %s\n", app, version)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
