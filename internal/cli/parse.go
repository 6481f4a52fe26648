package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/resumatch/internal/extract"
	"github.com/dgallion1/resumatch/internal/parser"
	"github.com/dgallion1/resumatch/internal/resume"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxParallel bounds concurrent file parses.
const maxParallel = 4

type parseFlags struct {
	strategy  string
	pdftotext bool
}

// fileResult is one entry of the parse output, in argument order.
type fileResult struct {
	File   string         `json:"file"`
	Record *resume.Record `json:"record,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func newParseCmd(logger func() *slog.Logger) *cobra.Command {
	var flags parseFlags

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse resume files and print structured records as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			results := parseFiles(cmd.Context(), logger(), args, opts)
			if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			for _, r := range results {
				if r.Error != "" {
					return fmt.Errorf("one or more files failed to parse")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.strategy, "strategy", "s", string(extract.StrategyRegex), "profile strategy: regex or scored")
	cmd.Flags().BoolVar(&flags.pdftotext, "pdftotext", true, "fall back to the pdftotext binary for unreadable PDFs")
	return cmd
}

func (f parseFlags) options() (resume.Options, error) {
	strategy, err := extract.ParseStrategy(f.strategy)
	if err != nil {
		return resume.Options{}, err
	}
	return resume.Options{
		Strategy: strategy,
		Parser:   parser.Config{PDFFallbackPdftotext: f.pdftotext},
	}, nil
}

// parseFiles parses every path concurrently. Per-file failures are reported
// in the result rather than aborting the batch.
func parseFiles(ctx context.Context, log *slog.Logger, paths []string, opts resume.Options) []fileResult {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]fileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = fileResult{File: path}
			if err := gctx.Err(); err != nil {
				results[i].Error = err.Error()
				return nil
			}
			rec, err := parseFile(path, opts)
			if err != nil {
				log.Warn("parse failed", "file", path, "error", err)
				results[i].Error = err.Error()
				return nil
			}
			log.Debug("parsed", "file", path, "skills", len(rec.Skills), "sections", rec.Sections.Len())
			results[i].Record = rec
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func parseFile(path string, opts resume.Options) (*resume.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return resume.ParseFile(f, path, opts)
}
