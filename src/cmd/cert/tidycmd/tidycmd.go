package tidycmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"certview/src/internal/app"
	"certview/src/internal/visibility"
)

const maxParallel = 4

// Result reports what tidying one file did.
type Result struct {
	Path   string
	Hidden []string
}

// New returns the tidy command, which collapses empty summary and abstract
// sections of certificate pages.
func New() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "tidy <file.html>...",
		Short: "Hide empty summary/abstract sections and size cards in certificate pages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := app.Logger(cmd)
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
			}
			results, err := TidyFiles(args, outDir)
			if err != nil {
				return err
			}
			for _, r := range results {
				logger.Debug("tidied", "path", r.Path, "hidden", r.Hidden)
				hidden := "none"
				if len(r.Hidden) > 0 {
					hidden = strings.Join(r.Hidden, ", ")
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (hidden: %s)\n", r.Path, hidden); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write tidied files here instead of in place")
	return cmd
}

// TidyFiles tidies every file concurrently. Results keep the order of paths.
// Output goes to outDir/<base name>, or back to the input when outDir is "".
func TidyFiles(paths []string, outDir string) ([]Result, error) {
	results := make([]Result, len(paths))
	var g errgroup.Group
	g.SetLimit(maxParallel)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			dst := p
			if outDir != "" {
				dst = filepath.Join(outDir, filepath.Base(p))
			}
			hidden, err := tidyFile(p, dst)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			results[i] = Result{Path: dst, Hidden: hidden}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func tidyFile(src, dst string) ([]string, error) {
	in, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	hidden, err := visibility.TidyHTML(in, &buf)
	_ = in.Close()
	if err != nil {
		return nil, err
	}
	return hidden, os.WriteFile(dst, buf.Bytes(), 0o644)
}
