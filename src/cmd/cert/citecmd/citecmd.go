package citecmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"certview/src/internal/app"
	"certview/src/internal/citation"
	"certview/src/internal/doi"
	"certview/src/internal/panel"
	"certview/src/internal/report"
	"certview/src/internal/stringsx"
)

// New returns the cite command, which runs the citation panel headlessly for
// one certificate page and prints the rendered citation.
func New() *cobra.Command {
	var (
		style    string
		all      bool
		markdown bool
		copyOut  bool
	)
	cmd := &cobra.Command{
		Use:   "cite <page>",
		Short: "Print the citation of a certificate page (URL or directory)",
		Long: "Reads the page metadata, resolves codecheck.report and prints the citation.\n" +
			"Styles: apa, vancouver, harvard1, bibtex, biblatex, ris.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Load(cmd)
			if err != nil {
				return err
			}
			defer env.Close()
			if !cmd.Flags().Changed("style") {
				style = env.Config.Style
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			rec := &panel.Recorder{}
			p := panel.New(env.Metadata(strings.TrimSpace(args[0])), env.Service,
				panel.WithDisplay(rec),
				panel.WithLogger(env.Logger))
			defer p.Close()

			if err := p.Load(ctx); err != nil {
				return fmt.Errorf("%s (%w)", rec.PreviewError, err)
			}
			if p.State() == panel.Hidden {
				_, err := fmt.Fprintln(cmd.ErrOrStderr(), "no codecheck.report identifier in the page metadata; nothing to cite")
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case markdown:
				err = report.WriteMarkdown(out, Document(p, env.Service))
			case all:
				err = WriteAll(out, report.Render(env.Service, p.Record()))
			default:
				if err := p.SelectStyle(style); err != nil {
					return fmt.Errorf("%s (%w)", rec.FormatError, err)
				}
				_, err = fmt.Fprintln(out, p.Rendered())
			}
			if err != nil {
				return err
			}

			if copyOut {
				if err := p.Copy(ctx); err != nil {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), rec.CopyPrompt)
					return nil
				}
				_, err = fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard.")
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&style, "style", "s", string(citation.DefaultStyle), "citation style")
	cmd.Flags().BoolVar(&all, "all", false, "print every style")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print every style as a Markdown document")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "copy the rendered citation to the clipboard")
	cmd.MarkFlagsMutuallyExclusive("all", "markdown")
	return cmd
}

// Document builds the Markdown export of a Ready panel.
func Document(p *panel.Controller, svc citation.Service) report.Document {
	doc := report.Document{
		Identifier: p.Identifier(),
		Entries:    report.Render(svc, p.Record()),
	}
	if r, ok := p.Record().(*doi.Record); ok {
		doc.Title = stringsx.FirstNonEmpty(r.Item().Title, r.Identifier())
		doc.Link = "https://doi.org/" + r.DOI()
	}
	return doc
}

// WriteAll prints each style under a heading line.
func WriteAll(w io.Writer, entries []report.Entry) error {
	for _, e := range entries {
		text := e.Text
		if e.Err != nil {
			text = fmt.Sprintf("(could not format: %v)", e.Err)
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n%s\n\n", e.Style.Label(), text); err != nil {
			return err
		}
	}
	return nil
}
