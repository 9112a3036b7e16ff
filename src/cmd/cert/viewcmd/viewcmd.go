package viewcmd

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"certview/src/internal/app"
	"certview/src/internal/citation"
	"certview/src/internal/pages"
	"certview/src/internal/tui"
)

// runProgram is replaced in tests.
var runProgram = func(m tea.Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// New returns the view command: the certificate page in the terminal.
func New() *cobra.Command {
	var (
		style string
		width int
	)
	cmd := &cobra.Command{
		Use:   "view <dir>",
		Short: "Browse a certificate directory: page viewer and citation panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Load(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			dir := args[0]
			set, err := pages.Resolve(dir, env.Config.Pages)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("style") {
				style = env.Config.Style
			}
			parsed, ok := citation.ParseStyle(style)
			if !ok {
				return fmt.Errorf("unknown style %q", style)
			}
			if !cmd.Flags().Changed("width") {
				width = env.Config.Width
			}

			m, err := tui.New(tui.Config{
				Title:   filepath.Base(filepath.Clean(dir)),
				Pages:   set,
				Source:  env.Metadata(dir),
				Service: env.Service,
				Style:   parsed,
				Width:   width,
				Logger:  env.Logger,
			})
			if err != nil {
				return err
			}
			return runProgram(m,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
		},
	}
	cmd.Flags().StringVarP(&style, "style", "s", string(citation.DefaultStyle), "initial citation style")
	cmd.Flags().IntVar(&width, "width", 80, "wrap width before the terminal reports its size")
	return cmd
}
