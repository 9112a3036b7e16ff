package cachecmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"certview/src/internal/app"
)

// New returns the cache command with its path and purge subcommands.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or purge the resolved-record cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache database path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Load(cmd)
			if err != nil {
				return err
			}
			defer env.Close()
			if env.Cache == nil {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "cache disabled")
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), env.Cache.Path())
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete expired records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Load(cmd)
			if err != nil {
				return err
			}
			defer env.Close()
			if env.Cache == nil {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "cache disabled")
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			n, err := env.Cache.Purge(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired records\n", n)
			return err
		},
	})
	return cmd
}
