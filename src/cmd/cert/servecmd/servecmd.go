package servecmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"certview/src/internal/app"
	"certview/src/internal/log"
	"certview/src/internal/pages"
	"certview/src/internal/server"
)

// New returns the serve command: the certificate page over HTTP.
func New() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve <dir>",
		Short: "Serve a certificate directory with citation and page JSON endpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Load(cmd)
			if err != nil {
				return err
			}
			defer env.Close()
			if !cmd.Flags().Changed("addr") {
				addr = env.Config.Addr
			}

			dir := args[0]
			set, err := pages.Resolve(dir, env.Config.Pages)
			if err != nil {
				return err
			}
			logger := log.NewJSON(cmd.ErrOrStderr(), env.Config.Verbose)
			srv := server.New(server.Config{
				Dir:      dir,
				Pages:    set,
				Resource: env.Config.Metadata,
				Service:  env.Service,
				Logger:   logger,
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}
