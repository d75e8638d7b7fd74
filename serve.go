package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/df07/go-weekend-raytracer/internal/config"
	"github.com/df07/go-weekend-raytracer/web/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Get(a.v)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.NewServer(settings.Port, a.logger).Start(ctx)
		},
	}

	cmd.Flags().Int("port", 8080, "port to listen on")
	bindFlags(a.v, cmd.Flags(), map[string]string{"port": "port"})
	return cmd
}
