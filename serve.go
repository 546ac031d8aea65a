package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"seraph.si/v2/bfhl-form/src/web"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the form in a browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := web.New(opts.client(), opts.logger, opts.cfg.SessionLimit)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Listen(opts.cfg.Listen)
			})
			g.Go(func() error {
				<-gctx.Done()
				opts.logger.Info("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			err := g.Wait()
			opts.logger.Info("Server closed", zap.Error(err))
			return err
		},
	}
}
