package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/drakos74/regression/infra/config"
	"github.com/drakos74/regression/internal/metrics"
	"github.com/drakos74/regression/internal/server"
	"github.com/drakos74/regression/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve fits and analyses over http",
		Long: `Serve starts the http service:
  GET  /data      liveness
  POST /api/fit   fit the posted dataset
  POST /api/avp   added variable analysis of the posted dataset
  GET  /api/report?id=&label=   archived report
  GET  /api/dataset?id=&label=  archived dataset
  GET  /metrics   prometheus metrics

Without --config the service reads infra/config/regression.yaml if present.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.serveConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if opts.debug {
				cfg.Server.Debug = true
			}

			shard, err := cfg.Storage.Shard()
			if err != nil {
				return err
			}
			archive, err := storage.NewArchive(shard)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return server.NewRegression(cfg, archive, metrics.Observer).Server().Run(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config)")
	return cmd
}

const serviceConfig = "regression"

// serveConfig falls back to the default service config file when no --config is given.
func (o *options) serveConfig() (config.Config, error) {
	cfg, err := o.load()
	if err != nil {
		return cfg, err
	}
	if o.config == "" && config.Exists(serviceConfig) {
		config.MustLoad(serviceConfig, &cfg)
	}
	return cfg, nil
}
