package main

import (
	"fmt"
	"os"

	"github.com/drakos74/regression/infra/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// options are the flags shared by all commands.
type options struct {
	config string
	debug  bool

	target    string
	noHeader  bool
	intercept bool
	tolerance float64
	scale     string
	save      string
	json      bool
	column    int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "regression",
		Short: "Ordinary least squares regression and added variable analysis",
		Long: `regression fits linear models by ordinary least squares and reports
the coefficients with their standard errors, t tests, R-squared and F test.
The added variable analysis isolates the effect of each column
after removing the linear influence of all the others.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.config, "config", "", "Path to a json or yaml configuration file")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newFitCmd(opts),
		newAvpCmd(opts),
		newDemoCmd(opts),
		newServeCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// load reads the configuration and applies the debug settings.
func (o *options) load() (config.Config, error) {
	cfg, err := config.LoadConfig(o.config)
	if err != nil {
		return cfg, err
	}
	if cfg.Debug || o.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return cfg, nil
}
