package main

import (
	"fmt"

	"github.com/drakos74/regression/lm"
	"github.com/drakos74/regression/summary"
	"github.com/spf13/cobra"
)

func newAvpCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avp <file.csv|file.json>",
		Short: "Added variable analysis of one or all columns",
		Long: `Avp computes the coefficient, standard error, variance inflation factor
and squared partial correlations of each column after removing the
linear influence of the remaining columns.

Examples:
  regression avp data.csv --intercept
  regression avp data.csv --intercept --column 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAvp(cmd, opts, args[0])
		},
	}
	dataFlags(cmd, opts)
	cmd.Flags().IntVar(&opts.column, "column", -1, "Column of the design to analyse, intercept included (default: all)")
	return cmd
}

func runAvp(cmd *cobra.Command, opts *options, file string) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	data, err := readData(file, opts)
	if err != nil {
		return err
	}
	model, err := newModel(cmd, cfg, opts, data)
	if err != nil {
		return err
	}

	var avs []*lm.AddedVariable[float64]
	if opts.column >= 0 {
		av, err := model.Analyze(opts.column)
		if err != nil {
			return fmt.Errorf("could not analyse column %d of '%s': %w", opts.column, file, err)
		}
		avs = append(avs, av)
	} else {
		avs, err = model.AnalyzeAll()
		if err != nil {
			return fmt.Errorf("could not analyse '%s': %w", file, err)
		}
	}

	report := summary.NewReport(model.Data(), nil, avs)
	report.Tolerance = model.Tolerance()
	if err := save(opts, file, model.Data(), &report); err != nil {
		return err
	}
	if opts.json {
		return printJSON(cmd.OutOrStdout(), report)
	}
	return summary.AddedVariables(cmd.OutOrStdout(), avs, model.Data().Labels())
}
