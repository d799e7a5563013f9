package main

import (
	"fmt"

	"github.com/drakos74/regression/dataset"
	"github.com/drakos74/regression/linalg"
	"github.com/drakos74/regression/lm"
	"github.com/drakos74/regression/summary"
	"github.com/spf13/cobra"
)

func newDemoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Fit and analyse a small example with and without intercept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.load(); err != nil {
				return err
			}
			return runDemo(cmd)
		},
	}
}

func demoData() (*linalg.Matrix[float64], linalg.Vector[float64]) {
	x := linalg.NewMatrix(8, 2, []float64{
		10, 15,
		9, 14,
		9, 13,
		11, 15,
		11, 14,
		10, 14,
		10, 16,
		12, 13,
	})
	y := linalg.Vector[float64]{82, 79, 74, 83, 80, 81, 84, 81}
	return x, y
}

func runDemo(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	x, y := demoData()

	without, err := dataset.New(x, y)
	if err != nil {
		return err
	}
	with, err := dataset.WithIntercept(x, y)
	if err != nil {
		return err
	}

	for _, data := range []*dataset.Data[float64]{without, with} {
		fmt.Fprintf(out, "\n# intercept: %v\n\n", data.HasIntercept())
		model, err := lm.New(data)
		if err != nil {
			return err
		}
		est, err := model.Fit()
		if err != nil {
			return err
		}
		if err := summary.Estimate(out, est, data.Labels()); err != nil {
			return err
		}
		avs, err := model.AnalyzeAll()
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		if err := summary.AddedVariables(out, avs, data.Labels()); err != nil {
			return err
		}
	}
	return nil
}
