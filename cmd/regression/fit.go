package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/drakos74/regression/dataset"
	"github.com/drakos74/regression/infra/config"
	"github.com/drakos74/regression/internal/storage"
	jsonstore "github.com/drakos74/regression/internal/storage/file/json"
	"github.com/drakos74/regression/lm"
	"github.com/drakos74/regression/summary"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newFitCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit <file.csv|file.json>",
		Short: "Fit a linear model by ordinary least squares",
		Long: `Fit regresses the target column on all other columns of the file.

Examples:
  regression fit data.csv --target y --intercept
  regression fit data.json --json
  regression fit data.csv --save file-storage`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd, opts, args[0])
		},
	}
	dataFlags(cmd, opts)
	return cmd
}

func dataFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.target, "target", "", "Response column by csv header name or index (default: last column)")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "The csv file has no header line")
	cmd.Flags().BoolVar(&opts.intercept, "intercept", false, "Prepend a column of ones to the design")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", lm.DefaultTolerance, "Singular value cutoff for rank and pseudo-inverses")
	cmd.Flags().StringVar(&opts.scale, "scale", "", "Normalize the predictors: zscore or minmax")
	cmd.Flags().StringVar(&opts.save, "save", "", "Directory to archive the dataset and the report in")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the report as json")
}

func runFit(cmd *cobra.Command, opts *options, file string) error {
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

	est, err := model.Fit()
	if err != nil {
		return fmt.Errorf("could not fit '%s': %w", file, err)
	}

	report := summary.NewReport(model.Data(), est, nil)
	report.Tolerance = model.Tolerance()
	if err := save(opts, file, model.Data(), &report); err != nil {
		return err
	}
	if opts.json {
		return printJSON(cmd.OutOrStdout(), report)
	}
	return summary.Estimate(cmd.OutOrStdout(), est, model.Data().Labels())
}

func readData(file string, opts *options) (*dataset.Data[float64], error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("could not open data file: %w", err)
	}
	defer f.Close()

	var data *dataset.Data[float64]
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		data, err = dataset.ReadJSON(f, opts.intercept)
	default:
		data, err = dataset.ReadCSV(f, opts.target, !opts.noHeader, opts.intercept)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read '%s': %w", file, err)
	}

	switch strings.ToLower(opts.scale) {
	case "":
	case "zscore":
		data, err = data.Normalize(dataset.ZScore)
	case "minmax":
		data, err = data.Normalize(dataset.MinMax)
	default:
		err = fmt.Errorf("unknown scaling '%s'", opts.scale)
	}
	if err != nil {
		return nil, err
	}

	n, p := data.Dims()
	log.Debug().
		Str("file", file).
		Int("rows", n).
		Int("cols", p).
		Bool("intercept", data.HasIntercept()).
		Msg("loaded dataset")
	return data, nil
}

func newModel(cmd *cobra.Command, cfg config.Config, opts *options, data *dataset.Data[float64]) (*lm.Model[float64], error) {
	modelOpts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("tolerance") {
		modelOpts = append(modelOpts, lm.WithTolerance(opts.tolerance))
	}
	return lm.New(data, modelOpts...)
}

func save(opts *options, file string, data *dataset.Data[float64], report *summary.Report) error {
	if opts.save == "" {
		return nil
	}
	archive, err := storage.NewArchive(jsonstore.BlobShard(opts.save, "regression"))
	if err != nil {
		return err
	}
	label := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	k, err := archive.Save(label, dataset.NewFrame(data), *report)
	if err != nil {
		return err
	}
	report.ID = k.ID
	log.Info().Str("id", k.ID).Str("dir", opts.save).Msg("saved report")
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
