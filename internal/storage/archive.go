package storage

import (
	"fmt"

	"github.com/drakos74/regression/dataset"
	"github.com/drakos74/regression/summary"
	"github.com/rs/zerolog/log"
)

// Archive keeps the datasets and the reports computed from them under a shared id.
type Archive struct {
	datasets Persistence
	reports  Persistence
}

// NewArchive creates an archive with one shard for datasets and one for reports.
func NewArchive(shard Shard) (*Archive, error) {
	datasets, err := shard(DatasetDir)
	if err != nil {
		return nil, fmt.Errorf("could not create dataset storage: %w", err)
	}
	reports, err := shard(ReportDir)
	if err != nil {
		return nil, fmt.Errorf("could not create report storage: %w", err)
	}
	return &Archive{
		datasets: datasets,
		reports:  reports,
	}, nil
}

// Save stores the frame and its report. The report id is set to the id of the returned key.
func (a *Archive) Save(label string, frame dataset.Frame, report summary.Report) (Key, error) {
	k := NewKey(DatasetDir, label)
	if report.ID != "" {
		k.ID = report.ID
	}
	report.ID = k.ID
	if err := a.datasets.Store(k, frame); err != nil {
		return k, fmt.Errorf("could not store dataset '%s': %w", k.Path(), err)
	}
	rk := reportKey(k)
	if err := a.reports.Store(rk, report); err != nil {
		return k, fmt.Errorf("could not store report '%s': %w", rk.Path(), err)
	}
	log.Debug().
		Str("id", k.ID).
		Str("label", label).
		Int("rows", report.Rows).
		Msg("archived regression")
	return k, nil
}

// Dataset loads the frame stored under the given key.
func (a *Archive) Dataset(k Key) (dataset.Frame, error) {
	var frame dataset.Frame
	k.Kind = DatasetDir
	if err := a.datasets.Load(k, &frame); err != nil {
		return frame, fmt.Errorf("could not load dataset '%s': %w", k.Path(), err)
	}
	return frame, nil
}

// Report loads the report stored under the given key.
func (a *Archive) Report(k Key) (summary.Report, error) {
	var report summary.Report
	rk := reportKey(k)
	if err := a.reports.Load(rk, &report); err != nil {
		return report, fmt.Errorf("could not load report '%s': %w", rk.Path(), err)
	}
	return report, nil
}

func reportKey(k Key) Key {
	k.Kind = ReportDir
	return k
}
