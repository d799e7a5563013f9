package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/drakos74/regression/dataset"
	"github.com/drakos74/regression/infra/config"
	"github.com/drakos74/regression/internal/metrics"
	"github.com/drakos74/regression/internal/storage"
	"github.com/drakos74/regression/lm"
	"github.com/drakos74/regression/summary"
	"github.com/rs/zerolog/log"
)

// Regression serves fits and added variable analyses over http.
type Regression struct {
	config  config.Config
	archive *storage.Archive
	metrics *metrics.Metrics
}

func NewRegression(cfg config.Config, archive *storage.Archive, m *metrics.Metrics) *Regression {
	return &Regression{
		config:  cfg,
		archive: archive,
		metrics: m,
	}
}

// Server creates the server exposing the regression routes and the metrics.
func (reg *Regression) Server() *Server {
	s := NewServer(reg.config.Server.Name, reg.config.Server.Port).
		WithMaxBody(reg.config.Server.MaxBody).
		Add(reg.Routes()...).
		Handle("/metrics", reg.metrics.Handler())
	if reg.config.Server.Debug {
		s.Debug()
	}
	return s
}

func (reg *Regression) Routes() []Route {
	return []Route{
		Live(),
		{Action: Api, Path: "fit", Method: POST, Exec: reg.Fit},
		{Action: Api, Path: "avp", Method: POST, Exec: reg.Analyze},
		{Action: Api, Path: "report", Method: GET, Exec: reg.Report},
		{Action: Api, Path: "dataset", Method: GET, Exec: reg.Dataset},
	}
}

// Fit regresses the posted dataset and responds with its report.
func (reg *Regression) Fit(r *http.Request) ([]byte, int, error) {
	req, model, err := reg.model(r)
	if err != nil {
		return nil, status(err), err
	}

	start := time.Now()
	est, err := model.Fit()
	reg.metrics.Observe(metrics.Fit, start, err)
	if err != nil {
		return nil, status(err), err
	}

	report := summary.NewReport(model.Data(), est, nil)
	return reg.respond(req, model, report)
}

// Analyze computes the added variable effect of one or all columns of the posted dataset.
func (reg *Regression) Analyze(r *http.Request) ([]byte, int, error) {
	req, model, err := reg.model(r)
	if err != nil {
		return nil, status(err), err
	}

	start := time.Now()
	var avs []*lm.AddedVariable[float64]
	if req.Column != nil {
		var av *lm.AddedVariable[float64]
		av, err = model.Analyze(*req.Column)
		avs = []*lm.AddedVariable[float64]{av}
	} else {
		avs, err = model.AnalyzeAll()
	}
	reg.metrics.Observe(metrics.Analyze, start, err)
	if err != nil {
		return nil, status(err), err
	}

	report := summary.NewReport(model.Data(), nil, avs)
	return reg.respond(req, model, report)
}

// Report responds with the archived report of the given id and label.
func (reg *Regression) Report(r *http.Request) ([]byte, int, error) {
	k, err := key(r)
	if err != nil {
		return nil, status(err), err
	}
	report, err := reg.archive.Report(k)
	if err != nil {
		return nil, status(err), err
	}
	return encode(report)
}

// Dataset responds with the archived dataset of the given id and label.
func (reg *Regression) Dataset(r *http.Request) ([]byte, int, error) {
	k, err := key(r)
	if err != nil {
		return nil, status(err), err
	}
	frame, err := reg.archive.Dataset(k)
	if err != nil {
		return nil, status(err), err
	}
	return encode(frame)
}

func key(r *http.Request) (storage.Key, error) {
	query := r.URL.Query()
	id := query.Get("id")
	if id == "" {
		return storage.Key{}, fmt.Errorf("missing id: %w", BadRequestErr)
	}
	return storage.Key{ID: id, Label: query.Get("label")}, nil
}

func (reg *Regression) model(r *http.Request) (Request, *lm.Model[float64], error) {
	var req Request
	if err := JsonRead(r, reg.config.Server.Debug, &req); err != nil {
		return req, nil, err
	}
	data, err := req.Data()
	if err != nil {
		return req, nil, err
	}
	opts, err := reg.config.Options()
	if err != nil {
		return req, nil, err
	}
	if req.Tolerance > 0 {
		opts = append(opts, lm.WithTolerance(req.Tolerance))
	}
	model, err := lm.New(data, opts...)
	if err != nil {
		return req, nil, err
	}
	n, _ := data.Dims()
	reg.metrics.Rows(n)
	return req, model, nil
}

func (reg *Regression) respond(req Request, model *lm.Model[float64], report summary.Report) ([]byte, int, error) {
	report.Tolerance = model.Tolerance()
	if req.Store {
		k, err := reg.archive.Save(req.Label, dataset.NewFrame(model.Data()), report)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		report.ID = k.ID
		log.Info().Str("id", k.ID).Str("label", req.Label).Msg("stored regression")
	}
	return encode(report)
}

func encode(v interface{}) ([]byte, int, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("could not encode response: %w", err)
	}
	return b, http.StatusOK, nil
}

// status maps the errors caused by the request to 4xx codes.
func status(err error) int {
	switch {
	case errors.Is(err, PayloadTooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, storage.NotFoundErr):
		return http.StatusNotFound
	case errors.Is(err, BadRequestErr),
		errors.Is(err, lm.InvalidDimensionErr),
		errors.Is(err, lm.InvalidValueErr),
		errors.Is(err, lm.SingularMatrixErr),
		errors.Is(err, lm.InvalidDegreesOfFreedomErr),
		errors.Is(err, lm.RankDeficientColumnErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
