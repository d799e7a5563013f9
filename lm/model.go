package lm

import (
	"fmt"
	"math"
	"runtime"

	"github.com/drakos74/regression/dataset"
	"github.com/drakos74/regression/number"
)

// DefaultTolerance is the singular value cutoff for rank determination and pseudo-inverses.
const DefaultTolerance = 1e-12

type config struct {
	tolerance float64
	intercept *dataset.Intercept
	workers   int
}

// Option configures a Model.
type Option func(c *config)

// WithTolerance sets the singular value cutoff.
// The same value is used for the rank of X and for every pseudo-inverse.
func WithTolerance(tolerance float64) Option {
	return func(c *config) {
		c.tolerance = tolerance
	}
}

// WithIntercept overrides the intercept policy of the dataset.
func WithIntercept(intercept dataset.Intercept) Option {
	return func(c *config) {
		c.intercept = &intercept
	}
}

// WithWorkers bounds the number of columns analysed concurrently by AnalyzeAll.
func WithWorkers(workers int) Option {
	return func(c *config) {
		c.workers = workers
	}
}

// Model regresses y on X for a given dataset.
// It keeps no state between calls, every result is computed from scratch.
type Model[T number.Number] struct {
	data      *dataset.Data[T]
	tolerance float64
	workers   int
}

// New creates a linear model for the given dataset.
func New[T number.Number](data *dataset.Data[T], opts ...Option) (*Model[T], error) {
	c := config{
		tolerance: DefaultTolerance,
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&c)
	}

	if data == nil || data.X == nil {
		return nil, fmt.Errorf("%w: missing dataset", InvalidDimensionErr)
	}
	n, p := data.Dims()
	if n == 0 || p == 0 {
		return nil, fmt.Errorf("%w: empty design matrix %dx%d", InvalidDimensionErr, n, p)
	}
	if len(data.Y) != n {
		return nil, fmt.Errorf("%w: design matrix has %d rows but response has %d values", InvalidDimensionErr, n, len(data.Y))
	}
	if err := data.X.CheckFinite(); err != nil {
		return nil, fmt.Errorf("invalid design matrix: %w", err)
	}
	if err := data.Y.CheckFinite(); err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	if n < p {
		return nil, fmt.Errorf("%w: %d observations for %d predictors", InvalidDimensionErr, n, p)
	}
	if math.IsNaN(c.tolerance) || c.tolerance < 0 {
		return nil, fmt.Errorf("invalid tolerance: %v", c.tolerance)
	}
	if c.workers < 1 {
		c.workers = 1
	}
	if c.intercept != nil {
		data = data.WithPolicy(*c.intercept)
	}

	return &Model[T]{
		data:      data,
		tolerance: c.tolerance,
		workers:   c.workers,
	}, nil
}

// Tolerance returns the singular value cutoff of the model.
func (m *Model[T]) Tolerance() float64 {
	return m.tolerance
}

// Data returns the dataset the model regresses on.
func (m *Model[T]) Data() *dataset.Data[T] {
	return m.data
}
