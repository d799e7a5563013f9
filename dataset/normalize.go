package dataset

import (
	"fmt"

	"github.com/drakos74/regression/linalg"
	"github.com/drakos74/regression/number"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Scaling is a column normalization method.
type Scaling int

const (
	// ZScore subtracts the column mean and divides by the population standard deviation.
	ZScore Scaling = iota + 1
	// MinMax maps the column range onto [0,1].
	MinMax
)

func (s Scaling) String() string {
	switch s {
	case ZScore:
		return "z-score"
	case MinMax:
		return "min-max"
	}
	return fmt.Sprintf("scaling(%d)", int(s))
}

// Normalize returns a new dataset with every predictor column scaled.
// Constant columns, the intercept among them, are copied as they are
// since they cannot be scaled. The response is not scaled.
func (d *Data[T]) Normalize(method Scaling) (*Data[T], error) {
	if method != ZScore && method != MinMax {
		return nil, fmt.Errorf("unknown normalization method: %v", method)
	}
	c := d.Clone()
	// a prepended intercept remains recognisable after scaling
	if d.HasIntercept() {
		c.Intercept = InterceptPresent
	}
	n, p := c.X.Dims()
	for j := 0; j < p; j++ {
		col := c.X.Col(j).Float64()
		var shift, scale float64
		switch method {
		case ZScore:
			shift, scale = stat.PopMeanStdDev(col, nil)
		case MinMax:
			shift = floats.Min(col)
			scale = floats.Max(col) - shift
		}
		if scale == 0 {
			continue
		}
		for i := 0; i < n; i++ {
			c.X.Set(i, j, number.From[T]((col[i]-shift)/scale))
		}
	}
	return c, nil
}

// ColumnStats returns the mean and population standard deviation of every predictor column.
func ColumnStats[T number.Number](x *linalg.Matrix[T]) (means, stds []float64) {
	_, p := x.Dims()
	means = make([]float64, p)
	stds = make([]float64, p)
	for j := 0; j < p; j++ {
		means[j], stds[j] = stat.PopMeanStdDev(x.Col(j).Float64(), nil)
	}
	return means, stds
}
