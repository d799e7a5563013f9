package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/drakos74/regression/linalg"
)

// Frame is the serialised form of a dataset.
type Frame struct {
	X         [][]float64 `json:"x" yaml:"x"`
	Y         []float64   `json:"y" yaml:"y"`
	Names     []string    `json:"names,omitempty" yaml:"names,omitempty"`
	Intercept bool        `json:"intercept" yaml:"intercept"`
}

// Data converts the frame into a dataset.
// When intercept is set a column of ones is prepended.
func (f Frame) Data() (*Data[float64], error) {
	d, err := FromRows(f.X, f.Y, f.Intercept)
	if err != nil {
		return nil, err
	}
	if len(f.Names) > 0 {
		d = d.WithNames(f.Names...)
	}
	return d, nil
}

// NewFrame converts a dataset into its serialised form.
// A prepended intercept column is dropped and recorded in the intercept flag instead.
func NewFrame(d *Data[float64]) Frame {
	n, p := d.Dims()
	start := 0
	if d.Intercept == InterceptPresent {
		start = 1
	}
	x := make([][]float64, n)
	for i := 0; i < n; i++ {
		x[i] = make([]float64, 0, p-start)
		for j := start; j < p; j++ {
			x[i] = append(x[i], d.X.At(i, j))
		}
	}
	names := make([]string, 0, p-start)
	for j := start; j < p; j++ {
		names = append(names, d.Name(j))
	}
	return Frame{
		X:         x,
		Y:         d.Y.Float64(),
		Names:     names,
		Intercept: start == 1,
	}
}

// ReadJSON decodes a Frame from r.
// intercept prepends a column of ones even if the frame does not ask for it.
func ReadJSON(r io.Reader, intercept bool) (*Data[float64], error) {
	var f Frame
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("could not decode dataset: %w", err)
	}
	f.Intercept = f.Intercept || intercept
	return f.Data()
}

// ReadCSV reads a dataset from comma separated values.
// target selects the response column, by header name or by index;
// an empty target selects the last column. All other columns become predictors.
func ReadCSV(r io.Reader, target string, header bool, intercept bool) (*Data[float64], error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty csv", linalg.InvalidDimensionErr)
	}

	width := len(records[0])
	if width < 2 {
		return nil, fmt.Errorf("%w: csv needs at least 2 columns, got %d", linalg.InvalidDimensionErr, width)
	}

	var names []string
	if header {
		names = records[0]
		records = records[1:]
	}

	t, err := targetIndex(target, names, width)
	if err != nil {
		return nil, err
	}

	x := make([][]float64, len(records))
	y := make([]float64, len(records))
	for i, record := range records {
		if len(record) != width {
			return nil, fmt.Errorf("%w: line %d has %d fields instead of %d", linalg.InvalidDimensionErr, i+1, len(record), width)
		}
		x[i] = make([]float64, 0, width-1)
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("could not parse line %d column %d: %w", i+1, j, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: line %d column %d is %v", linalg.InvalidValueErr, i+1, j, v)
			}
			if j == t {
				y[i] = v
				continue
			}
			x[i] = append(x[i], v)
		}
	}

	d, err := FromRows(x, y, intercept)
	if err != nil {
		return nil, err
	}
	if header {
		predictors := make([]string, 0, width-1)
		for j, name := range names {
			if j != t {
				predictors = append(predictors, name)
			}
		}
		d = d.WithNames(predictors...)
	}
	return d, nil
}

func targetIndex(target string, names []string, width int) (int, error) {
	if target == "" {
		return width - 1, nil
	}
	for i, name := range names {
		if name == target {
			return i, nil
		}
	}
	i, err := strconv.Atoi(target)
	if err != nil {
		return 0, fmt.Errorf("%w: unknown target column '%s'", linalg.InvalidDimensionErr, target)
	}
	if i < 0 || i >= width {
		return 0, fmt.Errorf("%w: target column %d out of %d", linalg.InvalidDimensionErr, i, width)
	}
	return i, nil
}
