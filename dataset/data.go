package dataset

import (
	"fmt"
	"strings"

	"github.com/drakos74/regression/linalg"
	"github.com/drakos74/regression/number"
)

// InterceptName is the label used for a prepended intercept column.
const InterceptName = "(Intercept)"

// Intercept defines how the fitting engine decides whether the design has an intercept.
type Intercept int

const (
	// InterceptAuto infers the intercept from the first column being exactly all ones.
	InterceptAuto Intercept = iota
	// InterceptPresent declares the first column to be the intercept.
	InterceptPresent
	// InterceptAbsent declares there is no intercept, whatever the first column holds.
	InterceptAbsent
)

func (i Intercept) String() string {
	switch i {
	case InterceptPresent:
		return "present"
	case InterceptAbsent:
		return "absent"
	default:
		return "auto"
	}
}

// ParseIntercept parses the textual form of an intercept policy.
func ParseIntercept(s string) (Intercept, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return InterceptAuto, nil
	case "present", "yes", "true":
		return InterceptPresent, nil
	case "absent", "no", "false":
		return InterceptAbsent, nil
	}
	return InterceptAuto, fmt.Errorf("unknown intercept policy '%s'", s)
}

// Data holds the design matrix X (n x p) and the response y (n).
// It does not compute anything and is treated as read-only by the engines.
type Data[T number.Number] struct {
	X         *linalg.Matrix[T]
	Y         linalg.Vector[T]
	Names     []string
	Intercept Intercept
}

// New creates a dataset referencing the given matrix and vector without copying them.
// The intercept is inferred from the first column.
func New[T number.Number](x *linalg.Matrix[T], y linalg.Vector[T]) (*Data[T], error) {
	if x == nil {
		return nil, fmt.Errorf("%w: missing design matrix", linalg.InvalidDimensionErr)
	}
	n, p := x.Dims()
	if n == 0 || p == 0 {
		return nil, fmt.Errorf("%w: empty design matrix %dx%d", linalg.InvalidDimensionErr, n, p)
	}
	if len(y) != n {
		return nil, fmt.Errorf("%w: design matrix has %d rows but response has %d values", linalg.InvalidDimensionErr, n, len(y))
	}
	if err := x.CheckFinite(); err != nil {
		return nil, fmt.Errorf("invalid design matrix: %w", err)
	}
	if err := y.CheckFinite(); err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	return &Data[T]{
		X:         x,
		Y:         y,
		Intercept: InterceptAuto,
	}, nil
}

// WithIntercept creates a dataset with a column of ones prepended to x.
// The caller's matrix is left untouched.
func WithIntercept[T number.Number](x *linalg.Matrix[T], y linalg.Vector[T]) (*Data[T], error) {
	if x == nil {
		return nil, fmt.Errorf("%w: missing design matrix", linalg.InvalidDimensionErr)
	}
	d, err := New(x.InsertCol(0, 1), y)
	if err != nil {
		return nil, err
	}
	d.Intercept = InterceptPresent
	return d, nil
}

// FromRows creates a dataset out of row slices, copying them.
func FromRows[T number.Number](rows [][]T, y []T, intercept bool) (*Data[T], error) {
	x, err := linalg.FromRows(rows)
	if err != nil {
		return nil, err
	}
	yy := linalg.Vector[T](y).Clone()
	if intercept {
		return WithIntercept(x, yy)
	}
	return New(x, yy)
}

// WithNames returns a shallow copy of the dataset carrying the given column names.
// When the dataset has a prepended intercept the names may omit it.
func (d *Data[T]) WithNames(names ...string) *Data[T] {
	c := *d
	c.Names = append([]string(nil), names...)
	return &c
}

// WithPolicy returns a shallow copy of the dataset using the given intercept policy.
func (d *Data[T]) WithPolicy(intercept Intercept) *Data[T] {
	c := *d
	c.Intercept = intercept
	return &c
}

// Dims returns the number of observations and predictors.
func (d *Data[T]) Dims() (int, int) {
	return d.X.Dims()
}

// HasIntercept resolves the intercept policy against the design matrix.
func (d *Data[T]) HasIntercept() bool {
	switch d.Intercept {
	case InterceptPresent:
		return true
	case InterceptAbsent:
		return false
	}
	return d.X.Col(0).IsConstant(1)
}

// Name returns the label of column i.
func (d *Data[T]) Name(i int) string {
	_, p := d.X.Dims()
	switch {
	case len(d.Names) == p:
		return d.Names[i]
	case len(d.Names) == p-1 && d.HasIntercept():
		if i == 0 {
			return InterceptName
		}
		return d.Names[i-1]
	case i == 0 && d.HasIntercept():
		return InterceptName
	}
	return fmt.Sprintf("x%d", i)
}

// Labels returns the label of every column.
func (d *Data[T]) Labels() []string {
	_, p := d.X.Dims()
	labels := make([]string, p)
	for i := range labels {
		labels[i] = d.Name(i)
	}
	return labels
}

// Clone returns a deep copy of the dataset.
func (d *Data[T]) Clone() *Data[T] {
	return &Data[T]{
		X:         d.X.Clone(),
		Y:         d.Y.Clone(),
		Names:     append([]string(nil), d.Names...),
		Intercept: d.Intercept,
	}
}
