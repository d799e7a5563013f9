package linalg

import (
	"errors"
	"fmt"

	"github.com/drakos74/regression/number"
	"gonum.org/v1/gonum/mat"
)

var (
	// InvalidDimensionErr signals an index or shape mismatch.
	InvalidDimensionErr = errors.New("invalid dimension")
	// SingularMatrixErr signals a matrix that cannot be inverted or factorized.
	SingularMatrixErr = errors.New("singular matrix")
	// InvalidValueErr signals a NaN or infinite element.
	InvalidValueErr = errors.New("invalid value")
)

// Matrix is a dense row-major matrix.
type Matrix[T number.Number] struct {
	rows, cols int
	data       []T
}

// NewMatrix creates a rows x cols matrix backed by data.
// If data is nil a zero matrix is allocated, otherwise len(data) must be rows*cols.
// The slice is used directly and not copied.
func NewMatrix[T number.Number](rows, cols int, data []T) *Matrix[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Errorf("%w: negative shape %dx%d", InvalidDimensionErr, rows, cols))
	}
	if data == nil {
		data = make([]T, rows*cols)
	}
	if len(data) != rows*cols {
		panic(fmt.Errorf("%w: %d elements for a %dx%d matrix", InvalidDimensionErr, len(data), rows, cols))
	}
	return &Matrix[T]{
		rows: rows,
		cols: cols,
		data: data,
	}
}

// FromRows builds a matrix out of the given rows.
func FromRows[T number.Number](rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 {
		return NewMatrix[T](0, 0, nil), nil
	}
	cols := len(rows[0])
	data := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns instead of %d", InvalidDimensionErr, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return NewMatrix(len(rows), cols, data), nil
}

// FromDense narrows a gonum matrix into the requested precision.
func FromDense[T number.Number](d mat.Matrix) *Matrix[T] {
	r, c := d.Dims()
	m := NewMatrix[T](r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.data[i*c+j] = T(d.At(i, j))
		}
	}
	return m
}

// Dims returns the number of rows and columns.
func (m *Matrix[T]) Dims() (int, int) {
	return m.rows, m.cols
}

// At returns the element at row i and column j.
func (m *Matrix[T]) At(i, j int) T {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set sets the element at row i and column j.
func (m *Matrix[T]) Set(i, j int, v T) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

// Row returns a copy of row i.
func (m *Matrix[T]) Row(i int) Vector[T] {
	if i < 0 || i >= m.rows {
		panic(fmt.Errorf("%w: row %d of %dx%d matrix", InvalidDimensionErr, i, m.rows, m.cols))
	}
	r := make(Vector[T], m.cols)
	copy(r, m.data[i*m.cols:(i+1)*m.cols])
	return r
}

// Col returns a copy of column j.
func (m *Matrix[T]) Col(j int) Vector[T] {
	if j < 0 || j >= m.cols {
		panic(fmt.Errorf("%w: column %d of %dx%d matrix", InvalidDimensionErr, j, m.rows, m.cols))
	}
	c := make(Vector[T], m.rows)
	for i := 0; i < m.rows; i++ {
		c[i] = m.data[i*m.cols+j]
	}
	return c
}

// Clone returns a deep copy.
func (m *Matrix[T]) Clone() *Matrix[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)
	return NewMatrix(m.rows, m.cols, data)
}

// RemoveCol returns a new matrix without column j.
func (m *Matrix[T]) RemoveCol(j int) *Matrix[T] {
	if j < 0 || j >= m.cols {
		panic(fmt.Errorf("%w: cannot remove column %d of %dx%d matrix", InvalidDimensionErr, j, m.rows, m.cols))
	}
	r := NewMatrix[T](m.rows, m.cols-1, nil)
	for i := 0; i < m.rows; i++ {
		k := 0
		for c := 0; c < m.cols; c++ {
			if c == j {
				continue
			}
			r.data[i*r.cols+k] = m.data[i*m.cols+c]
			k++
		}
	}
	return r
}

// InsertCol returns a new matrix with a constant column inserted at position j.
func (m *Matrix[T]) InsertCol(j int, v T) *Matrix[T] {
	if j < 0 || j > m.cols {
		panic(fmt.Errorf("%w: cannot insert column at %d of %dx%d matrix", InvalidDimensionErr, j, m.rows, m.cols))
	}
	r := NewMatrix[T](m.rows, m.cols+1, nil)
	for i := 0; i < m.rows; i++ {
		k := 0
		for c := 0; c < r.cols; c++ {
			if c == j {
				r.data[i*r.cols+c] = v
				continue
			}
			r.data[i*r.cols+c] = m.data[i*m.cols+k]
			k++
		}
	}
	return r
}

// T returns the transpose as a new matrix.
func (m *Matrix[T]) T() *Matrix[T] {
	t := NewMatrix[T](m.cols, m.rows, nil)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.data[j*t.cols+i] = m.data[i*m.cols+j]
		}
	}
	return t
}

// Mul returns the matrix product m*b.
func (m *Matrix[T]) Mul(b *Matrix[T]) *Matrix[T] {
	if m.cols != b.rows {
		panic(fmt.Errorf("%w: cannot multiply %dx%d by %dx%d", InvalidDimensionErr, m.rows, m.cols, b.rows, b.cols))
	}
	r := NewMatrix[T](m.rows, b.cols, nil)
	for i := 0; i < m.rows; i++ {
		for k := 0; k < m.cols; k++ {
			a := m.data[i*m.cols+k]
			if a == 0 {
				continue
			}
			for j := 0; j < b.cols; j++ {
				r.data[i*r.cols+j] += a * b.data[k*b.cols+j]
			}
		}
	}
	return r
}

// MulVec returns the product m*v.
func (m *Matrix[T]) MulVec(v Vector[T]) Vector[T] {
	if m.cols != len(v) {
		panic(fmt.Errorf("%w: cannot multiply %dx%d by vector of length %d", InvalidDimensionErr, m.rows, m.cols, len(v)))
	}
	r := make(Vector[T], m.rows)
	for i := 0; i < m.rows; i++ {
		var s T
		for j := 0; j < m.cols; j++ {
			s += m.data[i*m.cols+j] * v[j]
		}
		r[i] = s
	}
	return r
}

// Diag returns the main diagonal.
func (m *Matrix[T]) Diag() Vector[T] {
	n := m.rows
	if m.cols < n {
		n = m.cols
	}
	d := make(Vector[T], n)
	for i := 0; i < n; i++ {
		d[i] = m.data[i*m.cols+i]
	}
	return d
}

// Dense widens the matrix into a gonum dense matrix.
// gonum does not allow empty matrices, so neither dimension may be zero.
func (m *Matrix[T]) Dense() *mat.Dense {
	data := make([]float64, len(m.data))
	for i, v := range m.data {
		data[i] = float64(v)
	}
	return mat.NewDense(m.rows, m.cols, data)
}

func (m *Matrix[T]) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Errorf("%w: index (%d,%d) out of %dx%d", InvalidDimensionErr, i, j, m.rows, m.cols))
	}
}

// CheckFinite returns an InvalidValueErr naming the first element that is NaN or infinite.
func (m *Matrix[T]) CheckFinite() error {
	for k, v := range m.data {
		if !number.IsFinite(v) {
			return fmt.Errorf("%w: element (%d,%d) is %v", InvalidValueErr, k/m.cols, k%m.cols, v)
		}
	}
	return nil
}
