package linalg

import (
	"fmt"

	"github.com/drakos74/regression/number"
	"gonum.org/v1/gonum/mat"
)

// SingularValues returns the singular values of m in descending order.
func SingularValues[T number.Number](m *Matrix[T]) ([]float64, error) {
	if m.rows == 0 || m.cols == 0 {
		return []float64{}, nil
	}
	svd, err := factorize(m, mat.SVDNone)
	if err != nil {
		return nil, err
	}
	return svd.Values(nil), nil
}

// Rank returns the numeric rank of m,
// i.e. the number of singular values strictly greater than tol.
func Rank[T number.Number](m *Matrix[T], tol float64) (int, error) {
	values, err := SingularValues(m)
	if err != nil {
		return 0, err
	}
	return rank(values, tol), nil
}

// PseudoInverse computes the Moore-Penrose inverse of m.
// Singular values not greater than tol are treated as zero.
// A matrix with an all-zero column, or one without any singular value above tol, is rejected.
func PseudoInverse[T number.Number](m *Matrix[T], tol float64) (*Matrix[T], error) {
	if m.rows == 0 || m.cols == 0 {
		return NewMatrix[T](m.cols, m.rows, nil), nil
	}
	for j := 0; j < m.cols; j++ {
		if m.Col(j).IsConstant(0) {
			return nil, fmt.Errorf("%w: column %d of %dx%d matrix is all zeros", SingularMatrixErr, j, m.rows, m.cols)
		}
	}

	svd, err := factorize(m, mat.SVDThin)
	if err != nil {
		return nil, err
	}

	values := svd.Values(nil)
	r := rank(values, tol)
	if r == 0 {
		return nil, fmt.Errorf("%w: no singular value of %dx%d matrix above tolerance %g", SingularMatrixErr, m.rows, m.cols, tol)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// A+ = V * S+ * Ut, restricted to the first r singular triplets
	pinv := NewMatrix[T](m.cols, m.rows, nil)
	for i := 0; i < m.cols; i++ {
		for j := 0; j < m.rows; j++ {
			var s float64
			for k := 0; k < r; k++ {
				s += v.At(i, k) / values[k] * u.At(j, k)
			}
			pinv.data[i*pinv.cols+j] = T(s)
		}
	}
	return pinv, nil
}

// Projector returns the orthogonal projector m * pinv(m) onto the column span of m.
// A matrix without columns spans nothing, so its projector is zero.
func Projector[T number.Number](m *Matrix[T], tol float64) (*Matrix[T], error) {
	if m.cols == 0 {
		return NewMatrix[T](m.rows, m.rows, nil), nil
	}
	pinv, err := PseudoInverse(m, tol)
	if err != nil {
		return nil, err
	}
	return m.Mul(pinv), nil
}

// Inverse returns the inverse of the square matrix m.
func Inverse[T number.Number](m *Matrix[T]) (*Matrix[T], error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("%w: cannot invert %dx%d matrix", InvalidDimensionErr, m.rows, m.cols)
	}
	if m.rows == 0 {
		return nil, fmt.Errorf("%w: cannot invert empty matrix", InvalidDimensionErr)
	}
	if err := m.CheckFinite(); err != nil {
		return nil, fmt.Errorf("cannot invert %dx%d matrix: %w", m.rows, m.cols, err)
	}
	var inv mat.Dense
	if err := inv.Inverse(m.Dense()); err != nil {
		return nil, fmt.Errorf("%w: %dx%d matrix: %v", SingularMatrixErr, m.rows, m.cols, err)
	}
	return FromDense[T](&inv), nil
}

func factorize[T number.Number](m *Matrix[T], kind mat.SVDKind) (*mat.SVD, error) {
	if err := m.CheckFinite(); err != nil {
		return nil, fmt.Errorf("cannot factorize %dx%d matrix: %w", m.rows, m.cols, err)
	}
	svd := new(mat.SVD)
	if ok := svd.Factorize(m.Dense(), kind); !ok {
		return nil, fmt.Errorf("%w: svd factorization of %dx%d matrix did not converge", SingularMatrixErr, m.rows, m.cols)
	}
	return svd, nil
}

func rank(values []float64, tol float64) int {
	r := 0
	for _, s := range values {
		if s > tol {
			r++
		}
	}
	return r
}
