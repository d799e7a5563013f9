package linalg

import (
	"fmt"

	"github.com/drakos74/regression/number"
)

// Vector is a dense column vector.
type Vector[T number.Number] []T

// NewVector creates a zero vector of length n.
func NewVector[T number.Number](n int) Vector[T] {
	return make(Vector[T], n)
}

// Ones creates a vector of length n with all elements equal to one.
func Ones[T number.Number](n int) Vector[T] {
	v := make(Vector[T], n)
	for i := range v {
		v[i] = 1
	}
	return v
}

// Len returns the number of elements.
func (v Vector[T]) Len() int {
	return len(v)
}

// Clone returns a copy of the vector.
func (v Vector[T]) Clone() Vector[T] {
	c := make(Vector[T], len(v))
	copy(c, v)
	return c
}

// Dot returns the inner product of v and u.
func (v Vector[T]) Dot(u Vector[T]) T {
	mustMatch(len(v), len(u), "dot")
	var s T
	for i := range v {
		s += v[i] * u[i]
	}
	return s
}

// NormSquared returns the squared euclidean norm.
func (v Vector[T]) NormSquared() T {
	return v.Dot(v)
}

// Sum returns the sum of all elements.
func (v Vector[T]) Sum() T {
	var s T
	for _, x := range v {
		s += x
	}
	return s
}

// Mean returns the arithmetic mean, or zero for an empty vector.
func (v Vector[T]) Mean() T {
	if len(v) == 0 {
		return 0
	}
	return v.Sum() / T(len(v))
}

// Add returns v + u.
func (v Vector[T]) Add(u Vector[T]) Vector[T] {
	mustMatch(len(v), len(u), "add")
	r := make(Vector[T], len(v))
	for i := range v {
		r[i] = v[i] + u[i]
	}
	return r
}

// Sub returns v - u.
func (v Vector[T]) Sub(u Vector[T]) Vector[T] {
	mustMatch(len(v), len(u), "sub")
	r := make(Vector[T], len(v))
	for i := range v {
		r[i] = v[i] - u[i]
	}
	return r
}

// Scale returns a*v.
func (v Vector[T]) Scale(a T) Vector[T] {
	r := make(Vector[T], len(v))
	for i := range v {
		r[i] = a * v[i]
	}
	return r
}

// AddScalar returns v with a added to every element.
func (v Vector[T]) AddScalar(a T) Vector[T] {
	r := make(Vector[T], len(v))
	for i := range v {
		r[i] = v[i] + a
	}
	return r
}

// Centered returns v minus its mean.
func (v Vector[T]) Centered() Vector[T] {
	return v.AddScalar(-v.Mean())
}

// Map applies f to every element and returns the result.
func (v Vector[T]) Map(f func(T) T) Vector[T] {
	r := make(Vector[T], len(v))
	for i := range v {
		r[i] = f(v[i])
	}
	return r
}

// DivElem returns the element-wise quotient v / u.
func (v Vector[T]) DivElem(u Vector[T]) Vector[T] {
	mustMatch(len(v), len(u), "div")
	r := make(Vector[T], len(v))
	for i := range v {
		r[i] = v[i] / u[i]
	}
	return r
}

// IsConstant reports whether every element is exactly c.
// An empty vector is not constant.
func (v Vector[T]) IsConstant(c T) bool {
	if len(v) == 0 {
		return false
	}
	for _, x := range v {
		if x != c {
			return false
		}
	}
	return true
}

// CheckFinite returns an InvalidValueErr naming the first element that is NaN or infinite.
func (v Vector[T]) CheckFinite() error {
	for i, x := range v {
		if !number.IsFinite(x) {
			return fmt.Errorf("%w: element %d is %v", InvalidValueErr, i, x)
		}
	}
	return nil
}

// Float64 returns the elements widened to float64.
func (v Vector[T]) Float64() []float64 {
	ff := make([]float64, len(v))
	for i, x := range v {
		ff[i] = float64(x)
	}
	return ff
}

// VectorFrom narrows the given floats into a vector of the requested precision.
func VectorFrom[T number.Number](ff []float64) Vector[T] {
	v := make(Vector[T], len(ff))
	for i, f := range ff {
		v[i] = T(f)
	}
	return v
}

func mustMatch(a, b int, op string) {
	if a != b {
		panic(fmt.Errorf("%w: %s of lengths %d and %d", InvalidDimensionErr, op, a, b))
	}
}
