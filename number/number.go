package number

import "math"

// Number is the real type the regression engines are generic over.
// Arithmetic and comparisons come from the language,
// the rest goes through float64.
type Number interface {
	~float32 | ~float64
}

// Float64 converts the value to a 64-bit float, e.g. for distribution lookups.
func Float64[T Number](v T) float64 {
	return float64(v)
}

// From converts a 64-bit float into the given precision.
func From[T Number](f float64) T {
	return T(f)
}

// Sqrt returns the square root of v.
func Sqrt[T Number](v T) T {
	return T(math.Sqrt(float64(v)))
}

// Abs returns the absolute value of v.
func Abs[T Number](v T) T {
	return T(math.Abs(float64(v)))
}

// Pow returns v**e.
func Pow[T Number](v, e T) T {
	return T(math.Pow(float64(v), float64(e)))
}

// Inf returns positive infinity if sign >= 0, negative infinity otherwise.
func Inf[T Number](sign int) T {
	return T(math.Inf(sign))
}

// NaN returns a not-a-number value.
func NaN[T Number]() T {
	return T(math.NaN())
}

// IsFinite reports whether v is neither infinite nor NaN.
func IsFinite[T Number](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
