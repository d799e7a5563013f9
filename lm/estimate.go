package lm

import (
	"fmt"

	"github.com/drakos74/regression/linalg"
	"github.com/drakos74/regression/number"
)

// FStatistic is the F test of the null hypothesis that all model coefficients are zero.
type FStatistic[T number.Number] struct {
	Value          T
	NumeratorDOF   int
	DenominatorDOF int
	PValue         T
}

// LeastSquaresEstimate is the result of fitting y = X*beta + e under the classical
// linear model assumptions, e ~ N(0, sigma^2 I).
type LeastSquaresEstimate[T number.Number] struct {
	// Coefficients of regression, one per column of X.
	Coefficients linalg.Vector[T]
	// FittedLine is X times the coefficients.
	FittedLine linalg.Vector[T]
	// Residuals is y minus the fitted line.
	Residuals linalg.Vector[T]
	// MeanSquaredError is the unbiased estimator of the error variance,
	// the sum of squared residuals over n - rank(X).
	MeanSquaredError T
	// ResidualStandardError is the square root of MeanSquaredError.
	ResidualStandardError T
	// RSquared is the fraction of the (centered if there is an intercept) variance of y explained.
	RSquared T
	// RSquaredAdjusted corrects RSquared for the degrees of freedom. It can be negative.
	RSquaredAdjusted T
	StandardErrors   linalg.Vector[T]
	// TValues are the coefficients over their standard errors.
	// A perfect fit has zero standard errors, which gives infinite t values,
	// or NaN for a zero coefficient.
	TValues linalg.Vector[T]
	// ProbT is Pr(>|t|) under the null hypothesis that the coefficient is zero.
	ProbT      linalg.Vector[T]
	FStatistic FStatistic[T]

	Rank         int
	DOF          int
	HasIntercept bool
	Tolerance    float64
}

// Predict returns the fitted value for a new observation.
func (e *LeastSquaresEstimate[T]) Predict(x linalg.Vector[T]) (T, error) {
	if len(x) != len(e.Coefficients) {
		return 0, fmt.Errorf("%w: observation has %d values for %d coefficients", InvalidDimensionErr, len(x), len(e.Coefficients))
	}
	return e.Coefficients.Dot(x), nil
}
