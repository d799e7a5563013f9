package lm

import (
	"fmt"

	"github.com/drakos74/regression/distribution"
	"github.com/drakos74/regression/linalg"
	"github.com/drakos74/regression/number"
	"github.com/rs/zerolog/log"
)

// Fit regresses y on X and produces the least squares estimate of the coefficients
// together with its diagnostics.
func (m *Model[T]) Fit() (*LeastSquaresEstimate[T], error) {
	x, y := m.data.X, m.data.Y
	n, p := x.Dims()

	xt := x.T()
	xtxInv, err := linalg.Inverse(xt.Mul(x))
	if err != nil {
		return nil, fmt.Errorf("could not solve normal equations for %dx%d design: %w", n, p, err)
	}

	coefficients := xtxInv.Mul(xt).MulVec(y)
	fitted := x.MulVec(coefficients)
	residuals := y.Sub(fitted)
	sse := residuals.NormSquared()
	if !number.IsFinite(sse) {
		return nil, fmt.Errorf("%w: residual sum of squares of %dx%d design is %v", InvalidValueErr, n, p, sse)
	}

	rank, err := linalg.Rank(x, m.tolerance)
	if err != nil {
		return nil, fmt.Errorf("could not determine rank of %dx%d design: %w", n, p, err)
	}
	dof, err := residualDOF(n, rank, m.tolerance)
	if err != nil {
		return nil, err
	}
	if rank < p {
		log.Warn().
			Int("cols", p).
			Int("rank", rank).
			Float64("tolerance", m.tolerance).
			Msg("design matrix is numerically rank deficient")
	}

	mse := sse / T(dof)
	rse := number.Sqrt(mse)

	hasIntercept := m.data.HasIntercept()
	var yMean T
	adjustedDOF, ndof := n, rank
	if hasIntercept {
		yMean = y.Mean()
		adjustedDOF, ndof = n-1, rank-1
	}
	if ndof <= 0 {
		return nil, fmt.Errorf("%w: model degrees of freedom %d (rank %d, intercept %v)", InvalidDegreesOfFreedomErr, ndof, rank, hasIntercept)
	}

	ssy := y.AddScalar(-yMean).NormSquared()

	var rSquared, rSquaredAdjusted, fValue, pValue T
	if ssy == 0 {
		// nothing to explain
		rSquared, rSquaredAdjusted = number.NaN[T](), number.NaN[T]()
		fValue, pValue = number.NaN[T](), number.NaN[T]()
	} else {
		rSquared = 1 - sse/ssy
		rSquaredAdjusted = 1 - mse/(ssy/T(adjustedDOF))
		fValue = rSquared / (1 - rSquared) * (T(dof) / T(ndof))
		pf, err := distribution.OneSidedF(float64(fValue), ndof, dof)
		if err != nil {
			return nil, fmt.Errorf("could not compute F test: %w", err)
		}
		pValue = T(pf)
	}

	standardErrors := xtxInv.Diag().Map(number.Sqrt[T]).Scale(rse)
	tValues := coefficients.DivElem(standardErrors)
	probT := make(linalg.Vector[T], p)
	for i, t := range tValues {
		pt, err := distribution.TwoSidedT(float64(t), dof)
		if err != nil {
			return nil, fmt.Errorf("could not compute t test for column %d: %w", i, err)
		}
		probT[i] = T(pt)
	}

	log.Debug().
		Int("rows", n).
		Int("cols", p).
		Int("rank", rank).
		Int("dof", dof).
		Bool("intercept", hasIntercept).
		Float64("r-squared", float64(rSquared)).
		Msg("fitted linear model")

	return &LeastSquaresEstimate[T]{
		Coefficients:          coefficients,
		FittedLine:            fitted,
		Residuals:             residuals,
		MeanSquaredError:      mse,
		ResidualStandardError: rse,
		RSquared:              rSquared,
		RSquaredAdjusted:      rSquaredAdjusted,
		StandardErrors:        standardErrors,
		TValues:               tValues,
		ProbT:                 probT,
		FStatistic: FStatistic[T]{
			Value:          fValue,
			NumeratorDOF:   ndof,
			DenominatorDOF: dof,
			PValue:         pValue,
		},
		Rank:         rank,
		DOF:          dof,
		HasIntercept: hasIntercept,
		Tolerance:    m.tolerance,
	}, nil
}

func residualDOF(n, rank int, tolerance float64) (int, error) {
	dof := n - rank
	if dof <= 0 {
		return 0, fmt.Errorf("%w: %d observations with numeric rank %d (tolerance %g) leave %d residual degrees of freedom",
			InvalidDegreesOfFreedomErr, n, rank, tolerance, dof)
	}
	return dof, nil
}
