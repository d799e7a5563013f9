package lm

import (
	"context"
	"fmt"

	"github.com/drakos74/regression/linalg"
	"github.com/drakos74/regression/number"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// AddedVariable is the added variable effect and partial residual of one column
// of the regression, computed with the Frisch-Waugh-Lovell procedure.
type AddedVariable[T number.Number] struct {
	Column int
	// Coefficient equals the coefficient of the column in the full regression of y on X.
	Coefficient T
	// XTilde is the column minus its projection onto the span of the remaining columns.
	XTilde linalg.Vector[T]
	// YTilde is y minus its projection onto the span of the remaining columns.
	YTilde linalg.Vector[T]
	// PartialResidual is the residual plus the contribution of the column.
	PartialResidual linalg.Vector[T]
	// SquaredCorrelationPRP and SquaredCorrelationAVP are +Inf and 1 for a perfect fit,
	// NaN if the fit is perfect and the coefficient or the centered variation of the column is zero.
	SquaredCorrelationPRP T
	SquaredCorrelationAVP T
	// VarianceInflationFactor is the ratio of the centered variation of the column
	// to the variation left after regressing it on the other columns.
	// Its inverse is the fraction of the column not explained by the others.
	VarianceInflationFactor T
	// StandardError of Coefficient, sqrt(mse / |XTilde|^2).
	StandardError T
}

// Residuals of YTilde regressed on XTilde,
// which are the residuals of the full regression of y on X.
func (a *AddedVariable[T]) Residuals() linalg.Vector[T] {
	return a.YTilde.Sub(a.XTilde.Scale(a.Coefficient))
}

// Analyze computes the added variable effect of the given column.
func (m *Model[T]) Analyze(column int) (*AddedVariable[T], error) {
	_, p := m.data.Dims()
	if column < 0 || column >= p {
		return nil, fmt.Errorf("%w: column %d out of %d columns", InvalidDimensionErr, column, p)
	}
	rank, err := m.rank()
	if err != nil {
		return nil, err
	}
	return m.analyze(column, rank)
}

// AnalyzeAll computes the added variable effect of every column.
// Index i of the result holds column i. Columns are analysed concurrently
// and independently, each with the same arithmetic as Analyze.
// The first failing column cancels the columns that have not started yet.
func (m *Model[T]) AnalyzeAll() ([]*AddedVariable[T], error) {
	_, p := m.data.Dims()
	rank, err := m.rank()
	if err != nil {
		return nil, err
	}

	results := make([]*AddedVariable[T], p)
	group, ctx := errgroup.WithContext(context.Background())
	group.SetLimit(m.workers)
	for i := 0; i < p; i++ {
		if ctx.Err() != nil {
			break
		}
		column := i
		group.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			av, err := m.analyze(column, rank)
			if err != nil {
				return err
			}
			results[column] = av
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (m *Model[T]) rank() (int, error) {
	n, p := m.data.Dims()
	rank, err := linalg.Rank(m.data.X, m.tolerance)
	if err != nil {
		return 0, fmt.Errorf("could not determine rank of %dx%d design: %w", n, p, err)
	}
	return rank, nil
}

func (m *Model[T]) analyze(column, rank int) (*AddedVariable[T], error) {
	x, y := m.data.X, m.data.Y
	n, p := x.Dims()

	dof, err := residualDOF(n, rank, m.tolerance)
	if err != nil {
		return nil, err
	}

	xi := x.Col(column)
	w := x.RemoveCol(column)

	projection, err := linalg.Projector(w, m.tolerance)
	if err != nil {
		return nil, fmt.Errorf("could not project onto the columns other than %d (tolerance %g): %w", column, m.tolerance, err)
	}

	xTilde := xi.Sub(projection.MulVec(xi))
	yTilde := y.Sub(projection.MulVec(y))

	residualNorm := xTilde.NormSquared()
	norm := xi.NormSquared()
	if !number.IsFinite(residualNorm) || !number.IsFinite(norm) {
		return nil, fmt.Errorf("%w: squared norms of column %d overflow (|x_tilde|^2 = %v, |x|^2 = %v)",
			InvalidValueErr, column, residualNorm, norm)
	}
	if norm == 0 || float64(residualNorm) <= m.tolerance*float64(norm) {
		return nil, &ColumnError{
			Column:    column,
			Residual:  float64(residualNorm),
			Norm:      float64(norm),
			Tolerance: m.tolerance,
		}
	}

	coefficient := y.Dot(xTilde) / residualNorm
	residuals := yTilde.Sub(xTilde.Scale(coefficient))
	partial := residuals.Add(xi.Scale(coefficient))

	vif := xi.Centered().NormSquared() / residualNorm

	mse := residuals.NormSquared() / T(dof)
	var prp, avp T
	switch {
	case mse > 0:
		tSquared := coefficient * coefficient / mse / norm
		prp = tSquared * vif
		avp = prp / (T(n) - T(p) + prp)
	case coefficient == 0 || vif == 0:
		// perfect fit of a zero effect, or of a column without centered variation
		prp, avp = number.NaN[T](), number.NaN[T]()
	default:
		// perfect fit, the column explains everything left of y
		prp, avp = number.Inf[T](1), 1
	}

	log.Debug().
		Int("column", column).
		Float64("coefficient", float64(coefficient)).
		Float64("vif", float64(vif)).
		Msg("analysed added variable")

	return &AddedVariable[T]{
		Column:                  column,
		Coefficient:             coefficient,
		XTilde:                  xTilde,
		YTilde:                  yTilde,
		PartialResidual:         partial,
		SquaredCorrelationPRP:   prp,
		SquaredCorrelationAVP:   avp,
		VarianceInflationFactor: vif,
		StandardError:           number.Sqrt(mse / residualNorm),
	}, nil
}
