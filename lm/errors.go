package lm

import (
	"errors"
	"fmt"

	"github.com/drakos74/regression/distribution"
	"github.com/drakos74/regression/linalg"
)

var (
	// InvalidDimensionErr signals an out of range column or mismatched shapes.
	InvalidDimensionErr = linalg.InvalidDimensionErr
	// SingularMatrixErr signals that XtX, or the matrix of remaining columns, cannot be inverted.
	SingularMatrixErr = linalg.SingularMatrixErr
	// InvalidDegreesOfFreedomErr signals non-positive residual or model degrees of freedom.
	InvalidDegreesOfFreedomErr = distribution.InvalidDegreesOfFreedomErr
	// InvalidValueErr signals NaN or infinite data, or sums of squares that overflow.
	InvalidValueErr = linalg.InvalidValueErr
	// RankDeficientColumnErr signals a column that is collinear with the remaining ones.
	RankDeficientColumnErr = errors.New("rank deficient column")
)

// ColumnError describes a column whose partial residual is numerically zero.
type ColumnError struct {
	Column int
	// Residual is the squared norm of the column after projecting out the others.
	Residual float64
	// Norm is the squared norm of the column itself.
	Norm      float64
	Tolerance float64
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: column %d is collinear with the remaining columns (|x_tilde|^2 = %g, |x|^2 = %g, tolerance %g)",
		RankDeficientColumnErr.Error(), e.Column, e.Residual, e.Norm, e.Tolerance)
}

func (e *ColumnError) Unwrap() error {
	return RankDeficientColumnErr
}
