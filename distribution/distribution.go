package distribution

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// InvalidDegreesOfFreedomErr signals a non-positive degrees of freedom parameter.
	InvalidDegreesOfFreedomErr = errors.New("invalid degrees of freedom")
	// InvalidProbabilityErr signals a probability outside [0,1].
	InvalidProbabilityErr = errors.New("invalid probability")
)

// ChiSquaredCDF is the cumulative distribution function of the chi-squared distribution
// with dof degrees of freedom at x.
func ChiSquaredCDF(x float64, dof int) (float64, error) {
	if err := checkDOF("chi-squared", "dof", dof); err != nil {
		return 0, err
	}
	return distuv.ChiSquared{K: float64(dof)}.CDF(x), nil
}

// ChiSquaredInverseCDF is the quantile function of the chi-squared distribution
// with dof degrees of freedom at p.
func ChiSquaredInverseCDF(p float64, dof int) (float64, error) {
	if err := checkDOF("chi-squared", "dof", dof); err != nil {
		return 0, err
	}
	if err := checkProbability(p); err != nil {
		return 0, err
	}
	return distuv.ChiSquared{K: float64(dof)}.Quantile(p), nil
}

// TCDF is the cumulative distribution function of the standard Student's t distribution
// with dof degrees of freedom at x.
func TCDF(x float64, dof int) (float64, error) {
	if err := checkDOF("student's t", "dof", dof); err != nil {
		return 0, err
	}
	switch {
	case math.IsNaN(x):
		return math.NaN(), nil
	case math.IsInf(x, 1):
		return 1, nil
	case math.IsInf(x, -1):
		return 0, nil
	}
	return students(dof).CDF(x), nil
}

// TInverseCDF is the quantile function of the standard Student's t distribution
// with dof degrees of freedom at p.
func TInverseCDF(p float64, dof int) (float64, error) {
	if err := checkDOF("student's t", "dof", dof); err != nil {
		return 0, err
	}
	if err := checkProbability(p); err != nil {
		return 0, err
	}
	return students(dof).Quantile(p), nil
}

// FCDF is the cumulative distribution function of the Fisher-Snedecor distribution
// with ndof numerator and ddof denominator degrees of freedom at x.
func FCDF(x float64, ndof, ddof int) (float64, error) {
	if err := checkFisher(ndof, ddof); err != nil {
		return 0, err
	}
	switch {
	case math.IsNaN(x):
		return math.NaN(), nil
	case x <= 0:
		return 0, nil
	case math.IsInf(x, 1):
		return 1, nil
	}
	return fisher(ndof, ddof).CDF(x), nil
}

// FInverseCDF is the quantile function of the Fisher-Snedecor distribution
// with ndof numerator and ddof denominator degrees of freedom at p.
func FInverseCDF(p float64, ndof, ddof int) (float64, error) {
	if err := checkFisher(ndof, ddof); err != nil {
		return 0, err
	}
	if err := checkProbability(p); err != nil {
		return 0, err
	}
	return fisher(ndof, ddof).Quantile(p), nil
}

func students(dof int) distuv.StudentsT {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
}

func fisher(ndof, ddof int) distuv.F {
	return distuv.F{D1: float64(ndof), D2: float64(ddof)}
}

func checkFisher(ndof, ddof int) error {
	if err := checkDOF("fisher-snedecor", "numerator dof", ndof); err != nil {
		return err
	}
	return checkDOF("fisher-snedecor", "denominator dof", ddof)
}

func checkDOF(dist, name string, dof int) error {
	if dof <= 0 {
		return fmt.Errorf("%w: %s %s must be positive, got %d", InvalidDegreesOfFreedomErr, dist, name, dof)
	}
	return nil
}

func checkProbability(p float64) error {
	if !(p >= 0 && p <= 1) {
		return fmt.Errorf("%w: %v is outside [0,1]", InvalidProbabilityErr, p)
	}
	return nil
}
