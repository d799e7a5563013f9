package distribution

import "math"

// OneSidedT returns the probability of a t statistic at least as extreme as |t|
// under the standard Student's t distribution with dof degrees of freedom.
func OneSidedT(t float64, dof int) (float64, error) {
	p, err := TCDF(math.Abs(t), dof)
	if err != nil {
		return 0, err
	}
	return 1 - p, nil
}

// TwoSidedT returns Pr(>|t|).
func TwoSidedT(t float64, dof int) (float64, error) {
	p, err := OneSidedT(t, dof)
	if err != nil {
		return 0, err
	}
	return 2 * p, nil
}

// OneSidedF returns the upper tail probability of |f| under the F distribution.
func OneSidedF(f float64, ndof, ddof int) (float64, error) {
	p, err := FCDF(math.Abs(f), ndof, ddof)
	if err != nil {
		return 0, err
	}
	return 1 - p, nil
}

// TwoSidedF doubles the upper tail probability of |f|.
func TwoSidedF(f float64, ndof, ddof int) (float64, error) {
	p, err := OneSidedF(f, ndof, ddof)
	if err != nil {
		return 0, err
	}
	return 2 * p, nil
}
