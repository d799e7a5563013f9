package summary

import (
	"bytes"
	"math"
	"strconv"

	"github.com/drakos74/regression/dataset"
	"github.com/drakos74/regression/lm"
	"github.com/drakos74/regression/number"
)

var null = []byte("null")

// Float is a float64 that encodes NaN and infinities as json null.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return null, nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler, null decodes to NaN.
func (f *Float) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		*f = Float(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Coefficient is the report entry of one column of the design.
type Coefficient struct {
	Name          string `json:"name"`
	Mean          Float  `json:"mean"`
	StdDev        Float  `json:"std_dev"`
	Estimate      Float  `json:"estimate"`
	StandardError Float  `json:"standard_error"`
	TValue        Float  `json:"t_value"`
	ProbT         Float  `json:"prob_t"`
	Significance  string `json:"significance,omitempty"`
}

// FStatistic is the report entry of the overall F test.
type FStatistic struct {
	Value          Float `json:"value"`
	NumeratorDOF   int   `json:"numerator_dof"`
	DenominatorDOF int   `json:"denominator_dof"`
	PValue         Float `json:"p_value"`
}

// Fit is the report entry of a least squares estimate.
type Fit struct {
	Coefficients          []Coefficient `json:"coefficients"`
	ResidualStandardError Float         `json:"residual_standard_error"`
	MeanSquaredError      Float         `json:"mean_squared_error"`
	RSquared              Float         `json:"r_squared"`
	RSquaredAdjusted      Float         `json:"r_squared_adjusted"`
	FStatistic            FStatistic    `json:"f_statistic"`
	Rank                  int           `json:"rank"`
	DOF                   int           `json:"dof"`
}

// AddedVariable is the report entry of one analysed column.
type AddedVariable struct {
	Column                  int    `json:"column"`
	Name                    string `json:"name"`
	Coefficient             Float  `json:"coefficient"`
	StandardError           Float  `json:"standard_error"`
	VarianceInflationFactor Float  `json:"vif"`
	SquaredCorrelationPRP   Float  `json:"r_squared_prp"`
	SquaredCorrelationAVP   Float  `json:"r_squared_avp"`
}

// Report is the serialisable outcome of a fit and/or an added variable analysis.
type Report struct {
	ID             string          `json:"id,omitempty"`
	Rows           int             `json:"rows"`
	Cols           int             `json:"cols"`
	Intercept      bool            `json:"intercept"`
	Tolerance      float64         `json:"tolerance"`
	Fit            *Fit            `json:"fit,omitempty"`
	AddedVariables []AddedVariable `json:"added_variables,omitempty"`
}

// NewReport summarises the dataset together with the given results.
// Either result can be nil.
func NewReport[T number.Number](data *dataset.Data[T], est *lm.LeastSquaresEstimate[T], avs []*lm.AddedVariable[T]) Report {
	n, p := data.Dims()
	labels := data.Labels()
	report := Report{
		Rows:      n,
		Cols:      p,
		Intercept: data.HasIntercept(),
	}

	if est != nil {
		report.Tolerance = est.Tolerance
		means, stds := dataset.ColumnStats(data.X)
		fit := &Fit{
			Coefficients:          make([]Coefficient, len(est.Coefficients)),
			ResidualStandardError: Float(est.ResidualStandardError),
			MeanSquaredError:      Float(est.MeanSquaredError),
			RSquared:              Float(est.RSquared),
			RSquaredAdjusted:      Float(est.RSquaredAdjusted),
			FStatistic: FStatistic{
				Value:          Float(est.FStatistic.Value),
				NumeratorDOF:   est.FStatistic.NumeratorDOF,
				DenominatorDOF: est.FStatistic.DenominatorDOF,
				PValue:         Float(est.FStatistic.PValue),
			},
			Rank: est.Rank,
			DOF:  est.DOF,
		}
		for i := range est.Coefficients {
			fit.Coefficients[i] = Coefficient{
				Name:          labels[i],
				Mean:          Float(means[i]),
				StdDev:        Float(stds[i]),
				Estimate:      Float(est.Coefficients[i]),
				StandardError: Float(est.StandardErrors[i]),
				TValue:        Float(est.TValues[i]),
				ProbT:         Float(est.ProbT[i]),
				Significance:  Significance(float64(est.ProbT[i])),
			}
		}
		report.Fit = fit
	}

	for _, av := range avs {
		if av == nil {
			continue
		}
		report.AddedVariables = append(report.AddedVariables, AddedVariable{
			Column:                  av.Column,
			Name:                    labels[av.Column],
			Coefficient:             Float(av.Coefficient),
			StandardError:           Float(av.StandardError),
			VarianceInflationFactor: Float(av.VarianceInflationFactor),
			SquaredCorrelationPRP:   Float(av.SquaredCorrelationPRP),
			SquaredCorrelationAVP:   Float(av.SquaredCorrelationAVP),
		})
	}
	return report
}
