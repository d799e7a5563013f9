package summary

import (
	"fmt"
	"io"
	"math"

	"github.com/drakos74/regression/lm"
	"github.com/drakos74/regression/number"
	"github.com/olekukonko/tablewriter"
)

// Estimate prints the coefficient table of the estimate followed by its goodness of fit.
// Coefficients without a name are labelled by their column index.
func Estimate[T number.Number](w io.Writer, est *lm.LeastSquaresEstimate[T], names []string) error {
	table := newTable(w, "", "Estimate", "Std. Error", "t value", "Pr(>|t|)", "")
	for i := range est.Coefficients {
		p := float64(est.ProbT[i])
		table.Append([]string{
			name(names, i),
			sci(est.Coefficients[i]),
			sci(est.StandardErrors[i]),
			fmt.Sprintf("%.2f", float64(est.TValues[i])),
			sci(est.ProbT[i]),
			Significance(p),
		})
	}
	table.Render()

	_, err := fmt.Fprintf(w, "\nResidual standard error: %s on %d degrees of freedom\n"+
		"R-squared: %s, Adjusted R-squared: %s\n"+
		"F-statistic: %s on %d and %d DF, p-value: %s\n",
		sci(est.ResidualStandardError), est.DOF,
		sci(est.RSquared), sci(est.RSquaredAdjusted),
		sci(est.FStatistic.Value), est.FStatistic.NumeratorDOF, est.FStatistic.DenominatorDOF,
		sci(est.FStatistic.PValue))
	return err
}

// AddedVariables prints one row of diagnostics per analysed column.
func AddedVariables[T number.Number](w io.Writer, avs []*lm.AddedVariable[T], names []string) error {
	table := newTable(w, "", "Coefficient", "Std. Error", "VIF", "R2 (prp)", "R2 (avp)")
	for _, av := range avs {
		if av == nil {
			continue
		}
		table.Append([]string{
			name(names, av.Column),
			sci(av.Coefficient),
			sci(av.StandardError),
			fmt.Sprintf("%.3f", float64(av.VarianceInflationFactor)),
			sci(av.SquaredCorrelationPRP),
			sci(av.SquaredCorrelationAVP),
		})
	}
	table.Render()
	return nil
}

// Significance returns the conventional significance code of a p-value.
func Significance(p float64) string {
	switch {
	case math.IsNaN(p):
		return ""
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	case p < 0.1:
		return "."
	}
	return ""
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

func name(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("x%d", i)
}

func sci[T number.Number](v T) string {
	return fmt.Sprintf("%.3e", float64(v))
}
