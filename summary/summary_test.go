package summary

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/drakos74/regression/dataset"
	"github.com/drakos74/regression/linalg"
	"github.com/drakos74/regression/lm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scores(t *testing.T) *dataset.Data[float64] {
	x := linalg.NewMatrix(8, 2, []float64{
		10, 15,
		9, 14,
		9, 13,
		11, 15,
		11, 14,
		10, 14,
		10, 16,
		12, 13,
	})
	y := linalg.Vector[float64]{82, 79, 74, 83, 80, 81, 84, 81}
	data, err := dataset.WithIntercept(x, y)
	require.NoError(t, err)
	return data.WithNames("hours", "sleep")
}

func analyse(t *testing.T, data *dataset.Data[float64]) (*lm.LeastSquaresEstimate[float64], []*lm.AddedVariable[float64]) {
	model, err := lm.New(data)
	require.NoError(t, err)
	est, err := model.Fit()
	require.NoError(t, err)
	avs, err := model.AnalyzeAll()
	require.NoError(t, err)
	return est, avs
}

func TestEstimate(t *testing.T) {

	data := scores(t)
	est, _ := analyse(t, data)

	var buf bytes.Buffer
	require.NoError(t, Estimate(&buf, est, data.Labels()))
	out := buf.String()

	assert.Contains(t, out, "Pr(>|t|)")
	assert.Contains(t, out, "(Intercept)")
	assert.Contains(t, out, "hours")
	assert.Contains(t, out, "sleep")
	assert.Contains(t, out, "3.000e+01")
	assert.Contains(t, out, "Residual standard error: 1.245e+00 on 5 degrees of freedom")
	assert.Contains(t, out, "R-squared: 8.826e-01, Adjusted R-squared: 8.356e-01")
	assert.Contains(t, out, "F-statistic: 1.879e+01 on 2 and 5 DF, p-value: 4.725e-03")
}

func TestAddedVariables(t *testing.T) {

	data := scores(t)
	_, avs := analyse(t, data)

	var buf bytes.Buffer
	require.NoError(t, AddedVariables(&buf, avs, nil))
	out := buf.String()

	assert.Contains(t, out, "VIF")
	assert.Contains(t, out, "x0")
	assert.Contains(t, out, "x2")
	assert.Contains(t, out, "1.004")
	assert.Contains(t, out, "2.375e+00")
}

func TestSignificance(t *testing.T) {

	type test struct {
		p    float64
		code string
	}

	tests := map[string]test{
		"very-strong": {p: 0.0001, code: "***"},
		"strong":      {p: 0.005, code: "**"},
		"significant": {p: 0.02, code: "*"},
		"weak":        {p: 0.07, code: "."},
		"none":        {p: 0.5, code: ""},
		"nan":         {p: math.NaN(), code: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.code, Significance(tt.p))
		})
	}
}

func TestNewReport(t *testing.T) {

	data := scores(t)
	est, avs := analyse(t, data)

	report := NewReport(data, est, avs)
	assert.Equal(t, 8, report.Rows)
	assert.Equal(t, 3, report.Cols)
	assert.True(t, report.Intercept)
	require.NotNil(t, report.Fit)
	require.Len(t, report.Fit.Coefficients, 3)
	assert.Equal(t, "(Intercept)", report.Fit.Coefficients[0].Name)
	assert.Equal(t, "sleep", report.Fit.Coefficients[2].Name)
	assert.InDelta(t, 10.25, float64(report.Fit.Coefficients[1].Mean), 1e-12)
	assert.Equal(t, Float(0), report.Fit.Coefficients[0].StdDev)
	assert.Equal(t, "*", report.Fit.Coefficients[1].Significance)
	require.Len(t, report.AddedVariables, 3)
	assert.Equal(t, "hours", report.AddedVariables[1].Name)

	b, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.InDelta(t, 30, float64(decoded.Fit.Coefficients[0].Estimate), 1e-9)
	assert.Equal(t, 2, decoded.Fit.FStatistic.NumeratorDOF)
}

func TestFloat_NonFinite(t *testing.T) {

	type test struct {
		value Float
		json  string
	}

	tests := map[string]test{
		"nan":      {value: Float(math.NaN()), json: "null"},
		"inf":      {value: Float(math.Inf(1)), json: "null"},
		"-inf":     {value: Float(math.Inf(-1)), json: "null"},
		"number":   {value: 1.5, json: "1.5"},
		"exponent": {value: 1e-21, json: "1e-21"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.json, string(b))
		})
	}

	var f Float
	require.NoError(t, json.Unmarshal([]byte("null"), &f))
	assert.True(t, math.IsNaN(float64(f)))

	// a constant response leaves nothing to explain
	x := linalg.NewMatrix(4, 1, []float64{1, 2, 3, 5})
	data, err := dataset.WithIntercept(x, linalg.Vector[float64]{7, 7, 7, 7})
	require.NoError(t, err)
	model, err := lm.New(data)
	require.NoError(t, err)
	est, err := model.Fit()
	require.NoError(t, err)
	b, err := json.Marshal(NewReport(data, est, nil))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `"r_squared":null`))
}
