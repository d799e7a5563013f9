package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/regression/infra/config"
	"github.com/drakos74/regression/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scores = `hours,sleep,score
10,15,82
9,14,79
9,13,74
11,15,83
11,14,80
10,14,81
10,16,84
12,13,81
`

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func scoresFile(t *testing.T) string {
	file := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(file, []byte(scores), 0644))
	return file
}

func TestFit(t *testing.T) {

	type test struct {
		args     []string
		contains []string
	}

	tests := map[string]test{
		"intercept": {
			args: []string{"--intercept"},
			contains: []string{
				"(Intercept)",
				"hours",
				"3.000e+01",
				"R-squared: 8.826e-01",
			},
		},
		"without-intercept": {
			args: []string{"--target", "score"},
			contains: []string{
				"2.648e+00",
				"3.739e+00",
				"R-squared: 9.995e-01",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, append([]string{"fit", scoresFile(t)}, tt.args...)...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestFit_JSONAndSave(t *testing.T) {

	dir := t.TempDir()
	out, err := execute(t, "fit", scoresFile(t), "--intercept", "--json", "--save", dir)
	require.NoError(t, err)

	var report summary.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotEmpty(t, report.ID)
	require.NotNil(t, report.Fit)
	assert.InDelta(t, 1.625, float64(report.Fit.Coefficients[1].Estimate), 1e-9)

	files, err := filepath.Glob(filepath.Join(dir, "regression", "report", "*.json"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
	files, err = filepath.Glob(filepath.Join(dir, "regression", "dataset", "*.json"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestAvp(t *testing.T) {

	out, err := execute(t, "avp", scoresFile(t), "--intercept", "--column", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "sleep")
	assert.Contains(t, out, "1.004")
	assert.NotContains(t, out, "hours")

	out, err = execute(t, "avp", scoresFile(t), "--intercept", "--scale", "zscore")
	require.NoError(t, err)
	assert.Contains(t, out, "hours")
	assert.Contains(t, out, "sleep")
}

func TestErrors(t *testing.T) {

	_, err := execute(t, "fit", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = execute(t, "avp", scoresFile(t), "--column", "7")
	assert.Error(t, err)

	_, err = execute(t, "fit", scoresFile(t), "--scale", "log")
	assert.Error(t, err)
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "# intercept: false")
	assert.Contains(t, out, "# intercept: true")
	assert.Contains(t, out, "F-statistic: 1.879e+01 on 2 and 5 DF")
}

func TestServeConfig(t *testing.T) {

	dir := t.TempDir()
	previous := config.Dir
	config.Dir = dir
	t.Cleanup(func() {
		config.Dir = previous
	})

	// no default file
	cfg, err := (&options{}).serveConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "regression.yaml"), []byte("server:\n  port: 7000\nstorage:\n  type: memory\n"), 0644))
	cfg, err = (&options{}).serveConfig()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, config.MemoryStorage, cfg.Storage.Type)
	assert.Equal(t, "regression", cfg.Server.Name)

	// an explicit file wins over the default one
	file := filepath.Join(t.TempDir(), "other.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"server": {"port": 7001}}`), 0644))
	cfg, err = (&options{config: file}).serveConfig()
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, config.VoidStorage, cfg.Storage.Type)
}
