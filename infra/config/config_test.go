package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/regression/dataset"
	"github.com/drakos74/regression/lm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {

	type test struct {
		file    string
		content string
	}

	tests := map[string]test{
		"json": {
			file:    "regression.json",
			content: `{"tolerance": 1e-9, "workers": 2, "intercept": "present", "server": {"port": 8080}, "storage": {"type": "memory"}}`,
		},
		"yaml": {
			file: "regression.yaml",
			content: `
tolerance: 1.0e-9
workers: 2
intercept: present
server:
  port: 8080
storage:
  type: memory
`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(file, []byte(tt.content), 0644))

			c, err := LoadConfig(file)
			require.NoError(t, err)
			assert.Equal(t, 1e-9, c.Tolerance)
			assert.Equal(t, 2, c.Workers)
			assert.Equal(t, "present", c.Intercept)
			assert.Equal(t, 8080, c.Server.Port)
			// defaults survive for missing keys
			assert.Equal(t, "regression", c.Server.Name)
			assert.Equal(t, MemoryStorage, c.Storage.Type)
			assert.Equal(t, "regression", c.Storage.Table)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(file, []byte("tolerance: [1"), 0644))
	_, err = LoadConfig(file)
	assert.Error(t, err)

	assert.Panics(t, func() {
		MustLoad("missing", &Config{})
	})
}

func TestMustLoad(t *testing.T) {

	previous := Dir
	Dir = "."
	t.Cleanup(func() {
		Dir = previous
	})

	assert.True(t, Exists("regression"))
	assert.False(t, Exists("missing"))

	c := Default()
	b := MustLoad("regression", &c)
	assert.NotEmpty(t, b)
	assert.Equal(t, FileStorage, c.Storage.Type)
	assert.Equal(t, "file-storage", c.Storage.Dir)
	assert.Equal(t, int64(10<<20), c.Server.MaxBody)
	assert.Equal(t, 6122, c.Server.Port)
	assert.Equal(t, 1e-12, c.Tolerance)
}

func TestConfig_Options(t *testing.T) {

	c := Default()
	c.Tolerance = 1e-6
	c.Intercept = "absent"
	opts, err := c.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	data, err := dataset.FromRows([][]float64{{1, 2}, {1, 3}, {1, 5}}, []float64{1, 2, 4}, false)
	require.NoError(t, err)
	model, err := lm.New(data, opts...)
	require.NoError(t, err)
	assert.Equal(t, 1e-6, model.Tolerance())
	assert.False(t, model.Data().HasIntercept())

	c.Intercept = "sometimes"
	_, err = c.Options()
	assert.Error(t, err)
}

func TestStorage_Shard(t *testing.T) {

	for _, kind := range []string{"", VoidStorage, MemoryStorage, FileStorage} {
		s := Storage{Type: kind, Dir: t.TempDir(), Table: "test"}
		shard, err := s.Shard()
		require.NoError(t, err, kind)
		_, err = shard("report")
		require.NoError(t, err, kind)
	}

	_, err := Storage{Type: "s3"}.Shard()
	assert.Error(t, err)
}
