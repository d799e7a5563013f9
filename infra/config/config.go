package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drakos74/regression/dataset"
	"github.com/drakos74/regression/internal/storage"
	jsonstore "github.com/drakos74/regression/internal/storage/file/json"
	"github.com/drakos74/regression/lm"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Dir is the directory of the default config files.
var Dir = "infra/config"

const (
	FileStorage   = "file"
	MemoryStorage = "memory"
	VoidStorage   = "void"
)

// Config is the configuration of the regression service and cli.
type Config struct {
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
	Workers   int     `json:"workers" yaml:"workers"`
	Intercept string  `json:"intercept" yaml:"intercept"`
	Debug     bool    `json:"debug" yaml:"debug"`
	Server    Server  `json:"server" yaml:"server"`
	Storage   Storage `json:"storage" yaml:"storage"`
}

type Server struct {
	Name  string `json:"name" yaml:"name"`
	Port  int    `json:"port" yaml:"port"`
	Debug bool   `json:"debug" yaml:"debug"`
	// MaxBody is the request body limit in bytes, non-positive for none.
	MaxBody int64 `json:"max_body" yaml:"max_body"`
}

type Storage struct {
	Type  string `json:"type" yaml:"type"`
	Dir   string `json:"dir" yaml:"dir"`
	Table string `json:"table" yaml:"table"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Tolerance: lm.DefaultTolerance,
		Intercept: dataset.InterceptAuto.String(),
		Server: Server{
			Name:    "regression",
			Port:    6122,
			MaxBody: 10 << 20,
		},
		Storage: Storage{
			Type:  VoidStorage,
			Dir:   storage.DefaultDir,
			Table: "regression",
		},
	}
}

// Load decodes the file at the given path into v.
// Files ending in .yaml or .yml are read as yaml, everything else as json.
func Load(file string, v interface{}) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not read config '%s': %w", file, err)
	}
	if err := decode(file, b, v); err != nil {
		return fmt.Errorf("could not unmarshal config '%s': %w", file, err)
	}
	return nil
}

func decode(file string, b []byte, v interface{}) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, v)
	}
	return json.Unmarshal(b, v)
}

// LoadConfig loads the config from the given file on top of the defaults.
// An empty path returns the defaults.
func LoadConfig(file string) (Config, error) {
	c := Default()
	if file == "" {
		return c, nil
	}
	if err := Load(file, &c); err != nil {
		return c, err
	}
	log.Info().Str("file", file).Msg("loaded config")
	return c, nil
}

// Exists checks if a default config file exists for the given key.
func Exists(key string) bool {
	_, err := os.Stat(fileOf(key))
	return err == nil
}

func fileOf(key string) string {
	f := filepath.Join(Dir, fmt.Sprintf("%s.json", key))
	if _, err := os.Stat(f); err != nil {
		f = filepath.Join(Dir, fmt.Sprintf("%s.yaml", key))
	}
	return f
}

// MustLoad loads the config for the given key
func MustLoad(key string, v interface{}) []byte {

	file := fileOf(key)

	b, err := os.ReadFile(file)
	if err != nil {
		panic(fmt.Sprintf("could not load config for %s: %s", key, err.Error()))
	}

	err = decode(file, b, v)
	if err != nil {
		panic(fmt.Sprintf("could not unmarshal the config for %s: %s", key, err.Error()))
	}

	log.Info().Str("config", key).Msg("loaded default config")

	return b

}

// Options translates the config into model options.
func (c Config) Options() ([]lm.Option, error) {
	intercept, err := dataset.ParseIntercept(c.Intercept)
	if err != nil {
		return nil, err
	}
	opts := []lm.Option{lm.WithTolerance(c.Tolerance)}
	if intercept != dataset.InterceptAuto {
		opts = append(opts, lm.WithIntercept(intercept))
	}
	if c.Workers > 0 {
		opts = append(opts, lm.WithWorkers(c.Workers))
	}
	return opts, nil
}

// Shard creates the storage shards of the configured type.
func (s Storage) Shard() (storage.Shard, error) {
	switch s.Type {
	case "", VoidStorage:
		return storage.VoidShard(), nil
	case MemoryStorage:
		return jsonstore.LocalShard(), nil
	case FileStorage:
		return jsonstore.BlobShard(s.Dir, s.Table), nil
	}
	return nil, fmt.Errorf("unknown storage type '%s'", s.Type)
}
