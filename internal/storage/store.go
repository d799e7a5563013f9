package storage

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	DatasetDir = "dataset"
	ReportDir  = "report"
)

var (
	DefaultDir = "file-storage"
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

var (
	NotFoundErr      = errors.New("not found")
	CouldNotLoadErr  = errors.New("could not load")
	UnrecoverableErr = errors.New("unrecoverable error")
)

// Key is the storage key of a dataset or a report.
type Key struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// NewKey creates a key with a fresh id.
func NewKey(kind, label string) Key {
	return Key{
		ID:    uuid.New().String(),
		Kind:  kind,
		Label: label,
	}
}

// Path is the file name of the key, without extension.
func (k Key) Path() string {
	if k.Label == "" {
		return fmt.Sprintf("%s_%s", k.Kind, k.ID)
	}
	return fmt.Sprintf("%s_%s_%s", k.Kind, k.Label, k.ID)
}

// Persistence stores and loads values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}
