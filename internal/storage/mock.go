package storage

import (
	"fmt"
	"reflect"
	"sync"
)

func MockShard() Shard {
	return func(shard string) (Persistence, error) {
		return NewMockStorage(), nil
	}
}

// MockStorage keeps the stored values in memory as they are.
type MockStorage struct {
	Elements map[Key]interface{}
	mutex    sync.RWMutex
}

func NewMockStorage() *MockStorage {
	return &MockStorage{Elements: make(map[Key]interface{})}
}

func (m *MockStorage) Store(k Key, value interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Elements[k] = value
	return nil
}

// Load copies the stored value into the given pointer, if the types match.
func (m *MockStorage) Load(k Key, value interface{}) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	v, ok := m.Elements[k]
	if !ok {
		return fmt.Errorf("not found '%v': %w", k, NotFoundErr)
	}
	target := reflect.ValueOf(value)
	source := reflect.ValueOf(v)
	if source.Kind() == reflect.Ptr {
		source = source.Elem()
	}
	if target.Kind() != reflect.Ptr || target.Elem().Type() != source.Type() {
		return fmt.Errorf("cannot load %T into %T: %w", v, value, CouldNotLoadErr)
	}
	target.Elem().Set(source)
	return nil
}
