package di

import (
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/tinyioc/errors"
)

// Module is a named scope holding one entry per type-key.
type Module struct {
	key      reflect.Type
	id       string
	mu       sync.RWMutex
	services map[reflect.Type]*ServiceEntry
}

func newModule(key reflect.Type) *Module {
	return &Module{
		key:      key,
		id:       uuid.NewString(),
		services: make(map[reflect.Type]*ServiceEntry),
	}
}

// Key returns the module key.
func (m *Module) Key() reflect.Type { return m.key }

// ID returns the unique id assigned when the module was registered.
func (m *Module) ID() string { return m.id }

// Name returns the module key formatted for display.
func (m *Module) Name() string { return keyName(m.key) }

// Entry returns the entry registered under key.
func (m *Module) Entry(key reflect.Type) (*ServiceEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.services[key]
	return e, ok
}

// Keys returns the registered type-keys sorted by name.
func (m *Module) Keys() []reflect.Type {
	m.mu.RLock()
	keys := make([]reflect.Type, 0, len(m.services))
	for k := range m.services {
		keys = append(keys, k)
	}
	m.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Len returns the number of registered services.
func (m *Module) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.services)
}

func (m *Module) add(e *ServiceEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.services[e.key]; exists {
		return errors.DuplicateRegistration("service", keyName(e.key), m.Name())
	}
	e.module = m.key
	m.services[e.key] = e
	return nil
}

func (m *Module) remove(key reflect.Type) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.services[key]; !exists {
		return false
	}
	delete(m.services, key)
	return true
}
