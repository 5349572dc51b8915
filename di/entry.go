package di

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// ServiceEntry records how a registered service is produced.
// A Transient entry never caches; a Singleton caches its first successful
// result for as long as it stays registered.
type ServiceEntry struct {
	id       string
	key      reflect.Type
	module   reflect.Type
	lifetime Lifetime
	producer *producer
	args     Args

	mu          sync.RWMutex
	instance    any
	initialized bool
}

func newEntry(key reflect.Type, lifetime Lifetime, p *producer, args Args) *ServiceEntry {
	return &ServiceEntry{
		id:       uuid.NewString(),
		key:      key,
		lifetime: lifetime,
		producer: p,
		args:     args,
	}
}

func newInstanceEntry(key reflect.Type, instance any) *ServiceEntry {
	e := newEntry(key, Singleton, nil, nil)
	e.instance = instance
	e.initialized = true
	return e
}

// ID returns the unique id assigned at registration.
func (e *ServiceEntry) ID() string { return e.id }

// Key returns the type-key the entry is registered under.
func (e *ServiceEntry) Key() reflect.Type { return e.key }

// Module returns the key of the module owning the entry.
func (e *ServiceEntry) Module() reflect.Type { return e.module }

// Lifetime returns the entry's lifetime.
func (e *ServiceEntry) Lifetime() Lifetime { return e.lifetime }

// Args returns a copy of the producer arguments.
func (e *ServiceEntry) Args() Args { return e.args.clone() }

// Initialized reports whether a singleton instance is cached.
func (e *ServiceEntry) Initialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.initialized
}

func (e *ServiceEntry) cached() (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.instance, e.initialized
}
