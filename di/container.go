package di

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/tinyioc/config"
	"github.com/kbukum/tinyioc/errors"
	"github.com/kbukum/tinyioc/logger"
	"github.com/kbukum/tinyioc/observability"
)

// logComponent names the container's logger component.
const logComponent = "di"

// Container holds the module table. The Global module is always present.
type Container struct {
	mu      sync.RWMutex
	modules map[reflect.Type]*Module

	settings *config.Settings
	log      *logger.Logger
	tracer   trace.Tracer
	metrics  *observability.Metrics
}

// RegistrationInfo describes a registered service for introspection.
type RegistrationInfo struct {
	ID          string
	Key         reflect.Type
	Module      reflect.Type
	Lifetime    Lifetime
	Initialized bool
}

// New creates a container holding only the Global module.
func New(opts ...Option) *Container {
	c := &Container{
		modules: make(map[reflect.Type]*Module),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.modules[Global] = newModule(Global)
	c.metrics.RecordModule(context.Background(), 1)
	return c
}

// NewFromSettings creates a container configured from loaded settings. The
// settings are registered as an instance in the Global module, and
// WithConfigArgs registrations read their args from Settings.Services.
func NewFromSettings(s *config.Settings, opts ...Option) (*Container, error) {
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	base := []Option{WithLogger(logger.New(&s.Logging, s.Base.Name))}
	if s.Telemetry.Enabled {
		metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
		if err != nil {
			return nil, err
		}
		base = append(base,
			WithMetrics(metrics),
			WithTracer(observability.Tracer(observability.InstrumentationName)),
		)
	}

	c := New(append(base, opts...)...)
	c.settings = s
	if err := c.RegisterInstance(s); err != nil {
		return nil, err
	}
	return c, nil
}

// getLogger returns the container logger, or the named "di" logger.
func (c *Container) getLogger() *logger.Logger {
	if c.log != nil {
		return c.log
	}
	return logger.Get(logComponent)
}

// module returns the module for key, falling back to Global when unknown.
func (c *Container) module(key reflect.Type) *Module {
	c.mu.RLock()
	m, ok := c.modules[key]
	global := c.modules[Global]
	c.mu.RUnlock()

	if ok {
		return m
	}
	if key != nil {
		c.getLogger().Debug("unknown module, using global", logger.Fields(logger.FieldModule, keyName(key)))
	}
	return global
}

// RegisterInstance registers a ready value as a Singleton. The key is the
// value's dynamic type unless As is given.
func (c *Container) RegisterInstance(instance any, opts ...RegisterOption) error {
	o := newRegisterOptions(Singleton, opts)
	if instance == nil {
		return errors.InvalidRegistration(keyName(o.as), "instance is nil")
	}

	key := reflect.TypeOf(instance)
	if o.as != nil {
		if !key.AssignableTo(o.as) {
			return errors.InvalidRegistration(keyName(o.as), keyName(key)+" does not implement it")
		}
		key = o.as
	}
	if o.lifetime != Singleton {
		return errors.InvalidRegistration(keyName(key), "an instance can only be registered as singleton")
	}

	return c.insert(o.module, newInstanceEntry(key, instance))
}

// RegisterProducer registers a producer, Singleton unless WithLifetime says
// otherwise. The key is the producer's result type unless As is given.
func (c *Container) RegisterProducer(producer any, opts ...RegisterOption) error {
	o := newRegisterOptions(Singleton, opts)
	p, err := newProducer(producer)
	if err != nil {
		return err
	}

	key := p.out
	if o.as != nil {
		if !key.AssignableTo(o.as) {
			return errors.InvalidRegistration(keyName(o.as), keyName(key)+" does not implement it")
		}
		key = o.as
	}
	args, err := c.argsFor(o)
	if err != nil {
		return errors.InvalidRegistration(keyName(key), err.Error())
	}
	if o.lifetime != Singleton && o.lifetime != Transient {
		return errors.InvalidRegistration(keyName(key), "unknown lifetime "+o.lifetime.String())
	}

	return c.insert(o.module, newEntry(key, o.lifetime, p, args))
}

// RegisterSingleton registers a producer with the Singleton lifetime.
func (c *Container) RegisterSingleton(producer any, opts ...RegisterOption) error {
	return c.RegisterProducer(producer, append(opts, WithLifetime(Singleton))...)
}

// RegisterTransient registers a producer with the Transient lifetime.
func (c *Container) RegisterTransient(producer any, opts ...RegisterOption) error {
	return c.RegisterProducer(producer, append(opts, WithLifetime(Transient))...)
}

// argsFor merges configured service args under the explicit ones. A
// configured "lifetime" key selects the lifetime unless WithLifetime was given.
func (c *Container) argsFor(o *registerOptions) (Args, error) {
	if o.configName == "" || c.settings == nil {
		return o.args.clone(), nil
	}
	configured := c.settings.ServiceArgs(o.configName)
	merged := make(Args, len(configured)+len(o.args))
	for k, v := range configured {
		if k != lifetimeKey {
			merged[k] = v
			continue
		}
		s, _ := v.(string)
		l, err := ParseLifetime(s)
		if err != nil {
			return nil, err
		}
		if !o.lifetimeSet {
			o.lifetime = l
		}
	}
	for k, v := range o.args {
		merged[k] = v
	}
	return merged, nil
}

func (c *Container) insert(module reflect.Type, e *ServiceEntry) error {
	m := c.module(module)
	if err := m.add(e); err != nil {
		return err
	}

	c.getLogger().Debug("service registered", logger.Fields(
		logger.FieldModule, m.Name(),
		logger.FieldService, keyName(e.key),
		logger.FieldLifetime, e.lifetime.String(),
		logger.FieldEntryID, e.id,
	))
	c.metrics.RecordRegistration(context.Background(), m.Name(), 1)
	return nil
}

// Unregister removes the entry for key from module. Absent keys are ignored.
func (c *Container) Unregister(key, module reflect.Type) {
	m := c.module(module)
	if !m.remove(key) {
		return
	}
	c.getLogger().Debug("service unregistered", logger.Fields(
		logger.FieldModule, m.Name(),
		logger.FieldService, keyName(key),
	))
	c.metrics.RecordRegistration(context.Background(), m.Name(), -1)
}

// Resolve returns the service registered under key in module. found is
// false when nothing is registered; err is set when the producer fails.
func (c *Container) Resolve(key, module reflect.Type) (value any, found bool, err error) {
	return c.ResolveContext(context.Background(), key, module)
}

// ResolveContext is Resolve with a context handed to producers. Producers
// that resolve further services must pass on the ctx they receive: cycles
// are detected along that chain only. A cycle reached through a fresh
// context, or split across goroutines that each hold one singleton of the
// cycle, blocks on the singleton locks.
func (c *Container) ResolveContext(ctx context.Context, key, module reflect.Type) (any, bool, error) {
	m := c.module(module)
	e, ok := m.Entry(key)
	if !ok {
		c.metrics.RecordResolve(ctx, m.Name(), keyName(key), observability.OutcomeAbsent)
		return nil, false, nil
	}

	value, outcome, err := c.instance(ctx, e)
	c.metrics.RecordResolve(ctx, m.Name(), keyName(key), outcome)
	return value, true, err
}

// instance returns the cached singleton or runs the producer. Concurrent
// first resolutions of a singleton run the producer once.
func (c *Container) instance(ctx context.Context, e *ServiceEntry) (any, string, error) {
	// The cycle check precedes the cache read: a singleton being produced
	// holds its own lock.
	if err := checkCycle(ctx, e); err != nil {
		return nil, observability.OutcomeFailed, err
	}
	if v, ok := e.cached(); ok {
		return v, observability.OutcomeCached, nil
	}

	if e.lifetime == Transient {
		v, err := c.produce(ctx, e)
		if err != nil {
			return nil, observability.OutcomeFailed, err
		}
		return v, observability.OutcomeProduced, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Double-check pattern
	if e.initialized {
		return e.instance, observability.OutcomeCached, nil
	}

	start := time.Now()
	v, err := c.produce(ctx, e)
	if err != nil {
		return nil, observability.OutcomeFailed, err
	}
	e.instance = v
	e.initialized = true

	c.getLogger().WithContext(ctx).Debug("singleton instantiated", logger.Fields(
		logger.FieldModule, keyName(e.module),
		logger.FieldService, keyName(e.key),
		logger.FieldEntryID, e.id,
	), logger.DurationFields("produce", time.Since(start)))
	return v, observability.OutcomeProduced, nil
}

func (c *Container) produce(ctx context.Context, e *ServiceEntry) (any, error) {
	module, service := keyName(e.module), keyName(e.key)

	ctx = withProducing(ctx, e)
	ctx, op := observability.StartProduce(ctx, c.tracer, c.metrics, module, service, e.lifetime.String())
	v, err := e.producer.produce(ctx, c, e)
	op.End(err)

	if err != nil {
		log := c.getLogger().WithContext(ctx).WithFields(logger.Fields(
			logger.FieldModule, module,
			logger.FieldService, service,
			logger.FieldLifetime, e.lifetime.String(),
		))
		log.Error("producer failed", logger.MergeWithError(nil, err))
		return nil, errors.ProducerFailed(service, module, err)
	}
	return v, nil
}

// RegisterModule creates an empty module under key.
func (c *Container) RegisterModule(key reflect.Type) error {
	if key == nil {
		return errors.InvalidRegistration("<nil>", "module key is nil")
	}

	c.mu.Lock()
	if _, exists := c.modules[key]; exists {
		c.mu.Unlock()
		return errors.DuplicateRegistration("module", keyName(key), "")
	}
	m := newModule(key)
	c.modules[key] = m
	c.mu.Unlock()

	c.getLogger().Debug("module registered", logger.Fields(
		logger.FieldModule, m.Name(),
		logger.FieldEntryID, m.id,
	))
	c.metrics.RecordModule(context.Background(), 1)
	return nil
}

// UnregisterModule removes a module with all its entries. Absent modules are
// ignored and the Global module is never removed.
func (c *Container) UnregisterModule(key reflect.Type) {
	if key == Global {
		c.getLogger().Debug("global module cannot be unregistered")
		return
	}

	c.mu.Lock()
	m, exists := c.modules[key]
	delete(c.modules, key)
	c.mu.Unlock()

	if !exists {
		return
	}

	n := m.Len()
	c.getLogger().Debug("module unregistered", logger.Fields(
		logger.FieldModule, m.Name(),
		"services", n,
	))
	ctx := context.Background()
	c.metrics.RecordModule(ctx, -1)
	if n > 0 {
		c.metrics.RecordRegistration(ctx, m.Name(), -int64(n))
	}
}

// GetModule returns the module registered under key, without falling back
// to Global.
func (c *Container) GetModule(key reflect.Type) (*Module, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.modules[key]
	return m, ok
}

// Modules returns the registered module keys sorted by name.
func (c *Container) Modules() []reflect.Type {
	c.mu.RLock()
	keys := make([]reflect.Type, 0, len(c.modules))
	for k := range c.modules {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Registrations returns info about all registered services, ordered by
// module then key.
func (c *Container) Registrations() []RegistrationInfo {
	var result []RegistrationInfo
	for _, mk := range c.Modules() {
		m, ok := c.GetModule(mk)
		if !ok {
			continue
		}
		for _, key := range m.Keys() {
			e, ok := m.Entry(key)
			if !ok {
				continue
			}
			result = append(result, RegistrationInfo{
				ID:          e.id,
				Key:         e.key,
				Module:      mk,
				Lifetime:    e.lifetime,
				Initialized: e.Initialized(),
			})
		}
	}
	return result
}
