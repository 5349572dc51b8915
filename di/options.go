package di

import (
	"reflect"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/tinyioc/logger"
	"github.com/kbukum/tinyioc/observability"
)

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger the container writes registry events to.
func WithLogger(l *logger.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.log = l.WithComponent(logComponent)
		}
	}
}

// WithTracer sets the tracer used for "di.produce" spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Container) { c.tracer = t }
}

// WithMetrics sets the registry metric instruments. Nil disables metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Container) { c.metrics = m }
}

// RegisterOption configures a single registration.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	module      reflect.Type
	as          reflect.Type
	lifetime    Lifetime
	lifetimeSet bool
	args        Args
	configName  string
	container   *Container
}

func newRegisterOptions(lifetime Lifetime, opts []RegisterOption) *registerOptions {
	o := &registerOptions{module: Global, lifetime: lifetime}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// InModule registers into the module with the given key.
func InModule(module reflect.Type) RegisterOption {
	return func(o *registerOptions) { o.module = module }
}

// As registers the service under T instead of its own type.
func As[T any]() RegisterOption {
	return AsType(TypeOf[T]())
}

// AsType registers the service under key instead of its own type.
func AsType(key reflect.Type) RegisterOption {
	return func(o *registerOptions) { o.as = key }
}

// WithLifetime sets the lifetime of a producer registration.
func WithLifetime(l Lifetime) RegisterOption {
	return func(o *registerOptions) {
		o.lifetime = l
		o.lifetimeSet = true
	}
}

// WithArgs sets the named arguments passed to the producer. The map is
// copied.
func WithArgs(args Args) RegisterOption {
	return func(o *registerOptions) { o.args = args.clone() }
}

// WithConfigArgs takes the producer arguments from the services section of
// the container's settings under name. Explicit WithArgs keys win. A
// "lifetime" key sets the lifetime when WithLifetime is not given.
func WithConfigArgs(name string) RegisterOption {
	return func(o *registerOptions) { o.configName = name }
}

// OnContainer targets c instead of the default container. Only markers and
// module declarations consult it.
func OnContainer(c *Container) RegisterOption {
	return func(o *registerOptions) { o.container = c }
}

func (o *registerOptions) target() *Container {
	if o.container != nil {
		return o.container
	}
	return Default()
}

// InjectOption configures Inject, Invoke and Getter.
type InjectOption func(*injectOptions)

type injectOptions struct {
	module    reflect.Type
	container *Container
}

func newInjectOptions(opts []InjectOption) *injectOptions {
	o := &injectOptions{module: Global}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FromContainer resolves against c instead of the default container.
func FromContainer(c *Container) InjectOption {
	return func(o *injectOptions) { o.container = c }
}

// InjectModule binds resolution to the module with the given key.
func InjectModule(module reflect.Type) InjectOption {
	return func(o *injectOptions) { o.module = module }
}

// target is evaluated per call so a reset default container is picked up.
func (o *injectOptions) target() *Container {
	if o.container != nil {
		return o.container
	}
	return Default()
}
