package di

import (
	"reflect"
	"sync/atomic"

	"github.com/kbukum/tinyioc/logger"
)

var defaultContainer atomic.Pointer[Container]

// Default returns the process-wide container, creating it on first use.
func Default() *Container {
	if c := defaultContainer.Load(); c != nil {
		return c
	}
	defaultContainer.CompareAndSwap(nil, New())
	return defaultContainer.Load()
}

// SetDefault replaces the process-wide container.
func SetDefault(c *Container) {
	defaultContainer.Store(c)
}

// ResetDefault drops the process-wide container; the next Default call
// creates an empty one. Intended for tests.
func ResetDefault() {
	defaultContainer.Store(nil)
}

// RegisterInstance registers instance on the default container, or the one
// given with OnContainer.
func RegisterInstance(instance any, opts ...RegisterOption) error {
	return newRegisterOptions(Singleton, opts).target().RegisterInstance(instance, opts...)
}

// RegisterSingleton registers a Singleton producer on the default container.
func RegisterSingleton(producer any, opts ...RegisterOption) error {
	return newRegisterOptions(Singleton, opts).target().RegisterSingleton(producer, opts...)
}

// RegisterTransient registers a Transient producer on the default container.
func RegisterTransient(producer any, opts ...RegisterOption) error {
	return newRegisterOptions(Transient, opts).target().RegisterTransient(producer, opts...)
}

// Unregister removes T from module (Global if omitted) of the default container.
func Unregister[T any](module ...reflect.Type) {
	Default().Unregister(TypeOf[T](), moduleArg(module))
}

// UnregisterModule removes module M from the default container.
func UnregisterModule[M any]() {
	Default().UnregisterModule(ModuleOf[M]())
}

// Get resolves T from the default container. Producer failures are logged
// and reported as not found.
func Get[T any](opts ...InjectOption) (T, bool) {
	var zero T
	o := newInjectOptions(opts)
	c := o.target()

	value, found, err := c.Resolve(TypeOf[T](), o.module)
	if err != nil {
		c.getLogger().Error("get failed", logger.MergeWithError(logger.Fields(
			logger.FieldModule, keyName(o.module),
			logger.FieldService, keyName(TypeOf[T]()),
		), err))
		return zero, false
	}
	if !found {
		return zero, false
	}
	result, ok := value.(T)
	return result, ok
}

func moduleArg(module []reflect.Type) reflect.Type {
	if len(module) > 0 && module[0] != nil {
		return module[0]
	}
	return Global
}
