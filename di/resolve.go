package di

import (
	"fmt"
	"reflect"

	"github.com/kbukum/tinyioc/errors"
)

// MustResolve resolves T with type safety, panics on error.
// Use this in wiring code where a missing dependency is a bug.
//
// Example:
//
//	store := di.MustResolve[*InvoiceStore](c, di.ModuleOf[Billing]())
func MustResolve[T any](c *Container, module ...reflect.Type) T {
	result, err := Resolve[T](c, module...)
	if err != nil {
		panic(fmt.Sprintf("di: %v", err))
	}
	return result
}

// Resolve resolves T from module (Global if omitted). Unlike
// Container.Resolve, absence is an error.
//
// Example:
//
//	sender, err := di.Resolve[Sender](c)
//	if err != nil {
//	    return fmt.Errorf("failed to get sender: %w", err)
//	}
func Resolve[T any](c *Container, module ...reflect.Type) (T, error) {
	var zero T
	key, mod := TypeOf[T](), moduleArg(module)

	instance, found, err := c.Resolve(key, mod)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, errors.ServiceNotFound(keyName(key), keyName(mod))
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: service %s is %T, expected %s", keyName(key), instance, keyName(key))
	}
	return result, nil
}

// TryResolve resolves T, returns zero value and false if not found or the
// producer fails. Use this when a dependency is optional.
//
// Example:
//
//	if metrics, ok := di.TryResolve[MetricsClient](c); ok {
//	    metrics.RecordEvent(...)
//	}
func TryResolve[T any](c *Container, module ...reflect.Type) (T, bool) {
	result, err := Resolve[T](c, module...)
	return result, err == nil
}
