package di

import (
	"context"
	"reflect"
)

// GlobalModule is the module every container starts with. Registrations and
// lookups against an unknown module land here.
type GlobalModule struct{}

// Global is the module key of GlobalModule.
var Global = ModuleOf[GlobalModule]()

var (
	contextType   = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType     = reflect.TypeOf((*error)(nil)).Elem()
	argsType      = reflect.TypeOf(Args(nil))
	containerType = reflect.TypeOf((*Container)(nil))
	configType    = reflect.TypeOf(Config{})
	overrideIface = reflect.TypeOf((*moduleOverride)(nil)).Elem()
)

// TypeOf returns the type-key of T. Interface types are keyed as themselves.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// ModuleOf returns the module key of the module-definition type M.
func ModuleOf[M any]() reflect.Type {
	return TypeOf[M]()
}

// From is a parameter type that pins one injected parameter to module M,
// regardless of the module the surrounding Inject is bound to.
//
//	run := di.Inject(func(primary *DB, replica di.From[Replica, *DB]) { ... })
type From[M any, T any] struct {
	Value T
}

// moduleOverride is implemented by From. Structs embedding a From get the
// methods promoted, so overrideType reports the From type itself.
type moduleOverride interface {
	overrideModule() reflect.Type
	overrideKey() reflect.Type
	overrideType() reflect.Type
}

func (From[M, T]) overrideModule() reflect.Type { return ModuleOf[M]() }
func (From[M, T]) overrideKey() reflect.Type    { return TypeOf[T]() }
func (From[M, T]) overrideType() reflect.Type   { return TypeOf[From[M, T]]() }

// keyName formats a type-key for logs, metrics and errors.
func keyName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
