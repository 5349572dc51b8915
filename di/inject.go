package di

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/tinyioc/errors"
	"github.com/kbukum/tinyioc/logger"
)

// Inject wraps fn so that, on every call, parameters left at their zero
// value are resolved from the container. Non-zero arguments are passed
// through untouched, and parameters nothing is registered for stay zero.
// A From[M, T] parameter resolves T from module M. Variadic parameters are
// never injected. Inject panics if fn is not a function.
//
//	send := di.Inject(func(s Sender, to string) error { return s.Send(to) })
//	send(nil, "ops@example.com")        // Sender from the registry
//	send(fakeSender{}, "ops@example.com") // caller's Sender
func Inject[F any](fn F, opts ...InjectOption) F {
	fv := funcValue(fn, "Inject")
	ft := fv.Type()
	o := newInjectOptions(opts)

	wrapped := reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
		c := o.target()
		for _, err := range c.injectArgs(contextFrom(args), ft, args, o.module) {
			c.getLogger().Error("injection failed", logger.MergeWithError(logger.Fields(
				logger.FieldOperation, ft.String(),
			), err))
		}
		if ft.IsVariadic() {
			return fv.CallSlice(args)
		}
		return fv.Call(args)
	})
	return wrapped.Interface().(F)
}

// Invoke calls fn once with every parameter resolved from the container.
// fn's results are returned in order; a trailing error result is returned
// as the error instead.
func Invoke(fn any, opts ...InjectOption) ([]any, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, errors.InvalidProducer(fmt.Sprintf("%T", fn), "Invoke requires a function")
	}
	ft := fv.Type()
	o := newInjectOptions(opts)

	n := ft.NumIn()
	if ft.IsVariadic() {
		n--
	}
	args := make([]reflect.Value, n)
	for i := range args {
		args[i] = reflect.Zero(ft.In(i))
	}
	if errs := o.target().injectArgs(context.Background(), ft, args, o.module); len(errs) > 0 {
		return nil, errs[0]
	}

	out := fv.Call(args)
	results := make([]any, 0, len(out))
	for _, v := range out {
		results = append(results, v.Interface())
	}
	if last := ft.NumOut() - 1; last >= 0 && ft.Out(last) == errorType {
		err, _ := results[last].(error)
		return results[:last], err
	}
	return results, nil
}

// injectArgs replaces zero arguments with resolved values in place. The
// variadic tail, if any, is skipped. Errors are collected per parameter.
func (c *Container) injectArgs(ctx context.Context, ft reflect.Type, args []reflect.Value, module reflect.Type) []error {
	n := len(args)
	if ft.IsVariadic() {
		n--
	}

	var errs []error
	for i := 0; i < n; i++ {
		if !args[i].IsZero() {
			continue
		}
		v, ok, err := c.injectValue(ctx, ft.In(i), module)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			args[i] = v
		}
	}
	return errs
}

// injectValue resolves a value of type t from module. From[M, T] types
// resolve T from M and come back wrapped.
func (c *Container) injectValue(ctx context.Context, t reflect.Type, module reflect.Type) (reflect.Value, bool, error) {
	key := t
	override, isOverride := asOverride(t)
	if isOverride {
		key, module = override.overrideKey(), override.overrideModule()
	}

	value, found, err := c.ResolveContext(ctx, key, module)
	if err != nil || !found || value == nil {
		return reflect.Value{}, false, err
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(key) {
		return reflect.Value{}, false, nil
	}

	out := reflect.New(t).Elem()
	if isOverride {
		out.Field(0).Set(rv)
	} else {
		out.Set(rv)
	}
	return out, true, nil
}

// asOverride reports whether t is a From instantiation. Types that merely
// embed a From are resolved as themselves.
func asOverride(t reflect.Type) (moduleOverride, bool) {
	if t.Kind() != reflect.Struct || !t.Implements(overrideIface) {
		return nil, false
	}
	o := reflect.Zero(t).Interface().(moduleOverride)
	if o.overrideType() != t {
		return nil, false
	}
	return o, true
}

// contextFrom returns the first non-nil context.Context argument, or
// context.Background.
func contextFrom(args []reflect.Value) context.Context {
	for _, a := range args {
		if a.Type() == contextType && !a.IsNil() {
			return a.Interface().(context.Context)
		}
	}
	return context.Background()
}

func funcValue(fn any, marker string) reflect.Value {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		panic(fmt.Sprintf("di: %s requires a non-nil function, got %T", marker, fn))
	}
	return fv
}
