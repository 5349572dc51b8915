package di

import (
	"reflect"

	"github.com/kbukum/tinyioc/logger"
)

// Getter turns fn into a lookup of its first result type. The returned
// function ignores its arguments, except a context.Context, and returns the
// registered value or the zero value when nothing is registered. If F's last
// result is an error, producer failures are reported there; otherwise they
// are logged. If F has no results, fn is returned unchanged.
//
//	type Handler struct {
//	    Mailer func() *Mailer
//	}
//	h := Handler{Mailer: di.Getter(func() *Mailer { return nil })}
func Getter[F any](fn F, opts ...InjectOption) F {
	fv := funcValue(fn, "Getter")
	ft := fv.Type()
	if ft.NumOut() == 0 {
		return fn
	}
	o := newInjectOptions(opts)
	key := ft.Out(0)
	errIdx := -1
	if last := ft.NumOut() - 1; last > 0 && ft.Out(last) == errorType {
		errIdx = last
	}

	wrapped := reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
		out := make([]reflect.Value, ft.NumOut())
		for i := range out {
			out[i] = reflect.Zero(ft.Out(i))
		}

		c := o.target()
		v, ok, err := c.injectValue(contextFrom(args), key, o.module)
		switch {
		case err != nil && errIdx >= 0:
			out[errIdx] = reflect.ValueOf(&err).Elem()
		case err != nil:
			c.getLogger().Error("getter failed", logger.MergeWithError(logger.Fields(
				logger.FieldService, keyName(key),
			), err))
		case ok:
			out[0] = v
		}
		return out
	})
	return wrapped.Interface().(F)
}
