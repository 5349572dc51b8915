package di

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/tinyioc/errors"
	"github.com/kbukum/tinyioc/validation"
)

const (
	injectTag      = "di"
	injectTagValue = "inject"
)

// producer builds service values from either a function or a struct type.
type producer struct {
	name string
	out  reflect.Type

	fn     reflect.Value
	hasErr bool

	structType   reflect.Type
	injectFields []int
}

// newProducer validates the shape of p. Accepted shapes are functions
// returning T or (T, error), and the reflect.Type of a struct (or pointer to
// struct), which produces *T.
func newProducer(p any) (*producer, error) {
	if t, ok := p.(reflect.Type); ok {
		return newStructProducer(t)
	}

	fv := reflect.ValueOf(p)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, errors.InvalidProducer(fmt.Sprintf("%T", p), "must be a function or a struct type")
	}
	if fv.IsNil() {
		return nil, errors.InvalidProducer(fmt.Sprintf("%T", p), "function is nil")
	}

	ft := fv.Type()
	name := ft.String()
	if ft.IsVariadic() {
		return nil, errors.InvalidProducer(name, "variadic producers are not supported")
	}
	switch ft.NumOut() {
	case 1:
		if ft.Out(0) == errorType {
			return nil, errors.InvalidProducer(name, "must return a value")
		}
	case 2:
		if ft.Out(1) != errorType {
			return nil, errors.InvalidProducer(name, "second result must be error")
		}
	default:
		return nil, errors.InvalidProducer(name, "must return (T) or (T, error)")
	}

	return &producer{
		name:   name,
		out:    ft.Out(0),
		fn:     fv,
		hasErr: ft.NumOut() == 2,
	}, nil
}

func newStructProducer(t reflect.Type) (*producer, error) {
	if t == nil {
		return nil, errors.InvalidProducer("<nil>", "type is nil")
	}
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return nil, errors.InvalidProducer(t.String(), "type must be a struct")
	}

	var fields []int
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.Tag.Get(injectTag) != injectTagValue {
			continue
		}
		if !f.IsExported() {
			return nil, errors.InvalidProducer(st.String(), fmt.Sprintf("field %s is tagged for injection but unexported", f.Name))
		}
		fields = append(fields, i)
	}

	return &producer{
		name:         st.String(),
		out:          reflect.PointerTo(st),
		structType:   st,
		injectFields: fields,
	}, nil
}

// produce runs the producer for e. Panics are returned as errors.
func (p *producer) produce(ctx context.Context, c *Container, e *ServiceEntry) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("producer %s panicked: %v", p.name, r)
		}
	}()

	if p.structType != nil {
		return p.build(ctx, c, e)
	}

	ft := p.fn.Type()
	in := make([]reflect.Value, ft.NumIn())
	for i := range in {
		v, err := c.argument(ctx, ft.In(i), e)
		if err != nil {
			return nil, err
		}
		in[i] = v
	}

	out := p.fn.Call(in)
	if p.hasErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	value = out[0].Interface()
	if value == nil {
		return nil, fmt.Errorf("producer %s returned nil", p.name)
	}
	return value, nil
}

// build allocates the struct, decodes args onto it, fills injected fields
// and validates the result.
func (p *producer) build(ctx context.Context, c *Container, e *ServiceEntry) (any, error) {
	ptr := reflect.New(p.structType)
	if len(e.args) > 0 {
		if err := Decode(e.args, ptr.Interface()); err != nil {
			return nil, err
		}
	}

	for _, i := range p.injectFields {
		f := p.structType.Field(i)
		v, ok, err := c.injectValue(ctx, f.Type, e.module)
		if err != nil {
			return nil, err
		}
		if ok {
			ptr.Elem().Field(i).Set(v)
		}
	}

	if err := validation.Validate(ptr.Interface()); err != nil {
		return nil, err
	}
	return ptr.Interface(), nil
}

// argument supplies one producer parameter.
func (c *Container) argument(ctx context.Context, t reflect.Type, e *ServiceEntry) (reflect.Value, error) {
	switch {
	case t == contextType:
		return reflect.ValueOf(&ctx).Elem(), nil
	case t == argsType:
		return reflect.ValueOf(e.args.clone()), nil
	case t == containerType:
		return reflect.ValueOf(c), nil
	case isConfigType(t):
		return decodeConfig(e.args, t)
	}

	v, ok, err := c.injectValue(ctx, t, e.module)
	if err != nil {
		return reflect.Value{}, err
	}
	if !ok {
		return reflect.Zero(t), nil
	}
	return v, nil
}
