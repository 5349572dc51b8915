package di

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/tinyioc/errors"
	"github.com/kbukum/tinyioc/validation"
)

// Args holds the named arguments passed to a producer.
type Args map[string]any

// clone returns a shallow copy so producers cannot mutate the stored args.
func (a Args) clone() Args {
	if a == nil {
		return Args{}
	}
	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Config marks a producer parameter as the typed form of the entry's Args.
// Embed it in a struct; the args are decoded onto the struct's fields and
// validated with its `validate` tags.
//
//	type MailerConfig struct {
//	    di.Config
//	    Host string `mapstructure:"host" validate:"required,hostname"`
//	    Port int    `mapstructure:"port" validate:"min=1,max=65535"`
//	}
//
//	func NewMailer(cfg MailerConfig) *Mailer
type Config struct{}

// isConfigType reports whether t (or *t) is a struct embedding Config.
func isConfigType(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == configType {
			return true
		}
	}
	return false
}

// Decode decodes args onto target, a pointer to a struct. Keys that match no
// field are rejected.
func Decode(args Args, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "mapstructure",
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return errors.InvalidArgs(reflect.TypeOf(target).String(), err)
	}
	if err := decoder.Decode(map[string]any(args)); err != nil {
		return errors.InvalidArgs(reflect.TypeOf(target).String(), err)
	}
	return nil
}

// decodeConfig builds a value of type t (a Config struct or pointer to one)
// from args and validates it.
func decodeConfig(args Args, t reflect.Type) (reflect.Value, error) {
	isPtr := t.Kind() == reflect.Pointer
	st := t
	if isPtr {
		st = t.Elem()
	}
	ptr := reflect.New(st)
	if err := Decode(args, ptr.Interface()); err != nil {
		return reflect.Value{}, err
	}
	if err := validation.Validate(ptr.Interface()); err != nil {
		return reflect.Value{}, err
	}
	if isPtr {
		return ptr, nil
	}
	return ptr.Elem(), nil
}
