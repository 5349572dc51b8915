package di

import "fmt"

type provisionKind int

const (
	provideInstance provisionKind = iota
	provideSingleton
	provideTransient
)

// Provision is one entry of a module's Provides list.
type Provision struct {
	kind  provisionKind
	value any
	opts  []RegisterOption
}

// ProvideInstance provides a ready value, as RegisterInstance.
func ProvideInstance(instance any, opts ...RegisterOption) Provision {
	return Provision{kind: provideInstance, value: instance, opts: opts}
}

// ProvideSingleton provides a Singleton producer.
func ProvideSingleton(producer any, opts ...RegisterOption) Provision {
	return Provision{kind: provideSingleton, value: producer, opts: opts}
}

// ProvideTransient provides a Transient producer.
func ProvideTransient(producer any, opts ...RegisterOption) Provision {
	return Provision{kind: provideTransient, value: producer, opts: opts}
}

// Provider is implemented by module-definition types that register services
// when declared.
type Provider interface {
	Provides() []Provision
}

// DeclareModule registers module M, then registers every provision M lists
// into it, in order. The first failure is returned and later provisions are
// skipped. Only OnContainer is read from opts.
func DeclareModule[M any](opts ...RegisterOption) error {
	c := newRegisterOptions(Singleton, opts).target()
	key := ModuleOf[M]()
	if err := c.RegisterModule(key); err != nil {
		return err
	}

	var def M
	provider, ok := any(def).(Provider)
	if !ok {
		provider, ok = any(&def).(Provider)
	}
	if !ok {
		return nil
	}

	for _, p := range provider.Provides() {
		popts := append(append([]RegisterOption{}, p.opts...), InModule(key))
		var err error
		switch p.kind {
		case provideInstance:
			err = c.RegisterInstance(p.value, popts...)
		case provideSingleton:
			err = c.RegisterSingleton(p.value, popts...)
		case provideTransient:
			err = c.RegisterTransient(p.value, popts...)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// MustDeclareModule is DeclareModule panicking on failure.
func MustDeclareModule[M any](opts ...RegisterOption) {
	if err := DeclareModule[M](opts...); err != nil {
		panic(fmt.Sprintf("di: declare module %s: %v", keyName(ModuleOf[M]()), err))
	}
}
