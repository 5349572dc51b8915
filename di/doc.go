// Package di provides a type-keyed service registry with module scopes.
//
// Services are registered under a reflect.Type key, either as a ready
// instance or as a producer that builds the value on demand. Singleton
// entries are produced once, lazily, and cached; Transient entries are
// produced on every resolution. Every registration lives in a module;
// unknown modules fall back to the always-present Global module.
//
// # Registration
//
//	c := di.New()
//	_ = c.RegisterInstance(cfg)
//	_ = c.RegisterSingleton(NewMailer, di.As[Sender]())
//	_ = c.RegisterTransient(di.TypeOf[Request](), di.WithArgs(di.Args{"timeout": "5s"}))
//
// # Resolution
//
//	sender, err := di.Resolve[Sender](c)
//
// # Markers
//
// Inject wraps a function so that parameters left at their zero value are
// resolved from the registry. Getter turns a function into a lookup keyed
// by its first result type. Injectable registers a producer at package
// initialisation and returns it unchanged.
//
//	var send = di.Inject(func(s Sender, to string) error { return s.Send(to) })
//	_ = send(nil, "ops@example.com")
//
// # Modules
//
//	type Billing struct{}
//
//	func (Billing) Provides() []di.Provision {
//	    return []di.Provision{di.ProvideSingleton(NewInvoiceStore)}
//	}
//
//	di.MustDeclareModule[Billing]()
//	store, _ := di.Resolve[*InvoiceStore](di.Default(), di.ModuleOf[Billing]())
package di
