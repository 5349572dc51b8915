package di

import "fmt"

// Injectable registers producer and returns it unchanged, so it can still be
// called directly. It is meant for package-level declarations and panics if
// the registration fails.
//
//	var NewMailer = di.Injectable(func(cfg MailerConfig) *Mailer { ... },
//	    di.WithArgs(di.Args{"host": "smtp.internal"}))
func Injectable[P any](producer P, opts ...RegisterOption) P {
	if err := TryInjectable(producer, opts...); err != nil {
		panic(fmt.Sprintf("di: Injectable: %v", err))
	}
	return producer
}

// TryInjectable is Injectable returning the registration error.
func TryInjectable(producer any, opts ...RegisterOption) error {
	return newRegisterOptions(Singleton, opts).target().RegisterProducer(producer, opts...)
}
