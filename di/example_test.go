package di_test

import (
	"fmt"

	"github.com/kbukum/tinyioc/di"
	"github.com/kbukum/tinyioc/logger"
)

type Greeter interface {
	Greet(name string) string
}

type politeGreeter struct{ prefix string }

func (g *politeGreeter) Greet(name string) string { return g.prefix + ", " + name }

type GreeterConfig struct {
	di.Config
	Prefix string `mapstructure:"prefix" validate:"required"`
}

type Spanish struct{}

func (Spanish) Provides() []di.Provision {
	return []di.Provision{
		di.ProvideInstance(&politeGreeter{prefix: "Hola"}, di.As[Greeter]()),
	}
}

func Example() {
	c := di.New(di.WithLogger(logger.NewNop()))

	_ = c.RegisterSingleton(func(cfg GreeterConfig) *politeGreeter {
		return &politeGreeter{prefix: cfg.Prefix}
	}, di.As[Greeter](), di.WithArgs(di.Args{"prefix": "Hello"}))
	_ = di.DeclareModule[Spanish](di.OnContainer(c))

	greet := di.Inject(func(g Greeter, es di.From[Spanish, Greeter], name string) string {
		return g.Greet(name) + " / " + es.Value.Greet(name)
	}, di.FromContainer(c))

	fmt.Println(greet(nil, di.From[Spanish, Greeter]{}, "Ada"))
	// Output: Hello, Ada / Hola, Ada
}

func ExampleGetter() {
	c := di.New(di.WithLogger(logger.NewNop()))
	_ = c.RegisterInstance(&politeGreeter{prefix: "Hi"})

	greeter := di.Getter(func() *politeGreeter { return nil }, di.FromContainer(c))
	fmt.Println(greeter().Greet("Grace"))
	// Output: Hi, Grace
}

func ExampleResolve() {
	c := di.New(di.WithLogger(logger.NewNop()))

	_, err := di.Resolve[Greeter](c)
	fmt.Println(err)
	// Output: SERVICE_NOT_FOUND: no service registered for di_test.Greeter in di.GlobalModule
}
