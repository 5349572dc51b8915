package di

import (
	"testing"

	"github.com/kbukum/tinyioc/errors"
)

type Billing struct{}

func (Billing) Provides() []Provision {
	return []Provision{
		ProvideInstance(&smtpSender{host: "billing"}, As[Sender]()),
		ProvideSingleton(func(s Sender) *mailer { return &mailer{sender: s} }),
		ProvideTransient(cycler()),
	}
}

type Reporting struct{}

func (*Reporting) Provides() []Provision {
	return []Provision{ProvideSingleton(func() *mailer { return &mailer{host: "reports"} })}
}

type Broken struct{}

func (Broken) Provides() []Provision {
	return []Provision{
		ProvideInstance(&smtpSender{}),
		ProvideInstance(&smtpSender{}),
		ProvideTransient(cycler()),
	}
}

type Empty struct{}

func TestDeclareModule(t *testing.T) {
	c := newTestContainer()
	if err := DeclareModule[Billing](OnContainer(c)); err != nil {
		t.Fatalf("DeclareModule failed: %v", err)
	}

	billing := ModuleOf[Billing]()
	m := mustModule(t, c, billing)
	if m.Len() != 3 {
		t.Fatalf("expected 3 provisions, got %d", m.Len())
	}

	sender := MustResolve[Sender](c, billing)
	if got := MustResolve[*mailer](c, billing); got.sender != sender {
		t.Error("expected module producer to resolve dependencies from its own module")
	}
	e, _ := m.Entry(TypeOf[*number]())
	if e.Lifetime() != Transient {
		t.Errorf("expected transient provision, got %v", e.Lifetime())
	}
	if _, found, _ := c.Resolve(TypeOf[Sender](), Global); found {
		t.Error("expected provisions to stay out of global")
	}
}

func TestDeclareModulePointerReceiver(t *testing.T) {
	c := newTestContainer()
	MustDeclareModule[Reporting](OnContainer(c))

	if got := MustResolve[*mailer](c, ModuleOf[Reporting]()); got.host != "reports" {
		t.Errorf("expected reporting mailer, got %q", got.host)
	}
}

func TestDeclareModuleWithoutProvisions(t *testing.T) {
	c := newTestContainer()
	if err := DeclareModule[Empty](OnContainer(c)); err != nil {
		t.Fatalf("DeclareModule failed: %v", err)
	}
	if m := mustModule(t, c, ModuleOf[Empty]()); m.Len() != 0 {
		t.Errorf("expected empty module, got %d entries", m.Len())
	}
}

func TestDeclareModuleTwice(t *testing.T) {
	c := newTestContainer()
	_ = DeclareModule[Empty](OnContainer(c))
	err := DeclareModule[Empty](OnContainer(c))
	if !errors.HasCode(err, errors.ErrCodeDuplicateRegistration) {
		t.Errorf("expected DUPLICATE_REGISTRATION, got %v", err)
	}
}

func TestDeclareModuleStopsAtFirstFailure(t *testing.T) {
	c := newTestContainer()
	err := DeclareModule[Broken](OnContainer(c))
	if !errors.HasCode(err, errors.ErrCodeDuplicateRegistration) {
		t.Fatalf("expected DUPLICATE_REGISTRATION, got %v", err)
	}
	m := mustModule(t, c, ModuleOf[Broken]())
	if _, ok := m.Entry(TypeOf[*number]()); ok {
		t.Error("expected later provisions to be skipped")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected MustDeclareModule to panic")
		}
	}()
	MustDeclareModule[Broken](OnContainer(newTestContainer()))
}

func TestLateModuleDeclaration(t *testing.T) {
	c := newTestContainer()
	tenant := ModuleOf[Tenant]()

	// Registered before the module exists, so it lands in global.
	_ = c.RegisterInstance(&smtpSender{host: "early"}, InModule(tenant))
	_ = c.RegisterModule(tenant)
	_ = c.RegisterInstance(&smtpSender{host: "late"}, InModule(tenant))

	if s := MustResolve[*smtpSender](c); s.host != "early" {
		t.Errorf("expected early registration in global, got %q", s.host)
	}
	if s := MustResolve[*smtpSender](c, tenant); s.host != "late" {
		t.Errorf("expected late registration in tenant, got %q", s.host)
	}
}

func TestModuleIntrospection(t *testing.T) {
	c := newTestContainer()
	_ = DeclareModule[Billing](OnContainer(c))
	m := mustModule(t, c, ModuleOf[Billing]())

	if m.ID() == "" {
		t.Error("expected module id")
	}
	if m.Name() != "di.Billing" {
		t.Errorf("expected name di.Billing, got %q", m.Name())
	}
	keys := m.Keys()
	if len(keys) != 3 || keys[0] != TypeOf[*mailer]() {
		t.Errorf("expected sorted keys, got %v", keys)
	}
	e, ok := m.Entry(TypeOf[Sender]())
	if !ok || e.Module() != ModuleOf[Billing]() || e.Key() != TypeOf[Sender]() || e.ID() == "" {
		t.Errorf("unexpected entry %+v", e)
	}
}
