package container

import (
	"reflect"
)

// ── Dependency descriptors ────────────────────────────────────────────────────

// Dependency describes how to obtain one constructor argument at resolution
// time. The set of variants is closed: Ref/Of (path lookup), Config (config
// provider lookup), Func (callback), Group (tagged factories) and Value
// (literal). Each registered dependency occupies exactly one positional
// argument slot, in declaration order.
type Dependency interface {
	// resolve produces the argument value against the owning container.
	resolve(c *Container) (any, error)
}

// ── Ref / Of ──────────────────────────────────────────────────────────────────

// RefDependency resolves a constructor argument by namespace path.
//
// By default the target's memoized instance is used. Fresh() switches to a
// brand-new instance per resolution, and Args() forwards extra constructor
// arguments to the target:
//
//	c.Register("app.mailer", newMailer,
//	    container.Ref("app.transport"),              // shared instance
//	    container.Ref("app.queue").Fresh(),          // new instance each build
//	    container.Ref("app.codec").Args("json"),     // extra ctor args
//	)
type RefDependency struct {
	path  string
	fresh bool
	args  []any
}

// Ref resolves the dependency registered at an explicit path.
func Ref(path string) *RefDependency {
	return &RefDependency{path: path}
}

// Of resolves the dependency registered under v's type key (see TypeKey).
//
//	container.Of((*Mailer)(nil))  // same as container.Ref(container.TypeKey((*Mailer)(nil)))
func Of(v any) *RefDependency {
	return &RefDependency{path: TypeKey(v)}
}

// Fresh makes the dependency resolve to a new instance on every build,
// bypassing the target factory's cache.
func (d *RefDependency) Fresh() *RefDependency {
	d.fresh = true
	return d
}

// Args forwards extra positional arguments to the target's constructor.
// They only take effect on the call that actually constructs the instance.
func (d *RefDependency) Args(extra ...any) *RefDependency {
	d.args = extra
	return d
}

func (d *RefDependency) resolve(c *Container) (any, error) {
	f, err := c.Lookup(d.path)
	if err != nil {
		return nil, err
	}
	if d.fresh {
		return f.Build(d.args...)
	}
	return f.Instance(d.args...)
}

// ── Config ────────────────────────────────────────────────────────────────────

// ConfigProvider is the narrow contract the single config-provider
// registration must satisfy. The container never interprets format; it is a
// caller-defined tag passed through to the provider untouched (the config
// package defines the conventional tags).
type ConfigProvider interface {
	Get(name, placeholder, format string) (any, error)
}

type configDependency struct {
	name        string
	placeholder string
	format      string
}

// Config resolves a constructor argument by asking the registered config
// provider for a value. placeholder is the fallback the provider should use
// when the name is absent.
//
//	c.Register("app.server", newServer,
//	    container.Config("server.port", "8000", config.FormatInt),
//	)
func Config(name, placeholder, format string) Dependency {
	return configDependency{name: name, placeholder: placeholder, format: format}
}

func (d configDependency) resolve(c *Container) (any, error) {
	f := c.configFactory()
	if f == nil {
		return nil, ErrNoConfigProvider
	}
	inst, err := f.Instance()
	if err != nil {
		return nil, err
	}
	provider, ok := inst.(ConfigProvider)
	if !ok {
		return nil, InvalidConfigProviderError{Path: f.Path(), Got: typeName(inst)}
	}
	// Provider errors propagate untouched.
	return provider.Get(d.name, d.placeholder, d.format)
}

// ── Func ──────────────────────────────────────────────────────────────────────

type funcDependency struct {
	fn func(c *Container) (any, error)
}

// Func resolves a constructor argument by invoking a callback against the
// container. The return value is used as-is and is never cached on its own;
// only the enclosing factory's instance is memoized. Callback errors
// propagate untouched.
//
//	container.Func(func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[*config.Map](c, "app.config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return newDriver(cfg), nil
//	})
func Func(fn func(c *Container) (any, error)) Dependency {
	return funcDependency{fn: fn}
}

func (d funcDependency) resolve(c *Container) (any, error) {
	if d.fn == nil {
		return nil, ErrNilCallback
	}
	return d.fn(c)
}

// ── Group ─────────────────────────────────────────────────────────────────────

type groupDependency struct {
	name string
}

// Group resolves a constructor argument to the ordered []*ObjectFactory of
// every registration tagged with the group name. Members are handed over as
// factories, not instances, so the receiver decides when (and whether) each
// one is built.
func Group(name string) Dependency {
	return groupDependency{name: name}
}

func (d groupDependency) resolve(c *Container) (any, error) {
	return c.Tagged(d.name), nil
}

// ── Value ─────────────────────────────────────────────────────────────────────

type valueDependency struct {
	v any
}

// Value resolves a constructor argument to a literal, pre-built value.
func Value(v any) Dependency {
	return valueDependency{v: v}
}

func (d valueDependency) resolve(*Container) (any, error) {
	return d.v, nil
}

// ── Type helpers ──────────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a stable
// namespace path when registering by type identity.
//
//	key := container.TypeKey((*Mailer)(nil))  // "github.com/acme/app/mail.Mailer"
//	c.Register(key, newMailer)
//	m, err := container.Resolve[*mail.Mailer](c, key)
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
