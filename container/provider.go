package container

// ── Provider ──────────────────────────────────────────────────────────────────

// Provider registers a batch of related registrations into a container.
// It is the unit of modular wiring: a package exposes one Provider and the
// application installs it.
//
//	type CacheProvider struct{}
//
//	func (CacheProvider) Register(c *container.Container) error {
//	    return c.Register("app.cache", newCache,
//	        container.Config("cache.addr", "127.0.0.1:6379", config.FormatString))
//	}
type Provider interface {
	Register(c *Container) error
}

// Booter is an optional second phase. Boot runs after every installed
// provider has registered, so it is safe to resolve other registrations
// there.
type Booter interface {
	Boot(c *Container) error
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(c *Container) error

func (fn ProviderFunc) Register(c *Container) error { return fn(c) }

// Install registers all providers in order, then runs the Boot phase on
// those that implement Booter, in the same order. The first error aborts;
// registrations made before the failure stand.
func (c *Container) Install(providers ...Provider) error {
	for _, p := range providers {
		if p == nil {
			continue
		}
		if err := p.Register(c); err != nil {
			return err
		}
	}
	for _, p := range providers {
		b, ok := p.(Booter)
		if !ok {
			continue
		}
		if err := b.Boot(c); err != nil {
			return err
		}
	}
	return nil
}
