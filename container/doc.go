// Package container provides a lazy, path-addressed dependency-injection
// registry.
//
// # Overview
//
// Callers register constructors against a hierarchical namespace (dotted or
// slash-delimited paths) together with dependency descriptors that declare
// how each constructor argument is obtained: by path lookup, from the single
// config provider, via a callback, from a named group, or as a literal.
// Nothing is built at registration time — the first Lookup + Instance walks
// the descriptor list, constructs recursively and memoizes the result.
//
// # Registering
//
//	c := container.New()
//
//	// Config provider — exactly one per container.
//	err := c.RegisterConfig("app.config", func(args ...any) (any, error) {
//	    return config.NewEnv(), nil
//	})
//
//	// A service with a config value and another service as dependencies.
//	err = c.Register("app.mailer", newMailer,
//	    container.Config("mail.host", "localhost", config.FormatString),
//	    container.Ref("app.transport"),
//	)
//
// # Resolving
//
//	f, err := c.Lookup("app.mailer")
//	m1, err := f.Instance()        // constructed once, cached
//	m2, err := f.Instance()        // same instance
//	m3, err := f.Build()           // always a fresh instance
//
//	// Generic (preferred — no type assertion required)
//	mailer, err := container.Resolve[*Mailer](c, "app.mailer")
//
// # Groups
//
//	_ = c.Add(container.Registration{Path: "report.cpu", Constructor: newCPU, Group: "reports"})
//	_ = c.Add(container.Registration{Path: "report.mem", Constructor: newMem, Group: "reports"})
//
//	// As a dependency: the constructor receives []*container.ObjectFactory
//	_ = c.Register("app.dashboard", newDashboard, container.Group("reports"))
//
//	// Or directly:
//	factories := c.Tagged("reports") // registration order
//
// # Merging
//
//	base := container.New()
//	override := container.New()
//	// ... register into both ...
//	err := base.Update(override) // paths in override win
//
// # Concurrency
//
// Containers and factories are safe for concurrent use. Each factory builds
// its memoized instance at most once; concurrent callers during construction
// block and observe the same instance. Circular dependency graphs are not
// detected and will not resolve — keep the registration graph acyclic.
package container
