package container

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ── ObjectFactory ─────────────────────────────────────────────────────────────

// ObjectFactory wraps one Registration plus an at-most-one cached instance.
//
// The cache is created on the first Instance call and lives for the lifetime
// of the factory. Build never reads or writes it.
//
// The factory mutex makes initialization once-only under concurrency: the
// first caller constructs, concurrent callers block until it finishes and
// observe the same instance. Circular dependency graphs are not detected —
// a registration that (transitively) depends on itself blocks forever
// instead of resolving.
type ObjectFactory struct {
	mu   sync.Mutex
	c    *Container // rebound when the owning container is merged away
	reg  Registration
	inst any
	done bool
}

func newObjectFactory(c *Container, reg Registration) *ObjectFactory {
	return &ObjectFactory{c: c, reg: reg}
}

// Path returns the canonical namespace path of the registration.
func (f *ObjectFactory) Path() string { return f.reg.Path }

// Registration returns a copy of the underlying registration record.
func (f *ObjectFactory) Registration() Registration { return f.reg }

// Instance returns the memoized instance, constructing it on first call.
//
// Extra arguments are appended after the resolved dependency values — but
// only on the call that actually constructs. Once the instance is cached,
// later calls return it unchanged and silently ignore any arguments; that
// asymmetry is part of the contract.
//
// A failed resolution caches nothing; the next call retries from scratch.
func (f *ObjectFactory) Instance(extra ...any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done {
		return f.inst, nil
	}
	v, err := f.create(f.c, extra)
	if err != nil {
		return nil, err
	}
	f.inst = v
	f.done = true
	return v, nil
}

// Build constructs a brand-new instance, resolving every dependency fresh.
// It never touches the cache, and extra arguments apply on every call.
func (f *ObjectFactory) Build(extra ...any) (any, error) {
	f.mu.Lock()
	c := f.c
	f.mu.Unlock()
	return f.create(c, extra)
}

// Call dispatches to Build when build is true, otherwise to Instance.
func (f *ObjectFactory) Call(build bool, extra ...any) (any, error) {
	if build {
		return f.Build(extra...)
	}
	return f.Instance(extra...)
}

// Resolved reports whether the memoized instance has been constructed.
func (f *ObjectFactory) Resolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Forget drops the cached instance; the next Instance call constructs anew.
func (f *ObjectFactory) Forget() {
	f.mu.Lock()
	f.inst = nil
	f.done = false
	f.mu.Unlock()
}

// setContainer re-binds the factory after a merge so dependency resolution
// runs against the adopting container.
func (f *ObjectFactory) setContainer(c *Container) {
	f.mu.Lock()
	f.c = c
	f.mu.Unlock()
}

// create resolves every dependency descriptor left to right and invokes the
// constructor. Resolution is a pure map over the descriptor list; a failing
// descriptor aborts the whole call and its error propagates untouched.
func (f *ObjectFactory) create(c *Container, extra []any) (any, error) {
	args := make([]any, 0, len(f.reg.Dependencies)+len(extra))
	for _, d := range f.reg.Dependencies {
		v, err := d.resolve(c)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	args = append(args, extra...)

	out, err := f.reg.Constructor(args...)
	if err != nil {
		return nil, fmt.Errorf("container: construct %s: %w", f.reg.Path, err)
	}

	c.logger.Debug("instance constructed",
		zap.String("path", f.reg.Path),
		zap.Int("deps", len(f.reg.Dependencies)),
		zap.Int("extra", len(extra)))
	return out, nil
}
