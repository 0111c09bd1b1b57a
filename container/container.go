package container

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ── Registration ──────────────────────────────────────────────────────────────

// Constructor builds an instance from its resolved dependencies. Dependency
// values arrive positionally in declaration order, followed by any extra
// arguments supplied at Instance/Build time.
type Constructor func(args ...any) (any, error)

// Registration binds a constructor to a namespace path together with its
// dependency descriptors and role flags. A Registration is immutable once
// added; re-registering the same path replaces the whole record.
type Registration struct {
	// Path is the dot- or slash-delimited namespace key, e.g. "app.cache" or
	// a TypeKey-derived "github.com/acme/app/cache.Redis".
	Path string

	// Constructor is called with the resolved dependency values.
	Constructor Constructor

	// Dependencies are resolved left to right; each descriptor fills exactly
	// one positional constructor argument.
	Dependencies []Dependency

	// Config marks this registration as the single config provider. At most
	// one registration per (possibly merged) container may set it.
	Config bool

	// Group tags the registration for Tagged / Group resolution.
	Group string

	// Alias registers an additional lookup name for Path.
	Alias string
}

// ── Namespace tree ────────────────────────────────────────────────────────────

// node is one level of the namespace tree. A node can be a namespace and a
// leaf at the same time, so registering "app" never clobbers "app.cache".
type node struct {
	children map[string]*node
	leaf     *ObjectFactory
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the namespace tree of registrations plus their lazily built,
// memoized object factories.
//
// Lifecycle:
//
//  1. Create: c := container.New()
//  2. Register: c.Register("app.cache", newCache, container.Config("cache.ttl", "60", config.FormatInt))
//  3. Resolve: cache, err := container.Resolve[*Cache](c, "app.cache")
//
// Containers can be merged with Update; the receiver wins nothing — paths
// present in the argument overwrite the receiver's.
type Container struct {
	mu      sync.RWMutex
	logger  *zap.Logger
	root    *node
	order   []string          // canonical paths in insertion order
	aliases map[string]string // alias → canonical path
	groups  map[string][]string
	config  string // canonical path of the config provider, "" when unset
}

// Option configures a Container at construction time.
type Option func(*Container)

// WithLogger attaches a structured logger; resolution and registration emit
// debug-level events. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		logger:  zap.NewNop(),
		root:    newNode(),
		aliases: make(map[string]string),
		groups:  make(map[string][]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration surface ──────────────────────────────────────────────────────

// Add inserts a Registration into the namespace tree. Re-registering an
// existing path overwrites the record in place, keeping its position in
// iteration and group order.
//
// Add fails with DuplicateConfigProviderError when reg.Config is set and a
// different path already holds the config-provider slot.
func (c *Container) Add(reg Registration) error {
	if strings.TrimSpace(reg.Path) == "" || len(splitPath(reg.Path)) == 0 {
		return ErrEmptyPath
	}
	if reg.Constructor == nil {
		return ErrNilConstructor
	}
	if reg.Alias != "" && reg.Alias == reg.Path {
		return fmt.Errorf("container: %q is aliased to itself", reg.Path)
	}

	c.mu.Lock()
	if reg.Config && c.config != "" && c.config != reg.Path {
		existing := c.config
		c.mu.Unlock()
		return DuplicateConfigProviderError{Existing: existing, Offending: reg.Path}
	}
	c.insert(reg.Path, newObjectFactory(c, reg))
	c.mu.Unlock()

	c.logger.Debug("registration added",
		zap.String("path", reg.Path),
		zap.Bool("config", reg.Config),
		zap.String("group", reg.Group),
		zap.String("alias", reg.Alias))
	return nil
}

// Register is shorthand for Add with only a path, constructor and
// dependency descriptors.
func (c *Container) Register(path string, ctor Constructor, deps ...Dependency) error {
	return c.Add(Registration{Path: path, Constructor: ctor, Dependencies: deps})
}

// RegisterConfig registers the config provider.
func (c *Container) RegisterConfig(path string, ctor Constructor, deps ...Dependency) error {
	return c.Add(Registration{Path: path, Constructor: ctor, Dependencies: deps, Config: true})
}

// Alias registers an additional lookup name for an already chosen path.
// The alias and the path resolve to the same factory.
func (c *Container) Alias(path, alias string) error {
	if path == "" || alias == "" {
		return ErrEmptyPath
	}
	if path == alias {
		return fmt.Errorf("container: %q is aliased to itself", path)
	}
	c.mu.Lock()
	c.aliases[alias] = path
	c.mu.Unlock()
	return nil
}

// insert places a factory at path and maintains order, group, config-slot and
// alias bookkeeping. Caller must hold mu.
func (c *Container) insert(path string, f *ObjectFactory) {
	prev := c.factoryAt(path)

	n := c.root
	for _, seg := range splitPath(path) {
		child, ok := n.children[seg]
		if !ok {
			child = newNode()
			n.children[seg] = child
		}
		n = child
	}
	n.leaf = f

	if prev == nil {
		c.order = append(c.order, path)
	}

	// Overwrites keep their group position as long as the group is unchanged.
	var prevGroup string
	if prev != nil {
		prevGroup = prev.reg.Group
	}
	if prevGroup != f.reg.Group || prev == nil {
		if prevGroup != "" {
			c.groups[prevGroup] = removePath(c.groups[prevGroup], path)
		}
		if f.reg.Group != "" {
			c.groups[f.reg.Group] = append(c.groups[f.reg.Group], path)
		}
	}

	if f.reg.Config {
		c.config = path
	} else if c.config == path {
		// The provider's path was overwritten by a plain registration.
		c.config = ""
	}

	if f.reg.Alias != "" {
		c.aliases[f.reg.Alias] = path
	}
}

// ── Retrieval surface ─────────────────────────────────────────────────────────

// Lookup returns the object factory registered at path. Exact paths win over
// aliases; unknown paths fail with NotRegisteredError.
func (c *Container) Lookup(path string) (*ObjectFactory, error) {
	c.mu.RLock()
	f := c.factoryAt(path)
	if f == nil {
		if target, ok := c.aliases[path]; ok {
			f = c.factoryAt(target)
		}
	}
	c.mu.RUnlock()

	if f == nil {
		return nil, NotRegisteredError{Path: path}
	}
	return f, nil
}

// Bound reports whether path (or an alias for it) has a registration.
func (c *Container) Bound(path string) bool {
	_, err := c.Lookup(path)
	return err == nil
}

// Tagged returns the object factories of every registration carrying the
// group name, in registration order. Unknown groups yield an empty slice.
func (c *Container) Tagged(group string) []*ObjectFactory {
	c.mu.RLock()
	defer c.mu.RUnlock()

	paths := c.groups[group]
	out := make([]*ObjectFactory, 0, len(paths))
	for _, p := range paths {
		if f := c.factoryAt(p); f != nil {
			out = append(out, f)
		}
	}
	return out
}

// Paths returns every registered canonical path in insertion order.
func (c *Container) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// Factories returns every registered object factory in insertion order.
func (c *Container) Factories() []*ObjectFactory {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*ObjectFactory, 0, len(c.order))
	for _, p := range c.order {
		if f := c.factoryAt(p); f != nil {
			out = append(out, f)
		}
	}
	return out
}

// factoryAt walks the tree to the leaf at path. Caller must hold mu.
func (c *Container) factoryAt(path string) *ObjectFactory {
	n := c.root
	for _, seg := range splitPath(path) {
		child, ok := n.children[seg]
		if !ok {
			return nil
		}
		n = child
	}
	return n.leaf
}

// configFactory returns the factory holding the config-provider slot, or nil.
func (c *Container) configFactory() *ObjectFactory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.config == "" {
		return nil
	}
	return c.factoryAt(c.config)
}

// ── Merge surface ─────────────────────────────────────────────────────────────

// Update merges other into c: every path in other is inserted, overwriting
// any existing registration at the same path; aliases are merged the same
// way. Adopted factories are re-bound to c, so their dependencies resolve
// against the merged tree from now on. The merge mutates c in place and is
// not commutative.
//
// The single-config-provider invariant is re-validated after the merge; when
// it no longer holds, the merge still stands (no rollback) and Update returns
// DuplicateConfigProviderError.
func (c *Container) Update(other *Container) error {
	if other == nil || other == c {
		return nil
	}

	other.mu.RLock()
	paths := append([]string(nil), other.order...)
	adopted := make([]*ObjectFactory, len(paths))
	for i, p := range paths {
		adopted[i] = other.factoryAt(p)
	}
	aliases := make(map[string]string, len(other.aliases))
	for a, target := range other.aliases {
		aliases[a] = target
	}
	other.mu.RUnlock()

	c.mu.Lock()
	for i, p := range paths {
		if adopted[i] != nil {
			c.insert(p, adopted[i])
		}
	}
	for a, target := range aliases {
		c.aliases[a] = target
	}

	// A merge may reintroduce a second config-flagged registration; the slot
	// is recomputed from scratch and the invariant checked.
	var dup error
	c.config = ""
	for _, p := range c.order {
		f := c.factoryAt(p)
		if f == nil || !f.reg.Config {
			continue
		}
		if c.config == "" {
			c.config = p
			continue
		}
		dup = DuplicateConfigProviderError{Existing: c.config, Offending: p}
		break
	}
	c.mu.Unlock()

	for _, f := range adopted {
		if f != nil {
			f.setContainer(c)
		}
	}

	c.logger.Debug("containers merged", zap.Int("paths", len(paths)))
	return dup
}

// ── Generic helpers ───────────────────────────────────────────────────────────

// Resolve looks up path, resolves its memoized instance and asserts it to T.
//
//	cache, err := container.Resolve[*redis.Client](c, "app.cache")
func Resolve[T any](c *Container, path string) (T, error) {
	var zero T

	f, err := c.Lookup(path)
	if err != nil {
		return zero, err
	}
	v, err := f.Instance()
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, TypeMismatchError{
			Path:     path,
			Expected: reflect.TypeOf((*T)(nil)).Elem().String(),
			Actual:   typeName(v),
		}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure; intended for bootstrap
// code paths where a missing registration is a programming error.
func MustResolve[T any](c *Container, path string) T {
	v, err := Resolve[T](c, path)
	if err != nil {
		panic(err)
	}
	return v
}

// ── Path helpers ──────────────────────────────────────────────────────────────

// splitPath breaks a namespace path into tree segments. Dots and slashes both
// delimit, so TypeKey-derived paths ("pkg/sub.Type") nest naturally.
func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '.' || r == '/'
	})
}

func removePath(paths []string, path string) []string {
	out := paths[:0]
	for _, p := range paths {
		if p != path {
			out = append(out, p)
		}
	}
	return out
}
