package container

import (
	"errors"
	"fmt"
)

// ── Sentinel errors ───────────────────────────────────────────────────────────

var (
	// ErrEmptyPath is returned when a registration has no namespace path.
	ErrEmptyPath = errors.New("container: registration path is empty")

	// ErrNilConstructor is returned when a registration has no constructor.
	ErrNilConstructor = errors.New("container: constructor is nil")

	// ErrNilCallback is returned when a Func dependency wraps a nil function.
	ErrNilCallback = errors.New("container: callback is nil")

	// ErrNoConfigProvider is returned when a Config dependency resolves while
	// no registration is marked as the config provider.
	ErrNoConfigProvider = errors.New("container: no config provider registered")
)

// ── Typed errors ──────────────────────────────────────────────────────────────

// NotRegisteredError means no registration exists at the requested path.
type NotRegisteredError struct {
	Path string
}

func (e NotRegisteredError) Error() string {
	return fmt.Sprintf("container: nothing registered at %q", e.Path)
}

// DuplicateConfigProviderError means a second registration claimed the single
// config-provider slot, either directly or through a merge.
type DuplicateConfigProviderError struct {
	Existing  string // path of the registration already holding the slot
	Offending string // path of the registration that tried to claim it
}

func (e DuplicateConfigProviderError) Error() string {
	return fmt.Sprintf("container: config provider already registered at %q, cannot register %q",
		e.Existing, e.Offending)
}

// InvalidConfigProviderError means the registration marked as config provider
// produced an instance that does not satisfy ConfigProvider.
type InvalidConfigProviderError struct {
	Path string
	Got  string // concrete type of the resolved instance
}

func (e InvalidConfigProviderError) Error() string {
	return fmt.Sprintf("container: config provider at %q must implement Get(name, placeholder, format), got %s",
		e.Path, e.Got)
}

// TypeMismatchError means Resolve[T] could not assert the resolved instance to T.
type TypeMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("container: %q resolved to %s, expected %s", e.Path, e.Actual, e.Expected)
}
