package container_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/km-arc/go-container/container"
)

// counter builds widgets and records how many constructions ran.
type counter struct {
	n atomic.Int32
}

func (ct *counter) ctor(args ...any) (any, error) {
	ct.n.Add(1)
	w := &widget{name: "built"}
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			w.name = s
		}
	}
	return w, nil
}

// ── Instance (memoized) ───────────────────────────────────────────────────────

func TestInstance_IdempotentSingleton(t *testing.T) {
	ct := &counter{}
	c := container.New()
	_ = c.Register("app.w", ct.ctor)

	f, _ := c.Lookup("app.w")
	first, err := f.Instance()
	if err != nil {
		t.Fatalf("Instance: %v", err)
	}
	second, err := f.Instance()
	if err != nil {
		t.Fatalf("Instance: %v", err)
	}
	if first != second {
		t.Error("Instance must return the cached instance")
	}
	if got := ct.n.Load(); got != 1 {
		t.Errorf("constructor ran %d times, want 1", got)
	}
}

func TestInstance_ArgsHonoredOnlyOnFirstCall(t *testing.T) {
	ct := &counter{}
	c := container.New()
	_ = c.Register("app.w", ct.ctor)

	f, _ := c.Lookup("app.w")
	first, _ := f.Instance("custom")
	if first.(*widget).name != "custom" {
		t.Fatalf("first-call args ignored: got %q", first.(*widget).name)
	}

	// Different args on a later call are a silent no-op.
	later, _ := f.Instance("other")
	if later != first {
		t.Error("later args must not trigger a rebuild")
	}
}

func TestInstance_FailureCachesNothing(t *testing.T) {
	boom := errors.New("boom")
	var failFirst atomic.Bool
	failFirst.Store(true)

	c := container.New()
	_ = c.Register("app.w", func(args ...any) (any, error) {
		if failFirst.Swap(false) {
			return nil, boom
		}
		return &widget{name: "ok"}, nil
	})

	f, _ := c.Lookup("app.w")
	if _, err := f.Instance(); !errors.Is(err, boom) {
		t.Fatalf("expected constructor error, got %v", err)
	}
	if f.Resolved() {
		t.Fatal("failed resolution must not populate the cache")
	}

	w, err := f.Instance()
	if err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if w.(*widget).name != "ok" {
		t.Errorf("got %q", w.(*widget).name)
	}
}

func TestInstance_ConcurrentCallersShareOneBuild(t *testing.T) {
	ct := &counter{}
	c := container.New()
	_ = c.Register("app.w", ct.ctor)
	f, _ := c.Lookup("app.w")

	const callers = 32
	results := make([]any, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := f.Instance()
			if err != nil {
				t.Errorf("Instance: %v", err)
				return
			}
			results[i] = v
		}(i)
	}
	wg.Wait()

	if got := ct.n.Load(); got != 1 {
		t.Errorf("constructor ran %d times under concurrency, want 1", got)
	}
	for i := 1; i < callers; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent callers observed different instances")
		}
	}
}

// ── Build (fresh) ─────────────────────────────────────────────────────────────

func TestBuild_AlwaysFresh(t *testing.T) {
	ct := &counter{}
	c := container.New()
	_ = c.Register("app.w", ct.ctor)
	f, _ := c.Lookup("app.w")

	b1, _ := f.Build()
	b2, _ := f.Build()
	if b1 == b2 {
		t.Error("Build must construct a new instance each call")
	}
	if f.Resolved() {
		t.Error("Build must not populate the cache")
	}

	inst, _ := f.Instance()
	if inst == b1 || inst == b2 {
		t.Error("Instance must not reuse Build results")
	}
	fresh, _ := f.Build("late")
	if fresh.(*widget).name != "late" {
		t.Error("Build args must apply on every call")
	}
}

func TestCall_Dispatch(t *testing.T) {
	ct := &counter{}
	c := container.New()
	_ = c.Register("app.w", ct.ctor)
	f, _ := c.Lookup("app.w")

	inst1, _ := f.Call(false)
	inst2, _ := f.Call(false)
	if inst1 != inst2 {
		t.Error("Call(false) must behave like Instance")
	}
	built, _ := f.Call(true)
	if built == inst1 {
		t.Error("Call(true) must behave like Build")
	}
}

func TestForget_DropsCache(t *testing.T) {
	ct := &counter{}
	c := container.New()
	_ = c.Register("app.w", ct.ctor)
	f, _ := c.Lookup("app.w")

	first, _ := f.Instance()
	f.Forget()
	if f.Resolved() {
		t.Fatal("Forget should clear Resolved")
	}
	second, _ := f.Instance()
	if first == second {
		t.Error("Instance after Forget must rebuild")
	}
}

// ── Dependency descriptors through the factory ────────────────────────────────

func TestRefDependency_SharedByDefault(t *testing.T) {
	depCt := &counter{}
	c := container.New()
	_ = c.Register("deps.db", depCt.ctor)
	_ = c.Register("svc.a", func(args ...any) (any, error) { return args[0], nil }, container.Ref("deps.db"))
	_ = c.Register("svc.b", func(args ...any) (any, error) { return args[0], nil }, container.Ref("deps.db"))

	a, _ := container.Resolve[*widget](c, "svc.a")
	b, _ := container.Resolve[*widget](c, "svc.b")
	if a != b {
		t.Error("Ref dependencies must share the memoized instance")
	}
	if got := depCt.n.Load(); got != 1 {
		t.Errorf("dependency built %d times, want 1", got)
	}
}

func TestRefDependency_Fresh(t *testing.T) {
	depCt := &counter{}
	c := container.New()
	_ = c.Register("deps.db", depCt.ctor)
	_ = c.Register("svc.a", func(args ...any) (any, error) { return args[0], nil }, container.Ref("deps.db").Fresh())
	_ = c.Register("svc.b", func(args ...any) (any, error) { return args[0], nil }, container.Ref("deps.db").Fresh())

	a, _ := container.Resolve[*widget](c, "svc.a")
	b, _ := container.Resolve[*widget](c, "svc.b")
	if a == b {
		t.Error("Fresh() dependencies must not share instances")
	}
	if got := depCt.n.Load(); got != 2 {
		t.Errorf("dependency built %d times, want 2", got)
	}
}

func TestRefDependency_Args(t *testing.T) {
	c := container.New()
	_ = c.Register("deps.named", func(args ...any) (any, error) {
		return &widget{name: args[0].(string)}, nil
	})
	_ = c.Register("svc", func(args ...any) (any, error) { return args[0], nil },
		container.Ref("deps.named").Args("forwarded"))

	w, err := container.Resolve[*widget](c, "svc")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if w.name != "forwarded" {
		t.Errorf("got %q", w.name)
	}
}

func TestRefDependency_UnregisteredPathFailsResolution(t *testing.T) {
	c := container.New()
	_ = c.Register("svc", func(args ...any) (any, error) { return args[0], nil },
		container.Ref("missing.dep"))

	f, _ := c.Lookup("svc")
	_, err := f.Instance()
	var notReg container.NotRegisteredError
	if !errors.As(err, &notReg) {
		t.Fatalf("expected NotRegisteredError, got %v", err)
	}
}

func TestValueDependency(t *testing.T) {
	c := container.New()
	_ = c.Register("svc", func(args ...any) (any, error) { return args[0], nil },
		container.Value([]int{1, 2, 3}))

	v, err := container.Resolve[[]int](c, "svc")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(v) != 3 {
		t.Errorf("literal not passed through: %v", v)
	}
}

func TestFuncDependency(t *testing.T) {
	c := container.New()
	_ = c.Register("deps.db", widgetCtor("db"))
	_ = c.Register("svc", func(args ...any) (any, error) { return args[0], nil },
		container.Func(func(inner *container.Container) (any, error) {
			return container.Resolve[*widget](inner, "deps.db")
		}))

	w, err := container.Resolve[*widget](c, "svc")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if w.name != "db" {
		t.Errorf("got %q", w.name)
	}
}

func TestFuncDependency_ErrorPropagatesUnwrapped(t *testing.T) {
	boom := errors.New("callback boom")
	c := container.New()
	_ = c.Register("svc", func(args ...any) (any, error) { return args[0], nil },
		container.Func(func(*container.Container) (any, error) { return nil, boom }))

	f, _ := c.Lookup("svc")
	if _, err := f.Instance(); !errors.Is(err, boom) {
		t.Errorf("callback error must propagate untouched, got %v", err)
	}
}

func TestFuncDependency_NilCallback(t *testing.T) {
	c := container.New()
	_ = c.Register("svc", func(args ...any) (any, error) { return args[0], nil },
		container.Func(nil))

	f, _ := c.Lookup("svc")
	if _, err := f.Instance(); !errors.Is(err, container.ErrNilCallback) {
		t.Errorf("expected ErrNilCallback, got %v", err)
	}
}

func TestDependencies_ResolvedLeftToRight(t *testing.T) {
	var seen []string
	record := func(tag string) container.Dependency {
		return container.Func(func(*container.Container) (any, error) {
			seen = append(seen, tag)
			return tag, nil
		})
	}

	c := container.New()
	_ = c.Register("svc", func(args ...any) (any, error) {
		if args[0] != "first" || args[1] != "second" || args[2] != "third" {
			return nil, errors.New("argument order broken")
		}
		return "ok", nil
	}, record("first"), record("second"), record("third"))

	if _, err := container.Resolve[string](c, "svc"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(seen) != 3 || seen[0] != "first" || seen[1] != "second" || seen[2] != "third" {
		t.Errorf("resolution order: %v", seen)
	}
}
