package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/basis-fem/basis/engine/opname"
	"github.com/basis-fem/basis/tensor"
)

var registry = struct {
	sync.RWMutex
	engines     map[string]Engine
	defaultName string
}{engines: make(map[string]Engine)}

// Register adds an engine under its Name. Engines register themselves from
// package init, so importing an engine package is what makes it selectable:
//
//	import _ "github.com/basis-fem/basis/engine/native"
//
// Registration validates the engine's op-name table against the full
// canonical surface and fails fast on any omission. The first registered
// engine becomes the process default.
func Register(e Engine) error {
	if err := opname.Validate(e.OpNames()); err != nil {
		return fmt.Errorf("engine %q: %w", e.Name(), err)
	}

	registry.Lock()
	defer registry.Unlock()
	name := e.Name()
	if _, dup := registry.engines[name]; dup {
		return fmt.Errorf("%w: engine %q registered twice", tensor.ErrUnsupportedConfiguration, name)
	}
	registry.engines[name] = e
	if registry.defaultName == "" {
		registry.defaultName = name
	}
	return nil
}

// MustRegister is Register for package init paths, panicking on failure.
func MustRegister(e Engine) {
	if err := Register(e); err != nil {
		panic(err)
	}
}

// Engines returns the sorted names of all registered engines.
func Engines() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.engines))
	for name := range registry.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the registered engine with the given name.
func Lookup(name string) (Engine, error) {
	registry.RLock()
	e, ok := registry.engines[name]
	registry.RUnlock()
	if !ok {
		// Engines takes the lock again, so it must run after the release:
		// a writer queued between two read locks would deadlock both.
		return nil, fmt.Errorf("%w: %q (registered: %v)", tensor.ErrUnknownEngine, name, Engines())
	}
	return e, nil
}

// Select returns a fresh Context bound to the named engine with its own
// random stream. Each Context is independent: concurrent goroutines holding
// different contexts never observe each other's selection or seeds.
func Select(name string) (*Context, error) {
	registry.RLock()
	e, ok := registry.engines[name]
	registry.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", tensor.ErrUnknownEngine, name, Engines())
	}
	return newContext(e), nil
}

// MustSelect is Select, panicking on unknown names. Intended for tests and
// program setup where the engine set is fixed.
func MustSelect(name string) *Context {
	cx, err := Select(name)
	if err != nil {
		panic(err)
	}
	return cx
}

// SetDefault switches the process-default engine used by Default.
func SetDefault(name string) error {
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.engines[name]; !ok {
		return fmt.Errorf("%w: %q", tensor.ErrUnknownEngine, name)
	}
	registry.defaultName = name
	return nil
}

// Default returns a fresh Context for the process-default engine (the first
// registered, unless SetDefault changed it).
func Default() (*Context, error) {
	registry.RLock()
	name := registry.defaultName
	registry.RUnlock()
	if name == "" {
		return nil, fmt.Errorf("%w: no engines registered", tensor.ErrUnknownEngine)
	}
	return Select(name)
}
