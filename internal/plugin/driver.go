package plugin

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Predictor is the entry point every plugin module must expose.
type Predictor interface {
	Predict(ctx context.Context, image Image) (string, error)
}

// Factory builds a plugin module from its descriptor. The module is usually a Predictor;
// whether it is one is checked by the caller, not here.
type Factory func(ctx context.Context, d *Descriptor) (any, error)

// Drivers maps driver names to statically registered factories.
type Drivers struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewDrivers returns an empty driver set.
func NewDrivers() *Drivers {
	return &Drivers{factories: make(map[string]Factory)}
}

// Register adds a factory. It panics if name is empty, f is nil or name is taken.
func (d *Drivers) Register(name string, f Factory) {
	if name == "" || f == nil {
		panic("plugin: Register with empty name or nil factory")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, dup := d.factories[name]; dup {
		panic(fmt.Sprintf("plugin: Register called twice for driver %q", name))
	}
	d.factories[name] = f
}

// Lookup returns the factory registered under name.
func (d *Drivers) Lookup(name string) (Factory, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	f, ok := d.factories[name]
	return f, ok
}

// Names returns the registered driver names, sorted.
func (d *Drivers) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.factories))
	for n := range d.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
