package plugin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound means no plugin file exists for the requested name.
	ErrNotFound = errors.New("plugin not found")
	// ErrUnknownDriver means the descriptor names a driver that was never registered.
	ErrUnknownDriver = errors.New("unknown plugin driver")
)

// Loader resolves plugin names to freshly built modules. Nothing is cached between calls.
type Loader struct {
	dir     string
	suffix  string
	drivers *Drivers
}

// NewLoader returns a loader reading descriptors from dir.
func NewLoader(dir, suffix string, drivers *Drivers) *Loader {
	return &Loader{
		dir:     dir,
		suffix:  suffix,
		drivers: drivers,
	}
}

// Load reads the descriptor of name and builds the module with its driver.
func (l *Loader) Load(ctx context.Context, name string) (module any, err error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	path := filepath.Join(l.dir, name+l.suffix)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("read plugin %s: %w", path, err)
	}

	desc, err := ParseDescriptor(name, data)
	if err != nil {
		return nil, err
	}
	desc.Path = path

	factory, ok := l.drivers.Lookup(desc.Driver)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, desc.Driver)
	}

	defer func() {
		if r := recover(); r != nil {
			module = nil
			err = fmt.Errorf("driver %s panicked: %v", desc.Driver, r)
		}
	}()

	return factory(ctx, desc)
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.HasPrefix(name, ReservedPrefix) {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
