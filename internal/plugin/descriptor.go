package plugin

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml"
)

// ErrNoEntryPoint is wrapped by every failure where a plugin file was found and parsed
// but does not describe a Predict entry point.
var ErrNoEntryPoint = errors.New("no Predict entry point")

// ErrMissingDriver is returned for descriptors without a driver key.
var ErrMissingDriver = fmt.Errorf("%w: descriptor does not name a driver", ErrNoEntryPoint)

// Descriptor is the parsed content of a plugin file.
//
//	driver = "static"
//	description = "Lung CT demo"
//	[options]
//	label = "Benign"
type Descriptor struct {
	Name        string
	Path        string
	Driver      string
	Description string
	Options     map[string]interface{}
}

// ParseDescriptor parses the TOML descriptor of plugin name.
func ParseDescriptor(name string, data []byte) (*Descriptor, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}

	driver, _ := tree.Get("driver").(string)
	if driver == "" {
		return nil, ErrMissingDriver
	}
	description, _ := tree.Get("description").(string)

	options := map[string]interface{}{}
	if sub, ok := tree.Get("options").(*toml.Tree); ok {
		options = sub.ToMap()
	}

	return &Descriptor{
		Name:        name,
		Driver:      driver,
		Description: description,
		Options:     options,
	}, nil
}

// String returns a string option.
func (d *Descriptor) String(key string) (string, bool) {
	v, ok := d.Options[key].(string)
	return v, ok
}

// StringDefault returns a string option or def.
func (d *Descriptor) StringDefault(key, def string) string {
	if v, ok := d.String(key); ok {
		return v
	}
	return def
}

// Strings returns a string array option. Non-string elements are skipped.
func (d *Descriptor) Strings(key string) []string {
	switch v := d.Options[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Float returns a numeric option or def.
func (d *Descriptor) Float(key string, def float64) float64 {
	switch v := d.Options[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return def
}

// Floats returns a numeric array option.
func (d *Descriptor) Floats(key string) []float64 {
	items, ok := d.Options[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case float64:
			out = append(out, v)
		case int64:
			out = append(out, float64(v))
		}
	}
	return out
}

// Int returns an integer option or def.
func (d *Descriptor) Int(key string, def int) int {
	switch v := d.Options[key].(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Bool returns a boolean option or def.
func (d *Descriptor) Bool(key string, def bool) bool {
	if v, ok := d.Options[key].(bool); ok {
		return v
	}
	return def
}
