// Package drivers holds the plugin drivers compiled into the binary.
package drivers

import "cancerdetect/internal/plugin"

// Register adds the built-in drivers to set.
func Register(set *plugin.Drivers) {
	set.Register("static", NewStatic)
	set.Register("exec", NewExec)
	set.Register("dnn", NewDNN)
}

// Builtin returns a driver set holding only the built-in drivers.
func Builtin() *plugin.Drivers {
	set := plugin.NewDrivers()
	Register(set)
	return set
}
