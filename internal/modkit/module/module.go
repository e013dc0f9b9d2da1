// Package module is the module contract and the process wide registry of module ports
package module

import (
	"reflect"
	"sync"

	phttp "github.com/kweimann/poe-stash-filter/internal/platform/net/http"
)

// Module mounts its routes and exposes ports other modules may call
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// PortsOf finds T in m.Ports(), either the value itself or one of its exported fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		if !rv.Type().Field(i).IsExported() {
			continue
		}
		if v, ok := rv.Field(i).Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for wiring code that cannot continue without the port
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module " + m.Name() + " has no port of type " + reflect.TypeFor[T]().String())
	}
	return v
}

var registry sync.Map

// Register publishes ports under the module name, replacing earlier ones
func Register(name string, ports any) { registry.Store(name, ports) }

// PortsAs returns the ports registered under name when they are a T
func PortsAs[T any](name string) (T, bool) {
	v, ok := registry.Load(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Reset empties the registry between tests
func Reset() { registry.Clear() }
