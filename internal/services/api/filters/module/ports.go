package module

import (
	fdom "github.com/kweimann/poe-stash-filter/internal/services/api/filters/domain"
)

// Ports exposes the filters service and its schema bootstrap to other modules and main
type Ports struct {
	Filters fdom.ServicePort
	Schema  fdom.SchemaPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
