// Package module wires the registry into the API using modkit
package module

import (
	"net/http"

	modkit "vitalog/internal/modkit"
	"vitalog/internal/modkit/httpkit"
	str "vitalog/internal/platform/strings"
	reghttp "vitalog/internal/services/registry/http"
	regsvc "vitalog/internal/services/registry/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    any
	register func(httpkit.Router)

	svc regsvc.Service
}

// New constructs a registry module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("registry"),
		modkit.WithPrefix("/registry"),
	}, opts...)...)

	svc := regsvc.New(deps)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{
		Lookup:   svc,
		Upsert:   svc,
		Frequent: svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		reghttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, modkit.Built{Name: m.name, Prefix: m.prefix, Mw: m.mws}, m.register)
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
