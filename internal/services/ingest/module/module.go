// Package module wires the ingest pipeline into the API using modkit
package module

import (
	"net/http"

	catadapter "vitalog/internal/adapters/catalog"
	"vitalog/internal/adapters/classifier"
	modkit "vitalog/internal/modkit"
	"vitalog/internal/modkit/httpkit"
	str "vitalog/internal/platform/strings"
	catdom "vitalog/internal/services/catalog/domain"
	catsvc "vitalog/internal/services/catalog/service"
	ingesthttp "vitalog/internal/services/ingest/http"
	ingestsvc "vitalog/internal/services/ingest/service"
	regmodule "vitalog/internal/services/registry/module"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    any
	register func(httpkit.Router)

	svc ingestsvc.Service
}

// New constructs the ingest module. The registry module's ports must be
// injected via modkit.WithPorts, the pipeline cannot run without them
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("ingest"),
		modkit.WithPrefix("/ingest"),
	}, opts...)...)

	reg, ok := b.Ports.(regmodule.Ports)
	if !ok {
		panic("ingest module requires registry ports")
	}

	search := catsvc.New(buildSources(deps)...)

	clsCfg := deps.Cfg.Prefix("CLASSIFIER_")
	classify := classifier.NewOpenAI(classifier.OpenAIOptions{
		APIKey:  clsCfg.MustString("API_KEY"),
		BaseURL: clsCfg.MayString("BASE_URL", ""),
		Model:   clsCfg.MayString("MODEL", ""),
		Timeout: clsCfg.MayDuration("TIMEOUT", 0),
	})

	svc := ingestsvc.New(deps, ingestsvc.Collaborators{
		Lookup:   reg.Lookup,
		Upsert:   reg.Upsert,
		Frequent: reg.Frequent,
		Search:   search,
		Classify: classify,
	})

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{Process: svc, Confirm: svc, Items: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ingesthttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// buildSources assembles the configured catalog sources. Sources without
// credentials are wired anyway and short-circuit to empty at call time
func buildSources(deps modkit.Deps) []catdom.Source {
	cfg := deps.Cfg.Prefix("CATALOG_")
	off := catadapter.NewOFF(catadapter.OFFOptions{
		BaseURL: cfg.MayString("OFF_BASE_URL", ""),
	})
	nix := catadapter.NewNutritionix(catadapter.NutritionixOptions{
		BaseURL: cfg.MayString("NUTRITIONIX_BASE_URL", ""),
		AppID:   cfg.MayString("NUTRITIONIX_APP_ID", ""),
		AppKey:  cfg.MayString("NUTRITIONIX_APP_KEY", ""),
	})
	return []catdom.Source{off, nix}
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
