// Package api composes the HTTP API for the application
package api

import (
	"vitalog/internal/platform/config"
	"vitalog/internal/platform/logger"
	phttp "vitalog/internal/platform/net/http"
	"vitalog/internal/platform/store"

	"vitalog/internal/modkit"
	"vitalog/internal/modkit/httpkit"
	"vitalog/internal/modkit/module"

	metamod "vitalog/internal/services/api/meta/module"
	ingestmod "vitalog/internal/services/ingest/module"
	regmod "vitalog/internal/services/registry/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// construct the registry first, the ingest pipeline depends on its ports
	registry := regmod.New(deps)
	regPorts := module.MustPortsOf[regmod.Ports](registry)

	ingest := ingestmod.New(deps, modkit.WithPorts(regPorts))

	mods := []module.Module{
		metamod.New(deps),
		registry,
		ingest,
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Config), func(api httpkit.Router) {
		phttp.MountSwagger(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its name for cross wiring
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
