package httpkit

import (
	"vitalog/internal/modkit"
)

// MountUnder mounts a module's routes beneath its built prefix with its middleware applied
// when the prefix is empty routes land on the parent router directly
func MountUnder(r Router, b modkit.Built, register func(Router)) {
	mount := func(rr Router) {
		for _, mw := range b.Mw {
			rr.Use(mw)
		}
		register(rr)
		if b.Register != nil {
			b.Register(rr)
		}
	}
	if b.Prefix == "" {
		mount(r)
		return
	}
	r.Route(b.Prefix, mount)
}
