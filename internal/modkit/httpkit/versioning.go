package httpkit

import "net/http"

// MountAPIV1 mounts fn under /api/v1 with a common middleware stack applied
// at the api root
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, fn func(Router)) {
	r.Route("/api", func(api Router) {
		for _, m := range mw {
			api.Use(m)
		}
		api.Route("/v1", fn)
	})
}
