// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	phttp "vitalog/internal/platform/net/http"
)

// Router is a re-export of the platform router seam
type Router = phttp.Router
