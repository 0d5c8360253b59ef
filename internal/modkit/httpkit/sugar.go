package httpkit

import (
	"net/http"

	phttp "vitalog/internal/platform/net/http"
)

// PostJSON registers a POST route whose body is decoded and validated into T
func PostJSON[T any](r Router, pattern string, fn func(*http.Request, T) (any, error)) {
	r.Post(pattern, phttp.JSONHandler(fn))
}

// Post registers a POST route for handlers without a body
func Post(r Router, pattern string, fn func(*http.Request) (any, error)) {
	r.Post(pattern, phttp.JSONHandlerNoBody(fn))
}

// Get registers a GET route
func Get(r Router, pattern string, fn func(*http.Request) (any, error)) {
	r.Get(pattern, phttp.JSONHandlerNoBody(fn))
}
