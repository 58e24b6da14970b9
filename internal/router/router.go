// Package router is a thin layer over http.ServeMux: Go 1.22 method
// patterns plus middleware chains, which is all the storefront and admin
// APIs need.
package router

import (
	"net/http"
	"slices"
	"strings"
)

// Middleware wraps a handler. Chains run in the order they were declared.
type Middleware func(http.Handler) http.Handler

// Router registers method-qualified patterns on a shared ServeMux and
// applies its middleware chain to every handler it registers.
type Router struct {
	mux   *http.ServeMux
	chain []Middleware
}

// New creates a Router with the given global middleware.
func New(middleware ...Middleware) *Router {
	return &Router{mux: http.NewServeMux(), chain: middleware}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) Get(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.Handle(http.MethodGet, pattern, handler, middleware...)
}

func (r *Router) Post(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.Handle(http.MethodPost, pattern, handler, middleware...)
}

func (r *Router) Put(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.Handle(http.MethodPut, pattern, handler, middleware...)
}

func (r *Router) Patch(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.Handle(http.MethodPatch, pattern, handler, middleware...)
}

func (r *Router) Delete(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.Handle(http.MethodDelete, pattern, handler, middleware...)
}

// Handle registers a handler for the method-qualified pattern, wrapped in
// the router's chain plus any route-specific middleware.
func (r *Router) Handle(method, pattern string, handler http.Handler, middleware ...Middleware) {
	r.mux.Handle(method+" "+pattern, r.wrap(handler, middleware))
}

// Group returns a Router sharing this one's mux with extra middleware
// appended to the chain. Admin routes hang off a Group carrying the role
// check.
func (r *Router) Group(middleware ...Middleware) *Router {
	return &Router{
		mux:   r.mux,
		chain: append(slices.Clone(r.chain), middleware...),
	}
}

// Static serves the files under dir at the given URL prefix. Uploaded
// product and category images are exposed this way.
func (r *Router) Static(prefix, dir string) {
	prefix = strings.TrimSuffix(prefix, "/")
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	r.mux.Handle("GET "+prefix+"/{file...}", r.wrap(fs, nil))
}

// wrap nests the handler inside the combined chain. Wrapping happens in
// reverse so the first declared middleware sees the request first.
func (r *Router) wrap(handler http.Handler, middleware []Middleware) http.Handler {
	combined := append(slices.Clone(r.chain), middleware...)
	wrapped := handler
	for i := len(combined) - 1; i >= 0; i-- {
		wrapped = combined[i](wrapped)
	}
	return wrapped
}
