// Package server provides the temporary local HTTP server used during the
// authorization code flow, plus the routing and middleware it runs on.
//
// When the user runs `spotsearch auth login`, a server starts on the
// configured host/port, serves exactly one OAuth callback, and shuts down
// once the token (or an error) has been delivered through the handler's
// result channel.
package server

import "net/http"

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an http.Handler that knows which path patterns it serves.
type Handler interface {
	http.Handler
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router registers handlers and middleware and serves the whole tree.
type Router interface {
	Use(middleware ...Middleware)
	Handle(method, path string, handler http.Handler)
	Handler(handler Handler)
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}
