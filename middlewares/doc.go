// Package middlewares provides net/http middleware for Inertia
// applications: protocol response enforcement (Inertia) and panic
// recovery (Recover). Both return func(http.Handler) http.Handler and
// compose with chi or any stdlib-compatible router.
package middlewares
