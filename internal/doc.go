// Package internal implements the Inertia protocol engine: prop lifecycle
// policies, protocol header parsing, metadata extraction, the per-key
// resolution policy, and response assembly. The public API is re-exported
// by the root inertia package.
package internal
