// Package version resolves the asset version string carried in every page
// payload. When the client's cached version differs from the server's, the
// adapter answers 409 and the client performs a full reload to pick up new
// assets.
//
// Use Static for versions injected at build time and Manifest to
// fingerprint a bundler manifest file on disk.
package version
