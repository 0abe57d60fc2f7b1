// Package debug exposes the build-time debug flag.
//
// Building with the `debug` tag turns on the construction-time shape
// assertions (see internal/debug) and keeps the logger active in tests.
package debug
