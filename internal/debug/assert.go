//go:build !debug

package debug

// Assert does nothing if the debug flag is not provided.
func Assert(condition bool, message ...string) {}
