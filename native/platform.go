package native

// Platform is the set of OS capabilities the proxy needs.
type Platform interface {
	// Open loads the dynamic library at path and returns its handle.
	Open(path string) (uintptr, error)
	// Symbol looks up an exported symbol by exact name.
	Symbol(handle uintptr, name string) (uintptr, error)
	// Close releases a handle returned by Open.
	Close(handle uintptr) error
	// Call invokes the C function at fn and returns its integer/pointer result.
	Call(fn uintptr, args ...uintptr) uintptr
	// ModulePath returns the absolute path of the binary containing this code.
	ModulePath() (string, error)
}

// Default returns the Platform implementation for the running OS.
func Default() Platform {
	return defaultPlatform
}

// anchor is a function whose code address identifies the module this package is linked into.
func anchor() {}
