// Package errors provides structured error types for the plugin proxy.
//
// Errors are categorized by Phase (which bootstrap step failed) and Kind (error category).
// The Error type carries the path or symbol involved, the runtime host status code and a
// cause chain. A *Error is the failure side of proxy.Result: the forwarding entry point
// turns it into a null factory pointer, unless IsDeployment reports a broken installation.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseInit, errors.KindInitFailed).
//		Path("/opt/plugins/Delay.runtimeconfig.json").
//		Code(0x800080a5).
//		Detail("config incompatible with loaded runtime").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingExport(libPath, "hostfxr_close", cause)
//	err := errors.NotFound(errors.PhaseDiscover, "hostfxr")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
