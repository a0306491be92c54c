// Package native wraps the operating system's dynamic library primitives behind the
// Platform capability interface.
//
// The default Platform is selected at build time:
//
//	linux, darwin   purego Dlopen/Dlsym/SyscallN, dladdr for the module path
//	windows         LoadLibrary/GetProcAddress, GetModuleHandleEx for the module path
//
// Loader applies the deployment error policy on top of a Platform: a library that
// cannot be opened or a missing export calls Abort, which terminates the process with a
// diagnostic. Tests replace the Platform with nativetest.Platform and Abort with a
// recording function.
//
// Arena pins Go memory handed to native code for the duration of a call sequence:
//
//	var a native.Arena
//	defer a.Free()
//	path, err := a.String(configPath)
//	out := a.Slot()
//	rc := p.Call(fn, path, 0, native.Addr(out))
package native
