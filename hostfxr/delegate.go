package hostfxr

import (
	"github.com/wippyai/nplug-proxy/errors"
	"github.com/wippyai/nplug-proxy/native"
)

// AssemblyLoader wraps a load_assembly_and_get_function_pointer delegate.
type AssemblyLoader struct {
	platform native.Platform
	fn       uintptr
}

// NewAssemblyLoader binds the delegate at fn.
func NewAssemblyLoader(p native.Platform, fn uintptr) *AssemblyLoader {
	return &AssemblyLoader{platform: p, fn: fn}
}

// Pointer returns the raw delegate address.
func (l *AssemblyLoader) Pointer() uintptr {
	return l.fn
}

// FunctionPointer loads assemblyPath and returns a pointer to the UnmanagedCallersOnly
// method methodName of the assembly-qualified typeName.
func (l *AssemblyLoader) FunctionPointer(assemblyPath, typeName, methodName string) (uintptr, error) {
	var a native.Arena
	defer a.Free()

	args := make([]uintptr, 0, 6)
	for _, s := range []string{assemblyPath, typeName, methodName} {
		p, err := a.String(s)
		if err != nil {
			return 0, errors.Wrap(errors.PhaseAssembly, errors.KindInvalidInput, err, "encode "+s)
		}
		args = append(args, p)
	}
	out := a.Slot()
	args = append(args, UnmanagedCallersOnly, 0, native.Addr(out))

	code := status(l.platform.Call(l.fn, args...))
	if code != Success || *out == 0 {
		return 0, errors.AssemblyFailed(assemblyPath, typeName, methodName, uint32(code))
	}
	return *out, nil
}
