package hostfxr

import (
	"github.com/wippyai/nplug-proxy/errors"
	"github.com/wippyai/nplug-proxy/native"
)

// Exported hosting functions resolved from the hostfxr library.
const (
	SymbolInitializeForRuntimeConfig = "hostfxr_initialize_for_runtime_config"
	SymbolGetRuntimeDelegate         = "hostfxr_get_runtime_delegate"
	SymbolClose                      = "hostfxr_close"
)

// DelegateType is hostfxr_delegate_type.
type DelegateType int32

const (
	DelegateComActivation                 DelegateType = 0
	DelegateLoadInMemoryAssembly          DelegateType = 1
	DelegateWinRTActivation               DelegateType = 2
	DelegateComRegister                   DelegateType = 3
	DelegateComUnregister                 DelegateType = 4
	DelegateLoadAssemblyAndGetFunctionPtr DelegateType = 5
	DelegateGetFunctionPointer            DelegateType = 6
	DelegateLoadAssembly                  DelegateType = 7
	DelegateLoadAssemblyBytes             DelegateType = 8
)

// UnmanagedCallersOnly is the delegate_type_name marker ((const char_t*)-1) requesting
// a method marked UnmanagedCallersOnly instead of a delegate signature.
const UnmanagedCallersOnly = ^uintptr(0)

// Handle is a hostfxr_handle.
type Handle uintptr

// Exports is the function pointer table resolved from hostfxr.
type Exports struct {
	Library                    string
	InitializeForRuntimeConfig uintptr
	GetRuntimeDelegate         uintptr
	Close                      uintptr
}

// LoadExports resolves the three hosting functions. All must resolve.
func LoadExports(lib *native.Library) (*Exports, error) {
	e := &Exports{Library: lib.Path()}
	targets := []struct {
		dst  *uintptr
		name string
	}{
		{&e.InitializeForRuntimeConfig, SymbolInitializeForRuntimeConfig},
		{&e.GetRuntimeDelegate, SymbolGetRuntimeDelegate},
		{&e.Close, SymbolClose},
	}

	for _, t := range targets {
		sym, err := lib.Export(t.name)
		if err != nil {
			return nil, err
		}
		if sym == 0 {
			return nil, errors.MissingExport(lib.Path(), t.name, nil)
		}
		*t.dst = sym
	}
	return e, nil
}
