// Package hostfxrtest installs a fake hostfxr library into a nativetest.Platform.
package hostfxrtest

import (
	"github.com/wippyai/nplug-proxy/hostfxr"
	"github.com/wippyai/nplug-proxy/native/nativetest"
)

// Host is a scriptable hostfxr. Fields are read at call time, so tests may change
// them between attempts.
type Host struct {
	Platform *nativetest.Platform
	Library  *nativetest.Library
	LibPath  string

	InitCode   hostfxr.StatusCode
	InitHandle uintptr

	DelegateCode hostfxr.StatusCode
	Delegate     uintptr

	ConfigPaths   []string
	DelegateTypes []hostfxr.DelegateType
	ClosedHandles []uintptr

	Opened int
	Closed int
}

// DefaultHandle is the context handle returned by a freshly installed Host.
const DefaultHandle uintptr = 0xC0FFEE

// Install registers a hostfxr library at libPath exporting the three hosting functions.
func Install(p *nativetest.Platform, libPath string) *Host {
	h := &Host{
		Platform:   p,
		LibPath:    libPath,
		InitHandle: DefaultHandle,
		Delegate:   0xD00D,
	}
	h.Library = p.AddLibrary(libPath)
	h.Library.Define(hostfxr.SymbolInitializeForRuntimeConfig, h.initialize)
	h.Library.Define(hostfxr.SymbolGetRuntimeDelegate, h.getDelegate)
	h.Library.Define(hostfxr.SymbolClose, h.close)
	return h
}

func (h *Host) initialize(args ...uintptr) uintptr {
	h.Opened++
	h.ConfigPaths = append(h.ConfigPaths, nativetest.String(args[0]))
	nativetest.WriteOut(args[2], h.InitHandle)
	return uintptr(h.InitCode)
}

func (h *Host) getDelegate(args ...uintptr) uintptr {
	h.DelegateTypes = append(h.DelegateTypes, hostfxr.DelegateType(int32(args[1])))
	if h.DelegateCode == hostfxr.Success {
		nativetest.WriteOut(args[2], h.Delegate)
	}
	return uintptr(h.DelegateCode)
}

func (h *Host) close(args ...uintptr) uintptr {
	h.Closed++
	h.ClosedHandles = append(h.ClosedHandles, args[0])
	return uintptr(hostfxr.Success)
}

// Balanced reports whether every opened context was closed.
func (h *Host) Balanced() bool {
	return h.Opened == h.Closed
}

// LoadRequest is one call to a fake load_assembly_and_get_function_pointer.
type LoadRequest struct {
	AssemblyPath string
	TypeName     string
	MethodName   string
	DelegateType uintptr
}

// LoaderFunc answers a LoadRequest with a function pointer and status.
type LoaderFunc func(req LoadRequest) (uintptr, hostfxr.StatusCode)

// InstallLoader registers fn as the assembly loader delegate and makes
// hostfxr_get_runtime_delegate return it. It returns the delegate address.
func (h *Host) InstallLoader(fn LoaderFunc) uintptr {
	addr := h.Platform.Func(func(args ...uintptr) uintptr {
		req := LoadRequest{
			AssemblyPath: nativetest.String(args[0]),
			TypeName:     nativetest.String(args[1]),
			MethodName:   nativetest.String(args[2]),
			DelegateType: args[3],
		}
		ptr, code := fn(req)
		if code == hostfxr.Success {
			nativetest.WriteOut(args[5], ptr)
		}
		return uintptr(code)
	})
	h.Delegate = addr
	return addr
}
