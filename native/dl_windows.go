//go:build windows

package native

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

var defaultPlatform Platform = windowsPlatform{}

type windowsPlatform struct{}

func (windowsPlatform) Open(path string) (uintptr, error) {
	h, err := windows.LoadLibrary(path)
	return uintptr(h), err
}

func (windowsPlatform) Symbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func (windowsPlatform) Close(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return windows.FreeLibrary(windows.Handle(handle))
}

func (windowsPlatform) Call(fn uintptr, args ...uintptr) uintptr {
	r1, _, _ := purego.SyscallN(fn, args...)
	return r1
}

func (windowsPlatform) ModulePath() (string, error) {
	var module windows.Handle
	addr := reflect.ValueOf(anchor).Pointer()
	err := windows.GetModuleHandleEx(
		windows.GET_MODULE_HANDLE_EX_FLAG_FROM_ADDRESS|windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT,
		(*uint16)(unsafe.Pointer(addr)),
		&module,
	)
	if err != nil {
		return "", fmt.Errorf("GetModuleHandleEx: %w", err)
	}

	buf := make([]uint16, windows.MAX_LONG_PATH)
	n, err := windows.GetModuleFileName(module, &buf[0], uint32(len(buf)))
	if err != nil {
		return "", fmt.Errorf("GetModuleFileName: %w", err)
	}
	if n == 0 {
		return "", fmt.Errorf("GetModuleFileName returned an empty path")
	}
	return windows.UTF16ToString(buf[:n]), nil
}
