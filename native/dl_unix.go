//go:build linux || darwin

package native

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

var defaultPlatform Platform = unixPlatform{}

type unixPlatform struct{}

func (unixPlatform) Open(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_LOCAL)
}

func (unixPlatform) Symbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func (unixPlatform) Close(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return purego.Dlclose(handle)
}

func (unixPlatform) Call(fn uintptr, args ...uintptr) uintptr {
	r1, _, _ := purego.SyscallN(fn, args...)
	return r1
}

// dlInfo mirrors Dl_info from <dlfcn.h>.
type dlInfo struct {
	fname uintptr
	fbase uintptr
	sname uintptr
	saddr uintptr
}

// dladdrLibraries lists the libraries exporting dladdr, in lookup order.
// glibc before 2.34 only exports it from libdl.
func dladdrLibraries() []string {
	if runtime.GOOS == "darwin" {
		return []string{"/usr/lib/libSystem.B.dylib"}
	}
	return []string{"libc.so.6", "libdl.so.2"}
}

func resolveDladdr() (uintptr, error) {
	var last error
	for _, name := range dladdrLibraries() {
		lib, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			last = err
			continue
		}
		sym, err := purego.Dlsym(lib, "dladdr")
		if err == nil {
			return sym, nil
		}
		last = err
	}
	return 0, fmt.Errorf("resolve dladdr: %w", last)
}

func (p unixPlatform) ModulePath() (string, error) {
	dladdr, err := resolveDladdr()
	if err != nil {
		return "", err
	}

	var pin runtime.Pinner
	info := new(dlInfo)
	pin.Pin(info)
	defer pin.Unpin()

	addr := reflect.ValueOf(anchor).Pointer()
	if p.Call(dladdr, addr, uintptr(unsafe.Pointer(info))) == 0 {
		return "", fmt.Errorf("dladdr: address %#x not in any loaded module", addr)
	}

	name := GoString(info.fname)
	if name == "" {
		// the anchor lives in the main executable
		exe, err := os.Executable()
		if err != nil {
			return "", err
		}
		name = exe
	}
	return realpath(name)
}

func realpath(name string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("realpath %s: %w", abs, err)
	}
	return resolved, nil
}
