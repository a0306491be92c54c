// Package nativetest provides an in-memory native.Platform for tests.
//
// Libraries are registered by path, symbols by name, and every "function pointer" is a
// fake address that dispatches to a Go func when passed to Call. Out-parameters written
// by native code are emulated with WriteOut.
package nativetest

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/wippyai/nplug-proxy/native"
)

// Func emulates a native function.
type Func func(args ...uintptr) uintptr

type library struct {
	path    string
	symbols map[string]uintptr
	handle  uintptr
}

// Platform is a fake native.Platform.
type Platform struct {
	moduleErr  error
	libs       map[string]*library
	handles    map[uintptr]*library
	funcs      map[uintptr]Func
	calls      map[uintptr]int
	openErr    map[string]error
	modulePath string
	opened     []string
	next       uintptr
	mu         sync.Mutex
}

var _ native.Platform = (*Platform)(nil)

// New creates a fake platform reporting modulePath as the current module.
func New(modulePath string) *Platform {
	return &Platform{
		modulePath: modulePath,
		libs:       make(map[string]*library),
		handles:    make(map[uintptr]*library),
		funcs:      make(map[uintptr]Func),
		calls:      make(map[uintptr]int),
		openErr:    make(map[string]error),
		next:       0x10000,
	}
}

func (p *Platform) alloc() uintptr {
	p.next += 0x10
	return p.next
}

// Library is a handle to a registered fake library.
type Library struct {
	p   *Platform
	lib *library
}

// AddLibrary registers a library that Open will accept at path.
func (p *Platform) AddLibrary(path string) *Library {
	p.mu.Lock()
	defer p.mu.Unlock()

	lib := &library{path: path, symbols: make(map[string]uintptr), handle: p.alloc()}
	p.libs[path] = lib
	p.handles[lib.handle] = lib
	return &Library{p: p, lib: lib}
}

// Define exports fn from the library under name and returns its fake address.
func (l *Library) Define(name string, fn Func) uintptr {
	addr := l.p.Func(fn)
	l.p.mu.Lock()
	l.lib.symbols[name] = addr
	l.p.mu.Unlock()
	return addr
}

// Func registers an anonymous native function and returns its fake address.
func (p *Platform) Func(fn Func) uintptr {
	p.mu.Lock()
	defer p.mu.Unlock()

	addr := p.alloc()
	p.funcs[addr] = fn
	return addr
}

// FailOpen makes Open of path fail with err.
func (p *Platform) FailOpen(path string, err error) {
	p.mu.Lock()
	p.openErr[path] = err
	p.mu.Unlock()
}

// FailModulePath makes ModulePath fail with err.
func (p *Platform) FailModulePath(err error) {
	p.mu.Lock()
	p.moduleErr = err
	p.mu.Unlock()
}

// Opened returns the paths passed to successful Open calls, in order.
func (p *Platform) Opened() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.opened...)
}

// Calls returns how many times fn was invoked through Call.
func (p *Platform) Calls(fn uintptr) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[fn]
}

// Open implements native.Platform.
func (p *Platform) Open(path string) (uintptr, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err, ok := p.openErr[path]; ok {
		return 0, err
	}
	lib, ok := p.libs[path]
	if !ok {
		return 0, fmt.Errorf("%s: cannot open shared object file", path)
	}
	p.opened = append(p.opened, path)
	return lib.handle, nil
}

// Symbol implements native.Platform.
func (p *Platform) Symbol(handle uintptr, name string) (uintptr, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	lib, ok := p.handles[handle]
	if !ok {
		return 0, fmt.Errorf("invalid handle %#x", handle)
	}
	sym, ok := lib.symbols[name]
	if !ok {
		return 0, fmt.Errorf("%s: undefined symbol: %s", lib.path, name)
	}
	return sym, nil
}

// Close implements native.Platform.
func (p *Platform) Close(handle uintptr) error {
	return nil
}

// Call implements native.Platform. Calling an unregistered address panics.
func (p *Platform) Call(fn uintptr, args ...uintptr) uintptr {
	p.mu.Lock()
	f, ok := p.funcs[fn]
	if ok {
		p.calls[fn]++
	}
	p.mu.Unlock()

	if !ok {
		panic(fmt.Sprintf("nativetest: call to unknown function %#x", fn))
	}
	return f(args...)
}

// ModulePath implements native.Platform.
func (p *Platform) ModulePath() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.moduleErr != nil {
		return "", p.moduleErr
	}
	return p.modulePath, nil
}

// WriteOut stores v through an out-parameter address received as a call argument.
func WriteOut(addr, v uintptr) {
	*(*uintptr)(unsafe.Pointer(addr)) = v
}

// String decodes a char_t* call argument.
func String(addr uintptr) string {
	return native.GoString(addr)
}

// Aborts records deployment errors instead of terminating the process.
type Aborts struct {
	errs []error
	mu   sync.Mutex
}

// Abort is a native.Loader abort function.
func (a *Aborts) Abort(err error) {
	a.mu.Lock()
	a.errs = append(a.errs, err)
	a.mu.Unlock()
}

// Errors returns the recorded errors.
func (a *Aborts) Errors() []error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]error(nil), a.errs...)
}
