package hostfxr

import (
	"go.uber.org/zap"

	"github.com/wippyai/nplug-proxy/errors"
	"github.com/wippyai/nplug-proxy/native"
)

// State is the position of a bootstrap attempt.
type State int

const (
	StateUninitialized State = iota
	StateLibraryDiscovered
	StateFunctionsResolved
	StateContextOpen
	StateDelegateResolved
	StateContextClosed
	StateFailed
)

var stateNames = [...]string{
	StateUninitialized:     "uninitialized",
	StateLibraryDiscovered: "library_discovered",
	StateFunctionsResolved: "functions_resolved",
	StateContextOpen:       "context_open",
	StateDelegateResolved:  "delegate_resolved",
	StateContextClosed:     "context_closed",
	StateFailed:            "failed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Stats counts hosting context operations over the bootstrapper lifetime.
type Stats struct {
	// Attempts counts Bootstrap calls.
	Attempts int
	Opened   int
	Closed   int
}

// Config holds configuration for bootstrapper creation
type Config struct {
	// Locator discovers hostfxr. Nil selects an InstallLocator with default settings.
	Locator Locator

	// Policy selects the accepted initialize status codes.
	Policy InitPolicy
}

// Bootstrapper initializes the .NET hosting layer and resolves the
// load_assembly_and_get_function_pointer delegate.
//
// The export table is resolved once and reused by later attempts. Each attempt opens
// its own hosting context and closes it before returning. Bootstrapper is not safe for
// concurrent use.
type Bootstrapper struct {
	loader  *native.Loader
	locator Locator
	exports *Exports
	stats   Stats
	policy  InitPolicy
	state   State
}

// NewBootstrapper creates a bootstrapper using loader for library access.
// A nil cfg selects defaults.
func NewBootstrapper(loader *native.Loader, cfg *Config) *Bootstrapper {
	b := &Bootstrapper{loader: loader}
	if cfg != nil {
		b.locator = cfg.Locator
		b.policy = cfg.Policy
	}
	if b.locator == nil {
		b.locator = &InstallLocator{}
	}
	return b
}

// State returns the state reached by the latest attempt.
func (b *Bootstrapper) State() State {
	return b.state
}

// Stats returns context open/close counters.
func (b *Bootstrapper) Stats() Stats {
	return b.stats
}

// Exports returns the resolved function table, or nil before the first successful load.
func (b *Bootstrapper) Exports() *Exports {
	return b.exports
}

func (b *Bootstrapper) fail(err error) error {
	b.state = StateFailed
	Logger().Debug("bootstrap failed", zap.Error(err))
	return err
}

// DiscoverHostLibrary locates the hostfxr library.
func (b *Bootstrapper) DiscoverHostLibrary() (string, error) {
	path, err := b.locator.Locate()
	if err != nil {
		return "", b.fail(err)
	}
	if path == "" {
		return "", b.fail(errors.NotFound(errors.PhaseDiscover, "hostfxr"))
	}
	b.state = StateLibraryDiscovered
	Logger().Debug("hostfxr discovered", zap.String("path", path))
	return path, nil
}

// LoadBootstrapFunctions opens the hostfxr library at path and resolves its exports.
func (b *Bootstrapper) LoadBootstrapFunctions(path string) error {
	lib, err := b.loader.Load(path)
	if err != nil {
		return b.fail(err)
	}
	exports, err := LoadExports(lib)
	if err != nil {
		return b.fail(err)
	}
	b.exports = exports
	b.state = StateFunctionsResolved
	return nil
}

// InitializeContext opens a hosting context from a runtimeconfig.json path.
// On failure the returned handle, if any, has already been closed.
func (b *Bootstrapper) InitializeContext(configPath string) (Handle, error) {
	if b.exports == nil {
		return 0, b.fail(errors.New(errors.PhaseInit, errors.KindInitFailed).
			Path(configPath).
			Detail("hosting functions not loaded").
			Build())
	}

	var a native.Arena
	defer a.Free()

	cfg, err := a.String(configPath)
	if err != nil {
		return 0, b.fail(errors.Wrap(errors.PhaseInit, errors.KindInvalidInput, err, "encode config path"))
	}
	out := a.Slot()

	p := b.loader.Platform()
	code := status(p.Call(b.exports.InitializeForRuntimeConfig, cfg, 0, native.Addr(out)))
	h := Handle(*out)
	b.stats.Opened++

	if !b.policy.Accepts(code) || h == 0 {
		b.closeContext(h)
		detail := "initialize for runtime config rejected: " + code.String()
		if h == 0 {
			detail = "initialize for runtime config returned a null context: " + code.String()
		}
		return 0, b.fail(errors.InitFailed(configPath, uint32(code), detail))
	}

	b.state = StateContextOpen
	Logger().Debug("hosting context open",
		zap.String("config", configPath),
		zap.Stringer("status", code))
	return h, nil
}

// ResolveAssemblyLoader requests the load_assembly_and_get_function_pointer delegate
// and closes the context whether or not that succeeds.
func (b *Bootstrapper) ResolveAssemblyLoader(h Handle) (*AssemblyLoader, error) {
	if b.exports == nil {
		return nil, b.fail(errors.DelegateFailed(0, "hosting functions not loaded"))
	}

	var a native.Arena
	defer a.Free()

	out := a.Slot()
	p := b.loader.Platform()
	code := status(p.Call(b.exports.GetRuntimeDelegate,
		uintptr(h),
		uintptr(DelegateLoadAssemblyAndGetFunctionPtr),
		native.Addr(out)))
	fn := *out
	resolved := code == Success && fn != 0
	if resolved {
		b.state = StateDelegateResolved
	}

	b.closeContext(h)

	if !resolved {
		return nil, b.fail(errors.DelegateFailed(uint32(code),
			"load_assembly_and_get_function_pointer unavailable: "+code.String()))
	}

	b.state = StateContextClosed
	return NewAssemblyLoader(p, fn), nil
}

// Bootstrap runs one full attempt: discover and load hostfxr (first attempt only),
// open a context for configPath, and resolve the assembly loader delegate.
func (b *Bootstrapper) Bootstrap(configPath string) (*AssemblyLoader, error) {
	b.state = StateUninitialized
	b.stats.Attempts++

	if b.exports == nil {
		path, err := b.DiscoverHostLibrary()
		if err != nil {
			return nil, err
		}
		if err := b.LoadBootstrapFunctions(path); err != nil {
			return nil, err
		}
	} else {
		b.state = StateFunctionsResolved
	}

	h, err := b.InitializeContext(configPath)
	if err != nil {
		return nil, err
	}
	return b.ResolveAssemblyLoader(h)
}

// closeContext calls hostfxr_close; a null handle is passed through unchanged.
func (b *Bootstrapper) closeContext(h Handle) {
	code := status(b.loader.Platform().Call(b.exports.Close, uintptr(h)))
	b.stats.Closed++
	if code != Success {
		Logger().Debug("hostfxr_close", zap.Stringer("status", code))
	}
}
