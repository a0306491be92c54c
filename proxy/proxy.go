package proxy

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/nplug-proxy/errors"
	"github.com/wippyai/nplug-proxy/hostfxr"
	"github.com/wippyai/nplug-proxy/native"
)

// Options configures a Proxy.
type Options struct {
	// Platform provides native access. Nil selects native.Default().
	Platform native.Platform

	// Abort handles deployment errors. Nil selects native.Abort.
	Abort func(error)

	// Locator discovers hostfxr. Nil selects hostfxr.DefaultLocator rooted at the
	// module directory, with DotnetRoot searched first.
	Locator hostfxr.Locator

	// Policy selects the accepted initialize status codes.
	Policy hostfxr.InitPolicy

	// DotnetRoot is an install root searched before the standard locations.
	DotnetRoot string

	// Factory is an in-process override used when no native override is set.
	Factory func() uintptr
}

// DefaultOptions returns default proxy configuration.
func DefaultOptions() Options {
	return Options{Policy: hostfxr.PolicyCompatible}
}

// Result is the outcome of one Resolve call: a non-zero Factory, or Err.
type Result struct {
	Err     *errors.Error
	Factory uintptr
}

// OK reports whether a factory pointer was obtained.
func (r Result) OK() bool {
	return r.Err == nil && r.Factory != 0
}

// Proxy resolves the managed plugin factory.
//
// Resolve is not safe for concurrent use; the override may be set from any thread.
type Proxy struct {
	loader   *native.Loader
	boot     *hostfxr.Bootstrapper
	options  Options
	override atomic.Uintptr
}

// New creates a Proxy with the given options.
func New(opts Options) *Proxy {
	return &Proxy{
		loader:  native.NewLoader(opts.Platform, opts.Abort),
		options: opts,
	}
}

// NewWithDefaults creates a Proxy with default options.
func NewWithDefaults() *Proxy {
	return New(DefaultOptions())
}

// Options returns the configuration.
func (p *Proxy) Options() Options {
	return p.options
}

// Bootstrapper returns the bootstrapper used by previous attempts, or nil if no
// bootstrap has run yet.
func (p *Proxy) Bootstrapper() *hostfxr.Bootstrapper {
	return p.boot
}

// SetFactoryOverride installs a native function pointer returning the factory.
// Zero clears the override. The pointer is not validated.
func (p *Proxy) SetFactoryOverride(fn uintptr) {
	p.override.Store(fn)
}

// FactoryOverride returns the installed native override, or 0.
func (p *Proxy) FactoryOverride() uintptr {
	return p.override.Load()
}

// GetPluginFactory returns the factory pointer, or 0 if none is available.
func (p *Proxy) GetPluginFactory() uintptr {
	return p.Resolve().Factory
}

// Resolve produces the plugin factory. An installed override is called on every
// request and its result is returned as is; otherwise a full bootstrap runs.
func (p *Proxy) Resolve() Result {
	if fn := p.override.Load(); fn != 0 {
		factory := p.loader.Platform().Call(fn)
		if factory == 0 {
			return p.fail(errors.NilPointer(errors.PhaseInvoke, "factory override"))
		}
		return Result{Factory: factory}
	}

	if p.options.Factory != nil {
		factory := p.options.Factory()
		if factory == 0 {
			return p.fail(errors.NilPointer(errors.PhaseInvoke, "factory func"))
		}
		return Result{Factory: factory}
	}

	return p.bootstrap()
}

func (p *Proxy) bootstrap() Result {
	modulePath, err := p.loader.ModulePath()
	if err != nil {
		return p.fail(err)
	}

	layout, err := DeriveLayout(modulePath)
	if err != nil {
		return p.fail(err)
	}
	Logger().Debug("bootstrapping managed factory",
		zap.String("module", modulePath),
		zap.String("config", layout.ConfigPath()),
		zap.String("assembly", layout.AssemblyPath()))

	assemblyLoader, err := p.bootstrapper(layout).Bootstrap(layout.ConfigPath())
	if err != nil {
		return p.fail(err)
	}

	fn, err := assemblyLoader.FunctionPointer(layout.AssemblyPath(), layout.TypeName(), FactoryMethod)
	if err != nil {
		return p.fail(err)
	}

	factory := p.loader.Platform().Call(fn)
	if factory == 0 {
		return p.fail(errors.NilPointer(errors.PhaseInvoke, FactoryMethod))
	}

	Logger().Debug("managed factory resolved", zap.Uintptr("factory", factory))
	return Result{Factory: factory}
}

// bootstrapper returns the bootstrapper for layout, creating it on first use so the
// export table survives across attempts.
func (p *Proxy) bootstrapper(layout Layout) *hostfxr.Bootstrapper {
	if p.boot != nil {
		return p.boot
	}

	locator := p.options.Locator
	if locator == nil {
		var roots []string
		if p.options.DotnetRoot != "" {
			roots = append(roots, p.options.DotnetRoot)
		}
		locator = hostfxr.DefaultLocator(p.loader, layout.RootDir, roots...)
	}

	p.boot = hostfxr.NewBootstrapper(p.loader, &hostfxr.Config{
		Locator: locator,
		Policy:  p.options.Policy,
	})
	return p.boot
}

func (p *Proxy) fail(err error) Result {
	var e *errors.Error
	if !errors.As(err, &e) {
		e = errors.Wrap(errors.PhaseInvoke, errors.KindUnsupported, err, "unexpected failure")
	}
	Logger().Warn("plugin factory unavailable", zap.Error(e))
	return Result{Err: e}
}
