package hostfxr_test

import (
	"testing"

	"github.com/wippyai/nplug-proxy/errors"
	"github.com/wippyai/nplug-proxy/hostfxr"
	"github.com/wippyai/nplug-proxy/hostfxr/hostfxrtest"
	"github.com/wippyai/nplug-proxy/native"
	"github.com/wippyai/nplug-proxy/native/nativetest"
)

const (
	fxrPath    = "/usr/share/dotnet/host/fxr/8.0.1/libhostfxr.so"
	configPath = "/plugins/Delay.runtimeconfig.json"
)

type fixture struct {
	platform *nativetest.Platform
	host     *hostfxrtest.Host
	aborts   *nativetest.Aborts
	boot     *hostfxr.Bootstrapper
}

func newFixture(t *testing.T, policy hostfxr.InitPolicy) *fixture {
	t.Helper()
	p := nativetest.New("/plugins/Delay.so")
	f := &fixture{
		platform: p,
		host:     hostfxrtest.Install(p, fxrPath),
		aborts:   &nativetest.Aborts{},
	}
	loader := native.NewLoader(p, f.aborts.Abort)
	f.boot = hostfxr.NewBootstrapper(loader, &hostfxr.Config{
		Locator: hostfxr.LocatorFunc(func() (string, error) { return fxrPath, nil }),
		Policy:  policy,
	})
	return f
}

func (f *fixture) assertBalanced(t *testing.T) {
	t.Helper()
	if !f.host.Balanced() {
		t.Errorf("opened %d contexts, closed %d", f.host.Opened, f.host.Closed)
	}
	stats := f.boot.Stats()
	if stats.Opened != stats.Closed {
		t.Errorf("stats opened %d, closed %d", stats.Opened, stats.Closed)
	}
}

func TestBootstrap_Success(t *testing.T) {
	f := newFixture(t, hostfxr.PolicyCompatible)

	al, err := f.boot.Bootstrap(configPath)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if al.Pointer() != f.host.Delegate {
		t.Errorf("delegate = %#x, want %#x", al.Pointer(), f.host.Delegate)
	}
	if f.boot.State() != hostfxr.StateContextClosed {
		t.Errorf("state = %s, want %s", f.boot.State(), hostfxr.StateContextClosed)
	}
	if len(f.host.ConfigPaths) != 1 || f.host.ConfigPaths[0] != configPath {
		t.Errorf("config paths = %v", f.host.ConfigPaths)
	}
	if len(f.host.DelegateTypes) != 1 || f.host.DelegateTypes[0] != hostfxr.DelegateLoadAssemblyAndGetFunctionPtr {
		t.Errorf("delegate types = %v", f.host.DelegateTypes)
	}
	if len(f.host.ClosedHandles) != 1 || f.host.ClosedHandles[0] != hostfxrtest.DefaultHandle {
		t.Errorf("closed handles = %v", f.host.ClosedHandles)
	}
	if f.boot.Exports() == nil || f.boot.Exports().Library != fxrPath {
		t.Errorf("exports = %+v", f.boot.Exports())
	}
	f.assertBalanced(t)
}

func TestBootstrap_InitStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		code   hostfxr.StatusCode
		policy hostfxr.InitPolicy
		ok     bool
	}{
		{"success", hostfxr.Success, hostfxr.PolicyCompatible, true},
		{"already initialized", hostfxr.SuccessHostAlreadyInitialized, hostfxr.PolicyCompatible, true},
		{"different properties", hostfxr.SuccessDifferentRuntimeProperties, hostfxr.PolicyCompatible, true},
		{"different properties strict", hostfxr.SuccessDifferentRuntimeProperties, hostfxr.PolicyStrict, false},
		{"already initialized strict", hostfxr.SuccessHostAlreadyInitialized, hostfxr.PolicyStrict, true},
		{"three", 3, hostfxr.PolicyCompatible, false},
		{"incompatible config", hostfxr.CoreHostIncompatibleConfig, hostfxr.PolicyCompatible, false},
		{"invalid config file", hostfxr.InvalidConfigFile, hostfxr.PolicyCompatible, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.policy)
			f.host.InitCode = tt.code

			_, err := f.boot.Bootstrap(configPath)
			if tt.ok {
				if err != nil {
					t.Fatalf("Bootstrap: %v", err)
				}
			} else {
				var e *errors.Error
				if !errors.As(err, &e) {
					t.Fatalf("expected *errors.Error, got %v", err)
				}
				if e.Kind != errors.KindInitFailed || e.Code != uint32(tt.code) {
					t.Errorf("got %+v", e)
				}
				if f.boot.State() != hostfxr.StateFailed {
					t.Errorf("state = %s", f.boot.State())
				}
				if len(f.host.DelegateTypes) != 0 {
					t.Error("delegate must not be requested after init failure")
				}
			}
			f.assertBalanced(t)
		})
	}
}

func TestBootstrap_NullContextIsFailure(t *testing.T) {
	for _, code := range []hostfxr.StatusCode{hostfxr.Success, hostfxr.SuccessHostAlreadyInitialized} {
		t.Run(code.String(), func(t *testing.T) {
			f := newFixture(t, hostfxr.PolicyCompatible)
			f.host.InitCode = code
			f.host.InitHandle = 0

			_, err := f.boot.Bootstrap(configPath)
			if errors.KindOf(err) != errors.KindInitFailed {
				t.Fatalf("err = %v, want init failure", err)
			}
			if len(f.host.ClosedHandles) != 1 || f.host.ClosedHandles[0] != 0 {
				t.Errorf("closed handles = %v, want [0]", f.host.ClosedHandles)
			}
			f.assertBalanced(t)
		})
	}
}

func TestBootstrap_DelegateFailureClosesContext(t *testing.T) {
	f := newFixture(t, hostfxr.PolicyCompatible)
	f.host.DelegateCode = hostfxr.HostApiFailed

	_, err := f.boot.Bootstrap(configPath)
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindDelegateFailed {
		t.Fatalf("err = %v, want delegate failure", err)
	}
	if e.Code != uint32(hostfxr.HostApiFailed) {
		t.Errorf("code = %#x", e.Code)
	}
	if f.boot.State() != hostfxr.StateFailed {
		t.Errorf("state = %s", f.boot.State())
	}
	f.assertBalanced(t)
}

func TestBootstrap_NullDelegateIsFailure(t *testing.T) {
	f := newFixture(t, hostfxr.PolicyCompatible)
	f.host.Delegate = 0

	if _, err := f.boot.Bootstrap(configPath); errors.KindOf(err) != errors.KindDelegateFailed {
		t.Fatalf("err = %v, want delegate failure", err)
	}
	f.assertBalanced(t)
}

func TestBootstrap_DiscoveryNotFound(t *testing.T) {
	p := nativetest.New("/plugins/Delay.so")
	var aborts nativetest.Aborts
	boot := hostfxr.NewBootstrapper(native.NewLoader(p, aborts.Abort), &hostfxr.Config{
		Locator: hostfxr.ChainLocator{
			hostfxr.LocatorFunc(func() (string, error) {
				return "", errors.NotFound(errors.PhaseDiscover, "hostfxr")
			}),
		},
	})

	_, err := boot.Bootstrap(configPath)
	if errors.KindOf(err) != errors.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
	if errors.IsDeployment(err) {
		t.Error("missing runtime must not be a deployment error")
	}
	if len(aborts.Errors()) != 0 {
		t.Errorf("unexpected aborts: %v", aborts.Errors())
	}
	if boot.State() != hostfxr.StateFailed {
		t.Errorf("state = %s", boot.State())
	}
	if len(p.Opened()) != 0 {
		t.Errorf("no library should be opened, got %v", p.Opened())
	}
}

func TestBootstrap_MissingExport(t *testing.T) {
	p := nativetest.New("/plugins/Delay.so")
	lib := p.AddLibrary(fxrPath)
	noop := func(args ...uintptr) uintptr { return 0 }
	lib.Define(hostfxr.SymbolInitializeForRuntimeConfig, noop)
	lib.Define(hostfxr.SymbolGetRuntimeDelegate, noop)

	var aborts nativetest.Aborts
	boot := hostfxr.NewBootstrapper(native.NewLoader(p, aborts.Abort), &hostfxr.Config{
		Locator: hostfxr.LocatorFunc(func() (string, error) { return fxrPath, nil }),
	})

	_, err := boot.Bootstrap(configPath)
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindMissingExport || e.Symbol != hostfxr.SymbolClose {
		t.Fatalf("err = %v, want missing %s", err, hostfxr.SymbolClose)
	}
	if len(aborts.Errors()) != 1 {
		t.Errorf("aborts = %d, want 1", len(aborts.Errors()))
	}
	if boot.Exports() != nil {
		t.Error("partial export table must not be kept")
	}
	if boot.State() != hostfxr.StateFailed {
		t.Errorf("state = %s", boot.State())
	}
}

func TestBootstrap_SecondAttemptReusesExports(t *testing.T) {
	f := newFixture(t, hostfxr.PolicyCompatible)

	if _, err := f.boot.Bootstrap(configPath); err != nil {
		t.Fatalf("first Bootstrap: %v", err)
	}

	// a process that already hosts the runtime reports code 1
	f.host.InitCode = hostfxr.SuccessHostAlreadyInitialized
	if _, err := f.boot.Bootstrap(configPath); err != nil {
		t.Fatalf("second Bootstrap: %v", err)
	}

	if opened := f.platform.Opened(); len(opened) != 1 {
		t.Errorf("hostfxr opened %d times, want 1", len(opened))
	}
	if f.host.Opened != 2 {
		t.Errorf("contexts opened = %d, want 2", f.host.Opened)
	}
	if f.boot.Stats().Attempts != 2 {
		t.Errorf("attempts = %d, want 2", f.boot.Stats().Attempts)
	}
	f.assertBalanced(t)
}

func TestInitializeContext_WithoutExports(t *testing.T) {
	boot := hostfxr.NewBootstrapper(native.NewLoader(nativetest.New("/x.so"), nil), nil)
	if _, err := boot.InitializeContext(configPath); errors.KindOf(err) != errors.KindInitFailed {
		t.Errorf("err = %v", err)
	}
	if _, err := boot.ResolveAssemblyLoader(1); errors.KindOf(err) != errors.KindDelegateFailed {
		t.Errorf("err = %v", err)
	}
}

func TestAssemblyLoader_FunctionPointer(t *testing.T) {
	f := newFixture(t, hostfxr.PolicyCompatible)

	var got hostfxrtest.LoadRequest
	f.host.InstallLoader(func(req hostfxrtest.LoadRequest) (uintptr, hostfxr.StatusCode) {
		got = req
		return 0xFAC7, hostfxr.Success
	})

	al, err := f.boot.Bootstrap(configPath)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	fn, err := al.FunctionPointer("/plugins/Delay.dll", "NPlug.Interop.NPlugFactoryExport, Delay", "GetPluginFactory")
	if err != nil {
		t.Fatalf("FunctionPointer: %v", err)
	}
	if fn != 0xFAC7 {
		t.Errorf("fn = %#x, want 0xFAC7", fn)
	}

	want := hostfxrtest.LoadRequest{
		AssemblyPath: "/plugins/Delay.dll",
		TypeName:     "NPlug.Interop.NPlugFactoryExport, Delay",
		MethodName:   "GetPluginFactory",
		DelegateType: hostfxr.UnmanagedCallersOnly,
	}
	if got != want {
		t.Errorf("request = %+v, want %+v", got, want)
	}
}

func TestAssemblyLoader_Failure(t *testing.T) {
	p := nativetest.New("/x.so")
	tests := []struct {
		name string
		ptr  uintptr
		code hostfxr.StatusCode
	}{
		{"error code", 0, hostfxr.StatusCode(0x80070002)},
		{"null pointer", 0, hostfxr.Success},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := p.Func(func(args ...uintptr) uintptr {
				nativetest.WriteOut(args[5], tt.ptr)
				return uintptr(tt.code)
			})
			al := hostfxr.NewAssemblyLoader(p, fn)

			_, err := al.FunctionPointer("/plugins/Delay.dll", "T, Delay", "GetPluginFactory")
			var e *errors.Error
			if !errors.As(err, &e) || e.Kind != errors.KindAssemblyFailed {
				t.Fatalf("err = %v", err)
			}
			if e.Code != uint32(tt.code) {
				t.Errorf("code = %#x, want %#x", e.Code, uint32(tt.code))
			}
		})
	}
}
