package hostfxr

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/coreos/go-semver/semver"
	"go.uber.org/zap"

	"github.com/wippyai/nplug-proxy/errors"
	"github.com/wippyai/nplug-proxy/native"
)

// SymbolGetHostfxrPath is the nethost discovery entry point.
const SymbolGetHostfxrPath = "get_hostfxr_path"

// Locator finds the hostfxr library on the current machine.
// A missing runtime is reported as an errors.KindNotFound error.
type Locator interface {
	Locate() (string, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func() (string, error)

// Locate implements Locator.
func (f LocatorFunc) Locate() (string, error) {
	return f()
}

// ChainLocator tries each locator in order and returns the first success.
type ChainLocator []Locator

// Locate implements Locator.
func (c ChainLocator) Locate() (string, error) {
	var last error
	for _, l := range c {
		path, err := l.Locate()
		if err == nil {
			return path, nil
		}
		Logger().Debug("locator miss", zap.Error(err))
		last = err
	}
	return "", errors.New(errors.PhaseDiscover, errors.KindNotFound).
		Detail("no .NET runtime host (hostfxr) found").
		Cause(last).
		Build()
}

// NethostLocator asks a nethost library shipped in Dir for the hostfxr path.
// It reports NotFound when the library is absent.
type NethostLocator struct {
	Loader *native.Loader
	Dir    string
}

// Locate implements Locator.
func (n *NethostLocator) Locate() (string, error) {
	path := filepath.Join(n.Dir, nethostLibraryName())
	if _, err := os.Stat(path); err != nil {
		return "", errors.New(errors.PhaseDiscover, errors.KindNotFound).
			Path(path).
			Detail("nethost not deployed").
			Build()
	}

	lib, err := n.Loader.Load(path)
	if err != nil {
		return "", err
	}
	fn, err := lib.Export(SymbolGetHostfxrPath)
	if err != nil {
		return "", err
	}

	p := n.Loader.Platform()
	size := uintptr(4096)

	// A buffer that is too small is reported once with the required size.
	for attempt := 0; attempt < 2; attempt++ {
		result, code := getHostfxrPath(p, fn, size)
		if code == Success {
			return result.path, nil
		}
		if code == HostApiBufferTooSmall && result.size > size {
			size = result.size
			continue
		}
		return "", errors.New(errors.PhaseDiscover, errors.KindNotFound).
			Symbol(SymbolGetHostfxrPath).
			Code(uint32(code)).
			Detail("nethost could not locate hostfxr: %s", code).
			Build()
	}
	return "", errors.NotFound(errors.PhaseDiscover, "hostfxr")
}

type nethostResult struct {
	path string
	size uintptr
}

func getHostfxrPath(p native.Platform, fn, size uintptr) (nethostResult, StatusCode) {
	var a native.Arena
	defer a.Free()

	buf := a.Buffer(int(size))
	sizeSlot := a.Slot()
	*sizeSlot = size

	code := status(p.Call(fn, buf, native.Addr(sizeSlot), 0))
	return nethostResult{path: native.GoString(buf), size: *sizeSlot}, code
}

// InstallLocator searches the standard .NET install locations for
// host/fxr/<version>/<hostfxr library>, preferring the highest version.
//
// Search order: Roots, DOTNET_ROOT_<ARCH>, DOTNET_ROOT, the registered install
// location, then the platform default directories.
type InstallLocator struct {
	// Getenv reads environment variables; nil selects os.Getenv.
	Getenv func(string) string
	// Registered returns registered install locations; nil selects the platform
	// default (install_location files on unix, the registry on Windows).
	Registered func() []string
	// Roots are searched before anything else.
	Roots []string
	// DefaultDirs replaces the platform default directories when non-nil.
	DefaultDirs []string
}

// Locate implements Locator.
func (l *InstallLocator) Locate() (string, error) {
	for _, root := range l.candidates() {
		if path, ok := findFxr(root); ok {
			Logger().Debug("hostfxr found", zap.String("root", root), zap.String("path", path))
			return path, nil
		}
	}
	return "", errors.NotFound(errors.PhaseDiscover, "hostfxr in .NET install locations")
}

func (l *InstallLocator) candidates() []string {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	registered := l.Registered
	if registered == nil {
		registered = registeredInstallLocations
	}
	defaults := l.DefaultDirs
	if defaults == nil {
		defaults = defaultInstallDirs()
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(dirs ...string) {
		for _, d := range dirs {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}

	add(l.Roots...)
	add(getenv("DOTNET_ROOT_" + strings.ToUpper(archName())))
	add(getenv("DOTNET_ROOT"))
	add(registered()...)
	add(defaults...)
	return out
}

// findFxr returns the hostfxr library of the highest semver version under root.
func findFxr(root string) (string, bool) {
	fxrDir := filepath.Join(root, "host", "fxr")
	entries, err := os.ReadDir(fxrDir)
	if err != nil {
		return "", false
	}

	var best *semver.Version
	var bestPath string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		v, err := semver.NewVersion(entry.Name())
		if err != nil {
			continue
		}
		candidate := filepath.Join(fxrDir, entry.Name(), hostfxrLibraryName())
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if best == nil || best.LessThan(*v) {
			best = v
			bestPath = candidate
		}
	}
	return bestPath, best != nil
}

// archName returns the .NET architecture moniker for the running process.
func archName() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	case "arm64":
		return "arm64"
	case "arm":
		return "arm"
	}
	return runtime.GOARCH
}

// DefaultLocator returns the discovery chain used by the proxy: nethost next to the
// module in dir, then the standard install locations (roots first).
func DefaultLocator(loader *native.Loader, dir string, roots ...string) Locator {
	return ChainLocator{
		&NethostLocator{Loader: loader, Dir: dir},
		&InstallLocator{Roots: roots},
	}
}
