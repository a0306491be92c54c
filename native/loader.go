package native

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/nplug-proxy/errors"
)

// AbortExitCode is the process exit status used by Abort.
const AbortExitCode = 134

// Abort is the default deployment error handler: it reports err and terminates the process.
func Abort(err error) {
	Logger().Error("deployment error", zap.Error(err))
	_ = Logger().Sync()
	fmt.Fprintf(os.Stderr, "nplug-proxy: fatal: %v\n", err)
	os.Exit(AbortExitCode)
}

// Loader opens libraries and resolves exports, treating every failure as a deployment error.
type Loader struct {
	platform Platform
	abort    func(error)
}

// NewLoader creates a Loader. A nil platform selects Default, a nil abort selects Abort.
func NewLoader(platform Platform, abort func(error)) *Loader {
	if platform == nil {
		platform = Default()
	}
	if abort == nil {
		abort = Abort
	}
	return &Loader{platform: platform, abort: abort}
}

// Platform returns the underlying platform.
func (l *Loader) Platform() Platform {
	return l.platform
}

// Load opens the library at path. On failure abort is invoked; if it returns,
// the error is returned as well.
func (l *Loader) Load(path string) (*Library, error) {
	handle, err := l.platform.Open(path)
	if err == nil && handle == 0 {
		err = fmt.Errorf("null handle")
	}
	if err != nil {
		e := errors.LibLoad(path, err)
		l.abort(e)
		return nil, e
	}

	Logger().Debug("library loaded", zap.String("path", path))
	return &Library{loader: l, handle: handle, path: path}, nil
}

// ModulePath resolves the path of the current module. Failure is a deployment error.
func (l *Loader) ModulePath() (string, error) {
	path, err := l.platform.ModulePath()
	if err == nil && path == "" {
		err = fmt.Errorf("empty module path")
	}
	if err != nil {
		e := errors.ModulePath(err)
		l.abort(e)
		return "", e
	}
	return path, nil
}

// Library is an opened dynamic library.
type Library struct {
	loader *Loader
	path   string
	handle uintptr
}

// Path returns the path the library was opened from.
func (lib *Library) Path() string {
	return lib.path
}

// Handle returns the raw OS handle.
func (lib *Library) Handle() uintptr {
	return lib.handle
}

// Export resolves an exported symbol. A missing symbol invokes abort; if it returns,
// the error is returned as well.
func (lib *Library) Export(name string) (uintptr, error) {
	sym, err := lib.loader.platform.Symbol(lib.handle, name)
	if err == nil && sym == 0 {
		err = fmt.Errorf("symbol resolved to null")
	}
	if err != nil {
		e := errors.MissingExport(lib.path, name, err)
		lib.loader.abort(e)
		return 0, e
	}
	return sym, nil
}
