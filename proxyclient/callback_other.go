//go:build !(((darwin || linux) && (amd64 || arm64)) || windows)

package proxyclient

import (
	"runtime"

	"github.com/wippyai/nplug-proxy/errors"
)

func newCallback(func() uintptr) (uintptr, error) {
	return 0, errors.Unsupported(errors.PhaseValidate, "native callbacks on "+runtime.GOOS+"/"+runtime.GOARCH)
}
