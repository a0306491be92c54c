//go:build !linux && !darwin && !windows

package native

import (
	"fmt"
	"runtime"
)

var defaultPlatform Platform = unsupportedPlatform{}

type unsupportedPlatform struct{}

func (unsupportedPlatform) Open(path string) (uintptr, error) {
	return 0, fmt.Errorf("dynamic libraries are not supported on %s", runtime.GOOS)
}

func (unsupportedPlatform) Symbol(uintptr, string) (uintptr, error) {
	return 0, fmt.Errorf("dynamic libraries are not supported on %s", runtime.GOOS)
}

func (unsupportedPlatform) Close(uintptr) error {
	return nil
}

func (unsupportedPlatform) Call(uintptr, ...uintptr) uintptr {
	panic("native: calls are not supported on " + runtime.GOOS)
}

func (unsupportedPlatform) ModulePath() (string, error) {
	return "", fmt.Errorf("module path is not supported on %s", runtime.GOOS)
}
