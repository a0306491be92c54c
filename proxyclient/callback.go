//go:build ((darwin || linux) && (amd64 || arm64)) || windows

package proxyclient

import "github.com/ebitengine/purego"

func newCallback(fn func() uintptr) (uintptr, error) {
	return purego.NewCallback(fn), nil
}
