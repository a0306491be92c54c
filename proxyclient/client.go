// Package proxyclient drives a built proxy library from Go: it installs factory
// overrides through nplug_set_plugin_factory and calls GetPluginFactory.
package proxyclient

import (
	"go.uber.org/zap"

	"github.com/wippyai/nplug-proxy/errors"
	"github.com/wippyai/nplug-proxy/native"
)

// Exports of a proxy library.
const (
	SymbolSetPluginFactory = "nplug_set_plugin_factory"
	SymbolGetPluginFactory = "GetPluginFactory"
)

// Client is an opened proxy library.
type Client struct {
	platform   native.Platform
	lib        *native.Library
	setFactory uintptr
	getFactory uintptr
}

// Load opens the proxy library at path with the default platform.
func Load(path string) (*Client, error) {
	return Open(native.Default(), path)
}

// Open opens the proxy library at path using p. Failures are returned, never aborted.
func Open(p native.Platform, path string) (*Client, error) {
	loader := native.NewLoader(p, ignoreAbort)

	lib, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	c := &Client{platform: p, lib: lib}

	if c.setFactory, err = lib.Export(SymbolSetPluginFactory); err != nil {
		_ = c.Close()
		return nil, err
	}
	if c.getFactory, err = lib.Export(SymbolGetPluginFactory); err != nil {
		_ = c.Close()
		return nil, err
	}

	native.Logger().Debug("proxy library opened", zap.String("path", path))
	return c, nil
}

func ignoreAbort(error) {}

// Path returns the path of the proxy library.
func (c *Client) Path() string {
	return c.lib.Path()
}

// SetFactoryPointer installs a native factory function pointer as the override.
func (c *Client) SetFactoryPointer(fn uintptr) {
	c.platform.Call(c.setFactory, fn)
}

// SetFactory installs fn as the override through a native callback.
// Callbacks are never released; install a bounded number per process.
func (c *Client) SetFactory(fn func() uintptr) error {
	if fn == nil {
		return errors.InvalidInput(errors.PhaseValidate, "nil factory func")
	}
	cb, err := newCallback(fn)
	if err != nil {
		return err
	}
	c.SetFactoryPointer(cb)
	return nil
}

// GetPluginFactory calls the library's GetPluginFactory export.
func (c *Client) GetPluginFactory() uintptr {
	return c.platform.Call(c.getFactory)
}

// Close releases the library handle.
func (c *Client) Close() error {
	return c.platform.Close(c.lib.Handle())
}
