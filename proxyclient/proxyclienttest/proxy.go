// Package proxyclienttest installs a fake proxy library into a nativetest.Platform.
package proxyclienttest

import (
	"github.com/wippyai/nplug-proxy/native/nativetest"
	"github.com/wippyai/nplug-proxy/proxyclient"
)

// Proxy emulates the proxy exports. GetPluginFactory calls the installed override,
// or returns Fallback when none is set.
type Proxy struct {
	Platform *nativetest.Platform
	Library  *nativetest.Library
	Override uintptr
	Fallback uintptr
	Sets     int
	Gets     int
}

// Install registers a proxy library at path.
func Install(p *nativetest.Platform, path string) *Proxy {
	fp := &Proxy{Platform: p, Library: p.AddLibrary(path)}
	fp.Library.Define(proxyclient.SymbolSetPluginFactory, func(args ...uintptr) uintptr {
		fp.Sets++
		fp.Override = args[0]
		return 0
	})
	fp.Library.Define(proxyclient.SymbolGetPluginFactory, func(args ...uintptr) uintptr {
		fp.Gets++
		if fp.Override != 0 {
			return p.Call(fp.Override)
		}
		return fp.Fallback
	})
	return fp
}
