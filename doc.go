// Package nplugproxy is a native shim that hands a binary plugin host the plugin
// factory implemented by a managed (.NET) assembly.
//
// The host loads the proxy library and calls GetPluginFactory. The proxy finds its own
// file on disk, bootstraps the .NET hosting layer (hostfxr), loads the assembly that
// shares its base name, and returns whatever the managed
// NPlug.Interop.NPlugFactoryExport.GetPluginFactory method returns.
//
// # Architecture Overview
//
//	nplugproxy/
//	├── native/          Library loading, symbol lookup, native calls, pinned arguments
//	├── hostfxr/         hostfxr discovery, hosting context lifecycle, delegate resolution
//	├── proxy/           Layout derivation, factory override, GetPluginFactory
//	├── proxyclient/     Drives a built proxy library from Go
//	├── validator/       Character-callback output redirection and the probe procedure
//	├── errors/          Structured error types for debugging
//	└── cmd/
//	    ├── nplug-proxy/      c-shared proxy library
//	    ├── nplug-validator/  c-shared validator library
//	    └── nplug-check/      deployment checker CLI
//
// # Deployment
//
// A plugin named Delay is deployed as three files in one directory:
//
//	Delay.so                    (or Delay.dylib, Delay.vst3, ...) built from cmd/nplug-proxy
//	Delay.runtimeconfig.json    runtime configuration of the managed assembly
//	Delay.dll                   managed assembly exporting NPlug.Interop.NPlugFactoryExport
//
// # Failure Model
//
// A broken installation (a library that cannot be opened, a missing export, an
// unresolvable module path) terminates the process with a diagnostic. Every other
// failure, including a machine without a .NET runtime, makes GetPluginFactory return
// null, which the host treats as "plugin unavailable".
//
// # Overrides
//
// nplug_set_plugin_factory installs a native function that replaces the bootstrap.
// Once set, each GetPluginFactory call invokes it and returns its result. Validators
// use this to exercise a proxy without a managed runtime.
//
// # Logging
//
// All packages log through go.uber.org/zap and are silent by default. The proxy
// library enables logging when NPLUG_PROXY_LOG_LEVEL is set.
package nplugproxy
