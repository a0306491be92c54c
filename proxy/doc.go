// Package proxy forwards the fixed plugin entry point to a managed factory.
//
// A Proxy answers GetPluginFactory in one of two ways. When a factory override is
// installed it calls the override on every request. Otherwise it runs a full bootstrap:
//
//  1. resolve the path of the native module hosting the proxy
//  2. derive the Layout (root directory and base name) from it
//  3. bootstrap hostfxr with <root><base>.runtimeconfig.json
//  4. load <root><base>.dll and resolve
//     NPlug.Interop.NPlugFactoryExport, <base> :: GetPluginFactory
//  5. call the managed method and return its result
//
// Resolve reports the outcome as a Result carrying either the factory pointer or a
// structured error. GetPluginFactory collapses that to a pointer, null on failure.
//
// Deployment errors (a library that cannot be opened, a missing export, an unresolvable
// module path) go through the loader's abort handler, which terminates the process by
// default.
package proxy
