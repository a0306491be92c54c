// Command nplug-proxy is the native plugin entry point, built as a C shared library
// named after the managed plugin assembly:
//
//	go build -buildmode=c-shared -o Delay.so ./cmd/nplug-proxy
//
// The library exports GetPluginFactory and nplug_set_plugin_factory plus the
// platform module lifecycle hooks expected by plugin hosts. Logging is configured
// from NPLUG_PROXY_LOG_LEVEL and NPLUG_PROXY_LOG_FILE.
package main

import "C"

import (
	"unsafe"

	"github.com/wippyai/nplug-proxy/proxy"
)

//export nplug_set_plugin_factory
func nplug_set_plugin_factory(factory unsafe.Pointer) {
	proxy.Default().SetFactoryOverride(uintptr(factory))
}

//export GetPluginFactory
func GetPluginFactory() unsafe.Pointer {
	return pointer(proxy.Default().GetPluginFactory())
}

// pointer reinterprets a native address returned by foreign code.
func pointer(addr uintptr) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&addr))
}

func main() {}
