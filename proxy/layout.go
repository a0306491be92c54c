package proxy

import (
	"os"
	"strings"

	"github.com/wippyai/nplug-proxy/errors"
)

// File naming convention shared with the managed side.
const (
	FactoryTypePrefix   = "NPlug.Interop.NPlugFactoryExport, "
	FactoryMethod       = "GetPluginFactory"
	RuntimeConfigSuffix = ".runtimeconfig.json"
	AssemblySuffix      = ".dll"
)

// Layout locates the managed files deployed next to the native module.
type Layout struct {
	// RootDir is the module directory including the trailing separator.
	RootDir string
	// BaseName is the module file name without its final extension.
	BaseName string
}

// DeriveLayout splits modulePath at its final separator and strips the final
// extension of the file name. A file name without an extension is used whole.
func DeriveLayout(modulePath string) (Layout, error) {
	i := len(modulePath) - 1
	for i >= 0 && !os.IsPathSeparator(modulePath[i]) {
		i--
	}
	if i < 0 {
		return Layout{}, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
			Path(modulePath).
			Detail("module path has no directory").
			Build()
	}

	name := modulePath[i+1:]
	if dot := strings.LastIndexByte(name, '.'); dot > 0 {
		name = name[:dot]
	}
	if name == "" {
		return Layout{}, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
			Path(modulePath).
			Detail("module path has no file name").
			Build()
	}

	return Layout{RootDir: modulePath[:i+1], BaseName: name}, nil
}

// ConfigPath returns <root><base>.runtimeconfig.json.
func (l Layout) ConfigPath() string {
	return l.RootDir + l.BaseName + RuntimeConfigSuffix
}

// AssemblyPath returns <root><base>.dll.
func (l Layout) AssemblyPath() string {
	return l.RootDir + l.BaseName + AssemblySuffix
}

// TypeName returns the assembly-qualified factory export type.
func (l Layout) TypeName() string {
	return FactoryTypePrefix + l.BaseName
}
