//go:build windows

package hostfxr

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

func hostfxrLibraryName() string {
	return "hostfxr.dll"
}

func nethostLibraryName() string {
	return "nethost.dll"
}

// registeredInstallLocations reads
// HKLM\SOFTWARE\dotnet\Setup\InstalledVersions\<arch>\InstallLocation from the 32-bit view.
func registeredInstallLocations() []string {
	key, err := registry.OpenKey(
		registry.LOCAL_MACHINE,
		`SOFTWARE\dotnet\Setup\InstalledVersions\`+archName(),
		registry.QUERY_VALUE|registry.WOW64_32KEY,
	)
	if err != nil {
		return nil
	}
	defer key.Close()

	loc, _, err := key.GetStringValue("InstallLocation")
	if err != nil || loc == "" {
		return nil
	}
	return []string{loc}
}

func defaultInstallDirs() []string {
	pf := os.Getenv("ProgramFiles")
	if pf == "" {
		return nil
	}
	return []string{filepath.Join(pf, "dotnet")}
}
