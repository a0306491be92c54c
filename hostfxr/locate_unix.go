//go:build !windows

package hostfxr

import (
	"bufio"
	"os"
	"runtime"
	"strings"
)

func hostfxrLibraryName() string {
	if runtime.GOOS == "darwin" {
		return "libhostfxr.dylib"
	}
	return "libhostfxr.so"
}

func nethostLibraryName() string {
	if runtime.GOOS == "darwin" {
		return "libnethost.dylib"
	}
	return "libnethost.so"
}

var installLocationDir = "/etc/dotnet"

// registeredInstallLocations reads /etc/dotnet/install_location_<arch> and
// /etc/dotnet/install_location, first line of each.
func registeredInstallLocations() []string {
	var out []string
	for _, name := range []string{"install_location_" + archName(), "install_location"} {
		if line := firstLine(installLocationDir + "/" + name); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func firstLine(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if sc.Scan() {
		return strings.TrimSpace(sc.Text())
	}
	return ""
}

func defaultInstallDirs() []string {
	if runtime.GOOS == "darwin" {
		return []string{"/usr/local/share/dotnet"}
	}
	return []string{"/usr/share/dotnet", "/usr/lib/dotnet"}
}
