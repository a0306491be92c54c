package proxy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/wippyai/nplug-proxy/hostfxr"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(env(map[string]string{
		EnvLogLevel:   " DEBUG ",
		EnvLogFile:    "/tmp/nplug.log",
		EnvInitPolicy: "strict",
		EnvDotnetRoot: "/opt/dotnet",
	}))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := Config{
		LogLevel:   "debug",
		LogFile:    "/tmp/nplug.log",
		DotnetRoot: "/opt/dotnet",
		Policy:     hostfxr.PolicyStrict,
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}

	opts := cfg.Options()
	if opts.Policy != hostfxr.PolicyStrict || opts.DotnetRoot != "/opt/dotnet" {
		t.Errorf("options = %+v", opts)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(env(nil))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("cfg = %+v, want zero", cfg)
	}
	if cfg.Policy != hostfxr.PolicyCompatible {
		t.Errorf("default policy = %s", cfg.Policy)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"level", map[string]string{EnvLogLevel: "loud"}, EnvLogLevel},
		{"policy", map[string]string{EnvInitPolicy: "lenient"}, EnvInitPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(env(tt.env))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestConfig_NewLogger(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		l, err := Config{}.NewLogger()
		if err != nil {
			t.Fatal(err)
		}
		if l.Core().Enabled(zap.ErrorLevel) {
			t.Error("empty level should yield a no-op logger")
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "proxy.log")
		l, err := Config{LogLevel: "info", LogFile: path}.NewLogger()
		if err != nil {
			t.Fatal(err)
		}
		if l.Core().Enabled(zap.DebugLevel) {
			t.Error("debug should be disabled at info level")
		}

		l.Info("factory resolved")
		_ = l.Sync()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "factory resolved") {
			t.Errorf("log file = %q", data)
		}
	})
}
