package proxy

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/nplug-proxy/hostfxr"
)

// Environment variables read by LoadConfig.
const (
	EnvLogLevel   = "NPLUG_PROXY_LOG_LEVEL"
	EnvLogFile    = "NPLUG_PROXY_LOG_FILE"
	EnvInitPolicy = "NPLUG_PROXY_INIT_POLICY"
	EnvDotnetRoot = "NPLUG_PROXY_DOTNET_ROOT"
)

// Config is the environment-driven configuration of the process-wide proxy.
type Config struct {
	// LogLevel enables logging at the given level; empty disables logging.
	LogLevel string
	// LogFile receives log output; empty selects stderr.
	LogFile    string
	DotnetRoot string
	Policy     hostfxr.InitPolicy
}

// LoadConfig reads the configuration through getenv.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		LogLevel:   strings.ToLower(strings.TrimSpace(getenv(EnvLogLevel))),
		LogFile:    strings.TrimSpace(getenv(EnvLogFile)),
		DotnetRoot: strings.TrimSpace(getenv(EnvDotnetRoot)),
	}

	if cfg.LogLevel != "" {
		if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	policy, err := hostfxr.ParseInitPolicy(getenv(EnvInitPolicy))
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", EnvInitPolicy, err)
	}
	cfg.Policy = policy
	return cfg, nil
}

// Options converts the configuration into proxy options.
func (c Config) Options() Options {
	opts := DefaultOptions()
	opts.Policy = c.Policy
	opts.DotnetRoot = c.DotnetRoot
	return opts
}

// NewLogger builds the logger selected by LogLevel and LogFile. An empty level
// yields a no-op logger.
func (c Config) NewLogger() (*zap.Logger, error) {
	if c.LogLevel == "" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	output := "stderr"
	if c.LogFile != "" {
		output = c.LogFile
	}

	zc := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          "console",
		EncoderConfig:     zap.NewDevelopmentEncoderConfig(),
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	return zc.Build(zap.Fields(zap.Int("pid", os.Getpid())))
}

var (
	defaultProxy *Proxy
	defaultOnce  sync.Once
)

// Default returns the process-wide proxy, configured from the environment on first use.
// An invalid configuration falls back to defaults and is reported to stderr.
func Default() *Proxy {
	defaultOnce.Do(func() {
		cfg, cfgErr := LoadConfig(os.Getenv)
		if cfgErr != nil {
			fmt.Fprintf(os.Stderr, "nplug-proxy: %v; using defaults\n", cfgErr)
			cfg = Config{LogLevel: cfg.LogLevel, LogFile: cfg.LogFile, DotnetRoot: cfg.DotnetRoot}
		}

		l, err := cfg.NewLogger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "nplug-proxy: logger: %v\n", err)
			l = zap.NewNop()
		}
		SetLoggers(l)

		defaultProxy = New(cfg.Options())
	})
	return defaultProxy
}
