package proxy

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/nplug-proxy/hostfxr"
	"github.com/wippyai/nplug-proxy/native"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the proxy package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the proxy package's logger.
func SetLogger(l *zap.Logger) {
	logger = l
}

// SetLoggers installs l in the proxy, hostfxr and native packages at once.
func SetLoggers(l *zap.Logger) {
	SetLogger(l)
	hostfxr.SetLogger(l.Named("hostfxr"))
	native.SetLogger(l.Named("native"))
}
