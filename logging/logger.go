// Package logging provides per-component structured loggers for nexus.
//
// Nexus runs no daemon and keeps no local state, so logging has a single
// sink: stderr. What varies is the formatter — a colorized text formatter
// for interactive terminals, JSON for piped or CI output — and the level,
// which is process-wide: set once through SetConfig, or overridden by the
// NEXUS_LOG_LEVEL environment variable.
package logging

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers    = make(map[string]*logrus.Entry)
	loggersMu  sync.Mutex
	globalCfg  Config
	globalOnce sync.Once
)

// SetConfig installs the process-wide logging configuration, normally decoded
// from fleet.toml's `[logging]` table. It must be called at most once, before
// the first call to NewLogger; later calls are ignored so that a component's
// logger, once handed out, never changes shape under the caller.
func SetConfig(cfg Config) {
	globalOnce.Do(func() {
		globalCfg = cfg
	})
}

// NewLogger returns a pre-configured logger for a specific component,
// memoized so repeated calls for the same component return the same entry.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	levelStr := "info"
	if envLevel := os.Getenv("NEXUS_LOG_LEVEL"); envLevel != "" {
		levelStr = envLevel
	} else if globalCfg.Level != "" {
		levelStr = globalCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("NEXUS_LOG_CALLER") == "true" || globalCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	switch {
	case globalCfg.Format.Preset == "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()):
		// Piped/non-interactive output defaults to JSON so scripting consumers
		// get stable structured lines without an explicit --json flag.
		logger.SetFormatter(&logrus.JSONFormatter{})
	case globalCfg.Format.Preset == "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: globalCfg.Format})
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// ResetForTest clears the memoized logger cache and config so tests can
// re-derive loggers under different environment/config combinations.
func ResetForTest() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	loggers = make(map[string]*logrus.Entry)
	globalOnce = sync.Once{}
	globalCfg = Config{}
}
