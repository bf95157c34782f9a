package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance
var Logger *zap.Logger

// Config builds the zap configuration for a run. User-facing progress goes to
// stdout, so outside debug mode only warnings and errors are logged.
func Config(debug bool, appName, appVersion string) zap.Config {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.DisableStacktrace = true
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}
	return cfg
}

// Setup builds the global logger and installs it as zap's global.
func Setup(debug bool, appName, appVersion string) error {
	var err error
	Logger, err = Config(debug, appName, appVersion).Build()
	if err != nil {
		Logger = zap.NewExample()
		return err
	}

	zap.ReplaceGlobals(Logger)
	return nil
}

// Get returns the global logger, or a no-op logger before Setup has run.
func Get() *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}
