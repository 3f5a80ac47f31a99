// Package dblog wires up the structured logger used across kronkdb:
// a thin wrapper over zap so callers get a ready-made
// *zap.SugaredLogger without each package constructing its own.
package dblog

import "go.uber.org/zap"

// New builds a SugaredLogger at the given level ("debug", "info",
// "warn", "error"). An empty level defaults to "info". Unrecognized
// levels fall back to a production (info-and-above) configuration.
func New(level string) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err == nil {
			cfg.Level = lvl
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// NewNop returns a logger that discards everything, for tests and
// callers that don't want logging side effects.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
