// Package logging builds the single shared zap logger used across the server,
// providing structured, leveled logging instead of bare fmt/log calls.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger. In development mode it uses a colorized, terse console
// encoder suited to a line-protocol server (no caller/stacktrace noise); in
// production mode it emits JSON suitable for log aggregation. quiet discards all
// output, as a performance escape hatch for latency-sensitive deployments.
func New(production, quiet bool) (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}

	if production {
		cfg := zap.NewProductionConfig()
		return cfg.Build()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	return cfg.Build()
}
