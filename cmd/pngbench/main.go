// Command pngbench decodes a PNG file, benchmarks the configured decoders
// against each other and shows the image in a window.
//
// Configuration comes from the TOML file named by PNGBENCH_CONFIG, if any,
// and PNGBENCH_* environment variables.
package main

import (
	"fmt"
	"os"

	"github.com/nvr-ai/go-pngbench/display"
	"github.com/nvr-ai/go-pngbench/harness"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := harness.LoadConfig(os.Getenv(harness.ConfigPathEnv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pngbench: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pngbench: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	for _, key := range cfg.UnknownKeys() {
		logger.Warn("unknown config key", zap.String("key", key))
	}

	h := harness.New(cfg, harness.Options{
		Out:     os.Stdout,
		Logger:  logger,
		Backend: display.NewGocvBackend(logger),
	})
	if err := h.Run(); err != nil {
		logger.Fatal("pngbench failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
