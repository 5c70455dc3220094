package cli

import (
	"fmt"
	"time"

	"simple-mcp/internal/config"
	"simple-mcp/internal/dispatch"
	"simple-mcp/internal/logger"
	"simple-mcp/internal/metrics"
	"simple-mcp/internal/tools"
)

// app holds the components shared by every transport.
type app struct {
	cfg        *config.Config
	log        *logger.Logger
	metrics    *metrics.Metrics
	dispatcher *dispatch.Dispatcher
}

func bootstrap() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	l, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	reg, err := tools.Default(time.Now)
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}

	m := metrics.New()
	d := dispatch.New(reg,
		dispatch.WithLogger(l.Component("dispatch")),
		dispatch.WithMetrics(m),
		dispatch.WithValidation(cfg.ValidateArguments),
	)

	return &app{cfg: cfg, log: l, metrics: m, dispatcher: d}, nil
}
