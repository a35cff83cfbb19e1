package main

import (
	"strings"
	"sync"

	"log/slog"

	"rosterly/internal/config"
	"rosterly/internal/ingest"
	"rosterly/internal/logging"
	"rosterly/internal/overrides"
	"rosterly/internal/records"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withPipeline opens the store and runs fn with a fully wired pipeline,
// closing the store when fn returns.
func (c *commandContext) withPipeline(fn func(*config.Config, *ingest.Pipeline, *records.Store, *slog.Logger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	store, err := records.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	catalog := overrides.NewCatalog(cfg.Paths.OverridesPath, logger)
	pipeline := ingest.New(store, catalog, cfg, logger)
	return fn(cfg, pipeline, store, logger)
}

// withStore opens just the record store for commands that bypass the
// ingestion pipeline.
func (c *commandContext) withStore(fn func(*config.Config, *records.Store, *slog.Logger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	store, err := records.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store, logger)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
