package main

import (
	"context"
	"strings"
	"sync"

	"fileman/internal/config"
	"fileman/internal/history"
	"fileman/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configSource string
	configErr    error
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
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if exists {
			c.configSource = resolved
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// configPath reports the file the configuration was loaded from, or "" when
// running on defaults.
func (c *commandContext) configPath() string {
	return c.configSource
}

// openHistory opens the run journal, pruning expired runs. It returns nil
// when history is disabled; callers treat a nil store as journaling off.
func (c *commandContext) openHistory(ctx context.Context, cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		return nil, err
	}
	if _, err := store.Prune(ctx, cfg.History.RetentionDays); err != nil {
		logger, logErr := logging.NewFromConfig(cfg)
		if logErr == nil {
			logger.Warn("history pruning failed", logging.Error(err))
		}
	}
	return store, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
