package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOrganize()
	c.normalizeHistory()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeOrganize() {
	c.Organize.Scheme = strings.ToLower(strings.TrimSpace(c.Organize.Scheme))
	if c.Organize.Scheme == "" {
		c.Organize.Scheme = defaultScheme
	}
	c.Organize.OnConflict = strings.ToLower(strings.TrimSpace(c.Organize.OnConflict))
	if c.Organize.OnConflict == "" {
		c.Organize.OnConflict = defaultOnConflict
	}
	c.Organize.MonthCase = strings.ToLower(strings.TrimSpace(c.Organize.MonthCase))
	if c.Organize.MonthCase == "" {
		c.Organize.MonthCase = defaultMonthCase
	}
	if c.Organize.MaxDepth < 0 {
		c.Organize.MaxDepth = 0
	}
}

func (c *Config) normalizeHistory() {
	if c.History.RetentionDays < 0 {
		c.History.RetentionDays = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
