package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOrganize() error {
	switch c.Organize.Scheme {
	case SchemeYearMonth, SchemeYearMonthDay, SchemeYearMonthName:
	default:
		return fmt.Errorf("organize.scheme: unsupported value %q (expected %q, %q, or %q)",
			c.Organize.Scheme, SchemeYearMonth, SchemeYearMonthDay, SchemeYearMonthName)
	}
	switch c.Organize.OnConflict {
	case ConflictRename, ConflictSkip, ConflictOverwrite:
	default:
		return fmt.Errorf("organize.on_conflict: unsupported value %q (expected %q, %q, or %q)",
			c.Organize.OnConflict, ConflictRename, ConflictSkip, ConflictOverwrite)
	}
	switch c.Organize.MonthCase {
	case MonthCaseTitle, MonthCaseUpper, MonthCaseLower:
	default:
		return fmt.Errorf("organize.month_case: unsupported value %q (expected %q, %q, or %q)",
			c.Organize.MonthCase, MonthCaseTitle, MonthCaseUpper, MonthCaseLower)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (expected \"console\" or \"json\")", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
