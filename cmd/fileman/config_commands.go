package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fileman/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigValidateCommand(ctx))
	cmd.AddCommand(newConfigShowCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var path string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				target = defaultPath
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return err
			}

			if _, err := os.Stat(expanded); err == nil && !overwrite {
				return fmt.Errorf("%s already exists (use --overwrite to replace it)", expanded)
			}
			if err := config.CreateSample(expanded); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", expanded)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Where to write the file (defaults to ~/.config/fileman/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")

	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the configuration file parses and validates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ctx.configPath() == "" {
				fmt.Fprintln(out, "No configuration file found, defaults are valid")
				return nil
			}
			fmt.Fprintf(out, "%s is valid\n", ctx.configPath())
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, cfg)
			}

			out := cmd.OutOrStdout()
			if path := ctx.configPath(); path != "" {
				fmt.Fprintf(out, "Config file: %s\n", path)
			} else {
				fmt.Fprintln(out, "Config file: (none, using defaults)")
			}
			fmt.Fprintf(out, "Log dir:         %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "History DB:      %s\n", cfg.Paths.HistoryDB)
			fmt.Fprintf(out, "Scheme:          %s\n", cfg.Organize.Scheme)
			fmt.Fprintf(out, "Month case:      %s\n", cfg.Organize.MonthCase)
			fmt.Fprintf(out, "On conflict:     %s\n", cfg.Organize.OnConflict)
			fmt.Fprintf(out, "Max depth:       %d\n", cfg.Organize.MaxDepth)
			fmt.Fprintf(out, "Follow symlinks: %s\n", yesNo(cfg.Organize.FollowSymlinks))
			fmt.Fprintf(out, "Include hidden:  %s\n", yesNo(cfg.Organize.IncludeHidden))
			fmt.Fprintf(out, "Verify copies:   %s\n", yesNo(cfg.Organize.VerifyCopies))
			fmt.Fprintf(out, "History:         %s\n", yesNo(cfg.History.Enabled))
			fmt.Fprintf(out, "Retention days:  %d\n", cfg.History.RetentionDays)
			fmt.Fprintf(out, "Log format:      %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "Log level:       %s\n", cfg.Logging.Level)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable output")

	return cmd
}
