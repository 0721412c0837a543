// Package commands implements the proxytool CLI.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Faultbox/controlshape/internal/config"
	"github.com/Faultbox/controlshape/internal/logger"
)

// Version is set at build time.
var Version = "dev"

// CLI represents the proxytool command line interface.
type CLI struct {
	rootCmd *cobra.Command
	cfg     *config.Config
}

// New creates the command tree.
func New() *CLI {
	c := &CLI{cfg: config.Default()}

	rootCmd := &cobra.Command{
		Use:           "proxytool",
		Short:         "Derive and inspect control shape proxy geometry",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newDeriveCmd())
	rootCmd.AddCommand(c.newExportCmd())
	rootCmd.AddCommand(c.newInfoCmd())
	rootCmd.AddCommand(c.newBatchCmd())
	rootCmd.AddCommand(c.newPlugsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// setup loads config and starts logging on stderr.
func (c *CLI) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	c.cfg = cfg

	// Quiet unless asked: stdout carries the results.
	level := cfg.Logging.Level
	if !cmd.Flags().Changed("log-level") && level == "info" {
		level = "warn"
	}
	opts := logger.Options{Level: level, Console: cmd.ErrOrStderr()}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	return logger.InitWithOptions(opts)
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// Root exposes the root command so tests can redirect output.
func (c *CLI) Root() *cobra.Command {
	return c.rootCmd
}
