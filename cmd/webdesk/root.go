package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"webdesk/pkg/config"
	"webdesk/pkg/logging"
)

// app carries what PersistentPreRunE prepared for the subcommands.
type app struct {
	cfg        config.Config
	log        *slog.Logger
	closeLog   func() error
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "webdesk",
		Short:        "Browser desktop with URL-persisted windows",
		Long:         "webdesk serves a desktop page whose window layout is kept in the ?windows= query parameter.",
		Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		if a.logLevel != "" {
			level := a.logLevel
			cfg.Log.Level = &level
		}
		logger, closeLog, err := logging.Init(cfg.Log, logging.Options{App: "webdesk", Version: version})
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		a.cfg, a.log, a.closeLog = cfg, logger, closeLog
		return nil
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if a.closeLog != nil {
			return a.closeLog()
		}
		return nil
	}

	root.AddCommand(
		newServeCmd(a),
		newDecodeCmd(),
		newEncodeCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "webdesk %s (commit: %s)\n", version, commit)
			return nil
		},
	}
}
