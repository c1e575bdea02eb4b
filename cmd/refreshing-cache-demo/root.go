package main

import (
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCommand(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refreshing-cache-demo",
		Short: "Demonstrates the single-flight cache and the retrying saver",
		Long: "refreshing-cache-demo drives a single-flight cache with many " +
			"concurrent readers and saves items through a retrying saver, " +
			"against simulated slow backends.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.AddCommand(
		newGetCommand(cfg),
		newSaveCommand(cfg),
	)
	return cmd
}

// newLogger returns a logger writing to out at the configured level.
// The level has already been validated by Config.
func newLogger(out io.Writer, cfg Config) *log.Logger {
	logger := log.New()
	logger.SetOutput(out)
	logger.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
