package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/AlexZinkM/votechain/internal/config"

	"github.com/spf13/cobra"
)

const (
	programName = "votechain"
)

var globalFlags = struct {
	debug bool
}{}

func commonRun() *slog.Logger {
	// Configure logger
	logLevel := slog.LevelInfo
	addSource := false
	if globalFlags.debug || config.Get().Debug {
		logLevel = slog.LevelDebug
		addSource = true
	}
	logger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: addSource,
			Level:     logLevel,
		}),
	).With("component", programName)
	slog.SetDefault(logger)
	return logger
}

func main() {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "Voting dashboard for the token, voting and reputation ledgers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")

	// Subcommands
	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(deployCommand())
	rootCmd.AddCommand(updateAddressesCommand())
	rootCmd.AddCommand(keygenCommand())
	rootCmd.AddCommand(passwdCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
