package main

import (
	"fmt"
	"os"

	"networth-cli/internal/cli"
	"networth-cli/internal/config"
	"networth-cli/internal/logging"
	"networth-cli/internal/store"
)

func main() {
	configDir := configDirFromArgs(os.Args[1:])

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Console = cfg.Logging.Console
	logCfg.File = cfg.Logging.File
	logger := logging.NewLoggerWithConfig(logCfg)

	profileStore, err := store.NewSQLiteStore(config.DatabasePath(configDir))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open profile database")
		fmt.Fprintf(os.Stderr, "Error opening profile database: %v\n", err)
		os.Exit(1)
	}
	defer profileStore.Close()

	rootCmd := cli.NewRootCmd(cfg, logger, profileStore)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configDirFromArgs peeks at the --config flag before cobra parsing so the
// config and database load from the right place.
func configDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if len(arg) > len("--config=") && arg[:len("--config=")] == "--config=" {
			return arg[len("--config="):]
		}
	}
	return ""
}
