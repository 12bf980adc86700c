package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"metalprices/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:   "metalprices",
		Short: "Shanghai silver, India MCX and copper prices as JSON",
	}

	configPath string

	cnf    *config.Config
	logger *slog.Logger
)

func Execute() {
	cobra.OnInitialize(initConfig, initLogger)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.yml", "path to the config file")

	rootCmd.AddCommand(serveCmd, snapshotCmd)
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	// .env is optional; values from the real environment win over it.
	_ = godotenv.Load()
	cnf = config.MustLoad(configPath)
}

func initLogger() {
	opts := &slog.HandlerOptions{Level: cnf.Logger.ParsedSlogLevel}
	logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
