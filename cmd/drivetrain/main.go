package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Veraticus/drivetrain/internal/common"
	"github.com/Veraticus/drivetrain/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "drivetrain",
		Short: "⚡ Hybrid and electric vehicle sales, drilled down by powertrain",
		Long: `drivetrain reads a monthly vehicle sales sheet (CSV or XLSX, with make,
model and powertrain header rows) and charts it as stacked areas by powertrain.

Click a powertrain to see its vehicles, click a vehicle to see it alone, and
go back up with the back control.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: $HOME/.config/drivetrain/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().Bool("strict", false, "reject sheets with an invalid layout instead of loading them leniently")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("dataset.strict", rootCmd.PersistentFlags().Lookup("strict"))

	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(vehiclesCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(datasetsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(sheetsCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Debug("Received interrupt signal, shutting down")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		if dir, err := config.ConfigDir(); err == nil {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DRIVETRAIN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("tui.theme", "default")
	viper.SetDefault("tui.animations", true)
	viper.SetDefault("tui.mouse", true)
	viper.SetDefault("tui.fps", 30)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	return common.SetupLogger(level, viper.GetString("logging.format"))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "drivetrain %s\n", version)
		},
	}
}
