package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jetpack/internal/app"
	"jetpack/internal/config"
	"jetpack/internal/logging"
	"jetpack/internal/utils"
)

var (
	cfgFile  string
	logLevel string
	verbose  bool
)

// Build information
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// SetVersionInfo updates the build information variables
func SetVersionInfo(v, c, d, b string) {
	version = v
	commit = c
	date = d
	builtBy = b
}

//nolint:gochecknoglobals // Cobra CLI pattern for root command
var rootCmd = &cobra.Command{
	Use:   "jetpack",
	Short: "Crash-safe file reads, writes and appends",
	Long: `Jetpack reads, writes and appends files safely.

Safe writes go through a staging file and a backup so a crash never leaves a
half-written file, and safe reads fall back to the backup when the primary
file is missing.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/jetpack/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := utils.GetConfigDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newApp loads the effective settings and wires the application for cmd.
func newApp(cmd *cobra.Command) (*app.App, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	opts := []app.Option{app.WithIO(cmd.InOrStdin(), cmd.OutOrStdout())}
	if logLevel != "" {
		opts = append(opts, app.WithLogLevel(logging.ParseLevel(logging.LogLevel(logLevel))))
	}
	opts = append(opts, app.WithVerbose(verbose))

	return app.NewApp(commandContext(cmd), settings, opts...)
}

// commandContext returns the command's context, which is unset when a
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// configPath returns the --config path or the default location.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return utils.GetConfigPath()
}
