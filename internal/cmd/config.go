package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jetpack/internal/config"
	"jetpack/internal/fileops"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the jetpack configuration",
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the built-in defaults to the configuration file, or to --config when given.

The file is written with the safe write protocol and is readable by its owner only.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after applying the config file and JETPACK_* environment overrides.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configInitCmd.Flags().Bool("force", false, "overwrite an existing configuration file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	path, err := configPath()
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		_, found, err := a.Ops.ReadBytes(ctx, path, fileops.ReadOptions{Safe: true})
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("configuration file %s already exists, use --force to overwrite", path)
		}
	}

	if err := config.Default().Save(ctx, a.Ops, path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	data, err := a.Settings.Marshal()
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
