package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jetpack/internal/commands"
	"jetpack/internal/domain"
	"jetpack/internal/errors"
	"jetpack/internal/fileops"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var readCmd = &cobra.Command{
	Use:   "read PATH",
	Short: "Print the content of a file",
	Long: `Read a file and print its content.

With --as json or --as jsonWithDates the content is decoded and printed as JSON,
indented when stdout is a terminal. With --safe a missing file is read from its
backup if one exists.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(readCmd)
	addReadFlags(readCmd)
}

func addReadFlags(cmd *cobra.Command) {
	cmd.Flags().String("as", "", "decode as utf8, buf, json or jsonWithDates (default from config)")
	cmd.Flags().Bool("safe", false, "fall back to the backup file when the file is missing (default from config)")
	cmd.Flags().Bool("strict-backup", false, "fail instead of reporting absence when the backup cannot be read")
}

func runRead(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	opts := a.Settings.ReadOptions()
	if cmd.Flags().Changed("as") {
		as, _ := cmd.Flags().GetString("as")
		if !domain.ReturnAs(as).Valid() {
			return errors.NewValidationError("as", as, "supported_values", "must be one of utf8, buf, json, jsonWithDates")
		}
		opts.ReturnAs = domain.ReturnAs(as)
	}
	if cmd.Flags().Changed("safe") {
		opts.Safe, _ = cmd.Flags().GetBool("safe")
	}
	if cmd.Flags().Changed("strict-backup") {
		opts.StrictBackup, _ = cmd.Flags().GetBool("strict-backup")
	}

	path := args[0]
	readCommand := commands.NewReadCommand(a.Ops, a.Logger)
	result, err := readCommand.Execute(commandContext(cmd), commands.ReadRequest{
		Path:    path,
		Options: opts,
	})
	if err != nil {
		return err
	}
	if !result.Found {
		return fmt.Errorf("%s: %w", path, errors.ErrNotFound)
	}

	out := cmd.OutOrStdout()
	switch v := result.Value.(type) {
	case string:
		_, err = fmt.Fprint(out, v)
	case []byte:
		_, err = out.Write(v)
	default:
		indent := 0
		if a.Terminal.IsOutputTerminal() {
			indent = 2
		}
		var data []byte
		data, err = fileops.EncodeJSON(v, indent)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
		_, err = fmt.Fprintln(out, string(data))
	}
	return err
}
