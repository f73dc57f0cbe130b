package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jetpack/internal/app"
	"jetpack/internal/commands"
	"jetpack/internal/errors"
	"jetpack/internal/fileops"
	"jetpack/internal/utils"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var writeCmd = &cobra.Command{
	Use:   "write PATH...",
	Short: "Replace the content of one or more files",
	Long: `Write content to one or more files, creating missing directories.

Content comes from --data, --file or stdin. With --safe each file is replaced
through a staging file and a backup. Several paths are written concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrite,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(writeCmd)
	addWriteFlags(writeCmd)
}

func addWriteFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("data", "d", "", "content to write")
	cmd.Flags().StringP("file", "f", "", "read the content from this file")
	cmd.Flags().Bool("safe", false, "replace through a staging file and a backup (default from config)")
	cmd.Flags().String("mode", "", "permission bits for created files, e.g. 0600 (default from config)")
	cmd.Flags().Int("json-indent", 0, "indent width when --json is set (default from config)")
	cmd.Flags().Bool("json", false, "parse the content as JSON and write it re-serialized")
}

func runWrite(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	opts, err := writeOptions(cmd, a)
	if err != nil {
		return err
	}

	payload, err := readPayload(ctx, cmd, a)
	if err != nil {
		return err
	}

	var data any = payload
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		var value any
		if err := fileops.DecodeJSON(payload, &value); err != nil {
			return errors.NewValidationError("data", "", "json", fmt.Sprintf("content is not valid JSON: %v", err))
		}
		data = value
	}

	writeCommand := commands.NewWriteCommand(a.Ops, a.Async, a.Logger)
	err = writeCommand.Execute(ctx, commands.WriteRequest{
		Paths:   args,
		Data:    data,
		Options: opts,
	})
	if err != nil {
		return err
	}

	for _, path := range args {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}

func writeOptions(cmd *cobra.Command, a *app.App) (fileops.WriteOptions, error) {
	opts := a.Settings.WriteOptions()
	if cmd.Flags().Changed("safe") {
		opts.Safe, _ = cmd.Flags().GetBool("safe")
	}
	if cmd.Flags().Changed("json-indent") {
		opts.JSONIndent, _ = cmd.Flags().GetInt("json-indent")
	}
	if cmd.Flags().Changed("mode") {
		raw, _ := cmd.Flags().GetString("mode")
		mode, err := utils.ParseFileMode(raw)
		if err != nil {
			return opts, errors.NewValidationError("mode", raw, "octal", err.Error())
		}
		opts.Mode = mode
	}
	return opts, nil
}

// readPayload returns the content given by --data, --file or stdin, in that
// order of precedence.
func readPayload(ctx context.Context, cmd *cobra.Command, a *app.App) ([]byte, error) {
	if cmd.Flags().Changed("data") {
		data, _ := cmd.Flags().GetString("data")
		return []byte(data), nil
	}

	if source, _ := cmd.Flags().GetString("file"); source != "" {
		data, found, err := a.Ops.ReadBytes(ctx, source, fileops.ReadOptions{})
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%s: %w", source, errors.ErrNotFound)
		}
		return data, nil
	}

	return a.Terminal.ReadInput(ctx)
}
