package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jetpack/internal/commands"
	"jetpack/internal/errors"
	"jetpack/internal/fileops"
	"jetpack/internal/utils"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var appendCmd = &cobra.Command{
	Use:   "append PATH",
	Short: "Append content to a file",
	Long: `Append content to a file, creating it and any missing directories.

Content comes from --data or stdin. --encoding converts the content before it
is appended: hex and base64 decode it, latin1 transcodes it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAppend,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(appendCmd)
	addAppendFlags(appendCmd)
}

func addAppendFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("data", "d", "", "content to append")
	cmd.Flags().StringP("encoding", "e", "utf8", "content encoding: utf8, hex, base64 or latin1")
	cmd.Flags().String("mode", "", "permission bits if the file is created, e.g. 0600 (default from config)")
	cmd.Flags().Bool("async", false, "run through the async scheduler")
}

func runAppend(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	opts := fileops.AppendOptions{Mode: a.Settings.FileMode()}
	opts.Encoding, _ = cmd.Flags().GetString("encoding")
	if cmd.Flags().Changed("mode") {
		raw, _ := cmd.Flags().GetString("mode")
		mode, err := utils.ParseFileMode(raw)
		if err != nil {
			return errors.NewValidationError("mode", raw, "octal", err.Error())
		}
		opts.Mode = mode
	}

	payload, err := readPayload(ctx, cmd, a)
	if err != nil {
		return err
	}

	path := args[0]
	async, _ := cmd.Flags().GetBool("async")
	appendCommand := commands.NewAppendCommand(a.Ops, a.Async, a.Logger)
	err = appendCommand.Execute(ctx, commands.AppendRequest{
		Path:    path,
		Data:    string(payload),
		Options: opts,
		Async:   async,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Appended to %s\n", path)
	return nil
}
