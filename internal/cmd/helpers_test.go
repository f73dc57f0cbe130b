package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// setupTest isolates HOME, viper and the persistent flag globals.
func setupTest(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	viper.Reset()
	t.Cleanup(viper.Reset)

	origCfgFile, origLogLevel, origVerbose := cfgFile, logLevel, verbose
	cfgFile, logLevel, verbose = "", "error", false
	t.Cleanup(func() {
		cfgFile, logLevel, verbose = origCfgFile, origLogLevel, origVerbose
	})

	return home
}

// newTestCommand builds a bare command carrying the flags registered by
// addFlags, with output captured in the returned buffer.
func newTestCommand(addFlags func(*cobra.Command), stdin io.Reader) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	if addFlags != nil {
		addFlags(cmd)
	}
	if stdin == nil {
		stdin = strings.NewReader("")
	}

	var out bytes.Buffer
	cmd.SetIn(stdin)
	cmd.SetOut(&out)
	return cmd, &out
}

func setFlag(t *testing.T, cmd *cobra.Command, name, value string) {
	t.Helper()
	if err := cmd.Flags().Set(name, value); err != nil {
		t.Fatalf("Failed to set flag %s: %v", name, err)
	}
}
