// Package cli implements the velocidad command line: the interactive
// terminal host and headless commands for scripts and screen readers.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// configDir overrides the XDG config directory when set
var configDir string

var rootCmd = &cobra.Command{
	Use:   "velocidad",
	Short: "Accessible internet speed test",
	Long: `velocidad measures download and upload bandwidth with audible progress
tones and spoken notices. Results are announced, copied to the clipboard
and optionally shown in a results window.

Without a subcommand it opens the interactive terminal host, where the
speed test is started with "t" or from the command palette (":").`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("velocidad version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default $XDG_CONFIG_HOME/velocidad)")
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
