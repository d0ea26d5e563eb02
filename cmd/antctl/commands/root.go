// Package commands implements the antctl CLI, grounded on the teacher's
// gobfdctl commands package: a cobra root command with persistent
// connection flags and one subcommand per operation.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// serverAddr is the antd daemon address (host:port) for the plain TCP
// protocol connection.
var serverAddr string

// rootCmd is the top-level cobra command for antctl.
var rootCmd = &cobra.Command{
	Use:   "antctl",
	Short: "CLI client for the ant colony game server",
	Long:  "antctl speaks the antd wire protocol directly, for manual smoke testing, scripted AI play, and local replay of recorded games.",

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", "localhost:8080",
		"antd daemon address (host:port)")

	rootCmd.AddCommand(joinCmd())
	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
