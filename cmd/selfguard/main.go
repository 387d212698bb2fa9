// Command selfguard is the demonstration front-end for the integrity
// monitor. It links the library the way a host application would and
// renders verdicts and events on the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "selfguard",
	Short: "In-process runtime integrity monitor",
	Long: `Selfguard monitors the running process for tampering: attached
debuggers, code patching, and execution-time instrumentation. It reports a
tri-valued verdict (safe, warning, compromised) and never aborts the
process on its own.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(infoCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
