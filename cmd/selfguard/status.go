package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mrwhite4939/selfguard"
)

var statusChecks []string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Run one integrity sweep and report the verdict",
	Long: `Initialize the monitor, take a baseline snapshot, run a single
integrity sweep, and print the verdict. The exit code mirrors the verdict:
0 safe, 1 warning, 2 compromised.`,
	Run: func(cmd *cobra.Command, args []string) {
		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("\n%s\n\n", cyan("=== Selfguard Status ==="))

		mask, err := selfguard.ParseChecks(statusChecks)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := selfguard.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: init failed: %v\n", err)
			os.Exit(1)
		}

		if err := selfguard.Snapshot(); err != nil {
			selfguard.Shutdown()
			fmt.Fprintf(os.Stderr, "Error: snapshot failed: %v\n", err)
			os.Exit(1)
		}
		if err := selfguard.CheckIntegrity(mask); err != nil {
			selfguard.Shutdown()
			fmt.Fprintf(os.Stderr, "Error: integrity check failed: %v\n", err)
			os.Exit(1)
		}

		verdict := selfguard.State()
		tracer := selfguard.DetectDebugger()

		fmt.Printf("  Implementation: %s\n", selfguard.Implementation())
		fmt.Printf("  Tracer:         %s\n", tracerText(tracer))
		fmt.Printf("  Verdict:        %s\n\n", verdictText(verdict))

		// Shutdown before exiting so the baseline is wiped on every path.
		selfguard.Shutdown()
		os.Exit(int(verdict))
	},
}

func init() {
	statusCmd.Flags().StringSliceVar(&statusChecks, "checks", nil,
		"probes to run (debugger, timing, memory); default all")
}

func verdictText(v selfguard.Verdict) string {
	switch v {
	case selfguard.Safe:
		return color.New(color.FgGreen).Sprintf("● %s", v)
	case selfguard.Warning:
		return color.New(color.FgYellow).Sprintf("⚠ %s", v)
	default:
		return color.New(color.FgRed).Sprintf("✗ %s", v)
	}
}

func tracerText(tracer int) string {
	if tracer >= 1 {
		return color.New(color.FgRed).Sprint("attached")
	}
	return color.New(color.FgHiBlack).Sprint("none detected")
}
