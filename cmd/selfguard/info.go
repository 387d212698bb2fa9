package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mrwhite4939/selfguard"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show detection backend and code-region diagnostics",
	Run: func(cmd *cobra.Command, args []string) {
		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		fmt.Printf("\n%s\n\n", cyan("=== Selfguard Diagnostics ==="))

		if err := selfguard.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: init failed: %v\n", err)
			os.Exit(1)
		}
		defer selfguard.Shutdown()
		if err := selfguard.Snapshot(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: snapshot failed: %v\n", err)
			os.Exit(1)
		}

		info, err := selfguard.MonitorInfo()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("  Implementation: %s\n", info.Implementation)
		fmt.Printf("  Session:        %s\n", gray(info.SessionID))
		fmt.Printf("  Baseline TSC:   %d\n", info.BaselineTSC)
		fmt.Printf("  Code checksum:  0x%08x\n", info.CodeChecksum)
		if info.RegionAvailable {
			fmt.Printf("  Code region:    0x%x (+%d bytes)\n", info.RegionStart, info.RegionLength)
		} else {
			fmt.Printf("  Code region:    %s\n", gray("unavailable (degraded checks)"))
		}
		fmt.Printf("  Verdict:        %s\n\n", verdictText(info.Verdict))
	},
}
