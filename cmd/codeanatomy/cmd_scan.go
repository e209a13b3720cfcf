package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viktorexe/codeanatomy/scan"
)

func newScanCmd() *cobra.Command {
	var excludes []string

	cmd := &cobra.Command{
		Use:   "scan <path>...",
		Short: "Scan directories for C files and summarize each one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := scan.NewScanner(excludes).Run(args)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}

			var withLeaks int
			for _, r := range results {
				if r.Err != nil {
					fmt.Printf("[ERROR] %s: %v\n", r.Path, r.Err)
					continue
				}
				if r.LeakRisk > 0 {
					withLeaks++
				}

				status := "[OK]"
				if !r.Parsed {
					status = "[SKIP]"
				}
				fmt.Printf("%s %s: %s (score %d), leak risk %d\n",
					status, r.Path, r.Complexity.Label, r.Complexity.Score, r.LeakRisk)
			}

			fmt.Printf("\n=== SCAN COMPLETE ===\n")
			fmt.Printf("Files scanned: %d\n", len(results))
			fmt.Printf("Files with leak risk: %d\n", withLeaks)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&excludes, "exclude", "e", nil, "directory or file names to skip")

	return cmd
}
