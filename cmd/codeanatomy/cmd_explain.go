package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viktorexe/codeanatomy/engine"
	"github.com/viktorexe/codeanatomy/format"
)

func newExplainCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "explain <file>",
		Short: "Analyze a C file and print a beginner-friendly explanation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			report := engine.Analyze(string(data))

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "text":
				encoder = format.NewTextEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(report); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}
