package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viktorexe/codeanatomy/cparse"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Check a C file for structural problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			source := string(data)

			validation := cparse.ValidateSyntax(source)
			for _, msg := range validation.Errors {
				fmt.Printf("%s: %s\n", args[0], msg)
			}

			if _, err := cparse.Parse(source); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			if !validation.Valid {
				return fmt.Errorf("%s: %d problem(s) found", args[0], len(validation.Errors))
			}

			fmt.Printf("%s: ok\n", args[0])
			return nil
		},
	}
}
