package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viktorexe/codeanatomy/cparse"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a C file and print one token per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			for _, token := range cparse.Tokenize(string(data)) {
				fmt.Println(token)
			}
			return nil
		},
	}
}
