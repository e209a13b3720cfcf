package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/viktorexe/codeanatomy/ui"
)

func newServeCmd() *cobra.Command {
	var addr string
	var verbose int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI server",
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbose, nil)

			server, err := ui.NewServer()
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Printf("Starting server at http://%s\n", displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	return cmd
}
