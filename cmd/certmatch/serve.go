package main

import (
	"context"
	"fmt"

	"github.com/jonathan/cert-roadmap/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes skill extraction, domain detection and certification endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := newApp(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	srv := server.New(server.Config{
		Port:       servePort,
		OnShutdown: []func(){a.Close},
	}, a.engine)

	return srv.Start()
}
