package cli

import (
	"fmt"

	"github.com/existflow/gleam/internal/logger"
	"github.com/existflow/gleam/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the store over HTTP",
	Long: `Expose the store as a JSON API for local tooling. All writes go
through one serialized store instance.`,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8480", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(s)
	logger.Info("HTTP server starting", logger.F("addr", serveAddr))
	fmt.Printf("Gleam API listening on %s\n", serveAddr)

	if err := srv.Start(serveAddr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
