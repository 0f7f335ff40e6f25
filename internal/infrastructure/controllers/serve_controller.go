package controllers

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/infrastructure/server"
)

// ServeController handles the "serve" subcommand.
type ServeController struct {
	server *server.Server
}

// NewServeController creates a new ServeController.
func NewServeController(httpServer *server.Server) *ServeController {
	return &ServeController{server: httpServer}
}

// GetBind returns the Cobra command metadata for the serve controller.
func (it *ServeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "serve",
		Short: "Serve the analyze and commit operations over HTTP",
		Long: `Start the HTTP API:

  POST /analyze  {"repo_url"}                    -> {"document", "title"}
  POST /commit   {"repo_url", "readme_content"}  -> {"success", "message", "url"}
  GET  /healthz
  GET  /metrics`,
	}
}

// Execute serves until SIGINT or SIGTERM.
func (it *ServeController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if address, _ := cmd.Flags().GetString("address"); address != "" {
		settings.Server.Address = address
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return it.server.ListenAndServe(ctx, settings)
}

// AddFlags adds the serve-specific flags to the given Cobra command.
func (it *ServeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("address", "a", "", "Listen address (default: server.address)")
}
