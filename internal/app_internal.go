package internal

import "github.com/rios0rios0/historydoc/internal/domain/entities"

// AppInternal holds everything the CLI entry point needs.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the AppInternal from the registered controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the controllers exposed as subcommands.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
