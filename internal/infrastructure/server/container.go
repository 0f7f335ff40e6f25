package server

import "go.uber.org/dig"

// RegisterProviders registers the HTTP server with the DIG container.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(NewServer)
}
