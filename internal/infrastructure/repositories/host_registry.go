package repositories

import (
	"fmt"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	domainRepos "github.com/rios0rios0/historydoc/internal/domain/repositories"
)

// HostFactory is a constructor function that creates a HostRepository from its settings.
type HostFactory func(settings entities.HostSettings) domainRepos.HostRepository

// HostRegistry manages all registered Git host implementations.
type HostRegistry struct {
	factories map[string]HostFactory
	order     []string
}

// NewHostRegistry creates an empty host registry.
func NewHostRegistry() *HostRegistry {
	return &HostRegistry{
		factories: make(map[string]HostFactory),
	}
}

// Register adds a host factory under the given name (e.g. "github").
// Hosts are matched against URLs in registration order.
func (r *HostRegistry) Register(name string, factory HostFactory) {
	if _, exists := r.factories[name]; !exists {
		r.order = append(r.order, name)
	}
	r.factories[name] = factory
}

// Get returns a configured host instance for the given name.
func (r *HostRegistry) Get(name string, settings entities.HostSettings) (domainRepos.HostRepository, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: host %q", entities.ErrUnknownProvider, name)
	}
	return factory(settings), nil
}

// ForURL returns the first host whose MatchesURL accepts rawURL, falling back
// to the configured default host.
func (r *HostRegistry) ForURL(
	rawURL string,
	hosts entities.HostsSettings,
) (domainRepos.HostRepository, error) {
	for _, name := range r.order {
		host := r.factories[name](hosts.Providers[name])
		if host.MatchesURL(rawURL) {
			return host, nil
		}
	}
	return r.Get(hosts.Default, hosts.Providers[hosts.Default])
}

// Names returns the registered host names in registration order.
func (r *HostRegistry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
