package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	domainRepos "github.com/rios0rios0/historydoc/internal/domain/repositories"
)

// GeneratorFactory builds a GeneratorRepository from its settings.
type GeneratorFactory func(settings entities.GeneratorSettings) (domainRepos.GeneratorRepository, error)

// GeneratorRegistry manages all registered text-generation implementations.
type GeneratorRegistry struct {
	factories map[string]GeneratorFactory
}

// NewGeneratorRegistry creates an empty generator registry.
func NewGeneratorRegistry() *GeneratorRegistry {
	return &GeneratorRegistry{
		factories: make(map[string]GeneratorFactory),
	}
}

// Register adds a generator factory under its name.
func (r *GeneratorRegistry) Register(name string, factory GeneratorFactory) {
	r.factories[name] = factory
}

// Get builds the generator selected by settings.Provider.
func (r *GeneratorRegistry) Get(settings entities.GeneratorSettings) (domainRepos.GeneratorRepository, error) {
	factory, ok := r.factories[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: generator %q", entities.ErrUnknownProvider, settings.Provider)
	}

	generator, err := factory(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator %q: %w", settings.Provider, err)
	}
	return generator, nil
}

// Names returns the sorted list of registered generator names.
func (r *GeneratorRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
