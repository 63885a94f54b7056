package resolvers

import (
	"sort"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
)

// Registry maps each serialisation to the extractor that handles it.
type Registry struct {
	extractors map[domain.Format]driven.KeyExtractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[domain.Format]driven.KeyExtractor),
	}
}

// Register adds an extractor, replacing any previous one for its format.
func (r *Registry) Register(e driven.KeyExtractor) {
	r.extractors[e.Format()] = e
}

// Get returns the extractor for a format.
func (r *Registry) Get(f domain.Format) (driven.KeyExtractor, bool) {
	e, ok := r.extractors[f]
	return e, ok
}

// Formats returns the registered formats in declaration order.
func (r *Registry) Formats() []domain.Format {
	formats := make([]domain.Format, 0, len(r.extractors))
	for f := range r.extractors {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
