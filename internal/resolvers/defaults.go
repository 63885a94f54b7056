package resolvers

import (
	"github.com/custodia-labs/fhir-loader/internal/resolvers/fhirjson"
	"github.com/custodia-labs/fhir-loader/internal/resolvers/fhirturtle"
	"github.com/custodia-labs/fhir-loader/internal/resolvers/fhirxml"
)

// RegisterDefaults registers the JSON, XML and Turtle extractors.
func RegisterDefaults(r *Registry) {
	r.Register(fhirjson.New())
	r.Register(fhirxml.New())
	r.Register(fhirturtle.New())
}

// DefaultRegistry returns a registry with all built-in extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
