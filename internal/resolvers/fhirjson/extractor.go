// Package fhirjson extracts resource keys from FHIR JSON documents.
package fhirjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.KeyExtractor = (*Extractor)(nil)

// Extractor reads resourceType and id from the top-level object.
type Extractor struct{}

// New creates a JSON key extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns domain.FormatJSON.
func (e *Extractor) Format() domain.Format {
	return domain.FormatJSON
}

type header struct {
	ResourceType string `json:"resourceType"`
	ID           any    `json:"id"`
}

// Extract parses the document and returns its key.
// A numeric id keeps its literal digits.
func (e *Extractor) Extract(text string) (domain.ResourceKey, error) {
	dec := json.NewDecoder(strings.NewReader(domain.TrimLeading(text)))
	dec.UseNumber()

	var h header
	if err := dec.Decode(&h); err != nil {
		return domain.ResourceKey{}, fmt.Errorf("%w: json: %w", domain.ErrMalformedDocument, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.ResourceKey{}, fmt.Errorf("%w: json: data after the top-level object", domain.ErrMalformedDocument)
	}
	if h.ResourceType == "" {
		return domain.ResourceKey{}, fmt.Errorf("%w: json: no resourceType", domain.ErrMalformedDocument)
	}

	key := domain.ResourceKey{Type: h.ResourceType}
	switch id := h.ID.(type) {
	case nil:
	case string:
		key.ID = id
	case json.Number:
		key.ID = id.String()
	default:
		return domain.ResourceKey{}, fmt.Errorf("%w: json: id is %T, want a string", domain.ErrMalformedDocument, id)
	}
	return key, nil
}
