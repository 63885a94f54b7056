// Package fhirxml extracts resource keys from FHIR XML documents.
//
// The resource type is the local name of the root element; the id is the
// value attribute of the root's first id child:
//
//	<Patient xmlns="http://hl7.org/fhir">
//	  <id value="example"/>
//	</Patient>
package fhirxml

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.KeyExtractor = (*Extractor)(nil)

// Extractor reads the root element and its id child.
type Extractor struct{}

// New creates an XML key extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns domain.FormatXML.
func (e *Extractor) Format() domain.Format {
	return domain.FormatXML
}

// Extract parses the document and returns its key.
func (e *Extractor) Extract(text string) (domain.ResourceKey, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return domain.ResourceKey{}, fmt.Errorf("%w: xml: %w", domain.ErrMalformedDocument, err)
	}

	root := doc.Root()
	if root == nil {
		return domain.ResourceKey{}, fmt.Errorf("%w: xml: no root element", domain.ErrMalformedDocument)
	}

	key := domain.ResourceKey{Type: root.Tag}
	if id := root.SelectElement("id"); id != nil {
		key.ID = id.SelectAttrValue("value", "")
	}
	return key, nil
}
