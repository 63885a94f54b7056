// Package fhirturtle extracts resource keys from FHIR RDF documents
// written in Turtle.
//
// The resource is the subject marked fhir:nodeRole fhir:treeRoot. Its
// rdf:type gives the resource type and its fhir:id (fhir:Resource.id in
// older builds of the RDF format) gives the id, either as a literal or as
// a node carrying fhir:v (fhir:value in older builds).
package fhirturtle

import (
	"fmt"
	"strings"

	"github.com/knakk/rdf"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
)

const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

var (
	nodeRole   = domain.FHIRNamespace + "nodeRole"
	treeRoot   = domain.FHIRNamespace + "treeRoot"
	valuePreds = []string{domain.FHIRNamespace + "v", domain.FHIRNamespace + "value"}
	idPreds    = []string{domain.FHIRNamespace + "id", domain.FHIRNamespace + "Resource.id"}
)

// Ensure Extractor implements the interface.
var _ driven.KeyExtractor = (*Extractor)(nil)

// Extractor locates the tree root of the graph.
type Extractor struct{}

// New creates a Turtle key extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns domain.FormatTurtle.
func (e *Extractor) Format() domain.Format {
	return domain.FormatTurtle
}

// Extract parses the graph and returns the key of its tree root.
func (e *Extractor) Extract(text string) (domain.ResourceKey, error) {
	triples, err := rdf.NewTripleDecoder(strings.NewReader(text), rdf.Turtle).DecodeAll()
	if err != nil {
		return domain.ResourceKey{}, fmt.Errorf("%w: turtle: %w", domain.ErrMalformedDocument, err)
	}
	g := graph(triples)

	root, ok := g.subjectOf(nodeRole, treeRoot)
	if !ok {
		return domain.ResourceKey{}, fmt.Errorf("%w: turtle: no fhir:nodeRole fhir:treeRoot", domain.ErrMalformedDocument)
	}

	typ := g.resourceType(root)
	if typ == "" {
		return domain.ResourceKey{}, fmt.Errorf("%w: turtle: tree root has no rdf:type", domain.ErrMalformedDocument)
	}
	return domain.ResourceKey{Type: typ, ID: g.resourceID(root)}, nil
}

type graph []rdf.Triple

func termKey(t rdf.Term) string {
	return fmt.Sprintf("%d:%s", t.Type(), t.String())
}

func isIRI(t rdf.Term, iri string) bool {
	return t.Type() == rdf.TermIRI && t.String() == iri
}

func (g graph) subjectOf(pred, obj string) (rdf.Term, bool) {
	for _, t := range g {
		if isIRI(t.Pred, pred) && isIRI(t.Obj, obj) {
			return t.Subj, true
		}
	}
	return nil, false
}

func (g graph) objects(subj rdf.Term, pred string) []rdf.Term {
	key := termKey(subj)
	var out []rdf.Term
	for _, t := range g {
		if termKey(t.Subj) == key && isIRI(t.Pred, pred) {
			out = append(out, t.Obj)
		}
	}
	return out
}

// resourceType prefers a type in the FHIR namespace over any other.
func (g graph) resourceType(root rdf.Term) string {
	types := g.objects(root, rdfType)
	for _, typ := range types {
		if s := typ.String(); strings.HasPrefix(s, domain.FHIRNamespace) {
			return strings.TrimPrefix(s, domain.FHIRNamespace)
		}
	}
	if len(types) > 0 {
		return types[0].String()
	}
	return ""
}

func (g graph) resourceID(root rdf.Term) string {
	for _, pred := range idPreds {
		for _, obj := range g.objects(root, pred) {
			switch obj.Type() {
			case rdf.TermLiteral:
				return obj.String()
			case rdf.TermBlank:
				if id := g.literal(obj, valuePreds); id != "" {
					return id
				}
			}
		}
	}
	return ""
}

// literal returns the first literal object of subj under any of preds.
func (g graph) literal(subj rdf.Term, preds []string) string {
	for _, pred := range preds {
		for _, v := range g.objects(subj, pred) {
			if v.Type() == rdf.TermLiteral {
				return v.String()
			}
		}
	}
	return ""
}
