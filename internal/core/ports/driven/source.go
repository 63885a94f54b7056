package driven

import (
	"context"
	"iter"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
)

// SourceEnumerator discovers the sources named by one spec.
type SourceEnumerator interface {
	// Enumerate yields the sources lazily. Nothing past the point where the
	// consumer stops is walked or probed. An enumeration error is yielded
	// once and ends the sequence.
	Enumerate(ctx context.Context, spec string, filter domain.DiscoveryFilter) iter.Seq2[domain.NamedSource, error]

	// EnumerateAll concatenates the sources of every spec in order.
	// The first enumeration error ends the sequence.
	EnumerateAll(ctx context.Context, specs []string, filter domain.DiscoveryFilter) iter.Seq2[domain.NamedSource, error]
}

// SourceReader materialises the full text of a source.
type SourceReader interface {
	// Read returns exactly one document for the source.
	// Errors wrap domain.ErrFetch or domain.ErrRead.
	Read(ctx context.Context, source domain.NamedSource) (domain.ResourceDocument, error)
}
