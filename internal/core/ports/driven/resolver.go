package driven

import "github.com/custodia-labs/fhir-loader/internal/core/domain"

// ResourceResolver computes where a document is uploaded.
// Implementations must be pure: the same input always yields the same request.
type ResourceResolver interface {
	Resolve(server, text string) (domain.TargetRequest, error)
}

// KeyExtractor parses one serialisation just far enough to find the
// resource type and id.
type KeyExtractor interface {
	// Format returns the serialisation this extractor handles.
	Format() domain.Format

	// Extract returns the resource key. A missing id is reported as an empty
	// ResourceKey.ID, not as an error; a missing type is domain.ErrMalformedDocument.
	Extract(text string) (domain.ResourceKey, error)
}
