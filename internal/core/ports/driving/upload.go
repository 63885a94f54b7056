package driving

import (
	"context"
	"iter"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
)

// UploadOrchestrator drives discovery, reading, resolution and upload.
type UploadOrchestrator interface {
	// Upload yields one result per discovered document, in processing order.
	// Per-document failures are results, not errors. An enumeration failure
	// is yielded as an error and ends the run.
	Upload(ctx context.Context, req UploadRequest) iter.Seq2[domain.UploadResult, error]

	// UploadAll collects Upload into a slice. Results gathered before an
	// enumeration failure are returned alongside the error.
	UploadAll(ctx context.Context, req UploadRequest) ([]domain.UploadResult, error)
}

// UploadRequest is one run of the loader.
type UploadRequest struct {
	// Server is the FHIR base URL.
	Server string

	// Specs are files, directories, URLs or inline texts, processed in order.
	Specs []string

	// Filter applies to directory specs.
	Filter domain.DiscoveryFilter
}
