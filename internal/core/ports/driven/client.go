package driven

import (
	"context"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
)

// Response is the part of an HTTP response the core needs.
type Response struct {
	// StatusCode is the numeric HTTP status.
	StatusCode int

	// Status is the full status line, e.g. "404 Not Found".
	Status string

	// Body is the complete response body.
	Body []byte
}

// ResourceClient performs the network calls of the pipeline.
// Every call blocks until complete; timeouts belong to the implementation.
type ResourceClient interface {
	// Probe issues a lightweight existence check (HEAD) against url.
	Probe(ctx context.Context, url string) (*Response, error)

	// Get downloads url.
	Get(ctx context.Context, url string) (*Response, error)

	// Send uploads body to the target.
	Send(ctx context.Context, target domain.TargetRequest, body []byte) (*Response, error)
}
