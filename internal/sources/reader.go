package sources

import (
	"context"
	"fmt"

	"github.com/custodia-labs/fhir-loader/internal/connectors/filesystem"
	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.SourceReader = (*Reader)(nil)

// Reader materialises named sources. Nothing is cached; every remote
// source is fetched exactly once per Read.
type Reader struct {
	client driven.ResourceClient
}

// NewReader creates a reader. The client is used to fetch URLs.
func NewReader(client driven.ResourceClient) *Reader {
	return &Reader{client: client}
}

// Read returns the text of a source.
func (r *Reader) Read(ctx context.Context, source domain.NamedSource) (domain.ResourceDocument, error) {
	switch source.Kind {
	case domain.SourceRawText:
		return domain.ResourceDocument{Text: source.Origin}, nil
	case domain.SourceRemote:
		return r.fetch(ctx, source)
	default:
		text, err := filesystem.ReadFile(source.Origin)
		if err != nil {
			return domain.ResourceDocument{Name: source.Name}, err
		}
		return domain.ResourceDocument{Name: source.Name, Text: text}, nil
	}
}

func (r *Reader) fetch(ctx context.Context, source domain.NamedSource) (domain.ResourceDocument, error) {
	doc := domain.ResourceDocument{Name: source.Name}
	if r.client == nil {
		return doc, fmt.Errorf("%w: %s: no HTTP client configured", domain.ErrFetch, source.Origin)
	}
	resp, err := r.client.Get(ctx, source.Origin)
	if err != nil {
		return doc, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return doc, fmt.Errorf("%w: %w", domain.ErrFetch, domain.NewStatusError(source.Origin, resp.StatusCode, resp.Status))
	}
	doc.Text = string(resp.Body)
	return doc, nil
}
