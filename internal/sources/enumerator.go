package sources

import (
	"context"
	"fmt"
	"iter"
	"net/http"

	"github.com/custodia-labs/fhir-loader/internal/connectors/filesystem"
	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
	"github.com/custodia-labs/fhir-loader/internal/logger"
)

// Ensure Enumerator implements the interface.
var _ driven.SourceEnumerator = (*Enumerator)(nil)

// Enumerator discovers the named sources behind a spec.
type Enumerator struct {
	client driven.ResourceClient
}

// NewEnumerator creates an enumerator. The client is used to probe URLs.
func NewEnumerator(client driven.ResourceClient) *Enumerator {
	return &Enumerator{client: client}
}

// Enumerate yields the sources of one spec.
func (e *Enumerator) Enumerate(
	ctx context.Context,
	spec string,
	filter domain.DiscoveryFilter,
) iter.Seq2[domain.NamedSource, error] {
	return func(yield func(domain.NamedSource, error) bool) {
		switch domain.ClassifySpec(spec) {
		case domain.SourceRawText:
			yield(domain.RawTextSource(spec), nil)
		case domain.SourceRemote:
			if path, ok := filesystem.LocalPath(spec); ok {
				e.enumerateLocal(ctx, path, filter, yield)
				return
			}
			source, err := e.probe(ctx, spec)
			yield(source, err)
		default:
			e.enumerateLocal(ctx, spec, filter, yield)
		}
	}
}

// EnumerateAll concatenates the sources of every spec in order.
// The first enumeration error ends the sequence.
func (e *Enumerator) EnumerateAll(
	ctx context.Context,
	specs []string,
	filter domain.DiscoveryFilter,
) iter.Seq2[domain.NamedSource, error] {
	return func(yield func(domain.NamedSource, error) bool) {
		for _, spec := range specs {
			for source, err := range e.Enumerate(ctx, spec, filter) {
				if !yield(source, err) || err != nil {
					return
				}
			}
		}
	}
}

func (e *Enumerator) probe(ctx context.Context, url string) (domain.NamedSource, error) {
	if e.client == nil {
		return domain.NamedSource{}, fmt.Errorf("%w: %s: no HTTP client configured", domain.ErrSourceUnavailable, url)
	}
	resp, err := e.client.Probe(ctx, url)
	if err != nil {
		return domain.NamedSource{}, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.NamedSource{}, fmt.Errorf("%w: %w",
			domain.ErrSourceUnavailable, domain.NewStatusError(url, resp.StatusCode, resp.Status))
	}
	logger.Debug("Probed %s: %s", url, resp.Status)
	return domain.RemoteSource(url), nil
}

func (e *Enumerator) enumerateLocal(
	ctx context.Context,
	path string,
	filter domain.DiscoveryFilter,
	yield func(domain.NamedSource, error) bool,
) {
	kind, err := filesystem.Inspect(path)
	if err != nil {
		yield(domain.NamedSource{}, err)
		return
	}

	switch kind {
	case filesystem.File:
		yield(domain.LocalSource(path), nil)
	case filesystem.Directory:
		logger.Debug("Walking %s (recursive=%t suffix=%q)", path, filter.Recursive, filter.Suffix)
		for file, err := range filesystem.Walk(ctx, path, filter) {
			if err != nil {
				yield(domain.NamedSource{}, err)
				return
			}
			if !yield(domain.LocalSource(file), nil) {
				return
			}
		}
	default:
		yield(domain.NamedSource{}, fmt.Errorf("%w: %s does not exist", domain.ErrSourceNotFound, path))
	}
}
