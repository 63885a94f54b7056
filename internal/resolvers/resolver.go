// Package resolvers computes the upload target of a resource document.
//
// The serialisation is sniffed once by domain.ClassifyFormat and the
// document is handed to the extractor registered for that format. Documents
// with an id are uploaded with PUT to {server}/{type}/{id}, which makes
// repeated uploads idempotent.
package resolvers

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
)

// MissingIDPolicy decides what happens to a document without an id.
type MissingIDPolicy int

const (
	// MissingIDCreate uploads with POST to the type collection and lets the
	// server assign an id.
	MissingIDCreate MissingIDPolicy = iota

	// MissingIDFail rejects the document with domain.ErrMissingIdentifier.
	MissingIDFail
)

// String returns the flag value of the policy.
func (p MissingIDPolicy) String() string {
	if p == MissingIDFail {
		return "fail"
	}
	return "create"
}

// ParseMissingIDPolicy parses "create" or "fail".
func ParseMissingIDPolicy(s string) (MissingIDPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "create":
		return MissingIDCreate, nil
	case "fail":
		return MissingIDFail, nil
	default:
		return MissingIDCreate, fmt.Errorf("%w: missing-id policy %q (want create or fail)", domain.ErrInvalidInput, s)
	}
}

// Ensure Resolver implements the interface.
var _ driven.ResourceResolver = (*Resolver)(nil)

// Resolver dispatches documents to per-format extractors.
type Resolver struct {
	registry  *Registry
	missingID MissingIDPolicy
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRegistry replaces the default extractor registry.
func WithRegistry(r *Registry) Option {
	return func(res *Resolver) {
		res.registry = r
	}
}

// WithMissingIDPolicy sets how documents without an id are handled.
func WithMissingIDPolicy(p MissingIDPolicy) Option {
	return func(res *Resolver) {
		res.missingID = p
	}
}

// New creates a resolver with the built-in extractors.
func New(opts ...Option) *Resolver {
	r := &Resolver{missingID: MissingIDCreate}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = DefaultRegistry()
	}
	return r
}

// Resolve returns the target request for a document.
func (r *Resolver) Resolve(server, text string) (domain.TargetRequest, error) {
	format := domain.ClassifyFormat(text)
	if format == domain.FormatUnrecognized {
		return domain.TargetRequest{}, fmt.Errorf("%w: starts with %q", domain.ErrUnrecognizedFormat, leading(text))
	}

	extractor, ok := r.registry.Get(format)
	if !ok {
		return domain.TargetRequest{}, fmt.Errorf("%w: %s (registered: %v)",
			domain.ErrUnsupportedFormat, format, r.registry.Formats())
	}

	key, err := extractor.Extract(domain.TrimLeading(text))
	if err != nil {
		return domain.TargetRequest{}, err
	}

	req := domain.TargetRequest{
		URL:         domain.ResourceURL(server, key),
		Method:      domain.MethodPut,
		ContentType: format.ContentType(),
	}
	if key.ID == "" {
		if r.missingID == MissingIDFail {
			return domain.TargetRequest{}, fmt.Errorf("%w: %s", domain.ErrMissingIdentifier, key.Type)
		}
		req.Method = domain.MethodPost
	}
	return req, nil
}

func leading(text string) string {
	for _, c := range domain.TrimLeading(text) {
		return string(c)
	}
	return ""
}
