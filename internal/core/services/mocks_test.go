package services

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"sync"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
)

// sentRequest records one Send call.
type sentRequest struct {
	target domain.TargetRequest
	body   string
}

// mockClient implements driven.ResourceClient for testing.
// Upload responses are keyed by target URL; unknown URLs answer 201.
// HEAD and GET answer 404 for URLs without a configured response.
type mockClient struct {
	mu        sync.Mutex
	heads     map[string]*driven.Response
	gets      map[string]*driven.Response
	responses map[string]*driven.Response
	sendErr   error
	sent      []sentRequest
	fetched   []string
}

func newMockClient() *mockClient {
	return &mockClient{
		heads:     map[string]*driven.Response{},
		gets:      map[string]*driven.Response{},
		responses: map[string]*driven.Response{},
	}
}

func newResponse(code int, body string) *driven.Response {
	return &driven.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Body:       []byte(body),
	}
}

func (m *mockClient) Probe(_ context.Context, url string) (*driven.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if resp, ok := m.heads[url]; ok {
		return resp, nil
	}
	return newResponse(http.StatusNotFound, ""), nil
}

func (m *mockClient) Get(_ context.Context, url string) (*driven.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fetched = append(m.fetched, url)
	if resp, ok := m.gets[url]; ok {
		return resp, nil
	}
	return newResponse(http.StatusNotFound, ""), nil
}

func (m *mockClient) Send(_ context.Context, target domain.TargetRequest, body []byte) (*driven.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, sentRequest{target: target, body: string(body)})
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	if resp, ok := m.responses[target.URL]; ok {
		return resp, nil
	}
	return &driven.Response{StatusCode: http.StatusCreated, Status: "201 Created"}, nil
}

func (m *mockClient) sentURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	urls := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		urls = append(urls, s.target.URL)
	}
	return urls
}

// countingEnumerator yields n inline documents per spec and counts how many
// were pulled.
type countingEnumerator struct {
	n      int
	pulled int
}

func (e *countingEnumerator) Enumerate(
	_ context.Context,
	_ string,
	_ domain.DiscoveryFilter,
) iter.Seq2[domain.NamedSource, error] {
	return func(yield func(domain.NamedSource, error) bool) {
		for i := 0; i < e.n; i++ {
			e.pulled++
			text := `{"resourceType":"Patient","id":"p` + string(rune('a'+i)) + `"}` + "\n"
			if !yield(domain.RawTextSource(text), nil) {
				return
			}
		}
	}
}

func (e *countingEnumerator) EnumerateAll(
	ctx context.Context,
	specs []string,
	filter domain.DiscoveryFilter,
) iter.Seq2[domain.NamedSource, error] {
	return func(yield func(domain.NamedSource, error) bool) {
		for _, spec := range specs {
			for source, err := range e.Enumerate(ctx, spec, filter) {
				if !yield(source, err) {
					return
				}
			}
		}
	}
}

// fixedEnumerator yields the same sources for any request.
type fixedEnumerator []domain.NamedSource

func (f fixedEnumerator) Enumerate(
	_ context.Context,
	_ string,
	_ domain.DiscoveryFilter,
) iter.Seq2[domain.NamedSource, error] {
	return func(yield func(domain.NamedSource, error) bool) {
		for _, source := range f {
			if !yield(source, nil) {
				return
			}
		}
	}
}

func (f fixedEnumerator) EnumerateAll(
	ctx context.Context,
	_ []string,
	filter domain.DiscoveryFilter,
) iter.Seq2[domain.NamedSource, error] {
	return f.Enumerate(ctx, "", filter)
}
