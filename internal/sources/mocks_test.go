package sources

import (
	"context"
	"net/http"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
)

// mockClient implements driven.ResourceClient for testing.
type mockClient struct {
	heads   map[string]int
	bodies  map[string]string
	err     error
	headed  []string
	fetched []string
}

func newMockClient() *mockClient {
	return &mockClient{heads: map[string]int{}, bodies: map[string]string{}}
}

func response(code int, body string) *driven.Response {
	return &driven.Response{
		StatusCode: code,
		Status:     http.StatusText(code),
		Body:       []byte(body),
	}
}

func (m *mockClient) Probe(_ context.Context, url string) (*driven.Response, error) {
	m.headed = append(m.headed, url)
	if m.err != nil {
		return nil, m.err
	}
	code, ok := m.heads[url]
	if !ok {
		code = http.StatusNotFound
	}
	return response(code, ""), nil
}

func (m *mockClient) Get(_ context.Context, url string) (*driven.Response, error) {
	m.fetched = append(m.fetched, url)
	if m.err != nil {
		return nil, m.err
	}
	body, ok := m.bodies[url]
	if !ok {
		return response(http.StatusNotFound, ""), nil
	}
	return response(http.StatusOK, body), nil
}

func (m *mockClient) Send(_ context.Context, _ domain.TargetRequest, _ []byte) (*driven.Response, error) {
	return response(http.StatusOK, ""), nil
}
