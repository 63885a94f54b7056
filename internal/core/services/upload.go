package services

import (
	"context"
	"fmt"
	"iter"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driving"
	"github.com/custodia-labs/fhir-loader/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadOrchestrator = (*UploadService)(nil)

// UploadService drives enumeration, reading, resolution and upload.
// It is strictly sequential: one network call at a time, in caller order.
type UploadService struct {
	enumerator driven.SourceEnumerator
	reader     driven.SourceReader
	resolver   driven.ResourceResolver
	client     driven.ResourceClient
}

// NewUploadService creates a new upload orchestrator.
func NewUploadService(
	enumerator driven.SourceEnumerator,
	reader driven.SourceReader,
	resolver driven.ResourceResolver,
	client driven.ResourceClient,
) *UploadService {
	return &UploadService{
		enumerator: enumerator,
		reader:     reader,
		resolver:   resolver,
		client:     client,
	}
}

// Upload yields one result per discovered document.
func (s *UploadService) Upload(ctx context.Context, req driving.UploadRequest) iter.Seq2[domain.UploadResult, error] {
	return func(yield func(domain.UploadResult, error) bool) {
		logger.Section("Upload to " + req.Server)
		for source, err := range s.enumerator.EnumerateAll(ctx, req.Specs, req.Filter) {
			if err != nil {
				yield(domain.UploadResult{}, fmt.Errorf("enumerate: %w", err))
				return
			}
			if err := ctx.Err(); err != nil {
				yield(domain.UploadResult{}, err)
				return
			}
			if !yield(s.process(ctx, req.Server, source), nil) {
				return
			}
		}
	}
}

// UploadAll runs Upload to completion.
func (s *UploadService) UploadAll(ctx context.Context, req driving.UploadRequest) ([]domain.UploadResult, error) {
	var results []domain.UploadResult
	for result, err := range s.Upload(ctx, req) {
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// process never fails: every outcome, including read and resolution
// errors, becomes a result so the remaining queue is still attempted.
func (s *UploadService) process(ctx context.Context, server string, source domain.NamedSource) domain.UploadResult {
	result := domain.UploadResult{Name: source.Name}
	label := displayName(source.Name)

	doc, err := s.reader.Read(ctx, source)
	if err != nil {
		logger.Warn("Read %s: %v", label, err)
		result.Err = err
		return result
	}

	target, err := s.resolver.Resolve(server, doc.Text)
	if err != nil {
		logger.Warn("Resolve %s: %v", label, err)
		result.Err = fmt.Errorf("resolve: %w", err)
		return result
	}
	result.Target = target

	logger.Progress("%s %s to %s... ", target.Method, label, target.URL)
	resp, err := s.client.Send(ctx, target, []byte(doc.Text))
	if err != nil {
		logger.Done("ERROR")
		result.Err = fmt.Errorf("upload: %w", err)
		return result
	}

	result.StatusCode = resp.StatusCode
	result.FailureDetail = ClassifyResponse(resp)
	if result.Succeeded() {
		logger.Done("OK")
	} else {
		logger.Done(domain.ReasonPhrase(resp.StatusCode, resp.Status))
	}
	return result
}

func displayName(name string) string {
	if name == "" {
		return "<inline>"
	}
	return name
}
