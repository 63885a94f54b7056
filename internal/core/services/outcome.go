package services

import (
	"encoding/json"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
)

// ClassifyResponse returns the failure detail of an upload response,
// or "" when the server accepted the document. A structured
// OperationOutcome body is summarised issue by issue; anything else falls
// back to the reason phrase.
func ClassifyResponse(resp *driven.Response) string {
	if domain.IsSuccessStatus(resp.StatusCode) {
		return ""
	}
	var outcome domain.OperationOutcome
	if err := json.Unmarshal(resp.Body, &outcome); err == nil && len(outcome.Issue) > 0 {
		return outcome.Summary()
	}
	return domain.ReasonPhrase(resp.StatusCode, resp.Status)
}
