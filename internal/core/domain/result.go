package domain

import (
	"fmt"
	"strings"
)

// UploadResult is the outcome of one document.
type UploadResult struct {
	// Name is the source name; empty for inline text.
	Name string

	// StatusCode is the HTTP status of the upload, 0 if no request was made.
	StatusCode int

	// FailureDetail explains a rejected upload: the OperationOutcome
	// summary when the server sent one, the reason phrase otherwise.
	FailureDetail string

	// Target is the resolved request, zero if resolution failed.
	Target TargetRequest

	// Err is set when the document could not be read, resolved or sent.
	Err error
}

// Succeeded reports whether the server accepted the document.
func (r UploadResult) Succeeded() bool {
	return r.Err == nil && IsSuccessStatus(r.StatusCode)
}

// Detail is the text printed for a failed result.
func (r UploadResult) Detail() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.FailureDetail
}

// IsSuccessStatus reports whether an upload status counts as success.
func IsSuccessStatus(code int) bool {
	return code == 200 || code == 201
}

// OperationOutcome is the error body returned by a FHIR server.
type OperationOutcome struct {
	ResourceType string         `json:"resourceType,omitempty"`
	Issue        []OutcomeIssue `json:"issue"`
}

// OutcomeIssue is one entry of an OperationOutcome.
type OutcomeIssue struct {
	Severity    string `json:"severity"`
	Code        string `json:"code,omitempty"`
	Diagnostics string `json:"diagnostics"`
}

// Summary renders one "Severity: x - y" line per issue.
func (o OperationOutcome) Summary() string {
	lines := make([]string, 0, len(o.Issue))
	for _, issue := range o.Issue {
		lines = append(lines, fmt.Sprintf("Severity: %s - %s", issue.Severity, issue.Diagnostics))
	}
	return strings.Join(lines, "\n")
}
