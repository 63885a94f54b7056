package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Domain errors represent pipeline failures.
// Server-side rejections are not errors; they are recorded in UploadResult.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Enumeration Errors.
	// These abort the run before any upload for the offending spec.

	// ErrSourceNotFound indicates a local path spec does not exist.
	ErrSourceNotFound = errors.New("source not found")

	// ErrSourceUnavailable indicates a remote URL failed its existence probe.
	ErrSourceUnavailable = errors.New("source unavailable")

	// Read Errors.
	// These are isolated to the document being read.

	// ErrFetch indicates a remote document could not be downloaded.
	ErrFetch = errors.New("fetch failed")

	// ErrRead indicates a local document could not be read.
	ErrRead = errors.New("read failed")

	// Resolution Errors.

	// ErrUnrecognizedFormat indicates the text is not JSON, XML or Turtle.
	ErrUnrecognizedFormat = errors.New("unrecognized file type")

	// ErrMalformedDocument indicates the text could not be parsed far enough
	// to find the resource type.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrMissingIdentifier indicates the document carries no resource id.
	ErrMissingIdentifier = errors.New("missing resource identifier")

	// ErrUnsupportedFormat indicates no extractor is registered for a format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// StatusError is an unexpected HTTP status returned while probing,
// fetching or uploading.
type StatusError struct {
	URL        string
	StatusCode int
	Reason     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.URL, e.StatusCode, e.Reason)
}

// NewStatusError builds a StatusError from a response status line
// such as "404 Not Found".
func NewStatusError(url string, code int, status string) *StatusError {
	return &StatusError{URL: url, StatusCode: code, Reason: ReasonPhrase(code, status)}
}

// ReasonPhrase extracts the reason phrase from an HTTP status line.
// Falls back to the standard text for the code when the line has none.
func ReasonPhrase(code int, status string) string {
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if reason == "" {
		return http.StatusText(code)
	}
	return reason
}

