package domain

import (
	"net/url"
	"strings"
)

// FHIRNamespace is the namespace of FHIR XML elements and RDF terms.
const FHIRNamespace = "http://hl7.org/fhir/"

// Format is the serialisation of a resource document.
type Format int

const (
	// FormatUnrecognized is any text that is not one of the known serialisations.
	FormatUnrecognized Format = iota

	// FormatJSON is the FHIR JSON serialisation.
	FormatJSON

	// FormatXML is the FHIR XML serialisation.
	FormatXML

	// FormatTurtle is the FHIR RDF (Turtle) serialisation.
	FormatTurtle
)

// insignificant is skipped before a document's first significant character:
// whitespace and a UTF-8 byte order mark.
const insignificant = " \t\r\n\ufeff"

// TrimLeading drops leading whitespace and byte order marks.
func TrimLeading(text string) string {
	return strings.TrimLeft(text, insignificant)
}

// ClassifyFormat sniffs the serialisation from the first significant character.
func ClassifyFormat(text string) Format {
	trimmed := TrimLeading(text)
	if trimmed == "" {
		return FormatUnrecognized
	}
	switch trimmed[0] {
	case '{':
		return FormatJSON
	case '<':
		return FormatXML
	case '@':
		return FormatTurtle
	default:
		return FormatUnrecognized
	}
}

// String returns the short name also used as a file suffix.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	case FormatTurtle:
		return "ttl"
	default:
		return "unrecognized"
	}
}

// ContentType is the media type sent with a document of this format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/fhir+json"
	case FormatXML:
		return "application/fhir+xml"
	case FormatTurtle:
		return "text/turtle"
	default:
		return "text/plain"
	}
}

// ParseFormat maps a short name ("json", "xml", "ttl") back to a Format.
func ParseFormat(name string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, true
	case "xml":
		return FormatXML, true
	case "ttl":
		return FormatTurtle, true
	default:
		return FormatUnrecognized, false
	}
}

// ResourceKey identifies a resource on the server.
// ID is empty when the document does not carry one.
type ResourceKey struct {
	Type string
	ID   string
}

// Method is the HTTP verb used for an upload.
type Method string

const (
	// MethodPut creates or replaces the resource at an explicit id.
	MethodPut Method = "PUT"

	// MethodPost creates a resource with a server-assigned id.
	MethodPost Method = "POST"
)

// TargetRequest is where and how one document is uploaded.
type TargetRequest struct {
	URL         string
	Method      Method
	ContentType string
}

// ResponseQuery asks the server for a pretty-printed JSON response,
// whatever the format of the uploaded body.
const ResponseQuery = "_format=json&_pretty=true"

// ResourceURL builds {server}/{type}[/{id}]?_format=json&_pretty=true.
func ResourceURL(server string, key ResourceKey) string {
	var b strings.Builder
	b.WriteString(server)
	if !strings.HasSuffix(server, "/") {
		b.WriteByte('/')
	}
	b.WriteString(key.Type)
	if key.ID != "" {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(key.ID))
	}
	b.WriteByte('?')
	b.WriteString(ResponseQuery)
	return b.String()
}
