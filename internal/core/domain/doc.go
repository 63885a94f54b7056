// Package domain defines the core entities of the FHIR loader.
//
// This package is the innermost layer of the hexagonal architecture.
// It has NO external dependencies and defines the fundamental types:
//
//   - NamedSource: one discovered input (inline text, URL or file)
//   - ResourceDocument: the text of a source after reading
//   - TargetRequest: where and how a document is uploaded
//   - UploadResult: the outcome of one upload
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
