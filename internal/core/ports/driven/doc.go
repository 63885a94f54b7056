// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SourceEnumerator: Turns a spec into a lazy sequence of named sources
//   - SourceReader: Materialises the text of a named source
//   - ResourceResolver: Computes the upload target of a document
//   - KeyExtractor: Extracts type and id from one serialisation
//   - ResourceClient: Talks HTTP to remote sources and the FHIR server
//
// # Optional Interfaces
//
//   - ConfigStore: Persisted defaults. Without it, flags and environment are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or resolver package
package driven
