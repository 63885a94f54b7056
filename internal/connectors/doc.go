// Package connectors provides access to the places resource documents come
// from. Each sub-package knows how to discover and read documents from one
// kind of source (currently the local filesystem).
package connectors
