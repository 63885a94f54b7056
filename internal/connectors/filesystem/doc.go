// Package filesystem discovers and reads resource documents on local disk.
//
// Directory traversal follows shell globbing conventions: hidden entries
// are skipped and, unless recursion is requested, only direct children
// of the root are visited.
package filesystem
