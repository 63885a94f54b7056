// Package sources turns caller-supplied specs into resource documents.
//
// A spec is inline text (it contains a newline), a URL (it contains "://")
// or a local file or directory. Enumerator classifies a spec and yields the
// named sources it stands for; Reader materialises each one.
package sources
