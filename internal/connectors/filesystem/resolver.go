package filesystem

import "strings"

// LocalPath converts a file:// URI to a local path.
// The second result is false for any other scheme.
func LocalPath(uri string) (string, bool) {
	if strings.HasPrefix(uri, "file://") {
		return strings.TrimPrefix(uri, "file://"), true
	}
	return "", false
}
