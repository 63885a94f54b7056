package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// SourceKind classifies a source spec.
type SourceKind int

const (
	// SourceLocal is a file or directory on the local filesystem.
	SourceLocal SourceKind = iota

	// SourceRemote is a URL.
	SourceRemote

	// SourceRawText is literal document content.
	SourceRawText
)

// String returns the kind name used in logs.
func (k SourceKind) String() string {
	switch k {
	case SourceRemote:
		return "url"
	case SourceRawText:
		return "text"
	default:
		return "file"
	}
}

// ClassifySpec decides how a caller-supplied spec is interpreted.
// A newline wins over "://", which wins over a filesystem path.
func ClassifySpec(spec string) SourceKind {
	switch {
	case strings.Contains(spec, "\n"):
		return SourceRawText
	case strings.Contains(spec, "://"):
		return SourceRemote
	default:
		return SourceLocal
	}
}

// DiscoveryFilter selects files during a directory traversal.
// It is ignored for every other kind of source.
type DiscoveryFilter struct {
	// Suffix is matched against the end of the full path.
	// Always empty or beginning with ".".
	Suffix string

	// Recursive descends into subdirectories.
	Recursive bool

	// Pattern, when set, must match at the start of the basename.
	Pattern *regexp.Regexp
}

// NewDiscoveryFilter normalises the suffix and compiles the pattern.
func NewDiscoveryFilter(suffix string, recursive bool, pattern string) (DiscoveryFilter, error) {
	f := DiscoveryFilter{Suffix: NormalizeSuffix(suffix), Recursive: recursive}
	if pattern != "" {
		re, err := regexp.Compile(`^(?:` + pattern + `)`)
		if err != nil {
			return DiscoveryFilter{}, fmt.Errorf("%w: pattern %q: %w", ErrInvalidInput, pattern, err)
		}
		f.Pattern = re
	}
	return f, nil
}

// NormalizeSuffix prefixes a non-empty suffix with "." if it lacks one.
func NormalizeSuffix(suffix string) string {
	if suffix != "" && !strings.HasPrefix(suffix, ".") {
		return "." + suffix
	}
	return suffix
}

// Match reports whether a walked file passes both filters.
func (f DiscoveryFilter) Match(path string) bool {
	if f.Pattern != nil && !f.Pattern.MatchString(filepath.Base(path)) {
		return false
	}
	return f.Suffix == "" || strings.HasSuffix(path, f.Suffix)
}

// NamedSource is one discovered input, not yet read.
type NamedSource struct {
	// Name is the display identifier: empty for raw text,
	// the URL for remote sources, the path for local files.
	Name string

	// Kind selects how the source is read.
	Kind SourceKind

	// Origin is what the reader fetches: the text itself, the URL or the path.
	Origin string
}

// RawTextSource wraps inline document content.
func RawTextSource(text string) NamedSource {
	return NamedSource{Kind: SourceRawText, Origin: text}
}

// RemoteSource names a URL.
func RemoteSource(url string) NamedSource {
	return NamedSource{Name: url, Kind: SourceRemote, Origin: url}
}

// LocalSource names a file path.
func LocalSource(path string) NamedSource {
	return NamedSource{Name: path, Kind: SourceLocal, Origin: path}
}

// ResourceDocument is a source after reading.
type ResourceDocument struct {
	Name string
	Text string
}
