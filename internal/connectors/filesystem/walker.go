package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/logger"
)

var errStopWalk = errors.New("walk stopped")

// Kind describes what a local path points at.
type Kind int

const (
	// Missing means nothing exists at the path.
	Missing Kind = iota

	// File is a regular file (or a link to one).
	File

	// Directory is a directory (or a link to one).
	Directory
)

// Inspect stats path, following symbolic links.
func Inspect(path string) (Kind, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Missing, nil
	case err != nil:
		return Missing, fmt.Errorf("%w: %w", domain.ErrRead, err)
	case info.IsDir():
		return Directory, nil
	default:
		return File, nil
	}
}

// Walk yields the regular files under root that pass the filter.
// Paths are root joined with the entry's relative path.
// The walk stops as soon as the consumer stops pulling.
func Walk(ctx context.Context, root string, filter domain.DiscoveryFilter) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if !strings.HasSuffix(root, string(filepath.Separator)) {
			root += string(filepath.Separator)
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return fmt.Errorf("%w: %w", domain.ErrRead, err)
				}
				logger.Warn("Skipping %s: %v", path, err)
				return nil
			}
			if path == root {
				return nil
			}
			if isHidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if !filter.Recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if !isRegular(path, d) || !filter.Match(path) {
				return nil
			}
			if !yield(path, nil) {
				return errStopWalk
			}
			return ctx.Err()
		})

		if err != nil && !errors.Is(err, errStopWalk) {
			yield("", err)
		}
	}
}

// ReadFile returns the whole file as text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRead, err)
	}
	return string(data), nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
