// Package logger provides verbose logging for the FHIR loader.
// When verbose mode is enabled via the --verbose flag, progress and debug
// messages are printed to stderr so users can follow each upload.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func printf(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix+format, args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	printf("[DEBUG] ", format+"\n", args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	printf("\n=== ", "%s ===\n", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	printf("[INFO] ", format+"\n", args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	printf("[WARN] ", format+"\n", args...)
}

// Progress starts an unterminated progress line, finished by Done.
//
//	logger.Progress("PUT %s to %s... ", name, url)
//	logger.Done("OK")
func Progress(format string, args ...any) {
	printf("", format, args...)
}

// Done terminates a line started by Progress.
func Done(status string) {
	printf("", "%s\n", status)
}
