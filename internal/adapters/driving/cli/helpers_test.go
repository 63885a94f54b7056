package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fhir-loader/internal/logger"
)

// runResult holds the captured output of one command run.
type runResult struct {
	out string
	err string
}

// setupCLI resets flag state between runs, isolates the config file and
// clears loader environment variables. It returns the config path.
func setupCLI(t *testing.T) string {
	t.Helper()

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	var resetTree func(cmd *cobra.Command)
	resetTree = func(cmd *cobra.Command) {
		reset(cmd.PersistentFlags())
		reset(cmd.Flags())
		for _, sub := range cmd.Commands() {
			resetTree(sub)
		}
	}
	resetTree(rootCmd)

	for _, key := range []string{"SERVER", "FORMAT", "RECURSIVE", "PATTERN", "MISSING_ID", "RATE", "TIMEOUT"} {
		t.Setenv("FHIR_LOADER_"+key, "")
	}

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	return filepath.Join(t.TempDir(), "config.toml")
}

// execute runs the root command with args and captures both streams.
func execute(args ...string) (runResult, error) {
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return runResult{out: out.String(), err: errOut.String()}, err
}

// recordedRequest is one request seen by fhirServer.
type recordedRequest struct {
	method string
	uri    string
	body   string
}

// fhirServer is a fake FHIR endpoint. Responses are keyed by request path;
// unknown paths answer 201.
type fhirServer struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]fakeResponse
}

type fakeResponse struct {
	code int
	body string
}

func newFHIRServer(t *testing.T) *fhirServer {
	t.Helper()
	s := &fhirServer{responses: map[string]fakeResponse{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{method: r.Method, uri: r.URL.RequestURI(), body: string(body)})
		resp, ok := s.responses[r.URL.Path]
		s.mu.Unlock()

		if !ok {
			resp = fakeResponse{code: http.StatusCreated}
		}
		w.Header().Set("Content-Type", "application/fhir+json")
		w.WriteHeader(resp.code)
		_, _ = w.Write([]byte(resp.body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *fhirServer) respond(path string, code int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = fakeResponse{code: code, body: body}
}

func (s *fhirServer) recorded() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// syncBuffer is a bytes.Buffer safe for concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
