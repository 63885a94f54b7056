package cli

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
)

const patientJSON = `{"resourceType":"Patient","id":"p1"}`

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "fhir-loader [SERVER] FILES...", rootCmd.Use)
}

func TestRootCmd_Flags(t *testing.T) {
	pf := rootCmd.PersistentFlags()

	for _, name := range []string{"config", "server", "format", "recursive", "verbose", "pattern", "missing-id", "rate", "timeout"} {
		assert.NotNil(t, pf.Lookup(name), name)
	}
	assert.Equal(t, "f", pf.Lookup("format").Shorthand)
	assert.Equal(t, "r", pf.Lookup("recursive").Shorthand)
	assert.Equal(t, "v", pf.Lookup("verbose").Shorthand)
	assert.Equal(t, "p", pf.Lookup("pattern").Shorthand)
}

func TestRootCmd_UploadsDirectory(t *testing.T) {
	cfg := setupCLI(t)
	srv := newFHIRServer(t)
	dir := t.TempDir()
	writeFile(t, dir, "p1.json", patientJSON)
	writeFile(t, dir, "sub/p2.json", `{"resourceType":"Patient","id":"p2"}`)

	res, err := execute("--config", cfg, srv.URL, dir)

	require.NoError(t, err)
	assert.Empty(t, res.err)
	reqs := srv.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].method)
	assert.Equal(t, "/Patient/p1?_format=json&_pretty=true", reqs[0].uri)
	assert.Equal(t, patientJSON, reqs[0].body)
}

func TestRootCmd_Recursive(t *testing.T) {
	cfg := setupCLI(t)
	srv := newFHIRServer(t)
	dir := t.TempDir()
	writeFile(t, dir, "p1.json", patientJSON)
	writeFile(t, dir, "sub/p2.json", `{"resourceType":"Patient","id":"p2"}`)

	_, err := execute("--config", cfg, "-r", srv.URL, dir)

	require.NoError(t, err)
	var uris []string
	for _, r := range srv.recorded() {
		uris = append(uris, r.uri)
	}
	assert.ElementsMatch(t, []string{
		"/Patient/p1?_format=json&_pretty=true",
		"/Patient/p2?_format=json&_pretty=true",
	}, uris)
}

func TestRootCmd_FormatAndPattern(t *testing.T) {
	cfg := setupCLI(t)
	srv := newFHIRServer(t)
	dir := t.TempDir()
	writeFile(t, dir, "jhu-1.json", `{"resourceType":"Patient","id":"j1"}`)
	writeFile(t, dir, "jhu-2.xml", `<Patient xmlns="http://hl7.org/fhir"><id value="j2"/></Patient>`)
	writeFile(t, dir, "other.json", `{"resourceType":"Patient","id":"o1"}`)

	_, err := execute("--config", cfg, "-f", "json", "-p", "jhu", srv.URL, dir)

	require.NoError(t, err)
	reqs := srv.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/Patient/j1?_format=json&_pretty=true", reqs[0].uri)
}

func TestRootCmd_ReportsFailures(t *testing.T) {
	cfg := setupCLI(t)
	srv := newFHIRServer(t)
	srv.respond("/Patient/bad", http.StatusBadRequest,
		`{"resourceType":"OperationOutcome","issue":[{"severity":"error","code":"invalid","diagnostics":"bad gender"}]}`)
	dir := t.TempDir()
	writeFile(t, dir, "good.json", patientJSON)
	bad := writeFile(t, dir, "bad.json", `{"resourceType":"Patient","id":"bad"}`)

	res, err := execute("--config", cfg, "-v", srv.URL, dir)

	require.ErrorIs(t, err, errUploadFailed)
	assert.Contains(t, res.err, bad+" failure: (400) Severity: error - bad gender\n")
	assert.Contains(t, res.err, "1 uploaded, 1 failed\n")
	assert.Len(t, srv.recorded(), 2)
}

func TestRootCmd_UnrecognizedDocument(t *testing.T) {
	cfg := setupCLI(t)
	srv := newFHIRServer(t)
	dir := t.TempDir()
	notes := writeFile(t, dir, "notes.txt", "# not a resource")

	res, err := execute("--config", cfg, srv.URL, notes)

	require.ErrorIs(t, err, errUploadFailed)
	assert.Contains(t, res.err, notes+" failure: (error) ")
	assert.Contains(t, res.err, "unrecognized file type")
	assert.Empty(t, srv.recorded())
}

func TestRootCmd_MissingSource(t *testing.T) {
	cfg := setupCLI(t)
	srv := newFHIRServer(t)

	res, err := execute("--config", cfg, srv.URL, "/no/such/file.json")

	require.ErrorIs(t, err, errUploadFailed)
	assert.Contains(t, res.err, "Error: ")
	assert.Contains(t, res.err, "does not exist")
	assert.Empty(t, srv.recorded())
}

func TestRootCmd_InlineText(t *testing.T) {
	cfg := setupCLI(t)
	srv := newFHIRServer(t)
	text := "{\n  \"resourceType\": \"Observation\",\n  \"id\": \"obs-1\"\n}\n"

	_, err := execute("--config", cfg, srv.URL, text)

	require.NoError(t, err)
	reqs := srv.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/Observation/obs-1?_format=json&_pretty=true", reqs[0].uri)
	assert.Equal(t, text, reqs[0].body)
}

func TestRootCmd_MissingIDPolicy(t *testing.T) {
	text := "{\"resourceType\": \"Patient\"}\n"

	t.Run("create", func(t *testing.T) {
		cfg := setupCLI(t)
		srv := newFHIRServer(t)

		_, err := execute("--config", cfg, srv.URL, text)

		require.NoError(t, err)
		reqs := srv.recorded()
		require.Len(t, reqs, 1)
		assert.Equal(t, http.MethodPost, reqs[0].method)
		assert.Equal(t, "/Patient?_format=json&_pretty=true", reqs[0].uri)
	})

	t.Run("fail", func(t *testing.T) {
		cfg := setupCLI(t)
		srv := newFHIRServer(t)

		res, err := execute("--config", cfg, "--missing-id", "fail", srv.URL, text)

		require.ErrorIs(t, err, errUploadFailed)
		assert.Contains(t, res.err, "<inline> failure: (error) ")
		assert.Empty(t, srv.recorded())
	})
}

func TestRootCmd_ServerFromEnvironment(t *testing.T) {
	cfg := setupCLI(t)
	srv := newFHIRServer(t)
	t.Setenv("FHIR_LOADER_SERVER", srv.URL)
	path := writeFile(t, t.TempDir(), "p1.json", patientJSON)

	_, err := execute("--config", cfg, path)

	require.NoError(t, err)
	assert.Len(t, srv.recorded(), 1)
}

func TestRootCmd_ServerFromConfigFile(t *testing.T) {
	cfg := setupCLI(t)
	srv := newFHIRServer(t)
	path := writeFile(t, t.TempDir(), "p1.json", patientJSON)

	_, err := execute("--config", cfg, "config", "set", "server", srv.URL)
	require.NoError(t, err)

	_, err = execute("--config", cfg, path)

	require.NoError(t, err)
	assert.Len(t, srv.recorded(), 1)
}

func TestRootCmd_NeedsServer(t *testing.T) {
	cfg := setupCLI(t)

	_, err := execute("--config", cfg, "p1.json")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRootCmd_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"format", []string{"-f", "csv"}},
		{"missing id", []string{"--missing-id", "skip"}},
		{"pattern", []string{"-p", "("}},
		{"rate", []string{"--rate", "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setupCLI(t)
			srv := newFHIRServer(t)
			args := append([]string{"--config", cfg}, tt.args...)
			args = append(args, srv.URL, patientJSON+"\n")

			_, err := execute(args...)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, srv.recorded())
		})
	}
}

func TestSplitArgs(t *testing.T) {
	server, specs, err := splitArgs("", []string{"http://fhir", "a.json", "b.json"})
	require.NoError(t, err)
	assert.Equal(t, "http://fhir", server)
	assert.Equal(t, []string{"a.json", "b.json"}, specs)

	server, specs, err = splitArgs("http://configured", []string{"a.json"})
	require.NoError(t, err)
	assert.Equal(t, "http://configured", server)
	assert.Equal(t, []string{"a.json"}, specs)

	_, _, err = splitArgs("", []string{"a.json"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExecute_ExitCodes(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		setupCLI(t)
		rootCmd.SetOut(new(bytes.Buffer))
		rootCmd.SetArgs([]string{"version"})

		assert.Equal(t, 0, Execute())
	})

	t.Run("failure", func(t *testing.T) {
		cfg := setupCLI(t)
		errOut := new(bytes.Buffer)
		rootCmd.SetErr(errOut)
		rootCmd.SetArgs([]string{"--config", cfg, "http://127.0.0.1:1", "/no/such/file.json"})

		assert.Equal(t, 1, Execute())
	})

	t.Run("usage error is printed", func(t *testing.T) {
		cfg := setupCLI(t)
		errOut := new(bytes.Buffer)
		rootCmd.SetErr(errOut)
		rootCmd.SetArgs([]string{"--config", cfg, "only-one-arg"})

		assert.Equal(t, 1, Execute())
		assert.Contains(t, errOut.String(), "Error: ")
	})
}
