package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fhir-loader/internal/adapters/driven/config/file"
	"github.com/custodia-labs/fhir-loader/internal/adapters/driven/fhirhttp"
	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driven"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driving"
	"github.com/custodia-labs/fhir-loader/internal/core/services"
	"github.com/custodia-labs/fhir-loader/internal/logger"
	"github.com/custodia-labs/fhir-loader/internal/resolvers"
	"github.com/custodia-labs/fhir-loader/internal/sources"
)

// version is set at build time via ldflags.
var version = "dev"

// errUploadFailed reports that at least one item failed. The failures
// themselves have already been printed.
var errUploadFailed = errors.New("one or more uploads failed")

// rootFlags holds the values bound to persistent flags.
type rootFlags struct {
	configPath string
	server     string
	format     string
	recursive  bool
	verbose    bool
	pattern    string
	missingID  string
	rate       float64
	timeout    time.Duration
}

var flags rootFlags

var rootCmd = &cobra.Command{
	Use:   "fhir-loader [SERVER] FILES...",
	Short: "Upload FHIR resources to a FHIR server",
	Long: `Uploads FHIR resources in JSON, XML or Turtle to a FHIR server.

Each FILES argument is a file, a directory, a URL or the text of a resource.
Directories are searched for files (optionally recursively and filtered by
format and name pattern). Each resource is written with PUT to
SERVER/{resourceType}/{id}, so repeated uploads replace rather than duplicate.

SERVER may be omitted when it is set with --server, FHIR_LOADER_SERVER or the
config file; all arguments are then treated as FILES.`,
	Example: `  fhir-loader http://localhost:8080/fhir patient.json
  fhir-loader -r -f json http://localhost:8080/fhir ./resources
  fhir-loader -p 'jhu-' http://localhost:8080/fhir ./resources https://example.org/obs.ttl`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUpload,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default $HOME/.fhir-loader/config.toml)")
	pf.StringVarP(&flags.server, "server", "s", "", "FHIR server base URL")
	pf.StringVarP(&flags.format, "format", "f", "", "only load files of this format from directories (json, xml, ttl)")
	pf.BoolVarP(&flags.recursive, "recursive", "r", false, "descend into subdirectories")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "print each upload and a summary")
	pf.StringVarP(&flags.pattern, "pattern", "p", "", "only load files whose name matches this regular expression")
	pf.StringVar(&flags.missingID, "missing-id", "", "documents without an id: create (POST) or fail")
	pf.Float64Var(&flags.rate, "rate", 0, "maximum requests per second (0 = unlimited)")
	pf.DurationVar(&flags.timeout, "timeout", 0, "per-request timeout (0 = none)")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !errors.Is(err, errUploadFailed) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return 1
}

func runUpload(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	server, specs, err := splitArgs(settings.Server, args)
	if err != nil {
		return err
	}

	orchestrator, filter, err := buildUploader(settings)
	if err != nil {
		return err
	}

	report := newReporter(cmd.ErrOrStderr())
	req := driving.UploadRequest{Server: server, Specs: specs, Filter: filter}
	for result, err := range orchestrator.Upload(cmd.Context(), req) {
		if err != nil {
			report.Error(err)
			break
		}
		report.Result(result)
	}

	if flags.verbose {
		report.Summary()
	}
	if report.Failed() {
		return errUploadFailed
	}
	return nil
}

// splitArgs separates SERVER from FILES. A configured server means every
// argument is a FILES entry.
func splitArgs(configured string, args []string) (string, []string, error) {
	if configured != "" {
		return configured, args, nil
	}
	if len(args) < 2 {
		return "", nil, fmt.Errorf("%w: need SERVER and at least one FILES argument", domain.ErrInvalidInput)
	}
	return args[0], args[1:], nil
}

// openConfigStore opens --config, or the default file under $HOME.
func openConfigStore() (driven.ConfigStore, error) {
	if flags.configPath != "" {
		return file.NewConfigStoreAt(flags.configPath)
	}
	return file.NewConfigStore("")
}

// loadSettings layers flags over environment, config file and defaults.
func loadSettings(cmd *cobra.Command) (*domain.LoaderSettings, error) {
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(flags.verbose)

	store, err := openConfigStore()
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	logger.Debug("Using config %s", store.Path())

	settings, err := services.NewSettingsService(store).Get()
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("server") {
		settings.Server = flags.server
	}
	if changed("format") {
		settings.Format = flags.format
	}
	if changed("recursive") {
		settings.Recursive = flags.recursive
	}
	if changed("pattern") {
		settings.Pattern = flags.pattern
	}
	if changed("missing-id") {
		settings.MissingID = flags.missingID
	}
	if changed("rate") {
		settings.RateLimit = flags.rate
	}
	if changed("timeout") {
		settings.Timeout = flags.timeout
	}
	return settings, nil
}

// buildUploader wires the upload pipeline for one run.
func buildUploader(settings *domain.LoaderSettings) (*services.UploadService, domain.DiscoveryFilter, error) {
	if settings.Format != "" {
		if _, ok := domain.ParseFormat(settings.Format); !ok {
			return nil, domain.DiscoveryFilter{}, fmt.Errorf("%w: format %q (want json, xml or ttl)",
				domain.ErrInvalidInput, settings.Format)
		}
	}
	if settings.RateLimit < 0 {
		return nil, domain.DiscoveryFilter{}, fmt.Errorf("%w: rate must not be negative", domain.ErrInvalidInput)
	}

	filter, err := domain.NewDiscoveryFilter(settings.Format, settings.Recursive, settings.Pattern)
	if err != nil {
		return nil, domain.DiscoveryFilter{}, err
	}

	policy, err := resolvers.ParseMissingIDPolicy(settings.MissingID)
	if err != nil {
		return nil, domain.DiscoveryFilter{}, err
	}

	client := fhirhttp.New(
		fhirhttp.WithTimeout(settings.Timeout),
		fhirhttp.WithRateLimit(settings.RateLimit),
		fhirhttp.WithUserAgent(fhirhttp.DefaultUserAgent+"/"+version),
	)

	orchestrator := services.NewUploadService(
		sources.NewEnumerator(client),
		sources.NewReader(client),
		resolvers.New(resolvers.WithMissingIDPolicy(policy)),
		client,
	)
	return orchestrator, filter, nil
}
