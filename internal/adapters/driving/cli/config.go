package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage loader defaults",
	Long: `View and change the defaults stored in the config file.

Values are layered: command-line flags override FHIR_LOADER_* environment
variables, which override the config file, which overrides built-in defaults.`,
	RunE: runConfigGet,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show effective settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting in the config file",
	Long: `Store a setting in the config file.

Keys:
  server      FHIR server base URL
  format      json, xml or ttl
  recursive   true or false
  pattern     regular expression for file names
  missing_id  create or fail
  rate        requests per second, 0 for unlimited
  timeout     per-request timeout, e.g. 30s`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openConfigStore()
		if err != nil {
			return err
		}
		cmd.Println(store.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	keys := services.SettingKeys()
	if len(args) == 1 {
		if !slices.Contains(keys, args[0]) {
			return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, args[0])
		}
		cmd.Println(settingValue(settings, args[0]))
		return nil
	}

	for _, key := range keys {
		cmd.Printf("%-10s = %s\n", key, settingValue(settings, key))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := openConfigStore()
	if err != nil {
		return err
	}
	if err := services.NewSettingsService(store).Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s in %s\n", args[0], store.Path())
	return nil
}

func settingValue(settings *domain.LoaderSettings, key string) string {
	switch key {
	case services.KeyServer:
		return settings.Server
	case services.KeyFormat:
		return settings.Format
	case services.KeyRecursive:
		return strconv.FormatBool(settings.Recursive)
	case services.KeyPattern:
		return settings.Pattern
	case services.KeyMissingID:
		return settings.MissingID
	case services.KeyRate:
		return strconv.FormatFloat(settings.RateLimit, 'g', -1, 64)
	case services.KeyTimeout:
		return settings.Timeout.String()
	default:
		return ""
	}
}
