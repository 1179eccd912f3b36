package app

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/harvest/cmd/application"
	"github.com/agentstation/harvest/pkg/constants"
	harvesterrors "github.com/agentstation/harvest/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Merge configuration
	MetadataDir       string
	Input             string
	Output            string
	MetadataSuffix    string
	CollectionsOutput string
	Backup            bool
	Lock              bool
	DryRun            bool
	LenientMetadata   bool

	// Logging configuration. LogLevel is the explicit --log-level flag;
	// EnvLogLevel comes from the config file or environment.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by the commands)
// 2. HARVEST_* environment variables
// 3. .env and .env.local files
// 4. Config file (configFile, or .harvest.yaml in . or $HOME)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, harvesterrors.NewConfigError("config file", err.Error(), err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		MetadataDir:       v.GetString("metadata_dir"),
		Input:             v.GetString("input"),
		Output:            v.GetString("output"),
		MetadataSuffix:    v.GetString("metadata_suffix"),
		CollectionsOutput: v.GetString("collections_output"),
		Backup:            v.GetBool("backup"),
		Lock:              v.GetBool("lock"),
		DryRun:            v.GetBool("dry_run"),
		LenientMetadata:   v.GetBool("lenient_metadata"),

		EnvLogLevel: firstNonEmpty(v.GetString("log_level"), os.Getenv("LOG_LEVEL")),
		LogFormat:   firstNonEmpty(v.GetString("log_format"), os.Getenv("LOG_FORMAT"), "auto"),
		LogOutput:   firstNonEmpty(v.GetString("log_output"), os.Getenv("LOG_OUTPUT"), "stderr"),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("metadata_dir", constants.DefaultMetadataDir)
	v.SetDefault("input", constants.DefaultCatalogPath)
	v.SetDefault("output", constants.DefaultCatalogPath)
	v.SetDefault("metadata_suffix", constants.MetadataSuffix)
	v.SetDefault("collections_output", constants.DefaultCollectionsPath)
	v.SetDefault("backup", true)
	v.SetDefault("lock", true)
	v.SetDefault("dry_run", false)
	v.SetDefault("lenient_metadata", false)
}

// UpdateFromFlags updates config values from parsed global flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// Settings returns the merge settings held by the config.
func (c *Config) Settings() application.Settings {
	return application.Settings{
		MetadataDir:       c.MetadataDir,
		Input:             c.Input,
		Output:            c.Output,
		MetadataSuffix:    c.MetadataSuffix,
		CollectionsOutput: c.CollectionsOutput,
		Backup:            c.Backup,
		Lock:              c.Lock,
		DryRun:            c.DryRun,
		LenientMetadata:   c.LenientMetadata,
	}
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables that are already set, so loading
// .env.local first lets it win over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
