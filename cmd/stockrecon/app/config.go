package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/stockrecon/internal/appcontext"
	"github.com/agentstation/stockrecon/pkg/constants"
	"github.com/agentstation/stockrecon/pkg/errors"
)

// envPrefix namespaces configuration environment variables,
// e.g. STOCKRECON_ISSUE_DIR.
const envPrefix = "STOCKRECON"

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

	// Record folders
	IssueDir    string
	DispatchDir string
	TextDir     string

	// Run settings
	Workers           int
	FailOnDiscrepancy bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.stockrecon.yaml or ./.stockrecon.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig("")
}

// LoadConfigFile loads configuration like LoadConfig but reads the given
// config file instead of searching for one. A missing file is an error.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(path)
}

func loadConfig(path string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config file", "cannot read "+path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".stockrecon")

		// Read config file (ignore error if not found)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, errors.NewConfigError("config file", "cannot parse "+v.ConfigFileUsed(), err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		IssueDir:    v.GetString("issue_dir"),
		DispatchDir: v.GetString("dispatch_dir"),
		TextDir:     v.GetString("text_dir"),

		Workers:           v.GetInt("workers"),
		FailOnDiscrepancy: v.GetBool("fail_on_discrepancy"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: firstNonEmpty(v.GetString("log_format"), getEnvOrDefault("LOG_FORMAT", "auto")),
		LogOutput: firstNonEmpty(v.GetString("log_output"), getEnvOrDefault("LOG_OUTPUT", "stderr")),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("issue_dir", constants.DefaultIssueDir)
	v.SetDefault("dispatch_dir", constants.DefaultDispatchDir)
	v.SetDefault("text_dir", constants.DefaultTextDir)
	v.SetDefault("workers", constants.MaxConcurrentDecoders)
	v.SetDefault("fail_on_discrepancy", false)
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.NewConfigError("workers", "must be at least 1", errors.NewValidationError("workers", c.Workers, "must be at least 1"))
	}
	for field, dir := range map[string]string{"issue_dir": c.IssueDir, "dispatch_dir": c.DispatchDir, "text_dir": c.TextDir} {
		if dir == "" {
			return errors.NewConfigError(field, "must not be empty", errors.ErrInvalidInput)
		}
	}
	return nil
}

// UpdateFromFlags copies the global flags the user actually set.
// This should be called after cobra parses flags so that flag values
// take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(flags *pflag.FlagSet) {
	if flags.Changed("verbose") {
		c.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("quiet") {
		c.Quiet, _ = flags.GetBool("quiet")
	}
	if flags.Changed("no-color") {
		c.NoColor, _ = flags.GetBool("no-color")
	}
	if flags.Changed("format") {
		c.Format, _ = flags.GetString("format")
	}
	if flags.Changed("log-level") {
		c.LogLevel, _ = flags.GetString("log-level")
	}
}

// Settings returns the values commands fall back to.
func (c *Config) Settings() appcontext.Settings {
	return appcontext.Settings{
		IssueDir:          c.IssueDir,
		DispatchDir:       c.DispatchDir,
		TextDir:           c.TextDir,
		Workers:           c.Workers,
		FailOnDiscrepancy: c.FailOnDiscrepancy,
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overwritten.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
