package app

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/jfrogsync/pkg/constants"
	"github.com/agentstation/jfrogsync/pkg/errors"
	"github.com/agentstation/jfrogsync/pkg/port"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// Configuration keys. Each key is also read from the upper-cased environment variable.
const (
	KeyPortClientID        = "port_client_id"
	KeyPortClientSecret    = "port_client_secret"
	KeyJFrogAccessToken    = "jfrog_access_token"
	KeyJFrogHostURL        = "jfrog_host_url"
	KeyPortAPIURL          = "port_api_url"
	KeyRepositoryBlueprint = "repository_blueprint"
	KeyBuildBlueprint      = "build_blueprint"
	KeyPublishErrorPolicy  = "publish_error_policy"
	KeyHTTPTimeout         = "http_timeout"
	KeyLogLevel            = "log_level"
	KeyLogFormat           = "log_format"
	KeyLogOutput           = "log_output"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string // --log-level flag only

	// Config file
	ConfigFile string

	// Catalog service
	PortClientID     string
	PortClientSecret string
	PortAPIURL       string

	// Source service
	JFrogAccessToken string
	JFrogHostURL     string

	// Sync behavior
	RepositoryBlueprint string
	BuildBlueprint      string
	PublishErrorPolicy  string
	HTTPTimeout         time.Duration

	// Logging configuration
	EnvLogLevel string // LOG_LEVEL from the environment or config file
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (configFile, or ~/.jfrogsync.yaml and ./.jfrogsync.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	return &Config{
		ConfigFile: v.ConfigFileUsed(),

		PortClientID:     v.GetString(KeyPortClientID),
		PortClientSecret: v.GetString(KeyPortClientSecret),
		PortAPIURL:       v.GetString(KeyPortAPIURL),

		JFrogAccessToken: v.GetString(KeyJFrogAccessToken),
		JFrogHostURL:     v.GetString(KeyJFrogHostURL),

		RepositoryBlueprint: v.GetString(KeyRepositoryBlueprint),
		BuildBlueprint:      v.GetString(KeyBuildBlueprint),
		PublishErrorPolicy:  v.GetString(KeyPublishErrorPolicy),
		HTTPTimeout:         v.GetDuration(KeyHTTPTimeout),

		EnvLogLevel: v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		LogOutput:   v.GetString(KeyLogOutput),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPortAPIURL, constants.DefaultPortAPIURL)
	v.SetDefault(KeyRepositoryBlueprint, constants.DefaultRepositoryBlueprint)
	v.SetDefault(KeyBuildBlueprint, constants.DefaultBuildBlueprint)
	v.SetDefault(KeyPublishErrorPolicy, string(pkgsync.PublishPolicyWarn))
	v.SetDefault(KeyHTTPTimeout, constants.DefaultHTTPTimeout)
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyLogOutput, "stderr")
}

// bindEnv explicitly binds every key to its environment variable.
func bindEnv(v *viper.Viper) error {
	keys := []string{
		KeyPortClientID,
		KeyPortClientSecret,
		KeyJFrogAccessToken,
		KeyJFrogHostURL,
		KeyPortAPIURL,
		KeyRepositoryBlueprint,
		KeyBuildBlueprint,
		KeyPublishErrorPolicy,
		KeyHTTPTimeout,
		KeyLogLevel,
		KeyLogFormat,
		KeyLogOutput,
	}

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return errors.NewConfigError("env", "failed to bind "+envName(key), err)
		}
	}
	return nil
}

func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.NewConfigError("file", "failed to read "+configFile, err)
		}
		return nil
	}

	// Search for config in standard locations
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(constants.ConfigFileName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.NewConfigError("file", "failed to read config file", err)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// ValidateSource checks the settings needed to read from Artifactory.
func (c *Config) ValidateSource() error {
	return c.validate(map[string]string{
		KeyJFrogAccessToken: c.JFrogAccessToken,
		KeyJFrogHostURL:     c.JFrogHostURL,
	})
}

// ValidateCatalog checks the settings needed to publish to Port.
func (c *Config) ValidateCatalog() error {
	return c.validate(map[string]string{
		KeyPortClientID:     c.PortClientID,
		KeyPortClientSecret: c.PortClientSecret,
	})
}

// Validate checks every setting a full sync needs and names each missing one.
func (c *Config) Validate() error {
	return c.validate(map[string]string{
		KeyPortClientID:     c.PortClientID,
		KeyPortClientSecret: c.PortClientSecret,
		KeyJFrogAccessToken: c.JFrogAccessToken,
		KeyJFrogHostURL:     c.JFrogHostURL,
	})
}

func (c *Config) validate(required map[string]string) error {
	var missing []string
	for _, key := range []string{KeyPortClientID, KeyPortClientSecret, KeyJFrogAccessToken, KeyJFrogHostURL} {
		if value, ok := required[key]; ok && strings.TrimSpace(value) == "" {
			missing = append(missing, envName(key))
		}
	}
	if len(missing) > 0 {
		return errors.NewConfigError("config", "missing required settings: "+strings.Join(missing, ", "), nil)
	}

	if _, ok := required[KeyJFrogHostURL]; ok {
		if err := validateURL(KeyJFrogHostURL, c.JFrogHostURL); err != nil {
			return err
		}
	}
	if _, ok := required[KeyPortClientID]; ok {
		if err := validateURL(KeyPortAPIURL, c.PortAPIURL); err != nil {
			return err
		}
	}

	if _, err := pkgsync.ParsePublishPolicy(c.PublishErrorPolicy); err != nil {
		return errors.NewConfigError("config", envName(KeyPublishErrorPolicy)+" is invalid", err)
	}

	if c.HTTPTimeout < 0 {
		return errors.NewConfigError("config", envName(KeyHTTPTimeout)+" must be non-negative", nil)
	}

	return nil
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewConfigError("config", envName(key)+" must be an http(s) URL", err)
	}
	return nil
}

// SyncOptions converts the sync settings to sync options.
// An invalid policy is left for option validation to report.
func (c *Config) SyncOptions() []pkgsync.Option {
	return []pkgsync.Option{
		pkgsync.WithRepositoryBlueprint(port.BlueprintID(c.repositoryBlueprint())),
		pkgsync.WithBuildBlueprint(port.BlueprintID(c.buildBlueprint())),
		pkgsync.WithPublishPolicy(c.publishPolicy()),
	}
}

// publishPolicy returns the parsed policy, or the raw value when it does not parse.
func (c *Config) publishPolicy() pkgsync.PublishPolicy {
	policy, err := pkgsync.ParsePublishPolicy(c.PublishErrorPolicy)
	if err != nil {
		return pkgsync.PublishPolicy(c.PublishErrorPolicy)
	}
	return policy
}

func (c *Config) repositoryBlueprint() string {
	if c.RepositoryBlueprint == "" {
		return constants.DefaultRepositoryBlueprint
	}
	return c.RepositoryBlueprint
}

func (c *Config) buildBlueprint() string {
	if c.BuildBlueprint == "" {
		return constants.DefaultBuildBlueprint
	}
	return c.BuildBlueprint
}

// RedactedConfig is the printable form of Config with secrets hidden.
type RedactedConfig struct {
	ConfigFile          string `json:"config_file" yaml:"config_file"`
	PortAPIURL          string `json:"port_api_url" yaml:"port_api_url"`
	PortClientID        string `json:"port_client_id" yaml:"port_client_id"`
	PortClientSecret    string `json:"port_client_secret" yaml:"port_client_secret"`
	JFrogHostURL        string `json:"jfrog_host_url" yaml:"jfrog_host_url"`
	JFrogAccessToken    string `json:"jfrog_access_token" yaml:"jfrog_access_token"`
	RepositoryBlueprint string `json:"repository_blueprint" yaml:"repository_blueprint"`
	BuildBlueprint      string `json:"build_blueprint" yaml:"build_blueprint"`
	PublishErrorPolicy  string `json:"publish_error_policy" yaml:"publish_error_policy"`
	HTTPTimeout         string `json:"http_timeout" yaml:"http_timeout"`
	LogLevel            string `json:"log_level" yaml:"log_level"`
	LogFormat           string `json:"log_format" yaml:"log_format"`
	LogOutput           string `json:"log_output" yaml:"log_output"`
}

// Redacted returns the effective configuration with secrets hidden.
func (c *Config) Redacted() RedactedConfig {
	return RedactedConfig{
		ConfigFile:          c.ConfigFile,
		PortAPIURL:          c.PortAPIURL,
		PortClientID:        c.PortClientID,
		PortClientSecret:    redact(c.PortClientSecret),
		JFrogHostURL:        c.JFrogHostURL,
		JFrogAccessToken:    redact(c.JFrogAccessToken),
		RepositoryBlueprint: c.repositoryBlueprint(),
		BuildBlueprint:      c.buildBlueprint(),
		PublishErrorPolicy:  c.PublishErrorPolicy,
		HTTPTimeout:         c.HTTPTimeout.String(),
		LogLevel:            determineLogLevel(c),
		LogFormat:           c.LogFormat,
		LogOutput:           c.LogOutput,
	}
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

// envName returns the environment variable for a key.
func envName(key string) string {
	return strings.ToUpper(key)
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden.
func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}
