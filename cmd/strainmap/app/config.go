package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/strainmap/internal/server"
	"github.com/agentstation/strainmap/pkg/constants"
	"github.com/agentstation/strainmap/pkg/errors"
)

// envPrefix namespaces strainmap settings in the environment
// (STRAINMAP_LIBRARY_PATH, STRAINMAP_USE_LLM, ...).
const envPrefix = "STRAINMAP"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string

	// Config file
	ConfigFile string

	// Gemini
	GeminiAPIKey   string
	GeminiModel    string
	GeminiEndpoint string
	UseLLM         bool

	// Library
	LibraryPath string

	// Server
	ServerAddr  string
	CORSOrigins []string
	RateLimit   int
	CacheTTL    time.Duration

	// Logging configuration. LogLevel above comes from --log-level only;
	// ConfiguredLogLevel is the LOG_LEVEL env var or config file value.
	ConfiguredLogLevel string
	LogFormat          string
	LogOutput          string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.strainmap.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindAPIKeys(v); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigFile)
		// A missing default config file is fine.
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		GeminiAPIKey:   strings.TrimSpace(v.GetString("gemini_api_key")),
		GeminiModel:    v.GetString("gemini_model"),
		GeminiEndpoint: v.GetString("gemini_endpoint"),
		UseLLM:         v.GetBool("use_llm"),

		LibraryPath: v.GetString("library_path"),

		ServerAddr:  v.GetString("server_addr"),
		CORSOrigins: v.GetStringSlice("cors_origins"),
		RateLimit:   v.GetInt("rate_limit"),
		CacheTTL:    v.GetDuration("cache_ttl"),

		ConfiguredLogLevel: getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat:          getEnvOrDefault("LOG_FORMAT", v.GetString("log_format")),
		LogOutput:          getEnvOrDefault("LOG_OUTPUT", v.GetString("log_output")),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	defaults := server.DefaultConfig()

	v.SetDefault("gemini_model", constants.DefaultGeminiModel)
	v.SetDefault("use_llm", true)
	v.SetDefault("library_path", constants.DefaultLibraryDir+"/"+constants.DefaultLibraryFile)
	v.SetDefault("server_addr", defaults.Addr)
	v.SetDefault("rate_limit", defaults.RateLimit)
	v.SetDefault("cache_ttl", defaults.CacheTTL)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// bindAPIKeys binds the Gemini key to its unprefixed environment variables.
// GEMINI_API_KEY wins over GOOGLE_API_KEY.
func bindAPIKeys(v *viper.Viper) error {
	if err := v.BindEnv("gemini_api_key", envPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"); err != nil {
		return errors.NewConfigError("config", "failed to bind gemini_api_key", err)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
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

// ServerConfig returns the server settings derived from the configuration.
func (c *Config) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	if c.ServerAddr != "" {
		cfg.Addr = c.ServerAddr
	}
	if len(c.CORSOrigins) > 0 {
		cfg.CORSOrigins = c.CORSOrigins
	}
	cfg.RateLimit = c.RateLimit
	if c.CacheTTL > 0 {
		cfg.CacheTTL = c.CacheTTL
	}
	return cfg
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
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
