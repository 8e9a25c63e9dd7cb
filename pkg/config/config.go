// Package config provides configuration management for the analyser.
package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jvm-dump-analyser/pkg/telemetry"
)

// EnvPrefix prefixes environment overrides, e.g. JVMDUMP_LOG_LEVEL.
const EnvPrefix = "JVMDUMP"

// Config holds all configuration for the application.
type Config struct {
	Log       LogConfig        `mapstructure:"log"`
	Storage   StorageConfig    `mapstructure:"storage"`
	Parser    ParserConfig     `mapstructure:"parser"`
	Report    ReportConfig     `mapstructure:"report"`
	Telemetry telemetry.Config `mapstructure:"telemetry"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// StorageConfig selects where dump files are read from.
type StorageConfig struct {
	Type      string `mapstructure:"type"` // cos or local
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	Domain    string `mapstructure:"domain"`   // e.g., "myqcloud.com"
	Scheme    string `mapstructure:"scheme"`   // e.g., "https" or "http"
	Endpoint  string `mapstructure:"endpoint"` // full bucket URL, overrides the fields above
	LocalPath string `mapstructure:"local_path"`
}

// ParserConfig holds thread dump parser settings.
type ParserConfig struct {
	StrictSynchronizers bool `mapstructure:"strict_synchronizers"`
	MaxLineBytes        int  `mapstructure:"max_line_bytes"`
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	Format    string `mapstructure:"format"`
	Color     bool   `mapstructure:"color"`
	Summary   bool   `mapstructure:"summary"`
	TopFrames int    `mapstructure:"top_frames"`
}

// Load reads configuration from configPath, or from config.yaml in the
// standard locations when configPath is empty. A missing default file is not
// an error; a missing explicit file is.
func Load(configPath string) (*Config, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/jvm-dump-analyser")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromReader loads configuration from content (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := newViper()

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return decode(v)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// Defaults are static and always valid.
		panic(err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	// Allow environment variables to override config
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Storage defaults. An empty local path means keys are plain file paths.
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "")
	v.SetDefault("storage.scheme", "https")
	v.SetDefault("storage.domain", "myqcloud.com")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.secret_id", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.endpoint", "")

	// Parser defaults
	v.SetDefault("parser.strict_synchronizers", false)
	v.SetDefault("parser.max_line_bytes", 1024*1024)

	// Report defaults
	v.SetDefault("report.format", "text")
	v.SetDefault("report.color", false)
	v.SetDefault("report.summary", true)
	v.SetDefault("report.top_frames", 10)

	// Telemetry defaults
	tel := telemetry.DefaultConfig()
	v.SetDefault("telemetry.enabled", tel.Enabled)
	v.SetDefault("telemetry.service_name", tel.ServiceName)
	v.SetDefault("telemetry.service_version", tel.ServiceVersion)
	v.SetDefault("telemetry.protocol", tel.Protocol)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.headers", "")
	v.SetDefault("telemetry.insecure", false)
	v.SetDefault("telemetry.sampler", "")
	v.SetDefault("telemetry.sampler_arg", "")
	v.SetDefault("telemetry.resource_attributes", "")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}

	// Storage config validation is delegated to storage package

	if c.Parser.MaxLineBytes < 1024 {
		return fmt.Errorf("parser max_line_bytes must be at least 1024, got %d", c.Parser.MaxLineBytes)
	}

	if c.Report.TopFrames < 0 {
		return fmt.Errorf("report top_frames must not be negative")
	}

	switch strings.ToLower(c.Telemetry.Protocol) {
	case "grpc", "http", "http/protobuf":
	default:
		return fmt.Errorf("unsupported telemetry protocol: %s", c.Telemetry.Protocol)
	}

	if err := telemetry.ValidateSampler(c.Telemetry.Sampler, c.Telemetry.SamplerArg); err != nil {
		return err
	}

	return nil
}
