package telemetry

import (
	"os"
	"strings"
)

// DefaultServiceName is reported when no service name is configured.
const DefaultServiceName = "jvm-dump-analyser"

// Config holds OpenTelemetry configuration. It is usually loaded from the
// "telemetry" section of the application config and then overlaid with the
// standard OTEL_* environment variables by ApplyEnv.
type Config struct {
	// Enabled indicates whether OpenTelemetry tracing is enabled.
	Enabled bool `mapstructure:"enabled"`

	// ServiceName is the name of the service.
	ServiceName string `mapstructure:"service_name"`

	// ServiceVersion is the version of the service.
	ServiceVersion string `mapstructure:"service_version"`

	// Endpoint is the OTLP collector endpoint.
	Endpoint string `mapstructure:"endpoint"`

	// Protocol is the OTLP protocol (grpc or http/protobuf).
	Protocol string `mapstructure:"protocol"`

	// Headers contains custom headers for the OTLP exporter (e.g., Authorization).
	// Format: "key1=value1,key2=value2"
	Headers string `mapstructure:"headers"`

	// Insecure indicates whether to use insecure connection.
	Insecure bool `mapstructure:"insecure"`

	// Sampler is the sampler type.
	// Supported values: always_on, always_off, traceidratio,
	// parentbased_always_on, parentbased_always_off, parentbased_traceidratio.
	// Defaults to always_on (full sampling).
	Sampler string `mapstructure:"sampler"`

	// SamplerArg is the sampler argument (e.g., ratio for traceidratio).
	SamplerArg string `mapstructure:"sampler_arg"`

	// ResourceAttributes contains additional resource attributes.
	// Format: "key1=value1,key2=value2"
	ResourceAttributes string `mapstructure:"resource_attributes"`
}

// DefaultConfig returns a disabled configuration with default names.
func DefaultConfig() Config {
	return Config{
		Enabled:        false,
		ServiceName:    DefaultServiceName,
		ServiceVersion: "unknown",
		Protocol:       "grpc",
	}
}

// ApplyEnv overrides fields with the standard OTEL_* environment variables
// that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OTEL_ENABLED"); v != "" {
		c.Enabled = strings.ToLower(v) == "true"
	}
	setFromEnv(&c.ServiceName, "OTEL_SERVICE_NAME")
	setFromEnv(&c.ServiceVersion, "OTEL_SERVICE_VERSION")
	setFromEnv(&c.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setFromEnv(&c.Protocol, "OTEL_EXPORTER_OTLP_PROTOCOL")
	setFromEnv(&c.Headers, "OTEL_EXPORTER_OTLP_HEADERS")
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		c.Insecure = strings.ToLower(v) == "true"
	}
	setFromEnv(&c.Sampler, "OTEL_TRACES_SAMPLER")
	setFromEnv(&c.SamplerArg, "OTEL_TRACES_SAMPLER_ARG")
	setFromEnv(&c.ResourceAttributes, "OTEL_RESOURCE_ATTRIBUTES")
}

// HeaderMap returns Headers parsed into a map.
func (c *Config) HeaderMap() map[string]string {
	return parseKeyValuePairs(c.Headers)
}

// ResourceAttrMap returns ResourceAttributes parsed into a map.
func (c *Config) ResourceAttrMap() map[string]string {
	return parseKeyValuePairs(c.ResourceAttributes)
}

func setFromEnv(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

// parseKeyValuePairs parses a comma-separated list of key=value pairs.
// Example: "key1=value1,key2=value2" -> map[string]string{"key1": "value1", "key2": "value2"}
func parseKeyValuePairs(s string) map[string]string {
	result := make(map[string]string)
	if s == "" {
		return result
	}

	pairs := strings.Split(s, ",")
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		// Split on first '=' only to allow '=' in values
		idx := strings.Index(pair, "=")
		if idx <= 0 {
			continue
		}

		key := strings.TrimSpace(pair[:idx])
		value := strings.TrimSpace(pair[idx+1:])
		if key != "" {
			result[key] = value
		}
	}

	return result
}
