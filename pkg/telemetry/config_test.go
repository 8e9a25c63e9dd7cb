package telemetry

import (
	"testing"
)

var otelEnvVars = []string{
	"OTEL_ENABLED",
	"OTEL_SERVICE_NAME",
	"OTEL_SERVICE_VERSION",
	"OTEL_EXPORTER_OTLP_ENDPOINT",
	"OTEL_EXPORTER_OTLP_PROTOCOL",
	"OTEL_EXPORTER_OTLP_HEADERS",
	"OTEL_EXPORTER_OTLP_INSECURE",
	"OTEL_TRACES_SAMPLER",
	"OTEL_TRACES_SAMPLER_ARG",
	"OTEL_RESOURCE_ATTRIBUTES",
}

// clearOTELEnv blanks every OTEL_* variable for the duration of the test.
func clearOTELEnv(t *testing.T) {
	t.Helper()
	for _, k := range otelEnvVars {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Enabled {
		t.Error("Expected Enabled to be false by default")
	}
	if cfg.ServiceName != "jvm-dump-analyser" {
		t.Errorf("Expected ServiceName to be 'jvm-dump-analyser', got '%s'", cfg.ServiceName)
	}
	if cfg.ServiceVersion != "unknown" {
		t.Errorf("Expected ServiceVersion to be 'unknown', got '%s'", cfg.ServiceVersion)
	}
	if cfg.Protocol != "grpc" {
		t.Errorf("Expected Protocol to be 'grpc', got '%s'", cfg.Protocol)
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Run("unset_keeps_values", func(t *testing.T) {
		clearOTELEnv(t)

		cfg := Config{Enabled: true, ServiceName: "from-file", Protocol: "http", Insecure: true}
		cfg.ApplyEnv()

		if !cfg.Enabled || !cfg.Insecure {
			t.Error("Expected booleans from file to be kept")
		}
		if cfg.ServiceName != "from-file" {
			t.Errorf("Expected ServiceName 'from-file', got '%s'", cfg.ServiceName)
		}
		if cfg.Protocol != "http" {
			t.Errorf("Expected Protocol 'http', got '%s'", cfg.Protocol)
		}
	})

	t.Run("enabled_case_insensitive", func(t *testing.T) {
		clearOTELEnv(t)
		t.Setenv("OTEL_ENABLED", "TRUE")

		cfg := DefaultConfig()
		cfg.ApplyEnv()
		if !cfg.Enabled {
			t.Error("Expected Enabled to be true for 'TRUE'")
		}
	})

	t.Run("env_disables", func(t *testing.T) {
		clearOTELEnv(t)
		t.Setenv("OTEL_ENABLED", "false")

		cfg := Config{Enabled: true}
		cfg.ApplyEnv()
		if cfg.Enabled {
			t.Error("Expected OTEL_ENABLED=false to disable tracing")
		}
	})

	t.Run("custom_values", func(t *testing.T) {
		clearOTELEnv(t)
		t.Setenv("OTEL_SERVICE_NAME", "my-service")
		t.Setenv("OTEL_SERVICE_VERSION", "1.0.0")
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://collector.example.com:4317")
		t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "http/protobuf")
		t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")
		t.Setenv("OTEL_TRACES_SAMPLER", "traceidratio")
		t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

		cfg := DefaultConfig()
		cfg.ApplyEnv()

		if cfg.ServiceName != "my-service" {
			t.Errorf("Expected ServiceName 'my-service', got '%s'", cfg.ServiceName)
		}
		if cfg.ServiceVersion != "1.0.0" {
			t.Errorf("Expected ServiceVersion '1.0.0', got '%s'", cfg.ServiceVersion)
		}
		if cfg.Endpoint != "https://collector.example.com:4317" {
			t.Errorf("Expected Endpoint 'https://collector.example.com:4317', got '%s'", cfg.Endpoint)
		}
		if cfg.Protocol != "http/protobuf" {
			t.Errorf("Expected Protocol 'http/protobuf', got '%s'", cfg.Protocol)
		}
		if !cfg.Insecure {
			t.Error("Expected Insecure to be true")
		}
		if cfg.Sampler != "traceidratio" || cfg.SamplerArg != "0.25" {
			t.Errorf("Expected sampler traceidratio/0.25, got '%s'/'%s'", cfg.Sampler, cfg.SamplerArg)
		}
	})

	t.Run("headers_parsing", func(t *testing.T) {
		clearOTELEnv(t)
		t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "Authorization=Bearer token123,X-Custom=value")

		cfg := DefaultConfig()
		cfg.ApplyEnv()
		headers := cfg.HeaderMap()

		if len(headers) != 2 {
			t.Errorf("Expected 2 headers, got %d", len(headers))
		}
		if headers["Authorization"] != "Bearer token123" {
			t.Errorf("Expected Authorization header 'Bearer token123', got '%s'", headers["Authorization"])
		}
		if headers["X-Custom"] != "value" {
			t.Errorf("Expected X-Custom header 'value', got '%s'", headers["X-Custom"])
		}
	})

	t.Run("resource_attributes", func(t *testing.T) {
		clearOTELEnv(t)
		t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "deployment.environment=production,service.namespace=jvm")

		cfg := DefaultConfig()
		cfg.ApplyEnv()
		attrs := cfg.ResourceAttrMap()

		if len(attrs) != 2 {
			t.Errorf("Expected 2 resource attributes, got %d", len(attrs))
		}
		if attrs["deployment.environment"] != "production" {
			t.Errorf("Expected deployment.environment 'production', got '%s'", attrs["deployment.environment"])
		}
	})
}

func TestParseKeyValuePairs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:     "empty",
			input:    "",
			expected: map[string]string{},
		},
		{
			name:     "single_pair",
			input:    "key=value",
			expected: map[string]string{"key": "value"},
		},
		{
			name:     "multiple_pairs",
			input:    "key1=value1,key2=value2",
			expected: map[string]string{"key1": "value1", "key2": "value2"},
		},
		{
			name:     "with_spaces",
			input:    " key1 = value1 , key2 = value2 ",
			expected: map[string]string{"key1": "value1", "key2": "value2"},
		},
		{
			name:     "value_with_equals",
			input:    "Authorization=Bearer token=abc",
			expected: map[string]string{"Authorization": "Bearer token=abc"},
		},
		{
			name:     "empty_value",
			input:    "key=",
			expected: map[string]string{"key": ""},
		},
		{
			name:     "invalid_no_equals",
			input:    "invalid",
			expected: map[string]string{},
		},
		{
			name:     "mixed_valid_invalid",
			input:    "valid=value,invalid,another=test",
			expected: map[string]string{"valid": "value", "another": "test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseKeyValuePairs(tt.input)

			if len(result) != len(tt.expected) {
				t.Errorf("Expected %d pairs, got %d", len(tt.expected), len(result))
			}

			for k, v := range tt.expected {
				if result[k] != v {
					t.Errorf("Expected %s='%s', got '%s'", k, v, result[k])
				}
			}
		})
	}
}
