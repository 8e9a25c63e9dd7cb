package telemetry

import (
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/sdk/trace"
)

// Sampler names accepted in the telemetry.sampler key and OTEL_TRACES_SAMPLER.
const (
	SamplerAlwaysOn              = "always_on"
	SamplerAlwaysOff             = "always_off"
	SamplerTraceIDRatio          = "traceidratio"
	SamplerParentBasedAlwaysOn   = "parentbased_always_on"
	SamplerParentBasedAlwaysOff  = "parentbased_always_off"
	SamplerParentBasedTraceRatio = "parentbased_traceidratio"
)

// SamplerNames lists the supported sampler names.
func SamplerNames() []string {
	return []string{
		SamplerAlwaysOn,
		SamplerAlwaysOff,
		SamplerTraceIDRatio,
		SamplerParentBasedAlwaysOn,
		SamplerParentBasedAlwaysOff,
		SamplerParentBasedTraceRatio,
	}
}

// SamplerName returns the configured sampler name, lowercased. An empty
// setting means always_on.
func (c *Config) SamplerName() string {
	name := strings.ToLower(strings.TrimSpace(c.Sampler))
	if name == "" {
		return SamplerAlwaysOn
	}
	return name
}

// ValidateSampler checks that name is a supported sampler and, for the
// ratio samplers, that arg is a ratio in [0, 1]. An empty arg means 1.
func ValidateSampler(name, arg string) error {
	_, err := newSampler(&Config{Sampler: name, SamplerArg: arg})
	return err
}

// newSampler builds the trace sampler named by cfg.
func newSampler(cfg *Config) (trace.Sampler, error) {
	name := cfg.SamplerName()
	switch name {
	case SamplerAlwaysOn:
		return trace.AlwaysSample(), nil
	case SamplerAlwaysOff:
		return trace.NeverSample(), nil
	case SamplerParentBasedAlwaysOn:
		return trace.ParentBased(trace.AlwaysSample()), nil
	case SamplerParentBasedAlwaysOff:
		return trace.ParentBased(trace.NeverSample()), nil
	case SamplerTraceIDRatio, SamplerParentBasedTraceRatio:
		ratio, err := parseRatio(cfg.SamplerArg)
		if err != nil {
			return nil, fmt.Errorf("telemetry sampler %s: %w", name, err)
		}
		if name == SamplerTraceIDRatio {
			return trace.TraceIDRatioBased(ratio), nil
		}
		return trace.ParentBased(trace.TraceIDRatioBased(ratio)), nil
	default:
		return nil, fmt.Errorf("unsupported telemetry sampler %q (valid: %s)",
			cfg.Sampler, strings.Join(SamplerNames(), ", "))
	}
}

// parseRatio parses a sampling ratio. Empty means 1.
func parseRatio(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1.0, nil
	}
	ratio, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sampler_arg %q: not a number", s)
	}
	if ratio < 0 || ratio > 1 {
		return 0, fmt.Errorf("invalid sampler_arg %q: ratio must be between 0 and 1", s)
	}
	return ratio, nil
}
