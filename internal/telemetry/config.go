package telemetry

import (
	"strings"
	"time"
)

const (
	envPrefix      = "APIGLASS_TRACE_OTEL_"
	envEndpoint    = envPrefix + "ENDPOINT"
	envInsecure    = envPrefix + "INSECURE"
	envHeaders     = envPrefix + "HEADERS"
	envService     = envPrefix + "SERVICE"
	envDialTimeout = envPrefix + "TIMEOUT"
)

type Config struct {
	Endpoint    string
	Insecure    bool
	Headers     map[string]string
	ServiceName string
	Version     string
	DialTimeout time.Duration
}

// Default returns the baseline telemetry config used when no overrides exist.
func Default() Config {
	return Config{
		ServiceName: "apiglass",
		DialTimeout: 5 * time.Second,
	}
}

// Enabled reports whether an exporter endpoint is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// ApplyEnv overlays environment variables onto cfg. Invalid values are
// ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}

	if val := strings.TrimSpace(getenv(envEndpoint)); val != "" {
		cfg.Endpoint = val
	}
	if val := strings.TrimSpace(getenv(envInsecure)); val != "" {
		if parsed, ok := ParseBool(val); ok {
			cfg.Insecure = parsed
		}
	}
	if val := strings.TrimSpace(getenv(envService)); val != "" {
		cfg.ServiceName = val
	}
	if val := strings.TrimSpace(getenv(envDialTimeout)); val != "" {
		if dur, err := time.ParseDuration(val); err == nil && dur > 0 {
			cfg.DialTimeout = dur
		}
	}
	if spec := strings.TrimSpace(getenv(envHeaders)); spec != "" {
		cfg.Headers = MergeHeaders(cfg.Headers, ParseHeaders(spec))
	}
}

// MergeHeaders copies dst and overlays src. Empty keys are dropped.
func MergeHeaders(dst, src map[string]string) map[string]string {
	if len(dst) == 0 && len(src) == 0 {
		return nil
	}

	merged := make(map[string]string, len(dst)+len(src))
	for k, v := range dst {
		merged[k] = v
	}
	for k, v := range src {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		merged[key] = strings.TrimSpace(v)
	}
	return merged
}

// ParseHeaders converts comma separated key=value pairs into a header map.
func ParseHeaders(spec string) map[string]string {
	headers := map[string]string{}
	for _, entry := range strings.Split(spec, ",") {
		key, value, _ := strings.Cut(strings.TrimSpace(entry), "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		headers[key] = strings.TrimSpace(value)
	}
	if len(headers) == 0 {
		return nil
	}
	return headers
}

// ParseBool accepts the usual truthy and falsey tokens and reports whether
// the input matched one.
func ParseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
