package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"apiglass/internal/errdef"
	"apiglass/internal/openapi"
	"apiglass/internal/telemetry"
)

const (
	envPrefix    = "APIGLASS_"
	envConfig    = envPrefix + "CONFIG"
	envConfigDir = envPrefix + "CONFIG_DIR"
	envSpecURL   = envPrefix + "SPEC_URL"
	envSpecFile  = envPrefix + "SPEC_FILE"
	envSample    = envPrefix + "SAMPLE"
	envTheme     = envPrefix + "THEME"
	envBody      = envPrefix + "BODY_POLICY"
	envEditor    = envPrefix + "EDITOR"
	envDebug     = envPrefix + "DEBUG"
	envDebugLog  = envPrefix + "DEBUG_LOG"

	ThemeDark  = "dark"
	ThemeLight = "light"
)

type Config struct {
	// Spec is an http(s) URL or a file path; "@" marks a file explicitly.
	Spec       string        `yaml:"spec" toml:"spec"`
	Sample     bool          `yaml:"sample" toml:"sample"`
	Theme      string        `yaml:"theme" toml:"theme"`
	BodyPolicy string        `yaml:"body_policy" toml:"body_policy"`
	Editor     string        `yaml:"editor" toml:"editor"`
	DebugLog   string        `yaml:"debug_log" toml:"debug_log"`
	Telemetry  TelemetryFile `yaml:"telemetry" toml:"telemetry"`
}

// TelemetryFile is the telemetry block of the config file.
type TelemetryFile struct {
	Endpoint string            `yaml:"endpoint" toml:"endpoint"`
	Insecure bool              `yaml:"insecure" toml:"insecure"`
	Headers  map[string]string `yaml:"headers" toml:"headers"`
	Service  string            `yaml:"service" toml:"service"`
	Timeout  string            `yaml:"timeout" toml:"timeout"`
}

func Default() Config {
	return Config{
		Theme:      ThemeDark,
		BodyPolicy: openapi.BodyLastWins.String(),
	}
}

// Load builds the configuration from defaults, the config file and the
// environment, in increasing precedence. Flags are applied on top by the
// caller. A missing default config file is not an error; a missing file
// named by APIGLASS_CONFIG is.
func Load(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()

	path := strings.TrimSpace(getenv(envConfig))
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dirFrom(getenv), "config.yaml")
	}
	if err := loadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	applyEnv(&cfg, getenv)
	return cfg, cfg.Validate()
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return errdef.Wrap(errdef.CodeConfig, err, "parse config %s", path)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if file := strings.TrimSpace(getenv(envSpecFile)); file != "" {
		cfg.Spec = FileSource(file)
	} else if u := strings.TrimSpace(getenv(envSpecURL)); u != "" {
		cfg.Spec = u
	}

	if val := strings.TrimSpace(getenv(envSample)); val != "" {
		if parsed, ok := telemetry.ParseBool(val); ok {
			cfg.Sample = parsed
		}
	}
	if val := strings.TrimSpace(getenv(envTheme)); val != "" {
		cfg.Theme = strings.ToLower(val)
	}
	if val := strings.TrimSpace(getenv(envBody)); val != "" {
		cfg.BodyPolicy = strings.ToLower(val)
	}

	if val := strings.TrimSpace(getenv(envEditor)); val != "" {
		cfg.Editor = val
	} else if cfg.Editor == "" {
		cfg.Editor = strings.TrimSpace(getenv("EDITOR"))
	}

	if val := strings.TrimSpace(getenv(envDebugLog)); val != "" {
		cfg.DebugLog = val
	} else if getenv(envDebug) == "1" && cfg.DebugLog == "" {
		cfg.DebugLog = filepath.Join(os.TempDir(), "apiglass.log")
	}
}

func (c Config) Validate() error {
	switch c.Theme {
	case ThemeDark, ThemeLight:
	default:
		return errdef.New(errdef.CodeConfig, "unknown theme %q (want dark or light)", c.Theme)
	}
	switch c.BodyPolicy {
	case "last", "first":
	default:
		return errdef.New(errdef.CodeConfig, "unknown body policy %q (want last or first)", c.BodyPolicy)
	}
	if c.Telemetry.Timeout != "" {
		if _, err := time.ParseDuration(c.Telemetry.Timeout); err != nil {
			return errdef.Wrap(errdef.CodeConfig, err, "telemetry timeout")
		}
	}
	return nil
}

// ImportOptions returns the normalizer options this config selects.
func (c Config) ImportOptions() openapi.Options {
	return openapi.Options{BodyPolicy: openapi.ParseBodyPolicy(c.BodyPolicy)}
}

// TelemetryConfig merges the file block with the environment, which wins.
func (c Config) TelemetryConfig(getenv func(string) string, version string) telemetry.Config {
	out := telemetry.Default()
	out.Version = version
	out.Endpoint = strings.TrimSpace(c.Telemetry.Endpoint)
	out.Insecure = c.Telemetry.Insecure
	out.Headers = telemetry.MergeHeaders(nil, c.Telemetry.Headers)
	if c.Telemetry.Service != "" {
		out.ServiceName = c.Telemetry.Service
	}
	if d, err := time.ParseDuration(c.Telemetry.Timeout); err == nil && d > 0 {
		out.DialTimeout = d
	}
	telemetry.ApplyEnv(&out, getenv)
	return out
}

// FileSource marks path as a local file spec source.
func FileSource(path string) string {
	path = strings.TrimPrefix(strings.TrimSpace(path), "@")
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "@" + path
}
