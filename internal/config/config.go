package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
)

// Config holds all taxreport configuration.
type Config struct {
	Engine   EngineConfig `yaml:"engine"`
	Output   OutputConfig `yaml:"output"`
	LogLevel string       `yaml:"log_level"`
}

// EngineConfig holds analysis settings.
type EngineConfig struct {
	TopN              int    `yaml:"top_n"`
	ClassifierVersion string `yaml:"classifier_version"`
	DatabaseDate      string `yaml:"database_date"`
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Format   string `yaml:"format"`    // "html" or "json"
	JSONPath string `yaml:"json_path"` // optional extra NDJSON copy
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Engine: EngineConfig{
			TopN:              getenvInt("TAXREPORT_TOP_N", 20),
			ClassifierVersion: os.Getenv("TAXREPORT_CLASSIFIER_VERSION"),
			DatabaseDate:      os.Getenv("TAXREPORT_DB_DATE"),
		},
		Output: OutputConfig{
			Format:   getenv("TAXREPORT_FORMAT", FormatHTML),
			JSONPath: os.Getenv("TAXREPORT_JSON"),
		},
		LogLevel: getenv("TAXREPORT_LOG_LEVEL", "info"),
	}
}

// File returns the config file path named by TAXREPORT_CONFIG, if any.
func File() string {
	return os.Getenv("TAXREPORT_CONFIG")
}

// LoadFile overlays the YAML file at path onto base. Keys absent from the
// file keep their value from base; unknown keys are an error.
func LoadFile(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg := base
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	var errs []error
	if c.Engine.TopN < 1 {
		errs = append(errs, fmt.Errorf("top_n must be at least 1, got %d", c.Engine.TopN))
	}
	switch c.Output.Format {
	case FormatHTML, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown format %q (want %s or %s)", c.Output.Format, FormatHTML, FormatJSON))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
