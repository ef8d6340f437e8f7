package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jgoulah/energyopt/pkg/models"
)

// Config holds the application configuration
type Config struct {
	Strict  bool          `yaml:"strict,omitempty"`  // Fail on the first stage error instead of logging it
	Rate    float64       `yaml:"rate,omitempty"`    // Cost per kWh, 0 disables the cost line
	Samples []SampleEntry `yaml:"samples,omitempty"` // Empty means the built-in example week
	Rules   []models.Rule `yaml:"rules,omitempty"`   // Empty means the default rule table
	MQTT    MQTTConfig    `yaml:"mqtt,omitempty"`
}

// SampleEntry is a sample as written in the config file.
// KWh is kept as text so a non-numeric entry becomes an InvalidSample
// instead of a YAML decode error.
type SampleEntry struct {
	Day string `yaml:"day"`
	KWh string `yaml:"kwh"`
}

// MQTTConfig holds MQTT broker configuration for publishing reports
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`                 // e.g., "localhost:1883"
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // default: "energyopt"
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// Default returns a config populated with the example week and default rules
func Default() *Config {
	cfg := &Config{
		Rules: models.DefaultRules(),
		MQTT:  MQTTConfig{Broker: "localhost:1883", TopicPrefix: "energyopt"},
	}
	for _, s := range models.DefaultSamples() {
		cfg.Samples = append(cfg.Samples, SampleEntry{
			Day: s.Day,
			KWh: strconv.FormatFloat(s.KWh, 'f', -1, 64),
		})
	}
	return cfg
}

// GetSamples parses the configured samples, falling back to the example week.
// Entries that fail to parse are dropped and reported in the joined error.
func (c *Config) GetSamples() ([]models.Sample, error) {
	if len(c.Samples) == 0 {
		return models.DefaultSamples(), nil
	}

	samples := make([]models.Sample, 0, len(c.Samples))
	var errs []error
	for i, entry := range c.Samples {
		s, err := models.ParseSample(entry.Day, entry.KWh)
		if err != nil {
			errs = append(errs, fmt.Errorf("sample %d: %w", i+1, err))
			continue
		}
		samples = append(samples, s)
	}
	return samples, errors.Join(errs...)
}

// GetRules returns the configured rule table, or the default one if not set
func (c *Config) GetRules() []models.Rule {
	if len(c.Rules) == 0 {
		return models.DefaultRules()
	}
	return c.Rules
}

// GetRate returns the cost per kWh, or 0 if not set or invalid
func (c *Config) GetRate() float64 {
	if c.Rate <= 0 || math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
		return 0
	}
	return c.Rate
}

// GetTopicPrefix returns the MQTT topic prefix with a default of "energyopt"
func (m MQTTConfig) GetTopicPrefix() string {
	if m.TopicPrefix == "" {
		return "energyopt"
	}
	return m.TopicPrefix
}
