package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	DefaultErrorMessage = "An error occurred"
	DefaultDataField    = "data"
	DefaultTimeout      = 30 * time.Second
	DefaultLines        = 4
)

type Config struct {
	Client  Client  `yaml:"client" json:"client"`
	Presets Presets `yaml:"presets" json:"presets"`
	Batch   Batch   `yaml:"batch" json:"batch"`
}

type Client struct {
	BaseURL string            `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout Duration          `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
}

type Presets struct {
	// ErrorMessage is the message of the success check in the without-ping preset.
	ErrorMessage string `yaml:"error_message,omitempty" json:"error_message,omitempty"`
	// SuccessTest is the test every preset applies to the parsed body. Any
	// test shape compare accepts; a string is an accessor.
	SuccessTest any    `yaml:"success_test,omitempty" json:"success_test,omitempty"`
	DataField   string `yaml:"data_field,omitempty" json:"data_field,omitempty"`
}

type Batch struct {
	Lines int `yaml:"lines,omitempty" json:"lines,omitempty"`
}

// Duration accepts "1m30s" style strings in both YAML and JSON.
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return d.parse(raw)
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.parse(raw)
}

func (d *Duration) parse(raw string) error {
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the configuration the presets use when no file is given.
func Default() *Config {
	return &Config{
		Client: Client{Timeout: Duration(DefaultTimeout)},
		Presets: Presets{
			ErrorMessage: DefaultErrorMessage,
			SuccessTest:  map[string]any{"success": true},
			DataField:    DefaultDataField,
		},
		Batch: Batch{Lines: DefaultLines},
	}
}

// Load reads a YAML (.yaml, .yml) or JSONC (.json, .jsonc) config file and
// fills unset fields from Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cfg, err = ParseYAML(data)
	case ".json", ".jsonc":
		cfg, err = ParseJSONC(data)
	default:
		return nil, fmt.Errorf("unsupported config extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return finish(&cfg)
}

// ParseJSONC accepts JSON with comments and trailing commas.
func ParseJSONC(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Client.Timeout == 0 {
		c.Client.Timeout = def.Client.Timeout
	}
	if c.Presets.ErrorMessage == "" {
		c.Presets.ErrorMessage = def.Presets.ErrorMessage
	}
	if c.Presets.SuccessTest == nil {
		c.Presets.SuccessTest = def.Presets.SuccessTest
	}
	if c.Presets.DataField == "" {
		c.Presets.DataField = def.Presets.DataField
	}
	if c.Batch.Lines == 0 {
		c.Batch.Lines = def.Batch.Lines
	}
}

func (c *Config) Validate() error {
	if c.Client.Timeout < 0 {
		return fmt.Errorf("client.timeout must not be negative")
	}
	if c.Batch.Lines < 0 {
		return fmt.Errorf("batch.lines must not be negative")
	}
	if c.Client.BaseURL != "" && !strings.HasPrefix(c.Client.BaseURL, "http://") && !strings.HasPrefix(c.Client.BaseURL, "https://") {
		return fmt.Errorf("client.base_url must be an http or https URL: %s", c.Client.BaseURL)
	}
	return nil
}
