package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	"k8s.io/client-go/util/homedir"
)

// Duration is a time.Duration that unmarshals from the Go duration string
// form (e.g. "2s", "1500ms").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("could not decode duration: %w", err)
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the file configuration of the application.
type Config struct {
	// UploadDuration is the simulated time of an upload run.
	UploadDuration Duration `yaml:"upload_duration"`
	// SendDuration is the simulated time of a signature-request send run.
	SendDuration Duration `yaml:"send_duration"`
	// SignDuration is the simulated time of the signing run.
	SignDuration Duration `yaml:"sign_duration"`
	// MaxUploadFiles caps the file list of one upload.
	MaxUploadFiles int `yaml:"max_upload_files"`
	// DBPath is the SQLite database path. Setting it explicitly empty
	// selects the in-memory store.
	DBPath string `yaml:"db_path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		UploadDuration: Duration(2 * time.Second),
		SendDuration:   Duration(2 * time.Second),
		SignDuration:   Duration(2 * time.Second),
		MaxUploadFiles: 10,
		DBPath:         filepath.Join(homedir.HomeDir(), ".docsign", "docsign.db"),
	}
}

// DefaultPath returns the default configuration file path in the user home.
func DefaultPath() string {
	return filepath.Join(homedir.HomeDir(), ".docsign", "config.yaml")
}

// Load reads the configuration file at path, filling unset fields with the
// defaults. A missing file is not an error: the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.UploadDuration <= 0 || c.SendDuration <= 0 || c.SignDuration <= 0 {
		return fmt.Errorf("durations must be positive")
	}
	if c.MaxUploadFiles <= 0 {
		return fmt.Errorf("max_upload_files must be positive")
	}
	return nil
}
