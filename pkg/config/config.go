// Package config describes the declaration attributes, edit events and
// runtime knobs of the binding layer, loadable from YAML or JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModelAttribute      = "nv-model"
	DefaultControllerAttribute = "nv-controller"
	DefaultEditEvent           = "keyup"
	DefaultLogLevel            = "info"
)

var (
	// ErrInvalidConfig wraps validation failures.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config collects the settings shared by the app, the scopes it creates and
// the CLI.
type Config struct {
	ModelAttribute      string   `yaml:"model_attribute" json:"model_attribute"`
	ControllerAttribute string   `yaml:"controller_attribute" json:"controller_attribute"`
	EditEvents          []string `yaml:"edit_events" json:"edit_events"`
	Sanitize            bool     `yaml:"sanitize" json:"sanitize"`
	LogLevel            string   `yaml:"log_level" json:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ModelAttribute:      DefaultModelAttribute,
		ControllerAttribute: DefaultControllerAttribute,
		EditEvents:          []string{DefaultEditEvent},
		LogLevel:            DefaultLogLevel,
	}
}

// Load reads path from fsys and overlays it on Default. Files ending in
// .json are decoded as JSON, everything else as YAML.
func Load(fsys fs.FS, path string) (Config, error) {
	cfg := Default()
	if fsys == nil {
		return cfg, nil
	}

	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := decode(data, path, &cfg); err != nil {
		return Config{}, err
	}

	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: file %s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, path string, out *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: decode %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	return nil
}

// Normalize trims values, drops blank and duplicate events and fills empty
// fields from Default.
func (c Config) Normalize() Config {
	defaults := Default()

	c.ModelAttribute = strings.TrimSpace(c.ModelAttribute)
	if c.ModelAttribute == "" {
		c.ModelAttribute = defaults.ModelAttribute
	}
	c.ControllerAttribute = strings.TrimSpace(c.ControllerAttribute)
	if c.ControllerAttribute == "" {
		c.ControllerAttribute = defaults.ControllerAttribute
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}

	events := make([]string, 0, len(c.EditEvents))
	seen := make(map[string]struct{}, len(c.EditEvents))
	for _, evt := range c.EditEvents {
		evt = strings.TrimSpace(evt)
		if evt == "" {
			continue
		}
		if _, ok := seen[evt]; ok {
			continue
		}
		seen[evt] = struct{}{}
		events = append(events, evt)
	}
	if len(events) == 0 {
		events = defaults.EditEvents
	}
	c.EditEvents = events
	return c
}

// Validate reports configuration that cannot drive a binding.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ModelAttribute) == "" {
		return fmt.Errorf("%w: model_attribute is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.ControllerAttribute) == "" {
		return fmt.Errorf("%w: controller_attribute is required", ErrInvalidConfig)
	}
	if c.ModelAttribute == c.ControllerAttribute {
		return fmt.Errorf("%w: model and controller attributes must differ", ErrInvalidConfig)
	}
	if len(c.EditEvents) == 0 {
		return fmt.Errorf("%w: at least one edit event is required", ErrInvalidConfig)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Logger builds a production zap logger at the configured level. verbose
// forces debug output.
func (c Config) Logger(verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
