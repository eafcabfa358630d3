package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/harrisonrobin/taskpad/pkg/kv"
	"github.com/harrisonrobin/taskpad/pkg/model"
	"github.com/harrisonrobin/taskpad/pkg/notify"
	"github.com/harrisonrobin/taskpad/pkg/store"
)

const (
	xdgAppName = "taskpad"
	configFile = "config.yaml"
	envPrefix  = "TASKPAD"
)

type Config struct {
	// Backend is one of kv.FILE, kv.SQLITE or kv.MEMORY.
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Path of the data file. Empty means a file next to the config.
	Path          string `mapstructure:"path" yaml:"path,omitempty"`
	Key           string `mapstructure:"key" yaml:"key"`
	NotifyDelay   string `mapstructure:"notify_delay" yaml:"notify_delay"`
	DefaultFilter string `mapstructure:"default_filter" yaml:"default_filter"`
}

func Default() *Config {
	return &Config{
		Backend:       kv.FILE,
		Key:           store.DefaultKey,
		NotifyDelay:   notify.DefaultDelay.String(),
		DefaultFilter: string(model.FilterAll),
	}
}

func GetConfigDir() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config file, falling back to defaults if it doesn't exist.
// TASKPAD_* environment variables override file values.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("backend", def.Backend)
	v.SetDefault("path", def.Path)
	v.SetDefault("key", def.Key)
	v.SetDefault("notify_delay", def.NotifyDelay)
	v.SetDefault("default_filter", def.DefaultFilter)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Key == "" {
		cfg.Key = store.DefaultKey
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return err
	}
	return encoder.Close()
}

// DataPath returns the data file for the configured backend.
func (c *Config) DataPath() (string, error) {
	if c.Path != "" {
		return c.Path, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if c.Backend == kv.SQLITE {
		return filepath.Join(dir, "tasks.db"), nil
	}
	return filepath.Join(dir, "tasks.json"), nil
}

// Delay parses NotifyDelay, falling back to notify.DefaultDelay.
func (c *Config) Delay() time.Duration {
	d, err := time.ParseDuration(c.NotifyDelay)
	if err != nil || d <= 0 {
		return notify.DefaultDelay
	}
	return d
}

// Filter parses DefaultFilter, falling back to all tasks.
func (c *Config) Filter() model.Filter {
	f, err := model.ParseFilter(c.DefaultFilter)
	if err != nil {
		return model.FilterAll
	}
	return f
}

func (c *Config) Validate() error {
	switch c.Backend {
	case kv.FILE, kv.SQLITE, kv.MEMORY:
	default:
		return fmt.Errorf("unknown backend '%s' (want file, sqlite or memory)", c.Backend)
	}
	if _, err := time.ParseDuration(c.NotifyDelay); err != nil {
		return fmt.Errorf("invalid notify_delay '%s': %w", c.NotifyDelay, err)
	}
	if _, err := model.ParseFilter(c.DefaultFilter); err != nil {
		return err
	}
	return nil
}
