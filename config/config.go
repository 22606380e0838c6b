package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. OFFSETCLOCK_STORAGE_BACKEND
const EnvPrefix = "OFFSETCLOCK"

// Storage backends
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Script kinds
const (
	ScriptWindows = "windows"
	ScriptShell   = "shell"
)

// Redis holds the redis connection settings
type Redis struct {
	Addr            string `yaml:"addr" envconfig:"ADDR"`
	Password        string `yaml:"password,omitempty" envconfig:"PASSWORD"`
	DB              int    `yaml:"db" envconfig:"DB" validate:"min=0"`
	Prefix          string `yaml:"prefix" envconfig:"PREFIX"`
	ConnectAttempts uint   `yaml:"connect_attempts" envconfig:"CONNECT_ATTEMPTS"`
}

// Storage selects where time zones are persisted
type Storage struct {
	Backend string `yaml:"backend" envconfig:"BACKEND" validate:"required,oneof=memory file redis"`
	Dir     string `yaml:"dir,omitempty" envconfig:"DIR" validate:"required_if=Backend file"`
	Redis   Redis  `yaml:"redis,omitempty" envconfig:"REDIS"`
}

// Config represents the application configuration
type Config struct {
	LogLevel  string  `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	LogFile   string  `yaml:"log_file" envconfig:"LOG_FILE"`
	ExportDir string  `yaml:"export_dir" envconfig:"EXPORT_DIR" validate:"required"`
	Script    string  `yaml:"script" envconfig:"SCRIPT" validate:"required,oneof=windows shell"`
	Storage   Storage `yaml:"storage" envconfig:"STORAGE"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the configuration from ~/.config/offsetclock.yaml
// If the file doesn't exist, it creates a default one
func Load() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the configuration at path, creating a default file if it is missing.
// Values from a .env file and OFFSETCLOCK_* variables override the file.
func LoadFrom(path string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := createDefaultConfig(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// A missing .env is normal
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Storage.Backend == BackendRedis && c.Storage.Redis.Addr == "" {
		return errors.New("invalid config: storage.redis.addr is required for the redis backend")
	}

	return nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "offsetclock.yaml"), nil
}

// Default returns the configuration written on first start
func Default() Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	script := ScriptShell
	if runtime.GOOS == "windows" {
		script = ScriptWindows
	}

	return Config{
		LogLevel:  "info",
		LogFile:   filepath.Join(homeDir, ".cache", "offsetclock", "offsetclock.log"),
		ExportDir: ".",
		Script:    script,
		Storage: Storage{
			Backend: BackendFile,
			Dir:     filepath.Join(homeDir, ".local", "share", "offsetclock"),
			Redis: Redis{
				Addr:            "localhost:6379",
				Prefix:          "offsetclock:",
				ConnectAttempts: 3,
			},
		},
	}
}

// createDefaultConfig writes Default() to path
func createDefaultConfig(path string) error {
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	defaultConfig := Default()
	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
