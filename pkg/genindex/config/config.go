package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level" yaml:"level"`
	Path       string            `mapstructure:"path" yaml:"path"`
	Components map[string]string `mapstructure:"components" yaml:"components,omitempty"`
}

// HistoryConfig configures the run history.
type HistoryConfig struct {
	Enabled       bool   `mapstructure:"enabled" yaml:"enabled"`
	Path          string `mapstructure:"path" yaml:"path"`
	RetentionDays int    `mapstructure:"retention_days" yaml:"retention_days"`
}

// Config represents the application configuration.
type Config struct {
	DefaultPath   string        `mapstructure:"default_path" yaml:"default_path"`
	OutputFile    string        `mapstructure:"output_file" yaml:"output_file"`
	Filter        string        `mapstructure:"filter" yaml:"filter"`
	ExcludeRegex  string        `mapstructure:"exclude_regex" yaml:"exclude_regex"`
	IncludeHidden bool          `mapstructure:"include_hidden" yaml:"include_hidden"`
	Recursive     bool          `mapstructure:"recursive" yaml:"recursive"`
	Sort          string        `mapstructure:"sort" yaml:"sort"`
	Reverse       bool          `mapstructure:"reverse" yaml:"reverse"`
	Readme        bool          `mapstructure:"readme" yaml:"readme"`
	ReadmeName    string        `mapstructure:"readme_name" yaml:"readme_name"`
	DirSizes      bool          `mapstructure:"dir_sizes" yaml:"dir_sizes"`
	History       HistoryConfig `mapstructure:"history" yaml:"history"`
	Logging       LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("default_path", DefaultPath)
	v.SetDefault("output_file", DefaultOutputFile)
	v.SetDefault("filter", "")
	v.SetDefault("exclude_regex", "")
	v.SetDefault("include_hidden", false)
	v.SetDefault("recursive", false)
	v.SetDefault("sort", DefaultSort)
	v.SetDefault("reverse", false)
	v.SetDefault("readme", false)
	v.SetDefault("readme_name", DefaultReadmeName)
	v.SetDefault("dir_sizes", false)

	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "") // Empty means HistoryDir()
	v.SetDefault("history.retention_days", DefaultRetentionDays)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.path", "") // Empty disables the log file
}

// Configure points v at the configuration file and the environment.
// An empty cfgFile searches the standard locations:
//   - $XDG_CONFIG_HOME/genindex/config.yaml
//   - $HOME/.config/genindex/config.yaml
//
// Environment variables are prefixed with GENINDEX_ (e.g., GENINDEX_RECURSIVE).
func Configure(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(ConfigFileName, filepath.Ext(ConfigFileName)))
		v.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			v.AddConfigPath(filepath.Join(xdgConfigHome, AppName))
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", AppName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
}

// Read loads the configuration file into v. A missing file in the
// standard locations is not an error; an explicitly named one is.
func Read(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// FromViper decodes the effective configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if cfg.ReadmeName == "" {
		cfg.ReadmeName = DefaultReadmeName
	}

	var err error
	if cfg.History.Path, err = ExpandPath(cfg.History.Path); err != nil {
		return nil, err
	}
	if cfg.Logging.Path, err = ExpandPath(cfg.Logging.Path); err != nil {
		return nil, err
	}
	if cfg.DefaultPath, err = ExpandPath(cfg.DefaultPath); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load loads configuration from the config file and environment variables
// using a private viper instance.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	Configure(v, cfgFile)
	if err := Read(v); err != nil {
		return nil, err
	}
	return FromViper(v)
}

// Default returns the configuration with every default applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := FromViper(v)
	if err != nil {
		// Defaults contain no ~ paths, so decoding cannot fail.
		panic(err)
	}
	return cfg
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, AppName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", AppName), nil
}

// ConfigPath returns the path of the default configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// StateDir returns $XDG_STATE_HOME/genindex/.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// HistoryDir returns the default run history directory.
func HistoryDir() string {
	return filepath.Join(StateDir(), "history")
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// WriteDefault writes a commented default config file to path, creating
// parent directories. It returns false without error when the file
// already exists.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# genindex configuration

# Directory to index when none is given on the command line
default_path: %q

# Name of the page written into every indexed directory
output_file: %q

# Only list files matching this glob (directories are always listed)
filter: ""

# Drop entries whose name matches this regular expression
exclude_regex: ""

# List dot-files
include_hidden: false

# Index every reachable subdirectory
recursive: false

# Order within the directory and file groups: name, size, modified
sort: %s
reverse: false

# Render the directory README above the listing
readme: false
readme_name: %q

# Show aggregate sizes for subdirectories
dir_sizes: false

# Run history
history:
  enabled: false
  # Empty means $XDG_STATE_HOME/genindex/history
  path: ""
  retention_days: %d

# Logging configuration
logging:
  # Log file level: debug, info, warn, error
  level: %s
  # Log file path (empty disables the log file)
  path: ""
`, DefaultPath, DefaultOutputFile, DefaultSort, DefaultReadmeName, DefaultRetentionDays, DefaultLogLevel)

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write default config: %w", err)
	}

	return true, nil
}
