package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/applog/internal/errors"
	"github.com/Aman-CERP/applog/internal/persist"
	"github.com/Aman-CERP/applog/internal/severity"
)

// Color modes for console output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Console formats.
const (
	FormatLogcat = "logcat"
	FormatSlog   = "slog"
)

// DefaultPackage is the package name used when none is configured.
const DefaultPackage = "applog.cli"

// ProjectFiles are the project settings file names, in precedence order.
var ProjectFiles = []string{".applog.yaml", ".applog.yml"}

// Config represents the applog CLI settings file.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Persist PersistConfig `yaml:"persist" json:"persist"`
	Console ConsoleConfig `yaml:"console" json:"console"`
}

// LoggingConfig selects the application identity and threshold.
type LoggingConfig struct {
	// Level overrides the minimum level derived from the app. Empty keeps
	// the derived level.
	Level      string `yaml:"level" json:"level"`
	Package    string `yaml:"package" json:"package"`
	Debuggable bool   `yaml:"debuggable" json:"debuggable"`
}

// PersistConfig configures the log file writer.
type PersistConfig struct {
	// FilesDir is the app files directory. Empty means the user data dir.
	FilesDir      string        `yaml:"files_dir" json:"files_dir"`
	LogName       string        `yaml:"log_name" json:"log_name"`
	QueueSize     int           `yaml:"queue_size" json:"queue_size"`
	MaxOpenFiles  int           `yaml:"max_open_files" json:"max_open_files"`
	FlushInterval time.Duration `yaml:"flush_interval" json:"flush_interval"`
	Synchronous   bool          `yaml:"synchronous" json:"synchronous"`
	// Zone is an IANA name or a fixed offset such as "+08:00".
	Zone string `yaml:"zone" json:"zone"`
}

// ConsoleConfig configures console output.
type ConsoleConfig struct {
	Color  string `yaml:"color" json:"color"`
	Format string `yaml:"format" json:"format"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Logging: LoggingConfig{
			Package: DefaultPackage,
		},
		Persist: PersistConfig{
			LogName:      persist.DefaultLogName,
			QueueSize:    persist.DefaultQueueSize,
			MaxOpenFiles: persist.DefaultMaxOpenFiles,
		},
		Console: ConsoleConfig{
			Color:  ColorAuto,
			Format: FormatLogcat,
		},
	}
}

// GetUserConfigPath returns the path to the user-level config file.
// Uses XDG_CONFIG_HOME when set, otherwise ~/.config/applog/config.yaml.
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "applog", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "applog", "config.yaml")
	}
	return filepath.Join(home, ".config", "applog", "config.yaml")
}

// GetUserConfigDir returns the directory holding the user config file.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists reports whether the user config file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// LoadUserConfig loads only the user-level config on top of the defaults.
func LoadUserConfig() (*Config, error) {
	cfg := NewConfig()
	if !UserConfigExists() {
		return cfg, nil
	}
	if err := cfg.loadYAML(GetUserConfigPath()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load builds the effective configuration for a project directory.
// Precedence, lowest first: defaults, user config, project config,
// APPLOG_* environment variables.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if path := GetUserConfigPath(); fileExists(path) {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if path := FindProjectFile(dir); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindProjectFile returns the project settings file in dir, or "".
func FindProjectFile(dir string) string {
	for _, name := range ProjectFiles {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectRoot walks up from startDir to the nearest directory holding
// a .git directory or a project settings file. It returns the absolute
// startDir when neither is found.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absDir
	for {
		if dirExists(filepath.Join(current, ".git")) || FindProjectFile(current) != "" {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return absDir, nil
		}
		current = parent
	}
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.ErrCodeConfigNotFound, "failed to read config file", err).
			WithDetail("path", path)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return errors.New(errors.ErrCodeConfigInvalid, "failed to parse config file", err).
			WithDetail("path", path).
			WithSuggestion("Check the YAML syntax or regenerate it with: applog config init --force")
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith copies the non-zero values of other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.Package != "" {
		c.Logging.Package = other.Logging.Package
	}
	if other.Logging.Debuggable {
		c.Logging.Debuggable = true
	}

	if other.Persist.FilesDir != "" {
		c.Persist.FilesDir = other.Persist.FilesDir
	}
	if other.Persist.LogName != "" {
		c.Persist.LogName = other.Persist.LogName
	}
	if other.Persist.QueueSize != 0 {
		c.Persist.QueueSize = other.Persist.QueueSize
	}
	if other.Persist.MaxOpenFiles != 0 {
		c.Persist.MaxOpenFiles = other.Persist.MaxOpenFiles
	}
	if other.Persist.FlushInterval != 0 {
		c.Persist.FlushInterval = other.Persist.FlushInterval
	}
	if other.Persist.Synchronous {
		c.Persist.Synchronous = true
	}
	if other.Persist.Zone != "" {
		c.Persist.Zone = other.Persist.Zone
	}

	if other.Console.Color != "" {
		c.Console.Color = other.Console.Color
	}
	if other.Console.Format != "" {
		c.Console.Format = other.Console.Format
	}
}

// applyEnvOverrides applies APPLOG_* environment variables. NO_COLOR forces
// color off.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("APPLOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("APPLOG_PACKAGE"); v != "" {
		c.Logging.Package = v
	}
	if v := os.Getenv("APPLOG_FILES_DIR"); v != "" {
		c.Persist.FilesDir = v
	}
	if v := os.Getenv("APPLOG_LOG_NAME"); v != "" {
		c.Persist.LogName = v
	}
	if v := os.Getenv("APPLOG_ZONE"); v != "" {
		c.Persist.Zone = v
	}
	if v := os.Getenv("APPLOG_COLOR"); v != "" {
		c.Console.Color = strings.ToLower(v)
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Console.Color = ColorNever
	}

	if v := os.Getenv("APPLOG_QUEUE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("APPLOG_QUEUE_SIZE", v, err)
		}
		c.Persist.QueueSize = n
	}
	if v := os.Getenv("APPLOG_FLUSH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError("APPLOG_FLUSH_INTERVAL", v, err)
		}
		c.Persist.FlushInterval = d
	}
	if v := os.Getenv("APPLOG_SYNCHRONOUS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError("APPLOG_SYNCHRONOUS", v, err)
		}
		c.Persist.Synchronous = b
	}
	return nil
}

func envError(name, value string, err error) error {
	return errors.New(errors.ErrCodeConfigInvalid, "invalid environment override", err).
		WithDetail("variable", name).
		WithDetail("value", value)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Logging.Level != "" {
		if _, err := severity.Parse(c.Logging.Level); err != nil {
			return invalid("logging.level", err)
		}
	}
	if strings.TrimSpace(c.Logging.Package) == "" {
		return invalid("logging.package", fmt.Errorf("must not be empty"))
	}

	if c.Persist.LogName == "" || strings.ContainsRune(c.Persist.LogName, filepath.Separator) {
		return invalid("persist.log_name", fmt.Errorf("must be a plain file name, got %q", c.Persist.LogName))
	}
	if c.Persist.QueueSize < 0 {
		return invalid("persist.queue_size", fmt.Errorf("must be non-negative, got %d", c.Persist.QueueSize))
	}
	if c.Persist.MaxOpenFiles < 0 {
		return invalid("persist.max_open_files", fmt.Errorf("must be non-negative, got %d", c.Persist.MaxOpenFiles))
	}
	if c.Persist.FlushInterval < 0 {
		return invalid("persist.flush_interval", fmt.Errorf("must be non-negative, got %s", c.Persist.FlushInterval))
	}
	if _, err := c.Location(); err != nil {
		return invalid("persist.zone", err)
	}

	switch c.Console.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return invalid("console.color", fmt.Errorf("must be 'auto', 'always' or 'never', got %q", c.Console.Color))
	}
	switch c.Console.Format {
	case FormatLogcat, FormatSlog:
	default:
		return invalid("console.format", fmt.Errorf("must be 'logcat' or 'slog', got %q", c.Console.Format))
	}
	return nil
}

func invalid(field string, err error) error {
	return errors.New(errors.ErrCodeConfigInvalid, "invalid configuration", err).
		WithDetail("field", field)
}

// LevelOverride returns the configured minimum level, if any.
// Call after Validate.
func (c *Config) LevelOverride() (severity.Level, bool) {
	if c.Logging.Level == "" {
		return 0, false
	}
	l, err := severity.Parse(c.Logging.Level)
	if err != nil {
		return 0, false
	}
	return l, true
}

// Location resolves the persisted-record time zone. Empty means GMT+8.
func (c *Config) Location() (*time.Location, error) {
	zone := strings.TrimSpace(c.Persist.Zone)
	if zone == "" {
		return persist.DefaultZone, nil
	}
	if loc, err := time.LoadLocation(zone); err == nil {
		return loc, nil
	}
	t, err := time.Parse("-07:00", zone)
	if err != nil {
		return nil, fmt.Errorf("unknown zone %q", zone)
	}
	_, offset := t.Zone()
	return time.FixedZone(zone, offset), nil
}

// PersistOptions converts the persist section into writer options. Zero
// values are filled by the writer.
func (c *Config) PersistOptions() (persist.Options, error) {
	zone, err := c.Location()
	if err != nil {
		return persist.Options{}, invalid("persist.zone", err)
	}
	return persist.Options{
		LogName:       c.Persist.LogName,
		QueueSize:     c.Persist.QueueSize,
		MaxOpenFiles:  c.Persist.MaxOpenFiles,
		FlushInterval: c.Persist.FlushInterval,
		Synchronous:   c.Persist.Synchronous,
		Zone:          zone,
	}, nil
}

// WriteYAML writes the config to path, creating parent directories.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
