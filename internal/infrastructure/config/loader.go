package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config     *Config
	viper      *viper.Viper
	configFile string
	mu         sync.RWMutex
	callbacks  []func(*Config)
	watching   bool
	log        zerolog.Logger

	// skipNextReload is set by Save so the watcher does not re-read a file
	// whose contents are already in memory.
	skipNextReload bool
}

// NewManager creates a manager for $XDG_CONFIG_HOME/tabgroups/config.toml.
func NewManager() (*Manager, error) {
	configFile, err := GetConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerForFile(configFile)
}

// NewManagerForFile creates a manager bound to an explicit TOML file.
func NewManagerForFile(configFile string) (*Manager, error) {
	if configFile == "" {
		return nil, errors.New("config file path cannot be empty")
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")

	// TABGROUPS_DATABASE_PATH, TABGROUPS_GROUPS_IDENTITY_SCHEME, ...
	v.SetEnvPrefix("TABGROUPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Same variables logging.NewFromEnv reads.
	if err := v.BindEnv("logging.level", "TABGROUPS_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind TABGROUPS_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "TABGROUPS_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind TABGROUPS_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:      v,
		configFile: configFile,
		log:        zerolog.Nop(),
	}, nil
}

// SetLogger sets the logger used for reload diagnostics.
func (m *Manager) SetLogger(log zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = log
}

// Load loads the configuration from file and environment variables,
// writing a default file first if none exists.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.ensureConfigFile(); err != nil {
		return err
	}

	return m.reload()
}

// reload re-reads the file and replaces the in-memory config.
// Must be called with m.mu held for write.
func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configFile, err)
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches", m.configFile, err)
	}

	if err := fillPaths(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) ensureConfigFile() error {
	if _, err := os.Stat(m.configFile); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat config file %s: %w", m.configFile, err)
	}

	if err := os.MkdirAll(filepath.Dir(m.configFile), dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := WriteConfig(DefaultConfig(), m.configFile); err != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.configFile, err)
	}
	m.log.Info().Str("path", m.configFile).Msg("created default configuration file")
	return nil
}

// fillPaths resolves empty paths to their XDG defaults.
func fillPaths(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Logging.LogDir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = logDir
	}
	return nil
}

func normalizeConfig(config *Config) {
	switch IdentityScheme(strings.ToLower(string(config.Groups.IdentityScheme))) {
	case IdentityLegacy:
		config.Groups.IdentityScheme = IdentityLegacy
	default:
		config.Groups.IdentityScheme = IdentityStable
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}

	config.Groups.DefaultStrip = strings.TrimSpace(config.Groups.DefaultStrip)
	if config.Groups.DefaultStrip == "" {
		config.Groups.DefaultStrip = defaultStrip
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// Save validates cfg, writes it to disk and makes it current.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := WriteConfig(cfg, m.configFile); err != nil {
		return err
	}

	if m.watching {
		m.skipNextReload = true
		configCopy := *cfg
		m.config = &configCopy
		return nil
	}
	return m.reload()
}

// ConfigFile returns the path of the configuration file.
func (m *Manager) ConfigFile() string {
	return m.configFile
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("database.path", defaults.Database.Path)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)

	m.viper.SetDefault("groups.identity_scheme", string(defaults.Groups.IdentityScheme))
	m.viper.SetDefault("groups.default_strip", defaults.Groups.DefaultStrip)
	m.viper.SetDefault("groups.validate_order_on_restore", defaults.Groups.ValidateOrderOnRestore)
	m.viper.SetDefault("groups.fix_root_ids_on_restore", defaults.Groups.FixRootIDsOnRestore)

	p := defaults.Appearance.DarkPalette
	m.viper.SetDefault("appearance.show_tab_ids", defaults.Appearance.ShowTabIDs)
	m.viper.SetDefault("appearance.dark_palette.background", p.Background)
	m.viper.SetDefault("appearance.dark_palette.surface", p.Surface)
	m.viper.SetDefault("appearance.dark_palette.text", p.Text)
	m.viper.SetDefault("appearance.dark_palette.muted", p.Muted)
	m.viper.SetDefault("appearance.dark_palette.accent", p.Accent)
	m.viper.SetDefault("appearance.dark_palette.border", p.Border)
	m.viper.SetDefault("appearance.dark_palette.success", p.Success)
	m.viper.SetDefault("appearance.dark_palette.warning", p.Warning)
	m.viper.SetDefault("appearance.dark_palette.destructive", p.Destructive)
}
