package config

// Config represents the complete configuration for tabgroups.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database" toml:"database"`
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging"`
	Groups     GroupsConfig     `mapstructure:"groups" toml:"groups"`
	Appearance AppearanceConfig `mapstructure:"appearance" toml:"appearance"`
}

// DatabaseConfig holds strip database settings.
type DatabaseConfig struct {
	// Path to the SQLite file. Empty means $XDG_DATA_HOME/tabgroups/tabgroups.sqlite.
	Path string `mapstructure:"path" toml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`

	// File output. The interactive browser always logs to file.
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups"`
	MaxAgeDays    int    `mapstructure:"max_age_days" toml:"max_age_days"`
	Compress      bool   `mapstructure:"compress" toml:"compress"`
}

// IdentityScheme selects how group membership is persisted.
type IdentityScheme string

const (
	IdentityStable IdentityScheme = "stable"
	IdentityLegacy IdentityScheme = "legacy"
)

// GroupsConfig controls group index behaviour.
type GroupsConfig struct {
	// IdentityScheme is applied to every strip on restore (stable, legacy).
	IdentityScheme IdentityScheme `mapstructure:"identity_scheme" toml:"identity_scheme"`
	// DefaultStrip is used when --strip is not given.
	DefaultStrip string `mapstructure:"default_strip" toml:"default_strip"`
	// ValidateOrderOnRestore logs a warning when groups are not contiguous after restore.
	ValidateOrderOnRestore bool `mapstructure:"validate_order_on_restore" toml:"validate_order_on_restore"`
	// FixRootIDsOnRestore re-keys groups whose root id points outside the group.
	FixRootIDsOnRestore bool `mapstructure:"fix_root_ids_on_restore" toml:"fix_root_ids_on_restore"`
}

// Palette holds the TUI colours as hex strings.
type Palette struct {
	Background  string `mapstructure:"background" toml:"background"`
	Surface     string `mapstructure:"surface" toml:"surface"`
	Text        string `mapstructure:"text" toml:"text"`
	Muted       string `mapstructure:"muted" toml:"muted"`
	Accent      string `mapstructure:"accent" toml:"accent"`
	Border      string `mapstructure:"border" toml:"border"`
	Success     string `mapstructure:"success" toml:"success"`
	Warning     string `mapstructure:"warning" toml:"warning"`
	Destructive string `mapstructure:"destructive" toml:"destructive"`
}

// AppearanceConfig holds TUI preferences.
type AppearanceConfig struct {
	DarkPalette Palette `mapstructure:"dark_palette" toml:"dark_palette"`
	// ShowTabIDs prefixes every tab with its id in listings.
	ShowTabIDs bool `mapstructure:"show_tab_ids" toml:"show_tab_ids"`
}
