package config

const (
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 7

	defaultStrip = "default"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAgeDays: defaultMaxAgeDays,
			Compress:   true,
		},
		Groups: GroupsConfig{
			IdentityScheme:         IdentityStable,
			DefaultStrip:           defaultStrip,
			ValidateOrderOnRestore: true,
			FixRootIDsOnRestore:    true,
		},
		Appearance: AppearanceConfig{
			DarkPalette: Palette{
				Background:  "#0a0a0b",
				Surface:     "#1a1a1a",
				Text:        "#e5e5e5",
				Muted:       "#737373",
				Accent:      "#4ade80",
				Border:      "#333333",
				Success:     "#4ade80",
				Warning:     "#fbbf24",
				Destructive: "#f87171",
			},
		},
	}
}
