package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validateConfig checks every section and reports all problems at once.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateGroups(config)...)
	validationErrors = append(validationErrors, validateAppearance(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string

	switch strings.ToLower(config.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level %q must be one of trace, debug, info, warn, error, disabled", config.Logging.Level))
	}

	switch strings.ToLower(config.Logging.Format) {
	case "console", "json":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format %q must be console or json", config.Logging.Format))
	}

	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	return validationErrors
}

func validateGroups(config *Config) []string {
	var validationErrors []string

	switch config.Groups.IdentityScheme {
	case IdentityStable, IdentityLegacy:
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("groups.identity_scheme %q must be stable or legacy", config.Groups.IdentityScheme))
	}

	if strings.ContainsAny(config.Groups.DefaultStrip, " \t\n/") {
		validationErrors = append(validationErrors, "groups.default_strip must not contain whitespace or '/'")
	}
	return validationErrors
}

func validateAppearance(config *Config) []string {
	var validationErrors []string
	p := config.Appearance.DarkPalette
	for name, value := range map[string]string{
		"background":  p.Background,
		"surface":     p.Surface,
		"text":        p.Text,
		"muted":       p.Muted,
		"accent":      p.Accent,
		"border":      p.Border,
		"success":     p.Success,
		"warning":     p.Warning,
		"destructive": p.Destructive,
	} {
		if value != "" && !hexColor.MatchString(value) {
			validationErrors = append(validationErrors,
				fmt.Sprintf("appearance.dark_palette.%s %q must be a hex colour like #1a1a1a", name, value))
		}
	}
	slices.Sort(validationErrors)
	return validationErrors
}
