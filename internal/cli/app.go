// Package cli wires configuration, storage and use cases for the CLI commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/tabgroups/internal/application/usecase"
	"github.com/bnema/tabgroups/internal/cli/styles"
	"github.com/bnema/tabgroups/internal/domain/build"
	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/domain/repository"
	"github.com/bnema/tabgroups/internal/domain/tabgroup"
	"github.com/bnema/tabgroups/internal/infrastructure/config"
	"github.com/bnema/tabgroups/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabgroups/internal/logging"
)

// Options tweaks how the App is built.
type Options struct {
	// ConfigFile overrides the XDG config location.
	ConfigFile string
	// Verbose forces debug logging to stderr.
	Verbose bool
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	configMgr *config.Manager
	db        *sqlite.LazyDB

	Strips  repository.TabStripRepository
	Visuals repository.GroupVisualRepository

	// Use cases
	TabsUC     *usecase.ManageTabsUseCase
	GroupsUC   *usecase.ManageTabGroupsUseCase
	RestoreUC  *usecase.RestoreTabStripUseCase
	SnapshotUC *usecase.SnapshotTabStripUseCase

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp loads the configuration, builds the logger and wires the
// repositories. The database is opened on first use.
func NewApp(opts Options) (*App, error) {
	mgr, err := newConfigManager(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger, logCleanup, err := newLogger(cfg, opts.Verbose)
	if err != nil {
		return nil, err
	}
	mgr.SetLogger(logger.With().Str("component", "config").Logger())
	ctx := logging.WithContext(context.Background(), logger)

	db := sqlite.NewLazyDB(cfg.Database.Path)
	strips := sqlite.NewLazyTabStripRepository(db)
	visuals := sqlite.NewLazyGroupVisualRepository(db)

	logger.Debug().
		Str("config", mgr.ConfigFile()).
		Str("db_path", cfg.Database.Path).
		Str("scheme", string(cfg.Groups.IdentityScheme)).
		Msg("cli initialized")

	return &App{
		Config:     cfg,
		Theme:      styles.NewTheme(cfg),
		configMgr:  mgr,
		db:         db,
		Strips:     strips,
		Visuals:    visuals,
		TabsUC:     usecase.NewManageTabsUseCase(),
		GroupsUC:   usecase.NewManageTabGroupsUseCase(),
		RestoreUC:  usecase.NewRestoreTabStripUseCase(strips, visuals),
		SnapshotUC: usecase.NewSnapshotTabStripUseCase(strips),
		ctx:        ctx,
		logCleanup: logCleanup,
	}, nil
}

func newConfigManager(configFile string) (*config.Manager, error) {
	if configFile != "" {
		return config.NewManagerForFile(configFile)
	}
	return config.NewManager()
}

// newLogger writes to the rotating log file when file logging is enabled.
// Otherwise it logs warnings and above to stderr so command output stays
// clean; TABGROUPS_LOG_LEVEL still wins.
func newLogger(cfg *config.Config, verbose bool) (zerolog.Logger, func(), error) {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	if cfg.Logging.EnableFileLog {
		rf, err := logging.NewRotatingFile(logging.RotationConfig{
			Dir:        cfg.Logging.LogDir,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		})
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		var out io.Writer = rf
		if verbose {
			out = zerolog.MultiLevelWriter(rf, os.Stderr)
		}
		logger := logging.New(logging.Config{
			Level:      logging.ParseLevel(level),
			Format:     "json",
			TimeFormat: time.RFC3339,
			Output:     out,
		})
		return logger, func() { _ = rf.Close() }, nil
	}

	if !verbose && os.Getenv("TABGROUPS_LOG_LEVEL") == "" {
		level = "warn"
	}
	return logging.NewFromConfigValues(level, cfg.Logging.Format), func() {}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	var err error
	if a.db != nil {
		err = a.db.Close()
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// ConfigFile returns the path of the loaded configuration file.
func (a *App) ConfigFile() string {
	return a.configMgr.ConfigFile()
}

// Scheme returns the configured identity scheme.
func (a *App) Scheme() tabgroup.IdentityScheme {
	scheme, err := tabgroup.ParseIdentityScheme(string(a.Config.Groups.IdentityScheme))
	if err != nil {
		return tabgroup.IdentityStable
	}
	return scheme
}

// StripID resolves the strip to operate on. An empty name selects the
// configured default strip.
func (a *App) StripID(name string) entity.StripID {
	if name == "" {
		name = a.Config.Groups.DefaultStrip
	}
	return entity.StripID(name)
}

// OpenStrip restores a strip with the configured scheme and repair flags.
func (a *App) OpenStrip(id entity.StripID, createIfMissing bool) (*usecase.RestoreStripOutput, error) {
	return a.RestoreUC.Execute(a.ctx, usecase.RestoreStripInput{
		StripID:         id,
		Scheme:          a.Scheme(),
		CreateIfMissing: createIfMissing,
		ValidateOrder:   a.Config.Groups.ValidateOrderOnRestore,
		FixRootIDs:      a.Config.Groups.FixRootIDsOnRestore,
	})
}

// SaveStrip writes the session back to storage.
func (a *App) SaveStrip(s *usecase.StripSession) error {
	return a.SnapshotUC.Execute(a.ctx, s)
}

// WatchConfig reloads the configuration on file changes and reports every
// successful reload to fn. fn runs on the watcher goroutine.
func (a *App) WatchConfig(fn func(*config.Config)) error {
	a.configMgr.OnConfigChange(fn)
	if err := a.configMgr.Watch(); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	return nil
}

// SetScheme makes scheme the configured identity scheme and writes the
// config file.
func (a *App) SetScheme(scheme tabgroup.IdentityScheme) error {
	cfg := a.configMgr.Get()
	cfg.Groups.IdentityScheme = config.IdentityScheme(scheme.String())
	if err := a.configMgr.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	a.Config = a.configMgr.Get()
	return nil
}

// RedirectLogsToFile switches the logger to the rotating log file so the
// terminal stays free for the TUI. Call it before opening a strip.
func (a *App) RedirectLogsToFile() error {
	if a.Config.Logging.EnableFileLog {
		return nil
	}
	cfg := *a.Config
	cfg.Logging.EnableFileLog = true
	logger, cleanup, err := newLogger(&cfg, false)
	if err != nil {
		return err
	}

	prev := a.logCleanup
	a.logCleanup = func() {
		cleanup()
		if prev != nil {
			prev()
		}
	}
	a.configMgr.SetLogger(logger.With().Str("component", "config").Logger())
	a.ctx = logging.WithContext(a.ctx, logger)
	return nil
}
