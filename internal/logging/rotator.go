package logging

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

const backupTimeFormat = "2006-01-02T15-04-05.000"

// RotationConfig describes a size-rotated log file.
type RotationConfig struct {
	Dir        string
	FileName   string // defaults to tabgroups.log
	MaxSizeMB  int
	MaxBackups int // 0 keeps every backup
	MaxAgeDays int // 0 disables age-based cleanup
	Compress   bool
}

// RotatingFile is an io.WriteCloser that rotates its file once it would
// grow past MaxSizeMB. Backups are named <file>.<timestamp>[.gz].
type RotatingFile struct {
	mu      sync.Mutex
	cfg     RotationConfig
	maxSize int64
	maxAge  time.Duration
	file    *os.File
	size    int64
	now     func() time.Time
}

// NewRotatingFile opens (or creates) the current log file.
func NewRotatingFile(cfg RotationConfig) (*RotatingFile, error) {
	if cfg.Dir == "" {
		return nil, errors.New("log directory cannot be empty")
	}
	if cfg.FileName == "" {
		cfg.FileName = "tabgroups.log"
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &RotatingFile{
		cfg:     cfg,
		maxSize: int64(cfg.MaxSizeMB) * 1024 * 1024,
		maxAge:  time.Duration(cfg.MaxAgeDays) * 24 * time.Hour,
		now:     time.Now,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the path of the live log file.
func (r *RotatingFile) Path() string {
	return filepath.Join(r.cfg.Dir, r.cfg.FileName)
}

func (r *RotatingFile) open() error {
	f, err := os.OpenFile(r.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	r.file = f
	r.size = info.Size()
	return nil
}

// Write appends p, rotating first when p would overflow the size limit.
// A single write larger than the limit still lands in one file.
func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}

	if r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// Rotate forces a rotation.
func (r *RotatingFile) Rotate() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rotate()
}

func (r *RotatingFile) rotate() error {
	var errs []error
	if r.file != nil {
		errs = append(errs, r.file.Close())
		r.file = nil
	}

	backup := r.Path() + "." + r.now().Format(backupTimeFormat)
	if err := os.Rename(r.Path(), backup); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.cfg.Compress {
		if err := gzipFile(backup); err != nil {
			errs = append(errs, fmt.Errorf("compress %s: %w", backup, err))
		} else {
			errs = append(errs, os.Remove(backup))
		}
	}

	errs = append(errs, r.cleanup())

	if err := r.open(); err != nil {
		return err
	}
	// Close and cleanup failures do not stop logging.
	if err := errors.Join(errs...); err != nil {
		fmt.Fprintf(os.Stderr, "tabgroups: log rotation: %v\n", err)
	}
	return nil
}

func gzipFile(path string) (err error) {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, in.Close()) }()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, out.Close()) }()

	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		return err
	}
	return zw.Close()
}

// cleanup drops backups past MaxAgeDays, then the oldest beyond MaxBackups.
func (r *RotatingFile) cleanup() error {
	entries, err := os.ReadDir(r.cfg.Dir)
	if err != nil {
		return err
	}

	prefix := r.cfg.FileName + "."
	var backups []string
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if r.maxAge > 0 {
			if info, ierr := e.Info(); ierr == nil && r.now().Sub(info.ModTime()) > r.maxAge {
				errs = append(errs, os.Remove(filepath.Join(r.cfg.Dir, e.Name())))
				continue
			}
		}
		backups = append(backups, e.Name())
	}

	if r.cfg.MaxBackups > 0 && len(backups) > r.cfg.MaxBackups {
		// Timestamps sort lexically.
		slices.Sort(backups)
		for _, name := range backups[:len(backups)-r.cfg.MaxBackups] {
			errs = append(errs, os.Remove(filepath.Join(r.cfg.Dir, name)))
		}
	}
	return errors.Join(errs...)
}

// Close closes the live file.
func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
