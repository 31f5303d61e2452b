package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Zachkp/ventures/internal/portfolio"
)

const defaultDebounce = 250 * time.Millisecond

// Source hands out the current catalog snapshot. Snapshots are never
// modified, so a caller may hold one for as long as it likes.
type Source struct {
	path     string
	logger   *zap.Logger
	debounce time.Duration

	mu      sync.RWMutex
	current *portfolio.Catalog
	loaded  time.Time
}

// NewSource loads path (or the embedded catalog when path is empty).
func NewSource(path string, logger *zap.Logger) (*Source, error) {
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving catalog path: %w", err)
		}
		path = abs
	}
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Source{
		path:     path,
		logger:   logger,
		debounce: defaultDebounce,
		current:  c,
		loaded:   time.Now(),
	}, nil
}

// Static wraps an already built catalog. Watch is a no-op for it.
func Static(c *portfolio.Catalog) *Source {
	return &Source{logger: zap.NewNop(), current: c, loaded: time.Now()}
}

func (s *Source) Current() *portfolio.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Source) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Source) Path() string { return s.path }

// Reload re-reads the file. On failure the previous catalog stays current.
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}
	c, err := Load(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = c
	s.loaded = time.Now()
	s.mu.Unlock()
	s.logger.Info("catalog reloaded", zap.String("path", s.path), zap.Int("ventures", c.Len()))
	return nil
}

// Watch reloads the catalog whenever its file changes, until ctx is
// done. It watches the parent directory so editors that save by rename
// are picked up too.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating catalog watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(s.path), err)
	}
	s.logger.Info("watching catalog", zap.String("path", s.path))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			s.logger.Debug("catalog changed", zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("catalog watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			if err := s.Reload(); err != nil {
				s.logger.Warn("catalog reload failed, keeping previous", zap.Error(err))
			}
		}
	}
}
