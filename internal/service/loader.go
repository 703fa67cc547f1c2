package service

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/Harshitk-cp/brainbase/internal/domain"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	defaultLoaderInterval = 30 * time.Second
	defaultLoaderDebounce = 500 * time.Millisecond
	loadTimeout           = 30 * time.Second
)

// LoaderService feeds snapshots from a store into the database, once on
// demand and then whenever the source changes.
type LoaderService struct {
	store  domain.SnapshotStore
	db     *Database
	logger *zap.Logger

	interval  time.Duration
	debounce  time.Duration
	watchPath string

	mu   sync.Mutex
	last *domain.Snapshot

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewLoaderService(store domain.SnapshotStore, db *Database, logger *zap.Logger) *LoaderService {
	return &LoaderService{
		store:    store,
		db:       db,
		logger:   logger,
		interval: defaultLoaderInterval,
		debounce: defaultLoaderDebounce,
		stopCh:   make(chan struct{}),
	}
}

// SetInterval sets the polling period used when no watch path is set.
func (s *LoaderService) SetInterval(d time.Duration) {
	s.interval = d
}

func (s *LoaderService) SetDebounce(d time.Duration) {
	s.debounce = d
}

// SetWatchPath makes Start watch the file at path instead of polling.
func (s *LoaderService) SetWatchPath(path string) {
	s.watchPath = filepath.Clean(path)
}

// Load fetches the latest snapshot and resets the database with it.
func (s *LoaderService) Load(ctx context.Context) ([]string, error) {
	snap, err := s.store.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	ids, err := s.db.Reset(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to reset behavior database: %w", err)
	}

	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()

	return ids, nil
}

// reloadIfChanged resets only when the stored snapshot differs from the last one loaded.
func (s *LoaderService) reloadIfChanged(ctx context.Context) {
	snap, err := s.store.Latest(ctx)
	if err != nil {
		s.logger.Error("failed to fetch snapshot", zap.Error(err))
		return
	}

	s.mu.Lock()
	unchanged := s.last != nil && reflect.DeepEqual(s.last, snap)
	s.mu.Unlock()
	if unchanged {
		return
	}

	ids, err := s.db.Reset(snap)
	if err != nil {
		s.logger.Error("failed to reset behavior database", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()

	s.logger.Info("snapshot reloaded", zap.Int("collision_brains", len(ids)))
}

func (s *LoaderService) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	s.reloadIfChanged(ctx)
}

// Start runs the reload loop in a background goroutine.
func (s *LoaderService) Start() error {
	if s.watchPath == "" {
		s.wg.Add(1)
		go s.pollLoop()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(s.watchPath)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch snapshot file: %w", err)
	}

	s.wg.Add(1)
	go s.watchLoop(watcher)
	return nil
}

// Stop gracefully stops the reload loop.
func (s *LoaderService) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

func (s *LoaderService) pollLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("snapshot poller started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ticker.C:
			s.reload()
		case <-s.stopCh:
			s.logger.Info("snapshot poller stopped")
			return
		}
	}
}

func (s *LoaderService) watchLoop(watcher *fsnotify.Watcher) {
	defer s.wg.Done()
	defer watcher.Close()

	var debounceTimer *time.Timer
	fire := make(chan struct{}, 1)

	s.logger.Info("snapshot watcher started", zap.String("path", s.watchPath))

	for {
		select {
		case <-s.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			s.logger.Info("snapshot watcher stopped")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.watchPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(s.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			s.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("snapshot watcher error", zap.Error(err))
		}
	}
}
