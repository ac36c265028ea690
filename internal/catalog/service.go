package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"pickwise/internal/eventbus"
)

// reloadDebounce coalesces the burst of events editors produce on save
const reloadDebounce = 100 * time.Millisecond

// CatalogService loads the item universe and keeps it fresh
type CatalogService interface {
	Load(ctx context.Context, path string) error
	Watch(ctx context.Context, path string) error
	Stop()
}

// catalogService is the concrete implementation
type catalogService struct {
	bus         eventbus.EventBus
	logger      *zap.Logger
	unsubscribe func()

	mu       sync.Mutex
	stopped  bool
	watching bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewCatalogService creates a catalog service that also answers
// CatalogLoadRequested events
func NewCatalogService(bus eventbus.EventBus, logger *zap.Logger) CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	cs := &catalogService{
		bus:    bus,
		logger: logger,
	}

	cs.unsubscribe = bus.Subscribe(eventbus.EventCatalogLoadRequested, cs.handleLoadRequest)

	return cs
}

// handleLoadRequest runs on the bus dispatcher. It may still be called after
// Stop when the dispatcher copied the handler list before unsubscribe.
func (cs *catalogService) handleLoadRequest(e eventbus.DomainEvent) {
	event, ok := e.(eventbus.CatalogLoadRequestedEvent)
	if !ok {
		return
	}

	cs.mu.Lock()
	if cs.stopped {
		cs.mu.Unlock()
		return
	}
	cs.wg.Add(1)
	cs.mu.Unlock()

	go func() {
		defer cs.wg.Done()
		_ = cs.Load(context.Background(), event.Source)
	}()
}

// Load reads the catalog at path and publishes it. Failures are published as
// error events as well as returned.
func (cs *catalogService) Load(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	items, err := LoadFile(path)
	if err != nil {
		cs.logger.Warn("catalog load failed", zap.String("path", path), zap.Error(err))
		cs.bus.Publish(eventbus.ErrorEvent{
			Message: fmt.Sprintf("Failed to load %s", filepath.Base(path)),
			Err:     err,
		})
		return err
	}

	cs.logger.Info("catalog loaded", zap.String("path", path), zap.Int("items", len(items)))
	cs.bus.Publish(eventbus.CatalogLoadedEvent{Items: items, Source: path})
	return nil
}

// Watch reloads the catalog whenever the file at path is written or
// replaced, until ctx is cancelled or Stop is called
func (cs *catalogService) Watch(ctx context.Context, path string) error {
	cs.mu.Lock()
	if cs.stopped {
		cs.mu.Unlock()
		return errors.New("catalog service stopped")
	}
	if cs.watching {
		cs.mu.Unlock()
		return errors.New("catalog watch already in progress")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		cs.mu.Unlock()
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file rather than write it
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		cs.mu.Unlock()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	cs.watching = true
	cs.cancel = cancel
	cs.wg.Add(1)
	cs.mu.Unlock()

	go func() {
		defer cs.wg.Done()
		defer func() {
			watcher.Close()
			cs.mu.Lock()
			cs.watching = false
			cs.cancel = nil
			cs.mu.Unlock()
		}()
		cs.watchLoop(watchCtx, watcher, path)
	}()

	return nil
}

func (cs *catalogService) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string) {
	target := filepath.Clean(path)
	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(reloadDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			cs.logger.Warn("catalog watcher error", zap.String("path", path), zap.Error(err))

		case <-timer.C:
			_ = cs.Load(ctx, path)
		}
	}
}

// Stop cancels any watch and waits for background loads to finish
func (cs *catalogService) Stop() {
	if cs.unsubscribe != nil {
		cs.unsubscribe()
	}

	cs.mu.Lock()
	cs.stopped = true
	if cs.cancel != nil {
		cs.cancel()
	}
	cs.mu.Unlock()

	cs.wg.Wait()
}
