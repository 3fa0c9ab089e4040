package worker

import (
	"context"
	"time"

	"github.com/eventbooker/webclient/internal/store"

	"github.com/sirupsen/logrus"
)

// CacheCleanupWorker evicts per-session event caches that have been idle
// longer than the configured TTL, so abandoned sessions do not pin their
// stale event mirrors in memory.
type CacheCleanupWorker struct {
	registry *store.Registry
	idleTTL  time.Duration
	interval time.Duration
}

func NewCacheCleanupWorker(registry *store.Registry, idleTTL, interval time.Duration) *CacheCleanupWorker {
	return &CacheCleanupWorker{
		registry: registry,
		idleTTL:  idleTTL,
		interval: interval,
	}
}

func (w *CacheCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Session cache cleanup worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Session cache cleanup worker stopped")
			return
		case <-ticker.C:
			w.cleanupIdleCaches()
		}
	}
}

func (w *CacheCleanupWorker) cleanupIdleCaches() {
	evicted := w.registry.EvictIdle(w.idleTTL)
	if evicted == 0 {
		return
	}

	logrus.WithFields(logrus.Fields{
		"evicted":   evicted,
		"remaining": w.registry.Len(),
	}).Info("Evicted idle session caches")
}
