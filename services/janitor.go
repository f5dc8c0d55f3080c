package services

import (
	"context"
	"time"

	"realestate-server/logger"
)

// Evictor is anything holding entries that go stale.
type Evictor interface {
	EvictExpired() int
}

// CacheJanitor periodically removes expired cache entries.
type CacheJanitor struct {
	caches   map[string]Evictor
	interval time.Duration
}

func NewCacheJanitor(interval time.Duration, caches map[string]Evictor) *CacheJanitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitor{
		caches:   caches,
		interval: interval,
	}
}

// Start runs the janitor until ctx is done.
func (j *CacheJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Log.Debug("cache janitor stopped")
				return
			case <-ticker.C:
				j.Sweep()
			}
		}
	}()
}

// Sweep evicts expired entries from every cache once and returns the total removed.
func (j *CacheJanitor) Sweep() int {
	total := 0
	for name, c := range j.caches {
		if n := c.EvictExpired(); n > 0 {
			logger.Log.WithField("cache", name).Debugf("evicted %d expired entries", n)
			total += n
		}
	}
	return total
}
