package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatsCache is a cache that can report and drop its contents.
type StatsCache interface {
	GetCacheStats() map[string]interface{}
	Purge() int
}

type CacheHandler struct {
	caches map[string]StatsCache
}

func NewCacheHandler(caches map[string]StatsCache) *CacheHandler {
	return &CacheHandler{
		caches: caches,
	}
}

// GetCacheStats handles GET /api/v1/cache/stats
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	stats := make(map[string]interface{}, len(h.caches))
	for name, cache := range h.caches {
		stats[name] = cache.GetCacheStats()
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  stats,
	})
}

// PurgeCache handles POST /api/v1/cache/purge
func (h *CacheHandler) PurgeCache(c *gin.Context) {
	purged := make(map[string]int, len(h.caches))
	total := 0
	for name, cache := range h.caches {
		n := cache.Purge()
		purged[name] = n
		total += n
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "purged",
		"purged": purged,
		"total":  total,
	})
}
