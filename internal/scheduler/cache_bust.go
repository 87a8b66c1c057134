package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/avramidis/quotemetrics/internal/cache"
)

// CacheBustJob wipes the metrics cache. Scheduled around market open and
// close, when previous-session values go stale all at once and waiting out
// the per-bucket TTLs would serve misleading data.
type CacheBustJob struct {
	cache *cache.Cache
	log   zerolog.Logger
}

// NewCacheBustJob creates a cache bust job.
func NewCacheBustJob(c *cache.Cache, log zerolog.Logger) *CacheBustJob {
	return &CacheBustJob{
		cache: c,
		log:   log.With().Str("job", "cache_bust").Logger(),
	}
}

// Name returns the job name
func (j *CacheBustJob) Name() string {
	return "cache_bust"
}

// Run clears the entire cache.
func (j *CacheBustJob) Run() error {
	stats := j.cache.Stats()
	j.cache.Clear()

	j.log.Info().
		Int("evicted_keys", stats.TotalKeys).
		Msg("Cache busted")

	return nil
}
