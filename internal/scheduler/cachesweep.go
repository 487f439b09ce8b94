package scheduler

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hafsaahmed614/TamkeenLeague/internal/league"
)

// RegisterCacheSweepJob periodically evicts expired live-score cache
// entries so a quiet process does not hold dead ones. Correctness never
// depends on this job: every ledger write invalidates its game's entry
// eagerly.
func RegisterCacheSweepJob(s *Service, cache *league.LiveScoreCache, cronExpr string) error {
	if cache == nil {
		return fmt.Errorf("cache sweep job requires a cache")
	}

	jobName := "live_score_cache_sweep"
	jobLogger := log.With().
		Str("component", "live_score_cache_sweep_job").
		Str("job_name", jobName).
		Str("cron", cronExpr).
		Logger()

	_, err := s.AddJob(jobName, cronExpr, func() {
		if removed := cache.Sweep(); removed > 0 {
			jobLogger.Debug().Int("removed", removed).Msg("Evicted expired live score entries")
		}
	})
	return err
}
