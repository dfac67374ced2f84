package progress

import (
	"time"

	"progress-service/internal/models"
)

// Progress below this share of the maximum is treated as rounding noise
// rather than real prior engagement.
const noiseFloorProgress = 20

// Estimates within this many units of the total are discarded as likely
// inflated; otherwise a stale record could instant-complete a lesson the
// user never engaged with.
const nearTotalGuardUnits = 2

// EstimateBaseline reconstructs an approximate session starting point from a
// previously persisted aggregate record. The inversion is lossy (many input
// combinations collapse to the same percentage), so it errs toward
// under-crediting: losing a unit or two of estimated credit only understates
// progress momentarily, while over-crediting would break idempotence.
//
// When the storage layer kept the exact event-key set, seed the ledger from
// it and skip estimation entirely.
func EstimateBaseline(rec *models.LessonProgressRecord, cfg models.ProgressConfig, now time.Time) Baseline {
	origin := now.Add(-time.Duration(rec.TimeSpentMinutes) * time.Minute)

	baseline := Baseline{
		PriorEngagementUnits: 0,
		SessionOrigin:        origin,
	}

	if cfg.TotalEngagementUnits <= 0 || cfg.Weights.Engagement <= 0 {
		return baseline
	}
	if rec.Progress < noiseFloorProgress {
		return baseline
	}

	perUnit := float64(cfg.Weights.Engagement) / float64(cfg.TotalEngagementUnits)
	estimated := int(float64(rec.Progress) / perUnit)

	if estimated < 0 {
		estimated = 0
	}
	if estimated > cfg.TotalEngagementUnits {
		estimated = cfg.TotalEngagementUnits
	}
	if estimated >= cfg.TotalEngagementUnits-nearTotalGuardUnits {
		estimated = 0
	}

	baseline.PriorEngagementUnits = estimated
	return baseline
}

// ExactBaseline builds a baseline from a persisted event-key set. The origin
// still starts in the past by the accumulated time, but the engagement count
// is authoritative rather than estimated.
func ExactBaseline(playedKeys []string, rec *models.LessonProgressRecord, cfg models.ProgressConfig, now time.Time) Baseline {
	units := len(playedKeys)
	if cfg.TotalEngagementUnits > 0 && units > cfg.TotalEngagementUnits {
		units = cfg.TotalEngagementUnits
	}
	return Baseline{
		PriorEngagementUnits: units,
		SessionOrigin:        now.Add(-time.Duration(rec.TimeSpentMinutes) * time.Minute),
		Exact:                true,
	}
}
