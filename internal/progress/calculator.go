package progress

import (
	"math"

	"progress-service/internal/models"
)

// Calculate combines the engagement ratio, time on task and practice score
// into a 0-100 completion percentage. Pure function, no side effects.
//
// A practice score at or above the pass threshold forces 100: practice is
// the authoritative success signal and partial engagement or time must not
// hold a mastered lesson below complete. The result is clamped to never fall
// below the previously stored progress.
func Calculate(cfg models.ProgressConfig, in CalcInputs) int {
	engagement := engagementContribution(cfg, in.EffectiveEngagementUnits)
	timeCredit := timeContribution(cfg, in.TotalElapsedMinutes)

	practice := 0.0
	if cfg.HasPractice && in.PracticeScore != nil {
		practice = float64(*in.PracticeScore) / 100.0 * float64(cfg.Weights.Practice)
	}

	raw := int(math.Round(math.Min(100, engagement+timeCredit+practice)))

	if in.PracticeScore != nil && *in.PracticeScore >= passThreshold(cfg) {
		raw = 100
	}

	if raw < in.PriorProgress {
		return in.PriorProgress
	}
	return raw
}

func engagementContribution(cfg models.ProgressConfig, units int) float64 {
	if cfg.TotalEngagementUnits <= 0 {
		return 0
	}
	weight := float64(cfg.Weights.Engagement)
	credit := float64(units) / float64(cfg.TotalEngagementUnits) * weight
	return math.Min(weight, credit)
}

func timeContribution(cfg models.ProgressConfig, elapsedMinutes float64) float64 {
	weight := float64(cfg.Weights.Time)
	if cfg.TimeNormalizationMinutes <= 0 {
		// No normalization window means any time at all earns full credit.
		if elapsedMinutes > 0 {
			return weight
		}
		return 0
	}
	credit := elapsedMinutes / float64(cfg.TimeNormalizationMinutes) * weight
	return math.Min(weight, credit)
}

// NextStatus derives the status implied by a computed progress value.
func NextStatus(p int) models.LessonStatus {
	switch {
	case p >= 100:
		return models.StatusCompleted
	case p > 0:
		return models.StatusInProgress
	}
	return models.StatusNotStarted
}
