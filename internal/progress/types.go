package progress

import (
	"time"

	"progress-service/internal/models"
)

// ActivityStatus tracks one practice activity within the current session.
type ActivityStatus struct {
	ActivityID string `json:"activity_id"`
	Reported   bool   `json:"reported"`
	Score      int    `json:"score"`
	Passed     bool   `json:"passed"`
}

// CombinedPractice is the single practice outcome emitted once every
// configured activity has reported.
type CombinedPractice struct {
	Score  int  `json:"score"`
	Passed bool `json:"passed"`
}

// Baseline is the reconstructed starting point of a session: how many
// engagement units were already credited before it opened, and when the
// clock effectively started so elapsed-time math includes prior visits.
// Exact is true when the baseline came from a persisted event-key set
// rather than the lossy aggregate inversion.
type Baseline struct {
	PriorEngagementUnits int       `json:"prior_engagement_units"`
	SessionOrigin        time.Time `json:"session_origin"`
	Exact                bool      `json:"exact"`
}

// CalcInputs are the signals the calculator combines into a completion
// percentage. PracticeScore is nil until a combined practice score exists.
type CalcInputs struct {
	PriorProgress            int
	EffectiveEngagementUnits int
	TotalElapsedMinutes      float64
	PracticeScore            *int
}

func passThreshold(cfg models.ProgressConfig) int {
	if cfg.PassThreshold <= 0 {
		return models.DefaultPassThreshold
	}
	return cfg.PassThreshold
}
