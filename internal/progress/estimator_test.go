package progress

import (
	"testing"
	"time"

	"progress-service/internal/models"
)

func estimatorConfig(totalUnits int) models.ProgressConfig {
	return models.ProgressConfig{
		TotalEngagementUnits:     totalUnits,
		HasPractice:              true,
		Weights:                  models.ProgressWeights{Engagement: 30, Time: 20, Practice: 50},
		PassThreshold:            70,
		TimeNormalizationMinutes: 5,
	}
}

func TestEstimateBaselineNoiseFloorReset(t *testing.T) {
	// Stored progress 15 is below the noise floor: the estimate must be 0,
	// not a small nonzero value that could double-count on resume.
	rec := &models.LessonProgressRecord{Progress: 15, Status: models.StatusInProgress}
	baseline := EstimateBaseline(rec, estimatorConfig(58), time.Now())

	if baseline.PriorEngagementUnits != 0 {
		t.Errorf("Expected 0 prior units below the noise floor, got %d", baseline.PriorEngagementUnits)
	}
}

func TestEstimateBaselineInversion(t *testing.T) {
	testCases := []struct {
		name          string
		progress      int
		totalUnits    int
		expectedUnits int
	}{
		// perUnit = 30/24 = 1.25; floor(30/1.25) = 24 -> near-total guard resets.
		{"full engagement resets near total", 30, 24, 0},
		// floor(25/1.25) = 20 of 24.
		{"partial engagement", 25, 24, 20},
		// floor(20/1.25) = 16 of 24.
		{"at noise floor boundary", 20, 24, 16},
		{"just below noise floor", 19, 24, 0},
		// perUnit = 30/10 = 3; floor(50/3) = 16 clamps to 10, then guard resets.
		{"clamped then guarded", 50, 10, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &models.LessonProgressRecord{Progress: tc.progress}
			baseline := EstimateBaseline(rec, estimatorConfig(tc.totalUnits), time.Now())
			if baseline.PriorEngagementUnits != tc.expectedUnits {
				t.Errorf("Expected %d prior units, got %d", tc.expectedUnits, baseline.PriorEngagementUnits)
			}
		})
	}
}

func TestEstimateBaselineNearTotalGuard(t *testing.T) {
	// perUnit = 30/20 = 1.5; floor(28/1.5) = 18, which is within 2 units of
	// 20 and must reset to avoid an instant-complete effect.
	rec := &models.LessonProgressRecord{Progress: 28}
	baseline := EstimateBaseline(rec, estimatorConfig(20), time.Now())

	if baseline.PriorEngagementUnits != 0 {
		t.Errorf("Expected near-total estimate to reset, got %d", baseline.PriorEngagementUnits)
	}
}

func TestEstimateBaselineSessionOrigin(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	rec := &models.LessonProgressRecord{Progress: 25, TimeSpentMinutes: 12}

	baseline := EstimateBaseline(rec, estimatorConfig(24), now)

	want := now.Add(-12 * time.Minute)
	if !baseline.SessionOrigin.Equal(want) {
		t.Errorf("Expected origin %v, got %v", want, baseline.SessionOrigin)
	}
	if baseline.Exact {
		t.Error("Estimated baseline must not claim exactness")
	}
}

func TestEstimateBaselineDegenerateConfig(t *testing.T) {
	rec := &models.LessonProgressRecord{Progress: 80}

	baseline := EstimateBaseline(rec, estimatorConfig(0), time.Now())
	if baseline.PriorEngagementUnits != 0 {
		t.Errorf("Expected 0 units with zero total units, got %d", baseline.PriorEngagementUnits)
	}

	cfg := estimatorConfig(24)
	cfg.Weights.Engagement = 0
	baseline = EstimateBaseline(rec, cfg, time.Now())
	if baseline.PriorEngagementUnits != 0 {
		t.Errorf("Expected 0 units with zero engagement weight, got %d", baseline.PriorEngagementUnits)
	}
}

func TestExactBaseline(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	rec := &models.LessonProgressRecord{Progress: 40, TimeSpentMinutes: 7}
	keys := []string{"audio-a", "audio-b", "audio-c"}

	baseline := ExactBaseline(keys, rec, estimatorConfig(24), now)

	if baseline.PriorEngagementUnits != 3 {
		t.Errorf("Expected 3 prior units from the key set, got %d", baseline.PriorEngagementUnits)
	}
	if !baseline.Exact {
		t.Error("Key-set baseline must be exact")
	}
	if !baseline.SessionOrigin.Equal(now.Add(-7 * time.Minute)) {
		t.Errorf("Unexpected origin %v", baseline.SessionOrigin)
	}
}
