package service

import (
	"testing"

	"progress-service/internal/models"
)

func scorePtr(v int) *int { return &v }

func TestMergeProgressIsMonotone(t *testing.T) {
	current := &models.LessonProgressRecord{
		UserID: "user-1", LessonID: "sr-greetings",
		Progress: 40, Status: models.StatusInProgress, TimeSpentMinutes: 6,
	}

	// Writes in any order never lower progress, time or status.
	sequence := []*models.LessonProgressRecord{
		{Progress: 55, Status: models.StatusInProgress, TimeSpentMinutes: 8},
		{Progress: 23, Status: models.StatusInProgress, TimeSpentMinutes: 3},
		{Progress: 0, Status: models.StatusNotStarted, TimeSpentMinutes: 0},
		{Progress: 60, Status: models.StatusInProgress, TimeSpentMinutes: 9},
	}

	prevProgress := current.Progress
	prevTime := current.TimeSpentMinutes
	prevRank := current.Status.Rank()
	for i, next := range sequence {
		current = mergeRecords(current, next)
		if current.Progress < prevProgress {
			t.Errorf("Write %d lowered progress from %d to %d", i, prevProgress, current.Progress)
		}
		if current.TimeSpentMinutes < prevTime {
			t.Errorf("Write %d lowered time from %d to %d", i, prevTime, current.TimeSpentMinutes)
		}
		if current.Status.Rank() < prevRank {
			t.Errorf("Write %d moved status backward to %s", i, current.Status)
		}
		prevProgress = current.Progress
		prevTime = current.TimeSpentMinutes
		prevRank = current.Status.Rank()
	}

	if current.Progress != 60 {
		t.Errorf("Expected final progress 60, got %d", current.Progress)
	}
	if current.TimeSpentMinutes != 9 {
		t.Errorf("Expected final time 9, got %d", current.TimeSpentMinutes)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	current := &models.LessonProgressRecord{
		Progress: 40, Status: models.StatusInProgress, TimeSpentMinutes: 6, Score: scorePtr(50),
	}
	next := &models.LessonProgressRecord{
		Progress: 55, Status: models.StatusInProgress, TimeSpentMinutes: 8,
	}

	once := mergeRecords(current, next)
	twice := mergeRecords(once, next)

	if once.Progress != twice.Progress || once.TimeSpentMinutes != twice.TimeSpentMinutes ||
		once.Status != twice.Status || *once.Score != *twice.Score {
		t.Error("Applying the same write twice must not change the record")
	}
}

func TestMergeForcesCompletedAtFullProgress(t *testing.T) {
	current := &models.LessonProgressRecord{Progress: 80, Status: models.StatusInProgress}
	next := &models.LessonProgressRecord{Progress: 100, Status: models.StatusInProgress}

	merged := mergeRecords(current, next)
	if merged.Status != models.StatusCompleted {
		t.Errorf("Progress 100 must force COMPLETED, got %s", merged.Status)
	}
}

func TestMergeNeverErasesScore(t *testing.T) {
	current := &models.LessonProgressRecord{Progress: 50, Status: models.StatusInProgress, Score: scorePtr(65)}
	next := &models.LessonProgressRecord{Progress: 55, Status: models.StatusInProgress}

	merged := mergeRecords(current, next)
	if merged.Score == nil || *merged.Score != 65 {
		t.Error("A write without a score must keep the stored score")
	}

	next.Score = scorePtr(80)
	merged = mergeRecords(merged, next)
	if merged.Score == nil || *merged.Score != 80 {
		t.Error("A write with a score must replace the stored score")
	}
}

func TestMergeStatusOnlyMovesForward(t *testing.T) {
	current := &models.LessonProgressRecord{Progress: 100, Status: models.StatusCompleted}
	next := &models.LessonProgressRecord{Progress: 10, Status: models.StatusInProgress}

	merged := mergeRecords(current, next)
	if merged.Status != models.StatusCompleted {
		t.Errorf("Status must not move backward, got %s", merged.Status)
	}
	if merged.Progress != 100 {
		t.Errorf("Progress must not regress, got %d", merged.Progress)
	}
}

func TestMergeKeepsLargestKeySet(t *testing.T) {
	current := &models.LessonProgressRecord{
		Progress: 20, Status: models.StatusInProgress,
		PlayedEventKeys: []string{"audio-a", "audio-b"},
	}
	next := &models.LessonProgressRecord{
		Progress: 30, Status: models.StatusInProgress,
		PlayedEventKeys: []string{"audio-a", "audio-b", "audio-c"},
	}

	merged := mergeRecords(current, next)
	if len(merged.PlayedEventKeys) != 3 {
		t.Errorf("Expected the grown key set, got %d keys", len(merged.PlayedEventKeys))
	}

	// A write without keys must not shrink the stored set.
	merged = mergeRecords(merged, &models.LessonProgressRecord{Progress: 35, Status: models.StatusInProgress})
	if len(merged.PlayedEventKeys) != 3 {
		t.Errorf("Expected the key set to survive a keyless write, got %d", len(merged.PlayedEventKeys))
	}
}

func TestHealRecordCompletesPassingScore(t *testing.T) {
	// A partial write elsewhere left a passing score without completion.
	rec := &models.LessonProgressRecord{
		Progress: 60, Status: models.StatusInProgress, Score: scorePtr(85),
	}

	if !healRecord(rec, 70) {
		t.Fatal("Expected the inconsistent record to be healed")
	}
	if rec.Progress != 100 || rec.Status != models.StatusCompleted {
		t.Errorf("Expected 100/COMPLETED, got %d/%s", rec.Progress, rec.Status)
	}
}

func TestHealRecordLeavesConsistentRecordsAlone(t *testing.T) {
	testCases := []struct {
		name string
		rec  models.LessonProgressRecord
	}{
		{"no score", models.LessonProgressRecord{Progress: 40, Status: models.StatusInProgress}},
		{"failing score", models.LessonProgressRecord{Progress: 40, Status: models.StatusInProgress, Score: scorePtr(50)}},
		{"already completed", models.LessonProgressRecord{Progress: 100, Status: models.StatusCompleted, Score: scorePtr(90)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := tc.rec
			if healRecord(&rec, 70) {
				t.Error("Consistent record must not be rewritten")
			}
		})
	}
}
