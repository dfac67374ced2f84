package service

import (
	"context"
	"log"
	"time"

	"progress-service/internal/models"
)

// mergeRecords folds a freshly computed tuple into the stored record under
// the monotonicity rules: progress and time only ever rise, status only
// moves forward, a recorded score is never erased. Every field update is a
// max or a forward-only transition, which makes repeated or out-of-order
// writes commutative and idempotent.
func mergeRecords(current, next *models.LessonProgressRecord) *models.LessonProgressRecord {
	merged := &models.LessonProgressRecord{
		ID:       current.ID,
		UserID:   current.UserID,
		LessonID: current.LessonID,
	}

	merged.Progress = current.Progress
	if next.Progress > merged.Progress {
		merged.Progress = next.Progress
	}

	merged.Status = models.FurthestStatus(current.Status, next.Status)
	if merged.Progress >= 100 {
		merged.Status = models.StatusCompleted
	}

	merged.Score = current.Score
	if next.Score != nil {
		merged.Score = next.Score
	}

	merged.TimeSpentMinutes = current.TimeSpentMinutes
	if next.TimeSpentMinutes > merged.TimeSpentMinutes {
		merged.TimeSpentMinutes = next.TimeSpentMinutes
	}

	// The session's key set is seeded from the stored one, so the larger set
	// is always the superset.
	merged.PlayedEventKeys = current.PlayedEventKeys
	if len(next.PlayedEventKeys) > len(merged.PlayedEventKeys) {
		merged.PlayedEventKeys = next.PlayedEventKeys
	}

	return merged
}

// healRecord repairs a record left inconsistent by a partial write
// elsewhere: a passing score implies full progress and COMPLETED status.
// It returns true when the record was changed.
func healRecord(rec *models.LessonProgressRecord, passThreshold int) bool {
	if rec.Score == nil || *rec.Score < passThreshold {
		return false
	}
	if rec.Progress >= 100 && rec.Status == models.StatusCompleted {
		return false
	}
	rec.Progress = 100
	rec.Status = models.StatusCompleted
	return true
}

// StartReconcileLoop sweeps every open session on a fixed interval,
// recomputing time-driven progress and writing only when it increased.
// Stops when the context is cancelled.
func (s *ProgressService) StartReconcileLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweepOpenSessions(ctx)
			}
		}
	}()
}

func (s *ProgressService) sweepOpenSessions(ctx context.Context) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		if _, err := s.Heartbeat(ctx, id); err != nil {
			log.Printf("Reconcile sweep failed for session %s: %v", id, err)
		}
	}
}
