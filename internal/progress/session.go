package progress

import (
	"time"

	"progress-service/internal/models"
)

// SessionState holds everything ephemeral about one open lesson visit: the
// dedup ledger, the practice gate, the reconstructed baseline and a snapshot
// of the record as it stood at open. One value per open session, created at
// lesson open and dropped at close; nothing lives in package globals.
type SessionState struct {
	ID       string
	UserID   string
	LessonID string

	Lesson   *models.Lesson
	Prior    *models.LessonProgressRecord
	Baseline Baseline

	Ledger *Ledger
	Gate   *Gate

	// Practice is the combined score once the gate has emitted it, carried
	// so time-driven recomputes keep crediting it.
	Practice *CombinedPractice

	OpenedAt time.Time
}

// NewSessionState builds the session value for a freshly opened lesson view.
// priorKeys seeds the ledger when the exact played-key set is known.
func NewSessionState(id, userID string, lesson *models.Lesson, prior *models.LessonProgressRecord, baseline Baseline, priorKeys []string, now time.Time) *SessionState {
	return &SessionState{
		ID:       id,
		UserID:   userID,
		LessonID: lesson.ID,
		Lesson:   lesson,
		Prior:    prior,
		Baseline: baseline,
		Ledger:   NewLedger(priorKeys),
		Gate:     NewGate(lesson.ActivityIDs, passThreshold(lesson.Config)),
		OpenedAt: now,
	}
}

// EffectiveEngagementUnits is the countable engagement so far: prior credit
// plus this session's unique events, never above the configured total.
func (s *SessionState) EffectiveEngagementUnits() int {
	units := s.Baseline.PriorEngagementUnits + s.Ledger.UniqueCount()
	if total := s.Lesson.Config.TotalEngagementUnits; total > 0 && units > total {
		units = total
	}
	return units
}

// ElapsedMinutes is the total time on task including prior sessions, derived
// from the baked-back session origin.
func (s *SessionState) ElapsedMinutes(now time.Time) float64 {
	m := now.Sub(s.Baseline.SessionOrigin).Minutes()
	if m < 0 {
		return 0
	}
	return m
}

// PracticeScore exposes the combined practice score for the calculator, nil
// while the gate is still withholding.
func (s *SessionState) PracticeScore() *int {
	if s.Practice == nil {
		return nil
	}
	score := s.Practice.Score
	return &score
}

// Inputs assembles the calculator inputs at the given instant.
func (s *SessionState) Inputs(now time.Time) CalcInputs {
	return CalcInputs{
		PriorProgress:            s.Prior.Progress,
		EffectiveEngagementUnits: s.EffectiveEngagementUnits(),
		TotalElapsedMinutes:      s.ElapsedMinutes(now),
		PracticeScore:            s.PracticeScore(),
	}
}
