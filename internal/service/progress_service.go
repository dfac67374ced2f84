package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"progress-service/internal/lessons"
	"progress-service/internal/models"
	"progress-service/internal/progress"
	"progress-service/internal/repository"

	"github.com/google/uuid"
)

// ProgressService owns the open-session table and the sole write path to the
// persisted records. One SessionState exists per open lesson view; every
// engagement event, practice report, timer tick and visibility change flows
// through here and ends in a monotone merge.
type ProgressService struct {
	Repo       *repository.ProgressRepository
	LedgerRepo *repository.LedgerRepository
	Catalog    *lessons.Registry

	mu       sync.Mutex
	sessions map[string]*progress.SessionState

	now func() time.Time
}

func NewProgressService(repo *repository.ProgressRepository, ledgerRepo *repository.LedgerRepository, catalog *lessons.Registry) *ProgressService {
	return &ProgressService{
		Repo:       repo,
		LedgerRepo: ledgerRepo,
		Catalog:    catalog,
		sessions:   make(map[string]*progress.SessionState),
		now:        time.Now,
	}
}

// SessionView is the handler-facing snapshot of an open session.
type SessionView struct {
	SessionID      string                       `json:"session_id"`
	LessonID       string                       `json:"lesson_id"`
	Record         *models.LessonProgressRecord `json:"record"`
	EffectiveUnits int                          `json:"effective_engagement_units"`
	TotalUnits     int                          `json:"total_engagement_units"`
	ElapsedMinutes float64                      `json:"elapsed_minutes"`
	ExactResume    bool                         `json:"exact_resume"`
	Activities     []progress.ActivityStatus    `json:"activities,omitempty"`
	Practice       *progress.CombinedPractice   `json:"practice,omitempty"`
}

// OpenSession loads the stored record, reconstructs the session baseline and
// registers a fresh SessionState. When the Redis ledger is available the
// baseline is exact; otherwise it is estimated from the stored aggregate.
func (s *ProgressService) OpenSession(ctx context.Context, userID, lessonID string) (*SessionView, error) {
	lesson, err := s.Catalog.Get(lessonID)
	if err != nil {
		return nil, err
	}

	record, err := s.Repo.Get(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress record: %w", err)
	}

	now := s.now()
	var baseline progress.Baseline
	var priorKeys []string
	if s.LedgerRepo != nil {
		keys, kerr := s.LedgerRepo.Keys(ctx, userID, lessonID)
		if kerr != nil {
			log.Printf("Played-key set unavailable, estimating baseline: %v", kerr)
		} else {
			priorKeys = keys
		}
	}
	if priorKeys == nil && len(record.PlayedEventKeys) > 0 {
		// Mongo kept the exact set; no estimation needed.
		priorKeys = record.PlayedEventKeys
	}
	if priorKeys != nil {
		baseline = progress.ExactBaseline(priorKeys, record, lesson.Config, now)
	} else {
		baseline = progress.EstimateBaseline(record, lesson.Config, now)
	}

	state := progress.NewSessionState(uuid.NewString(), userID, lesson, record, baseline, priorKeys, now)

	s.mu.Lock()
	s.sessions[state.ID] = state
	s.mu.Unlock()

	return s.view(state), nil
}

// RecordEngagement credits one played audio clip. An asset key outside the
// lesson's card set earns nothing; a key already credited this lesson's
// lifetime is a duplicate and triggers no write.
func (s *ProgressService) RecordEngagement(ctx context.Context, sessionID, assetKey string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if !state.Lesson.HasAudioKey(assetKey) {
		return s.view(state), nil
	}
	if !state.Ledger.Record(assetKey) {
		return s.view(state), nil
	}

	if s.LedgerRepo != nil {
		if _, err := s.LedgerRepo.AddKey(ctx, state.UserID, state.LessonID, assetKey); err != nil {
			log.Printf("Failed to persist played key %s: %v", assetKey, err)
		}
	}

	if _, err := s.recomputeAndMerge(ctx, state); err != nil {
		return nil, err
	}
	return s.view(state), nil
}

// ReportPracticeScore feeds one activity's score to the completion gate.
// Nothing is written until every configured activity has reported; only the
// gate's combined emission reaches the calculator.
func (s *ProgressService) ReportPracticeScore(ctx context.Context, sessionID, activityID string, score int) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	combined, emitted := state.Gate.Report(activityID, score)
	if !emitted {
		return s.view(state), nil
	}

	state.Practice = combined
	if _, err := s.recomputeAndMerge(ctx, state); err != nil {
		return nil, err
	}
	return s.view(state), nil
}

// RetryActivity resets one practice activity to pending for this session.
// The persisted record keeps whatever it already earned.
func (s *ProgressService) RetryActivity(sessionID, activityID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	state.Gate.Retry(activityID)
	state.Practice = nil
	return s.view(state), nil
}

// Heartbeat recomputes progress from elapsed time and writes only when
// something increased. Both the periodic sweep and client visibility
// transitions land here.
func (s *ProgressService) Heartbeat(ctx context.Context, sessionID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	computed := progress.Calculate(state.Lesson.Config, state.Inputs(now))
	elapsed := int(state.ElapsedMinutes(now))
	if computed <= state.Prior.Progress && elapsed <= state.Prior.TimeSpentMinutes {
		return s.view(state), nil
	}

	if _, err := s.recomputeAndMerge(ctx, state); err != nil {
		return nil, err
	}
	return s.view(state), nil
}

// CloseSession performs a final recompute-and-merge and drops the session.
func (s *ProgressService) CloseSession(ctx context.Context, sessionID string) (*models.LessonProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	record, err := s.recomputeAndMerge(ctx, state)
	if err != nil {
		return nil, err
	}
	delete(s.sessions, sessionID)
	return record, nil
}

// GetSession returns the current snapshot of an open session.
func (s *ProgressService) GetSession(sessionID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(state), nil
}

// Reconcile self-heals a stored record after an external correction: a
// passing score implies full progress and COMPLETED status. Triggered by the
// progress.corrected notification.
func (s *ProgressService) Reconcile(ctx context.Context, userID, lessonID string) error {
	record, err := s.Repo.Get(ctx, userID, lessonID)
	if err != nil {
		return fmt.Errorf("failed to load record for reconciliation: %w", err)
	}

	threshold := models.DefaultPassThreshold
	if lesson, lerr := s.Catalog.Get(lessonID); lerr == nil && lesson.Config.PassThreshold > 0 {
		threshold = lesson.Config.PassThreshold
	}

	if !healRecord(record, threshold) {
		return nil
	}
	if err := s.Repo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to persist reconciled record: %w", err)
	}
	log.Printf("Reconciled record for user %s lesson %s to COMPLETED", userID, lessonID)
	return nil
}

// GetRecord reads the persisted record for display.
func (s *ProgressService) GetRecord(ctx context.Context, userID, lessonID string) (*models.LessonProgressRecord, error) {
	return s.Repo.Get(ctx, userID, lessonID)
}

func (s *ProgressService) GetUserRecords(ctx context.Context, userID string) ([]models.LessonProgressRecord, error) {
	return s.Repo.FindByUser(ctx, userID)
}

// recomputeAndMerge runs the calculator on the session's current signals and
// folds the result into the stored record. Callers hold s.mu.
func (s *ProgressService) recomputeAndMerge(ctx context.Context, state *progress.SessionState) (*models.LessonProgressRecord, error) {
	now := s.now()
	computed := progress.Calculate(state.Lesson.Config, state.Inputs(now))

	status := progress.NextStatus(computed)
	if status == models.StatusNotStarted && state.Ledger.UniqueCount() > 0 {
		status = models.StatusInProgress
	}

	next := &models.LessonProgressRecord{
		UserID:           state.UserID,
		LessonID:         state.LessonID,
		Progress:         computed,
		Status:           status,
		Score:            state.PracticeScore(),
		TimeSpentMinutes: int(state.ElapsedMinutes(now)),
		PlayedEventKeys:  state.Ledger.AllKeys(),
	}

	merged := mergeRecords(state.Prior, next)
	if err := s.Repo.Upsert(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to persist progress: %w", err)
	}
	state.Prior = merged
	return merged, nil
}

func (s *ProgressService) session(sessionID string) (*progress.SessionState, error) {
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("unknown session: %s", sessionID)
	}
	return state, nil
}

func (s *ProgressService) view(state *progress.SessionState) *SessionView {
	now := s.now()
	view := &SessionView{
		SessionID:      state.ID,
		LessonID:       state.LessonID,
		Record:         state.Prior,
		EffectiveUnits: state.EffectiveEngagementUnits(),
		TotalUnits:     state.Lesson.Config.TotalEngagementUnits,
		ElapsedMinutes: state.ElapsedMinutes(now),
		ExactResume:    state.Baseline.Exact,
		Practice:       state.Practice,
	}
	if len(state.Lesson.ActivityIDs) > 0 {
		view.Activities = state.Gate.Statuses()
	}
	return view
}
