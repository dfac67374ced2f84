package models

import "time"

type LessonStatus string

const (
	StatusNotStarted LessonStatus = "NOT_STARTED"
	StatusInProgress LessonStatus = "IN_PROGRESS"
	StatusCompleted  LessonStatus = "COMPLETED"
)

// Rank orders statuses so merges can pick the furthest-along one.
// Unknown statuses rank below NOT_STARTED so a corrupt value never wins a merge.
func (s LessonStatus) Rank() int {
	switch s {
	case StatusNotStarted:
		return 0
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	}
	return -1
}

// FurthestStatus returns whichever of the two statuses is further along.
func FurthestStatus(a, b LessonStatus) LessonStatus {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// LessonProgressRecord is the persisted per-user, per-lesson completion state.
// Progress and TimeSpent only ever increase; Status only moves forward.
type LessonProgressRecord struct {
	ID               string       `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           string       `bson:"user_id" json:"user_id"`
	LessonID         string       `bson:"lesson_id" json:"lesson_id"`
	Progress         int          `bson:"progress" json:"progress"`
	Status           LessonStatus `bson:"status" json:"status"`
	Score            *int         `bson:"score,omitempty" json:"score,omitempty"`
	TimeSpentMinutes int          `bson:"time_spent_minutes" json:"time_spent_minutes"`
	PlayedEventKeys  []string     `bson:"played_event_keys,omitempty" json:"played_event_keys,omitempty"`
	LastAccessed     time.Time    `bson:"last_accessed" json:"last_accessed"`
}

// DefaultRecord is the record a lesson implicitly starts with before any
// activity has been persisted.
func DefaultRecord(userID, lessonID string) *LessonProgressRecord {
	return &LessonProgressRecord{
		UserID:   userID,
		LessonID: lessonID,
		Progress: 0,
		Status:   StatusNotStarted,
	}
}
