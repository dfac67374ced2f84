package repository

import (
	"context"
	"errors"
	"time"

	"progress-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection("lesson_progress")}
}

// Get loads the persisted record for one user and lesson. A lesson that was
// never opened yields a default NOT_STARTED record rather than an error.
func (r *ProgressRepository) Get(ctx context.Context, userID, lessonID string) (*models.LessonProgressRecord, error) {
	var record models.LessonProgressRecord
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID, "lesson_id": lessonID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.DefaultRecord(userID, lessonID), nil
		}
		return nil, err
	}
	return &record, nil
}

// Upsert writes the full record, creating it on first touch. This is the
// sole write path; callers go through the service merge, never raw values.
func (r *ProgressRepository) Upsert(ctx context.Context, record *models.LessonProgressRecord) error {
	record.LastAccessed = time.Now()

	update := bson.M{"$set": bson.M{
		"user_id":            record.UserID,
		"lesson_id":          record.LessonID,
		"progress":           record.Progress,
		"status":             record.Status,
		"score":              record.Score,
		"time_spent_minutes": record.TimeSpentMinutes,
		"played_event_keys":  record.PlayedEventKeys,
		"last_accessed":      record.LastAccessed,
	}}

	_, err := r.Col.UpdateOne(ctx,
		bson.M{"user_id": record.UserID, "lesson_id": record.LessonID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *ProgressRepository) FindByUser(ctx context.Context, userID string) ([]models.LessonProgressRecord, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []models.LessonProgressRecord
	for cur.Next(ctx) {
		var rec models.LessonProgressRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
