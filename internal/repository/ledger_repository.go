package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// LedgerRepository persists the exact set of engagement keys already
// credited for a lesson, one Redis set per user/lesson pair. When this
// store is available the engine skips aggregate estimation entirely.
type LedgerRepository struct {
	client *redis.Client
}

func NewLedgerRepository(client *redis.Client) *LedgerRepository {
	return &LedgerRepository{client: client}
}

func ledgerKey(userID, lessonID string) string {
	return fmt.Sprintf("progress:played:%s:%s", userID, lessonID)
}

// AddKey records an engagement key. It returns true when the key was not in
// the set before, mirroring the ledger's first-addition contract.
func (r *LedgerRepository) AddKey(ctx context.Context, userID, lessonID, key string) (bool, error) {
	added, err := r.client.SAdd(ctx, ledgerKey(userID, lessonID), key).Result()
	if err != nil {
		return false, fmt.Errorf("error adding played key: %w", err)
	}
	return added == 1, nil
}

func (r *LedgerRepository) HasKey(ctx context.Context, userID, lessonID, key string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, ledgerKey(userID, lessonID), key).Result()
	if err != nil {
		return false, fmt.Errorf("error checking played key: %w", err)
	}
	return ok, nil
}

// Keys returns every credited key for the lesson, for seeding a session
// ledger at open.
func (r *LedgerRepository) Keys(ctx context.Context, userID, lessonID string) ([]string, error) {
	keys, err := r.client.SMembers(ctx, ledgerKey(userID, lessonID)).Result()
	if err != nil {
		return nil, fmt.Errorf("error loading played keys: %w", err)
	}
	return keys, nil
}

func (r *LedgerRepository) Count(ctx context.Context, userID, lessonID string) (int64, error) {
	n, err := r.client.SCard(ctx, ledgerKey(userID, lessonID)).Result()
	if err != nil {
		return 0, fmt.Errorf("error counting played keys: %w", err)
	}
	return n, nil
}
