package db

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the played-key ledger store. Redis is optional: a nil
// return means the engine falls back to aggregate estimation on resume.
func InitRedis(addr, password string, database int) *redis.Client {
	if addr == "" {
		log.Println("Redis not configured, played keys will be estimated from aggregates")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: could not connect to Redis: %v, falling back to estimation", err)
		return nil
	}

	log.Println("Successfully connected to Redis")
	return client
}
