package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port             string
	MongoURI         string
	MongoDatabase    string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RabbitMQURI      string
	RabbitMQExchange string
	FEAddress        string
	// ReconcileIntervalSeconds drives the periodic sweep over open sessions.
	ReconcileIntervalSeconds int
}

func New() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	interval, _ := strconv.Atoi(getEnv("RECONCILE_INTERVAL_SECONDS", "30"))

	return &Config{
		Port:                     getEnv("PORT", "6700"),
		MongoURI:                 getEnv("MONGO_URI", ""),
		MongoDatabase:            getEnv("PROGRESS_SERVICE_MONGO_DB", "progress_service"),
		RedisAddr:                getEnv("REDIS_ADDR", ""),
		RedisPassword:            getEnv("REDIS_PWD", ""),
		RedisDB:                  redisDB,
		RabbitMQURI:              getEnv("RABBITMQ_URI", ""),
		RabbitMQExchange:         getEnv("RABBITMQ_EXCHANGE", ""),
		FEAddress:                getEnv("FE_ADDR", "http://localhost:3000"),
		ReconcileIntervalSeconds: interval,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
