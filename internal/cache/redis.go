// Package cache publishes applied game actions to a Redis queue so a
// downstream consumer can persist or replay them. The queue is optional:
// with no REDIS_ADDR configured the publisher is a no-op.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Nil when Redis is not configured.
var Rdb *redis.Client

// DefaultQueueName is the Redis list that receives action records.
var DefaultQueueName = "uno_actions"

// GameActionRecord is one applied command, as pushed onto the queue.
type GameActionRecord struct {
	GameID        uuid.UUID              `json:"game_id"`
	ActionIndex   int                    `json:"action_index"`
	ActorID       uuid.UUID              `json:"actor_id"`
	ActionType    string                 `json:"action_type"`
	ActionPayload map[string]interface{} `json:"action_payload"`
	Timestamp     int64                  `json:"timestamp"`
}

// ConnectRedis initializes the global client from REDIS_ADDR and REDIS_DB.
// Returns false without error when REDIS_ADDR is unset.
func ConnectRedis() (bool, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return false, nil
	}

	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   getEnvInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		Rdb = nil
		return false, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return true, nil
}

// PublishGameAction serializes the record and pushes it onto the action
// queue. A nil client makes this a no-op so game logic never depends on
// Redis being present.
func PublishGameAction(ctx context.Context, record GameActionRecord) error {
	if Rdb == nil {
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal GameActionRecord: %w", err)
	}

	queueName := os.Getenv("UNO_ACTION_QUEUE")
	if queueName == "" {
		queueName = DefaultQueueName
	}
	if err := Rdb.RPush(ctx, queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list %q: %w", queueName, err)
	}
	return nil
}

func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
