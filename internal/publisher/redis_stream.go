package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubmissionsStream receives every stored or reviewed game submission.
const SubmissionsStream = "submissions.games"

// RedisPublisher publishes events to Redis streams
type RedisPublisher struct {
	client *redis.Client
	maxLen int64
}

// NewRedisPublisher creates a publisher on an existing client. Streams are
// trimmed to roughly maxLen entries; zero disables trimming.
func NewRedisPublisher(client *redis.Client, maxLen int64) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		maxLen: maxLen,
	}
}

// PublishSubmission appends a submission event to the submissions stream
func (rp *RedisPublisher) PublishSubmission(ctx context.Context, eventType string, event interface{}) error {
	return rp.publish(ctx, SubmissionsStream, eventType, event)
}

func (rp *RedisPublisher) publish(ctx context.Context, stream, eventType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", eventType, err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"type":      eventType,
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}
	if rp.maxLen > 0 {
		args.MaxLen = rp.maxLen
		args.Approx = true
	}

	if err := rp.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", stream, err)
	}
	return nil
}
