package push

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/riders-app/pinchazo-backend/internal/models"
)

const jobQueueKey = "push_jobs"

// Job is one queued notification: a payload plus its recipients. The
// business operation that enqueues it never waits for delivery.
type Job struct {
	Kind  models.NotificationKind `json:"kind"`
	Title string                  `json:"title"`
	Body  string                  `json:"body"`
	Data  map[string]string       `json:"data,omitempty"`

	// Recipients by user id, or a broadcast to everyone except one user.
	Recipients   []int64 `json:"recipients,omitempty"`
	Broadcast    bool    `json:"broadcast,omitempty"`
	ExceptUserID int64   `json:"except_user_id,omitempty"`

	// Silent suppresses the notification sound (chat bursts).
	Silent bool `json:"silent,omitempty"`

	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Publisher hands jobs to the dispatch queue.
type Publisher interface {
	Publish(ctx context.Context, job Job) error
}

// RedisPublisher is a Publisher backed by a Redis list.
type RedisPublisher struct {
	redisClient *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish pushes the job onto the left side of the queue list.
func (p *RedisPublisher) Publish(ctx context.Context, job Job) error {
	if job.EnqueuedAt.IsZero() {
		job.EnqueuedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal push job: %w", err)
	}

	if err := p.redisClient.LPush(ctx, jobQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish push job to Redis: %w", err)
	}
	return nil
}
