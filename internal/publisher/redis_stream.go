package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stream names consumed by downstream notification services.
const (
	recruitSyncStream = "recruits.sync.football"
	statEventStream   = "stats.events.football"
)

// RedisPublisher publishes scouting events to Redis streams
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis stream publisher
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishRecruitSync announces a completed synchronize-then-build run so
// notification fan-out can pick it up.
func (rp *RedisPublisher) PublishRecruitSync(ctx context.Context, syncData interface{}) error {
	return rp.publish(ctx, recruitSyncStream, syncData)
}

// PublishStatEvent announces a newly recorded stat event.
func (rp *RedisPublisher) PublishStatEvent(ctx context.Context, eventData interface{}) error {
	return rp.publish(ctx, statEventStream, eventData)
}

func (rp *RedisPublisher) publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
