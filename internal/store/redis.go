package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisPrefix namespaces every key written by lessonplay.
const redisPrefix = "lessonplay:"

// maxRedisEvents caps each course's event list.
const maxRedisEvents = 500

// RedisStore implements KV and EventRepo on a Redis (or Dragonfly) server.
type RedisStore struct {
	Client *redis.Client
}

// ParseRedisURL validates a Redis connection URL.
func ParseRedisURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("redis URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return opts, nil
}

// OpenRedis connects to url and verifies the connection.
func OpenRedis(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := ParseRedisURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisStore{Client: client}, nil
}

// Close shuts down the client.
func (r *RedisStore) Close() error {
	return r.Client.Close()
}

// Get implements KV.
func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.Client.Get(ctx, redisPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Put implements KV.
func (r *RedisStore) Put(ctx context.Context, key, value string) error {
	if err := r.Client.Set(ctx, redisPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// EventRepo returns an EventRepo writing to per-course Redis lists.
func (r *RedisStore) EventRepo() EventRepo {
	return r
}

func (r *RedisStore) AppendTopicCompleted(ctx context.Context, data TopicCompletedEventData) error {
	return r.appendEvent(ctx, ProgressEvent{
		CourseID: data.CourseID,
		Kind:     KindTopicCompleted,
		TopicID:  data.TopicID,
		Position: data.Position,
	})
}

func (r *RedisStore) AppendExamSubmitted(ctx context.Context, data ExamSubmittedEventData) error {
	return r.appendEvent(ctx, ProgressEvent{
		CourseID:  data.CourseID,
		Kind:      KindExamSubmitted,
		AttemptID: data.AttemptID,
		Score:     data.Score,
		Passed:    data.Passed,
	})
}

func (r *RedisStore) appendEvent(ctx context.Context, e ProgressEvent) error {
	seq, err := r.Client.Incr(ctx, redisPrefix+"sequence").Result()
	if err != nil {
		return fmt.Errorf("redis next sequence: %w", err)
	}
	e.Sequence = seq
	e.Timestamp = time.Now().UTC()

	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	key := eventsKey(e.CourseID)
	pipe := r.Client.TxPipeline()
	pipe.LPush(ctx, key, b)
	pipe.LTrim(ctx, key, 0, maxRedisEvents-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append %s event: %w", e.Kind, err)
	}
	return nil
}

func (r *RedisStore) RecentEvents(ctx context.Context, courseID string, limit int) ([]ProgressEvent, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	raw, err := r.Client.LRange(ctx, eventsKey(courseID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis read events: %w", err)
	}

	events := make([]ProgressEvent, 0, len(raw))
	for _, s := range raw {
		var e ProgressEvent
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			continue // skip corrupt entries
		}
		events = append(events, e)
	}
	return events, nil
}

func eventsKey(courseID string) string {
	return redisPrefix + "events:" + courseID
}
