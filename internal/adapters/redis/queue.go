package redisad

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"hotel_recommender/internal/adapters/observability"
	"hotel_recommender/internal/domain"
)

const DefaultQueueKey = "bookings:confirmations"

// Queue hands booking confirmations to an external mailer by pushing them
// onto a Redis list.
type Queue struct {
	c   *redis.Client
	key string
}

func New(addr, pass string, db int) *Queue {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), DefaultQueueKey)
}

func NewWithClient(c *redis.Client, key string) *Queue {
	if key == "" {
		key = DefaultQueueKey
	}
	return &Queue{c: c, key: key}
}

func (q *Queue) NotifyBooking(ctx context.Context, b domain.Booking) error {
	payload, err := json.Marshal(b)
	if err != nil {
		observability.ObserveNotification("redis", err)
		return fmt.Errorf("marshal booking %s: %w", b.ID, err)
	}
	err = q.c.RPush(ctx, q.key, payload).Err()
	observability.ObserveNotification("redis", err)
	if err != nil {
		return fmt.Errorf("enqueue booking %s: %w", b.ID, err)
	}
	return nil
}

// Pending returns the queued bookings without removing them.
func (q *Queue) Pending(ctx context.Context) ([]domain.Booking, error) {
	raw, err := q.c.LRange(ctx, q.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(raw))
	for _, s := range raw {
		var b domain.Booking
		if err := json.Unmarshal([]byte(s), &b); err != nil {
			return nil, fmt.Errorf("decode queued booking: %w", err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (q *Queue) Ping(ctx context.Context) error {
	return q.c.Ping(ctx).Err()
}

func (q *Queue) Close() error { return q.c.Close() }
