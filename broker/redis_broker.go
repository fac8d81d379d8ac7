package broker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBroker grounds the Broker interface on a real shared backend:
// LPush/RPop map directly onto Redis list commands, and the TTL is
// refreshed with EXPIRE on every push so idle per-session queues
// self-collect (spec §4.1).
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBroker dials addr (host:port) with the given DB index.
// Credentials, if any, come from the REDIS_PASSWORD environment
// variable at the call site, not from this constructor.
func NewRedisBroker(addr, password string, db int) *RedisBroker {
	return &RedisBroker{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (r *RedisBroker) LPush(ctx context.Context, queue string, payload []byte, ttl time.Duration) error {
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, queue, payload)
	if ttl > 0 {
		pipe.Expire(ctx, queue, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisBroker) RPop(ctx context.Context, queue string) ([]byte, bool, error) {
	v, err := r.client.RPop(ctx, queue).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *RedisBroker) Close() error {
	return r.client.Close()
}
