package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/caption-qa/internal/config"
	"github.com/nguyentantai21042004/caption-qa/internal/models"
	"github.com/redis/go-redis/v9"
)

// redisStore keeps one JSON list per session.
type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis connects to cfg.RedisAddr and verifies the connection.
func NewRedis(ctx context.Context, cfg config.HistoryConfig) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisStore{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
	}, nil
}

func (r *redisStore) key(sessionID string) string {
	return sessionKey(r.prefix, sessionID)
}

func sessionKey(prefix, sessionID string) string {
	if prefix == "" {
		return sessionID
	}
	return prefix + ":" + sessionID
}

func (r *redisStore) Append(ctx context.Context, sessionID string, ex models.QAExchange) error {
	data, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("marshal exchange: %w", err)
	}

	key := r.key(sessionID)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (r *redisStore) List(ctx context.Context, sessionID string) ([]models.QAExchange, error) {
	raw, err := r.client.LRange(ctx, r.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	out := make([]models.QAExchange, 0, len(raw))
	for i, item := range raw {
		var ex models.QAExchange
		if err := json.Unmarshal([]byte(item), &ex); err != nil {
			return nil, fmt.Errorf("decode history entry %d: %w", i, err)
		}
		out = append(out, ex)
	}
	return out, nil
}

func (r *redisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	return nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
