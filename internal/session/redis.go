package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

const (
	redisStatePrefix = "sqlquest:session:"
	redisRunPrefix   = "sqlquest:running:"
)

// RedisStorage keeps the sessions in Redis.
type RedisStorage struct {
	redis rueidis.Client
	ttl   time.Duration
}

// NewRedisStorage creates a RedisStorage. A non-positive ttl means DefaultTTL.
func NewRedisStorage(redis rueidis.Client, ttl time.Duration) *RedisStorage {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisStorage{redis: redis, ttl: ttl}
}

func (s *RedisStorage) Get(ctx context.Context, id string) (State, error) {
	reply := s.redis.Do(ctx, s.redis.B().Get().Key(redisStatePrefix+id).Build())
	if err := reply.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return State{}, ErrNotFound
		}
		return State{}, fmt.Errorf("get session: %w", err)
	}

	raw, err := reply.AsBytes()
	if err != nil {
		return State{}, fmt.Errorf("read session: %w", err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return State{}, fmt.Errorf("unmarshal session: %w", err)
	}

	return state, nil
}

func (s *RedisStorage) Save(ctx context.Context, state State) error {
	stateBytes, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	cmd := s.redis.B().Set().
		Key(redisStatePrefix + state.ID).
		Value(rueidis.BinaryString(stateBytes)).
		Ex(s.ttl).
		Build()
	if err := s.redis.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, id string) error {
	cmd := s.redis.B().Del().Key(redisStatePrefix+id, redisRunPrefix+id).Build()
	if err := s.redis.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (s *RedisStorage) BeginRun(ctx context.Context, id string) error {
	cmd := s.redis.B().Set().
		Key(redisRunPrefix + id).
		Value("1").
		Nx().
		Ex(RunGuardTTL).
		Build()

	err := s.redis.Do(ctx, cmd).Error()
	if rueidis.IsRedisNil(err) {
		return ErrBusy
	}
	if err != nil {
		return fmt.Errorf("acquire run guard: %w", err)
	}

	return nil
}

func (s *RedisStorage) EndRun(ctx context.Context, id string) error {
	if err := s.redis.Do(ctx, s.redis.B().Del().Key(redisRunPrefix+id).Build()).Error(); err != nil {
		return fmt.Errorf("release run guard: %w", err)
	}

	return nil
}

var _ Storage = (*RedisStorage)(nil)
