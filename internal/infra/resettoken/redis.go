package resettoken

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/ink-agenda/internal/domain/user"
)

const keyPrefix = "ink-agenda:password-reset:"

// RedisStore keeps reset tokens as expiring keys; Consume deletes on read.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func Key(token string) string {
	return keyPrefix + token
}

func (s *RedisStore) Save(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, Key(token), strconv.FormatUint(uint64(userID), 10), ttl).Err(); err != nil {
		return fmt.Errorf("redis: save reset token: %w", err)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, token string) (uint, error) {
	val, err := s.rdb.GetDel(ctx, Key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, user.ErrResetTokenInvalid
	}
	if err != nil {
		return 0, fmt.Errorf("redis: consume reset token: %w", err)
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil || id == 0 {
		return 0, user.ErrResetTokenInvalid
	}
	return uint(id), nil
}

var _ user.ResetTokenStore = (*RedisStore)(nil)
