package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/javiersolis/bookstore-admin-gateway/internal/config"
	"github.com/redis/go-redis/v9"
)

type RedisRepo struct {
	client *redis.Client
	config *config.Config
}

func NewRedisRepo(cfg *config.Config) (*RedisRepo, error) {

	opt, err := redis.ParseURL(cfg.RedisConnect.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Test the connection to make sure Redis is reachable
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRepo{client: client, config: cfg}, nil

}

// NewRedisRepoWithClient wires an existing client; used by tests.
func NewRedisRepoWithClient(client *redis.Client, cfg *config.Config) *RedisRepo {
	return &RedisRepo{client: client, config: cfg}
}

func (r *RedisRepo) Client() *redis.Client {
	return r.client
}

// CheckLoginRateLimit keeps a sliding window of sign-in attempts per
// username in a sorted set scored by timestamp.
// Returns isAllowed, attempts left, seconds to wait, error.
func (r *RedisRepo) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {

	key := fmt.Sprintf("login_attempts:%s", username)

	now := time.Now().Unix()

	// This means only login attempts after 'this time' are counted.
	windowStart := now - int64(r.config.RateConfig.WindowSize.Seconds())

	// redis pipeline for executing multiple commands
	pipe := r.client.Pipeline()

	// remove old entries from the pipeline
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))

	// add the current login attempt; the member must be unique per attempt,
	// otherwise a burst within one second collapses into a single entry and
	// is never counted
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: time.Now().UnixNano()})

	// count the number of login attempts
	count := pipe.ZCard(ctx, key)

	// delete the redis key after expiry
	pipe.Expire(ctx, key, r.config.RateConfig.WindowSize)

	// execute the commands
	_, err := pipe.Exec(ctx)

	if err != nil {
		return false, 0, 0, err
	}

	// remaining attempts
	attempts := count.Val()
	remaining := r.config.RateConfig.MaxAttempts - attempts

	if attempts >= r.config.RateConfig.MaxAttempts {
		oldest, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return false, 0, 0, err
		}

		// the score holds the attempt time in seconds
		oldestTime := int64(oldest[0].Score)

		retryAfter := int64(r.config.RateConfig.WindowSize.Seconds()) - (now - oldestTime)

		return false, 0, int(retryAfter), err
	}

	return true, int(remaining), 0, nil

}
