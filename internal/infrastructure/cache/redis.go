package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitdesk/retention/internal/domain"
	"github.com/fitdesk/retention/internal/infrastructure/logging"
)

const (
	// rankingKeyPrefix namespaces the per-bucket outreach sorted sets.
	rankingKeyPrefix = "retention:outreach:"

	// default connection timeout
	defaultConnectTimeout = 10 * time.Second
)

var (
	ErrRedisNotConnected = errors.New("redis not connected")
	ErrRankingEmpty      = errors.New("outreach ranking is empty")
)

// RedisConfig holds configuration for the Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisClient wraps the go-redis client with outreach ranking operations.
// each renewal bucket gets its own sorted set keyed by member id and
// scored by days absent, so the front desk can pull a call list without
// touching postgres.
type RedisClient struct {
	client *redis.Client
	logger *logging.Logger
}

// NewRedisClient creates a new Redis client from the config.
// returns nil if the address is empty (redis disabled).
func NewRedisClient(cfg RedisConfig, logger *logging.Logger) (*RedisClient, error) {
	if cfg.Addr == "" {
		logger.Info("redis disabled: no REDIS_ADDR configured")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  defaultConnectTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	rc := &RedisClient{
		client: client,
		logger: logger.WithComponent("redis"),
	}

	return rc, nil
}

// Connect tests the connection to Redis.
func (r *RedisClient) Connect(ctx context.Context) error {
	if r == nil || r.client == nil {
		return ErrRedisNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	r.logger.Info("redis connected")
	return nil
}

// Close closes the Redis connection.
func (r *RedisClient) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

func rankingKey(bucket domain.RenewalBucket) string {
	return rankingKeyPrefix + bucket.String()
}

// ReplaceRanking atomically swaps a bucket's outreach ranking with a
// fresh classification pass. implements application.OutreachRanking.
func (r *RedisClient) ReplaceRanking(ctx context.Context, bucket domain.RenewalBucket, members []domain.ClassifiedMember) error {
	if r == nil || r.client == nil {
		return ErrRedisNotConnected
	}

	key := rankingKey(bucket)

	// delete and repopulate in one round trip so readers never see a
	// partially written ranking
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(members) > 0 {
		zs := make([]redis.Z, len(members))
		for i, m := range members {
			zs[i] = redis.Z{
				Score:  float64(m.DaysAbsent.Days()),
				Member: m.Record.ID().String(),
			}
		}
		pipe.ZAdd(ctx, key, zs...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("failed to replace ranking",
			"bucket", bucket.String(),
			"member_count", len(members),
			"error", err.Error(),
		)
		return fmt.Errorf("ranking pipeline failed: %w", err)
	}

	r.logger.Debug("ranking replaced",
		"bucket", bucket.String(),
		"member_count", len(members),
	)

	return nil
}

// GetRanking returns the top N member IDs for a bucket ordered by days
// absent (most absent first). returns member IDs only, use these to
// fetch full details from postgres.
func (r *RedisClient) GetRanking(ctx context.Context, bucket domain.RenewalBucket, limit, offset int64) ([]string, error) {
	if r == nil || r.client == nil {
		return nil, ErrRedisNotConnected
	}

	start := offset
	stop := offset + limit - 1

	members, err := r.client.ZRevRange(ctx, rankingKey(bucket), start, stop).Result()
	if err != nil {
		r.logger.Error("failed to read ranking",
			"bucket", bucket.String(),
			"limit", limit,
			"offset", offset,
			"error", err.Error(),
		)
		return nil, fmt.Errorf("zrevrange failed: %w", err)
	}

	if len(members) == 0 {
		return nil, ErrRankingEmpty
	}

	return members, nil
}

// RankingSize returns the number of members in a bucket's ranking.
func (r *RedisClient) RankingSize(ctx context.Context, bucket domain.RenewalBucket) (int64, error) {
	if r == nil || r.client == nil {
		return 0, ErrRedisNotConnected
	}

	count, err := r.client.ZCard(ctx, rankingKey(bucket)).Result()
	if err != nil {
		return 0, fmt.Errorf("zcard failed: %w", err)
	}

	return count, nil
}

// MemberRank returns a member's position in a bucket's ranking (0-based,
// most absent = 0). returns -1 if the member is not ranked.
func (r *RedisClient) MemberRank(ctx context.Context, bucket domain.RenewalBucket, memberID string) (int64, error) {
	if r == nil || r.client == nil {
		return -1, ErrRedisNotConnected
	}

	rank, err := r.client.ZRevRank(ctx, rankingKey(bucket), memberID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	if err != nil {
		return -1, fmt.Errorf("zrevrank failed: %w", err)
	}

	return rank, nil
}

// HealthCheck verifies Redis is responding.
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if r == nil || r.client == nil {
		return ErrRedisNotConnected
	}

	return r.client.Ping(ctx).Err()
}
