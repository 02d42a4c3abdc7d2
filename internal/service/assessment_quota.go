package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrQuotaExceeded is returned when the user has used up today's assessments.
var ErrQuotaExceeded = errors.New("daily assessment quota exceeded")

const quotaKeyPrefix = "diagnosis:quota:"

// incrWithinLimitScript counts one assessment against KEYS[1].
//
// 1. INCR the counter, setting its expiry on first use
// 2. If the count passes ARGV[1], DECR back and return -1
// 3. Otherwise return the new count
var incrWithinLimitScript = redis.NewScript(`
	local used = redis.call('INCR', KEYS[1])
	if used == 1 then
		redis.call('EXPIRE', KEYS[1], ARGV[2])
	end
	if used > tonumber(ARGV[1]) then
		redis.call('DECR', KEYS[1])
		return -1
	end
	return used
`)

// decrIfPositiveScript gives back one assessment on KEYS[1] without going
// below zero. A missing key is left missing.
var decrIfPositiveScript = redis.NewScript(`
	local used = tonumber(redis.call('GET', KEYS[1]) or '0')
	if used > 0 then
		return redis.call('DECR', KEYS[1])
	end
	return 0
`)

// QuotaGuard admits or rejects one assessment for a user. Release returns a
// slot taken by Acquire when the assessment produced no record.
type QuotaGuard interface {
	Acquire(ctx context.Context, userID uuid.UUID) error
	Release(ctx context.Context, userID uuid.UUID) error
}

// NoQuota admits every request.
type NoQuota struct{}

func (NoQuota) Acquire(context.Context, uuid.UUID) error { return nil }

func (NoQuota) Release(context.Context, uuid.UUID) error { return nil }

// RedisAssessmentQuota caps assessments per user per UTC day.
type RedisAssessmentQuota struct {
	redisClient *redis.Client
	limit       int
	now         func() time.Time
}

// NewAssessmentQuota returns NoQuota when limit is not positive.
func NewAssessmentQuota(redisClient *redis.Client, limit int) QuotaGuard {
	if limit <= 0 {
		return NoQuota{}
	}
	return &RedisAssessmentQuota{redisClient: redisClient, limit: limit, now: time.Now}
}

// QuotaKey is "diagnosis:quota:<user id>:<yyyy-mm-dd>".
func QuotaKey(userID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("%s%s:%s", quotaKeyPrefix, userID.String(), day.UTC().Format("2006-01-02"))
}

func (q *RedisAssessmentQuota) Acquire(ctx context.Context, userID uuid.UUID) error {
	now := q.now()
	ttl := secondsUntilNextDay(now)

	used, err := incrWithinLimitScript.Run(ctx, q.redisClient, []string{QuotaKey(userID, now)}, q.limit, ttl).Int64()
	if err != nil {
		return fmt.Errorf("quota check failed: %w", err)
	}
	if used < 0 {
		return ErrQuotaExceeded
	}
	return nil
}

func (q *RedisAssessmentQuota) Release(ctx context.Context, userID uuid.UUID) error {
	if err := decrIfPositiveScript.Run(ctx, q.redisClient, []string{QuotaKey(userID, q.now())}).Err(); err != nil {
		return fmt.Errorf("quota release failed: %w", err)
	}
	return nil
}

func secondsUntilNextDay(now time.Time) int64 {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	secs := int64(next.Sub(now).Seconds())
	if secs < 1 {
		secs = 1
	}
	return secs
}
