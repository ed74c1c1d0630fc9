// Package cache keeps rendered reports at the HTTP boundary.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/go-redis/redis/v8"
)

var ErrMiss = errors.New("cache miss")

// ReportCache stores rendered reports keyed by owner and day. Entries for one
// owner can be dropped together.
type ReportCache interface {
	Get(ctx context.Context, owner string, day time.Time) ([]byte, error)
	Put(ctx context.Context, owner string, day time.Time, report []byte) error
	InvalidateOwner(ctx context.Context, owner string) error
}

const keyPrefix = "worklog:report"

// allOwners stands in for the empty owner in keys.
const allOwners = "_all"

// RedisReportCache implements ReportCache with plain keys plus one tag set per
// owner listing that owner's keys.
type RedisReportCache struct {
	c   *redis.Client
	ttl time.Duration
}

func NewRedisReportCache(c *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{c: c, ttl: ttl}
}

func ownerPart(owner string) string {
	if owner == "" {
		return allOwners
	}
	return owner
}

func reportKey(owner string, day time.Time) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, ownerPart(owner), domain.CivilDate(day).Format(domain.DateLayout))
}

func tagKey(owner string) string {
	return fmt.Sprintf("%s-tag:%s", keyPrefix, ownerPart(owner))
}

func (r *RedisReportCache) Get(ctx context.Context, owner string, day time.Time) ([]byte, error) {
	val, err := r.c.Get(ctx, reportKey(owner, day)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("reading cached report: %w", err)
	}
	return val, nil
}

func (r *RedisReportCache) Put(ctx context.Context, owner string, day time.Time, report []byte) error {
	key := reportKey(owner, day)
	tag := tagKey(owner)
	_, err := r.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, key, report, r.ttl)
		p.SAdd(ctx, tag, key)
		if r.ttl > 0 {
			p.Expire(ctx, tag, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("caching report: %w", err)
	}
	return nil
}

func (r *RedisReportCache) InvalidateOwner(ctx context.Context, owner string) error {
	tag := tagKey(owner)
	keys, err := r.c.SMembers(ctx, tag).Result()
	if err != nil {
		return fmt.Errorf("reading report tag: %w", err)
	}
	if err := r.c.Del(ctx, append(keys, tag)...).Err(); err != nil {
		return fmt.Errorf("invalidating reports: %w", err)
	}
	return nil
}

// NoopReportCache never stores anything.
type NoopReportCache struct{}

func (NoopReportCache) Get(context.Context, string, time.Time) ([]byte, error) { return nil, ErrMiss }

func (NoopReportCache) Put(context.Context, string, time.Time, []byte) error { return nil }

func (NoopReportCache) InvalidateOwner(context.Context, string) error { return nil }
